package photo

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/kindredapp/kindred-backend/internal/domain"
	"github.com/kindredapp/kindred-backend/internal/logging"
	"github.com/kindredapp/kindred-backend/internal/repository"
)

// ObjectStorage is the S3-compatible store photos are proxied into.
type ObjectStorage interface {
	Put(ctx context.Context, key string, body io.Reader, contentType string) error
	Delete(ctx context.Context, key string) error
}

type PhotoUseCase struct {
	photoRepo     repository.PhotoRepository
	storage       ObjectStorage
	cache         repository.ProfileCache
	publicBaseURL string
	log           logging.Logger
	now           func() time.Time
}

func NewPhotoUseCase(
	photoRepo repository.PhotoRepository,
	storage ObjectStorage,
	cache repository.ProfileCache,
	publicBaseURL string,
	log logging.Logger,
) *PhotoUseCase {
	return &PhotoUseCase{
		photoRepo:     photoRepo,
		storage:       storage,
		cache:         cache,
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
		log:           log,
		now:           time.Now,
	}
}

// storageKey builds a timestamp-prefixed key so uploads never collide and
// sort chronologically within a user's prefix.
func (uc *PhotoUseCase) storageKey(userID int, filename string) string {
	ext := strings.ToLower(path.Ext(filename))
	return fmt.Sprintf("uploads/%d/%d-%s%s", userID, uc.now().UnixMilli(), uuid.NewString(), ext)
}

// Upload proxies one image into object storage and records the photo row at
// the next free position. A storage failure leaves nothing to clean up; the
// caller re-uploads.
func (uc *PhotoUseCase) Upload(ctx context.Context, userID int, filename, contentType string, body io.Reader) (*domain.Photo, error) {
	count, err := uc.photoRepo.CountByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to count photos: %w", err)
	}
	if count >= domain.MaxPhotos {
		return nil, domain.ErrPhotoLimitReached
	}

	key := uc.storageKey(userID, filename)
	if err := uc.storage.Put(ctx, key, body, contentType); err != nil {
		return nil, fmt.Errorf("failed to store image: %w", err)
	}

	photo := &domain.Photo{
		UserID:     userID,
		ImageURL:   uc.publicBaseURL + "/" + key,
		StorageKey: key,
		Position:   count,
	}
	if err := uc.photoRepo.Create(ctx, photo); err != nil {
		return nil, fmt.Errorf("failed to record photo: %w", err)
	}

	uc.invalidate(ctx, userID)
	return photo, nil
}

// Delete removes one of the user's photos and compacts the remaining
// positions. The stored object is removed best-effort; an orphaned object is
// harmless and cheaper than a retry path.
func (uc *PhotoUseCase) Delete(ctx context.Context, userID, photoID int) error {
	photo, err := uc.photoRepo.GetByID(ctx, photoID)
	if err != nil {
		return err
	}
	if photo.UserID != userID {
		return domain.ErrPhotoNotFound
	}

	if err := uc.photoRepo.Delete(ctx, photoID); err != nil {
		return err
	}
	if err := uc.photoRepo.CompactPositions(ctx, userID); err != nil {
		return fmt.Errorf("failed to compact photo positions: %w", err)
	}

	if err := uc.storage.Delete(ctx, photo.StorageKey); err != nil {
		uc.log.Warn(ctx, "failed to delete stored object", "key", photo.StorageKey, "error", err)
	}

	uc.invalidate(ctx, userID)
	return nil
}

func (uc *PhotoUseCase) List(ctx context.Context, userID int) ([]domain.Photo, error) {
	return uc.photoRepo.ListByUserID(ctx, userID)
}

func (uc *PhotoUseCase) invalidate(ctx context.Context, userID int) {
	if err := uc.cache.Invalidate(ctx, userID); err != nil {
		uc.log.Warn(ctx, "failed to invalidate profile cache", "user_id", userID, "error", err)
	}
}
