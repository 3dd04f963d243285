package photo

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kindredapp/kindred-backend/internal/domain"
	"github.com/kindredapp/kindred-backend/internal/logging"
)

type fakePhotoRepo struct {
	photos map[int]*domain.Photo
	nextID int
}

func newFakePhotoRepo() *fakePhotoRepo {
	return &fakePhotoRepo{photos: map[int]*domain.Photo{}, nextID: 1}
}

func (r *fakePhotoRepo) Create(_ context.Context, photo *domain.Photo) error {
	photo.ID = r.nextID
	r.nextID++
	cp := *photo
	r.photos[photo.ID] = &cp
	return nil
}

func (r *fakePhotoRepo) GetByID(_ context.Context, id int) (*domain.Photo, error) {
	p, ok := r.photos[id]
	if !ok {
		return nil, domain.ErrPhotoNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *fakePhotoRepo) ListByUserID(_ context.Context, userID int) ([]domain.Photo, error) {
	var out []domain.Photo
	for _, p := range r.photos {
		if p.UserID == userID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *fakePhotoRepo) CountByUserID(_ context.Context, userID int) (int, error) {
	n := 0
	for _, p := range r.photos {
		if p.UserID == userID {
			n++
		}
	}
	return n, nil
}

func (r *fakePhotoRepo) Delete(_ context.Context, id int) error {
	delete(r.photos, id)
	return nil
}

func (r *fakePhotoRepo) CompactPositions(_ context.Context, userID int) error { return nil }

type fakeStorage struct {
	objects map[string][]byte
	putErr  error
	delErr  error
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{objects: map[string][]byte{}}
}

func (s *fakeStorage) Put(_ context.Context, key string, body io.Reader, contentType string) error {
	if s.putErr != nil {
		return s.putErr
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	s.objects[key] = data
	return nil
}

func (s *fakeStorage) Delete(_ context.Context, key string) error {
	if s.delErr != nil {
		return s.delErr
	}
	delete(s.objects, key)
	return nil
}

type fakeCache struct{}

func (fakeCache) GetDocument(_ context.Context, userID int) (*domain.ProfileDocument, error) {
	return nil, nil
}
func (fakeCache) SetDocument(_ context.Context, doc *domain.ProfileDocument) error { return nil }
func (fakeCache) Invalidate(_ context.Context, userID int) error                   { return nil }

func newUseCase() (*PhotoUseCase, *fakePhotoRepo, *fakeStorage) {
	repo := newFakePhotoRepo()
	storage := newFakeStorage()
	uc := NewPhotoUseCase(repo, storage, fakeCache{}, "https://cdn.example.com/", logging.NewNop())
	return uc, repo, storage
}

func TestUpload(t *testing.T) {
	uc, repo, storage := newUseCase()
	uc.now = func() time.Time { return time.UnixMilli(1700000000000) }

	photo, err := uc.Upload(context.Background(), 7, "Selfie.JPG", "image/jpeg", strings.NewReader("jpegdata"))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(photo.StorageKey, "uploads/7/1700000000000-"))
	assert.True(t, strings.HasSuffix(photo.StorageKey, ".jpg"), "extension is lowercased: %s", photo.StorageKey)
	assert.Equal(t, "https://cdn.example.com/"+photo.StorageKey, photo.ImageURL)
	assert.Equal(t, 0, photo.Position)
	assert.Equal(t, []byte("jpegdata"), storage.objects[photo.StorageKey])

	count, err := repo.CountByUserID(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestUploadLimit(t *testing.T) {
	uc, repo, _ := newUseCase()

	for i := 0; i < domain.MaxPhotos; i++ {
		_, err := uc.Upload(context.Background(), 7, "a.png", "image/png", strings.NewReader("x"))
		require.NoError(t, err)
	}

	_, err := uc.Upload(context.Background(), 7, "a.png", "image/png", strings.NewReader("x"))
	assert.ErrorIs(t, err, domain.ErrPhotoLimitReached)

	count, _ := repo.CountByUserID(context.Background(), 7)
	assert.Equal(t, domain.MaxPhotos, count)
}

func TestUploadStorageFailure(t *testing.T) {
	uc, repo, storage := newUseCase()
	storage.putErr = errors.New("connection reset")

	_, err := uc.Upload(context.Background(), 7, "a.png", "image/png", strings.NewReader("x"))
	require.Error(t, err)

	// No photo row without a stored object.
	count, _ := repo.CountByUserID(context.Background(), 7)
	assert.Equal(t, 0, count)
}

func TestDelete(t *testing.T) {
	uc, repo, storage := newUseCase()

	photo, err := uc.Upload(context.Background(), 7, "a.png", "image/png", strings.NewReader("x"))
	require.NoError(t, err)

	require.NoError(t, uc.Delete(context.Background(), 7, photo.ID))
	_, err = repo.GetByID(context.Background(), photo.ID)
	assert.ErrorIs(t, err, domain.ErrPhotoNotFound)
	assert.Empty(t, storage.objects)
}

func TestDeleteOtherUsersPhoto(t *testing.T) {
	uc, repo, _ := newUseCase()

	photo, err := uc.Upload(context.Background(), 7, "a.png", "image/png", strings.NewReader("x"))
	require.NoError(t, err)

	err = uc.Delete(context.Background(), 8, photo.ID)
	assert.ErrorIs(t, err, domain.ErrPhotoNotFound)

	_, err = repo.GetByID(context.Background(), photo.ID)
	assert.NoError(t, err, "photo must survive a foreign delete attempt")
}

func TestDeleteStorageFailureIsNotFatal(t *testing.T) {
	uc, repo, storage := newUseCase()

	photo, err := uc.Upload(context.Background(), 7, "a.png", "image/png", strings.NewReader("x"))
	require.NoError(t, err)

	storage.delErr = errors.New("gone away")
	require.NoError(t, uc.Delete(context.Background(), 7, photo.ID))

	_, err = repo.GetByID(context.Background(), photo.ID)
	assert.ErrorIs(t, err, domain.ErrPhotoNotFound)
}
