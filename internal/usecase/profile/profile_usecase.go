package profile

import (
	"context"
	"fmt"

	"github.com/kindredapp/kindred-backend/internal/domain"
	"github.com/kindredapp/kindred-backend/internal/logging"
	"github.com/kindredapp/kindred-backend/internal/repository"
)

type ProfileUseCase struct {
	userRepo    repository.UserRepository
	profileRepo repository.ProfileRepository
	photoRepo   repository.PhotoRepository
	cache       repository.ProfileCache
	log         logging.Logger
}

func NewProfileUseCase(
	userRepo repository.UserRepository,
	profileRepo repository.ProfileRepository,
	photoRepo repository.PhotoRepository,
	cache repository.ProfileCache,
	log logging.Logger,
) *ProfileUseCase {
	return &ProfileUseCase{
		userRepo:    userRepo,
		profileRepo: profileRepo,
		photoRepo:   photoRepo,
		cache:       cache,
		log:         log,
	}
}

// GetDocument assembles the combined profile document, serving from cache
// when possible. A missing profile row is a valid pre-onboarding state and
// yields a document with Profile == nil.
func (uc *ProfileUseCase) GetDocument(ctx context.Context, userID int) (*domain.ProfileDocument, error) {
	doc, err := uc.cache.GetDocument(ctx, userID)
	if err != nil {
		uc.log.Warn(ctx, "profile cache read failed", "user_id", userID, "error", err)
	} else if doc != nil {
		return doc, nil
	}

	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	profile, err := uc.profileRepo.GetByUserID(ctx, userID)
	if err != nil && err != domain.ErrProfileNotFound {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}

	photos, err := uc.photoRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load photos: %w", err)
	}

	doc = &domain.ProfileDocument{
		User:    *user,
		Profile: profile,
		Photos:  photos,
	}

	if err := uc.cache.SetDocument(ctx, doc); err != nil {
		uc.log.Warn(ctx, "profile cache write failed", "user_id", userID, "error", err)
	}

	return doc, nil
}

// UpdateBio patches the free-form bio outside the onboarding sequence.
func (uc *ProfileUseCase) UpdateBio(ctx context.Context, userID int, bio string) (*domain.Profile, error) {
	profile, err := uc.profileRepo.GetByUserID(ctx, userID)
	if err == domain.ErrProfileNotFound {
		profile = &domain.Profile{UserID: userID}
		if err := uc.profileRepo.Create(ctx, profile); err != nil {
			return nil, fmt.Errorf("failed to create profile row: %w", err)
		}
	} else if err != nil {
		return nil, err
	}

	profile.Bio = &bio
	if err := uc.profileRepo.Update(ctx, profile); err != nil {
		return nil, fmt.Errorf("failed to update bio: %w", err)
	}

	if err := uc.cache.Invalidate(ctx, userID); err != nil {
		uc.log.Warn(ctx, "failed to invalidate profile cache", "user_id", userID, "error", err)
	}
	return profile, nil
}
