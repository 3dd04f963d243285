// Package onboarding owns the per-step profile writes and the routing
// decision that keeps a user pinned to their current step.
package onboarding

import (
	"context"
	"fmt"
	"time"

	"github.com/kindredapp/kindred-backend/internal/domain"
	"github.com/kindredapp/kindred-backend/internal/logging"
	"github.com/kindredapp/kindred-backend/internal/repository"
)

type OnboardingUseCase struct {
	userRepo    repository.UserRepository
	profileRepo repository.ProfileRepository
	photoRepo   repository.PhotoRepository
	cache       repository.ProfileCache
	log         logging.Logger
	now         func() time.Time
}

func NewOnboardingUseCase(
	userRepo repository.UserRepository,
	profileRepo repository.ProfileRepository,
	photoRepo repository.PhotoRepository,
	cache repository.ProfileCache,
	log logging.Logger,
) *OnboardingUseCase {
	return &OnboardingUseCase{
		userRepo:    userRepo,
		profileRepo: profileRepo,
		photoRepo:   photoRepo,
		cache:       cache,
		log:         log,
		now:         time.Now,
	}
}

// ResolveRoute evaluates the routing decision for the signed-in user at the
// given client route.
func (uc *OnboardingUseCase) ResolveRoute(ctx context.Context, userID int, current domain.Route) (domain.Decision, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return domain.Decision{}, err
	}

	decision := domain.Resolve(user, current, false)
	if decision.StepFallback {
		// An out-of-range step number usually means a row written by a
		// newer client; the fallback hides it from the user but not
		// from us.
		uc.log.Warn(ctx, "onboarding step out of range, falling back to first step",
			"user_id", userID, "onboarding_step", user.OnboardingStep)
	}
	return decision, nil
}

// advance moves the step cursor forward after completing the given step.
// It never moves backwards, so re-saving an earlier screen rewrites the
// field without regressing progress.
func advance(user *domain.User, completedStep int) {
	if user.OnboardingCompleted {
		return
	}
	if next := completedStep + 1; user.OnboardingStep < next {
		user.OnboardingStep = next
	}
}

// saveUserStep loads the user, applies one field mutation, advances the
// cursor, and persists. The mutation runs only after validation in the
// caller, so a validation failure never touches state.
func (uc *OnboardingUseCase) saveUserStep(ctx context.Context, userID, step int, mutate func(*domain.User)) (*domain.User, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	mutate(user)
	advance(user, step)

	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to save onboarding step: %w", err)
	}
	uc.invalidate(ctx, userID)
	return user, nil
}

func (uc *OnboardingUseCase) invalidate(ctx context.Context, userID int) {
	if err := uc.cache.Invalidate(ctx, userID); err != nil {
		uc.log.Warn(ctx, "failed to invalidate profile cache", "user_id", userID, "error", err)
	}
}

func (uc *OnboardingUseCase) SaveName(ctx context.Context, userID int, displayName, surname string) (*domain.User, error) {
	if displayName == "" {
		return nil, fmt.Errorf("%w: display name is required", domain.ErrInvalidInput)
	}
	return uc.saveUserStep(ctx, userID, domain.StepName, func(u *domain.User) {
		u.DisplayName = &displayName
		if surname != "" {
			u.Surname = &surname
		}
	})
}

func (uc *OnboardingUseCase) SaveDOB(ctx context.Context, userID int, dob time.Time) (*domain.User, error) {
	if domain.AgeAt(dob, uc.now()) < domain.MinAge {
		return nil, domain.ErrUnderage
	}
	return uc.saveUserStep(ctx, userID, domain.StepDOB, func(u *domain.User) {
		u.DOB = &dob
	})
}

func (uc *OnboardingUseCase) SaveGender(ctx context.Context, userID int, gender string) (*domain.User, error) {
	if !domain.IsValidGender(gender) {
		return nil, fmt.Errorf("%w: unknown gender %q", domain.ErrInvalidInput, gender)
	}
	return uc.saveUserStep(ctx, userID, domain.StepGender, func(u *domain.User) {
		u.Gender = &gender
	})
}

func (uc *OnboardingUseCase) SaveLookingFor(ctx context.Context, userID int, selections []string) (*domain.User, error) {
	if len(selections) < domain.MinLookingFor || len(selections) > domain.MaxLookingFor {
		return nil, fmt.Errorf("%w: between %d and %d selections required",
			domain.ErrInvalidInput, domain.MinLookingFor, domain.MaxLookingFor)
	}
	if err := validateSelections(selections, domain.IsValidLookingFor); err != nil {
		return nil, err
	}
	return uc.saveUserStep(ctx, userID, domain.StepLookingFor, func(u *domain.User) {
		u.LookingFor = selections
	})
}

func (uc *OnboardingUseCase) SaveInterestedIn(ctx context.Context, userID int, selections []string) (*domain.User, error) {
	if len(selections) == 0 {
		return nil, fmt.Errorf("%w: at least one selection required", domain.ErrInvalidInput)
	}
	if err := validateSelections(selections, domain.IsValidInterestedIn); err != nil {
		return nil, err
	}
	return uc.saveUserStep(ctx, userID, domain.StepInterestedIn, func(u *domain.User) {
		u.InterestedIn = selections
	})
}

func validateSelections(selections []string, valid func(string) bool) error {
	seen := make(map[string]bool, len(selections))
	for _, s := range selections {
		if !valid(s) {
			return fmt.Errorf("%w: unknown option %q", domain.ErrInvalidInput, s)
		}
		if seen[s] {
			return fmt.Errorf("%w: duplicate option %q", domain.ErrInvalidInput, s)
		}
		seen[s] = true
	}
	return nil
}

func (uc *OnboardingUseCase) SaveHeight(ctx context.Context, userID, heightCm int) (*domain.User, error) {
	if heightCm < domain.MinHeightCm || heightCm > domain.MaxHeightCm {
		return nil, fmt.Errorf("%w: height must be between %d and %d cm",
			domain.ErrInvalidInput, domain.MinHeightCm, domain.MaxHeightCm)
	}
	return uc.saveUserStep(ctx, userID, domain.StepHeight, func(u *domain.User) {
		u.HeightCm = &heightCm
	})
}

// SaveAvailability writes the 8-day availability window to the profile row
// and advances the cursor.
func (uc *OnboardingUseCase) SaveAvailability(ctx context.Context, userID int, days []bool) (*domain.User, error) {
	if len(days) != domain.AvailabilityDays {
		return nil, fmt.Errorf("%w: exactly %d days expected", domain.ErrInvalidInput, domain.AvailabilityDays)
	}

	profile, err := uc.getOrCreateProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	profile.AvailableNext8Days = days
	if err := uc.profileRepo.Update(ctx, profile); err != nil {
		return nil, fmt.Errorf("failed to save availability: %w", err)
	}

	return uc.saveUserStep(ctx, userID, domain.StepAvailability, func(*domain.User) {})
}

// CompletePhotos advances past the photos step once the minimum photo count
// is met. Uploads themselves go through the upload endpoint.
func (uc *OnboardingUseCase) CompletePhotos(ctx context.Context, userID int) (*domain.User, error) {
	count, err := uc.photoRepo.CountByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to count photos: %w", err)
	}
	if count < domain.MinPhotos {
		return nil, domain.ErrTooFewPhotos
	}
	return uc.saveUserStep(ctx, userID, domain.StepPhotos, func(*domain.User) {})
}

// SaveLocation is the final step: it records coordinates and completes
// onboarding. OnboardingCompleted is set here and nowhere else.
func (uc *OnboardingUseCase) SaveLocation(ctx context.Context, userID int, lat, lon float64) (*domain.User, error) {
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return nil, fmt.Errorf("%w: coordinates out of range", domain.ErrInvalidInput)
	}

	profile, err := uc.getOrCreateProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	updatedAt := uc.now()
	profile.LocationLat = &lat
	profile.LocationLon = &lon
	profile.LocationUpdatedAt = &updatedAt
	if err := uc.profileRepo.Update(ctx, profile); err != nil {
		return nil, fmt.Errorf("failed to save location: %w", err)
	}

	return uc.saveUserStep(ctx, userID, domain.StepLocation, func(u *domain.User) {
		u.OnboardingCompleted = true
	})
}

func (uc *OnboardingUseCase) getOrCreateProfile(ctx context.Context, userID int) (*domain.Profile, error) {
	profile, err := uc.profileRepo.GetByUserID(ctx, userID)
	if err == nil {
		return profile, nil
	}
	if err != domain.ErrProfileNotFound {
		return nil, err
	}

	profile = &domain.Profile{UserID: userID}
	if err := uc.profileRepo.Create(ctx, profile); err != nil {
		return nil, fmt.Errorf("failed to create profile row: %w", err)
	}
	return profile, nil
}
