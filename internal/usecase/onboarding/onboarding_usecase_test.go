package onboarding

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kindredapp/kindred-backend/internal/domain"
	"github.com/kindredapp/kindred-backend/internal/logging"
)

type fakeUserRepo struct {
	users map[int]*domain.User
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	user.ID = len(r.users) + 1
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id int) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) GetByProvider(_ context.Context, provider domain.Provider, subject string) (*domain.User, error) {
	return nil, domain.ErrUserNotFound
}

func (r *fakeUserRepo) Update(_ context.Context, user *domain.User) error {
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

type fakeProfileRepo struct {
	profiles map[int]*domain.Profile
}

func (r *fakeProfileRepo) Create(_ context.Context, profile *domain.Profile) error {
	r.profiles[profile.UserID] = profile
	return nil
}

func (r *fakeProfileRepo) GetByUserID(_ context.Context, userID int) (*domain.Profile, error) {
	p, ok := r.profiles[userID]
	if !ok {
		return nil, domain.ErrProfileNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProfileRepo) Update(_ context.Context, profile *domain.Profile) error {
	cp := *profile
	r.profiles[profile.UserID] = &cp
	return nil
}

func (r *fakeProfileRepo) UpsertPrompts(_ context.Context, userID int, prompts domain.PromptList) error {
	p, ok := r.profiles[userID]
	if !ok {
		p = &domain.Profile{UserID: userID}
		r.profiles[userID] = p
	}
	p.Prompts = prompts
	return nil
}

type fakePhotoRepo struct {
	count int
}

func (r *fakePhotoRepo) Create(_ context.Context, photo *domain.Photo) error { return nil }
func (r *fakePhotoRepo) GetByID(_ context.Context, id int) (*domain.Photo, error) {
	return nil, domain.ErrPhotoNotFound
}
func (r *fakePhotoRepo) ListByUserID(_ context.Context, userID int) ([]domain.Photo, error) {
	return nil, nil
}
func (r *fakePhotoRepo) CountByUserID(_ context.Context, userID int) (int, error) {
	return r.count, nil
}
func (r *fakePhotoRepo) Delete(_ context.Context, id int) error           { return nil }
func (r *fakePhotoRepo) CompactPositions(_ context.Context, id int) error { return nil }

type fakeCache struct {
	invalidated int
}

func (c *fakeCache) GetDocument(_ context.Context, userID int) (*domain.ProfileDocument, error) {
	return nil, nil
}
func (c *fakeCache) SetDocument(_ context.Context, doc *domain.ProfileDocument) error { return nil }
func (c *fakeCache) Invalidate(_ context.Context, userID int) error {
	c.invalidated++
	return nil
}

type fixture struct {
	uc       *OnboardingUseCase
	users    *fakeUserRepo
	profiles *fakeProfileRepo
	photos   *fakePhotoRepo
	cache    *fakeCache
}

func newFixture(t *testing.T, user *domain.User) *fixture {
	t.Helper()
	users := &fakeUserRepo{users: map[int]*domain.User{}}
	if user != nil {
		users.users[user.ID] = user
	}
	profiles := &fakeProfileRepo{profiles: map[int]*domain.Profile{}}
	photos := &fakePhotoRepo{}
	cache := &fakeCache{}
	uc := NewOnboardingUseCase(users, profiles, photos, cache, logging.NewNop())
	return &fixture{uc: uc, users: users, profiles: profiles, photos: photos, cache: cache}
}

func TestSaveName(t *testing.T) {
	f := newFixture(t, &domain.User{ID: 1, OnboardingStep: domain.StepName})

	user, err := f.uc.SaveName(context.Background(), 1, "Ada", "Lovelace")
	require.NoError(t, err)
	require.NotNil(t, user.DisplayName)
	assert.Equal(t, "Ada", *user.DisplayName)
	assert.Equal(t, domain.StepDOB, user.OnboardingStep)
	assert.Equal(t, 1, f.cache.invalidated)
}

func TestSaveNameEmpty(t *testing.T) {
	f := newFixture(t, &domain.User{ID: 1, OnboardingStep: domain.StepName})

	_, err := f.uc.SaveName(context.Background(), 1, "", "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, domain.StepName, f.users.users[1].OnboardingStep)
}

func TestSaveDOBAgeBoundary(t *testing.T) {
	now := time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)

	t.Run("day before 18th birthday", func(t *testing.T) {
		f := newFixture(t, &domain.User{ID: 1, OnboardingStep: domain.StepDOB})
		f.uc.now = func() time.Time { return now }

		dob := time.Date(2008, 6, 16, 0, 0, 0, 0, time.UTC)
		_, err := f.uc.SaveDOB(context.Background(), 1, dob)
		assert.ErrorIs(t, err, domain.ErrUnderage)
	})

	t.Run("18th birthday", func(t *testing.T) {
		f := newFixture(t, &domain.User{ID: 1, OnboardingStep: domain.StepDOB})
		f.uc.now = func() time.Time { return now }

		dob := time.Date(2008, 6, 15, 0, 0, 0, 0, time.UTC)
		user, err := f.uc.SaveDOB(context.Background(), 1, dob)
		require.NoError(t, err)
		assert.Equal(t, domain.StepGender, user.OnboardingStep)
	})
}

func TestSaveGender(t *testing.T) {
	f := newFixture(t, &domain.User{ID: 1, OnboardingStep: domain.StepGender})

	_, err := f.uc.SaveGender(context.Background(), 1, "robot")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	user, err := f.uc.SaveGender(context.Background(), 1, "woman")
	require.NoError(t, err)
	assert.Equal(t, domain.StepLookingFor, user.OnboardingStep)
}

func TestSaveLookingFor(t *testing.T) {
	tests := []struct {
		name       string
		selections []string
		wantErr    bool
	}{
		{"one valid", []string{"long-term"}, false},
		{"three valid", []string{"long-term", "casual", "new-friends"}, false},
		{"empty", nil, true},
		{"too many", []string{"long-term", "short-term", "casual", "new-friends"}, true},
		{"unknown option", []string{"marriage"}, true},
		{"duplicate", []string{"casual", "casual"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, &domain.User{ID: 1, OnboardingStep: domain.StepLookingFor})
			user, err := f.uc.SaveLookingFor(context.Background(), 1, tt.selections)
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrInvalidInput)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.selections, user.LookingFor)
			assert.Equal(t, domain.StepInterestedIn, user.OnboardingStep)
		})
	}
}

func TestSaveInterestedIn(t *testing.T) {
	f := newFixture(t, &domain.User{ID: 1, OnboardingStep: domain.StepInterestedIn})

	_, err := f.uc.SaveInterestedIn(context.Background(), 1, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	user, err := f.uc.SaveInterestedIn(context.Background(), 1, []string{"women", "nonbinary"})
	require.NoError(t, err)
	assert.Equal(t, domain.StepHeight, user.OnboardingStep)
}

func TestSaveHeightBounds(t *testing.T) {
	f := newFixture(t, &domain.User{ID: 1, OnboardingStep: domain.StepHeight})

	for _, h := range []int{89, 251, 0, -10} {
		_, err := f.uc.SaveHeight(context.Background(), 1, h)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "height %d", h)
	}

	user, err := f.uc.SaveHeight(context.Background(), 1, 172)
	require.NoError(t, err)
	require.NotNil(t, user.HeightCm)
	assert.Equal(t, 172, *user.HeightCm)
}

func TestSaveAvailability(t *testing.T) {
	f := newFixture(t, &domain.User{ID: 1, OnboardingStep: domain.StepAvailability})

	_, err := f.uc.SaveAvailability(context.Background(), 1, []bool{true, false})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	days := []bool{true, false, true, false, true, false, true, true}
	user, err := f.uc.SaveAvailability(context.Background(), 1, days)
	require.NoError(t, err)
	assert.Equal(t, domain.StepPhotos, user.OnboardingStep)
	assert.Equal(t, days, f.profiles.profiles[1].AvailableNext8Days)
}

func TestCompletePhotos(t *testing.T) {
	f := newFixture(t, &domain.User{ID: 1, OnboardingStep: domain.StepPhotos})

	f.photos.count = 1
	_, err := f.uc.CompletePhotos(context.Background(), 1)
	assert.ErrorIs(t, err, domain.ErrTooFewPhotos)

	f.photos.count = 2
	user, err := f.uc.CompletePhotos(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, domain.StepPrompts, user.OnboardingStep)
}

func TestSaveLocationCompletes(t *testing.T) {
	f := newFixture(t, &domain.User{ID: 1, OnboardingStep: domain.StepLocation})
	loc := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	f.uc.now = func() time.Time { return loc }

	_, err := f.uc.SaveLocation(context.Background(), 1, 91, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	user, err := f.uc.SaveLocation(context.Background(), 1, 52.37, 4.89)
	require.NoError(t, err)
	assert.True(t, user.OnboardingCompleted)
	assert.Equal(t, domain.StepLocation, user.OnboardingStep)

	profile := f.profiles.profiles[1]
	require.NotNil(t, profile.LocationLat)
	assert.InDelta(t, 52.37, *profile.LocationLat, 1e-9)
	require.NotNil(t, profile.LocationUpdatedAt)
	assert.Equal(t, loc, *profile.LocationUpdatedAt)
}

func TestAdvanceNeverRegresses(t *testing.T) {
	f := newFixture(t, &domain.User{ID: 1, OnboardingStep: domain.StepHeight})

	// Re-saving an earlier screen rewrites the field without moving the
	// cursor backwards.
	user, err := f.uc.SaveName(context.Background(), 1, "Ada", "")
	require.NoError(t, err)
	assert.Equal(t, domain.StepHeight, user.OnboardingStep)
}

func TestAdvanceNoopAfterCompletion(t *testing.T) {
	f := newFixture(t, &domain.User{
		ID:                  1,
		OnboardingStep:      domain.StepLocation,
		OnboardingCompleted: true,
	})

	user, err := f.uc.SaveGender(context.Background(), 1, "man")
	require.NoError(t, err)
	assert.Equal(t, domain.StepLocation, user.OnboardingStep)
	assert.True(t, user.OnboardingCompleted)
}

func TestResolveRoute(t *testing.T) {
	f := newFixture(t, &domain.User{ID: 1, OnboardingStep: domain.StepHeight})

	decision, err := f.uc.ResolveRoute(context.Background(), 1, domain.RouteMainApp)
	require.NoError(t, err)
	assert.Equal(t, domain.ActionRedirect, decision.Action)
	assert.Equal(t, domain.RouteOnboardingHeight, decision.Target)
}

func TestResolveRouteUnknownUser(t *testing.T) {
	f := newFixture(t, nil)

	_, err := f.uc.ResolveRoute(context.Background(), 42, domain.RouteMainApp)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
