package profile

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kindredapp/kindred-backend/internal/domain"
	"github.com/kindredapp/kindred-backend/internal/logging"
)

type fakeUserRepo struct {
	user *domain.User
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) error { return nil }
func (r *fakeUserRepo) GetByID(_ context.Context, id int) (*domain.User, error) {
	if r.user == nil || r.user.ID != id {
		return nil, domain.ErrUserNotFound
	}
	cp := *r.user
	return &cp, nil
}
func (r *fakeUserRepo) GetByProvider(_ context.Context, provider domain.Provider, subject string) (*domain.User, error) {
	return nil, domain.ErrUserNotFound
}
func (r *fakeUserRepo) Update(_ context.Context, user *domain.User) error { return nil }

type fakeProfileRepo struct {
	profile *domain.Profile
	created int
}

func (r *fakeProfileRepo) Create(_ context.Context, profile *domain.Profile) error {
	r.created++
	cp := *profile
	r.profile = &cp
	return nil
}
func (r *fakeProfileRepo) GetByUserID(_ context.Context, userID int) (*domain.Profile, error) {
	if r.profile == nil || r.profile.UserID != userID {
		return nil, domain.ErrProfileNotFound
	}
	cp := *r.profile
	return &cp, nil
}
func (r *fakeProfileRepo) Update(_ context.Context, profile *domain.Profile) error {
	cp := *profile
	r.profile = &cp
	return nil
}
func (r *fakeProfileRepo) UpsertPrompts(_ context.Context, userID int, prompts domain.PromptList) error {
	return nil
}

type fakePhotoRepo struct {
	photos []domain.Photo
}

func (r *fakePhotoRepo) Create(_ context.Context, photo *domain.Photo) error { return nil }
func (r *fakePhotoRepo) GetByID(_ context.Context, id int) (*domain.Photo, error) {
	return nil, domain.ErrPhotoNotFound
}
func (r *fakePhotoRepo) ListByUserID(_ context.Context, userID int) ([]domain.Photo, error) {
	return r.photos, nil
}
func (r *fakePhotoRepo) CountByUserID(_ context.Context, userID int) (int, error) {
	return len(r.photos), nil
}
func (r *fakePhotoRepo) Delete(_ context.Context, id int) error           { return nil }
func (r *fakePhotoRepo) CompactPositions(_ context.Context, id int) error { return nil }

type fakeCache struct {
	doc  *domain.ProfileDocument
	sets int
}

func (c *fakeCache) GetDocument(_ context.Context, userID int) (*domain.ProfileDocument, error) {
	return c.doc, nil
}
func (c *fakeCache) SetDocument(_ context.Context, doc *domain.ProfileDocument) error {
	c.doc = doc
	c.sets++
	return nil
}
func (c *fakeCache) Invalidate(_ context.Context, userID int) error {
	c.doc = nil
	return nil
}

func TestGetDocumentCacheMiss(t *testing.T) {
	users := &fakeUserRepo{user: &domain.User{ID: 1, Email: "ada@example.com"}}
	profiles := &fakeProfileRepo{profile: &domain.Profile{UserID: 1}}
	photos := &fakePhotoRepo{photos: []domain.Photo{{ID: 3, UserID: 1}}}
	cache := &fakeCache{}
	uc := NewProfileUseCase(users, profiles, photos, cache, logging.NewNop())

	doc, err := uc.GetDocument(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", doc.User.Email)
	require.NotNil(t, doc.Profile)
	assert.Len(t, doc.Photos, 1)
	assert.Equal(t, 1, cache.sets, "assembled document goes into the cache")
}

func TestGetDocumentCacheHit(t *testing.T) {
	cached := &domain.ProfileDocument{User: domain.User{ID: 1, Email: "cached@example.com"}}
	cache := &fakeCache{doc: cached}
	// Nil user repo state: a repo read would fail, proving the hit path.
	uc := NewProfileUseCase(&fakeUserRepo{}, &fakeProfileRepo{}, &fakePhotoRepo{}, cache, logging.NewNop())

	doc, err := uc.GetDocument(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "cached@example.com", doc.User.Email)
}

func TestGetDocumentWithoutProfileRow(t *testing.T) {
	users := &fakeUserRepo{user: &domain.User{ID: 1}}
	uc := NewProfileUseCase(users, &fakeProfileRepo{}, &fakePhotoRepo{}, &fakeCache{}, logging.NewNop())

	doc, err := uc.GetDocument(context.Background(), 1)
	require.NoError(t, err)
	assert.Nil(t, doc.Profile, "missing profile row is a valid pre-onboarding state")
}

func TestUpdateBio(t *testing.T) {
	users := &fakeUserRepo{user: &domain.User{ID: 1}}
	profiles := &fakeProfileRepo{}
	cache := &fakeCache{doc: &domain.ProfileDocument{}}
	uc := NewProfileUseCase(users, profiles, &fakePhotoRepo{}, cache, logging.NewNop())

	updated, err := uc.UpdateBio(context.Background(), 1, "ask me about my plants")
	require.NoError(t, err)
	require.NotNil(t, updated.Bio)
	assert.Equal(t, "ask me about my plants", *updated.Bio)
	assert.Equal(t, 1, profiles.created, "profile row is created on first write")
	assert.Nil(t, cache.doc, "cached document is invalidated")
}
