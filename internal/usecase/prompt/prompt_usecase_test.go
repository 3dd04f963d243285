package prompt

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
func (r *fakeUserRepo) Update(_ context.Context, user *domain.User) error {
	cp := *user
	r.user = &cp
	return nil
}

type fakeProfileRepo struct {
	saved domain.PromptList
}

func (r *fakeProfileRepo) Create(_ context.Context, profile *domain.Profile) error { return nil }
func (r *fakeProfileRepo) GetByUserID(_ context.Context, userID int) (*domain.Profile, error) {
	return nil, domain.ErrProfileNotFound
}
func (r *fakeProfileRepo) Update(_ context.Context, profile *domain.Profile) error { return nil }
func (r *fakeProfileRepo) UpsertPrompts(_ context.Context, userID int, prompts domain.PromptList) error {
	r.saved = prompts
	return nil
}

type fakeCache struct{}

func (fakeCache) GetDocument(_ context.Context, userID int) (*domain.ProfileDocument, error) {
	return nil, nil
}
func (fakeCache) SetDocument(_ context.Context, doc *domain.ProfileDocument) error { return nil }
func (fakeCache) Invalidate(_ context.Context, userID int) error                   { return nil }

func newUseCase(user *domain.User) (*PromptUseCase, *fakeUserRepo, *fakeProfileRepo) {
	users := &fakeUserRepo{user: user}
	profiles := &fakeProfileRepo{}
	return NewPromptUseCase(users, profiles, fakeCache{}, logging.NewNop()), users, profiles
}

func TestSavePrompts(t *testing.T) {
	uc, users, profiles := newUseCase(&domain.User{ID: 1, OnboardingStep: domain.StepPrompts})

	saved, err := uc.SavePrompts(context.Background(), 1, []PromptInput{
		{Question: "Two truths and a lie", Answer: "I can juggle"},
		{Question: "  My simple pleasures ", Answer: "  fresh bread  "},
	})
	require.NoError(t, err)
	require.Len(t, saved, 2)
	assert.NotEmpty(t, saved[0].ID)
	assert.Equal(t, "My simple pleasures", saved[1].Question)
	assert.Equal(t, "fresh bread", saved[1].Answer)
	assert.Equal(t, saved, profiles.saved)
	assert.Equal(t, domain.StepPrompts+1, users.user.OnboardingStep)
}

func TestSavePromptsCount(t *testing.T) {
	uc, _, _ := newUseCase(&domain.User{ID: 1, OnboardingStep: domain.StepPrompts})

	_, err := uc.SavePrompts(context.Background(), 1, nil)
	assert.ErrorIs(t, err, domain.ErrPromptCount)

	_, err = uc.SavePrompts(context.Background(), 1, []PromptInput{
		{Question: "Two truths and a lie", Answer: "a"},
		{Question: "My simple pleasures", Answer: "b"},
		{Question: "I geek out on", Answer: "c"},
		{Question: "Best travel story", Answer: "d"},
	})
	assert.ErrorIs(t, err, domain.ErrPromptCount)
}

func TestSavePromptsValidation(t *testing.T) {
	uc, _, profiles := newUseCase(&domain.User{ID: 1, OnboardingStep: domain.StepPrompts})

	_, err := uc.SavePrompts(context.Background(), 1, []PromptInput{
		{Question: "What is your quest", Answer: "the grail"},
	})
	assert.ErrorIs(t, err, domain.ErrUnknownPromptQuestion)

	_, err = uc.SavePrompts(context.Background(), 1, []PromptInput{
		{Question: "Two truths and a lie", Answer: "a"},
		{Question: "Two truths and a lie", Answer: "b"},
	})
	assert.ErrorIs(t, err, domain.ErrDuplicatePromptQuestion)

	_, err = uc.SavePrompts(context.Background(), 1, []PromptInput{
		{Question: "Two truths and a lie", Answer: "   "},
	})
	assert.ErrorIs(t, err, domain.ErrEmptyPromptAnswer)

	// Nothing written on any failure.
	assert.Nil(t, profiles.saved)
}

func TestSavePromptsDoesNotRegressStep(t *testing.T) {
	uc, users, _ := newUseCase(&domain.User{ID: 1, OnboardingStep: domain.StepLocation})

	_, err := uc.SavePrompts(context.Background(), 1, []PromptInput{
		{Question: "Together we could", Answer: "get lost somewhere"},
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StepLocation, users.user.OnboardingStep)
}
