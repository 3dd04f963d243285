package prompt

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/kindredapp/kindred-backend/internal/domain"
	"github.com/kindredapp/kindred-backend/internal/logging"
	"github.com/kindredapp/kindred-backend/internal/repository"
)

type PromptUseCase struct {
	userRepo    repository.UserRepository
	profileRepo repository.ProfileRepository
	cache       repository.ProfileCache
	log         logging.Logger
}

func NewPromptUseCase(
	userRepo repository.UserRepository,
	profileRepo repository.ProfileRepository,
	cache repository.ProfileCache,
	log logging.Logger,
) *PromptUseCase {
	return &PromptUseCase{
		userRepo:    userRepo,
		profileRepo: profileRepo,
		cache:       cache,
		log:         log,
	}
}

// PromptInput is one question/answer pair from the client.
type PromptInput struct {
	Question string `json:"question" binding:"required"`
	Answer   string `json:"answer" binding:"required"`
}

// SavePrompts validates and replaces the user's prompt list, then advances
// the prompts onboarding step. The whole list is rejected on the first
// violation; nothing is written.
func (uc *PromptUseCase) SavePrompts(ctx context.Context, userID int, inputs []PromptInput) (domain.PromptList, error) {
	if len(inputs) < domain.MinPrompts || len(inputs) > domain.MaxPrompts {
		return nil, domain.ErrPromptCount
	}

	prompts := make(domain.PromptList, 0, len(inputs))
	seen := make(map[string]bool, len(inputs))
	for _, in := range inputs {
		question := strings.TrimSpace(in.Question)
		answer := strings.TrimSpace(in.Answer)

		if !domain.IsValidPromptQuestion(question) {
			return nil, fmt.Errorf("%w: %q", domain.ErrUnknownPromptQuestion, question)
		}
		if seen[question] {
			return nil, fmt.Errorf("%w: %q", domain.ErrDuplicatePromptQuestion, question)
		}
		if answer == "" {
			return nil, domain.ErrEmptyPromptAnswer
		}
		seen[question] = true

		prompts = append(prompts, domain.Prompt{
			ID:       uuid.NewString(),
			Question: question,
			Answer:   answer,
		})
	}

	if err := uc.profileRepo.UpsertPrompts(ctx, userID, prompts); err != nil {
		return nil, fmt.Errorf("failed to save prompts: %w", err)
	}

	if err := uc.advanceStep(ctx, userID); err != nil {
		return nil, err
	}

	if err := uc.cache.Invalidate(ctx, userID); err != nil {
		uc.log.Warn(ctx, "failed to invalidate profile cache", "user_id", userID, "error", err)
	}

	return prompts, nil
}

func (uc *PromptUseCase) advanceStep(ctx context.Context, userID int) error {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user.OnboardingCompleted {
		return nil
	}
	if next := domain.StepPrompts + 1; user.OnboardingStep < next {
		user.OnboardingStep = next
		if err := uc.userRepo.Update(ctx, user); err != nil {
			return fmt.Errorf("failed to advance onboarding step: %w", err)
		}
	}
	return nil
}
