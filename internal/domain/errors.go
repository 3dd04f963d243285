package domain

import "errors"

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrProfileNotFound = errors.New("profile not found")
	ErrPhotoNotFound   = errors.New("photo not found")

	ErrInvalidToken          = errors.New("invalid token")
	ErrSessionNotFound       = errors.New("session not found")
	ErrSessionExpired        = errors.New("session expired")
	ErrInvalidProviderToken  = errors.New("invalid provider token")
	ErrProviderNotConfigured = errors.New("sign-in provider not configured")

	// ErrSignInCancelled marks a user-cancelled social sign-in. Callers must
	// treat it as a no-op result, never as a failure.
	ErrSignInCancelled = errors.New("sign-in cancelled")

	ErrInvalidInput = errors.New("invalid input")
	ErrInvalidDate  = errors.New("invalid date")
	ErrUnderage     = errors.New("must be at least 18 years old")

	ErrTooFewPhotos      = errors.New("at least 2 photos are required")
	ErrPhotoLimitReached = errors.New("photo limit reached")

	ErrPromptCount             = errors.New("between 1 and 3 prompts are required")
	ErrUnknownPromptQuestion   = errors.New("unknown prompt question")
	ErrDuplicatePromptQuestion = errors.New("duplicate prompt question")
	ErrEmptyPromptAnswer       = errors.New("prompt answer must not be empty")
)
