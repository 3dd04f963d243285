// Package repository declares the persistence interfaces the use cases
// depend on. Concrete implementations live in the postgres and redis
// subpackages.
package repository

import (
	"context"

	"github.com/kindredapp/kindred-backend/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int) (*domain.User, error)
	GetByProvider(ctx context.Context, provider domain.Provider, subject string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
}

type ProfileRepository interface {
	Create(ctx context.Context, profile *domain.Profile) error
	GetByUserID(ctx context.Context, userID int) (*domain.Profile, error)
	Update(ctx context.Context, profile *domain.Profile) error
	// UpsertPrompts replaces the prompts list, creating the profile row if
	// it does not exist yet.
	UpsertPrompts(ctx context.Context, userID int, prompts domain.PromptList) error
}

type PhotoRepository interface {
	Create(ctx context.Context, photo *domain.Photo) error
	GetByID(ctx context.Context, id int) (*domain.Photo, error)
	ListByUserID(ctx context.Context, userID int) ([]domain.Photo, error)
	CountByUserID(ctx context.Context, userID int) (int, error)
	Delete(ctx context.Context, id int) error
	// CompactPositions renumbers a user's photos to 0..n-1 keeping order.
	CompactPositions(ctx context.Context, userID int) error
}

type SessionRepository interface {
	Create(ctx context.Context, session *domain.Session) error
	GetByTokenHash(ctx context.Context, hash string) (*domain.Session, error)
	DeleteByTokenHash(ctx context.Context, hash string) error
	DeleteByUserID(ctx context.Context, userID int) error
}

// ProfileCache caches the combined profile document. A miss is (nil, nil);
// cache failures are never fatal to the request.
type ProfileCache interface {
	GetDocument(ctx context.Context, userID int) (*domain.ProfileDocument, error)
	SetDocument(ctx context.Context, doc *domain.ProfileDocument) error
	Invalidate(ctx context.Context, userID int) error
}
