package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/kindredapp/kindred-backend/internal/domain"
	"github.com/kindredapp/kindred-backend/internal/repository"
)

type userRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) repository.UserRepository {
	return &userRepository{db: db}
}

const userColumns = `
	id, email, google_id, apple_id, display_name, surname, dob, gender,
	looking_for, interested_in, height_cm, onboarding_step,
	onboarding_completed, created_at, updated_at
`

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO users (email, google_id, apple_id, display_name, surname, onboarding_step)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, onboarding_completed, created_at, updated_at
	`
	return r.db.QueryRowContext(
		ctx, query,
		user.Email, user.GoogleID, user.AppleID,
		user.DisplayName, user.Surname, user.OnboardingStep,
	).Scan(&user.ID, &user.OnboardingCompleted, &user.CreatedAt, &user.UpdatedAt)
}

func (r *userRepository) scanUser(row *sql.Row) (*domain.User, error) {
	var user domain.User
	err := row.Scan(
		&user.ID, &user.Email, &user.GoogleID, &user.AppleID,
		&user.DisplayName, &user.Surname, &user.DOB, &user.Gender,
		pq.Array(&user.LookingFor), pq.Array(&user.InterestedIn),
		&user.HeightCm, &user.OnboardingStep, &user.OnboardingCompleted,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetByID(ctx context.Context, id int) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return r.scanUser(r.db.QueryRowContext(ctx, query, id))
}

func (r *userRepository) GetByProvider(ctx context.Context, provider domain.Provider, subject string) (*domain.User, error) {
	var column string
	switch provider {
	case domain.ProviderGoogle:
		column = "google_id"
	case domain.ProviderApple:
		column = "apple_id"
	default:
		return nil, fmt.Errorf("%w: unknown provider %q", domain.ErrInvalidInput, provider)
	}

	query := `SELECT ` + userColumns + ` FROM users WHERE ` + column + ` = $1`
	return r.scanUser(r.db.QueryRowContext(ctx, query, subject))
}

func (r *userRepository) Update(ctx context.Context, user *domain.User) error {
	query := `
		UPDATE users
		SET email = $1, google_id = $2, apple_id = $3,
		    display_name = $4, surname = $5, dob = $6, gender = $7,
		    looking_for = $8, interested_in = $9, height_cm = $10,
		    onboarding_step = $11, onboarding_completed = $12,
		    updated_at = CURRENT_TIMESTAMP
		WHERE id = $13
		RETURNING updated_at
	`
	err := r.db.QueryRowContext(
		ctx, query,
		user.Email, user.GoogleID, user.AppleID,
		user.DisplayName, user.Surname, user.DOB, user.Gender,
		pq.Array(user.LookingFor), pq.Array(user.InterestedIn), user.HeightCm,
		user.OnboardingStep, user.OnboardingCompleted,
		user.ID,
	).Scan(&user.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrUserNotFound
	}
	return err
}
