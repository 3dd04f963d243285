package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/kindredapp/kindred-backend/internal/domain"
	"github.com/kindredapp/kindred-backend/internal/repository"
)

type profileRepository struct {
	db *sqlx.DB
}

func NewProfileRepository(db *sqlx.DB) repository.ProfileRepository {
	return &profileRepository{db: db}
}

// availabilityArray adapts the slice for the boolean[] column. A nil slice
// must become an empty array, not SQL NULL: the column is NOT NULL and fresh
// profile rows are created before the availability step has run.
func availabilityArray(days []bool) pq.BoolArray {
	if days == nil {
		return pq.BoolArray{}
	}
	return pq.BoolArray(days)
}

func (r *profileRepository) Create(ctx context.Context, profile *domain.Profile) error {
	query := `
		INSERT INTO profiles (user_id, bio, prompts, available_next8_days, location_lat, location_lon, location_updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at
	`
	return r.db.QueryRowContext(
		ctx, query,
		profile.UserID, profile.Bio, profile.Prompts,
		availabilityArray(profile.AvailableNext8Days),
		profile.LocationLat, profile.LocationLon, profile.LocationUpdatedAt,
	).Scan(&profile.CreatedAt, &profile.UpdatedAt)
}

func (r *profileRepository) GetByUserID(ctx context.Context, userID int) (*domain.Profile, error) {
	var profile domain.Profile
	query := `
		SELECT user_id, bio, prompts, available_next8_days,
		       location_lat, location_lon, location_updated_at,
		       created_at, updated_at
		FROM profiles WHERE user_id = $1
	`
	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&profile.UserID, &profile.Bio, &profile.Prompts,
		pq.Array(&profile.AvailableNext8Days),
		&profile.LocationLat, &profile.LocationLon, &profile.LocationUpdatedAt,
		&profile.CreatedAt, &profile.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, err
	}
	return &profile, nil
}

func (r *profileRepository) Update(ctx context.Context, profile *domain.Profile) error {
	query := `
		UPDATE profiles
		SET bio = $1, prompts = $2, available_next8_days = $3,
		    location_lat = $4, location_lon = $5, location_updated_at = $6,
		    updated_at = CURRENT_TIMESTAMP
		WHERE user_id = $7
		RETURNING updated_at
	`
	err := r.db.QueryRowContext(
		ctx, query,
		profile.Bio, profile.Prompts, availabilityArray(profile.AvailableNext8Days),
		profile.LocationLat, profile.LocationLon, profile.LocationUpdatedAt,
		profile.UserID,
	).Scan(&profile.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrProfileNotFound
	}
	return err
}

func (r *profileRepository) UpsertPrompts(ctx context.Context, userID int, prompts domain.PromptList) error {
	query := `
		INSERT INTO profiles (user_id, prompts)
		VALUES ($1, $2)
		ON CONFLICT (user_id)
		DO UPDATE SET prompts = EXCLUDED.prompts, updated_at = CURRENT_TIMESTAMP
	`
	_, err := r.db.ExecContext(ctx, query, userID, prompts)
	return err
}
