package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/kindredapp/kindred-backend/internal/domain"
	"github.com/kindredapp/kindred-backend/internal/repository"
)

type photoRepository struct {
	db *sqlx.DB
}

func NewPhotoRepository(db *sqlx.DB) repository.PhotoRepository {
	return &photoRepository{db: db}
}

func (r *photoRepository) Create(ctx context.Context, photo *domain.Photo) error {
	query := `
		INSERT INTO photos (user_id, image_url, storage_key, position)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`
	return r.db.QueryRowContext(
		ctx, query,
		photo.UserID, photo.ImageURL, photo.StorageKey, photo.Position,
	).Scan(&photo.ID, &photo.CreatedAt)
}

func (r *photoRepository) GetByID(ctx context.Context, id int) (*domain.Photo, error) {
	var photo domain.Photo
	query := `SELECT id, user_id, image_url, storage_key, position, created_at FROM photos WHERE id = $1`
	err := r.db.GetContext(ctx, &photo, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrPhotoNotFound
		}
		return nil, err
	}
	return &photo, nil
}

func (r *photoRepository) ListByUserID(ctx context.Context, userID int) ([]domain.Photo, error) {
	photos := []domain.Photo{}
	query := `
		SELECT id, user_id, image_url, storage_key, position, created_at
		FROM photos
		WHERE user_id = $1
		ORDER BY position
	`
	err := r.db.SelectContext(ctx, &photos, query, userID)
	return photos, err
}

func (r *photoRepository) CountByUserID(ctx context.Context, userID int) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM photos WHERE user_id = $1`
	err := r.db.GetContext(ctx, &count, query, userID)
	return count, err
}

func (r *photoRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM photos WHERE id = $1`, id)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrPhotoNotFound
	}
	return nil
}

func (r *photoRepository) CompactPositions(ctx context.Context, userID int) error {
	query := `
		UPDATE photos
		SET position = ranked.new_position
		FROM (
			SELECT id, ROW_NUMBER() OVER (ORDER BY position) - 1 AS new_position
			FROM photos
			WHERE user_id = $1
		) ranked
		WHERE photos.id = ranked.id
	`
	_, err := r.db.ExecContext(ctx, query, userID)
	return err
}
