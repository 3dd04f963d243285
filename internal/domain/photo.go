package domain

import "time"

const (
	// MinPhotos must be uploaded before the photos step can complete.
	MinPhotos = 2
	// MaxPhotos caps uploads per profile.
	MaxPhotos = 6
)

// Photo is one uploaded image, ordered by Position (0 = primary).
type Photo struct {
	ID         int       `json:"id" db:"id"`
	UserID     int       `json:"user_id" db:"user_id"`
	ImageURL   string    `json:"image_url" db:"image_url"`
	StorageKey string    `json:"-" db:"storage_key"`
	Position   int       `json:"position" db:"position"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}
