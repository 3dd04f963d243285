package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// AvailabilityDays is the length of the availability window shown during
// onboarding (today plus the next seven days).
const AvailabilityDays = 8

// Profile holds the extended per-user record beyond the account row.
// A signed-in user without a profile row is a valid pre-onboarding state.
type Profile struct {
	UserID             int        `json:"user_id" db:"user_id"`
	Bio                *string    `json:"bio" db:"bio"`
	Prompts            PromptList `json:"prompts" db:"prompts"`
	AvailableNext8Days []bool     `json:"available_next8_days" db:"available_next8_days"`
	LocationLat        *float64   `json:"location_lat" db:"location_lat"`
	LocationLon        *float64   `json:"location_lon" db:"location_lon"`
	LocationUpdatedAt  *time.Time `json:"location_updated_at" db:"location_updated_at"`
	CreatedAt          time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at" db:"updated_at"`
}

// Prompt is one question/answer pair on a profile. Questions come from
// PromptCatalog and must be unique within a profile.
type Prompt struct {
	ID       string `json:"id"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// PromptList is stored as a jsonb column.
type PromptList []Prompt

func (p PromptList) Value() (driver.Value, error) {
	if p == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(p)
}

func (p *PromptList) Scan(src any) error {
	if src == nil {
		*p = nil
		return nil
	}
	var data []byte
	switch v := src.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into PromptList", src)
	}
	return json.Unmarshal(data, p)
}

// ProfileDocument is the combined view the client paints from: account row,
// profile row (nil pre-onboarding) and ordered photos. It is also the unit
// cached in Redis.
type ProfileDocument struct {
	User    User     `json:"user"`
	Profile *Profile `json:"profile,omitempty"`
	Photos  []Photo  `json:"photos"`
}
