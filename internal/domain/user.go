package domain

import "time"

// Provider identifies a federated sign-in provider.
type Provider string

const (
	ProviderGoogle Provider = "google"
	ProviderApple  Provider = "apple"
)

// MinAge is the minimum age required to use the app.
const MinAge = 18

// User is the account row. Identity comes from a social provider; the
// onboarding fields are filled in one step at a time.
type User struct {
	ID                  int        `json:"id" db:"id"`
	Email               string     `json:"email" db:"email"`
	GoogleID            *string    `json:"-" db:"google_id"`
	AppleID             *string    `json:"-" db:"apple_id"`
	DisplayName         *string    `json:"display_name" db:"display_name"`
	Surname             *string    `json:"surname" db:"surname"`
	DOB                 *time.Time `json:"dob" db:"dob"`
	Gender              *string    `json:"gender" db:"gender"`
	LookingFor          []string   `json:"looking_for" db:"looking_for"`
	InterestedIn        []string   `json:"interested_in" db:"interested_in"`
	HeightCm            *int       `json:"height_cm" db:"height_cm"`
	OnboardingStep      int        `json:"onboarding_step" db:"onboarding_step"`
	OnboardingCompleted bool       `json:"onboarding_completed" db:"onboarding_completed"`
	CreatedAt           time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at" db:"updated_at"`
}

// AgeAt returns the age in whole years at the reference date, using the
// calendar anniversary rather than a fixed-365-day approximation.
func AgeAt(dob, on time.Time) int {
	age := on.Year() - dob.Year()
	anniversary := time.Date(on.Year(), dob.Month(), dob.Day(), 0, 0, 0, 0, on.Location())
	if on.Before(anniversary) {
		age--
	}
	return age
}

// Age returns the user's current age, or 0 if the dob step has not been saved.
func (u *User) Age() int {
	if u.DOB == nil {
		return 0
	}
	return AgeAt(*u.DOB, time.Now())
}
