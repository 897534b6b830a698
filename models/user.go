package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Motivation levels a user can pick for their KPI settings.
const (
	LevelJustLooking  = "Just Looking"
	LevelReallyWantIt = "Really Want It"
	LevelDesperate    = "Desperate"
)

// DefaultDailyTarget is the daily application target assigned to newly
// registered users until they change it.
const DefaultDailyTarget = 10

// KPISettings holds the per-user targets used to derive progress percentages.
type KPISettings struct {
	// DailyTarget is the number of applications the user aims to send per day.
	// Always a positive integer; weekly and monthly targets are derived from it.
	DailyTarget int `json:"dailyTarget"`

	// Level is the user's self-declared motivation level. One of the Level*
	// constants.
	Level string `json:"level"`

	// DreamCompanies is the ordered list of companies the user especially
	// wants to join.
	DreamCompanies StringSlice `json:"dreamCompanies"`
}

// StringSlice is a list of strings persisted as a JSONB column.
// It implements driver.Valuer and sql.Scanner so it can be read and written
// through database/sql directly.
type StringSlice []string

// Value serializes the slice to JSON. A nil slice is stored as an empty
// JSON array, never as SQL NULL.
func (s StringSlice) Value() (driver.Value, error) {
	if s == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(s)
}

// Scan deserializes a JSON array from the database into the slice.
func (s *StringSlice) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*s = StringSlice{}
		return nil
	case []byte:
		return json.Unmarshal(v, s)
	case string:
		return json.Unmarshal([]byte(v), s)
	default:
		return fmt.Errorf("unsupported type %T for StringSlice", src)
	}
}

// Stats is the denormalized per-user counter cache mirroring the
// job_applications table. It is recomputed from the source records after every
// application mutation, never incremented in place.
type Stats struct {
	TotalApplications     int `json:"totalApplications"`
	ApplicationsThisMonth int `json:"applicationsThisMonth"`
	ApplicationsThisWeek  int `json:"applicationsThisWeek"`
	ApplicationsToday     int `json:"applicationsToday"`

	// LastApplicationDate is the instant the user last created an application,
	// or nil if they never created one.
	LastApplicationDate *time.Time `json:"lastApplicationDate"`
}

// User represents an account entity used for authentication and authorization.
// Exactly one of {PasswordHash set, IsGoogleUser with GoogleID set} holds for
// every persisted record.
type User struct {
	// UserID is the internal unique identifier of the user.
	UserID int64 `json:"id"`

	// Email is the unique, lowercased account identifier.
	Email string `json:"email"`

	// Name is the display name of the user.
	Name string `json:"name"`

	// PasswordHash is the bcrypt hash of the user's password. Empty for
	// Google-only accounts. Never exposed via JSON.
	PasswordHash string `json:"-"`

	// GoogleID is the provider-side identifier for Google-linked accounts.
	GoogleID string `json:"-"`

	// Picture is the profile picture URL supplied by Google, if any.
	Picture string `json:"picture,omitempty"`

	// IsGoogleUser reports whether the account authenticates through Google
	// rather than a password.
	IsGoogleUser bool `json:"isGoogleUser"`

	KPISettings KPISettings `json:"kpiSettings"`
	Stats       Stats       `json:"stats"`

	CreatedAt time.Time `json:"createdAt"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// DefaultKPISettings returns the KPI settings assigned at account creation.
func DefaultKPISettings() KPISettings {
	return KPISettings{
		DailyTarget:    DefaultDailyTarget,
		Level:          LevelJustLooking,
		DreamCompanies: StringSlice{},
	}
}

// KPISettingsUpdate carries a partial KPI settings change. Nil fields are
// left untouched.
type KPISettingsUpdate struct {
	DailyTarget    *int      `json:"dailyTarget"`
	Level          *string   `json:"level"`
	DreamCompanies *StringSlice `json:"dreamCompanies"`
}

// GoogleProfile is the subset of the Google userinfo response the application
// consumes during OAuth sign-in.
type GoogleProfile struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}
