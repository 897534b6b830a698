package service

import (
	"context"

	"github.com/hirepath/hirepath-server/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// AuthService covers the account lifecycle: registration, credential and
// Google sign-in, and JWT issuance and verification.
type AuthService interface {
	// Register creates a password-based account and returns the stored user.
	Register(ctx context.Context, name, email, password string) (models.User, error)

	// Login authenticates an email/password pair. A Google-only account
	// produces [ErrAccountConflict]; a bad pair produces
	// [ErrInvalidCredentials].
	Login(ctx context.Context, email, password string) (models.User, error)

	// GoogleAuthURL returns the Google consent page URL carrying state.
	GoogleAuthURL(state string) string

	// GoogleLogin redeems an OAuth authorization code, then signs the
	// matching account in: a new Google-backed account is created when none
	// exists, an existing Google-backed account has its profile refreshed,
	// and a password-only account produces [ErrAccountConflict].
	GoogleLogin(ctx context.Context, code string) (models.User, error)

	// GetUser returns the account with the given id.
	GetUser(ctx context.Context, userID int64) (models.User, error)

	// CreateToken issues a signed session JWT for the user.
	CreateToken(ctx context.Context, user models.User) (models.Token, error)

	// ParseToken validates a raw JWT string and extracts the user id.
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

// ApplicationService covers job application CRUD plus the relaxed capture
// ingestion used by jobclip. Every mutation refreshes the owner's
// denormalized counters.
type ApplicationService interface {
	Create(ctx context.Context, userID int64, application models.JobApplication) (models.JobApplication, error)
	Get(ctx context.Context, userID, applicationID int64) (models.JobApplication, error)
	List(ctx context.Context, userID int64, filter models.ApplicationFilter) ([]models.JobApplication, error)
	Update(ctx context.Context, userID, applicationID int64, update models.ApplicationUpdate) (models.JobApplication, error)
	Delete(ctx context.Context, userID, applicationID int64) error

	// Ingest accepts a capture payload with relaxed validation, fills in
	// defaults, and creates the application.
	Ingest(ctx context.Context, userID int64, capture models.Capture) (models.JobApplication, error)
}

// StatsService maintains the per-user counter cache and derives KPI progress
// from it.
type StatsService interface {
	// Recompute scans the user's applications, refreshes the persisted
	// counters, and returns the new values. When isNewApplication is true
	// the lastApplicationDate stamp is set to the current instant; otherwise
	// the stored stamp is kept as-is.
	Recompute(ctx context.Context, userID int64, isNewApplication bool) (models.Stats, error)

	// GetStats recomputes the counters and returns them together with the
	// user's KPI settings and derived progress.
	GetStats(ctx context.Context, userID int64) (models.StatsResponse, error)

	// UpdateKPISettings applies a partial KPI settings change and returns
	// the updated user.
	UpdateKPISettings(ctx context.Context, userID int64, update models.KPISettingsUpdate) (models.User, error)

	// Progress derives the daily/weekly/monthly progress report from the
	// user's current counters and targets.
	Progress(user models.User) models.Progress
}

// GoogleAuthProvider abstracts the Google OAuth 2.0 flow so the auth service
// can be tested without talking to Google.
type GoogleAuthProvider interface {
	// AuthCodeURL returns the consent page URL carrying state.
	AuthCodeURL(state string) string

	// FetchProfile redeems the authorization code and fetches the user's
	// Google profile.
	FetchProfile(ctx context.Context, code string) (models.GoogleProfile, error)
}
