package store

import (
	"context"
	"time"

	"github.com/hirepath/hirepath-server/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// UserRepository persists account records and the denormalized per-user
// counters attached to them.
type UserRepository interface {
	// CreateUser inserts a new account and returns the stored record.
	// Returns [ErrEmailAlreadyExists] on a duplicate email.
	CreateUser(ctx context.Context, user models.User) (models.User, error)

	// FindUserByEmail returns the account with the given email or
	// [ErrUserNotFound].
	FindUserByEmail(ctx context.Context, email string) (models.User, error)

	// FindUserByID returns the account with the given id or [ErrUserNotFound].
	FindUserByID(ctx context.Context, userID int64) (models.User, error)

	// UpdateKPISettings replaces the user's KPI settings and returns the
	// updated account.
	UpdateKPISettings(ctx context.Context, userID int64, settings models.KPISettings) (models.User, error)

	// UpdateStats replaces the user's denormalized counters and returns the
	// updated account. A nil LastApplicationDate keeps the stored stamp
	// instead of clearing it.
	UpdateStats(ctx context.Context, userID int64, stats models.Stats) (models.User, error)

	// LinkGoogleAccount writes the Google identity and profile fields (name,
	// picture, provider id) onto an existing account and returns the updated
	// record. Used both for the first link and to refresh the profile on
	// every later Google sign-in.
	LinkGoogleAccount(ctx context.Context, userID int64, profile models.GoogleProfile) (models.User, error)
}

// ApplicationRepository persists job application records. Every method is
// scoped by the owning user id; rows belonging to other users behave as if
// they do not exist.
type ApplicationRepository interface {
	// Create inserts a new job application and returns the stored record.
	Create(ctx context.Context, application models.JobApplication) (models.JobApplication, error)

	// GetByID returns the application with the given id owned by userID,
	// or [ErrApplicationNotFound].
	GetByID(ctx context.Context, userID, applicationID int64) (models.JobApplication, error)

	// List returns the user's applications narrowed by the given filter.
	List(ctx context.Context, userID int64, filter models.ApplicationFilter) ([]models.JobApplication, error)

	// Update applies a partial update to the application with the given id
	// owned by userID and returns the updated record, or
	// [ErrApplicationNotFound].
	Update(ctx context.Context, userID, applicationID int64, update models.ApplicationUpdate) (models.JobApplication, error)

	// Delete removes the application with the given id owned by userID.
	// Returns [ErrApplicationNotFound] when no row was removed.
	Delete(ctx context.Context, userID, applicationID int64) error

	// CountByDates scans the user's applications and returns fresh counters
	// relative to the provided period boundaries. LastApplicationDate is not
	// populated; that stamp is managed by the stats service.
	CountByDates(ctx context.Context, userID int64, dayStart, weekStart, monthStart time.Time) (models.Stats, error)
}
