package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/hirepath/hirepath-server/internal/logger"
	"github.com/hirepath/hirepath-server/models"
	"github.com/jackc/pgerrcode"
)

type userRepository struct {
	*DB
	logger *logger.Logger
}

func NewUserRepository(db *DB, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("UserRepository created")
	return &userRepository{
		DB:     db,
		logger: logger,
	}
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanUser reads one users row in userColumns order.
func scanUser(row rowScanner) (models.User, error) {
	var user models.User
	var passwordHash, googleID, picture sql.NullString
	var lastApplication sql.NullTime

	err := row.Scan(
		&user.UserID,
		&user.Email,
		&user.Name,
		&passwordHash,
		&googleID,
		&picture,
		&user.IsGoogleUser,
		&user.KPISettings.DailyTarget,
		&user.KPISettings.Level,
		&user.KPISettings.DreamCompanies,
		&user.Stats.TotalApplications,
		&user.Stats.ApplicationsThisMonth,
		&user.Stats.ApplicationsThisWeek,
		&user.Stats.ApplicationsToday,
		&lastApplication,
		&user.CreatedAt,
	)
	if err != nil {
		return models.User{}, err
	}

	user.PasswordHash = passwordHash.String
	user.GoogleID = googleID.String
	user.Picture = picture.String
	if lastApplication.Valid {
		t := lastApplication.Time
		user.Stats.LastApplicationDate = &t
	}

	return user, nil
}

// nullIfEmpty maps empty strings to SQL NULL for nullable text columns.
func nullIfEmpty(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func (r *userRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	row := r.DB.QueryRowContext(ctx, createUser,
		user.Email,
		user.Name,
		nullIfEmpty(user.PasswordHash),
		nullIfEmpty(user.GoogleID),
		nullIfEmpty(user.Picture),
		user.IsGoogleUser,
		user.KPISettings.DailyTarget,
		user.KPISettings.Level,
		user.KPISettings.DreamCompanies,
	)

	saved, err := scanUser(row)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.CreateUser").Str("email", user.Email).Msg("failed to insert user")

		switch postgresError(err) {
		case pgerrcode.UniqueViolation:
			return models.User{}, ErrEmailAlreadyExists
		default:
			return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
		}
	}

	return saved, nil
}

func (r *userRepository) FindUserByEmail(ctx context.Context, email string) (models.User, error) {
	log := logger.FromContext(ctx)

	row := r.DB.QueryRowContext(ctx, findUserByEmail, email)

	found, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrUserNotFound
		}

		log.Err(err).Str("func", "*userRepository.FindUserByEmail").Str("email", email).Msg("failed to query user by email")
		return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return found, nil
}

func (r *userRepository) FindUserByID(ctx context.Context, userID int64) (models.User, error) {
	log := logger.FromContext(ctx)

	row := r.DB.QueryRowContext(ctx, findUserByID, userID)

	found, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrUserNotFound
		}

		log.Err(err).Str("func", "*userRepository.FindUserByID").Int64("user_id", userID).Msg("failed to query user by id")
		return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return found, nil
}

func (r *userRepository) UpdateKPISettings(ctx context.Context, userID int64, settings models.KPISettings) (models.User, error) {
	log := logger.FromContext(ctx)

	row := r.DB.QueryRowContext(ctx, updateUserKPISettings,
		userID,
		settings.DailyTarget,
		settings.Level,
		settings.DreamCompanies,
	)

	updated, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrUserNotFound
		}

		log.Err(err).Str("func", "*userRepository.UpdateKPISettings").Int64("user_id", userID).Msg("failed to update kpi settings")
		return models.User{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return updated, nil
}

func (r *userRepository) UpdateStats(ctx context.Context, userID int64, stats models.Stats) (models.User, error) {
	log := logger.FromContext(ctx)

	var lastApplication sql.NullTime
	if stats.LastApplicationDate != nil {
		lastApplication = sql.NullTime{Time: *stats.LastApplicationDate, Valid: true}
	}

	row := r.DB.QueryRowContext(ctx, updateUserStats,
		userID,
		stats.TotalApplications,
		stats.ApplicationsThisMonth,
		stats.ApplicationsThisWeek,
		stats.ApplicationsToday,
		lastApplication,
	)

	updated, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrUserNotFound
		}

		log.Err(err).Str("func", "*userRepository.UpdateStats").Int64("user_id", userID).Msg("failed to update stats")
		return models.User{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return updated, nil
}

func (r *userRepository) LinkGoogleAccount(ctx context.Context, userID int64, profile models.GoogleProfile) (models.User, error) {
	log := logger.FromContext(ctx)

	row := r.DB.QueryRowContext(ctx, linkGoogleAccount,
		userID,
		profile.ID,
		profile.Name,
		nullIfEmpty(profile.Picture),
	)

	updated, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrUserNotFound
		}

		log.Err(err).Str("func", "*userRepository.LinkGoogleAccount").Int64("user_id", userID).Msg("failed to link google account")
		return models.User{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return updated, nil
}
