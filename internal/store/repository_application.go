package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/hirepath/hirepath-server/internal/logger"
	"github.com/hirepath/hirepath-server/models"
)

// applicationRepository is the PostgreSQL-backed implementation of
// [ApplicationRepository]. It executes all job application CRUD operations
// against the "job_applications" table using the embedded [*DB] connection.
//
// Every public method obtains a context-scoped logger via
// [logger.FromContext] so that all database interactions are traced with
// structured fields (user_id, application_id, etc.).
type applicationRepository struct {
	*DB
	logger *logger.Logger
}

// NewApplicationRepository constructs an [ApplicationRepository] backed by
// the provided database connection and logger.
//
// The logger parameter is stored for fallback logging; most methods prefer
// the context-scoped logger obtained via [logger.FromContext].
func NewApplicationRepository(db *DB, logger *logger.Logger) ApplicationRepository {
	logger.Debug().Msg("ApplicationRepository created")
	return &applicationRepository{
		DB:     db,
		logger: logger,
	}
}

// scanApplication reads one job_applications row in applicationColumns order.
func scanApplication(row rowScanner) (models.JobApplication, error) {
	var app models.JobApplication
	var deadline sql.NullTime
	var jobPostURL, notes sql.NullString

	err := row.Scan(
		&app.ID,
		&app.UserID,
		&app.CompanyName,
		&app.RoleTitle,
		&app.Status,
		&app.ApplicationDate,
		&deadline,
		&app.IsDreamCompany,
		&jobPostURL,
		&notes,
		&app.CreatedAt,
		&app.UpdatedAt,
	)
	if err != nil {
		return models.JobApplication{}, err
	}

	if deadline.Valid {
		t := deadline.Time
		app.SubmissionDeadline = &t
	}
	app.JobPostUrl = jobPostURL.String
	app.Notes = notes.String

	return app, nil
}

// Create inserts a new job application row and returns the stored record
// with server-assigned id and timestamps.
func (r *applicationRepository) Create(ctx context.Context, application models.JobApplication) (models.JobApplication, error) {
	log := logger.FromContext(ctx)

	var deadline sql.NullTime
	if application.SubmissionDeadline != nil {
		deadline = sql.NullTime{Time: *application.SubmissionDeadline, Valid: true}
	}

	row := r.DB.QueryRowContext(ctx, createApplication,
		application.UserID,
		application.CompanyName,
		application.RoleTitle,
		application.Status,
		application.ApplicationDate,
		deadline,
		application.IsDreamCompany,
		nullIfEmpty(application.JobPostUrl),
		nullIfEmpty(application.Notes),
	)

	saved, err := scanApplication(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.JobApplication{}, ErrApplicationNotSaved
		}

		log.Err(err).
			Str("func", "applicationRepository.Create").
			Int64("user_id", application.UserID).
			Msg("failed to insert job application")
		return models.JobApplication{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return saved, nil
}

// GetByID retrieves a single application owned by userID.
//
// A row owned by a different user produces [ErrApplicationNotFound], the same
// as a row that does not exist.
func (r *applicationRepository) GetByID(ctx context.Context, userID, applicationID int64) (models.JobApplication, error) {
	log := logger.FromContext(ctx)

	row := r.DB.QueryRowContext(ctx, getApplicationByID, userID, applicationID)

	found, err := scanApplication(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.JobApplication{}, ErrApplicationNotFound
		}

		log.Err(err).
			Str("func", "applicationRepository.GetByID").
			Int64("user_id", userID).
			Int64("application_id", applicationID).
			Msg("failed to query job application")
		return models.JobApplication{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return found, nil
}

// List retrieves the user's applications narrowed by filter.
//
// Filtering is always applied by user id; the remaining criteria are added
// conjunctively by [buildListApplicationsQuery]. Returns an empty slice when
// nothing matches.
func (r *applicationRepository) List(ctx context.Context, userID int64, filter models.ApplicationFilter) ([]models.JobApplication, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListApplicationsQuery(userID, filter, time.Now())
	if err != nil {
		log.Err(err).
			Str("func", "applicationRepository.List").
			Int64("user_id", userID).
			Msg("failed to create query")
		return nil, err
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "applicationRepository.List").
			Int64("user_id", userID).
			Msg("failed to execute query for listing job applications")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	results := make([]models.JobApplication, 0, 50)

	for rows.Next() {
		item, scanErr := scanApplication(rows)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", "applicationRepository.List").
				Int64("user_id", userID).
				Msg("failed to scan job application row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}

		results = append(results, item)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", "applicationRepository.List").
			Int64("user_id", userID).
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return results, nil
}

// Update applies a partial update built by [buildUpdateApplicationQuery] and
// returns the updated record. Targeting a missing or foreign row produces
// [ErrApplicationNotFound].
func (r *applicationRepository) Update(ctx context.Context, userID, applicationID int64, update models.ApplicationUpdate) (models.JobApplication, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildUpdateApplicationQuery(userID, applicationID, update)
	if err != nil {
		log.Err(err).
			Str("func", "applicationRepository.Update").
			Int64("user_id", userID).
			Int64("application_id", applicationID).
			Msg("failed to create query")
		return models.JobApplication{}, err
	}

	row := r.DB.QueryRowContext(ctx, query, args...)

	updated, err := scanApplication(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.JobApplication{}, ErrApplicationNotFound
		}

		log.Err(err).
			Str("func", "applicationRepository.Update").
			Int64("user_id", userID).
			Int64("application_id", applicationID).
			Msg("failed to update job application")
		return models.JobApplication{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return updated, nil
}

// Delete removes a single application owned by userID. Deleting a missing or
// foreign row produces [ErrApplicationNotFound].
func (r *applicationRepository) Delete(ctx context.Context, userID, applicationID int64) error {
	log := logger.FromContext(ctx)

	result, err := r.DB.ExecContext(ctx, deleteApplication, userID, applicationID)
	if err != nil {
		log.Err(err).
			Str("func", "applicationRepository.Delete").
			Int64("user_id", userID).
			Int64("application_id", applicationID).
			Msg("failed to delete job application")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		log.Err(err).
			Str("func", "applicationRepository.Delete").
			Int64("user_id", userID).
			Int64("application_id", applicationID).
			Msg("failed to read affected rows")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if affected == 0 {
		return ErrApplicationNotFound
	}

	return nil
}

// CountByDates performs a full scan of the user's applications and returns
// counters for the given period boundaries. All four counters come back from
// a single aggregate query. LastApplicationDate is left nil: it is a
// write-once-per-create stamp owned by the service layer, not a derived
// count.
func (r *applicationRepository) CountByDates(ctx context.Context, userID int64, dayStart, weekStart, monthStart time.Time) (models.Stats, error) {
	log := logger.FromContext(ctx)

	var stats models.Stats

	row := r.DB.QueryRowContext(ctx, countApplicationsByDates, userID, monthStart, weekStart, dayStart)
	err := row.Scan(
		&stats.TotalApplications,
		&stats.ApplicationsToday,
		&stats.ApplicationsThisWeek,
		&stats.ApplicationsThisMonth,
	)
	if err != nil {
		log.Err(err).
			Str("func", "applicationRepository.CountByDates").
			Int64("user_id", userID).
			Msg("failed to count job applications")
		return models.Stats{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return stats, nil
}
