package store

import (
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/hirepath/hirepath-server/models"
)

const userColumns = `user_id, email, name, password_hash, google_id, picture, is_google_user,
    kpi_daily_target, kpi_level, kpi_dream_companies,
    stats_total, stats_month, stats_week, stats_today, stats_last_application_at, created_at`

const applicationColumns = `id, user_id, company_name, role_title, status, application_date,
    submission_deadline, is_dream_company, job_post_url, notes, created_at, updated_at`

const (
	createUser = `INSERT INTO users (email, name, password_hash, google_id, picture, is_google_user,
        kpi_daily_target, kpi_level, kpi_dream_companies)
    VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
    RETURNING ` + userColumns + `;`

	findUserByEmail = `SELECT ` + userColumns + `
    FROM users
    WHERE email = $1;`

	findUserByID = `SELECT ` + userColumns + `
    FROM users
    WHERE user_id = $1;`

	updateUserKPISettings = `UPDATE users
    SET kpi_daily_target = $2, kpi_level = $3, kpi_dream_companies = $4
    WHERE user_id = $1
    RETURNING ` + userColumns + `;`

	updateUserStats = `UPDATE users
    SET stats_total = $2, stats_month = $3, stats_week = $4, stats_today = $5,
        stats_last_application_at = COALESCE($6, stats_last_application_at)
    WHERE user_id = $1
    RETURNING ` + userColumns + `;`

	linkGoogleAccount = `UPDATE users
    SET google_id = $2, name = $3, picture = $4, is_google_user = TRUE
    WHERE user_id = $1
    RETURNING ` + userColumns + `;`

	createApplication = `INSERT INTO job_applications (user_id, company_name, role_title, status,
        application_date, submission_deadline, is_dream_company, job_post_url, notes)
    VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
    RETURNING ` + applicationColumns + `;`

	getApplicationByID = `SELECT ` + applicationColumns + `
    FROM job_applications
    WHERE user_id = $1 AND id = $2;`

	deleteApplication = `DELETE FROM job_applications
    WHERE user_id = $1 AND id = $2;`

	countApplicationsByDates = `SELECT
        COUNT(*),
        COUNT(*) FILTER (WHERE application_date >= $4),
        COUNT(*) FILTER (WHERE application_date >= $3),
        COUNT(*) FILTER (WHERE application_date >= $2)
    FROM job_applications
    WHERE user_id = $1;`
)

// psql is the shared squirrel builder configured for PostgreSQL placeholders.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// sortColumns maps API sort field names to their database columns.
var sortColumns = map[string]string{
	"applicationDate":    "application_date",
	"companyName":        "company_name",
	"status":             "status",
	"submissionDeadline": "submission_deadline",
	"createdAt":          "created_at",
}

// ValidSortField reports whether the given sort specifier (with an optional
// leading '-') names a sortable application field.
func ValidSortField(sort string) bool {
	_, ok := sortColumns[strings.TrimPrefix(sort, "-")]
	return ok
}

// orderClause converts a sort specifier into a SQL ORDER BY expression.
// An empty or unrecognised specifier falls back to newest-first by
// application date.
func orderClause(sort string) string {
	descending := strings.HasPrefix(sort, "-")
	column, ok := sortColumns[strings.TrimPrefix(sort, "-")]
	if !ok {
		return "application_date DESC"
	}

	if descending {
		return column + " DESC"
	}
	return column + " ASC"
}

// escapeLike neutralises LIKE metacharacters in user-supplied substrings.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

// buildListApplicationsQuery dynamically builds the SELECT for a filtered
// application listing. All filters are conjunctive and scoped to the user.
// The now parameter anchors the deadline buckets: past is strictly before
// now, upcoming is [now, now+7d] inclusive.
func buildListApplicationsQuery(userID int64, filter models.ApplicationFilter, now time.Time) (string, []any, error) {
	builder := psql.Select(applicationColumns).
		From("job_applications").
		Where(sq.Eq{"user_id": userID})

	if filter.Status != "" {
		builder = builder.Where(sq.Eq{"status": filter.Status})
	}

	if filter.IsDreamCompany != nil {
		builder = builder.Where(sq.Eq{"is_dream_company": *filter.IsDreamCompany})
	}

	if filter.CompanyName != "" {
		builder = builder.Where(sq.ILike{"company_name": "%" + escapeLike(filter.CompanyName) + "%"})
	}

	switch filter.Deadline {
	case models.DeadlineUpcoming:
		builder = builder.
			Where(sq.GtOrEq{"submission_deadline": now}).
			Where(sq.LtOrEq{"submission_deadline": now.AddDate(0, 0, 7)})
	case models.DeadlinePast:
		builder = builder.Where(sq.Lt{"submission_deadline": now})
	case models.DeadlineNone:
		builder = builder.Where("submission_deadline IS NULL")
	}

	// id keeps the ordering stable when the sort column has duplicates
	builder = builder.OrderBy(orderClause(filter.Sort), "id DESC")

	query, args, err := builder.ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}

// buildUpdateApplicationQuery dynamically builds a partial UPDATE for the
// given application. Only non-nil fields of update produce SET clauses;
// updated_at is always refreshed. The statement returns the updated row.
func buildUpdateApplicationQuery(userID, applicationID int64, update models.ApplicationUpdate) (string, []any, error) {
	builder := psql.Update("job_applications").
		Set("updated_at", sq.Expr("NOW()"))

	if update.CompanyName != nil {
		builder = builder.Set("company_name", *update.CompanyName)
	}

	if update.RoleTitle != nil {
		builder = builder.Set("role_title", *update.RoleTitle)
	}

	if update.Status != nil {
		builder = builder.Set("status", *update.Status)
	}

	if update.ApplicationDate != nil {
		builder = builder.Set("application_date", *update.ApplicationDate)
	}

	if update.SubmissionDeadline != nil {
		builder = builder.Set("submission_deadline", *update.SubmissionDeadline)
	}

	if update.IsDreamCompany != nil {
		builder = builder.Set("is_dream_company", *update.IsDreamCompany)
	}

	if update.JobPostUrl != nil {
		builder = builder.Set("job_post_url", *update.JobPostUrl)
	}

	if update.Notes != nil {
		builder = builder.Set("notes", *update.Notes)
	}

	builder = builder.
		Where(sq.Eq{"id": applicationID, "user_id": userID}).
		Suffix("RETURNING " + applicationColumns)

	query, args, err := builder.ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}
