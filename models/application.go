package models

import "time"

// Application statuses a record can move through. StatusToApply is the
// default for newly created records.
const (
	StatusToApply      = "To Apply"
	StatusApplied      = "Applied"
	StatusInterviewing = "Interviewing"
	StatusOffer        = "Offer"
	StatusRejected     = "Rejected"
	StatusWithdrawn    = "Withdrawn"
)

// ValidStatus reports whether s is one of the recognised application statuses.
func ValidStatus(s string) bool {
	switch s {
	case StatusToApply, StatusApplied, StatusInterviewing, StatusOffer, StatusRejected, StatusWithdrawn:
		return true
	}
	return false
}

// Field length bounds enforced on create and update.
const (
	MaxCompanyNameLength = 200
	MaxRoleTitleLength   = 200
	MaxNotesLength       = 2000
)

// JobApplication is a single tracked job application, owned by exactly one
// user. Ownership is immutable after creation.
type JobApplication struct {
	// ID is the server-assigned unique identifier of the record.
	ID int64 `json:"id"`

	// UserID identifies the owning user. It is never taken from a request
	// body; handlers always overwrite it with the authenticated caller's id.
	UserID int64 `json:"user"`

	CompanyName string `json:"companyName"`
	RoleTitle   string `json:"roleTitle"`

	// Status is one of the Status* constants.
	Status string `json:"status"`

	// ApplicationDate is when the user applied (or plans to). Required;
	// defaults to the creation instant when absent from the request.
	ApplicationDate time.Time `json:"applicationDate"`

	// SubmissionDeadline is the posting's deadline, if the user recorded one.
	SubmissionDeadline *time.Time `json:"submissionDeadline,omitempty"`

	IsDreamCompany bool `json:"isDreamCompany"`

	// JobPostUrl is an optional link to the original posting. Must parse as a
	// URL when present.
	JobPostUrl string `json:"jobPostUrl,omitempty"`

	// Notes holds free-form user notes, at most MaxNotesLength characters.
	Notes string `json:"notes,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName returns the name of the database table
// associated with the JobApplication model.
func (a JobApplication) TableName() string {
	return "job_applications"
}

// ApplicationUpdate carries a partial change to a job application. Nil fields
// are left untouched. Only the fields listed here are mutable; unknown request
// keys are rejected at the handler layer and ownership is never mutable.
type ApplicationUpdate struct {
	CompanyName        *string    `json:"companyName"`
	RoleTitle          *string    `json:"roleTitle"`
	Status             *string    `json:"status"`
	ApplicationDate    *time.Time `json:"applicationDate"`
	SubmissionDeadline *time.Time `json:"submissionDeadline"`
	IsDreamCompany     *bool      `json:"isDreamCompany"`
	JobPostUrl         *string    `json:"jobPostUrl"`
	Notes              *string    `json:"notes"`
}

// Empty reports whether the update contains no fields to apply.
func (u ApplicationUpdate) Empty() bool {
	return u.CompanyName == nil &&
		u.RoleTitle == nil &&
		u.Status == nil &&
		u.ApplicationDate == nil &&
		u.SubmissionDeadline == nil &&
		u.IsDreamCompany == nil &&
		u.JobPostUrl == nil &&
		u.Notes == nil
}

// Deadline filter buckets accepted by the list endpoint.
const (
	DeadlineUpcoming = "upcoming" // submission_deadline within [now, now+7d], inclusive
	DeadlinePast     = "past"     // submission_deadline strictly before now
	DeadlineNone     = "none"     // submission_deadline absent
)

// ApplicationFilter narrows a user's application listing. Zero values mean
// "no constraint".
type ApplicationFilter struct {
	// Status restricts results to an exact status match.
	Status string

	// IsDreamCompany, when non-nil, restricts results by the dream-company flag.
	IsDreamCompany *bool

	// CompanyName is a case-insensitive substring match on the company name.
	CompanyName string

	// Deadline is one of the Deadline* bucket constants, or empty.
	Deadline string

	// Sort is the sort specifier: a field name with an optional leading '-'
	// for descending order (e.g. "-applicationDate"). Empty means the default
	// of application date, newest first.
	Sort string
}
