package models

import "time"

// Capture is the relaxed ingestion payload posted by the jobclip client to
// POST /api/applications/extension. Company and role are the only required
// fields; everything else falls back to defaults server-side (status To Apply,
// application date "now").
type Capture struct {
	CompanyName        string     `json:"companyName"`
	RoleTitle          string     `json:"roleTitle"`
	Status             string     `json:"status,omitempty"`
	ApplicationDate    *time.Time `json:"applicationDate,omitempty"`
	SubmissionDeadline *time.Time `json:"submissionDeadline,omitempty"`
	IsDreamCompany     bool       `json:"isDreamCompany,omitempty"`
	JobPostUrl         string     `json:"jobPostUrl,omitempty"`
	Notes              string     `json:"notes,omitempty"`

	// Source names the site the posting was captured from (e.g. "linkedin").
	// Informational only; the server folds it into the notes when present.
	Source string `json:"source,omitempty"`
}
