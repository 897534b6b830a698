package service

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/hirepath/hirepath-server/internal/store"
	"github.com/hirepath/hirepath-server/models"
)

// validateURL accepts http(s) URLs only.
func validateURL(raw string) error {
	parsed, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%w: jobPostUrl is not a valid URL", ErrInvalidDataProvided)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("%w: jobPostUrl must use http or https", ErrInvalidDataProvided)
	}
	if parsed.Host == "" {
		return fmt.Errorf("%w: jobPostUrl must include a host", ErrInvalidDataProvided)
	}

	return nil
}

// validateNewApplication checks a fully assembled record before it is
// persisted. Defaults are expected to have been applied already.
func validateNewApplication(application models.JobApplication) error {
	if strings.TrimSpace(application.CompanyName) == "" {
		return fmt.Errorf("%w: companyName is required", ErrInvalidDataProvided)
	}
	if len(application.CompanyName) > models.MaxCompanyNameLength {
		return fmt.Errorf("%w: companyName exceeds %d characters", ErrInvalidDataProvided, models.MaxCompanyNameLength)
	}

	if strings.TrimSpace(application.RoleTitle) == "" {
		return fmt.Errorf("%w: roleTitle is required", ErrInvalidDataProvided)
	}
	if len(application.RoleTitle) > models.MaxRoleTitleLength {
		return fmt.Errorf("%w: roleTitle exceeds %d characters", ErrInvalidDataProvided, models.MaxRoleTitleLength)
	}

	if !models.ValidStatus(application.Status) {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidDataProvided, application.Status)
	}

	if application.ApplicationDate.IsZero() {
		return fmt.Errorf("%w: applicationDate is required", ErrInvalidDataProvided)
	}

	if len(application.Notes) > models.MaxNotesLength {
		return fmt.Errorf("%w: notes exceed %d characters", ErrInvalidDataProvided, models.MaxNotesLength)
	}

	if application.JobPostUrl != "" {
		if err := validateURL(application.JobPostUrl); err != nil {
			return err
		}
	}

	return nil
}

// validateApplicationUpdate checks the fields present in a partial update.
func validateApplicationUpdate(update models.ApplicationUpdate) error {
	if update.Empty() {
		return fmt.Errorf("%w: no fields to update", ErrInvalidDataProvided)
	}

	if update.CompanyName != nil {
		if strings.TrimSpace(*update.CompanyName) == "" {
			return fmt.Errorf("%w: companyName cannot be empty", ErrInvalidDataProvided)
		}
		if len(*update.CompanyName) > models.MaxCompanyNameLength {
			return fmt.Errorf("%w: companyName exceeds %d characters", ErrInvalidDataProvided, models.MaxCompanyNameLength)
		}
	}

	if update.RoleTitle != nil {
		if strings.TrimSpace(*update.RoleTitle) == "" {
			return fmt.Errorf("%w: roleTitle cannot be empty", ErrInvalidDataProvided)
		}
		if len(*update.RoleTitle) > models.MaxRoleTitleLength {
			return fmt.Errorf("%w: roleTitle exceeds %d characters", ErrInvalidDataProvided, models.MaxRoleTitleLength)
		}
	}

	if update.Status != nil && !models.ValidStatus(*update.Status) {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidDataProvided, *update.Status)
	}

	if update.ApplicationDate != nil && update.ApplicationDate.IsZero() {
		return fmt.Errorf("%w: applicationDate cannot be empty", ErrInvalidDataProvided)
	}

	if update.Notes != nil && len(*update.Notes) > models.MaxNotesLength {
		return fmt.Errorf("%w: notes exceed %d characters", ErrInvalidDataProvided, models.MaxNotesLength)
	}

	if update.JobPostUrl != nil && *update.JobPostUrl != "" {
		if err := validateURL(*update.JobPostUrl); err != nil {
			return err
		}
	}

	return nil
}

// validateFilter checks the list query parameters.
func validateFilter(filter models.ApplicationFilter) error {
	if filter.Status != "" && !models.ValidStatus(filter.Status) {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidDataProvided, filter.Status)
	}

	switch filter.Deadline {
	case "", models.DeadlineUpcoming, models.DeadlinePast, models.DeadlineNone:
	default:
		return fmt.Errorf("%w: unknown deadline bucket %q", ErrInvalidDataProvided, filter.Deadline)
	}

	if filter.Sort != "" && !store.ValidSortField(filter.Sort) {
		return fmt.Errorf("%w: unknown sort field %q", ErrInvalidDataProvided, filter.Sort)
	}

	return nil
}
