// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HirePath Authors

package service

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/hirepath/hirepath-server/internal/logger"
	"github.com/hirepath/hirepath-server/internal/store"
	"github.com/hirepath/hirepath-server/models"
)

// applicationService is the concrete implementation of ApplicationService.
// Every operation is scoped to the owning user; records belonging to other
// users behave exactly like missing ones.
type applicationService struct {
	applicationRepository store.ApplicationRepository
	statsService          StatsService
	logger                *logger.Logger

	// now supplies defaults for missing application dates; replaceable in tests.
	now func() time.Time
}

// NewApplicationService constructs an ApplicationService that refreshes the
// owner's counter cache after every mutation.
func NewApplicationService(applicationRepository store.ApplicationRepository, statsService StatsService, logger *logger.Logger) ApplicationService {
	return &applicationService{
		applicationRepository: applicationRepository,
		statsService:          statsService,
		logger:                logger,
		now:                   time.Now,
	}
}

// refreshStats recounts the owner's applications after a mutation. A failed
// refresh is logged but does not fail the mutation itself: the cache is
// recomputed from scratch on the next one. isNewApplication is true only
// for creates, which also stamp the owner's lastApplicationDate.
func (s *applicationService) refreshStats(ctx context.Context, userID int64, isNewApplication bool) {
	if _, err := s.statsService.Recompute(ctx, userID, isNewApplication); err != nil {
		logger.FromContext(ctx).Err(err).Int64("user_id", userID).Msg("stats refresh after mutation failed")
	}
}

// Create validates and persists a new application for the given user.
//
// Missing status defaults to "To Apply" and a missing application date to the
// current instant. The owner's stats are refreshed afterwards.
func (s *applicationService) Create(ctx context.Context, userID int64, application models.JobApplication) (models.JobApplication, error) {
	log := logger.FromContext(ctx)

	application.UserID = userID
	application.CompanyName = strings.TrimSpace(application.CompanyName)
	application.RoleTitle = strings.TrimSpace(application.RoleTitle)

	if application.Status == "" {
		application.Status = models.StatusToApply
	}
	if application.ApplicationDate.IsZero() {
		application.ApplicationDate = s.now()
	}

	if err := validateNewApplication(application); err != nil {
		return models.JobApplication{}, err
	}

	createdApplication, err := s.applicationRepository.Create(ctx, application)
	if err != nil {
		log.Err(err).Int64("user_id", userID).Msg("application creation ended with error")
		return models.JobApplication{}, fmt.Errorf("application creation ended with error: %w", err)
	}

	s.refreshStats(ctx, userID, true)

	return createdApplication, nil
}

// Get returns one of the user's applications by id.
func (s *applicationService) Get(ctx context.Context, userID, applicationID int64) (models.JobApplication, error) {
	foundApplication, err := s.applicationRepository.GetByID(ctx, userID, applicationID)
	if err != nil {
		return models.JobApplication{}, fmt.Errorf("application search by id failed: %w", err)
	}

	return foundApplication, nil
}

// List returns the user's applications narrowed by the filter.
func (s *applicationService) List(ctx context.Context, userID int64, filter models.ApplicationFilter) ([]models.JobApplication, error) {
	if err := validateFilter(filter); err != nil {
		return nil, err
	}

	applications, err := s.applicationRepository.List(ctx, userID, filter)
	if err != nil {
		return nil, fmt.Errorf("listing applications failed: %w", err)
	}

	return applications, nil
}

// Update applies a partial change to one of the user's applications and
// refreshes the owner's stats.
func (s *applicationService) Update(ctx context.Context, userID, applicationID int64, update models.ApplicationUpdate) (models.JobApplication, error) {
	log := logger.FromContext(ctx)

	if update.CompanyName != nil {
		trimmed := strings.TrimSpace(*update.CompanyName)
		update.CompanyName = &trimmed
	}
	if update.RoleTitle != nil {
		trimmed := strings.TrimSpace(*update.RoleTitle)
		update.RoleTitle = &trimmed
	}

	if err := validateApplicationUpdate(update); err != nil {
		return models.JobApplication{}, err
	}

	updatedApplication, err := s.applicationRepository.Update(ctx, userID, applicationID, update)
	if err != nil {
		log.Err(err).Int64("user_id", userID).Int64("application_id", applicationID).Msg("application update ended with error")
		return models.JobApplication{}, fmt.Errorf("application update ended with error: %w", err)
	}

	s.refreshStats(ctx, userID, false)

	return updatedApplication, nil
}

// Delete removes one of the user's applications and refreshes the owner's
// stats.
func (s *applicationService) Delete(ctx context.Context, userID, applicationID int64) error {
	log := logger.FromContext(ctx)

	if err := s.applicationRepository.Delete(ctx, userID, applicationID); err != nil {
		log.Err(err).Int64("user_id", userID).Int64("application_id", applicationID).Msg("application deletion ended with error")
		return fmt.Errorf("application deletion ended with error: %w", err)
	}

	s.refreshStats(ctx, userID, false)

	return nil
}

// Ingest persists a capture posted by the jobclip client.
//
// The path is deliberately forgiving: an unknown or missing status falls back
// to "To Apply", a missing application date to the current instant, and an
// unparsable job post URL is dropped rather than rejected. Company and role
// remain required.
func (s *applicationService) Ingest(ctx context.Context, userID int64, capture models.Capture) (models.JobApplication, error) {
	application := models.JobApplication{
		CompanyName:        capture.CompanyName,
		RoleTitle:          capture.RoleTitle,
		Status:             capture.Status,
		SubmissionDeadline: capture.SubmissionDeadline,
		IsDreamCompany:     capture.IsDreamCompany,
		JobPostUrl:         capture.JobPostUrl,
		Notes:              capture.Notes,
	}

	if !models.ValidStatus(application.Status) {
		application.Status = models.StatusToApply
	}
	if capture.ApplicationDate != nil {
		application.ApplicationDate = *capture.ApplicationDate
	}

	if application.JobPostUrl != "" && validateURL(application.JobPostUrl) != nil {
		application.JobPostUrl = ""
	}

	if source := strings.TrimSpace(capture.Source); source != "" {
		note := "Captured from " + source
		if application.Notes != "" {
			note = application.Notes + "\n" + note
		}
		application.Notes = note
	}
	application.Notes = truncateNotes(application.Notes)

	return s.Create(ctx, userID, application)
}

// truncateNotes caps notes at MaxNotesLength bytes without splitting a
// multi-byte rune at the cut point.
func truncateNotes(notes string) string {
	if len(notes) <= models.MaxNotesLength {
		return notes
	}

	cut := models.MaxNotesLength
	for cut > 0 && !utf8.RuneStart(notes[cut]) {
		cut--
	}

	return notes[:cut]
}
