package service

import (
	"context"
	"fmt"
	"time"

	"github.com/hirepath/hirepath-server/internal/logger"
	"github.com/hirepath/hirepath-server/internal/store"
	"github.com/hirepath/hirepath-server/internal/utils"
	"github.com/hirepath/hirepath-server/models"
)

// Fixed horizon multipliers applied to the daily target. The monthly target
// deliberately uses 30 days rather than the calendar month length.
const (
	WeeklyTargetDays  = 7
	MonthlyTargetDays = 30
)

// statsService is the concrete implementation of StatsService.
//
// The counters live on the users table as a denormalized cache of the
// job_applications table. They are never incremented in place: every refresh
// recounts from the source records, so the cache self-heals after missed or
// failed updates.
type statsService struct {
	userRepository        store.UserRepository
	applicationRepository store.ApplicationRepository
	logger                *logger.Logger

	// now is the clock used to anchor period boundaries; replaceable in tests.
	now func() time.Time
}

// NewStatsService constructs a StatsService backed by the given repositories.
func NewStatsService(userRepository store.UserRepository, applicationRepository store.ApplicationRepository, logger *logger.Logger) StatsService {
	return &statsService{
		userRepository:        userRepository,
		applicationRepository: applicationRepository,
		logger:                logger,
		now:                   time.Now,
	}
}

// recompute recounts the user's applications and persists the fresh
// counters, returning the updated user record.
//
// The lastApplicationDate stamp is not derived from the records: it is set
// to the current instant only when isNewApplication is true and otherwise
// left untouched, so backdated creates and deletions never move it.
func (s *statsService) recompute(ctx context.Context, userID int64, isNewApplication bool) (models.User, error) {
	log := logger.FromContext(ctx)

	now := s.now()
	stats, err := s.applicationRepository.CountByDates(ctx, userID,
		utils.StartOfDay(now), utils.StartOfWeek(now), utils.StartOfMonth(now))
	if err != nil {
		log.Err(err).Int64("user_id", userID).Msg("counting applications failed")
		return models.User{}, fmt.Errorf("counting applications failed: %w", err)
	}

	if isNewApplication {
		stats.LastApplicationDate = &now
	}

	updatedUser, err := s.userRepository.UpdateStats(ctx, userID, stats)
	if err != nil {
		log.Err(err).Int64("user_id", userID).Msg("persisting stats failed")
		return models.User{}, fmt.Errorf("persisting stats failed: %w", err)
	}

	return updatedUser, nil
}

// Recompute scans the user's applications, refreshes the persisted counters,
// and returns the new values. isNewApplication additionally stamps
// lastApplicationDate with the current instant.
func (s *statsService) Recompute(ctx context.Context, userID int64, isNewApplication bool) (models.Stats, error) {
	updatedUser, err := s.recompute(ctx, userID, isNewApplication)
	if err != nil {
		return models.Stats{}, err
	}

	return updatedUser.Stats, nil
}

// GetStats recomputes the counters and returns them together with the user's
// KPI settings and derived progress report.
func (s *statsService) GetStats(ctx context.Context, userID int64) (models.StatsResponse, error) {
	updatedUser, err := s.recompute(ctx, userID, false)
	if err != nil {
		return models.StatsResponse{}, err
	}

	return models.StatsResponse{
		Stats:       updatedUser.Stats,
		KPISettings: updatedUser.KPISettings,
		Progress:    s.Progress(updatedUser),
	}, nil
}

// UpdateKPISettings applies a partial KPI settings change.
//
// Nil fields keep their current values. Returns the updated user or:
//   - ErrInvalidDataProvided if the new daily target is not positive or the
//     level is not one of the recognised values.
//   - A wrapped storage error if the user cannot be loaded or updated.
func (s *statsService) UpdateKPISettings(ctx context.Context, userID int64, update models.KPISettingsUpdate) (models.User, error) {
	log := logger.FromContext(ctx)

	foundUser, err := s.userRepository.FindUserByID(ctx, userID)
	if err != nil {
		log.Err(err).Int64("user_id", userID).Msg("user search by id failed")
		return models.User{}, fmt.Errorf("user search by id failed: %w", err)
	}

	settings := foundUser.KPISettings

	if update.DailyTarget != nil {
		if *update.DailyTarget < 1 {
			return models.User{}, fmt.Errorf("%w: daily target must be a positive integer", ErrInvalidDataProvided)
		}
		settings.DailyTarget = *update.DailyTarget
	}

	if update.Level != nil {
		switch *update.Level {
		case models.LevelJustLooking, models.LevelReallyWantIt, models.LevelDesperate:
			settings.Level = *update.Level
		default:
			return models.User{}, fmt.Errorf("%w: unknown motivation level %q", ErrInvalidDataProvided, *update.Level)
		}
	}

	if update.DreamCompanies != nil {
		settings.DreamCompanies = *update.DreamCompanies
	}

	updatedUser, err := s.userRepository.UpdateKPISettings(ctx, userID, settings)
	if err != nil {
		log.Err(err).Int64("user_id", userID).Msg("persisting kpi settings failed")
		return models.User{}, fmt.Errorf("persisting kpi settings failed: %w", err)
	}

	return updatedUser, nil
}

// Progress derives the three-horizon progress report from the user's current
// counters and daily target.
func (s *statsService) Progress(user models.User) models.Progress {
	target := user.KPISettings.DailyTarget

	return models.Progress{
		Daily:   progressHorizon(user.Stats.ApplicationsToday, target),
		Weekly:  progressHorizon(user.Stats.ApplicationsThisWeek, target*WeeklyTargetDays),
		Monthly: progressHorizon(user.Stats.ApplicationsThisMonth, target*MonthlyTargetDays),
	}
}

// progressHorizon computes min(100, current/target*100). A non-positive
// target yields 0 rather than a division by zero.
func progressHorizon(current, target int) models.ProgressHorizon {
	horizon := models.ProgressHorizon{
		Current: current,
		Target:  target,
	}

	if target <= 0 {
		return horizon
	}

	percentage := float64(current) / float64(target) * 100
	if percentage > 100 {
		percentage = 100
	}
	horizon.Percentage = percentage

	return horizon
}
