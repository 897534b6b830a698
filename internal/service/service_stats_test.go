package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/hirepath/hirepath-server/internal/logger"
	"github.com/hirepath/hirepath-server/internal/mock"
	"github.com/hirepath/hirepath-server/internal/store"
	"github.com/hirepath/hirepath-server/internal/utils"
	"github.com/hirepath/hirepath-server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// 2026-08-31 is a Monday, so the week anchor lands on Sunday the 30th.
var statsTestNow = time.Date(2026, time.August, 31, 15, 42, 10, 0, time.UTC)

func newTestStatsSvc(t *testing.T, ctrl *gomock.Controller) (*statsService, *mock.MockUserRepository, *mock.MockApplicationRepository) {
	t.Helper()
	mockUsers := mock.NewMockUserRepository(ctrl)
	mockApplications := mock.NewMockApplicationRepository(ctrl)

	svc := NewStatsService(mockUsers, mockApplications, logger.Nop()).(*statsService)
	svc.now = func() time.Time { return statsTestNow }

	return svc, mockUsers, mockApplications
}

func TestStatsService_Recompute_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockUsers, mockApplications := newTestStatsSvc(t, ctrl)
	ctx := context.Background()

	stats := models.Stats{
		TotalApplications:     12,
		ApplicationsThisMonth: 9,
		ApplicationsThisWeek:  4,
		ApplicationsToday:     1,
	}

	gomock.InOrder(
		mockApplications.EXPECT().
			CountByDates(ctx, int64(7),
				utils.StartOfDay(statsTestNow),
				utils.StartOfWeek(statsTestNow),
				utils.StartOfMonth(statsTestNow)).
			Return(stats, nil),
		mockUsers.EXPECT().
			UpdateStats(ctx, int64(7), stats).
			Return(models.User{UserID: 7, Stats: stats}, nil),
	)

	got, err := svc.Recompute(ctx, 7, false)
	require.NoError(t, err)
	assert.Equal(t, stats, got)
}

// A create-triggered recompute stamps lastApplicationDate with the current
// instant instead of deriving it from the stored records.
func TestStatsService_Recompute_NewApplicationStampsLastDate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockUsers, mockApplications := newTestStatsSvc(t, ctrl)
	ctx := context.Background()

	gomock.InOrder(
		mockApplications.EXPECT().
			CountByDates(ctx, int64(7), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(models.Stats{TotalApplications: 3}, nil),
		mockUsers.EXPECT().
			UpdateStats(ctx, int64(7), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ int64, stats models.Stats) (models.User, error) {
				require.NotNil(t, stats.LastApplicationDate)
				assert.Equal(t, statsTestNow, *stats.LastApplicationDate,
					"a backdated applicationDate must not move the stamp")
				return models.User{UserID: 7, Stats: stats}, nil
			}),
	)

	got, err := svc.Recompute(ctx, 7, true)
	require.NoError(t, err)
	require.NotNil(t, got.LastApplicationDate)
	assert.Equal(t, statsTestNow, *got.LastApplicationDate)
}

// Recomputes not triggered by a create leave the stamp alone: the persisted
// value survives deletions untouched.
func TestStatsService_Recompute_KeepsLastDateOtherwise(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockUsers, mockApplications := newTestStatsSvc(t, ctrl)
	ctx := context.Background()

	stored := statsTestNow.Add(-48 * time.Hour)

	gomock.InOrder(
		mockApplications.EXPECT().
			CountByDates(ctx, int64(7), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(models.Stats{}, nil),
		mockUsers.EXPECT().
			UpdateStats(ctx, int64(7), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ int64, stats models.Stats) (models.User, error) {
				assert.Nil(t, stats.LastApplicationDate, "nil keeps the stored stamp")
				stats.LastApplicationDate = &stored
				return models.User{UserID: 7, Stats: stats}, nil
			}),
	)

	got, err := svc.Recompute(ctx, 7, false)
	require.NoError(t, err)
	require.NotNil(t, got.LastApplicationDate)
	assert.Equal(t, stored, *got.LastApplicationDate, "deleting the last application must not clear the stamp")
}

func TestStatsService_Recompute_CountError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, mockApplications := newTestStatsSvc(t, ctrl)
	ctx := context.Background()

	mockApplications.EXPECT().
		CountByDates(ctx, int64(7), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(models.Stats{}, errors.New("connection reset"))

	_, err := svc.Recompute(ctx, 7, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "counting applications failed")
}

func TestStatsService_Recompute_PersistError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockUsers, mockApplications := newTestStatsSvc(t, ctrl)
	ctx := context.Background()

	mockApplications.EXPECT().
		CountByDates(ctx, int64(7), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(models.Stats{TotalApplications: 3}, nil)
	mockUsers.EXPECT().
		UpdateStats(ctx, int64(7), gomock.Any()).
		Return(models.User{}, store.ErrUserNotFound)

	_, err := svc.Recompute(ctx, 7, false)
	require.Error(t, err)
	assert.ErrorIs(t, err, store.ErrUserNotFound)
}

func TestStatsService_GetStats_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockUsers, mockApplications := newTestStatsSvc(t, ctrl)
	ctx := context.Background()

	stats := models.Stats{
		TotalApplications:     1,
		ApplicationsThisMonth: 1,
		ApplicationsThisWeek:  1,
		ApplicationsToday:     1,
	}
	settings := models.KPISettings{
		DailyTarget:    10,
		Level:          models.LevelJustLooking,
		DreamCompanies: models.StringSlice{},
	}

	mockApplications.EXPECT().
		CountByDates(ctx, int64(7), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(stats, nil)
	mockUsers.EXPECT().
		UpdateStats(ctx, int64(7), stats).
		Return(models.User{UserID: 7, Stats: stats, KPISettings: settings}, nil)

	got, err := svc.GetStats(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, stats, got.Stats)
	assert.Equal(t, settings, got.KPISettings)
	assert.InDelta(t, 10.0, got.Progress.Daily.Percentage, 1e-9)
	assert.Equal(t, 70, got.Progress.Weekly.Target)
	assert.Equal(t, 300, got.Progress.Monthly.Target)
}

func TestStatsService_UpdateKPISettings_Partial(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockUsers, _ := newTestStatsSvc(t, ctrl)
	ctx := context.Background()

	current := models.KPISettings{
		DailyTarget:    10,
		Level:          models.LevelJustLooking,
		DreamCompanies: models.StringSlice{"Initech"},
	}
	newTarget := 5

	gomock.InOrder(
		mockUsers.EXPECT().
			FindUserByID(ctx, int64(7)).
			Return(models.User{UserID: 7, KPISettings: current}, nil),
		mockUsers.EXPECT().
			UpdateKPISettings(ctx, int64(7), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ int64, settings models.KPISettings) (models.User, error) {
				assert.Equal(t, 5, settings.DailyTarget)
				assert.Equal(t, models.LevelJustLooking, settings.Level, "untouched field must keep its value")
				assert.Equal(t, models.StringSlice{"Initech"}, settings.DreamCompanies)
				return models.User{UserID: 7, KPISettings: settings}, nil
			}),
	)

	updatedUser, err := svc.UpdateKPISettings(ctx, 7, models.KPISettingsUpdate{DailyTarget: &newTarget})
	require.NoError(t, err)
	assert.Equal(t, 5, updatedUser.KPISettings.DailyTarget)
}

func TestStatsService_UpdateKPISettings_InvalidTarget(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockUsers, _ := newTestStatsSvc(t, ctrl)
	ctx := context.Background()

	mockUsers.EXPECT().
		FindUserByID(ctx, int64(7)).
		Return(models.User{UserID: 7, KPISettings: models.DefaultKPISettings()}, nil)

	zero := 0
	_, err := svc.UpdateKPISettings(ctx, 7, models.KPISettingsUpdate{DailyTarget: &zero})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidDataProvided)
}

func TestStatsService_UpdateKPISettings_InvalidLevel(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockUsers, _ := newTestStatsSvc(t, ctrl)
	ctx := context.Background()

	mockUsers.EXPECT().
		FindUserByID(ctx, int64(7)).
		Return(models.User{UserID: 7, KPISettings: models.DefaultKPISettings()}, nil)

	level := "Vibing"
	_, err := svc.UpdateKPISettings(ctx, 7, models.KPISettingsUpdate{Level: &level})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidDataProvided)
}

func TestStatsService_UpdateKPISettings_UserNotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockUsers, _ := newTestStatsSvc(t, ctrl)
	ctx := context.Background()

	mockUsers.EXPECT().
		FindUserByID(ctx, int64(404)).
		Return(models.User{}, store.ErrUserNotFound)

	target := 3
	_, err := svc.UpdateKPISettings(ctx, 404, models.KPISettingsUpdate{DailyTarget: &target})
	require.Error(t, err)
	assert.ErrorIs(t, err, store.ErrUserNotFound)
}

func TestStatsService_Progress(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, _ := newTestStatsSvc(t, ctrl)

	tests := []struct {
		name        string
		target      int
		stats       models.Stats
		wantDaily   float64
		wantWeekly  float64
		wantMonthly float64
	}{
		{
			name:   "partial progress",
			target: 10,
			stats: models.Stats{
				ApplicationsToday:     1,
				ApplicationsThisWeek:  7,
				ApplicationsThisMonth: 30,
			},
			wantDaily:   10,
			wantWeekly:  10,
			wantMonthly: 10,
		},
		{
			name:   "over target clamps to 100",
			target: 2,
			stats: models.Stats{
				ApplicationsToday:     5,
				ApplicationsThisWeek:  50,
				ApplicationsThisMonth: 100,
			},
			wantDaily:   100,
			wantWeekly:  100,
			wantMonthly: 100,
		},
		{
			name:   "zero target yields zero percentages",
			target: 0,
			stats: models.Stats{
				ApplicationsToday: 3,
			},
			wantDaily:   0,
			wantWeekly:  0,
			wantMonthly: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user := models.User{
				KPISettings: models.KPISettings{DailyTarget: tt.target},
				Stats:       tt.stats,
			}

			progress := svc.Progress(user)

			assert.InDelta(t, tt.wantDaily, progress.Daily.Percentage, 1e-9)
			assert.InDelta(t, tt.wantWeekly, progress.Weekly.Percentage, 1e-9)
			assert.InDelta(t, tt.wantMonthly, progress.Monthly.Percentage, 1e-9)
			assert.Equal(t, tt.target, progress.Daily.Target)
			assert.Equal(t, tt.target*WeeklyTargetDays, progress.Weekly.Target)
			assert.Equal(t, tt.target*MonthlyTargetDays, progress.Monthly.Target)
		})
	}
}
