// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HirePath Authors

package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/hirepath/hirepath-server/internal/service"
	"github.com/hirepath/hirepath-server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUserRouter(t *testing.T, auth *mockAuthService, stats service.StatsService) http.Handler {
	t.Helper()

	if auth.parseTokenFn == nil {
		auth.parseTokenFn = func(_ context.Context, tokenString string) (models.Token, error) {
			if tokenString != "valid-token" {
				return models.Token{}, service.ErrTokenIsExpiredOrInvalid
			}
			return models.Token{UserID: 7}, nil
		}
	}

	h := newHandlerWith(t, &service.Services{
		AuthService:  auth,
		StatsService: stats,
	})

	return h.Init()
}

func TestMe_Success(t *testing.T) {
	auth := &mockAuthService{
		getUserFn: func(_ context.Context, userID int64) (models.User, error) {
			assert.Equal(t, int64(7), userID)
			return models.User{
				UserID:       7,
				Email:        "jane@example.com",
				Name:         "Jane",
				PasswordHash: "must-never-leak",
				GoogleID:     "must-never-leak-either",
				KPISettings:  models.DefaultKPISettings(),
			}, nil
		},
	}

	router := newUserRouter(t, auth, &mockStatsService{})
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, authorizedRequest(http.MethodGet, "/api/users/me", ""))

	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.NotContains(t, body, "must-never-leak")

	var public models.PublicUser
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &public))
	assert.Equal(t, int64(7), public.ID)
	assert.Equal(t, "jane@example.com", public.Email)
}

func TestMe_ExpiredToken(t *testing.T) {
	router := newUserRouter(t, &mockAuthService{}, &mockStatsService{})

	req := httptest.NewRequest(http.MethodGet, "/api/users/me", nil)
	req.Header.Set("Authorization", "Bearer expired-token")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestUpdateKPISettings_Success(t *testing.T) {
	stats := &mockStatsService{
		updateKPISettingsFn: func(_ context.Context, userID int64, update models.KPISettingsUpdate) (models.User, error) {
			assert.Equal(t, int64(7), userID)
			require.NotNil(t, update.DailyTarget)
			assert.Equal(t, 5, *update.DailyTarget)
			return models.User{
				UserID: 7,
				KPISettings: models.KPISettings{
					DailyTarget:    5,
					Level:          models.LevelReallyWantIt,
					DreamCompanies: models.StringSlice{"Initech"},
				},
			}, nil
		},
	}

	router := newUserRouter(t, &mockAuthService{}, stats)
	body := `{"dailyTarget":5}`
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, authorizedRequest(http.MethodPut, "/api/users/kpi-settings", body))

	require.Equal(t, http.StatusOK, rec.Code)

	var response models.KPISettingsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, 5, response.KPISettings.DailyTarget)
	assert.NotEmpty(t, response.Message)
}

func TestUpdateKPISettings_InvalidTarget(t *testing.T) {
	stats := &mockStatsService{
		updateKPISettingsFn: func(_ context.Context, _ int64, _ models.KPISettingsUpdate) (models.User, error) {
			return models.User{}, service.ErrInvalidDataProvided
		},
	}

	router := newUserRouter(t, &mockAuthService{}, stats)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, authorizedRequest(http.MethodPut, "/api/users/kpi-settings", `{"dailyTarget":0}`))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateKPISettings_UnknownFieldRejected(t *testing.T) {
	router := newUserRouter(t, &mockAuthService{}, &mockStatsService{})
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, authorizedRequest(http.MethodPut, "/api/users/kpi-settings", `{"email":"evil@example.com"}`))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestStats_Success(t *testing.T) {
	stats := &mockStatsService{
		getStatsFn: func(_ context.Context, userID int64) (models.StatsResponse, error) {
			assert.Equal(t, int64(7), userID)
			return models.StatsResponse{
				Stats: models.Stats{TotalApplications: 12, ApplicationsToday: 1},
				KPISettings: models.KPISettings{
					DailyTarget:    10,
					Level:          models.LevelJustLooking,
					DreamCompanies: models.StringSlice{},
				},
				Progress: models.Progress{
					Daily: models.ProgressHorizon{Current: 1, Target: 10, Percentage: 10},
				},
			}, nil
		},
	}

	router := newUserRouter(t, &mockAuthService{}, stats)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, authorizedRequest(http.MethodGet, "/api/users/stats", ""))

	require.Equal(t, http.StatusOK, rec.Code)

	var response models.StatsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, 12, response.Stats.TotalApplications)
	assert.InDelta(t, 10.0, response.Progress.Daily.Percentage, 1e-9)
}

func TestWelcome(t *testing.T) {
	router := newUserRouter(t, &mockAuthService{}, &mockStatsService{})
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "HirePath")
	assert.True(t, strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json"))
}
