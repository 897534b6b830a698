package http

import (
	"context"
	"testing"

	"github.com/hirepath/hirepath-server/internal/config"
	"github.com/hirepath/hirepath-server/internal/logger"
	"github.com/hirepath/hirepath-server/internal/service"
	"github.com/hirepath/hirepath-server/models"
)

// mockAuthService implements service.AuthService for unit tests.
// Each method field can be overridden per test case.
type mockAuthService struct {
	registerFn      func(ctx context.Context, name, email, password string) (models.User, error)
	loginFn         func(ctx context.Context, email, password string) (models.User, error)
	googleAuthURLFn func(state string) string
	googleLoginFn   func(ctx context.Context, code string) (models.User, error)
	getUserFn       func(ctx context.Context, userID int64) (models.User, error)
	createTokenFn   func(ctx context.Context, user models.User) (models.Token, error)
	parseTokenFn    func(ctx context.Context, tokenString string) (models.Token, error)
}

func (m *mockAuthService) Register(ctx context.Context, name, email, password string) (models.User, error) {
	return m.registerFn(ctx, name, email, password)
}

func (m *mockAuthService) Login(ctx context.Context, email, password string) (models.User, error) {
	return m.loginFn(ctx, email, password)
}

func (m *mockAuthService) GoogleAuthURL(state string) string {
	return m.googleAuthURLFn(state)
}

func (m *mockAuthService) GoogleLogin(ctx context.Context, code string) (models.User, error) {
	return m.googleLoginFn(ctx, code)
}

func (m *mockAuthService) GetUser(ctx context.Context, userID int64) (models.User, error) {
	return m.getUserFn(ctx, userID)
}

func (m *mockAuthService) CreateToken(ctx context.Context, user models.User) (models.Token, error) {
	return m.createTokenFn(ctx, user)
}

func (m *mockAuthService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	return m.parseTokenFn(ctx, tokenString)
}

// mockApplicationService implements service.ApplicationService for unit tests.
type mockApplicationService struct {
	createFn func(ctx context.Context, userID int64, application models.JobApplication) (models.JobApplication, error)
	getFn    func(ctx context.Context, userID, applicationID int64) (models.JobApplication, error)
	listFn   func(ctx context.Context, userID int64, filter models.ApplicationFilter) ([]models.JobApplication, error)
	updateFn func(ctx context.Context, userID, applicationID int64, update models.ApplicationUpdate) (models.JobApplication, error)
	deleteFn func(ctx context.Context, userID, applicationID int64) error
	ingestFn func(ctx context.Context, userID int64, capture models.Capture) (models.JobApplication, error)
}

func (m *mockApplicationService) Create(ctx context.Context, userID int64, application models.JobApplication) (models.JobApplication, error) {
	return m.createFn(ctx, userID, application)
}

func (m *mockApplicationService) Get(ctx context.Context, userID, applicationID int64) (models.JobApplication, error) {
	return m.getFn(ctx, userID, applicationID)
}

func (m *mockApplicationService) List(ctx context.Context, userID int64, filter models.ApplicationFilter) ([]models.JobApplication, error) {
	return m.listFn(ctx, userID, filter)
}

func (m *mockApplicationService) Update(ctx context.Context, userID, applicationID int64, update models.ApplicationUpdate) (models.JobApplication, error) {
	return m.updateFn(ctx, userID, applicationID, update)
}

func (m *mockApplicationService) Delete(ctx context.Context, userID, applicationID int64) error {
	return m.deleteFn(ctx, userID, applicationID)
}

func (m *mockApplicationService) Ingest(ctx context.Context, userID int64, capture models.Capture) (models.JobApplication, error) {
	return m.ingestFn(ctx, userID, capture)
}

// mockStatsService implements service.StatsService for unit tests.
type mockStatsService struct {
	recomputeFn         func(ctx context.Context, userID int64, isNewApplication bool) (models.Stats, error)
	getStatsFn          func(ctx context.Context, userID int64) (models.StatsResponse, error)
	updateKPISettingsFn func(ctx context.Context, userID int64, update models.KPISettingsUpdate) (models.User, error)
	progressFn          func(user models.User) models.Progress
}

func (m *mockStatsService) Recompute(ctx context.Context, userID int64, isNewApplication bool) (models.Stats, error) {
	return m.recomputeFn(ctx, userID, isNewApplication)
}

func (m *mockStatsService) GetStats(ctx context.Context, userID int64) (models.StatsResponse, error) {
	return m.getStatsFn(ctx, userID)
}

func (m *mockStatsService) UpdateKPISettings(ctx context.Context, userID int64, update models.KPISettingsUpdate) (models.User, error) {
	return m.updateKPISettingsFn(ctx, userID, update)
}

func (m *mockStatsService) Progress(user models.User) models.Progress {
	return m.progressFn(user)
}

// newHandlerWith builds a Handler around the given service mocks with a
// development-mode test configuration.
func newHandlerWith(t *testing.T, services *service.Services) *Handler {
	t.Helper()
	cfg := config.StructuredConfig{}
	cfg.App.FrontendURL = "https://app.hirepath.test"
	cfg.App.DevelopmentMode = true
	cfg.Server.AllowedOrigins = []string{"https://app.hirepath.test"}
	return NewHandler(services, cfg, logger.Nop())
}

// stubToken returns a models.Token with the given signed string.
func stubToken(signed string) models.Token {
	return models.Token{SignedString: signed}
}
