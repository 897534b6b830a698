package service

import (
	"github.com/hirepath/hirepath-server/internal/config"
	"github.com/hirepath/hirepath-server/internal/logger"
	"github.com/hirepath/hirepath-server/internal/store"
)

type Services struct {
	AuthService        AuthService
	ApplicationService ApplicationService
	StatsService       StatsService
}

func NewServices(storages store.Storages, cfg config.StructuredConfig, logger *logger.Logger) *Services {
	googleProvider := NewGoogleProvider(cfg.Google, logger)
	statsService := NewStatsService(storages.UserRepository, storages.ApplicationRepository, logger)

	return &Services{
		AuthService:        NewAuthService(storages.UserRepository, googleProvider, cfg.App, logger),
		ApplicationService: NewApplicationService(storages.ApplicationRepository, statsService, logger),
		StatsService:       statsService,
	}
}
