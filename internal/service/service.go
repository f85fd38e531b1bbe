package service

import (
	"go.uber.org/zap"

	"github.com/Ahogberg/handymate-dashboard-sub000/config"
	"github.com/Ahogberg/handymate-dashboard-sub000/internal/repository"
	"github.com/Ahogberg/handymate-dashboard-sub000/pkg/jwt"
	"github.com/Ahogberg/handymate-dashboard-sub000/pkg/redis"
)

// Service is the aggregate entry point for all services.
type Service struct {
	Auth        AuthService
	Roster      RosterService
	Settings    SettingsService
	Schedule    ScheduleService
	TimeOff     TimeOffService
	Sync        SyncService
	Utilization UtilizationService
	Export      ExportService
}

// NewService wires the service aggregate.
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	rdb *redis.Client,
	logger *zap.Logger,
) *Service {
	settings := NewSettingsService(repo, &cfg.Schedule, logger)
	utilization := NewUtilizationService(repo, settings, logger)

	return &Service{
		Auth:        NewAuthService(repo, jwtMgr, rdb, logger),
		Roster:      NewRosterService(repo, logger),
		Settings:    settings,
		Schedule:    NewScheduleService(repo, settings, logger),
		TimeOff:     NewTimeOffService(repo, logger),
		Sync:        NewSyncService(repo, settings, rdb, cfg.Sync.FeedURL, logger),
		Utilization: utilization,
		Export:      NewExportService(utilization, logger),
	}
}
