package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Ahogberg/handymate-dashboard-sub000/config"
	"github.com/Ahogberg/handymate-dashboard-sub000/internal/dto"
	"github.com/Ahogberg/handymate-dashboard-sub000/internal/model"
	"github.com/Ahogberg/handymate-dashboard-sub000/internal/repository"
)

// SettingsService manages the singleton schedule settings row.
type SettingsService interface {
	// Current returns the raw settings model for other services.
	Current(ctx context.Context) (*model.ScheduleSettings, error)
	// Get returns the settings for the API.
	Get(ctx context.Context) (*dto.SettingsResponse, error)
	// Update applies a partial settings change and returns the result.
	Update(ctx context.Context, req *dto.UpdateSettingsRequest) (*dto.SettingsResponse, error)
}

type settingsService struct {
	repo     *repository.Repository
	defaults *config.ScheduleConfig
	logger   *zap.Logger
}

// NewSettingsService creates a SettingsService. defaults seeds the settings
// row on the first read against an empty database.
func NewSettingsService(repo *repository.Repository, defaults *config.ScheduleConfig, logger *zap.Logger) SettingsService {
	return &settingsService{repo: repo, defaults: defaults, logger: logger}
}

func (s *settingsService) Current(ctx context.Context) (*model.ScheduleSettings, error) {
	settings, err := s.repo.Settings.Get(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return s.seed(ctx)
		}
		s.logger.Error("load settings failed", zap.Error(err))
		return nil, err
	}
	return settings, nil
}

// seed writes the bootstrap row from configuration.
func (s *settingsService) seed(ctx context.Context) (*model.ScheduleSettings, error) {
	settings := &model.ScheduleSettings{
		SettingsID:          1,
		CapacityHoursPerDay: s.defaults.CapacityHoursPerDay,
		VisibleStartHour:    s.defaults.VisibleStartHour,
		VisibleEndHour:      s.defaults.VisibleEndHour,
		MonthCellMaxEntries: s.defaults.MonthCellMaxEntries,
		SyncDirection:       model.SyncDirectionImport,
	}
	if err := s.repo.Settings.Create(ctx, settings); err != nil {
		s.logger.Error("seed settings failed", zap.Error(err))
		return nil, err
	}
	s.logger.Info("schedule settings seeded from configuration")
	return s.repo.Settings.Get(ctx)
}

func (s *settingsService) Get(ctx context.Context) (*dto.SettingsResponse, error) {
	settings, err := s.Current(ctx)
	if err != nil {
		return nil, err
	}
	return settingsToResponse(settings), nil
}

func (s *settingsService) Update(ctx context.Context, req *dto.UpdateSettingsRequest) (*dto.SettingsResponse, error) {
	settings, err := s.Current(ctx)
	if err != nil {
		return nil, err
	}

	if req.CapacityHoursPerDay != nil {
		settings.CapacityHoursPerDay = *req.CapacityHoursPerDay
	}
	if req.VisibleStartHour != nil {
		settings.VisibleStartHour = *req.VisibleStartHour
	}
	if req.VisibleEndHour != nil {
		settings.VisibleEndHour = *req.VisibleEndHour
	}
	if settings.VisibleEndHour <= settings.VisibleStartHour {
		return nil, &ValidationError{Field: "visible_end_hour", Message: "visible end hour must be after the start hour"}
	}
	if req.MonthCellMaxEntries != nil {
		settings.MonthCellMaxEntries = *req.MonthCellMaxEntries
	}
	if req.SyncDirection != nil {
		settings.SyncDirection = *req.SyncDirection
	}

	if err := s.repo.Settings.Update(ctx, settings); err != nil {
		s.logger.Error("update settings failed", zap.Error(err))
		return nil, err
	}

	updated, err := s.Current(ctx)
	if err != nil {
		return nil, err
	}
	return settingsToResponse(updated), nil
}

func settingsToResponse(m *model.ScheduleSettings) *dto.SettingsResponse {
	return &dto.SettingsResponse{
		CapacityHoursPerDay: m.CapacityHoursPerDay,
		VisibleStartHour:    m.VisibleStartHour,
		VisibleEndHour:      m.VisibleEndHour,
		MonthCellMaxEntries: m.MonthCellMaxEntries,
		SyncDirection:       m.SyncDirection,
	}
}
