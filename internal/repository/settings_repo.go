package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/Ahogberg/handymate-dashboard-sub000/internal/model"
)

// SettingsRepository access to the singleton schedule settings row.
type SettingsRepository interface {
	Get(ctx context.Context) (*model.ScheduleSettings, error)
	Create(ctx context.Context, settings *model.ScheduleSettings) error
	Update(ctx context.Context, settings *model.ScheduleSettings) error
}

type settingsRepo struct {
	db *gorm.DB
}

// NewSettingsRepo creates a SettingsRepository.
func NewSettingsRepo(db *gorm.DB) SettingsRepository {
	return &settingsRepo{db: db}
}

func (r *settingsRepo) Get(ctx context.Context) (*model.ScheduleSettings, error) {
	var s model.ScheduleSettings
	err := r.db.WithContext(ctx).Where("settings_id = ?", 1).First(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *settingsRepo) Create(ctx context.Context, settings *model.ScheduleSettings) error {
	settings.SettingsID = 1
	return r.db.WithContext(ctx).Create(settings).Error
}

func (r *settingsRepo) Update(ctx context.Context, settings *model.ScheduleSettings) error {
	settings.SettingsID = 1
	return r.db.WithContext(ctx).Save(settings).Error
}
