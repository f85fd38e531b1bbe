package model

import "time"

// Sync direction policy. The reconciliation routine only ever performs the
// import side; export is a separate outbound command.
const (
	SyncDirectionImport = "import"
	SyncDirectionExport = "export"
	SyncDirectionBoth   = "both"
)

// ScheduleSettings maps to the singleton schedule_settings row. These values
// parameterize the pure calendar computations and are editable by admins.
type ScheduleSettings struct {
	SettingsID          int16     `gorm:"primaryKey;default:1"                       json:"-"`
	CapacityHoursPerDay float64   `gorm:"type:numeric(4,2);not null;default:8.0"     json:"capacity_hours_per_day"`
	VisibleStartHour    int       `gorm:"type:smallint;not null;default:6"           json:"visible_start_hour"`
	VisibleEndHour      int       `gorm:"type:smallint;not null;default:20"          json:"visible_end_hour"`
	MonthCellMaxEntries int       `gorm:"type:smallint;not null;default:3"           json:"month_cell_max_entries"`
	SyncDirection       string    `gorm:"type:varchar(20);not null;default:'import'" json:"sync_direction"`
	UpdatedAt           time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"         json:"updated_at"`
}

// TableName sets the table name.
func (ScheduleSettings) TableName() string { return "schedule_settings" }

// ImportEnabled reports whether inbound reconciliation is allowed.
func (s *ScheduleSettings) ImportEnabled() bool {
	return s.SyncDirection == SyncDirectionImport || s.SyncDirection == SyncDirectionBoth
}
