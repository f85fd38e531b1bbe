package dto

// ── schedule settings DTOs ──

// UpdateSettingsRequest mutates the singleton settings row; nil fields are
// left unchanged.
type UpdateSettingsRequest struct {
	CapacityHoursPerDay *float64 `json:"capacity_hours_per_day" binding:"omitempty,gt=0,lte=24"`
	VisibleStartHour    *int     `json:"visible_start_hour"     binding:"omitempty,min=0,max=23"`
	VisibleEndHour      *int     `json:"visible_end_hour"       binding:"omitempty,min=1,max=24"`
	MonthCellMaxEntries *int     `json:"month_cell_max_entries" binding:"omitempty,min=1,max=10"`
	SyncDirection       *string  `json:"sync_direction"         binding:"omitempty,oneof=import export both"`
}

// SettingsResponse the current schedule settings.
type SettingsResponse struct {
	CapacityHoursPerDay float64 `json:"capacity_hours_per_day"`
	VisibleStartHour    int     `json:"visible_start_hour"`
	VisibleEndHour      int     `json:"visible_end_hour"`
	MonthCellMaxEntries int     `json:"month_cell_max_entries"`
	SyncDirection       string  `json:"sync_direction"`
}
