package dto

import "github.com/Ahogberg/handymate-dashboard-sub000/internal/calendar"

// ── utilization module DTOs ──

// UtilizationRequest aggregation window parameters.
type UtilizationRequest struct {
	Granularity string   `form:"granularity" binding:"omitempty,oneof=day week month"`
	Anchor      string   `form:"anchor"      binding:"omitempty"`
	MemberIDs   []string `form:"member_ids"  binding:"omitempty,dive,uuid"`
}

// UtilizationResponse the aggregated report for a window.
type UtilizationResponse struct {
	Granularity string          `json:"granularity"`
	Start       string          `json:"start"`
	End         string          `json:"end"`
	Capacity    float64         `json:"capacity_hours_per_day"`
	Report      calendar.Report `json:"report"`
}
