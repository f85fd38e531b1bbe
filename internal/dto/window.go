package dto

import "github.com/Ahogberg/handymate-dashboard-sub000/internal/calendar"

// ── calendar window DTOs ──

// WindowRequest resolves a view window and its layout geometry. Nav shifts
// the anchor by one unit of the granularity before the window is computed,
// so clients step between periods without redoing the date arithmetic.
type WindowRequest struct {
	Granularity string   `form:"granularity" binding:"omitempty,oneof=day week month"`
	Anchor      string   `form:"anchor"      binding:"omitempty"`
	Nav         string   `form:"nav"         binding:"omitempty,oneof=next prev today"`
	MemberIDs   []string `form:"member_ids"  binding:"omitempty,dive,uuid"`
}

// DayColumn is one rendered day in a day/week grid: the all-day lane plus
// the proportional blocks for every timed entry visible that day.
type DayColumn struct {
	Date    string                   `json:"date"`
	AllDay  []calendar.AllDayChip    `json:"all_day"`
	Blocks  []calendar.BlockGeometry `json:"blocks"`
	Weekend bool                     `json:"weekend"`
}

// MonthDayCell is one rendered day in the month grid.
type MonthDayCell struct {
	Date         string          `json:"date"`
	OutsideFocus bool            `json:"outside_focus"`
	Entries      []EntryResponse `json:"entries"`
	Overflow     int             `json:"overflow"`
}

// WindowResponse is the resolved window: bounds, entries, and the layout for
// the requested granularity (Columns for day/week, Cells for month).
type WindowResponse struct {
	Granularity string          `json:"granularity"`
	Anchor      string          `json:"anchor"`
	Start       string          `json:"start"`
	End         string          `json:"end"`
	HourHeight  float64         `json:"hour_height"`
	StartHour   int             `json:"start_hour"`
	EndHour     int             `json:"end_hour"`
	Entries     []EntryResponse `json:"entries"`
	Columns     []DayColumn     `json:"columns,omitempty"`
	Cells       []MonthDayCell  `json:"cells,omitempty"`
}
