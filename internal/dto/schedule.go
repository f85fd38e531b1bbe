package dto

import (
	"fmt"
	"time"
)

// Naive local wall-clock layouts used across the scheduling API. No timezone
// conversion happens anywhere in this service.
const (
	DateLayout     = "2006-01-02"
	DateTimeLayout = "2006-01-02T15:04"
	ClockLayout    = "15:04"
)

// ParseDate parses a naive calendar date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return t, nil
}

// ParseDateTime parses a naive local timestamp.
func ParseDateTime(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DateTimeLayout, s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp %q: %w", s, err)
	}
	return t, nil
}

// ParseClockOnDate combines a date with an HH:MM clock value.
func ParseClockOnDate(date time.Time, clock string) (time.Time, error) {
	t, err := time.ParseInLocation(ClockLayout, clock, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time %q: %w", clock, err)
	}
	return time.Date(date.Year(), date.Month(), date.Day(), t.Hour(), t.Minute(), 0, 0, time.Local), nil
}

// ── schedule module DTOs ──

// ListEntriesRequest window query parameters.
type ListEntriesRequest struct {
	Granularity string   `form:"granularity" binding:"omitempty,oneof=day week month"`
	Anchor      string   `form:"anchor"      binding:"omitempty"` // YYYY-MM-DD, defaults to today
	MemberIDs   []string `form:"member_ids"  binding:"omitempty,dive,uuid"`
}

// CreateEntryRequest places a new entry.
type CreateEntryRequest struct {
	MemberID    string  `json:"member_id"   binding:"required,uuid"`
	ProjectID   *string `json:"project_id"  binding:"omitempty,uuid"`
	Title       string  `json:"title"       binding:"omitempty,max=200"`
	Description *string `json:"description" binding:"omitempty,max=1000"`
	StartAt     string  `json:"start_at"    binding:"required"` // YYYY-MM-DDTHH:MM
	EndAt       string  `json:"end_at"      binding:"required"`
	AllDay      bool    `json:"all_day"`
	EntryType   string  `json:"entry_type"  binding:"omitempty,oneof=project internal time_off travel"`
	Color       *string `json:"color"       binding:"omitempty,hexcolor"`
}

// UpdateEntryRequest mutates a local entry; nil fields are left unchanged.
type UpdateEntryRequest struct {
	MemberID    *string `json:"member_id"   binding:"omitempty,uuid"`
	ProjectID   *string `json:"project_id"  binding:"omitempty,uuid"`
	Title       *string `json:"title"       binding:"omitempty,min=1,max=200"`
	Description *string `json:"description" binding:"omitempty,max=1000"`
	StartAt     *string `json:"start_at"`
	EndAt       *string `json:"end_at"`
	AllDay      *bool   `json:"all_day"`
	EntryType   *string `json:"entry_type"  binding:"omitempty,oneof=project internal time_off travel"`
	Status      *string `json:"status"      binding:"omitempty,oneof=scheduled completed cancelled"`
	Color       *string `json:"color"       binding:"omitempty,hexcolor"`
}

// ConflictCheckRequest is the advisory pre-submit conflict check. It is a
// pure query re-issued as the caller edits the candidate fields.
type ConflictCheckRequest struct {
	MemberID       string `form:"member_id"  binding:"required,uuid"`
	Date           string `form:"date"       binding:"required"` // YYYY-MM-DD
	StartTime      string `form:"start_time" binding:"omitempty"`
	EndTime        string `form:"end_time"   binding:"omitempty"`
	AllDay         bool   `form:"all_day"`
	ExcludeEntryID string `form:"exclude_entry_id" binding:"omitempty,uuid"`
}

// EntryResponse one schedule entry.
type EntryResponse struct {
	ID          string  `json:"id"`
	MemberID    string  `json:"member_id"`
	ProjectID   *string `json:"project_id,omitempty"`
	Title       string  `json:"title"`
	Description *string `json:"description,omitempty"`
	StartAt     string  `json:"start_at"`
	EndAt       string  `json:"end_at"`
	AllDay      bool    `json:"all_day"`
	EntryType   string  `json:"entry_type"`
	Status      string  `json:"status"`
	Color       string  `json:"color"`
	Source      string  `json:"source"`
	ReadOnly    bool    `json:"read_only"`
}

// EntryMutationResponse wraps a mutation result with the advisory conflict
// list. Conflicts are a warning, not a failure; the save has already been
// accepted by the store.
type EntryMutationResponse struct {
	Entry     *EntryResponse  `json:"entry"`
	Conflicts []EntryResponse `json:"conflicts"`
}

// ConflictCheckResponse advisory conflict check result.
type ConflictCheckResponse struct {
	Conflicts []EntryResponse `json:"conflicts"`
}
