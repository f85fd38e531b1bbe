package model

import "time"

// Entry classification.
const (
	EntryTypeProject  = "project"
	EntryTypeInternal = "internal"
	EntryTypeTimeOff  = "time_off"
	EntryTypeTravel   = "travel"
	EntryTypeExternal = "external"
)

// Entry status.
const (
	EntryStatusScheduled = "scheduled"
	EntryStatusCompleted = "completed"
	EntryStatusCancelled = "cancelled"
)

// Entry provenance. Local entries are fully mutable; external entries are
// mirrored from a foreign calendar and read-only through this service.
const (
	EntrySourceLocal    = "local"
	EntrySourceExternal = "external"
)

// NeutralColor is used for time_off and external entries regardless of the
// owning member's color.
const NeutralColor = "#9CA3AF"

// ScheduleEntry maps to schedule_entries: one placed unit of work or absence.
// Timestamps are naive local wall-clock values; no zone conversion is applied
// anywhere in the service.
type ScheduleEntry struct {
	EntryID     string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"entry_id"`
	MemberID    string    `gorm:"type:uuid;not null"                             json:"member_id"`
	ProjectID   *string   `gorm:"type:uuid"                                      json:"project_id,omitempty"`
	Title       string    `gorm:"type:varchar(200);not null"                     json:"title"`
	Description *string   `gorm:"type:varchar(1000)"                             json:"description,omitempty"`
	StartAt     time.Time `gorm:"not null"                                       json:"start_at"`
	EndAt       time.Time `gorm:"not null"                                       json:"end_at"`
	AllDay      bool      `gorm:"not null;default:false"                         json:"all_day"`
	EntryType   string    `gorm:"type:varchar(20);not null;default:'project'"    json:"entry_type"`
	Status      string    `gorm:"type:varchar(20);not null;default:'scheduled'"  json:"status"`
	Color       *string   `gorm:"type:varchar(7)"                                json:"color,omitempty"`
	Source      string    `gorm:"type:varchar(10);not null;default:'local'"      json:"source"`
	ForeignUID  *string   `gorm:"type:varchar(255)"                              json:"foreign_uid,omitempty"`
	SoftDeleteModel

	Member  *TeamMember `gorm:"foreignKey:MemberID;references:MemberID"    json:"member,omitempty"`
	Project *Project    `gorm:"foreignKey:ProjectID;references:ProjectID"  json:"project,omitempty"`
}

// TableName sets the table name.
func (ScheduleEntry) TableName() string { return "schedule_entries" }

// IsMutable reports whether the entry may be updated or deleted here.
func (e *ScheduleEntry) IsMutable() bool {
	return e.Source == EntrySourceLocal
}

// EffectiveSpan returns the entry's occupied time range. All-day entries span
// the full calendar days from their start date through their end date
// inclusive, regardless of stored clock components.
func (e *ScheduleEntry) EffectiveSpan() (time.Time, time.Time) {
	if e.AllDay {
		first := time.Date(e.StartAt.Year(), e.StartAt.Month(), e.StartAt.Day(), 0, 0, 0, 0, e.StartAt.Location())
		last := time.Date(e.EndAt.Year(), e.EndAt.Month(), e.EndAt.Day(), 0, 0, 0, 0, e.EndAt.Location())
		if last.Before(first) {
			last = first
		}
		return first, last.AddDate(0, 0, 1)
	}
	return e.StartAt, e.EndAt
}

// DisplayColor resolves the rendered color: fixed neutral for time_off and
// external entries, explicit override next, then the member's color.
func (e *ScheduleEntry) DisplayColor() string {
	if e.EntryType == EntryTypeTimeOff || e.EntryType == EntryTypeExternal {
		return NeutralColor
	}
	if e.Color != nil && *e.Color != "" {
		return *e.Color
	}
	if e.Member != nil {
		return e.Member.Color
	}
	return NeutralColor
}
