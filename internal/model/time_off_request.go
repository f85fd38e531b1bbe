package model

import "time"

// Time-off request status. Pending is the only state that accepts decisions;
// approved and rejected are terminal.
const (
	TimeOffPending  = "pending"
	TimeOffApproved = "approved"
	TimeOffRejected = "rejected"
)

// Time-off categories.
const (
	TimeOffVacation = "vacation"
	TimeOffSick     = "sick"
	TimeOffParental = "parental"
	TimeOffOther    = "other"
)

// TimeOffRequest maps to time_off_requests. Dates are inclusive calendar
// dates. On approval EntryID points at the materialized time_off entry.
type TimeOffRequest struct {
	RequestID string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"request_id"`
	MemberID  string     `gorm:"type:uuid;not null"                             json:"member_id"`
	StartDate time.Time  `gorm:"type:date;not null"                             json:"start_date"`
	EndDate   time.Time  `gorm:"type:date;not null"                             json:"end_date"`
	Category  string     `gorm:"type:varchar(20);not null;default:'vacation'"   json:"category"`
	Note      *string    `gorm:"type:varchar(500)"                              json:"note,omitempty"`
	Status    string     `gorm:"type:varchar(20);not null;default:'pending'"    json:"status"`
	EntryID   *string    `gorm:"type:uuid"                                      json:"entry_id,omitempty"`
	DecidedBy *string    `gorm:"type:uuid"                                      json:"decided_by,omitempty"`
	DecidedAt *time.Time `json:"decided_at,omitempty"`
	BaseModel

	Member *TeamMember `gorm:"foreignKey:MemberID;references:MemberID" json:"member,omitempty"`
}

// TableName sets the table name.
func (TimeOffRequest) TableName() string { return "time_off_requests" }
