package dto

// ── time-off module DTOs ──

// SubmitTimeOffRequest creates a pending leave request.
type SubmitTimeOffRequest struct {
	StartDate string  `json:"start_date" binding:"required"` // YYYY-MM-DD, inclusive
	EndDate   string  `json:"end_date"   binding:"required"` // YYYY-MM-DD, inclusive
	Category  string  `json:"category"   binding:"omitempty,oneof=vacation sick parental other"`
	Note      *string `json:"note"       binding:"omitempty,max=500"`
}

// DecideTimeOffRequest approves or rejects a pending request.
type DecideTimeOffRequest struct {
	Decision string `json:"decision" binding:"required,oneof=approve reject"`
}

// TimeOffListRequest list filter.
type TimeOffListRequest struct {
	Status   string `form:"status"    binding:"omitempty,oneof=pending approved rejected"`
	MemberID string `form:"member_id" binding:"omitempty,uuid"`
}

// TimeOffResponse one leave request.
type TimeOffResponse struct {
	ID         string  `json:"id"`
	MemberID   string  `json:"member_id"`
	MemberName string  `json:"member_name,omitempty"`
	StartDate  string  `json:"start_date"`
	EndDate    string  `json:"end_date"`
	Category   string  `json:"category"`
	Note       *string `json:"note,omitempty"`
	Status     string  `json:"status"`
	EntryID    *string `json:"entry_id,omitempty"`
	DecidedBy  *string `json:"decided_by,omitempty"`
	DecidedAt  *string `json:"decided_at,omitempty"`
}
