package dto

// ── roster module DTOs ──

// MemberResponse one roster entry.
type MemberResponse struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	Role           string `json:"role"`
	Color          string `json:"color"`
	IsActive       bool   `json:"is_active"`
	InviteAccepted bool   `json:"invite_accepted"`
}

// UpdateMemberColorRequest changes a member's calendar color.
type UpdateMemberColorRequest struct {
	Color string `json:"color" binding:"required,hexcolor"`
}
