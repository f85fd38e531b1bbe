package model

// Member roles. Owner and admin may decide time-off requests and trigger
// syncs; members manage their own entries.
const (
	RoleOwner  = "owner"
	RoleAdmin  = "admin"
	RoleMember = "member"
)

// TeamMember maps to team_members. Only active members who have accepted
// their invitation participate in scheduling and utilization.
type TeamMember struct {
	MemberID       string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"member_id"`
	Name           string `gorm:"type:varchar(100);not null"                     json:"name"`
	Email          string `gorm:"type:varchar(255);not null;uniqueIndex"         json:"email"`
	PasswordHash   string `gorm:"type:varchar(255);not null"                     json:"-"`
	Role           string `gorm:"type:varchar(20);not null;default:'member'"     json:"role"`
	Color          string `gorm:"type:varchar(7);not null;default:'#4F46E5'"     json:"color"`
	IsActive       bool   `gorm:"not null;default:true"                          json:"is_active"`
	InviteAccepted bool   `gorm:"not null;default:false"                         json:"invite_accepted"`
	BaseModel
}

// TableName sets the table name.
func (TeamMember) TableName() string { return "team_members" }

// IsSchedulable reports whether the member participates in scheduling.
func (m *TeamMember) IsSchedulable() bool {
	return m.IsActive && m.InviteAccepted
}

// IsElevated reports whether the member may approve or reject time off.
func (m *TeamMember) IsElevated() bool {
	return m.Role == RoleOwner || m.Role == RoleAdmin
}
