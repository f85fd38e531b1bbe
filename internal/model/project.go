package model

// Project maps to projects. Entries hold a weak reference to a project used
// only for display and title autofill, never for scheduling logic.
type Project struct {
	ProjectID string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"project_id"`
	Name      string  `gorm:"type:varchar(200);not null"                     json:"name"`
	Customer  *string `gorm:"type:varchar(200)"                              json:"customer,omitempty"`
	BaseModel
}

// TableName sets the table name.
func (Project) TableName() string { return "projects" }
