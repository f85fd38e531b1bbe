package repository

import "gorm.io/gorm"

// Repository aggregates every data access interface.
type Repository struct {
	Member   MemberRepository
	Project  ProjectRepository
	Entry    EntryRepository
	TimeOff  TimeOffRepository
	Settings SettingsRepository
}

// NewRepository wires the gorm-backed implementations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		Member:   NewMemberRepo(db),
		Project:  NewProjectRepo(db),
		Entry:    NewEntryRepo(db),
		TimeOff:  NewTimeOffRepo(db),
		Settings: NewSettingsRepo(db),
	}
}
