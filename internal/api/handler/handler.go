package handler

import "github.com/Ahogberg/handymate-dashboard-sub000/internal/service"

// Handler is the aggregate entry point for all handlers.
type Handler struct {
	Auth        *AuthHandler
	Roster      *RosterHandler
	Schedule    *ScheduleHandler
	TimeOff     *TimeOffHandler
	Sync        *SyncHandler
	Utilization *UtilizationHandler
	Settings    *SettingsHandler
}

// NewHandler wires the handler aggregate.
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Auth:        NewAuthHandler(svc.Auth),
		Roster:      NewRosterHandler(svc.Roster),
		Schedule:    NewScheduleHandler(svc.Schedule),
		TimeOff:     NewTimeOffHandler(svc.TimeOff),
		Sync:        NewSyncHandler(svc.Sync),
		Utilization: NewUtilizationHandler(svc.Utilization, svc.Export),
		Settings:    NewSettingsHandler(svc.Settings),
	}
}
