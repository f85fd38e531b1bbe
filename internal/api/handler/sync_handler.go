package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Ahogberg/handymate-dashboard-sub000/internal/service"
	"github.com/Ahogberg/handymate-dashboard-sub000/pkg/response"
)

// SyncHandler handles external calendar sync endpoints.
type SyncHandler struct {
	syncSvc service.SyncService
}

// NewSyncHandler creates a SyncHandler.
func NewSyncHandler(syncSvc service.SyncService) *SyncHandler {
	return &SyncHandler{syncSvc: syncSvc}
}

// Status reports feed connectivity and the last run outcome.
// GET /api/v1/sync/status
func (h *SyncHandler) Status(c *gin.Context) {
	resp, err := h.syncSvc.Status(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, resp)
}

// Trigger runs a reconciliation against the configured feed.
// POST /api/v1/sync/trigger
func (h *SyncHandler) Trigger(c *gin.Context) {
	summary, err := h.syncSvc.Trigger(c.Request.Context())
	if err != nil {
		h.handleSyncError(c, err)
		return
	}
	response.OK(c, summary)
}

func (h *SyncHandler) handleSyncError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrSyncDisabled):
		response.Conflict(c, 14101, "calendar import is disabled in settings")
	case errors.Is(err, service.ErrFeedNotConfigured):
		response.Conflict(c, 14102, "no calendar feed configured")
	default:
		response.Error(c, http.StatusBadGateway, 14103, "calendar sync failed: "+err.Error())
	}
}
