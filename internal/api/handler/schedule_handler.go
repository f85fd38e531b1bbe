package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/Ahogberg/handymate-dashboard-sub000/internal/dto"
	"github.com/Ahogberg/handymate-dashboard-sub000/internal/service"
	"github.com/Ahogberg/handymate-dashboard-sub000/pkg/response"
)

// ScheduleHandler handles schedule window and entry endpoints.
type ScheduleHandler struct {
	scheduleSvc service.ScheduleService
}

// NewScheduleHandler creates a ScheduleHandler.
func NewScheduleHandler(scheduleSvc service.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{scheduleSvc: scheduleSvc}
}

// GetWindow resolves a view window with entries and layout geometry.
// GET /api/v1/schedule/window
func (h *ScheduleHandler) GetWindow(c *gin.Context) {
	var req dto.WindowRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 12001, "invalid query parameters")
		return
	}

	resp, err := h.scheduleSvc.GetWindow(c.Request.Context(), &req)
	if err != nil {
		h.handleScheduleError(c, err)
		return
	}

	response.OK(c, resp)
}

// ListEntries returns the flat entry list for a window.
// GET /api/v1/schedule/entries
func (h *ScheduleHandler) ListEntries(c *gin.Context) {
	var req dto.ListEntriesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 12001, "invalid query parameters")
		return
	}

	resp, err := h.scheduleSvc.ListEntries(c.Request.Context(), &req)
	if err != nil {
		h.handleScheduleError(c, err)
		return
	}

	response.OK(c, resp)
}

// CheckConflicts is the advisory pre-submit conflict check.
// GET /api/v1/schedule/conflicts
func (h *ScheduleHandler) CheckConflicts(c *gin.Context) {
	var req dto.ConflictCheckRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 12001, "invalid query parameters")
		return
	}

	resp, err := h.scheduleSvc.CheckConflicts(c.Request.Context(), &req)
	if err != nil {
		h.handleScheduleError(c, err)
		return
	}

	response.OK(c, resp)
}

// CreateEntry places a new entry.
// POST /api/v1/schedule/entries
func (h *ScheduleHandler) CreateEntry(c *gin.Context) {
	var req dto.CreateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 12001, "invalid request body")
		return
	}

	resp, err := h.scheduleSvc.CreateEntry(c.Request.Context(), &req)
	if err != nil {
		h.handleScheduleError(c, err)
		return
	}

	response.Created(c, resp)
}

// GetEntry fetches one entry.
// GET /api/v1/schedule/entries/:id
func (h *ScheduleHandler) GetEntry(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 12001, "entry id is required")
		return
	}

	resp, err := h.scheduleSvc.GetEntry(c.Request.Context(), id)
	if err != nil {
		h.handleScheduleError(c, err)
		return
	}

	response.OK(c, resp)
}

// UpdateEntry mutates a local entry.
// PUT /api/v1/schedule/entries/:id
func (h *ScheduleHandler) UpdateEntry(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 12001, "entry id is required")
		return
	}

	var req dto.UpdateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 12001, "invalid request body")
		return
	}

	resp, err := h.scheduleSvc.UpdateEntry(c.Request.Context(), id, &req)
	if err != nil {
		h.handleScheduleError(c, err)
		return
	}

	response.OK(c, resp)
}

// DeleteEntry removes a local entry.
// DELETE /api/v1/schedule/entries/:id
func (h *ScheduleHandler) DeleteEntry(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 12001, "entry id is required")
		return
	}

	if err := h.scheduleSvc.DeleteEntry(c.Request.Context(), id); err != nil {
		h.handleScheduleError(c, err)
		return
	}

	response.OK(c, nil)
}

func (h *ScheduleHandler) handleScheduleError(c *gin.Context, err error) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		response.BadRequest(c, 12002, verr.Error())
	case errors.Is(err, service.ErrEntryNotFound):
		response.NotFound(c, 12101, "schedule entry not found")
	case errors.Is(err, service.ErrMemberNotFound):
		response.NotFound(c, 12102, "team member not found")
	case errors.Is(err, service.ErrProjectNotFound):
		response.NotFound(c, 12103, "project not found")
	case errors.Is(err, service.ErrEntryImmutable):
		response.Conflict(c, 12104, "external calendar entries cannot be modified here")
	default:
		response.InternalError(c)
	}
}
