package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/Ahogberg/handymate-dashboard-sub000/internal/dto"
	"github.com/Ahogberg/handymate-dashboard-sub000/internal/service"
	"github.com/Ahogberg/handymate-dashboard-sub000/pkg/response"
)

// TimeOffHandler handles leave request endpoints.
type TimeOffHandler struct {
	timeOffSvc service.TimeOffService
}

// NewTimeOffHandler creates a TimeOffHandler.
func NewTimeOffHandler(timeOffSvc service.TimeOffService) *TimeOffHandler {
	return &TimeOffHandler{timeOffSvc: timeOffSvc}
}

// Submit creates a pending request for the signed-in member.
// POST /api/v1/time-off
func (h *TimeOffHandler) Submit(c *gin.Context) {
	memberID, ok := MustGetMemberID(c)
	if !ok {
		return
	}

	var req dto.SubmitTimeOffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 13001, "invalid request body")
		return
	}

	resp, err := h.timeOffSvc.Submit(c.Request.Context(), memberID, &req)
	if err != nil {
		h.handleTimeOffError(c, err)
		return
	}

	response.Created(c, resp)
}

// List returns leave requests, optionally filtered.
// GET /api/v1/time-off
func (h *TimeOffHandler) List(c *gin.Context) {
	var req dto.TimeOffListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 13001, "invalid query parameters")
		return
	}

	requests, err := h.timeOffSvc.List(c.Request.Context(), &req)
	if err != nil {
		h.handleTimeOffError(c, err)
		return
	}

	response.OK(c, gin.H{"list": requests})
}

// Decide approves or rejects a pending request.
// POST /api/v1/time-off/:id/decision
func (h *TimeOffHandler) Decide(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 13001, "request id is required")
		return
	}

	deciderID, ok := MustGetMemberID(c)
	if !ok {
		return
	}

	var req dto.DecideTimeOffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 13001, "invalid request body")
		return
	}

	resp, err := h.timeOffSvc.Decide(c.Request.Context(), id, deciderID, &req)
	if err != nil {
		h.handleTimeOffError(c, err)
		return
	}

	response.OK(c, resp)
}

func (h *TimeOffHandler) handleTimeOffError(c *gin.Context, err error) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		response.BadRequest(c, 13002, verr.Error())
	case errors.Is(err, service.ErrRequestNotFound):
		response.NotFound(c, 13101, "time-off request not found")
	case errors.Is(err, service.ErrMemberNotFound):
		response.NotFound(c, 13102, "team member not found")
	case errors.Is(err, service.ErrRequestNotPending):
		response.Conflict(c, 13103, "request has already been decided")
	default:
		response.InternalError(c)
	}
}
