package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/Ahogberg/handymate-dashboard-sub000/internal/dto"
	"github.com/Ahogberg/handymate-dashboard-sub000/internal/model"
	"github.com/Ahogberg/handymate-dashboard-sub000/internal/service"
	"github.com/Ahogberg/handymate-dashboard-sub000/pkg/response"
)

// RosterHandler handles team roster endpoints.
type RosterHandler struct {
	rosterSvc service.RosterService
}

// NewRosterHandler creates a RosterHandler.
func NewRosterHandler(rosterSvc service.RosterService) *RosterHandler {
	return &RosterHandler{rosterSvc: rosterSvc}
}

// List returns the full roster.
// GET /api/v1/roster
func (h *RosterHandler) List(c *gin.Context) {
	members, err := h.rosterSvc.List(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, gin.H{"list": members})
}

// UpdateColor changes a member's calendar color. Members may recolor
// themselves; elevated roles may recolor anyone.
// PUT /api/v1/roster/:id/color
func (h *RosterHandler) UpdateColor(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 11001, "member id is required")
		return
	}

	callerID, ok := MustGetMemberID(c)
	if !ok {
		return
	}
	role, ok := MustGetRole(c)
	if !ok {
		return
	}
	if callerID != id && role != model.RoleOwner && role != model.RoleAdmin {
		response.Forbidden(c, 11002, "cannot change another member's color")
		return
	}

	var req dto.UpdateMemberColorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 11001, "invalid request body")
		return
	}

	member, err := h.rosterSvc.UpdateColor(c.Request.Context(), id, &req)
	if err != nil {
		if errors.Is(err, service.ErrMemberNotFound) {
			response.NotFound(c, 11101, "member not found")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, member)
}
