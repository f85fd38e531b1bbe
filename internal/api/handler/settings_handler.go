package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/Ahogberg/handymate-dashboard-sub000/internal/dto"
	"github.com/Ahogberg/handymate-dashboard-sub000/internal/service"
	"github.com/Ahogberg/handymate-dashboard-sub000/pkg/response"
)

// SettingsHandler handles schedule settings endpoints.
type SettingsHandler struct {
	settingsSvc service.SettingsService
}

// NewSettingsHandler creates a SettingsHandler.
func NewSettingsHandler(settingsSvc service.SettingsService) *SettingsHandler {
	return &SettingsHandler{settingsSvc: settingsSvc}
}

// Get returns the current schedule settings.
// GET /api/v1/settings
func (h *SettingsHandler) Get(c *gin.Context) {
	resp, err := h.settingsSvc.Get(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, resp)
}

// Update applies a partial settings change.
// PUT /api/v1/settings
func (h *SettingsHandler) Update(c *gin.Context) {
	var req dto.UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 16001, "invalid request body")
		return
	}

	resp, err := h.settingsSvc.Update(c.Request.Context(), &req)
	if err != nil {
		var verr *service.ValidationError
		if errors.As(err, &verr) {
			response.BadRequest(c, 16002, verr.Error())
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, resp)
}
