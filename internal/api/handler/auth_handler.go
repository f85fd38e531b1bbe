package handler

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Ahogberg/handymate-dashboard-sub000/internal/dto"
	"github.com/Ahogberg/handymate-dashboard-sub000/internal/service"
	"github.com/Ahogberg/handymate-dashboard-sub000/pkg/response"
)

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	authSvc service.AuthService
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(authSvc service.AuthService) *AuthHandler {
	return &AuthHandler{authSvc: authSvc}
}

// Login signs a member in.
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	resp, err := h.authSvc.Login(c.Request.Context(), &req)
	if err != nil {
		h.handleAuthError(c, err)
		return
	}

	response.OK(c, resp)
}

// Refresh exchanges a refresh token for a new pair.
// POST /api/v1/auth/refresh
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req dto.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	resp, err := h.authSvc.Refresh(c.Request.Context(), &req)
	if err != nil {
		h.handleAuthError(c, err)
		return
	}

	response.OK(c, resp)
}

// Logout revokes the current access token.
// POST /api/v1/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	token := strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
	if err := h.authSvc.Logout(c.Request.Context(), token); err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, nil)
}

// Me returns the signed-in member.
// GET /api/v1/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	memberID, ok := MustGetMemberID(c)
	if !ok {
		return
	}

	resp, err := h.authSvc.Me(c.Request.Context(), memberID)
	if err != nil {
		h.handleAuthError(c, err)
		return
	}

	response.OK(c, resp)
}

func (h *AuthHandler) handleAuthError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		response.Unauthorized(c, 10101, "invalid email or password")
	case errors.Is(err, service.ErrMemberInactive):
		response.Forbidden(c, 10102, "account is deactivated")
	case errors.Is(err, service.ErrInvalidRefresh):
		response.Unauthorized(c, 10103, "invalid refresh token")
	case errors.Is(err, service.ErrMemberNotFound):
		response.NotFound(c, 10104, "member not found")
	default:
		response.InternalError(c)
	}
}
