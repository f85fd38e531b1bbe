package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/Ahogberg/handymate-dashboard-sub000/pkg/response"
)

// MustGetMemberID extracts the authenticated member id from the Gin context.
// Returns false and writes a 401 when the JWT middleware did not inject it;
// callers should return immediately in that case.
func MustGetMemberID(c *gin.Context) (string, bool) {
	v, exists := c.Get("member_id")
	if !exists {
		response.Unauthorized(c, 10002, "not authenticated")
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		response.Unauthorized(c, 10002, "not authenticated")
		return "", false
	}
	return s, true
}

// MustGetRole extracts the authenticated member's role.
func MustGetRole(c *gin.Context) (string, bool) {
	v, exists := c.Get("role")
	if !exists {
		response.Unauthorized(c, 10002, "not authenticated")
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		response.Unauthorized(c, 10002, "not authenticated")
		return "", false
	}
	return s, true
}
