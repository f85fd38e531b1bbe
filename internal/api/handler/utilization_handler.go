package handler

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/Ahogberg/handymate-dashboard-sub000/internal/dto"
	"github.com/Ahogberg/handymate-dashboard-sub000/internal/service"
	"github.com/Ahogberg/handymate-dashboard-sub000/pkg/response"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// UtilizationHandler handles utilization reporting endpoints.
type UtilizationHandler struct {
	utilizationSvc service.UtilizationService
	exportSvc      service.ExportService
}

// NewUtilizationHandler creates a UtilizationHandler.
func NewUtilizationHandler(utilizationSvc service.UtilizationService, exportSvc service.ExportService) *UtilizationHandler {
	return &UtilizationHandler{utilizationSvc: utilizationSvc, exportSvc: exportSvc}
}

// GetReport returns the aggregated utilization for a window.
// GET /api/v1/utilization
func (h *UtilizationHandler) GetReport(c *gin.Context) {
	var req dto.UtilizationRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 15001, "invalid query parameters")
		return
	}

	resp, err := h.utilizationSvc.GetReport(c.Request.Context(), &req)
	if err != nil {
		h.handleUtilizationError(c, err)
		return
	}

	response.OK(c, resp)
}

// Export downloads the utilization report as an .xlsx workbook.
// GET /api/v1/utilization/export
func (h *UtilizationHandler) Export(c *gin.Context) {
	var req dto.UtilizationRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 15001, "invalid query parameters")
		return
	}

	buf, filename, err := h.exportSvc.ExportUtilization(c.Request.Context(), &req)
	if err != nil {
		h.handleUtilizationError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+url.PathEscape(filename)+`"`)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

func (h *UtilizationHandler) handleUtilizationError(c *gin.Context, err error) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		response.BadRequest(c, 15002, verr.Error())
	case errors.Is(err, service.ErrExportEmptyRoster):
		response.NotFound(c, 15101, "no members to export")
	case errors.Is(err, service.ErrExportGenerateFail):
		response.InternalError(c)
	default:
		response.InternalError(c)
	}
}
