package handler

import (
	"github.com/gin-gonic/gin"

	"quotely/internal/service"
)

// DashboardHandler handles the summary endpoint.
type DashboardHandler struct {
	dashboardService service.DashboardService
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(dashboardService service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// Summary handles GET /api/v1/dashboard/summary
// @Summary Collection and pipeline summary
// @Description Amount collected on paid invoices, amount still pending, invoice counts and quotation count
// @Tags dashboard
// @Produce json
// @Success 200 {object} Response{data=domain.DashboardSummary} "Summary"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Security BearerAuth
// @Router /dashboard/summary [get]
func (h *DashboardHandler) Summary(c *gin.Context) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}

	summary, err := h.dashboardService.GetSummary(c.Request.Context(), tenantID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, summary)
}
