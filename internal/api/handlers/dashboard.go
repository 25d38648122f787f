package handlers

import (
	"net/http"

	"iwfm-backend/internal/services"
	"iwfm-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	dashboardService *services.DashboardService
}

func NewDashboardHandler(dashboardService *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
	}
}

// GetSummary computes the dashboard counters from the raw tanker records.
// Nothing is cached or persisted; a failed aggregation returns an error,
// never a partial result.
func (h *DashboardHandler) GetSummary(c *gin.Context) {
	summary, err := h.dashboardService.Summary()
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to compute dashboard summary", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Dashboard summary computed successfully", summary)
}
