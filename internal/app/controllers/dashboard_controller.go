package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/eduinsight/eduinsight/internal/app/models/dto"
	"github.com/eduinsight/eduinsight/internal/app/services"
	"github.com/eduinsight/eduinsight/internal/middleware"
)

// DashboardController serves the aggregate statistics endpoint
type DashboardController struct {
	dashboardService services.DashboardService
}

// NewDashboardController creates a new DashboardController
func NewDashboardController(dashboardService services.DashboardService) *DashboardController {
	return &DashboardController{
		dashboardService: dashboardService,
	}
}

// GetDashboard returns dataset-wide statistics
// @Summary Get dashboard statistics
// @Description Returns student counts, at-risk tallies, per-metric averages, the at-risk shortlist and recent records
// @Tags dashboard
// @Accept json
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.DashboardStats} "Statistics computed successfully"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /dashboard [get]
func (c *DashboardController) GetDashboard(ctx *gin.Context) {
	stats, err := c.dashboardService.GetStats(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      stats,
		Timestamp: time.Now(),
	})
}
