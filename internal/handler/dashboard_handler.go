package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hadir-app/hadir-api/internal/dto"
	"github.com/hadir-app/hadir-api/internal/middleware"
	"github.com/hadir-app/hadir-api/pkg/response"
)

type dashboardService interface {
	Overview(ctx context.Context) (*dto.DashboardResponse, bool, error)
}

// DashboardHandler exposes the aggregate dashboard endpoint.
type DashboardHandler struct {
	dashboard dashboardService
}

// NewDashboardHandler constructs the handler.
func NewDashboardHandler(dashboard dashboardService) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard}
}

// Overview godoc
// @Summary Dashboard stats and chart series
// @Tags Dashboard
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /dashboard [get]
func (h *DashboardHandler) Overview(c *gin.Context) {
	overview, cacheHit, err := h.dashboard.Overview(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetCacheHit(c, cacheHit)
	middleware.StampProcessingTime(c)
	response.JSON(c, http.StatusOK, overview, "", middleware.ExtractMeta(c))
}
