package handlers

import (
	"context"

	"github.com/m1z23r/drift/pkg/drift"
	"github.com/salesgame/salesgame-api/internal/middleware"
)

type DashboardHandler struct {
	dashboardService DashboardServiceInterface
}

func NewDashboardHandler(dashboardService DashboardServiceInterface) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

func (h *DashboardHandler) General(c *drift.Context) {
	actor := middleware.Principal(c)
	if actor == nil {
		c.Unauthorized("not authenticated")
		return
	}

	dashboard, err := h.dashboardService.General(context.Background(), actor)
	if err != nil {
		respondError(c, err)
		return
	}
	_ = c.JSON(200, dashboard)
}
