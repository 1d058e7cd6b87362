package handlers

import (
	"context"

	"github.com/m1z23r/drift/pkg/drift"
	"github.com/salesgame/salesgame-api/internal/middleware"
	"github.com/salesgame/salesgame-api/pkg/dto"
)

type ScoringHandler struct {
	scoringService ScoringServiceInterface
}

func NewScoringHandler(scoringService ScoringServiceInterface) *ScoringHandler {
	return &ScoringHandler{scoringService: scoringService}
}

func (h *ScoringHandler) GetConfig(c *drift.Context) {
	actor := middleware.Principal(c)
	if actor == nil {
		c.Unauthorized("not authenticated")
		return
	}

	config, err := h.scoringService.GetConfig(context.Background(), actor)
	if err != nil {
		respondError(c, err)
		return
	}
	_ = c.JSON(200, config)
}

func (h *ScoringHandler) UpdateConfig(c *drift.Context) {
	actor := middleware.Principal(c)
	if actor == nil {
		c.Unauthorized("not authenticated")
		return
	}

	var req dto.UpdateScoringConfigRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	config, err := h.scoringService.UpdateConfig(context.Background(), actor, req.PointsPerValidatedProposal, req.PointsPerProduct)
	if err != nil {
		respondError(c, err)
		return
	}
	_ = c.JSON(200, config)
}
