package handlers

import (
	"context"

	"github.com/m1z23r/drift/pkg/drift"
	"github.com/salesgame/salesgame-api/internal/middleware"
	"github.com/salesgame/salesgame-api/internal/models"
)

type RankingHandler struct {
	rankingService RankingServiceInterface
	phaseService   PhaseServiceInterface
}

func NewRankingHandler(rankingService RankingServiceInterface, phaseService PhaseServiceInterface) *RankingHandler {
	return &RankingHandler{rankingService: rankingService, phaseService: phaseService}
}

// Get returns the persisted ranking for the requested phase, defaulting to
// the current phase when none is given.
func (h *RankingHandler) Get(c *drift.Context) {
	actor := middleware.Principal(c)
	if actor == nil {
		c.Unauthorized("not authenticated")
		return
	}

	var phase models.Phase
	if raw := c.QueryParam("phase"); raw != "" {
		parsed, err := models.ParsePhase(raw)
		if err != nil {
			c.BadRequest(err.Error())
			return
		}
		phase = parsed
	} else {
		current, err := h.phaseService.Current(context.Background())
		if err != nil {
			respondError(c, err)
			return
		}
		phase = current
	}

	entries, err := h.rankingService.Get(context.Background(), phase)
	if err != nil {
		respondError(c, err)
		return
	}
	_ = c.JSON(200, entries)
}
