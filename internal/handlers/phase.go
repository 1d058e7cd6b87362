package handlers

import (
	"context"

	"github.com/m1z23r/drift/pkg/drift"
	"github.com/salesgame/salesgame-api/internal/middleware"
	"github.com/salesgame/salesgame-api/internal/models"
	"github.com/salesgame/salesgame-api/pkg/dto"
)

type PhaseHandler struct {
	phaseService PhaseServiceInterface
}

func NewPhaseHandler(phaseService PhaseServiceInterface) *PhaseHandler {
	return &PhaseHandler{phaseService: phaseService}
}

func (h *PhaseHandler) Current(c *drift.Context) {
	phase, err := h.phaseService.Current(context.Background())
	if err != nil {
		respondError(c, err)
		return
	}
	_ = c.JSON(200, dto.PhaseResponse{Phase: string(phase)})
}

func (h *PhaseHandler) Change(c *drift.Context) {
	actor := middleware.Principal(c)
	if actor == nil {
		c.Unauthorized("not authenticated")
		return
	}

	var req dto.ChangePhaseRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	phase, err := models.ParsePhase(req.Phase)
	if err != nil {
		c.BadRequest(err.Error())
		return
	}

	current, err := h.phaseService.Transition(context.Background(), actor, phase)
	if err != nil {
		respondError(c, err)
		return
	}
	_ = c.JSON(200, dto.PhaseResponse{Phase: string(current)})
}
