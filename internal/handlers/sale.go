package handlers

import (
	"context"

	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"
	"github.com/salesgame/salesgame-api/internal/middleware"
	"github.com/salesgame/salesgame-api/internal/services"
	"github.com/salesgame/salesgame-api/pkg/dto"
)

type SaleHandler struct {
	saleService SaleServiceInterface
}

func NewSaleHandler(saleService SaleServiceInterface) *SaleHandler {
	return &SaleHandler{saleService: saleService}
}

func (h *SaleHandler) ListPending(c *drift.Context) {
	actor := middleware.Principal(c)
	if actor == nil {
		c.Unauthorized("not authenticated")
		return
	}

	sales, err := h.saleService.ListPending(context.Background(), actor)
	if err != nil {
		respondError(c, err)
		return
	}
	_ = c.JSON(200, sales)
}

func (h *SaleHandler) Validate(c *drift.Context) {
	actor := middleware.Principal(c)
	if actor == nil {
		c.Unauthorized("not authenticated")
		return
	}

	saleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.BadRequest("invalid sale id")
		return
	}

	var req dto.DecisionRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}
	decision, ok := services.ParseDecision(req.Decision)
	if !ok {
		c.BadRequest("decision must be accept or reject")
		return
	}

	sale, err := h.saleService.Validate(context.Background(), actor, saleID, decision, req.Reason)
	if err != nil {
		respondError(c, err)
		return
	}
	_ = c.JSON(200, sale)
}
