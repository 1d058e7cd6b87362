package handlers

import (
	"context"

	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"
	"github.com/salesgame/salesgame-api/internal/middleware"
	"github.com/salesgame/salesgame-api/internal/services"
	"github.com/salesgame/salesgame-api/pkg/dto"
)

type ProposalHandler struct {
	proposalService ProposalServiceInterface
}

func NewProposalHandler(proposalService ProposalServiceInterface) *ProposalHandler {
	return &ProposalHandler{proposalService: proposalService}
}

func (h *ProposalHandler) Submit(c *drift.Context) {
	actor := middleware.Principal(c)
	if actor == nil {
		c.Unauthorized("not authenticated")
		return
	}

	var req dto.SubmitProposalRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	proposal, err := h.proposalService.Submit(context.Background(), actor, services.SubmitProposalInput{
		ClientName:  req.ClientName,
		SellerName:  req.SellerName,
		Description: req.Description,
		Value:       req.Value,
		ProductQty:  req.ProductQty,
		Bonus:       bonusFromPayload(req.Bonus),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	_ = c.JSON(201, proposal)
}

func (h *ProposalHandler) ListAll(c *drift.Context) {
	actor := middleware.Principal(c)
	if actor == nil {
		c.Unauthorized("not authenticated")
		return
	}

	proposals, err := h.proposalService.ListAll(context.Background(), actor, c.QueryParam("status"))
	if err != nil {
		respondError(c, err)
		return
	}
	_ = c.JSON(200, proposals)
}

func (h *ProposalHandler) ListMine(c *drift.Context) {
	actor := middleware.Principal(c)
	if actor == nil {
		c.Unauthorized("not authenticated")
		return
	}
	if actor.TeamID == nil {
		c.BadRequest("user has no team")
		return
	}

	proposals, err := h.proposalService.ListByTeam(context.Background(), actor, *actor.TeamID)
	if err != nil {
		respondError(c, err)
		return
	}
	_ = c.JSON(200, proposals)
}

func (h *ProposalHandler) Get(c *drift.Context) {
	actor := middleware.Principal(c)
	if actor == nil {
		c.Unauthorized("not authenticated")
		return
	}

	proposalID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.BadRequest("invalid proposal id")
		return
	}

	proposal, err := h.proposalService.GetByID(context.Background(), actor, proposalID)
	if err != nil {
		respondError(c, err)
		return
	}
	_ = c.JSON(200, proposal)
}

func (h *ProposalHandler) Validate(c *drift.Context) {
	actor := middleware.Principal(c)
	if actor == nil {
		c.Unauthorized("not authenticated")
		return
	}

	proposalID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.BadRequest("invalid proposal id")
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

	proposal, err := h.proposalService.Validate(context.Background(), actor, proposalID, decision, req.Reason)
	if err != nil {
		respondError(c, err)
		return
	}
	_ = c.JSON(200, proposal)
}

func (h *ProposalHandler) Resend(c *drift.Context) {
	actor := middleware.Principal(c)
	if actor == nil {
		c.Unauthorized("not authenticated")
		return
	}

	proposalID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.BadRequest("invalid proposal id")
		return
	}

	var req dto.ResendProposalRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	input := services.ResendProposalInput{
		Value:       req.Value,
		Description: req.Description,
		ProductQty:  req.ProductQty,
	}
	if req.Bonus != nil {
		bonus := bonusFromPayload(*req.Bonus)
		input.Bonus = &bonus
	}

	proposal, err := h.proposalService.Resend(context.Background(), actor, proposalID, input)
	if err != nil {
		respondError(c, err)
		return
	}
	_ = c.JSON(200, proposal)
}

func (h *ProposalHandler) MarkSale(c *drift.Context) {
	actor := middleware.Principal(c)
	if actor == nil {
		c.Unauthorized("not authenticated")
		return
	}

	proposalID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.BadRequest("invalid proposal id")
		return
	}

	var req dto.MarkSaleRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	input := services.MarkSaleInput{
		SaleValue: req.SaleValue,
		QtySold:   req.QtySold,
		Notes:     req.Notes,
	}
	if req.Bonus != nil {
		bonus := bonusFromPayload(*req.Bonus)
		input.Bonus = &bonus
	}

	proposal, sale, err := h.proposalService.MarkSold(context.Background(), actor, proposalID, input)
	if err != nil {
		respondError(c, err)
		return
	}
	_ = c.JSON(200, map[string]any{"proposal": proposal, "sale": sale})
}

func (h *ProposalHandler) Delete(c *drift.Context) {
	actor := middleware.Principal(c)
	if actor == nil {
		c.Unauthorized("not authenticated")
		return
	}

	proposalID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.BadRequest("invalid proposal id")
		return
	}

	if err := h.proposalService.Delete(context.Background(), actor, proposalID); err != nil {
		respondError(c, err)
		return
	}
	_ = c.JSON(200, map[string]string{"message": "proposal deleted"})
}
