package handlers

import (
	"context"

	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"
	"github.com/salesgame/salesgame-api/internal/middleware"
	"github.com/salesgame/salesgame-api/internal/models"
	"github.com/salesgame/salesgame-api/pkg/dto"
)

type TeamHandler struct {
	teamService     TeamServiceInterface
	proposalService ProposalServiceInterface
}

func NewTeamHandler(teamService TeamServiceInterface, proposalService ProposalServiceInterface) *TeamHandler {
	return &TeamHandler{teamService: teamService, proposalService: proposalService}
}

func (h *TeamHandler) Create(c *drift.Context) {
	actor := middleware.Principal(c)
	if actor == nil {
		c.Unauthorized("not authenticated")
		return
	}

	var req dto.CreateTeamRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	team, err := h.teamService.Create(context.Background(), actor, req.Name, req.Code)
	if err != nil {
		respondError(c, err)
		return
	}

	_ = c.JSON(201, teamResponse(team))
}

func (h *TeamHandler) List(c *drift.Context) {
	actor := middleware.Principal(c)
	if actor == nil {
		c.Unauthorized("not authenticated")
		return
	}

	teams, err := h.teamService.List(context.Background(), actor)
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]dto.TeamResponse, len(teams))
	for i := range teams {
		response[i] = teamResponse(&teams[i])
	}
	_ = c.JSON(200, response)
}

func (h *TeamHandler) Get(c *drift.Context) {
	actor := middleware.Principal(c)
	if actor == nil {
		c.Unauthorized("not authenticated")
		return
	}

	teamID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.BadRequest("invalid team id")
		return
	}

	// Teams may only see themselves; staff visibility is checked by List.
	if actor.Role == models.RoleTeam && (actor.TeamID == nil || *actor.TeamID != teamID) {
		c.NotFound("team not found")
		return
	}

	team, err := h.teamService.GetByID(context.Background(), teamID)
	if err != nil {
		respondError(c, err)
		return
	}
	_ = c.JSON(200, teamResponse(team))
}

func (h *TeamHandler) Update(c *drift.Context) {
	actor := middleware.Principal(c)
	if actor == nil {
		c.Unauthorized("not authenticated")
		return
	}

	teamID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.BadRequest("invalid team id")
		return
	}

	var req dto.UpdateTeamRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	team, err := h.teamService.Update(context.Background(), actor, teamID, req.Name, active)
	if err != nil {
		respondError(c, err)
		return
	}
	_ = c.JSON(200, teamResponse(team))
}

// Dashboard returns a team's own view: team info plus its proposals with
// their current points.
func (h *TeamHandler) Dashboard(c *drift.Context) {
	actor := middleware.Principal(c)
	if actor == nil {
		c.Unauthorized("not authenticated")
		return
	}

	teamID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.BadRequest("invalid team id")
		return
	}

	team, err := h.teamService.GetByID(context.Background(), teamID)
	if err != nil {
		respondError(c, err)
		return
	}

	proposals, err := h.proposalService.ListByTeam(context.Background(), actor, teamID)
	if err != nil {
		respondError(c, err)
		return
	}

	totalPoints := 0
	for _, p := range proposals {
		if p.Status == models.ProposalValidated || p.Status == models.ProposalSold {
			totalPoints += p.Points
		}
	}

	_ = c.JSON(200, map[string]any{
		"team":         teamResponse(team),
		"proposals":    proposals,
		"total_points": totalPoints,
	})
}
