package services

import (
	"context"
	"fmt"

	"github.com/salesgame/salesgame-api/internal/access"
	"github.com/salesgame/salesgame-api/internal/database"
	"github.com/salesgame/salesgame-api/internal/models"
)

// GeneralDashboard is the staff overview: totals across the whole
// competition plus the head of the current phase's ranking.
type GeneralDashboard struct {
	Phase              models.Phase          `json:"phase"`
	Teams              int                   `json:"teams"`
	ProposalsSubmitted int                   `json:"proposals_submitted"`
	ProposalsValidated int                   `json:"proposals_validated"`
	ProposalsRejected  int                   `json:"proposals_rejected"`
	ProposalsSold      int                   `json:"proposals_sold"`
	ProposalsUnsold    int                   `json:"proposals_unsold"`
	ValidatedSaleValue float64               `json:"validated_sale_value"`
	TopTeams           []models.RankingEntry `json:"top_teams"`
}

type DashboardService struct {
	db      *database.DB
	ranking *RankingService
}

func NewDashboardService(db *database.DB, ranking *RankingService) *DashboardService {
	return &DashboardService{db: db, ranking: ranking}
}

func (s *DashboardService) General(ctx context.Context, actor *models.User) (*GeneralDashboard, error) {
	phase, err := currentPhase(ctx, s.db)
	if err != nil {
		return nil, err
	}
	if err := authorize(actor.Role, phase, access.ActionViewGeneralDash); err != nil {
		return nil, err
	}

	dash := GeneralDashboard{Phase: phase}
	err = s.db.Pool.QueryRow(ctx, `
		SELECT
			(SELECT COUNT(*) FROM teams),
			COUNT(*),
			COUNT(*) FILTER (WHERE status = 'validated'),
			COUNT(*) FILTER (WHERE status = 'rejected'),
			COUNT(*) FILTER (WHERE status = 'sold'),
			COUNT(*) FILTER (WHERE status = 'unsold'),
			COALESCE(SUM(sale_value) FILTER (WHERE status = 'sold' AND sale_validated), 0)
		FROM proposals
	`).Scan(
		&dash.Teams, &dash.ProposalsSubmitted, &dash.ProposalsValidated,
		&dash.ProposalsRejected, &dash.ProposalsSold, &dash.ProposalsUnsold,
		&dash.ValidatedSaleValue,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate dashboard: %w", err)
	}

	entries, err := s.ranking.Get(ctx, phase)
	if err != nil {
		return nil, err
	}
	if len(entries) > 5 {
		entries = entries[:5]
	}
	dash.TopTeams = entries

	return &dash, nil
}
