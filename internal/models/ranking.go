package models

import (
	"time"

	"github.com/google/uuid"
)

// RankingEntry is one team's aggregated standing within one phase. Exactly
// one row per (team, phase); positions within a phase are 1-based and
// gap-free.
type RankingEntry struct {
	TeamID             uuid.UUID `json:"team_id"`
	TeamName           string    `json:"team_name"`
	Phase              Phase     `json:"phase"`
	Position           int       `json:"position"`
	Points             int       `json:"points"`
	ProposalsSubmitted int       `json:"proposals_submitted"`
	ProposalsValidated int       `json:"proposals_validated"`
	ProposalsSold      int       `json:"proposals_sold"`
	TotalSaleValue     float64   `json:"total_sale_value"`
	UpdatedAt          time.Time `json:"updated_at"`
}
