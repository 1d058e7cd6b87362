package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/jackc/pgx/v5"
	"github.com/salesgame/salesgame-api/internal/database"
	"github.com/salesgame/salesgame-api/internal/models"
)

// RankingService aggregates proposals per team into one RankingEntry per
// (team, phase). Recompute always runs inside the lifecycle transaction
// that changed the underlying points, so readers never see a half-applied
// state.
type RankingService struct {
	db *database.DB
}

func NewRankingService(db *database.DB) *RankingService {
	return &RankingService{db: db}
}

// RecomputeTx aggregates every team for the given phase and upserts its
// ranking row. Teams with no eligible proposals still get an entry at the
// bottom with 0 points, so positions are always total and gap-free.
func (s *RankingService) RecomputeTx(ctx context.Context, tx pgx.Tx, phase models.Phase) error {
	// Serialize concurrent recomputes. Two lifecycle transactions hold only
	// their own proposal row lock, so without this each would aggregate from
	// a snapshot missing the other's delta and the later upsert would win.
	// Ordered so every transaction acquires team locks in the same sequence.
	if _, err := tx.Exec(ctx, `SELECT id FROM teams ORDER BY id FOR UPDATE`); err != nil {
		return fmt.Errorf("failed to lock teams for ranking: %w", err)
	}

	rows, err := tx.Query(ctx, `
		SELECT t.id, t.name,
			COALESCE(SUM(p.points) FILTER (WHERE p.status IN ('validated', 'sold')), 0),
			COUNT(p.id),
			COUNT(p.id) FILTER (WHERE p.status = 'validated'),
			COUNT(p.id) FILTER (WHERE p.status = 'sold' AND p.sale_validated),
			COALESCE(SUM(p.sale_value) FILTER (WHERE p.status = 'sold' AND p.sale_validated), 0)
		FROM teams t
		LEFT JOIN proposals p ON p.team_id = t.id
		GROUP BY t.id, t.name
	`)
	if err != nil {
		return fmt.Errorf("failed to aggregate ranking: %w", err)
	}

	var entries []models.RankingEntry
	for rows.Next() {
		var e models.RankingEntry
		if err := rows.Scan(
			&e.TeamID, &e.TeamName, &e.Points,
			&e.ProposalsSubmitted, &e.ProposalsValidated, &e.ProposalsSold,
			&e.TotalSaleValue,
		); err != nil {
			rows.Close()
			return err
		}
		e.Phase = phase
		entries = append(entries, e)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	rankEntries(entries)

	for _, e := range entries {
		_, err := tx.Exec(ctx, `
			INSERT INTO rankings (team_id, phase, position, points,
				proposals_submitted, proposals_validated, proposals_sold, total_sale_value)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			ON CONFLICT (team_id, phase) DO UPDATE SET
				position = EXCLUDED.position,
				points = EXCLUDED.points,
				proposals_submitted = EXCLUDED.proposals_submitted,
				proposals_validated = EXCLUDED.proposals_validated,
				proposals_sold = EXCLUDED.proposals_sold,
				total_sale_value = EXCLUDED.total_sale_value,
				updated_at = NOW()
		`, e.TeamID, e.Phase, e.Position, e.Points,
			e.ProposalsSubmitted, e.ProposalsValidated, e.ProposalsSold, e.TotalSaleValue)
		if err != nil {
			return fmt.Errorf("failed to upsert ranking entry: %w", err)
		}
	}
	return nil
}

// rankEntries orders entries by (points desc, total sale value desc) with
// team id as the final deterministic tie-break, then assigns 1-based
// positions with no gaps.
func rankEntries(entries []models.RankingEntry) {
	sort.Slice(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.Points != b.Points {
			return a.Points > b.Points
		}
		if a.TotalSaleValue != b.TotalSaleValue {
			return a.TotalSaleValue > b.TotalSaleValue
		}
		return a.TeamID.String() < b.TeamID.String()
	})
	for i := range entries {
		entries[i].Position = i + 1
	}
}

// Get returns the persisted ranking for a phase, ordered by position. It
// never recomputes; reads only consult persisted state.
func (s *RankingService) Get(ctx context.Context, phase models.Phase) ([]models.RankingEntry, error) {
	rows, err := s.db.Pool.Query(ctx, `
		SELECT r.team_id, t.name, r.phase, r.position, r.points,
			r.proposals_submitted, r.proposals_validated, r.proposals_sold,
			r.total_sale_value, r.updated_at
		FROM rankings r
		JOIN teams t ON t.id = r.team_id
		WHERE r.phase = $1
		ORDER BY r.position
	`, phase)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []models.RankingEntry
	for rows.Next() {
		var e models.RankingEntry
		if err := rows.Scan(
			&e.TeamID, &e.TeamName, &e.Phase, &e.Position, &e.Points,
			&e.ProposalsSubmitted, &e.ProposalsValidated, &e.ProposalsSold,
			&e.TotalSaleValue, &e.UpdatedAt,
		); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
