package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/salesgame/salesgame-api/internal/access"
	"github.com/salesgame/salesgame-api/internal/apperr"
	"github.com/salesgame/salesgame-api/internal/database"
	"github.com/salesgame/salesgame-api/internal/models"
)

// Score computes a proposal's (points, bonus_points) from its current
// state, the active phase, and the scoring configuration. It is pure and
// idempotent; the result is written back to the proposal row as the single
// source of truth.
//
// Phase rules:
//   - live_event: a validated proposal scores base + product_qty * per-product
//     + bonus; a sold proposal keeps whatever it scored at validation time;
//     anything else scores 0.
//   - post_event: only sold proposals with a validated sale score, using the
//     quantity actually sold; anything else scores 0.
//   - pre_event and closed never originate new scoring: eligible proposals
//     keep their previously computed value, the rest score 0.
func Score(p *models.Proposal, phase models.Phase, cfg *models.ScoringConfig) (points, bonusPoints int) {
	switch phase {
	case models.PhaseLiveEvent:
		switch p.Status {
		case models.ProposalValidated:
			bonus := bonusTotal(p.Bonus)
			return cfg.PointsPerValidatedProposal + p.ProductQty*cfg.PointsPerProduct + bonus, bonus
		case models.ProposalSold:
			return p.Points, p.BonusPoints
		}
		return 0, 0

	case models.PhasePostEvent:
		if p.Status == models.ProposalSold && p.SaleValidated {
			bonus := bonusTotal(p.Bonus)
			return cfg.PointsPerValidatedProposal + p.SaleProductQty*cfg.PointsPerProduct + bonus, bonus
		}
		return 0, 0

	default:
		if p.ScoringEligible() {
			return p.Points, p.BonusPoints
		}
		return 0, 0
	}
}

func bonusTotal(b models.BonusFlags) int {
	total := 0
	if b.WinesWorldLine {
		total += models.BonusLineValue
	}
	if b.WinesSingleLot {
		total += models.BonusLineValue
	}
	if b.SparklingVintage {
		total += models.BonusLineValue
	}
	if b.SparklingPremium {
		total += models.BonusLineValue
	}
	if b.Acceleration {
		total += models.BonusAccelerationValue
	}
	return total
}

// rescoreTx recomputes a proposal's points and writes them back inside the
// caller's transaction. Every lifecycle transition funnels through here.
func rescoreTx(ctx context.Context, tx pgx.Tx, p *models.Proposal, phase models.Phase, cfg *models.ScoringConfig) error {
	points, bonus := Score(p, phase, cfg)
	p.Points = points
	p.BonusPoints = bonus

	_, err := tx.Exec(ctx, `
		UPDATE proposals SET points = $1, bonus_points = $2, updated_at = NOW()
		WHERE id = $3
	`, points, bonus, p.ID)
	if err != nil {
		return fmt.Errorf("failed to write back points: %w", err)
	}
	return nil
}

func configTx(ctx context.Context, tx pgx.Tx) (*models.ScoringConfig, error) {
	var cfg models.ScoringConfig
	err := tx.QueryRow(ctx, `
		SELECT points_per_validated_proposal, points_per_product, version, updated_at, updated_by
		FROM scoring_config WHERE id = 1
	`).Scan(&cfg.PointsPerValidatedProposal, &cfg.PointsPerProduct, &cfg.Version, &cfg.UpdatedAt, &cfg.UpdatedBy)
	if err != nil {
		return nil, fmt.Errorf("failed to read scoring config: %w", err)
	}
	return &cfg, nil
}

// configUpdateRetries bounds the internal retry on optimistic-version
// collisions before ConfigConflict is surfaced to the caller.
const configUpdateRetries = 3

type ScoringService struct {
	db      *database.DB
	ranking *RankingService
}

func NewScoringService(db *database.DB, ranking *RankingService) *ScoringService {
	return &ScoringService{db: db, ranking: ranking}
}

func (s *ScoringService) GetConfig(ctx context.Context, actor *models.User) (*models.ScoringConfig, error) {
	var phase string
	if err := s.db.Pool.QueryRow(ctx, `SELECT phase FROM system_status WHERE id = 1`).Scan(&phase); err != nil {
		return nil, fmt.Errorf("failed to read current phase: %w", err)
	}
	if err := authorize(actor.Role, models.Phase(phase), access.ActionManageScoringRules); err != nil {
		return nil, err
	}

	var cfg models.ScoringConfig
	err := s.db.Pool.QueryRow(ctx, `
		SELECT points_per_validated_proposal, points_per_product, version, updated_at, updated_by
		FROM scoring_config WHERE id = 1
	`).Scan(&cfg.PointsPerValidatedProposal, &cfg.PointsPerProduct, &cfg.Version, &cfg.UpdatedAt, &cfg.UpdatedBy)
	if err != nil {
		return nil, fmt.Errorf("failed to read scoring config: %w", err)
	}
	return &cfg, nil
}

// UpdateConfig changes the point values and resweeps every proposal in a
// scoring-eligible status before returning, all in one transaction. The
// version check retries a bounded number of times on collision.
func (s *ScoringService) UpdateConfig(ctx context.Context, actor *models.User, perValidated, perProduct int) (*models.ScoringConfig, error) {
	if perValidated < 0 || perProduct < 0 {
		return nil, apperr.New(apperr.KindValidationError, "point values must not be negative")
	}

	var lastErr error
	for attempt := 0; attempt < configUpdateRetries; attempt++ {
		cfg, err := s.tryUpdateConfig(ctx, actor, perValidated, perProduct)
		if err == nil {
			return cfg, nil
		}
		if !apperr.IsKind(err, apperr.KindConfigConflict) {
			return nil, err
		}
		lastErr = err
	}
	return nil, lastErr
}

func (s *ScoringService) tryUpdateConfig(ctx context.Context, actor *models.User, perValidated, perProduct int) (*models.ScoringConfig, error) {
	tx, err := s.db.Pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	phase, err := phaseForShare(ctx, tx)
	if err != nil {
		return nil, err
	}
	if !access.Evaluate(actor.Role, phase, access.ActionManageScoringConfig) &&
		!access.Evaluate(actor.Role, phase, access.ActionManageScoringRules) {
		return nil, apperr.New(apperr.KindPermissionDenied, "role %s may not manage scoring config", actor.Role)
	}

	current, err := configTx(ctx, tx)
	if err != nil {
		return nil, err
	}

	var cfg models.ScoringConfig
	err = tx.QueryRow(ctx, `
		UPDATE scoring_config
		SET points_per_validated_proposal = $1, points_per_product = $2,
		    version = version + 1, updated_by = $3, updated_at = NOW()
		WHERE id = 1 AND version = $4
		RETURNING points_per_validated_proposal, points_per_product, version, updated_at, updated_by
	`, perValidated, perProduct, actor.ID, current.Version).Scan(
		&cfg.PointsPerValidatedProposal, &cfg.PointsPerProduct, &cfg.Version, &cfg.UpdatedAt, &cfg.UpdatedBy,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.New(apperr.KindConfigConflict, "scoring config changed concurrently (version %d)", current.Version)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update scoring config: %w", err)
	}

	if err := s.resweepTx(ctx, tx, phase, &cfg); err != nil {
		return nil, err
	}
	if err := s.ranking.RecomputeTx(ctx, tx, phase); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return &cfg, nil
}

// resweepTx re-prices every proposal currently in a scoring-eligible
// status under the new configuration.
func (s *ScoringService) resweepTx(ctx context.Context, tx pgx.Tx, phase models.Phase, cfg *models.ScoringConfig) error {
	rows, err := tx.Query(ctx, `
		SELECT `+proposalColumns+` FROM proposals
		WHERE status = 'validated' OR (status = 'sold' AND sale_validated)
		FOR UPDATE
	`)
	if err != nil {
		return fmt.Errorf("failed to load proposals for resweep: %w", err)
	}

	proposals, err := collectProposals(rows)
	if err != nil {
		return err
	}

	for i := range proposals {
		if err := rescoreTx(ctx, tx, &proposals[i], phase, cfg); err != nil {
			return err
		}
	}
	return nil
}
