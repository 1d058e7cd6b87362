package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/salesgame/salesgame-api/internal/access"
	"github.com/salesgame/salesgame-api/internal/apperr"
	"github.com/salesgame/salesgame-api/internal/database"
	"github.com/salesgame/salesgame-api/internal/models"
)

// Decision is the outcome of a manager review.
type Decision string

const (
	DecisionAccept Decision = "accept"
	DecisionReject Decision = "reject"
)

func ParseDecision(s string) (Decision, bool) {
	switch Decision(s) {
	case DecisionAccept, DecisionReject:
		return Decision(s), true
	}
	return "", false
}

const proposalColumns = `id, team_id, team_number, client_name, seller_name, value, description,
	product_qty, status, submitted_at, validated_at, validated_by, rejection_reason,
	sale_value, sale_product_qty, sale_validated, sale_rejection_reason, sold_at,
	bonus_wines_world_line, bonus_wines_single_lot, bonus_sparkling_vintage,
	bonus_sparkling_premium, bonus_acceleration, points, bonus_points, created_at, updated_at`

func scanProposal(row pgx.Row) (*models.Proposal, error) {
	var p models.Proposal
	err := row.Scan(
		&p.ID, &p.TeamID, &p.TeamNumber, &p.ClientName, &p.SellerName, &p.Value, &p.Description,
		&p.ProductQty, &p.Status, &p.SubmittedAt, &p.ValidatedAt, &p.ValidatedBy, &p.RejectionReason,
		&p.SaleValue, &p.SaleProductQty, &p.SaleValidated, &p.SaleRejectionReason, &p.SoldAt,
		&p.Bonus.WinesWorldLine, &p.Bonus.WinesSingleLot, &p.Bonus.SparklingVintage,
		&p.Bonus.SparklingPremium, &p.Bonus.Acceleration, &p.Points, &p.BonusPoints,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func collectProposals(rows pgx.Rows) ([]models.Proposal, error) {
	defer rows.Close()
	var proposals []models.Proposal
	for rows.Next() {
		p, err := scanProposal(rows)
		if err != nil {
			return nil, err
		}
		proposals = append(proposals, *p)
	}
	return proposals, rows.Err()
}

type SubmitProposalInput struct {
	ClientName  string
	SellerName  string
	Description string
	Value       float64
	ProductQty  int
	Bonus       models.BonusFlags
}

type ResendProposalInput struct {
	Value       *float64
	Description *string
	ProductQty  *int
	Bonus       *models.BonusFlags
}

type MarkSaleInput struct {
	SaleValue *float64
	QtySold   *int
	Notes     string
	Bonus     *models.BonusFlags
}

// ProposalService drives the proposal state machine. Every transition is
// one transaction: phase read (FOR SHARE), state change, score write-back,
// and ranking recompute commit together or not at all.
type ProposalService struct {
	db      *database.DB
	ranking *RankingService
}

func NewProposalService(db *database.DB, ranking *RankingService) *ProposalService {
	return &ProposalService{db: db, ranking: ranking}
}

// submitRetries bounds the retry when two concurrent submissions race for
// the same team sequence number and the loser hits the unique constraint.
const submitRetries = 3

// Submit records a new proposal for the actor's team. The team-scoped
// sequence number is assigned inside the insert under the submission
// transaction; a sequence collision with a concurrent submission is
// retried a bounded number of times.
func (s *ProposalService) Submit(ctx context.Context, actor *models.User, input SubmitProposalInput) (*models.Proposal, error) {
	if actor.TeamID == nil {
		return nil, apperr.New(apperr.KindPermissionDenied, "user is not bound to a team")
	}
	if input.ClientName == "" || input.SellerName == "" {
		return nil, apperr.New(apperr.KindValidationError, "client and seller names are required")
	}
	if input.Value <= 0 {
		return nil, apperr.New(apperr.KindValidationError, "proposal value must be positive")
	}
	if input.ProductQty < 0 {
		return nil, apperr.New(apperr.KindValidationError, "product quantity must not be negative")
	}

	var lastErr error
	for attempt := 0; attempt < submitRetries; attempt++ {
		p, err := s.trySubmit(ctx, actor, input)
		if err == nil {
			return p, nil
		}
		if !isUniqueViolation(err) {
			return nil, err
		}
		lastErr = err
	}
	return nil, lastErr
}

func (s *ProposalService) trySubmit(ctx context.Context, actor *models.User, input SubmitProposalInput) (*models.Proposal, error) {
	tx, err := s.db.Pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	phase, err := phaseForShare(ctx, tx)
	if err != nil {
		return nil, err
	}
	if err := authorize(actor.Role, phase, access.ActionSubmitProposal); err != nil {
		return nil, err
	}

	row := tx.QueryRow(ctx, `
		INSERT INTO proposals (team_id, team_number, client_name, seller_name, value, description, product_qty,
			bonus_wines_world_line, bonus_wines_single_lot, bonus_sparkling_vintage,
			bonus_sparkling_premium, bonus_acceleration)
		VALUES ($1,
			(SELECT COALESCE(MAX(team_number), 0) + 1 FROM proposals WHERE team_id = $1),
			$2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING `+proposalColumns+`
	`, *actor.TeamID, input.ClientName, input.SellerName, input.Value, input.Description, input.ProductQty,
		input.Bonus.WinesWorldLine, input.Bonus.WinesSingleLot, input.Bonus.SparklingVintage,
		input.Bonus.SparklingPremium, input.Bonus.Acceleration)

	p, err := scanProposal(row)
	if err != nil {
		return nil, fmt.Errorf("failed to create proposal: %w", err)
	}

	if err := s.ranking.RecomputeTx(ctx, tx, phase); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return p, nil
}

// Validate accepts or rejects a submitted proposal. Accepting scores it;
// rejecting requires a reason and zeroes its points.
func (s *ProposalService) Validate(ctx context.Context, actor *models.User, proposalID uuid.UUID, decision Decision, reason string) (*models.Proposal, error) {
	if decision == DecisionReject && reason == "" {
		return nil, apperr.New(apperr.KindValidationError, "rejection reason is required")
	}

	tx, err := s.db.Pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	phase, err := phaseForShare(ctx, tx)
	if err != nil {
		return nil, err
	}
	if err := authorize(actor.Role, phase, access.ActionValidateProposal); err != nil {
		return nil, err
	}

	p, err := s.lockProposal(ctx, tx, proposalID)
	if err != nil {
		return nil, err
	}
	if p.Status != models.ProposalSubmitted {
		return nil, apperr.New(apperr.KindInvalidTransition, "proposal %d is %s, only submitted proposals can be validated", p.TeamNumber, p.Status)
	}

	switch decision {
	case DecisionAccept:
		row := tx.QueryRow(ctx, `
			UPDATE proposals
			SET status = 'validated', validated_at = NOW(), validated_by = $1,
				rejection_reason = NULL, updated_at = NOW()
			WHERE id = $2
			RETURNING `+proposalColumns+`
		`, actor.ID, p.ID)
		if p, err = scanProposal(row); err != nil {
			return nil, fmt.Errorf("failed to validate proposal: %w", err)
		}

		cfg, err := configTx(ctx, tx)
		if err != nil {
			return nil, err
		}
		if err := rescoreTx(ctx, tx, p, phase, cfg); err != nil {
			return nil, err
		}

	case DecisionReject:
		row := tx.QueryRow(ctx, `
			UPDATE proposals
			SET status = 'rejected', rejection_reason = $1, validated_at = NOW(),
				validated_by = $2, points = 0, bonus_points = 0, updated_at = NOW()
			WHERE id = $3
			RETURNING `+proposalColumns+`
		`, reason, actor.ID, p.ID)
		if p, err = scanProposal(row); err != nil {
			return nil, fmt.Errorf("failed to reject proposal: %w", err)
		}

	default:
		return nil, apperr.New(apperr.KindValidationError, "unknown decision: %s", decision)
	}

	if err := s.ranking.RecomputeTx(ctx, tx, phase); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return p, nil
}

// Resend lets the owning team correct and resubmit a rejected proposal.
// Rejection metadata and points are cleared; the proposal waits for a new
// validation.
func (s *ProposalService) Resend(ctx context.Context, actor *models.User, proposalID uuid.UUID, input ResendProposalInput) (*models.Proposal, error) {
	tx, err := s.db.Pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	phase, err := phaseForShare(ctx, tx)
	if err != nil {
		return nil, err
	}
	if err := authorize(actor.Role, phase, access.ActionAccessWhenClosed); err != nil {
		return nil, err
	}

	p, err := s.lockProposal(ctx, tx, proposalID)
	if err != nil {
		return nil, err
	}
	if err := requireOwningTeam(actor, p); err != nil {
		return nil, err
	}
	if p.Status != models.ProposalRejected {
		return nil, apperr.New(apperr.KindInvalidTransition, "only rejected proposals can be resent, proposal is %s", p.Status)
	}

	value := p.Value
	if input.Value != nil {
		value = *input.Value
	}
	description := p.Description
	if input.Description != nil {
		description = *input.Description
	}
	qty := p.ProductQty
	if input.ProductQty != nil {
		qty = *input.ProductQty
	}
	bonus := p.Bonus
	if input.Bonus != nil {
		bonus = *input.Bonus
	}
	if value <= 0 {
		return nil, apperr.New(apperr.KindValidationError, "proposal value must be positive")
	}
	if qty < 0 {
		return nil, apperr.New(apperr.KindValidationError, "product quantity must not be negative")
	}

	row := tx.QueryRow(ctx, `
		UPDATE proposals
		SET value = $1, description = $2, product_qty = $3,
			bonus_wines_world_line = $4, bonus_wines_single_lot = $5,
			bonus_sparkling_vintage = $6, bonus_sparkling_premium = $7, bonus_acceleration = $8,
			status = 'submitted', validated_at = NULL, validated_by = NULL,
			rejection_reason = NULL, points = 0, bonus_points = 0, updated_at = NOW()
		WHERE id = $9
		RETURNING `+proposalColumns+`
	`, value, description, qty,
		bonus.WinesWorldLine, bonus.WinesSingleLot, bonus.SparklingVintage,
		bonus.SparklingPremium, bonus.Acceleration, p.ID)
	if p, err = scanProposal(row); err != nil {
		return nil, fmt.Errorf("failed to resend proposal: %w", err)
	}

	if err := s.ranking.RecomputeTx(ctx, tx, phase); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return p, nil
}

// MarkSold records a sale for a validated (or previously unsold) proposal.
// The sale starts pending; the proposal scores nothing from it until a
// manager validates the sale.
func (s *ProposalService) MarkSold(ctx context.Context, actor *models.User, proposalID uuid.UUID, input MarkSaleInput) (*models.Proposal, *models.Sale, error) {
	tx, err := s.db.Pool.Begin(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	phase, err := phaseForShare(ctx, tx)
	if err != nil {
		return nil, nil, err
	}
	if err := authorize(actor.Role, phase, access.ActionMarkSale); err != nil {
		return nil, nil, err
	}

	p, err := s.lockProposal(ctx, tx, proposalID)
	if err != nil {
		return nil, nil, err
	}
	if err := requireOwningTeam(actor, p); err != nil {
		return nil, nil, err
	}
	if p.Status != models.ProposalValidated && p.Status != models.ProposalUnsold {
		return nil, nil, apperr.New(apperr.KindInvalidTransition, "only validated or unsold proposals can be marked sold, proposal is %s", p.Status)
	}

	saleValue := p.Value
	if input.SaleValue != nil {
		saleValue = *input.SaleValue
	}
	qtySold := p.ProductQty
	if input.QtySold != nil {
		qtySold = *input.QtySold
	}
	if saleValue <= 0 {
		return nil, nil, apperr.New(apperr.KindValidationError, "sale value must be positive")
	}
	if qtySold < 0 {
		return nil, nil, apperr.New(apperr.KindValidationError, "quantity sold must not be negative")
	}
	bonus := p.Bonus
	if input.Bonus != nil {
		bonus = *input.Bonus
	}

	row := tx.QueryRow(ctx, `
		UPDATE proposals
		SET status = 'sold', sale_value = $1, sale_product_qty = $2,
			sale_validated = FALSE, sale_rejection_reason = NULL, sold_at = NOW(),
			bonus_wines_world_line = $3, bonus_wines_single_lot = $4,
			bonus_sparkling_vintage = $5, bonus_sparkling_premium = $6, bonus_acceleration = $7,
			updated_at = NOW()
		WHERE id = $8
		RETURNING `+proposalColumns+`
	`, saleValue, qtySold,
		bonus.WinesWorldLine, bonus.WinesSingleLot, bonus.SparklingVintage,
		bonus.SparklingPremium, bonus.Acceleration, p.ID)
	if p, err = scanProposal(row); err != nil {
		return nil, nil, fmt.Errorf("failed to mark proposal sold: %w", err)
	}

	// Re-marking after a rejected sale reuses the existing sale row.
	saleRow := tx.QueryRow(ctx, `
		INSERT INTO sales (proposal_id, product_qty, total_value, notes)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (proposal_id) DO UPDATE SET
			product_qty = EXCLUDED.product_qty,
			total_value = EXCLUDED.total_value,
			notes = EXCLUDED.notes,
			status = 'pending', points_generated = 0,
			validated_at = NULL, validated_by = NULL, rejection_reason = NULL,
			updated_at = NOW()
		RETURNING `+saleColumns+`
	`, p.ID, qtySold, saleValue, input.Notes)
	sale, err := scanSale(saleRow)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to record sale: %w", err)
	}

	cfg, err := configTx(ctx, tx)
	if err != nil {
		return nil, nil, err
	}
	if err := rescoreTx(ctx, tx, p, phase, cfg); err != nil {
		return nil, nil, err
	}
	if err := s.ranking.RecomputeTx(ctx, tx, phase); err != nil {
		return nil, nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return p, sale, nil
}

// Delete removes a rejected proposal. Only the owning team may delete, and
// only from the rejected state.
func (s *ProposalService) Delete(ctx context.Context, actor *models.User, proposalID uuid.UUID) error {
	tx, err := s.db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	phase, err := phaseForShare(ctx, tx)
	if err != nil {
		return err
	}
	if err := authorize(actor.Role, phase, access.ActionAccessWhenClosed); err != nil {
		return err
	}

	p, err := s.lockProposal(ctx, tx, proposalID)
	if err != nil {
		return err
	}
	if err := requireOwningTeam(actor, p); err != nil {
		return err
	}
	if p.Status != models.ProposalRejected {
		return apperr.New(apperr.KindInvalidTransition, "only rejected proposals can be deleted, proposal is %s", p.Status)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM proposals WHERE id = $1`, p.ID); err != nil {
		return fmt.Errorf("failed to delete proposal: %w", err)
	}

	if err := s.ranking.RecomputeTx(ctx, tx, phase); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (s *ProposalService) GetByID(ctx context.Context, actor *models.User, proposalID uuid.UUID) (*models.Proposal, error) {
	row := s.db.Pool.QueryRow(ctx, `SELECT `+proposalColumns+` FROM proposals WHERE id = $1`, proposalID)
	p, err := scanProposal(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.New(apperr.KindNotFound, "proposal %s not found", proposalID)
	}
	if err != nil {
		return nil, err
	}
	if actor.Role == models.RoleTeam {
		if actor.TeamID == nil || *actor.TeamID != p.TeamID {
			return nil, apperr.New(apperr.KindNotFound, "proposal %s not found", proposalID)
		}
	}
	return p, nil
}

func (s *ProposalService) ListAll(ctx context.Context, actor *models.User, status string) ([]models.Proposal, error) {
	phase, err := currentPhase(ctx, s.db)
	if err != nil {
		return nil, err
	}
	if err := authorize(actor.Role, phase, access.ActionViewAllProposals); err != nil {
		return nil, err
	}

	if status != "" {
		rows, err := s.db.Pool.Query(ctx, `
			SELECT `+proposalColumns+` FROM proposals WHERE status = $1 ORDER BY submitted_at DESC
		`, status)
		if err != nil {
			return nil, err
		}
		return collectProposals(rows)
	}

	rows, err := s.db.Pool.Query(ctx, `
		SELECT `+proposalColumns+` FROM proposals ORDER BY submitted_at DESC
	`)
	if err != nil {
		return nil, err
	}
	return collectProposals(rows)
}

func (s *ProposalService) ListByTeam(ctx context.Context, actor *models.User, teamID uuid.UUID) ([]models.Proposal, error) {
	if actor.Role == models.RoleTeam {
		if actor.TeamID == nil || *actor.TeamID != teamID {
			return nil, apperr.New(apperr.KindPermissionDenied, "teams may only list their own proposals")
		}
	} else {
		phase, err := currentPhase(ctx, s.db)
		if err != nil {
			return nil, err
		}
		if err := authorize(actor.Role, phase, access.ActionViewAllProposals); err != nil {
			return nil, err
		}
	}

	rows, err := s.db.Pool.Query(ctx, `
		SELECT `+proposalColumns+` FROM proposals WHERE team_id = $1 ORDER BY team_number
	`, teamID)
	if err != nil {
		return nil, err
	}
	return collectProposals(rows)
}

func (s *ProposalService) lockProposal(ctx context.Context, tx pgx.Tx, proposalID uuid.UUID) (*models.Proposal, error) {
	row := tx.QueryRow(ctx, `SELECT `+proposalColumns+` FROM proposals WHERE id = $1 FOR UPDATE`, proposalID)
	p, err := scanProposal(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.New(apperr.KindNotFound, "proposal %s not found", proposalID)
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func requireOwningTeam(actor *models.User, p *models.Proposal) error {
	if actor.Role != models.RoleTeam || actor.TeamID == nil || *actor.TeamID != p.TeamID {
		return apperr.New(apperr.KindPermissionDenied, "only the owning team may modify this proposal")
	}
	return nil
}

func currentPhase(ctx context.Context, db *database.DB) (models.Phase, error) {
	var phase string
	if err := db.Pool.QueryRow(ctx, `SELECT phase FROM system_status WHERE id = 1`).Scan(&phase); err != nil {
		return "", fmt.Errorf("failed to read current phase: %w", err)
	}
	return models.Phase(phase), nil
}
