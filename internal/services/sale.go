package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/salesgame/salesgame-api/internal/access"
	"github.com/salesgame/salesgame-api/internal/apperr"
	"github.com/salesgame/salesgame-api/internal/database"
	"github.com/salesgame/salesgame-api/internal/models"
)

const saleColumns = `id, proposal_id, product_qty, total_value, notes, status, points_generated,
	validated_at, validated_by, rejection_reason, created_at, updated_at`

func scanSale(row pgx.Row) (*models.Sale, error) {
	var sale models.Sale
	err := row.Scan(
		&sale.ID, &sale.ProposalID, &sale.ProductQty, &sale.TotalValue, &sale.Notes,
		&sale.Status, &sale.PointsGenerated, &sale.ValidatedAt, &sale.ValidatedBy,
		&sale.RejectionReason, &sale.CreatedAt, &sale.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &sale, nil
}

// PendingSale is a sale awaiting manager review, joined with enough
// proposal context to decide on it.
type PendingSale struct {
	models.Sale
	TeamID     uuid.UUID `json:"team_id"`
	TeamName   string    `json:"team_name"`
	ClientName string    `json:"client_name"`
	TeamNumber int       `json:"team_number"`
}

// SaleService drives the sale validation state machine
// (pending -> validated | rejected).
type SaleService struct {
	db      *database.DB
	ranking *RankingService
}

func NewSaleService(db *database.DB, ranking *RankingService) *SaleService {
	return &SaleService{db: db, ranking: ranking}
}

// Validate accepts or rejects a pending sale. Accepting marks the proposal
// sale-validated and scores it; rejecting reverts the proposal to unsold so
// the team can correct and re-mark it.
func (s *SaleService) Validate(ctx context.Context, actor *models.User, saleID uuid.UUID, decision Decision, reason string) (*models.Sale, error) {
	tx, err := s.db.Pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	phase, err := phaseForShare(ctx, tx)
	if err != nil {
		return nil, err
	}
	if err := authorize(actor.Role, phase, access.ActionValidateSale); err != nil {
		return nil, err
	}

	row := tx.QueryRow(ctx, `SELECT `+saleColumns+` FROM sales WHERE id = $1 FOR UPDATE`, saleID)
	sale, err := scanSale(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.New(apperr.KindNotFound, "sale %s not found", saleID)
	}
	if err != nil {
		return nil, err
	}
	if sale.Status != models.SalePending {
		return nil, apperr.New(apperr.KindInvalidTransition, "sale is already %s", sale.Status)
	}

	propRow := tx.QueryRow(ctx, `SELECT `+proposalColumns+` FROM proposals WHERE id = $1 FOR UPDATE`, sale.ProposalID)
	p, err := scanProposal(propRow)
	if err != nil {
		return nil, fmt.Errorf("failed to load proposal for sale: %w", err)
	}
	if p.Status != models.ProposalSold {
		return nil, apperr.New(apperr.KindInvalidTransition, "proposal for this sale is %s, expected sold", p.Status)
	}

	cfg, err := configTx(ctx, tx)
	if err != nil {
		return nil, err
	}

	switch decision {
	case DecisionAccept:
		propRow := tx.QueryRow(ctx, `
			UPDATE proposals
			SET sale_validated = TRUE, sale_rejection_reason = NULL, updated_at = NOW()
			WHERE id = $1
			RETURNING `+proposalColumns+`
		`, p.ID)
		if p, err = scanProposal(propRow); err != nil {
			return nil, fmt.Errorf("failed to mark sale validated: %w", err)
		}
		if err := rescoreTx(ctx, tx, p, phase, cfg); err != nil {
			return nil, err
		}

		row := tx.QueryRow(ctx, `
			UPDATE sales
			SET status = 'validated', points_generated = $1, validated_at = NOW(),
				validated_by = $2, rejection_reason = NULL, updated_at = NOW()
			WHERE id = $3
			RETURNING `+saleColumns+`
		`, p.Points, actor.ID, sale.ID)
		if sale, err = scanSale(row); err != nil {
			return nil, fmt.Errorf("failed to validate sale: %w", err)
		}

	case DecisionReject:
		if reason == "" {
			reason = "sale rejected by manager"
		}
		row := tx.QueryRow(ctx, `
			UPDATE sales
			SET status = 'rejected', points_generated = 0, validated_at = NOW(),
				validated_by = $1, rejection_reason = $2, updated_at = NOW()
			WHERE id = $3
			RETURNING `+saleColumns+`
		`, actor.ID, reason, sale.ID)
		if sale, err = scanSale(row); err != nil {
			return nil, fmt.Errorf("failed to reject sale: %w", err)
		}

		propRow := tx.QueryRow(ctx, `
			UPDATE proposals
			SET status = 'unsold', sale_validated = FALSE, sale_rejection_reason = $1, updated_at = NOW()
			WHERE id = $2
			RETURNING `+proposalColumns+`
		`, reason, p.ID)
		if p, err = scanProposal(propRow); err != nil {
			return nil, fmt.Errorf("failed to revert proposal: %w", err)
		}
		if err := rescoreTx(ctx, tx, p, phase, cfg); err != nil {
			return nil, err
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
	return sale, nil
}

// ListPending returns sales awaiting manager review.
func (s *SaleService) ListPending(ctx context.Context, actor *models.User) ([]PendingSale, error) {
	phase, err := currentPhase(ctx, s.db)
	if err != nil {
		return nil, err
	}
	if err := authorize(actor.Role, phase, access.ActionValidateSale); err != nil {
		return nil, err
	}

	rows, err := s.db.Pool.Query(ctx, `
		SELECT s.id, s.proposal_id, s.product_qty, s.total_value, s.notes, s.status,
			s.points_generated, s.validated_at, s.validated_by, s.rejection_reason,
			s.created_at, s.updated_at,
			p.team_id, t.name, p.client_name, p.team_number
		FROM sales s
		JOIN proposals p ON p.id = s.proposal_id
		JOIN teams t ON t.id = p.team_id
		WHERE s.status = 'pending'
		ORDER BY s.created_at
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pending []PendingSale
	for rows.Next() {
		var ps PendingSale
		if err := rows.Scan(
			&ps.ID, &ps.ProposalID, &ps.ProductQty, &ps.TotalValue, &ps.Notes, &ps.Status,
			&ps.PointsGenerated, &ps.ValidatedAt, &ps.ValidatedBy, &ps.RejectionReason,
			&ps.CreatedAt, &ps.UpdatedAt,
			&ps.TeamID, &ps.TeamName, &ps.ClientName, &ps.TeamNumber,
		); err != nil {
			return nil, err
		}
		pending = append(pending, ps)
	}
	return pending, rows.Err()
}

// GetByProposal returns the sale attached to a proposal, if any.
func (s *SaleService) GetByProposal(ctx context.Context, proposalID uuid.UUID) (*models.Sale, error) {
	row := s.db.Pool.QueryRow(ctx, `SELECT `+saleColumns+` FROM sales WHERE proposal_id = $1`, proposalID)
	sale, err := scanSale(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.New(apperr.KindNotFound, "no sale for proposal %s", proposalID)
	}
	if err != nil {
		return nil, err
	}
	return sale, nil
}
