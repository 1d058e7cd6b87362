package services

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/salesgame/salesgame-api/internal/access"
	"github.com/salesgame/salesgame-api/internal/apperr"
	"github.com/salesgame/salesgame-api/internal/database"
	"github.com/salesgame/salesgame-api/internal/models"
)

// PhaseService owns the single authoritative current-phase row. Lifecycle
// transactions read it FOR SHARE; Transition updates it FOR UPDATE, so a
// phase change waits for in-flight transitions and vice versa. A transition
// can therefore never observe two different phases.
type PhaseService struct {
	db *database.DB
}

func NewPhaseService(db *database.DB) *PhaseService {
	return &PhaseService{db: db}
}

func (s *PhaseService) Current(ctx context.Context) (models.Phase, error) {
	var phase string
	err := s.db.Pool.QueryRow(ctx, `SELECT phase FROM system_status WHERE id = 1`).Scan(&phase)
	if err != nil {
		return "", fmt.Errorf("failed to read current phase: %w", err)
	}
	return models.Phase(phase), nil
}

// Transition moves the competition to newPhase. Admin only; phase changes
// do not rescore proposals, each phase keeps its own ranking bucket.
func (s *PhaseService) Transition(ctx context.Context, actor *models.User, newPhase models.Phase) (models.Phase, error) {
	if !newPhase.Valid() {
		return "", apperr.New(apperr.KindValidationError, "unknown phase: %s", newPhase)
	}

	tx, err := s.db.Pool.Begin(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	current, err := phaseForUpdate(ctx, tx)
	if err != nil {
		return "", err
	}
	if err := authorize(actor.Role, current, access.ActionChangePhase); err != nil {
		return "", err
	}

	_, err = tx.Exec(ctx, `
		UPDATE system_status SET phase = $1, changed_by = $2, updated_at = NOW()
		WHERE id = 1
	`, newPhase, actor.ID)
	if err != nil {
		return "", fmt.Errorf("failed to change phase: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return "", fmt.Errorf("failed to commit transaction: %w", err)
	}
	return newPhase, nil
}

// phaseForShare reads the current phase inside a lifecycle transaction,
// blocking a concurrent phase change until the transaction finishes.
func phaseForShare(ctx context.Context, tx pgx.Tx) (models.Phase, error) {
	return lockedPhase(ctx, tx, `SELECT phase FROM system_status WHERE id = 1 FOR SHARE`)
}

func phaseForUpdate(ctx context.Context, tx pgx.Tx) (models.Phase, error) {
	return lockedPhase(ctx, tx, `SELECT phase FROM system_status WHERE id = 1 FOR UPDATE`)
}

func lockedPhase(ctx context.Context, tx pgx.Tx, query string) (models.Phase, error) {
	var phase string
	if err := tx.QueryRow(ctx, query).Scan(&phase); err != nil {
		return "", fmt.Errorf("failed to read current phase: %w", err)
	}
	return models.Phase(phase), nil
}
