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

type TeamService struct {
	db     *database.DB
	phases *PhaseService
}

func NewTeamService(db *database.DB, phases *PhaseService) *TeamService {
	return &TeamService{db: db, phases: phases}
}

func (s *TeamService) Create(ctx context.Context, actor *models.User, name, code string) (*models.Team, error) {
	phase, err := s.phases.Current(ctx)
	if err != nil {
		return nil, err
	}
	if err := authorize(actor.Role, phase, access.ActionCreateTeam); err != nil {
		return nil, err
	}
	if name == "" || code == "" {
		return nil, apperr.New(apperr.KindValidationError, "team name and code are required")
	}

	var team models.Team
	err = s.db.Pool.QueryRow(ctx, `
		INSERT INTO teams (name, code)
		VALUES ($1, $2)
		RETURNING id, name, code, active, created_at, updated_at
	`, name, code).Scan(&team.ID, &team.Name, &team.Code, &team.Active, &team.CreatedAt, &team.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create team: %w", err)
	}
	return &team, nil
}

func (s *TeamService) GetByID(ctx context.Context, teamID uuid.UUID) (*models.Team, error) {
	var team models.Team
	err := s.db.Pool.QueryRow(ctx, `
		SELECT id, name, code, active, created_at, updated_at
		FROM teams WHERE id = $1
	`, teamID).Scan(&team.ID, &team.Name, &team.Code, &team.Active, &team.CreatedAt, &team.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.New(apperr.KindNotFound, "team %s not found", teamID)
	}
	if err != nil {
		return nil, err
	}
	return &team, nil
}

func (s *TeamService) List(ctx context.Context, actor *models.User) ([]models.Team, error) {
	phase, err := s.phases.Current(ctx)
	if err != nil {
		return nil, err
	}
	if err := authorize(actor.Role, phase, access.ActionViewAllTeams); err != nil {
		return nil, err
	}

	rows, err := s.db.Pool.Query(ctx, `
		SELECT id, name, code, active, created_at, updated_at
		FROM teams ORDER BY name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var teams []models.Team
	for rows.Next() {
		var team models.Team
		if err := rows.Scan(&team.ID, &team.Name, &team.Code, &team.Active, &team.CreatedAt, &team.UpdatedAt); err != nil {
			return nil, err
		}
		teams = append(teams, team)
	}
	return teams, rows.Err()
}

func (s *TeamService) Update(ctx context.Context, actor *models.User, teamID uuid.UUID, name string, active bool) (*models.Team, error) {
	phase, err := s.phases.Current(ctx)
	if err != nil {
		return nil, err
	}
	if err := authorize(actor.Role, phase, access.ActionCreateTeam); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, apperr.New(apperr.KindValidationError, "team name is required")
	}

	var team models.Team
	err = s.db.Pool.QueryRow(ctx, `
		UPDATE teams SET name = $1, active = $2, updated_at = NOW()
		WHERE id = $3
		RETURNING id, name, code, active, created_at, updated_at
	`, name, active, teamID).Scan(&team.ID, &team.Name, &team.Code, &team.Active, &team.CreatedAt, &team.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.New(apperr.KindNotFound, "team %s not found", teamID)
	}
	if err != nil {
		return nil, err
	}
	return &team, nil
}
