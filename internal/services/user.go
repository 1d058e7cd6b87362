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
	"golang.org/x/crypto/bcrypt"
)

type UserService struct {
	db     *database.DB
	phases *PhaseService
}

func NewUserService(db *database.DB, phases *PhaseService) *UserService {
	return &UserService{db: db, phases: phases}
}

const userColumns = `id, username, name, password_hash, role, team_id, active, created_at, updated_at`

func scanUser(row pgx.Row) (*models.User, error) {
	var user models.User
	err := row.Scan(
		&user.ID, &user.Username, &user.Name, &user.PasswordHash,
		&user.Role, &user.TeamID, &user.Active, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Create provisions a new principal. Admin only; team-role users must be
// bound to a team.
func (s *UserService) Create(ctx context.Context, actor *models.User, username, name, password string, role models.Role, teamID *uuid.UUID) (*models.User, error) {
	phase, err := s.phases.Current(ctx)
	if err != nil {
		return nil, err
	}
	if err := authorize(actor.Role, phase, access.ActionCreateUser); err != nil {
		return nil, err
	}

	if username == "" || name == "" {
		return nil, apperr.New(apperr.KindValidationError, "username and name are required")
	}
	if len(password) < 8 {
		return nil, apperr.New(apperr.KindValidationError, "password must be at least 8 characters")
	}
	if _, ok := models.ParseRole(string(role)); !ok {
		return nil, apperr.New(apperr.KindValidationError, "unknown role: %s", role)
	}
	if role == models.RoleTeam && teamID == nil {
		return nil, apperr.New(apperr.KindValidationError, "team users must be bound to a team")
	}
	if role != models.RoleTeam {
		teamID = nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	row := s.db.Pool.QueryRow(ctx, `
		INSERT INTO users (username, name, password_hash, role, team_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+userColumns+`
	`, username, name, string(hash), role, teamID)

	user, err := scanUser(row)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

func (s *UserService) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	row := s.db.Pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	user, err := scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.New(apperr.KindNotFound, "user %s not found", id)
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	row := s.db.Pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE username = $1`, username)
	user, err := scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.New(apperr.KindNotFound, "user %q not found", username)
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) List(ctx context.Context, actor *models.User) ([]models.User, error) {
	phase, err := s.phases.Current(ctx)
	if err != nil {
		return nil, err
	}
	if err := authorize(actor.Role, phase, access.ActionCreateUser); err != nil {
		return nil, err
	}

	rows, err := s.db.Pool.Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var user models.User
		if err := rows.Scan(
			&user.ID, &user.Username, &user.Name, &user.PasswordHash,
			&user.Role, &user.TeamID, &user.Active, &user.CreatedAt, &user.UpdatedAt,
		); err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

// Authenticate verifies username/password credentials. Inactive users are
// rejected the same way as bad credentials.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.GetByUsername(ctx, username)
	if err != nil {
		if apperr.IsKind(err, apperr.KindNotFound) {
			return nil, apperr.New(apperr.KindValidationError, "invalid credentials")
		}
		return nil, err
	}
	if !user.Active {
		return nil, apperr.New(apperr.KindValidationError, "invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, apperr.New(apperr.KindValidationError, "invalid credentials")
	}
	return user, nil
}
