package testutil

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/salesgame/salesgame-api/internal/database"
	"github.com/salesgame/salesgame-api/internal/models"
	"golang.org/x/crypto/bcrypt"
)

// Fixtures provides factory methods for creating test data
type Fixtures struct {
	db      *database.DB
	counter int
}

// NewFixtures creates a new fixtures factory
func NewFixtures(db *database.DB) *Fixtures {
	return &Fixtures{db: db}
}

// CreateTeam creates a test team with default values
func (f *Fixtures) CreateTeam(t *testing.T) *models.Team {
	t.Helper()
	f.counter++

	team := &models.Team{}
	ctx := context.Background()
	err := f.db.Pool.QueryRow(ctx, `
		INSERT INTO teams (name, code)
		VALUES ($1, $2)
		RETURNING id, name, code, active, created_at, updated_at
	`, fmt.Sprintf("Team %d", f.counter), fmt.Sprintf("T%03d", f.counter)).Scan(
		&team.ID, &team.Name, &team.Code, &team.Active, &team.CreatedAt, &team.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("failed to create team: %v", err)
	}
	return team
}

// CreateUser creates a test user with the given role. Team-role users must
// pass their team's id; staff pass nil.
func (f *Fixtures) CreateUser(t *testing.T, role models.Role, teamID *uuid.UUID) *models.User {
	t.Helper()
	f.counter++

	hash, err := bcrypt.GenerateFromPassword([]byte("test-password"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{}
	ctx := context.Background()
	err = f.db.Pool.QueryRow(ctx, `
		INSERT INTO users (username, name, password_hash, role, team_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, username, name, password_hash, role, team_id, active, created_at, updated_at
	`, fmt.Sprintf("user%d", f.counter), fmt.Sprintf("User %d", f.counter), string(hash), role, teamID).Scan(
		&user.ID, &user.Username, &user.Name, &user.PasswordHash,
		&user.Role, &user.TeamID, &user.Active, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	return user
}

// CreateAdmin creates an admin user
func (f *Fixtures) CreateAdmin(t *testing.T) *models.User {
	t.Helper()
	return f.CreateUser(t, models.RoleAdmin, nil)
}
