package testutil

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/salesgame/salesgame-api/internal/database"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestDB wraps a test database connection with cleanup helpers
type TestDB struct {
	DB        *database.DB
	Container testcontainers.Container
}

// SetupTestDB creates a PostgreSQL testcontainer and returns a connected TestDB
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "test",
			"POSTGRES_PASSWORD": "test",
			"POSTGRES_DB":       "salesgame_test",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("failed to get container host: %v", err)
	}

	port, err := container.MappedPort(ctx, "5432")
	if err != nil {
		t.Fatalf("failed to get container port: %v", err)
	}

	dsn := fmt.Sprintf("postgres://test:test@%s:%s/salesgame_test?sslmode=disable", host, port.Port())

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Fatalf("failed to connect to test database: %v", err)
	}

	db := &database.DB{Pool: pool}

	if err := db.Migrate(ctx); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	t.Cleanup(func() {
		pool.Close()
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	return &TestDB{
		DB:        db,
		Container: container,
	}
}

// Truncate clears all competition data between tests while keeping the
// singleton system rows.
func (tdb *TestDB) Truncate(t *testing.T) {
	t.Helper()
	ctx := context.Background()

	_, err := tdb.DB.Pool.Exec(ctx, `
		TRUNCATE sales, proposals, rankings, refresh_tokens, users, teams CASCADE
	`)
	if err != nil {
		t.Fatalf("failed to truncate tables: %v", err)
	}

	_, err = tdb.DB.Pool.Exec(ctx, `UPDATE system_status SET phase = 'pre_event', changed_by = NULL WHERE id = 1`)
	if err != nil {
		t.Fatalf("failed to reset phase: %v", err)
	}

	_, err = tdb.DB.Pool.Exec(ctx, `
		UPDATE scoring_config SET points_per_validated_proposal = 5, points_per_product = 10,
			version = 1, updated_by = NULL WHERE id = 1
	`)
	if err != nil {
		t.Fatalf("failed to reset scoring config: %v", err)
	}
}

// SetPhase forces the competition into a phase directly, bypassing the
// service layer.
func (tdb *TestDB) SetPhase(t *testing.T, phase string) {
	t.Helper()
	_, err := tdb.DB.Pool.Exec(context.Background(), `UPDATE system_status SET phase = $1 WHERE id = 1`, phase)
	if err != nil {
		t.Fatalf("failed to set phase: %v", err)
	}
}
