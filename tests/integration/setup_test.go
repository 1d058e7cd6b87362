package integration

import (
	"os"
	"testing"

	"github.com/salesgame/salesgame-api/internal/services"
	"github.com/salesgame/salesgame-api/tests/testutil"
)

// TestMain runs before all tests in this package
func TestMain(m *testing.M) {
	code := m.Run()
	os.Exit(code)
}

// env bundles the services wired against one test database.
type env struct {
	tdb       *testutil.TestDB
	fixtures  *testutil.Fixtures
	phases    *services.PhaseService
	users     *services.UserService
	teams     *services.TeamService
	proposals *services.ProposalService
	sales     *services.SaleService
	scoring   *services.ScoringService
	rankings  *services.RankingService
}

func setupTest(t *testing.T) *env {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	tdb := testutil.SetupTestDB(t)
	rankings := services.NewRankingService(tdb.DB)
	phases := services.NewPhaseService(tdb.DB)

	return &env{
		tdb:       tdb,
		fixtures:  testutil.NewFixtures(tdb.DB),
		phases:    phases,
		users:     services.NewUserService(tdb.DB, phases),
		teams:     services.NewTeamService(tdb.DB, phases),
		proposals: services.NewProposalService(tdb.DB, rankings),
		sales:     services.NewSaleService(tdb.DB, rankings),
		scoring:   services.NewScoringService(tdb.DB, rankings),
		rankings:  rankings,
	}
}
