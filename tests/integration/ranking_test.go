package integration

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/salesgame/salesgame-api/internal/models"
	"github.com/salesgame/salesgame-api/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRanking_Integration_EveryTeamGetsAnEntry(t *testing.T) {
	e := setupTest(t)
	ctx := context.Background()

	teamA := e.fixtures.CreateTeam(t)
	teamB := e.fixtures.CreateTeam(t)
	e.fixtures.CreateTeam(t) // never submits anything
	userA := e.fixtures.CreateUser(t, models.RoleTeam, &teamA.ID)
	userB := e.fixtures.CreateUser(t, models.RoleTeam, &teamB.ID)
	manager := e.fixtures.CreateUser(t, models.RoleManager, nil)

	e.tdb.SetPhase(t, "live_event")

	pa, err := e.proposals.Submit(ctx, userA, services.SubmitProposalInput{
		ClientName: "c", SellerName: "s", Value: 100, ProductQty: 3,
	})
	require.NoError(t, err)
	_, err = e.proposals.Validate(ctx, manager, pa.ID, services.DecisionAccept, "")
	require.NoError(t, err)

	pb, err := e.proposals.Submit(ctx, userB, services.SubmitProposalInput{
		ClientName: "c", SellerName: "s", Value: 100, ProductQty: 1,
	})
	require.NoError(t, err)
	_, err = e.proposals.Validate(ctx, manager, pb.ID, services.DecisionAccept, "")
	require.NoError(t, err)

	entries, err := e.rankings.Get(ctx, models.PhaseLiveEvent)
	require.NoError(t, err)
	require.Len(t, entries, 3, "every team must appear, including the idle one")

	// 5+3*10=35 beats 5+1*10=15 beats 0; positions 1-based and gap-free.
	assert.Equal(t, teamA.ID, entries[0].TeamID)
	assert.Equal(t, 35, entries[0].Points)
	assert.Equal(t, teamB.ID, entries[1].TeamID)
	assert.Equal(t, 15, entries[1].Points)
	assert.Equal(t, 0, entries[2].Points)
	for i, entry := range entries {
		assert.Equal(t, i+1, entry.Position)
	}
}

// Two validations of different proposals of one team racing each other
// must both land in the ranking: the recompute locks the team rows, so the
// later transaction aggregates after the earlier one committed instead of
// overwriting its delta from a stale snapshot.
func TestRanking_Integration_ConcurrentValidationsKeepBothDeltas(t *testing.T) {
	e := setupTest(t)
	ctx := context.Background()

	team := e.fixtures.CreateTeam(t)
	teamUser := e.fixtures.CreateUser(t, models.RoleTeam, &team.ID)
	manager := e.fixtures.CreateUser(t, models.RoleManager, nil)

	e.tdb.SetPhase(t, "live_event")

	p1, err := e.proposals.Submit(ctx, teamUser, services.SubmitProposalInput{
		ClientName: "c", SellerName: "s", Value: 100, ProductQty: 2,
	})
	require.NoError(t, err)
	p2, err := e.proposals.Submit(ctx, teamUser, services.SubmitProposalInput{
		ClientName: "c", SellerName: "s", Value: 100, ProductQty: 3,
	})
	require.NoError(t, err)

	var wg sync.WaitGroup
	errs := make(chan error, 2)
	for _, id := range []uuid.UUID{p1.ID, p2.ID} {
		wg.Add(1)
		go func(id uuid.UUID) {
			defer wg.Done()
			_, err := e.proposals.Validate(ctx, manager, id, services.DecisionAccept, "")
			errs <- err
		}(id)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	// (5 + 2*10) + (5 + 3*10) = 60.
	entries, err := e.rankings.Get(ctx, models.PhaseLiveEvent)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, 60, entries[0].Points)
}

func TestScoringConfig_Integration_ResweepRescoresEverything(t *testing.T) {
	e := setupTest(t)
	ctx := context.Background()

	team := e.fixtures.CreateTeam(t)
	teamUser := e.fixtures.CreateUser(t, models.RoleTeam, &team.ID)
	manager := e.fixtures.CreateUser(t, models.RoleManager, nil)
	board := e.fixtures.CreateUser(t, models.RoleBoard, nil)

	e.tdb.SetPhase(t, "live_event")

	p, err := e.proposals.Submit(ctx, teamUser, services.SubmitProposalInput{
		ClientName: "c", SellerName: "s", Value: 100, ProductQty: 2,
		Bonus: models.BonusFlags{Acceleration: true},
	})
	require.NoError(t, err)
	p, err = e.proposals.Validate(ctx, manager, p.ID, services.DecisionAccept, "")
	require.NoError(t, err)
	assert.Equal(t, 50, p.Points)

	// Board lowers per-product points; the validated proposal is re-priced
	// and the ranking moves with it, atomically.
	cfg, err := e.scoring.UpdateConfig(ctx, board, 5, 8)
	require.NoError(t, err)
	assert.Equal(t, 8, cfg.PointsPerProduct)
	assert.Equal(t, 2, cfg.Version)

	p, err = e.proposals.GetByID(ctx, teamUser, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 46, p.Points) // 5 + 2*8 + 25

	entries, err := e.rankings.Get(ctx, models.PhaseLiveEvent)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, 46, entries[0].Points)
}

func TestScoringConfig_Integration_VersionAdvances(t *testing.T) {
	e := setupTest(t)
	ctx := context.Background()

	board := e.fixtures.CreateUser(t, models.RoleBoard, nil)

	first, err := e.scoring.GetConfig(ctx, board)
	require.NoError(t, err)

	updated, err := e.scoring.UpdateConfig(ctx, board, first.PointsPerValidatedProposal, first.PointsPerProduct+1)
	require.NoError(t, err)
	assert.Equal(t, first.Version+1, updated.Version)

	again, err := e.scoring.UpdateConfig(ctx, board, first.PointsPerValidatedProposal, first.PointsPerProduct)
	require.NoError(t, err)
	assert.Equal(t, first.Version+2, again.Version)
}
