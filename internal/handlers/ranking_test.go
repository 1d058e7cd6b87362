package handlers

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"
	driftmw "github.com/m1z23r/drift/pkg/middleware"
	"github.com/salesgame/salesgame-api/internal/middleware"
	"github.com/salesgame/salesgame-api/internal/models"
	"github.com/salesgame/salesgame-api/tests/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newRankingTestApp(rankings *testutil.MockRankingService, phases *testutil.MockPhaseService) http.Handler {
	handler := NewRankingHandler(rankings, phases)

	app := drift.New()
	app.Use(driftmw.BodyParser())
	app.Use(middleware.Auth(testutil.TestJWTService()))
	app.Get("/rankings", handler.Get)
	return app
}

func TestRankingHandler_Get_DefaultsToCurrentPhase(t *testing.T) {
	mockRankings := new(testutil.MockRankingService)
	mockPhases := new(testutil.MockPhaseService)
	app := newRankingTestApp(mockRankings, mockPhases)
	token, _ := adminToken(t)

	entries := []models.RankingEntry{
		{TeamID: uuid.New(), TeamName: "Alpha", Phase: models.PhaseLiveEvent, Position: 1, Points: 50},
		{TeamID: uuid.New(), TeamName: "Beta", Phase: models.PhaseLiveEvent, Position: 2, Points: 30},
	}
	mockPhases.On("Current", mock.Anything).Return(models.PhaseLiveEvent, nil)
	mockRankings.On("Get", mock.Anything, models.PhaseLiveEvent).Return(entries, nil)

	client := testutil.NewHTTPTestClient(t, app)
	rec := client.GET("/rankings", map[string]string{"Authorization": testutil.AuthHeader(token)})

	testutil.AssertStatus(t, rec, http.StatusOK)

	var response []models.RankingEntry
	testutil.ParseJSON(t, rec, &response)
	assert.Len(t, response, 2)
	assert.Equal(t, "Alpha", response[0].TeamName)
	assert.Equal(t, 1, response[0].Position)

	mockRankings.AssertExpectations(t)
	mockPhases.AssertExpectations(t)
}

func TestRankingHandler_Get_ExplicitPhase(t *testing.T) {
	mockRankings := new(testutil.MockRankingService)
	mockPhases := new(testutil.MockPhaseService)
	app := newRankingTestApp(mockRankings, mockPhases)
	token, _ := adminToken(t)

	mockRankings.On("Get", mock.Anything, models.PhasePostEvent).Return([]models.RankingEntry{}, nil)

	client := testutil.NewHTTPTestClient(t, app)
	rec := client.GET("/rankings?phase=post_event", map[string]string{"Authorization": testutil.AuthHeader(token)})

	testutil.AssertStatus(t, rec, http.StatusOK)
	mockPhases.AssertNotCalled(t, "Current")
	mockRankings.AssertExpectations(t)
}

func TestRankingHandler_Get_UnknownPhase(t *testing.T) {
	mockRankings := new(testutil.MockRankingService)
	mockPhases := new(testutil.MockPhaseService)
	app := newRankingTestApp(mockRankings, mockPhases)
	token, _ := adminToken(t)

	client := testutil.NewHTTPTestClient(t, app)
	rec := client.GET("/rankings?phase=halftime", map[string]string{"Authorization": testutil.AuthHeader(token)})

	testutil.AssertStatus(t, rec, http.StatusBadRequest)
	mockRankings.AssertNotCalled(t, "Get")
}
