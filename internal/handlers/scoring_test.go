package handlers

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"
	driftmw "github.com/m1z23r/drift/pkg/middleware"
	"github.com/salesgame/salesgame-api/internal/apperr"
	"github.com/salesgame/salesgame-api/internal/middleware"
	"github.com/salesgame/salesgame-api/internal/models"
	"github.com/salesgame/salesgame-api/pkg/dto"
	"github.com/salesgame/salesgame-api/tests/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newScoringTestApp(svc *testutil.MockScoringService) http.Handler {
	handler := NewScoringHandler(svc)

	app := drift.New()
	app.Use(driftmw.BodyParser())
	app.Use(middleware.Auth(testutil.TestJWTService()))
	app.Get("/scoring/config", handler.GetConfig)
	app.Put("/scoring/config", handler.UpdateConfig)
	return app
}

func boardToken(t *testing.T) (string, *models.User) {
	t.Helper()
	user := &models.User{ID: uuid.New(), Username: "board", Role: models.RoleBoard}
	return testutil.GenerateTestToken(t, user), user
}

func TestScoringHandler_GetConfig(t *testing.T) {
	mockSvc := new(testutil.MockScoringService)
	app := newScoringTestApp(mockSvc)
	token, _ := boardToken(t)

	cfg := &models.ScoringConfig{PointsPerValidatedProposal: 5, PointsPerProduct: 10, Version: 1}
	mockSvc.On("GetConfig", mock.Anything, mock.Anything).Return(cfg, nil)

	client := testutil.NewHTTPTestClient(t, app)
	rec := client.GET("/scoring/config", map[string]string{"Authorization": testutil.AuthHeader(token)})

	testutil.AssertStatus(t, rec, http.StatusOK)

	var response models.ScoringConfig
	testutil.ParseJSON(t, rec, &response)
	assert.Equal(t, 5, response.PointsPerValidatedProposal)
	assert.Equal(t, 10, response.PointsPerProduct)

	mockSvc.AssertExpectations(t)
}

func TestScoringHandler_UpdateConfig_Success(t *testing.T) {
	mockSvc := new(testutil.MockScoringService)
	app := newScoringTestApp(mockSvc)
	token, _ := boardToken(t)

	updated := &models.ScoringConfig{PointsPerValidatedProposal: 5, PointsPerProduct: 8, Version: 2}
	mockSvc.On("UpdateConfig", mock.Anything, mock.Anything, 5, 8).Return(updated, nil)

	client := testutil.NewHTTPTestClient(t, app)
	rec := client.PUT("/scoring/config",
		dto.UpdateScoringConfigRequest{PointsPerValidatedProposal: 5, PointsPerProduct: 8},
		map[string]string{"Authorization": testutil.AuthHeader(token)})

	testutil.AssertStatus(t, rec, http.StatusOK)

	var response models.ScoringConfig
	testutil.ParseJSON(t, rec, &response)
	assert.Equal(t, 8, response.PointsPerProduct)
	assert.Equal(t, 2, response.Version)

	mockSvc.AssertExpectations(t)
}

func TestScoringHandler_UpdateConfig_Conflict(t *testing.T) {
	mockSvc := new(testutil.MockScoringService)
	app := newScoringTestApp(mockSvc)
	token, _ := boardToken(t)

	mockSvc.On("UpdateConfig", mock.Anything, mock.Anything, 5, 8).
		Return(nil, apperr.New(apperr.KindConfigConflict, "scoring config changed concurrently"))

	client := testutil.NewHTTPTestClient(t, app)
	rec := client.PUT("/scoring/config",
		dto.UpdateScoringConfigRequest{PointsPerValidatedProposal: 5, PointsPerProduct: 8},
		map[string]string{"Authorization": testutil.AuthHeader(token)})

	testutil.AssertStatus(t, rec, http.StatusConflict)
	mockSvc.AssertExpectations(t)
}

func TestScoringHandler_UpdateConfig_Forbidden(t *testing.T) {
	mockSvc := new(testutil.MockScoringService)
	app := newScoringTestApp(mockSvc)
	token, _ := managerToken(t)

	mockSvc.On("UpdateConfig", mock.Anything, mock.Anything, 5, 8).
		Return(nil, apperr.New(apperr.KindPermissionDenied, "role manager may not edit_scoring_rules"))

	client := testutil.NewHTTPTestClient(t, app)
	rec := client.PUT("/scoring/config",
		dto.UpdateScoringConfigRequest{PointsPerValidatedProposal: 5, PointsPerProduct: 8},
		map[string]string{"Authorization": testutil.AuthHeader(token)})

	testutil.AssertStatus(t, rec, http.StatusForbidden)
	mockSvc.AssertExpectations(t)
}
