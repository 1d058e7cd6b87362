package handlers

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"
	driftmw "github.com/m1z23r/drift/pkg/middleware"
	"github.com/salesgame/salesgame-api/internal/apperr"
	"github.com/salesgame/salesgame-api/internal/models"
	"github.com/salesgame/salesgame-api/pkg/dto"
	"github.com/salesgame/salesgame-api/tests/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newAuthTestApp(userSvc *testutil.MockUserService, tokenSvc *testutil.MockTokenService) http.Handler {
	handler := NewAuthHandler(userSvc, tokenSvc, testutil.TestJWTService())

	app := drift.New()
	app.Use(driftmw.BodyParser())
	app.Post("/auth/login", handler.Login)
	app.Post("/auth/refresh", handler.Refresh)
	app.Post("/auth/logout", handler.Logout)
	return app
}

func TestAuthHandler_Login_Success(t *testing.T) {
	mockUsers := new(testutil.MockUserService)
	mockTokens := new(testutil.MockTokenService)
	app := newAuthTestApp(mockUsers, mockTokens)

	teamID := uuid.New()
	user := &models.User{
		ID: uuid.New(), Username: "team-alpha", Name: "Team Alpha",
		Role: models.RoleTeam, TeamID: &teamID, Active: true,
	}
	mockUsers.On("Authenticate", mock.Anything, "team-alpha", "test-password").Return(user, nil)
	mockTokens.On("StoreRefreshToken", mock.Anything, user.ID, mock.Anything, mock.Anything).Return(nil)

	client := testutil.NewHTTPTestClient(t, app)
	rec := client.POST("/auth/login", dto.LoginRequest{Username: "team-alpha", Password: "test-password"}, nil)

	testutil.AssertStatus(t, rec, http.StatusOK)

	var response dto.TokenResponse
	testutil.ParseJSON(t, rec, &response)
	assert.NotEmpty(t, response.AccessToken)
	assert.NotEmpty(t, response.RefreshToken)
	assert.Equal(t, "team-alpha", response.User.Username)
	assert.Equal(t, "team", response.User.Role)

	// The access token must be usable against the auth middleware.
	claims, err := testutil.TestJWTService().ValidateAccessToken(response.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)

	mockUsers.AssertExpectations(t)
	mockTokens.AssertExpectations(t)
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	mockUsers := new(testutil.MockUserService)
	mockTokens := new(testutil.MockTokenService)
	app := newAuthTestApp(mockUsers, mockTokens)

	mockUsers.On("Authenticate", mock.Anything, "team-alpha", "wrong").
		Return(nil, apperr.New(apperr.KindValidationError, "invalid credentials"))

	client := testutil.NewHTTPTestClient(t, app)
	rec := client.POST("/auth/login", dto.LoginRequest{Username: "team-alpha", Password: "wrong"}, nil)

	testutil.AssertStatus(t, rec, http.StatusUnauthorized)
	mockTokens.AssertNotCalled(t, "StoreRefreshToken")
}

func TestAuthHandler_Login_MissingFields(t *testing.T) {
	mockUsers := new(testutil.MockUserService)
	mockTokens := new(testutil.MockTokenService)
	app := newAuthTestApp(mockUsers, mockTokens)

	client := testutil.NewHTTPTestClient(t, app)
	rec := client.POST("/auth/login", dto.LoginRequest{Username: "team-alpha"}, nil)

	testutil.AssertStatus(t, rec, http.StatusBadRequest)
	mockUsers.AssertNotCalled(t, "Authenticate")
}

func TestAuthHandler_Refresh_RevokedToken(t *testing.T) {
	mockUsers := new(testutil.MockUserService)
	mockTokens := new(testutil.MockTokenService)
	app := newAuthTestApp(mockUsers, mockTokens)

	user := &models.User{ID: uuid.New(), Username: "team-alpha", Role: models.RoleTeam}
	pair, err := testutil.TestJWTService().GenerateTokenPair(user)
	require.NoError(t, err)

	mockTokens.On("ValidateRefreshToken", mock.Anything, mock.Anything).
		Return(uuid.Nil, assert.AnError)

	client := testutil.NewHTTPTestClient(t, app)
	rec := client.POST("/auth/refresh", dto.RefreshTokenRequest{RefreshToken: pair.RefreshToken}, nil)

	testutil.AssertStatus(t, rec, http.StatusUnauthorized)
	mockTokens.AssertExpectations(t)
}

func TestAuthHandler_Refresh_GarbageToken(t *testing.T) {
	mockUsers := new(testutil.MockUserService)
	mockTokens := new(testutil.MockTokenService)
	app := newAuthTestApp(mockUsers, mockTokens)

	client := testutil.NewHTTPTestClient(t, app)
	rec := client.POST("/auth/refresh", dto.RefreshTokenRequest{RefreshToken: "garbage"}, nil)

	testutil.AssertStatus(t, rec, http.StatusUnauthorized)
	mockTokens.AssertNotCalled(t, "ValidateRefreshToken")
}

func TestAuthHandler_Refresh_RotatesToken(t *testing.T) {
	mockUsers := new(testutil.MockUserService)
	mockTokens := new(testutil.MockTokenService)
	app := newAuthTestApp(mockUsers, mockTokens)

	user := &models.User{ID: uuid.New(), Username: "team-alpha", Role: models.RoleTeam, Active: true}
	pair, err := testutil.TestJWTService().GenerateTokenPair(user)
	require.NoError(t, err)

	mockTokens.On("ValidateRefreshToken", mock.Anything, mock.Anything).Return(user.ID, nil)
	mockUsers.On("GetByID", mock.Anything, user.ID).Return(user, nil)
	mockTokens.On("RevokeRefreshToken", mock.Anything, mock.Anything).Return(nil)
	mockTokens.On("StoreRefreshToken", mock.Anything, user.ID, mock.Anything, mock.Anything).Return(nil)

	client := testutil.NewHTTPTestClient(t, app)
	rec := client.POST("/auth/refresh", dto.RefreshTokenRequest{RefreshToken: pair.RefreshToken}, nil)

	testutil.AssertStatus(t, rec, http.StatusOK)

	var response dto.TokenResponse
	testutil.ParseJSON(t, rec, &response)
	assert.NotEmpty(t, response.AccessToken)
	assert.NotEqual(t, pair.RefreshToken, response.RefreshToken)

	mockTokens.AssertExpectations(t)
	mockUsers.AssertExpectations(t)
}

func TestAuthHandler_Logout_RevokesToken(t *testing.T) {
	mockUsers := new(testutil.MockUserService)
	mockTokens := new(testutil.MockTokenService)
	app := newAuthTestApp(mockUsers, mockTokens)

	mockTokens.On("RevokeRefreshToken", mock.Anything, mock.Anything).Return(nil)

	client := testutil.NewHTTPTestClient(t, app)
	rec := client.POST("/auth/logout", dto.LogoutRequest{RefreshToken: "some-token"}, nil)

	testutil.AssertStatus(t, rec, http.StatusOK)
	mockTokens.AssertExpectations(t)
}
