package testutil

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/salesgame/salesgame-api/internal/models"
	"github.com/salesgame/salesgame-api/internal/services"
	"github.com/stretchr/testify/mock"
)

// MockUserService mocks the UserService
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) Create(ctx context.Context, actor *models.User, username, name, password string, role models.Role, teamID *uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, actor, username, name, password, role, teamID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) List(ctx context.Context, actor *models.User) ([]models.User, error) {
	args := m.Called(ctx, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockUserService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	args := m.Called(ctx, username, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

// MockTeamService mocks the TeamService
type MockTeamService struct {
	mock.Mock
}

func (m *MockTeamService) Create(ctx context.Context, actor *models.User, name, code string) (*models.Team, error) {
	args := m.Called(ctx, actor, name, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Team), args.Error(1)
}

func (m *MockTeamService) GetByID(ctx context.Context, teamID uuid.UUID) (*models.Team, error) {
	args := m.Called(ctx, teamID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Team), args.Error(1)
}

func (m *MockTeamService) List(ctx context.Context, actor *models.User) ([]models.Team, error) {
	args := m.Called(ctx, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Team), args.Error(1)
}

func (m *MockTeamService) Update(ctx context.Context, actor *models.User, teamID uuid.UUID, name string, active bool) (*models.Team, error) {
	args := m.Called(ctx, actor, teamID, name, active)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Team), args.Error(1)
}

// MockProposalService mocks the ProposalService
type MockProposalService struct {
	mock.Mock
}

func (m *MockProposalService) Submit(ctx context.Context, actor *models.User, input services.SubmitProposalInput) (*models.Proposal, error) {
	args := m.Called(ctx, actor, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Proposal), args.Error(1)
}

func (m *MockProposalService) Validate(ctx context.Context, actor *models.User, proposalID uuid.UUID, decision services.Decision, reason string) (*models.Proposal, error) {
	args := m.Called(ctx, actor, proposalID, decision, reason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Proposal), args.Error(1)
}

func (m *MockProposalService) Resend(ctx context.Context, actor *models.User, proposalID uuid.UUID, input services.ResendProposalInput) (*models.Proposal, error) {
	args := m.Called(ctx, actor, proposalID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Proposal), args.Error(1)
}

func (m *MockProposalService) MarkSold(ctx context.Context, actor *models.User, proposalID uuid.UUID, input services.MarkSaleInput) (*models.Proposal, *models.Sale, error) {
	args := m.Called(ctx, actor, proposalID, input)
	var p *models.Proposal
	var s *models.Sale
	if args.Get(0) != nil {
		p = args.Get(0).(*models.Proposal)
	}
	if args.Get(1) != nil {
		s = args.Get(1).(*models.Sale)
	}
	return p, s, args.Error(2)
}

func (m *MockProposalService) Delete(ctx context.Context, actor *models.User, proposalID uuid.UUID) error {
	args := m.Called(ctx, actor, proposalID)
	return args.Error(0)
}

func (m *MockProposalService) GetByID(ctx context.Context, actor *models.User, proposalID uuid.UUID) (*models.Proposal, error) {
	args := m.Called(ctx, actor, proposalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Proposal), args.Error(1)
}

func (m *MockProposalService) ListAll(ctx context.Context, actor *models.User, status string) ([]models.Proposal, error) {
	args := m.Called(ctx, actor, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Proposal), args.Error(1)
}

func (m *MockProposalService) ListByTeam(ctx context.Context, actor *models.User, teamID uuid.UUID) ([]models.Proposal, error) {
	args := m.Called(ctx, actor, teamID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Proposal), args.Error(1)
}

// MockSaleService mocks the SaleService
type MockSaleService struct {
	mock.Mock
}

func (m *MockSaleService) Validate(ctx context.Context, actor *models.User, saleID uuid.UUID, decision services.Decision, reason string) (*models.Sale, error) {
	args := m.Called(ctx, actor, saleID, decision, reason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Sale), args.Error(1)
}

func (m *MockSaleService) ListPending(ctx context.Context, actor *models.User) ([]services.PendingSale, error) {
	args := m.Called(ctx, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]services.PendingSale), args.Error(1)
}

// MockRankingService mocks the RankingService
type MockRankingService struct {
	mock.Mock
}

func (m *MockRankingService) Get(ctx context.Context, phase models.Phase) ([]models.RankingEntry, error) {
	args := m.Called(ctx, phase)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.RankingEntry), args.Error(1)
}

// MockPhaseService mocks the PhaseService
type MockPhaseService struct {
	mock.Mock
}

func (m *MockPhaseService) Current(ctx context.Context) (models.Phase, error) {
	args := m.Called(ctx)
	return args.Get(0).(models.Phase), args.Error(1)
}

func (m *MockPhaseService) Transition(ctx context.Context, actor *models.User, newPhase models.Phase) (models.Phase, error) {
	args := m.Called(ctx, actor, newPhase)
	return args.Get(0).(models.Phase), args.Error(1)
}

// MockScoringService mocks the ScoringService
type MockScoringService struct {
	mock.Mock
}

func (m *MockScoringService) GetConfig(ctx context.Context, actor *models.User) (*models.ScoringConfig, error) {
	args := m.Called(ctx, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ScoringConfig), args.Error(1)
}

func (m *MockScoringService) UpdateConfig(ctx context.Context, actor *models.User, perValidated, perProduct int) (*models.ScoringConfig, error) {
	args := m.Called(ctx, actor, perValidated, perProduct)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ScoringConfig), args.Error(1)
}

// MockDashboardService mocks the DashboardService
type MockDashboardService struct {
	mock.Mock
}

func (m *MockDashboardService) General(ctx context.Context, actor *models.User) (*services.GeneralDashboard, error) {
	args := m.Called(ctx, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.GeneralDashboard), args.Error(1)
}

// MockTokenService mocks the TokenService
type MockTokenService struct {
	mock.Mock
}

func (m *MockTokenService) StoreRefreshToken(ctx context.Context, userID uuid.UUID, tokenHash string, expiresAt time.Time) error {
	args := m.Called(ctx, userID, tokenHash, expiresAt)
	return args.Error(0)
}

func (m *MockTokenService) ValidateRefreshToken(ctx context.Context, tokenHash string) (uuid.UUID, error) {
	args := m.Called(ctx, tokenHash)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *MockTokenService) RevokeRefreshToken(ctx context.Context, tokenHash string) error {
	args := m.Called(ctx, tokenHash)
	return args.Error(0)
}

func (m *MockTokenService) RevokeAllUserTokens(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}
