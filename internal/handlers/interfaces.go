package handlers

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/salesgame/salesgame-api/internal/models"
	"github.com/salesgame/salesgame-api/internal/services"
)

// UserServiceInterface defines the methods used by handlers from UserService
type UserServiceInterface interface {
	Create(ctx context.Context, actor *models.User, username, name, password string, role models.Role, teamID *uuid.UUID) (*models.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	List(ctx context.Context, actor *models.User) ([]models.User, error)
	Authenticate(ctx context.Context, username, password string) (*models.User, error)
}

// TeamServiceInterface defines the methods used by handlers from TeamService
type TeamServiceInterface interface {
	Create(ctx context.Context, actor *models.User, name, code string) (*models.Team, error)
	GetByID(ctx context.Context, teamID uuid.UUID) (*models.Team, error)
	List(ctx context.Context, actor *models.User) ([]models.Team, error)
	Update(ctx context.Context, actor *models.User, teamID uuid.UUID, name string, active bool) (*models.Team, error)
}

// ProposalServiceInterface defines the methods used by handlers from ProposalService
type ProposalServiceInterface interface {
	Submit(ctx context.Context, actor *models.User, input services.SubmitProposalInput) (*models.Proposal, error)
	Validate(ctx context.Context, actor *models.User, proposalID uuid.UUID, decision services.Decision, reason string) (*models.Proposal, error)
	Resend(ctx context.Context, actor *models.User, proposalID uuid.UUID, input services.ResendProposalInput) (*models.Proposal, error)
	MarkSold(ctx context.Context, actor *models.User, proposalID uuid.UUID, input services.MarkSaleInput) (*models.Proposal, *models.Sale, error)
	Delete(ctx context.Context, actor *models.User, proposalID uuid.UUID) error
	GetByID(ctx context.Context, actor *models.User, proposalID uuid.UUID) (*models.Proposal, error)
	ListAll(ctx context.Context, actor *models.User, status string) ([]models.Proposal, error)
	ListByTeam(ctx context.Context, actor *models.User, teamID uuid.UUID) ([]models.Proposal, error)
}

// SaleServiceInterface defines the methods used by handlers from SaleService
type SaleServiceInterface interface {
	Validate(ctx context.Context, actor *models.User, saleID uuid.UUID, decision services.Decision, reason string) (*models.Sale, error)
	ListPending(ctx context.Context, actor *models.User) ([]services.PendingSale, error)
}

// RankingServiceInterface defines the methods used by handlers from RankingService
type RankingServiceInterface interface {
	Get(ctx context.Context, phase models.Phase) ([]models.RankingEntry, error)
}

// PhaseServiceInterface defines the methods used by handlers from PhaseService
type PhaseServiceInterface interface {
	Current(ctx context.Context) (models.Phase, error)
	Transition(ctx context.Context, actor *models.User, newPhase models.Phase) (models.Phase, error)
}

// ScoringServiceInterface defines the methods used by handlers from ScoringService
type ScoringServiceInterface interface {
	GetConfig(ctx context.Context, actor *models.User) (*models.ScoringConfig, error)
	UpdateConfig(ctx context.Context, actor *models.User, perValidated, perProduct int) (*models.ScoringConfig, error)
}

// DashboardServiceInterface defines the methods used by handlers from DashboardService
type DashboardServiceInterface interface {
	General(ctx context.Context, actor *models.User) (*services.GeneralDashboard, error)
}

// TokenServiceInterface defines the methods used by handlers from TokenService
type TokenServiceInterface interface {
	StoreRefreshToken(ctx context.Context, userID uuid.UUID, tokenHash string, expiresAt time.Time) error
	ValidateRefreshToken(ctx context.Context, tokenHash string) (uuid.UUID, error)
	RevokeRefreshToken(ctx context.Context, tokenHash string) error
	RevokeAllUserTokens(ctx context.Context, userID uuid.UUID) error
}

// JWTServiceInterface defines the methods used by handlers from JWTService
type JWTServiceInterface interface {
	GenerateTokenPair(user *models.User) (*services.TokenPair, error)
	ValidateRefreshToken(token string) (uuid.UUID, error)
	RefreshExpiry() time.Duration
}
