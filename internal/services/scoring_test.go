package services

import (
	"testing"

	"github.com/salesgame/salesgame-api/internal/models"
	"github.com/stretchr/testify/assert"
)

func defaultConfig() *models.ScoringConfig {
	return &models.ScoringConfig{
		PointsPerValidatedProposal: 5,
		PointsPerProduct:           10,
		Version:                    1,
	}
}

func TestScore_LiveEvent_ValidatedWithAcceleration(t *testing.T) {
	p := &models.Proposal{
		Status:     models.ProposalValidated,
		ProductQty: 2,
		Bonus:      models.BonusFlags{Acceleration: true},
	}

	points, bonus := Score(p, models.PhaseLiveEvent, defaultConfig())

	// 5 base + 2*10 products + 25 acceleration
	assert.Equal(t, 50, points)
	assert.Equal(t, 25, bonus)
}

func TestScore_LiveEvent_AllBonusFlags(t *testing.T) {
	p := &models.Proposal{
		Status:     models.ProposalValidated,
		ProductQty: 1,
		Bonus: models.BonusFlags{
			WinesWorldLine:   true,
			WinesSingleLot:   true,
			SparklingVintage: true,
			SparklingPremium: true,
			Acceleration:     true,
		},
	}

	points, bonus := Score(p, models.PhaseLiveEvent, defaultConfig())

	assert.Equal(t, 45, bonus) // 4*5 + 25
	assert.Equal(t, 5+10+45, points)
}

func TestScore_LiveEvent_SubmittedScoresNothing(t *testing.T) {
	p := &models.Proposal{Status: models.ProposalSubmitted, ProductQty: 9}

	points, bonus := Score(p, models.PhaseLiveEvent, defaultConfig())

	assert.Zero(t, points)
	assert.Zero(t, bonus)
}

func TestScore_LiveEvent_RejectedScoresNothing(t *testing.T) {
	p := &models.Proposal{Status: models.ProposalRejected, ProductQty: 3, Points: 35}

	points, bonus := Score(p, models.PhaseLiveEvent, defaultConfig())

	assert.Zero(t, points)
	assert.Zero(t, bonus)
}

func TestScore_LiveEvent_SoldRetainsValidationPoints(t *testing.T) {
	p := &models.Proposal{
		Status:      models.ProposalSold,
		ProductQty:  2,
		Points:      50,
		BonusPoints: 25,
	}

	points, bonus := Score(p, models.PhaseLiveEvent, defaultConfig())

	assert.Equal(t, 50, points)
	assert.Equal(t, 25, bonus)
}

func TestScore_PostEvent_SoldPendingSaleScoresNothing(t *testing.T) {
	p := &models.Proposal{
		Status:         models.ProposalSold,
		SaleValidated:  false,
		SaleProductQty: 8,
		Points:         50,
	}

	points, bonus := Score(p, models.PhasePostEvent, defaultConfig())

	assert.Zero(t, points)
	assert.Zero(t, bonus)
}

func TestScore_PostEvent_ValidatedSaleUsesQuantitySold(t *testing.T) {
	p := &models.Proposal{
		Status:         models.ProposalSold,
		SaleValidated:  true,
		ProductQty:     3,
		SaleProductQty: 2,
		Bonus:          models.BonusFlags{WinesWorldLine: true},
	}

	points, bonus := Score(p, models.PhasePostEvent, defaultConfig())

	// 5 base + 2*10 sold quantity + 5 line bonus; the original quantity of
	// 3 must not leak in.
	assert.Equal(t, 30, points)
	assert.Equal(t, 5, bonus)
}

func TestScore_PostEvent_MerelyValidatedScoresNothing(t *testing.T) {
	p := &models.Proposal{Status: models.ProposalValidated, ProductQty: 4, Points: 45}

	points, _ := Score(p, models.PhasePostEvent, defaultConfig())

	assert.Zero(t, points)
}

func TestScore_ClosedRetainsEligiblePoints(t *testing.T) {
	eligible := &models.Proposal{
		Status:        models.ProposalSold,
		SaleValidated: true,
		Points:        46,
		BonusPoints:   25,
	}
	points, bonus := Score(eligible, models.PhaseClosed, defaultConfig())
	assert.Equal(t, 46, points)
	assert.Equal(t, 25, bonus)

	ineligible := &models.Proposal{Status: models.ProposalUnsold, Points: 46}
	points, bonus = Score(ineligible, models.PhaseClosed, defaultConfig())
	assert.Zero(t, points)
	assert.Zero(t, bonus)
}

func TestScore_PreEventRetainsEligiblePoints(t *testing.T) {
	p := &models.Proposal{Status: models.ProposalValidated, Points: 30, BonusPoints: 5}

	points, bonus := Score(p, models.PhasePreEvent, defaultConfig())

	assert.Equal(t, 30, points)
	assert.Equal(t, 5, bonus)
}

func TestScore_Idempotent(t *testing.T) {
	cfg := defaultConfig()
	p := &models.Proposal{
		Status:     models.ProposalValidated,
		ProductQty: 2,
		Bonus:      models.BonusFlags{Acceleration: true},
	}

	points, bonus := Score(p, models.PhaseLiveEvent, cfg)
	p.Points = points
	p.BonusPoints = bonus

	again, againBonus := Score(p, models.PhaseLiveEvent, cfg)
	assert.Equal(t, points, again)
	assert.Equal(t, bonus, againBonus)
}

func TestScore_SaleRejectionScenario(t *testing.T) {
	cfg := defaultConfig()

	// Validated in live: 5 + 2*10 + 25 = 50.
	p := &models.Proposal{
		Status:     models.ProposalValidated,
		ProductQty: 2,
		Bonus:      models.BonusFlags{Acceleration: true},
	}
	p.Points, p.BonusPoints = Score(p, models.PhaseLiveEvent, cfg)
	assert.Equal(t, 50, p.Points)

	// Marked sold in post-event with a pending sale: nothing yet.
	p.Status = models.ProposalSold
	p.SaleProductQty = 2
	p.Points, p.BonusPoints = Score(p, models.PhasePostEvent, cfg)
	assert.Zero(t, p.Points)

	// Manager validates the sale with per-product 8: 5 + 2*8 + 25 = 46.
	p.SaleValidated = true
	cfg.PointsPerProduct = 8
	p.Points, p.BonusPoints = Score(p, models.PhasePostEvent, cfg)
	assert.Equal(t, 46, p.Points)

	// Sale rejected: proposal reverts to unsold and scores nothing.
	p.Status = models.ProposalUnsold
	p.SaleValidated = false
	p.Points, p.BonusPoints = Score(p, models.PhasePostEvent, cfg)
	assert.Zero(t, p.Points)
}

func TestBonusTotal(t *testing.T) {
	assert.Zero(t, bonusTotal(models.BonusFlags{}))
	assert.Equal(t, 5, bonusTotal(models.BonusFlags{WinesSingleLot: true}))
	assert.Equal(t, 25, bonusTotal(models.BonusFlags{Acceleration: true}))
	assert.Equal(t, 45, bonusTotal(models.BonusFlags{
		WinesWorldLine:   true,
		WinesSingleLot:   true,
		SparklingVintage: true,
		SparklingPremium: true,
		Acceleration:     true,
	}))
}
