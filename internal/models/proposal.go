package models

import (
	"time"

	"github.com/google/uuid"
)

// ProposalStatus is the proposal state machine:
//
//	submitted -> validated | rejected
//	rejected  -> submitted (resend) or deleted
//	validated -> sold
//	sold      -> unsold (sale rejected)
//	unsold    -> sold (re-marked after correction)
type ProposalStatus string

const (
	ProposalSubmitted ProposalStatus = "submitted"
	ProposalValidated ProposalStatus = "validated"
	ProposalRejected  ProposalStatus = "rejected"
	ProposalSold      ProposalStatus = "sold"
	ProposalUnsold    ProposalStatus = "unsold"
)

// Fixed bonus values. The four product-line bonuses are worth 5 points
// each, the acceleration bonus 25.
const (
	BonusLineValue         = 5
	BonusAccelerationValue = 25
)

// BonusFlags are the product-line bonus toggles on a proposal. Flags stay
// mutable until the sale is validated; scoring reads whatever is on the row.
type BonusFlags struct {
	WinesWorldLine   bool `json:"bonus_wines_world_line"`
	WinesSingleLot   bool `json:"bonus_wines_single_lot"`
	SparklingVintage bool `json:"bonus_sparkling_vintage"`
	SparklingPremium bool `json:"bonus_sparkling_premium"`
	Acceleration     bool `json:"bonus_acceleration"`
}

type Proposal struct {
	ID         uuid.UUID `json:"id"`
	TeamID     uuid.UUID `json:"team_id"`
	TeamNumber int       `json:"team_number"` // sequential within the team
	ClientName string    `json:"client_name"`
	SellerName string    `json:"seller_name"`

	Value       float64 `json:"value"`
	Description string  `json:"description,omitempty"`
	ProductQty  int     `json:"product_qty"`

	Status          ProposalStatus `json:"status"`
	SubmittedAt     time.Time      `json:"submitted_at"`
	ValidatedAt     *time.Time     `json:"validated_at,omitempty"`
	ValidatedBy     *uuid.UUID     `json:"validated_by,omitempty"`
	RejectionReason *string        `json:"rejection_reason,omitempty"`

	// Sale-side fields, populated once a sale is recorded.
	SaleValue           *float64   `json:"sale_value,omitempty"`
	SaleProductQty      int        `json:"sale_product_qty"`
	SaleValidated       bool       `json:"sale_validated"`
	SaleRejectionReason *string    `json:"sale_rejection_reason,omitempty"`
	SoldAt              *time.Time `json:"sold_at,omitempty"`

	Bonus BonusFlags `json:"bonus"`

	// Points is always the output of scoring.Score for the current
	// (status, phase, config) triple; never hand-edited elsewhere.
	Points      int `json:"points"`
	BonusPoints int `json:"bonus_points"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ScoringEligible reports whether the proposal can carry points at all:
// validated, or sold with a validated sale.
func (p *Proposal) ScoringEligible() bool {
	return p.Status == ProposalValidated || (p.Status == ProposalSold && p.SaleValidated)
}
