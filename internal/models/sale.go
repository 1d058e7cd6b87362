package models

import (
	"time"

	"github.com/google/uuid"
)

// SaleStatus is the sale validation state machine: pending -> validated | rejected.
type SaleStatus string

const (
	SalePending   SaleStatus = "pending"
	SaleValidated SaleStatus = "validated"
	SaleRejected  SaleStatus = "rejected"
)

// Sale is the one-to-one record of a validated proposal being concretized
// into an actual transaction. It exists only for proposals that reached sold.
type Sale struct {
	ID              uuid.UUID  `json:"id"`
	ProposalID      uuid.UUID  `json:"proposal_id"`
	ProductQty      int        `json:"product_qty"`
	TotalValue      float64    `json:"total_value"`
	Notes           string     `json:"notes,omitempty"`
	Status          SaleStatus `json:"status"`
	PointsGenerated int        `json:"points_generated"`
	ValidatedAt     *time.Time `json:"validated_at,omitempty"`
	ValidatedBy     *uuid.UUID `json:"validated_by,omitempty"`
	RejectionReason *string    `json:"rejection_reason,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}
