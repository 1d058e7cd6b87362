package models

import (
	"time"

	"github.com/google/uuid"
)

// ScoringConfig is the board-controlled singleton of point values. Version
// increments on every update; writers use it for optimistic concurrency so
// two concurrent resweeps cannot silently overwrite each other.
type ScoringConfig struct {
	PointsPerValidatedProposal int        `json:"points_per_validated_proposal"`
	PointsPerProduct           int        `json:"points_per_product"`
	Version                    int        `json:"version"`
	UpdatedAt                  time.Time  `json:"updated_at"`
	UpdatedBy                  *uuid.UUID `json:"updated_by,omitempty"`
}
