package dto

type UpdateScoringConfigRequest struct {
	PointsPerValidatedProposal int `json:"points_per_validated_proposal"`
	PointsPerProduct           int `json:"points_per_product"`
}
