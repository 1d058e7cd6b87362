package dto

// BonusFlagsPayload mirrors the five bonus toggles on a proposal.
type BonusFlagsPayload struct {
	WinesWorldLine   bool `json:"bonus_wines_world_line"`
	WinesSingleLot   bool `json:"bonus_wines_single_lot"`
	SparklingVintage bool `json:"bonus_sparkling_vintage"`
	SparklingPremium bool `json:"bonus_sparkling_premium"`
	Acceleration     bool `json:"bonus_acceleration"`
}

type SubmitProposalRequest struct {
	ClientName  string            `json:"client_name"`
	SellerName  string            `json:"seller_name"`
	Description string            `json:"description"`
	Value       float64           `json:"value"`
	ProductQty  int               `json:"product_qty"`
	Bonus       BonusFlagsPayload `json:"bonus"`
}

type DecisionRequest struct {
	Decision string `json:"decision"`
	Reason   string `json:"reason,omitempty"`
}

type ResendProposalRequest struct {
	Value       *float64           `json:"value,omitempty"`
	Description *string            `json:"description,omitempty"`
	ProductQty  *int               `json:"product_qty,omitempty"`
	Bonus       *BonusFlagsPayload `json:"bonus,omitempty"`
}

type MarkSaleRequest struct {
	SaleValue *float64           `json:"sale_value,omitempty"`
	QtySold   *int               `json:"qty_sold,omitempty"`
	Notes     string             `json:"notes,omitempty"`
	Bonus     *BonusFlagsPayload `json:"bonus,omitempty"`
}
