package dto

type PhaseResponse struct {
	Phase string `json:"phase"`
}

type ChangePhaseRequest struct {
	Phase string `json:"phase"`
}
