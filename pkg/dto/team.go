package dto

import "github.com/google/uuid"

type CreateTeamRequest struct {
	Name string `json:"name"`
	Code string `json:"code"`
}

type UpdateTeamRequest struct {
	Name   string `json:"name"`
	Active *bool  `json:"active,omitempty"`
}

type TeamResponse struct {
	ID     uuid.UUID `json:"id"`
	Name   string    `json:"name"`
	Code   string    `json:"code"`
	Active bool      `json:"active"`
}
