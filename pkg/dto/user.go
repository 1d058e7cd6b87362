package dto

import "github.com/google/uuid"

type CreateUserRequest struct {
	Username string     `json:"username"`
	Name     string     `json:"name"`
	Password string     `json:"password"`
	Role     string     `json:"role"`
	TeamID   *uuid.UUID `json:"team_id,omitempty"`
}

type UserResponse struct {
	ID       uuid.UUID  `json:"id"`
	Username string     `json:"username"`
	Name     string     `json:"name"`
	Role     string     `json:"role"`
	TeamID   *uuid.UUID `json:"team_id,omitempty"`
	Active   bool       `json:"active"`
}
