package models

import (
	"time"

	"github.com/google/uuid"
)

// Role is the access level of an authenticated principal. Exactly one role
// per user.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleManager Role = "manager"
	RoleBoard   Role = "board"
	RoleTeam    Role = "team"
)

func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleAdmin, RoleManager, RoleBoard, RoleTeam:
		return Role(s), true
	}
	return "", false
}

type User struct {
	ID           uuid.UUID  `json:"id"`
	Username     string     `json:"username"`
	Name         string     `json:"name"`
	PasswordHash string     `json:"-"`
	Role         Role       `json:"role"`
	TeamID       *uuid.UUID `json:"team_id,omitempty"`
	Active       bool       `json:"active"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}
