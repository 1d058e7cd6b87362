package middleware

import (
	"strings"

	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"
	"github.com/salesgame/salesgame-api/internal/models"
	"github.com/salesgame/salesgame-api/internal/services"
)

const (
	UserIDKey   = "user_id"
	UsernameKey = "username"
	RoleKey     = "role"
	TeamIDKey   = "team_id"
)

func Auth(jwtService *services.JWTService) drift.HandlerFunc {
	return func(c *drift.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Unauthorized("missing authorization header")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			c.Unauthorized("invalid authorization header format")
			return
		}

		claims, err := jwtService.ValidateAccessToken(parts[1])
		if err != nil {
			c.Unauthorized("invalid or expired token")
			return
		}

		c.Set(UserIDKey, claims.UserID)
		c.Set(UsernameKey, claims.Username)
		c.Set(RoleKey, claims.Role)
		if claims.TeamID != nil {
			c.Set(TeamIDKey, *claims.TeamID)
		}

		c.Next()
	}
}

func GetUserID(c *drift.Context) uuid.UUID {
	if id, ok := c.Get(UserIDKey); ok {
		if uid, ok := id.(uuid.UUID); ok {
			return uid
		}
	}
	return uuid.Nil
}

func GetRole(c *drift.Context) models.Role {
	if role, ok := c.Get(RoleKey); ok {
		if r, ok := role.(models.Role); ok {
			return r
		}
	}
	return ""
}

func GetTeamID(c *drift.Context) *uuid.UUID {
	if id, ok := c.Get(TeamIDKey); ok {
		if tid, ok := id.(uuid.UUID); ok {
			return &tid
		}
	}
	return nil
}

// Principal rebuilds the authenticated user from the token claims. The
// services only consult ID, Role and TeamID for authorization.
func Principal(c *drift.Context) *models.User {
	userID := GetUserID(c)
	if userID == uuid.Nil {
		return nil
	}
	username := ""
	if v, ok := c.Get(UsernameKey); ok {
		if s, ok := v.(string); ok {
			username = s
		}
	}
	return &models.User{
		ID:       userID,
		Username: username,
		Role:     GetRole(c),
		TeamID:   GetTeamID(c),
	}
}
