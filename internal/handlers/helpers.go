package handlers

import (
	"net/http"

	"github.com/m1z23r/drift/pkg/drift"
	"github.com/salesgame/salesgame-api/internal/apperr"
	"github.com/salesgame/salesgame-api/internal/models"
	"github.com/salesgame/salesgame-api/pkg/dto"
)

// respondError maps the business error taxonomy onto HTTP statuses. Plain
// errors are treated as internal failures and not echoed to the client.
func respondError(c *drift.Context, err error) {
	switch apperr.KindOf(err) {
	case apperr.KindValidationError:
		c.BadRequest(err.Error())
	case apperr.KindPermissionDenied, apperr.KindPhaseViolation:
		c.Forbidden(err.Error())
	case apperr.KindNotFound:
		c.NotFound(err.Error())
	case apperr.KindInvalidTransition, apperr.KindConfigConflict:
		_ = c.JSON(http.StatusConflict, map[string]string{"error": err.Error()})
	default:
		c.InternalServerError("internal error")
	}
}

func userResponse(user *models.User) dto.UserResponse {
	return dto.UserResponse{
		ID:       user.ID,
		Username: user.Username,
		Name:     user.Name,
		Role:     string(user.Role),
		TeamID:   user.TeamID,
		Active:   user.Active,
	}
}

func teamResponse(team *models.Team) dto.TeamResponse {
	return dto.TeamResponse{
		ID:     team.ID,
		Name:   team.Name,
		Code:   team.Code,
		Active: team.Active,
	}
}

func bonusFromPayload(p dto.BonusFlagsPayload) models.BonusFlags {
	return models.BonusFlags{
		WinesWorldLine:   p.WinesWorldLine,
		WinesSingleLot:   p.WinesSingleLot,
		SparklingVintage: p.SparklingVintage,
		SparklingPremium: p.SparklingPremium,
		Acceleration:     p.Acceleration,
	}
}
