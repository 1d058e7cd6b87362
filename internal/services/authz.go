package services

import (
	"github.com/salesgame/salesgame-api/internal/access"
	"github.com/salesgame/salesgame-api/internal/apperr"
	"github.com/salesgame/salesgame-api/internal/models"
)

// authorize maps an AccessPolicy miss onto the error taxonomy: a role that
// holds the action in some other phase gets PhaseViolation, a role that
// never holds it gets PermissionDenied.
func authorize(role models.Role, phase models.Phase, action access.Action) error {
	if access.Evaluate(role, phase, action) {
		return nil
	}
	if access.AllowedInSomePhase(role, action) {
		return apperr.New(apperr.KindPhaseViolation, "%s is not permitted during phase %s", action, phase)
	}
	return apperr.New(apperr.KindPermissionDenied, "role %s may not %s", role, action)
}
