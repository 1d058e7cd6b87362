// Package access holds the authorization decision table. Every mutating
// request is checked here before any lifecycle logic runs. The table is
// data, not branching code, so it can be audited and tested row by row.
package access

import "github.com/salesgame/salesgame-api/internal/models"

// Action is a capability a principal may hold for some (role, phase) pair.
type Action string

const (
	ActionCreateTeam          Action = "create_team"
	ActionCreateUser          Action = "create_user"
	ActionChangePhase         Action = "change_phase"
	ActionManageScoringConfig Action = "manage_scoring_config"
	ActionViewAllTeams        Action = "view_all_teams"
	ActionViewAllProposals    Action = "view_all_proposals"
	ActionViewGeneralDash     Action = "view_general_dashboard"
	ActionValidateProposal    Action = "validate_proposal"
	ActionSubmitProposal      Action = "submit_proposal"
	ActionMarkSale            Action = "mark_sale"
	ActionValidateSale        Action = "validate_sale"
	ActionViewRealtimeRanking Action = "view_realtime_ranking"
	ActionManageScoringRules  Action = "manage_scoring_rules"
	ActionAccessWhenClosed    Action = "access_when_closed"
)

// rule grants an action to a set of roles, optionally restricted to a set
// of phases. A nil phase list means any phase.
type rule struct {
	action Action
	roles  []models.Role
	phases []models.Phase
}

var anyStaffRole = []models.Role{models.RoleAdmin, models.RoleManager, models.RoleBoard}

// rules is the authoritative permission table.
var rules = []rule{
	{action: ActionCreateTeam, roles: []models.Role{models.RoleAdmin}},
	{action: ActionCreateUser, roles: []models.Role{models.RoleAdmin}},
	{action: ActionChangePhase, roles: []models.Role{models.RoleAdmin}},
	{action: ActionManageScoringConfig, roles: []models.Role{models.RoleAdmin}},

	{action: ActionViewAllTeams, roles: anyStaffRole},
	{action: ActionViewAllProposals, roles: anyStaffRole},
	{action: ActionViewGeneralDash, roles: anyStaffRole},

	{action: ActionValidateProposal, roles: []models.Role{models.RoleAdmin, models.RoleManager},
		phases: []models.Phase{models.PhaseLiveEvent}},

	{action: ActionSubmitProposal, roles: []models.Role{models.RoleTeam},
		phases: []models.Phase{models.PhaseLiveEvent}},

	{action: ActionMarkSale, roles: []models.Role{models.RoleTeam},
		phases: []models.Phase{models.PhasePostEvent}},

	{action: ActionValidateSale, roles: []models.Role{models.RoleAdmin, models.RoleManager},
		phases: []models.Phase{models.PhasePreEvent, models.PhasePostEvent}},

	{action: ActionViewRealtimeRanking, roles: []models.Role{models.RoleAdmin, models.RoleBoard}},
	{action: ActionManageScoringRules, roles: []models.Role{models.RoleAdmin, models.RoleBoard}},

	// When the competition is closed, team principals lose access while
	// staff keep their dashboards.
	{action: ActionAccessWhenClosed, roles: anyStaffRole},
	{action: ActionAccessWhenClosed, roles: []models.Role{models.RoleTeam},
		phases: []models.Phase{models.PhasePreEvent, models.PhaseLiveEvent, models.PhasePostEvent}},
}

// Evaluate reports whether role may perform action during phase. A table
// miss is a plain false; the caller maps it to PermissionDenied or
// PhaseViolation.
func Evaluate(role models.Role, phase models.Phase, action Action) bool {
	for _, r := range rules {
		if r.action != action {
			continue
		}
		if !containsRole(r.roles, role) {
			continue
		}
		if r.phases == nil || containsPhase(r.phases, phase) {
			return true
		}
	}
	return false
}

// AllowedInSomePhase reports whether role holds action in at least one
// phase. It distinguishes PermissionDenied (never allowed) from
// PhaseViolation (allowed, but not now).
func AllowedInSomePhase(role models.Role, action Action) bool {
	for _, p := range models.AllPhases {
		if Evaluate(role, p, action) {
			return true
		}
	}
	return false
}

func containsRole(rs []models.Role, r models.Role) bool {
	for _, x := range rs {
		if x == r {
			return true
		}
	}
	return false
}

func containsPhase(ps []models.Phase, p models.Phase) bool {
	for _, x := range ps {
		if x == p {
			return true
		}
	}
	return false
}
