package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/salesgame/salesgame-api/internal/apperr"
	"github.com/salesgame/salesgame-api/internal/database"
	"github.com/salesgame/salesgame-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupPhaseService(t *testing.T) (*PhaseService, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(func() { mock.Close() })

	db := &database.DB{Pool: mock}
	return NewPhaseService(db), mock
}

func phaseRows(phase models.Phase) *pgxmock.Rows {
	return pgxmock.NewRows([]string{"phase"}).AddRow(string(phase))
}

func adminUser() *models.User {
	return &models.User{ID: uuid.New(), Username: "admin", Role: models.RoleAdmin}
}

func teamUser(teamID uuid.UUID) *models.User {
	return &models.User{ID: uuid.New(), Username: "team-user", Role: models.RoleTeam, TeamID: &teamID}
}

func TestPhaseService_Current(t *testing.T) {
	svc, mock := setupPhaseService(t)

	mock.ExpectQuery(`SELECT phase FROM system_status`).
		WillReturnRows(phaseRows(models.PhaseLiveEvent))

	phase, err := svc.Current(context.Background())

	require.NoError(t, err)
	assert.Equal(t, models.PhaseLiveEvent, phase)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPhaseService_Transition_AdminSucceeds(t *testing.T) {
	svc, mock := setupPhaseService(t)
	actor := adminUser()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT phase FROM system_status WHERE id = 1 FOR UPDATE`).
		WillReturnRows(phaseRows(models.PhasePreEvent))
	mock.ExpectExec(`UPDATE system_status SET phase`).
		WithArgs(models.PhaseLiveEvent, actor.ID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectCommit()

	phase, err := svc.Transition(context.Background(), actor, models.PhaseLiveEvent)

	require.NoError(t, err)
	assert.Equal(t, models.PhaseLiveEvent, phase)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPhaseService_Transition_NonAdminDenied(t *testing.T) {
	svc, mock := setupPhaseService(t)
	actor := &models.User{ID: uuid.New(), Role: models.RoleManager}

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT phase FROM system_status WHERE id = 1 FOR UPDATE`).
		WillReturnRows(phaseRows(models.PhasePreEvent))
	mock.ExpectRollback()

	_, err := svc.Transition(context.Background(), actor, models.PhaseLiveEvent)

	assert.True(t, apperr.IsKind(err, apperr.KindPermissionDenied))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPhaseService_Transition_UnknownPhase(t *testing.T) {
	svc, mock := setupPhaseService(t)

	_, err := svc.Transition(context.Background(), adminUser(), models.Phase("halftime"))

	assert.True(t, apperr.IsKind(err, apperr.KindValidationError))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPhaseService_Transition_BackwardsIsAllowed(t *testing.T) {
	svc, mock := setupPhaseService(t)
	actor := adminUser()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT phase FROM system_status WHERE id = 1 FOR UPDATE`).
		WillReturnRows(phaseRows(models.PhaseClosed))
	mock.ExpectExec(`UPDATE system_status SET phase`).
		WithArgs(models.PhasePreEvent, actor.ID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectCommit()

	phase, err := svc.Transition(context.Background(), actor, models.PhasePreEvent)

	require.NoError(t, err)
	assert.Equal(t, models.PhasePreEvent, phase)
	assert.NoError(t, mock.ExpectationsWereMet())
}
