package persistence

import (
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/google/uuid"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/require"

	"github.com/peopledesk/backoffice/modules/hrm/domain/entities/attendance"
	"github.com/peopledesk/backoffice/pkg/repo"
)

var attendanceColumns = []string{
	"id", "tenant_id", "worker_ref", "worker_name", "date", "shift",
	"status", "check_in", "check_out", "created_at",
}

func TestPgAttendanceRepository_DeleteCohort(t *testing.T) {
	tenantID := uuid.New()
	day := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	ctx, mock := mockContext(t, tenantID)

	mock.ExpectExec(regexp.QuoteMeta(attendanceDeleteCohortQuery)).
		WithArgs(tenantID, day, "morning", []string{"EMP001", "EMP002"}).
		WillReturnResult(pgxmock.NewResult("DELETE", 2))

	repository := NewAttendanceRepository()
	err := repository.DeleteCohort(ctx, day, attendance.ShiftMorning, []string{"EMP001", "EMP002"})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPgAttendanceRepository_DeleteCohort_EmptySet(t *testing.T) {
	tenantID := uuid.New()
	ctx, mock := mockContext(t, tenantID)

	repository := NewAttendanceRepository()
	err := repository.DeleteCohort(ctx, time.Now(), attendance.ShiftMorning, nil)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPgAttendanceRepository_InsertBatch(t *testing.T) {
	tenantID := uuid.New()
	day := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	ctx, mock := mockContext(t, tenantID)

	records := []attendance.Record{
		attendance.New(tenantID, "EMP001", "Alice", day, attendance.ShiftMorning, attendance.StatusPresent, nil, nil),
		attendance.New(tenantID, "EMP002", "Bob", day, attendance.ShiftMorning, attendance.StatusLeave, nil, nil),
	}

	values := [][]any{
		{tenantID, "EMP001", "Alice", day, "morning", "present", sql.NullTime{}, sql.NullTime{}},
		{tenantID, "EMP002", "Bob", day, "morning", "leave", sql.NullTime{}, sql.NullTime{}},
	}
	query, args := repo.BatchInsertQueryN(attendanceInsertPrefix, values)
	query += " RETURNING id, tenant_id, worker_ref, worker_name, date, shift, status, check_in, check_out, created_at"

	mock.ExpectQuery(regexp.QuoteMeta(query)).
		WithArgs(args...).
		WillReturnRows(pgxmock.NewRows(attendanceColumns).
			AddRow(uuid.New(), tenantID, "EMP001", "Alice", day, "morning", "present", sql.NullTime{}, sql.NullTime{}, time.Now()).
			AddRow(uuid.New(), tenantID, "EMP002", "Bob", day, "morning", "leave", sql.NullTime{}, sql.NullTime{}, time.Now()))

	repository := NewAttendanceRepository()
	inserted, err := repository.InsertBatch(ctx, records)
	require.NoError(t, err)
	require.Len(t, inserted, 2)
	require.Equal(t, attendance.StatusLeave, inserted[1].Status())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPgAttendanceRepository_Query_Filtered(t *testing.T) {
	tenantID := uuid.New()
	day := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	ctx, mock := mockContext(t, tenantID)

	query := repo.Join(
		attendanceFindQuery,
		repo.JoinWhere("ar.tenant_id = $1", "ar.date = $2", "ar.shift = $3"),
		"ORDER BY ar.date DESC, ar.shift, ar.worker_name",
	)
	mock.ExpectQuery(regexp.QuoteMeta(query)).
		WithArgs(tenantID, day, "morning").
		WillReturnRows(pgxmock.NewRows(attendanceColumns).
			AddRow(uuid.New(), tenantID, "EMP001", "Alice", day, "morning", "absent", sql.NullTime{}, sql.NullTime{}, time.Now()))

	shift := attendance.ShiftMorning
	repository := NewAttendanceRepository()
	records, err := repository.Query(ctx, attendance.Filter{Date: &day, Shift: &shift})
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.Equal(t, attendance.StatusAbsent, records[0].Status())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPgAttendanceRepository_Query_Unfiltered(t *testing.T) {
	tenantID := uuid.New()
	ctx, mock := mockContext(t, tenantID)

	query := repo.Join(
		attendanceFindQuery,
		repo.JoinWhere("ar.tenant_id = $1"),
		"ORDER BY ar.date DESC, ar.shift, ar.worker_name",
	)
	mock.ExpectQuery(regexp.QuoteMeta(query)).
		WithArgs(tenantID).
		WillReturnRows(pgxmock.NewRows(attendanceColumns))

	repository := NewAttendanceRepository()
	records, err := repository.Query(ctx, attendance.Filter{})
	require.NoError(t, err)
	require.Empty(t, records)
	require.NoError(t, mock.ExpectationsWereMet())
}
