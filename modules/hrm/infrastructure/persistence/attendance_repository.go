package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/go-faster/errors"

	"github.com/peopledesk/backoffice/modules/hrm/domain/entities/attendance"
	"github.com/peopledesk/backoffice/modules/hrm/infrastructure/persistence/models"
	"github.com/peopledesk/backoffice/pkg/composables"
	"github.com/peopledesk/backoffice/pkg/repo"
)

const (
	attendanceFindQuery = `
        SELECT
            ar.id,
            ar.tenant_id,
            ar.worker_ref,
            ar.worker_name,
            ar.date,
            ar.shift,
            ar.status,
            ar.check_in,
            ar.check_out,
            ar.created_at
        FROM attendance_records ar`

	attendanceDeleteCohortQuery = `
        DELETE FROM attendance_records
        WHERE tenant_id = $1 AND date = $2 AND shift = $3 AND worker_ref = ANY($4)`

	attendanceInsertPrefix = `
        INSERT INTO attendance_records (
            tenant_id, worker_ref, worker_name, date, shift, status, check_in, check_out
        ) VALUES`
)

type PgAttendanceRepository struct{}

func NewAttendanceRepository() attendance.Repository {
	return &PgAttendanceRepository{}
}

func (g *PgAttendanceRepository) DeleteCohort(ctx context.Context, day time.Time, shift attendance.Shift, workerRefs []string) error {
	if len(workerRefs) == 0 {
		return nil
	}

	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to get tenant from context")
	}

	tx, err := composables.UseTx(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to get transaction")
	}

	_, err = tx.Exec(ctx, attendanceDeleteCohortQuery, tenantID, attendance.Day(day), string(shift), workerRefs)
	if err != nil {
		return errors.Wrap(err, "failed to delete attendance cohort")
	}
	return nil
}

func (g *PgAttendanceRepository) InsertBatch(ctx context.Context, records []attendance.Record) ([]attendance.Record, error) {
	if len(records) == 0 {
		return []attendance.Record{}, nil
	}

	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get tenant from context")
	}

	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get transaction")
	}

	values := make([][]any, 0, len(records))
	for _, r := range records {
		values = append(values, []any{
			tenantID,
			r.WorkerRef(),
			r.WorkerName(),
			attendance.Day(r.Date()),
			string(r.Shift()),
			string(r.Status()),
			ptrToNullTime(r.CheckIn()),
			ptrToNullTime(r.CheckOut()),
		})
	}

	query, args := repo.BatchInsertQueryN(attendanceInsertPrefix, values)
	query += " RETURNING id, tenant_id, worker_ref, worker_name, date, shift, status, check_in, check_out, created_at"

	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to insert attendance records")
	}
	defer rows.Close()

	inserted := make([]attendance.Record, 0, len(records))
	for rows.Next() {
		var m models.AttendanceRecord
		if err := rows.Scan(
			&m.ID,
			&m.TenantID,
			&m.WorkerRef,
			&m.WorkerName,
			&m.Date,
			&m.Shift,
			&m.Status,
			&m.CheckIn,
			&m.CheckOut,
			&m.CreatedAt,
		); err != nil {
			return nil, errors.Wrap(err, "failed to scan attendance row")
		}
		record, err := toDomainAttendanceRecord(m)
		if err != nil {
			return nil, err
		}
		inserted = append(inserted, record)
	}
	return inserted, rows.Err()
}

func (g *PgAttendanceRepository) Query(ctx context.Context, filter attendance.Filter) ([]attendance.Record, error) {
	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get tenant from context")
	}

	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get transaction")
	}

	conditions := []string{"ar.tenant_id = $1"}
	args := []any{tenantID}
	if filter.Date != nil {
		args = append(args, attendance.Day(*filter.Date))
		conditions = append(conditions, fmt.Sprintf("ar.date = $%d", len(args)))
	}
	if filter.Shift != nil {
		args = append(args, string(*filter.Shift))
		conditions = append(conditions, fmt.Sprintf("ar.shift = $%d", len(args)))
	}

	query := repo.Join(
		attendanceFindQuery,
		repo.JoinWhere(conditions...),
		"ORDER BY ar.date DESC, ar.shift, ar.worker_name",
	)

	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query attendance records")
	}
	defer rows.Close()

	records := make([]attendance.Record, 0)
	for rows.Next() {
		var m models.AttendanceRecord
		if err := rows.Scan(
			&m.ID,
			&m.TenantID,
			&m.WorkerRef,
			&m.WorkerName,
			&m.Date,
			&m.Shift,
			&m.Status,
			&m.CheckIn,
			&m.CheckOut,
			&m.CreatedAt,
		); err != nil {
			return nil, errors.Wrap(err, "failed to scan attendance row")
		}
		record, err := toDomainAttendanceRecord(m)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, rows.Err()
}
