package persistence

import (
	"database/sql"
	"time"

	"github.com/go-faster/errors"
	"github.com/google/uuid"

	"github.com/peopledesk/backoffice/modules/hrm/domain/aggregates/staff"
	"github.com/peopledesk/backoffice/modules/hrm/domain/aggregates/task"
	"github.com/peopledesk/backoffice/modules/hrm/domain/entities/attendance"
	"github.com/peopledesk/backoffice/modules/hrm/infrastructure/persistence/models"
)

func toDomainStaff(m models.Staff) (staff.Staff, error) {
	role, err := staff.NewRole(m.Role)
	if err != nil {
		return staff.Staff{}, errors.Wrap(err, "failed to map staff row")
	}
	return staff.Hydrate(
		m.ID,
		m.TenantID,
		role,
		m.DisplayName,
		m.LoginHandle,
		m.Email,
		m.CredentialHash,
		nullUUIDToPtr(m.SupervisorID),
		nullUUIDToPtr(m.CreatedByID),
		m.CreatedAt,
		m.UpdatedAt,
	), nil
}

func toDomainTask(m models.Task) (task.Task, error) {
	status := task.Status(m.Status)
	if !status.IsValid() {
		return task.Task{}, errors.Errorf("invalid task status in storage: %q", m.Status)
	}
	return task.Hydrate(
		m.ID,
		m.TenantID,
		m.Title,
		m.Description,
		m.AssigneeID,
		m.IssuerID,
		status,
		nullStringToPtr(m.CompletionArtifactRef),
		m.CreatedAt,
		m.UpdatedAt,
	), nil
}

func toDomainAttendanceRecord(m models.AttendanceRecord) (attendance.Record, error) {
	shift, err := attendance.NewShift(m.Shift)
	if err != nil {
		return attendance.Record{}, errors.Wrap(err, "failed to map attendance row")
	}
	status, err := attendance.NewStatus(m.Status)
	if err != nil {
		return attendance.Record{}, errors.Wrap(err, "failed to map attendance row")
	}
	return attendance.Hydrate(
		m.ID,
		m.TenantID,
		m.WorkerRef,
		m.WorkerName,
		m.Date,
		shift,
		status,
		nullTimeToPtr(m.CheckIn),
		nullTimeToPtr(m.CheckOut),
		m.CreatedAt,
	), nil
}

func nullUUIDToPtr(v uuid.NullUUID) *uuid.UUID {
	if !v.Valid {
		return nil
	}
	id := v.UUID
	return &id
}

func nullStringToPtr(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	s := v.String
	return &s
}

func nullTimeToPtr(v sql.NullTime) *time.Time {
	if !v.Valid {
		return nil
	}
	t := v.Time
	return &t
}

func ptrToNullString(v *string) sql.NullString {
	if v == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *v, Valid: true}
}

func ptrToNullTime(v *time.Time) sql.NullTime {
	if v == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *v, Valid: true}
}

func ptrToNullUUID(v *uuid.UUID) uuid.NullUUID {
	if v == nil {
		return uuid.NullUUID{}
	}
	return uuid.NullUUID{UUID: *v, Valid: true}
}
