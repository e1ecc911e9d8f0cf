package attendance

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type Shift string

const (
	ShiftMorning Shift = "morning"
	ShiftEvening Shift = "evening"
	ShiftNight   Shift = "night"
)

func NewShift(v string) (Shift, error) {
	shift := Shift(v)
	if !shift.IsValid() {
		return "", fmt.Errorf("invalid shift: %q", v)
	}
	return shift, nil
}

func (s Shift) IsValid() bool {
	switch s {
	case ShiftMorning, ShiftEvening, ShiftNight:
		return true
	}
	return false
}

type Status string

const (
	StatusPresent Status = "present"
	StatusAbsent  Status = "absent"
	StatusLeave   Status = "leave"
)

func NewStatus(v string) (Status, error) {
	status := Status(v)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid attendance status: %q", v)
	}
	return status, nil
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPresent, StatusAbsent, StatusLeave:
		return true
	}
	return false
}

// Record is one attendance status for a worker on a calendar day and shift.
// At most one record exists per (workerRef, date, shift) at any time; the
// ledger's replace-batch operation maintains that.
type Record struct {
	id         uuid.UUID
	tenantID   uuid.UUID
	workerRef  string
	workerName string
	date       time.Time
	shift      Shift
	status     Status
	checkIn    *time.Time
	checkOut   *time.Time
	createdAt  time.Time
}

func New(tenantID uuid.UUID, workerRef, workerName string, date time.Time, shift Shift, status Status, checkIn, checkOut *time.Time) Record {
	return Record{
		tenantID:   tenantID,
		workerRef:  workerRef,
		workerName: workerName,
		date:       Day(date),
		shift:      shift,
		status:     status,
		checkIn:    checkIn,
		checkOut:   checkOut,
	}
}

func Hydrate(
	id uuid.UUID,
	tenantID uuid.UUID,
	workerRef string,
	workerName string,
	date time.Time,
	shift Shift,
	status Status,
	checkIn *time.Time,
	checkOut *time.Time,
	createdAt time.Time,
) Record {
	return Record{
		id:         id,
		tenantID:   tenantID,
		workerRef:  workerRef,
		workerName: workerName,
		date:       date,
		shift:      shift,
		status:     status,
		checkIn:    checkIn,
		checkOut:   checkOut,
		createdAt:  createdAt,
	}
}

func (r Record) ID() uuid.UUID        { return r.id }
func (r Record) TenantID() uuid.UUID  { return r.tenantID }
func (r Record) WorkerRef() string    { return r.workerRef }
func (r Record) WorkerName() string   { return r.workerName }
func (r Record) Date() time.Time      { return r.date }
func (r Record) Shift() Shift         { return r.shift }
func (r Record) Status() Status       { return r.status }
func (r Record) CheckIn() *time.Time  { return r.checkIn }
func (r Record) CheckOut() *time.Time { return r.checkOut }
func (r Record) CreatedAt() time.Time { return r.createdAt }

// Day truncates t to its calendar day in UTC. Time of day is irrelevant to
// the ledger identity.
func Day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
