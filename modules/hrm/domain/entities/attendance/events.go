package attendance

import (
	"time"

	"github.com/google/uuid"
)

type SubmittedEvent struct {
	TenantID uuid.UUID
	Date     time.Time
	Shift    Shift
	Inserted []Record
}

func NewSubmittedEvent(tenantID uuid.UUID, date time.Time, shift Shift, inserted []Record) *SubmittedEvent {
	return &SubmittedEvent{TenantID: tenantID, Date: date, Shift: shift, Inserted: inserted}
}
