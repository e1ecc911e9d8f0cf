package attendance

import (
	"context"
	"time"
)

// Filter narrows Query results. A nil field means "any".
type Filter struct {
	Date  *time.Time
	Shift *Shift
}

// Repository maintains the ledger. DeleteCohort removes every record for the
// given calendar day, shift and worker set so a batch resubmission replaces
// rather than duplicates; it is expected to run in the same transaction as
// the following InsertBatch.
type Repository interface {
	DeleteCohort(ctx context.Context, day time.Time, shift Shift, workerRefs []string) error
	InsertBatch(ctx context.Context, records []Record) ([]Record, error)
	Query(ctx context.Context, filter Filter) ([]Record, error)
}
