package services

import (
	"context"
	"time"

	"github.com/peopledesk/backoffice/modules/hrm/domain/entities/attendance"
	"github.com/peopledesk/backoffice/pkg/composables"
	"github.com/peopledesk/backoffice/pkg/eventbus"
	"github.com/peopledesk/backoffice/pkg/serrors"
)

// SkippedEntry reports one batch row that failed validation and was left out
// of the replace set.
type SkippedEntry struct {
	WorkerRef string                   `json:"worker_ref"`
	Fields    serrors.ValidationErrors `json:"fields"`
}

// SubmitResult is the outcome of one batch submission: the rows now on the
// ledger plus the rows the validator dropped.
type SubmitResult struct {
	Inserted []attendance.Record
	Skipped  []SkippedEntry
}

type AttendanceService struct {
	repo      attendance.Repository
	publisher eventbus.EventBus
}

func NewAttendanceService(repo attendance.Repository, publisher eventbus.EventBus) *AttendanceService {
	return &AttendanceService{
		repo:      repo,
		publisher: publisher,
	}
}

// SubmitBatch replaces the (date, shift) cohort covered by the batch: every
// existing record for a worker named in the batch is deleted and the new rows
// inserted, inside one transaction. Rows that fail validation are skipped and
// reported, not fatal; a worker appearing twice keeps the last occurrence.
func (s *AttendanceService) SubmitBatch(ctx context.Context, date time.Time, shift attendance.Shift, entries []attendance.EntryDTO) (SubmitResult, error) {
	actor, err := authorize(ctx, OpAttendanceSubmit)
	if err != nil {
		return SubmitResult{}, err
	}
	if !shift.IsValid() {
		return SubmitResult{}, serrors.NewValidation("INVALID_SHIFT", "shift must be one of: morning, evening, night")
	}
	if len(entries) == 0 {
		return SubmitResult{}, serrors.NewValidation("EMPTY_BATCH", "records must not be empty")
	}

	day := attendance.Day(date)

	records := make([]attendance.Record, 0, len(entries))
	indexByRef := make(map[string]int, len(entries))
	skipped := make([]SkippedEntry, 0)
	for i := range entries {
		entry := entries[i]
		if fieldErrs, ok := entry.Ok(); !ok {
			skipped = append(skipped, SkippedEntry{WorkerRef: entry.WorkerRef, Fields: fieldErrs})
			continue
		}
		status, err := attendance.NewStatus(entry.Status)
		if err != nil {
			skipped = append(skipped, SkippedEntry{
				WorkerRef: entry.WorkerRef,
				Fields:    serrors.ValidationErrors{"status": err.Error()},
			})
			continue
		}
		record := attendance.New(actor.TenantID, entry.WorkerRef, entry.WorkerName, day, shift, status, entry.CheckIn, entry.CheckOut)
		if at, seen := indexByRef[entry.WorkerRef]; seen {
			records[at] = record
			continue
		}
		indexByRef[entry.WorkerRef] = len(records)
		records = append(records, record)
	}
	if len(records) == 0 {
		return SubmitResult{Inserted: []attendance.Record{}, Skipped: skipped}, nil
	}

	workerRefs := make([]string, 0, len(records))
	for _, r := range records {
		workerRefs = append(workerRefs, r.WorkerRef())
	}

	inserted, err := composables.InTenantTxResult(ctx, func(txCtx context.Context) ([]attendance.Record, error) {
		if err := s.repo.DeleteCohort(txCtx, day, shift, workerRefs); err != nil {
			return nil, serrors.NewStorage("failed to replace attendance cohort", err)
		}
		return s.repo.InsertBatch(txCtx, records)
	})
	if err != nil {
		return SubmitResult{}, ensureClassified(err, "failed to submit attendance batch")
	}

	s.publisher.Publish(attendance.NewSubmittedEvent(actor.TenantID, day, shift, inserted))
	return SubmitResult{Inserted: inserted, Skipped: skipped}, nil
}

// Query returns ledger records matching the optional date and shift filters.
func (s *AttendanceService) Query(ctx context.Context, filter attendance.Filter) ([]attendance.Record, error) {
	if _, err := authorize(ctx, OpAttendanceQuery); err != nil {
		return nil, err
	}
	records, err := s.repo.Query(ctx, filter)
	if err != nil {
		return nil, ensureClassified(err, "failed to query attendance records")
	}
	return records, nil
}
