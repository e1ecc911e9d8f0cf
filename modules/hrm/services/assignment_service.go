package services

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/google/uuid"

	"github.com/peopledesk/backoffice/modules/hrm/domain/aggregates/staff"
	"github.com/peopledesk/backoffice/modules/hrm/infrastructure/persistence"
	"github.com/peopledesk/backoffice/pkg/composables"
	"github.com/peopledesk/backoffice/pkg/eventbus"
	"github.com/peopledesk/backoffice/pkg/serrors"
)

// AssignmentResult reports per-id outcomes of a bulk supervision change.
// Ineligible ids are skipped, not errored, so callers can detect what the
// filter dropped.
type AssignmentResult struct {
	UpdatedIDs    []uuid.UUID `json:"updated_ids"`
	SkippedIDs    []uuid.UUID `json:"skipped_ids"`
	ModifiedCount int         `json:"modified_count"`
}

// AssignmentService is the sole writer of the supervised-by relation.
type AssignmentService struct {
	repo      staff.Repository
	publisher eventbus.EventBus
}

func NewAssignmentService(repo staff.Repository, publisher eventbus.EventBus) *AssignmentService {
	return &AssignmentService{
		repo:      repo,
		publisher: publisher,
	}
}

// Assign points each eligible worker at the supervisor. The supervisor must
// be a manager in the caller's tenant; ids that are not in-tenant workers are
// filtered out of the update set.
func (s *AssignmentService) Assign(ctx context.Context, supervisorID uuid.UUID, workerIDs []uuid.UUID) (AssignmentResult, error) {
	actor, err := authorize(ctx, OpAssignmentAssign)
	if err != nil {
		return AssignmentResult{}, err
	}
	if supervisorID == uuid.Nil {
		return AssignmentResult{}, serrors.NewValidation("MISSING_SUPERVISOR", "supervisor id is required")
	}
	if len(workerIDs) == 0 {
		return AssignmentResult{}, serrors.NewValidation("EMPTY_WORKER_SET", "worker ids must not be empty")
	}

	result, err := composables.InTenantTxResult(ctx, func(txCtx context.Context) (AssignmentResult, error) {
		supervisor, err := s.repo.GetByID(txCtx, supervisorID)
		if err != nil {
			if errors.Is(err, persistence.ErrStaffNotFound) {
				return AssignmentResult{}, serrors.NewNotFound("SUPERVISOR_NOT_FOUND", "supervisor not found or not eligible")
			}
			return AssignmentResult{}, serrors.NewStorage("failed to load supervisor", err)
		}
		if supervisor.Role() != staff.RoleManager {
			return AssignmentResult{}, serrors.NewPolicy("SUPERVISOR_NOT_ELIGIBLE", "supervisor not found or not eligible")
		}

		updated, err := s.repo.AssignSupervisor(txCtx, supervisorID, workerIDs)
		if err != nil {
			return AssignmentResult{}, serrors.NewStorage("failed to assign supervisor", err)
		}
		return buildAssignmentResult(workerIDs, updated), nil
	})
	if err != nil {
		return AssignmentResult{}, ensureClassified(err, "failed to assign supervisor")
	}

	if len(result.UpdatedIDs) > 0 {
		s.publisher.Publish(staff.NewAssignedEvent(actor.TenantID, supervisorID, result.UpdatedIDs))
	}
	return result, nil
}

// Unassign clears the supervisor on each eligible worker.
func (s *AssignmentService) Unassign(ctx context.Context, workerIDs []uuid.UUID) (AssignmentResult, error) {
	actor, err := authorize(ctx, OpAssignmentUnassign)
	if err != nil {
		return AssignmentResult{}, err
	}
	if len(workerIDs) == 0 {
		return AssignmentResult{}, serrors.NewValidation("EMPTY_WORKER_SET", "worker ids must not be empty")
	}

	result, err := composables.InTenantTxResult(ctx, func(txCtx context.Context) (AssignmentResult, error) {
		updated, err := s.repo.ClearSupervisor(txCtx, workerIDs)
		if err != nil {
			return AssignmentResult{}, serrors.NewStorage("failed to clear supervisor", err)
		}
		return buildAssignmentResult(workerIDs, updated), nil
	})
	if err != nil {
		return AssignmentResult{}, ensureClassified(err, "failed to clear supervisor")
	}

	if len(result.UpdatedIDs) > 0 {
		s.publisher.Publish(staff.NewUnassignedEvent(actor.TenantID, result.UpdatedIDs))
	}
	return result, nil
}

// UnassignOne clears the supervisor on a single worker and returns the
// updated account. Unlike the bulk variant, an ineligible target is an error.
func (s *AssignmentService) UnassignOne(ctx context.Context, workerID uuid.UUID) (staff.Staff, error) {
	actor, err := authorize(ctx, OpAssignmentUnassignOne)
	if err != nil {
		return staff.Staff{}, err
	}

	updated, err := composables.InTenantTxResult(ctx, func(txCtx context.Context) (staff.Staff, error) {
		ids, err := s.repo.ClearSupervisor(txCtx, []uuid.UUID{workerID})
		if err != nil {
			return staff.Staff{}, serrors.NewStorage("failed to clear supervisor", err)
		}
		if len(ids) == 0 {
			return staff.Staff{}, serrors.NewNotFound("WORKER_NOT_FOUND", "worker not found or not eligible")
		}
		return s.repo.GetByID(txCtx, workerID)
	})
	if err != nil {
		return staff.Staff{}, ensureClassified(err, "failed to clear supervisor")
	}

	s.publisher.Publish(staff.NewUnassignedEvent(actor.TenantID, []uuid.UUID{workerID}))
	return updated, nil
}

func buildAssignmentResult(requested, updated []uuid.UUID) AssignmentResult {
	updatedSet := make(map[uuid.UUID]struct{}, len(updated))
	for _, id := range updated {
		updatedSet[id] = struct{}{}
	}
	skipped := make([]uuid.UUID, 0)
	for _, id := range requested {
		if _, ok := updatedSet[id]; !ok {
			skipped = append(skipped, id)
		}
	}
	return AssignmentResult{
		UpdatedIDs:    updated,
		SkippedIDs:    skipped,
		ModifiedCount: len(updated),
	}
}
