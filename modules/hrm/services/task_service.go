package services

import (
	"context"
	"strings"

	"github.com/go-faster/errors"
	"github.com/google/uuid"

	"github.com/peopledesk/backoffice/modules/hrm/domain/aggregates/staff"
	"github.com/peopledesk/backoffice/modules/hrm/domain/aggregates/task"
	"github.com/peopledesk/backoffice/modules/hrm/infrastructure/persistence"
	"github.com/peopledesk/backoffice/pkg/composables"
	"github.com/peopledesk/backoffice/pkg/eventbus"
	"github.com/peopledesk/backoffice/pkg/serrors"
)

type TaskService struct {
	repo      task.Repository
	staffRepo staff.Repository
	publisher eventbus.EventBus
}

func NewTaskService(repo task.Repository, staffRepo staff.Repository, publisher eventbus.EventBus) *TaskService {
	return &TaskService{
		repo:      repo,
		staffRepo: staffRepo,
		publisher: publisher,
	}
}

// Create issues a new pending task from the caller to an in-tenant worker.
func (s *TaskService) Create(ctx context.Context, dto *task.CreateDTO) (task.Task, error) {
	actor, err := authorize(ctx, OpTaskCreate)
	if err != nil {
		return task.Task{}, err
	}

	if fieldErrs, ok := dto.Ok(); !ok {
		return task.Task{}, serrors.NewValidation("INVALID_PAYLOAD", "invalid task payload").WithMeta(fieldErrs)
	}
	assigneeID, err := uuid.Parse(dto.AssigneeID)
	if err != nil {
		return task.Task{}, serrors.NewValidation("INVALID_ASSIGNEE", "assignee id must be a uuid")
	}

	created, err := composables.InTenantTxResult(ctx, func(txCtx context.Context) (task.Task, error) {
		assignee, err := s.staffRepo.GetByID(txCtx, assigneeID)
		if err != nil {
			if errors.Is(err, persistence.ErrStaffNotFound) {
				return task.Task{}, serrors.NewNotFound("ASSIGNEE_NOT_FOUND", "assignee not found or not eligible")
			}
			return task.Task{}, serrors.NewStorage("failed to load assignee", err)
		}
		if !assignee.Role().IsWorker() {
			return task.Task{}, serrors.NewNotFound("ASSIGNEE_NOT_FOUND", "assignee not found or not eligible")
		}

		entity := task.New(actor.TenantID, actor.ID, assigneeID, dto.Title, dto.Description)
		return s.repo.Create(txCtx, entity)
	})
	if err != nil {
		return task.Task{}, ensureClassified(err, "failed to create task")
	}

	s.publisher.Publish(task.NewCreatedEvent(created))
	return created, nil
}

// Start moves one of the caller's pending tasks to in_progress.
func (s *TaskService) Start(ctx context.Context, taskID uuid.UUID) (task.Task, error) {
	actor, err := authorize(ctx, OpTaskStart)
	if err != nil {
		return task.Task{}, err
	}

	updated, err := composables.InTenantTxResult(ctx, func(txCtx context.Context) (task.Task, error) {
		current, err := s.repo.GetForAssignee(txCtx, taskID, actor.ID)
		if err != nil {
			if errors.Is(err, persistence.ErrTaskNotFound) {
				return task.Task{}, serrors.NewNotFound("TASK_NOT_FOUND", "task not found or not eligible")
			}
			return task.Task{}, serrors.NewStorage("failed to load task", err)
		}
		if current.Status() != task.StatusPending {
			return task.Task{}, serrors.NewConflict("TASK_NOT_PENDING", "task cannot be started from its current status")
		}
		return s.repo.SetInProgress(txCtx, taskID)
	})
	if err != nil {
		return task.Task{}, ensureClassified(err, "failed to start task")
	}

	s.publisher.Publish(task.NewStartedEvent(updated))
	return updated, nil
}

// Complete closes one of the caller's tasks with the evidence artifact. The
// transition is one-way; completing an already-closed task is a conflict.
func (s *TaskService) Complete(ctx context.Context, taskID uuid.UUID, artifactRef string) (task.Task, error) {
	actor, err := authorize(ctx, OpTaskComplete)
	if err != nil {
		return task.Task{}, err
	}
	if strings.TrimSpace(artifactRef) == "" {
		return task.Task{}, serrors.NewValidation("MISSING_ARTIFACT", "completion artifact is required")
	}

	updated, err := composables.InTenantTxResult(ctx, func(txCtx context.Context) (task.Task, error) {
		current, err := s.repo.GetForAssignee(txCtx, taskID, actor.ID)
		if err != nil {
			if errors.Is(err, persistence.ErrTaskNotFound) {
				return task.Task{}, serrors.NewNotFound("TASK_NOT_FOUND", "task not found or not eligible")
			}
			return task.Task{}, serrors.NewStorage("failed to load task", err)
		}
		if current.Status().IsTerminal() {
			return task.Task{}, serrors.NewConflict("TASK_ALREADY_CLOSED", "task is already completed or cancelled")
		}

		completed, err := s.repo.Complete(txCtx, taskID, artifactRef)
		if err != nil {
			// The update is conditional on a non-terminal status, so a
			// missing row here means a concurrent transition won.
			if errors.Is(err, persistence.ErrTaskNotFound) {
				return task.Task{}, serrors.NewConflict("TASK_ALREADY_CLOSED", "task is already completed or cancelled")
			}
			return task.Task{}, serrors.NewStorage("failed to complete task", err)
		}
		return completed, nil
	})
	if err != nil {
		return task.Task{}, ensureClassified(err, "failed to complete task")
	}

	s.publisher.Publish(task.NewCompletedEvent(updated))
	return updated, nil
}

// Cancel closes one of the caller's issued tasks without evidence. Completed
// tasks stay completed.
func (s *TaskService) Cancel(ctx context.Context, taskID uuid.UUID) (task.Task, error) {
	actor, err := authorize(ctx, OpTaskCancel)
	if err != nil {
		return task.Task{}, err
	}

	updated, err := composables.InTenantTxResult(ctx, func(txCtx context.Context) (task.Task, error) {
		current, err := s.repo.GetForIssuer(txCtx, taskID, actor.ID)
		if err != nil {
			if errors.Is(err, persistence.ErrTaskNotFound) {
				return task.Task{}, serrors.NewNotFound("TASK_NOT_FOUND", "task not found or not eligible")
			}
			return task.Task{}, serrors.NewStorage("failed to load task", err)
		}
		if current.Status().IsTerminal() {
			return task.Task{}, serrors.NewConflict("TASK_ALREADY_CLOSED", "task is already completed or cancelled")
		}

		cancelled, err := s.repo.Cancel(txCtx, taskID)
		if err != nil {
			if errors.Is(err, persistence.ErrTaskNotFound) {
				return task.Task{}, serrors.NewConflict("TASK_ALREADY_CLOSED", "task is already completed or cancelled")
			}
			return task.Task{}, serrors.NewStorage("failed to cancel task", err)
		}
		return cancelled, nil
	})
	if err != nil {
		return task.Task{}, ensureClassified(err, "failed to cancel task")
	}

	s.publisher.Publish(task.NewCancelledEvent(updated))
	return updated, nil
}

// ListForAssignee returns the caller's tasks, most recent first, with the
// issuer's display identity resolved.
func (s *TaskService) ListForAssignee(ctx context.Context) ([]task.ListEntry, error) {
	actor, err := authorize(ctx, OpTaskListForAssignee)
	if err != nil {
		return nil, err
	}
	entries, err := s.repo.ListForAssignee(ctx, actor.ID)
	if err != nil {
		return nil, ensureClassified(err, "failed to list tasks")
	}
	return entries, nil
}

// ListForIssuer returns the tasks the caller issued, most recent first, with
// the assignee's display identity resolved.
func (s *TaskService) ListForIssuer(ctx context.Context) ([]task.ListEntry, error) {
	actor, err := authorize(ctx, OpTaskListForIssuer)
	if err != nil {
		return nil, err
	}
	entries, err := s.repo.ListForIssuer(ctx, actor.ID)
	if err != nil {
		return nil, ensureClassified(err, "failed to list tasks")
	}
	return entries, nil
}
