package persistence

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/peopledesk/backoffice/modules/hrm/domain/aggregates/task"
	"github.com/peopledesk/backoffice/modules/hrm/infrastructure/persistence/models"
	"github.com/peopledesk/backoffice/pkg/composables"
	"github.com/peopledesk/backoffice/pkg/repo"
)

var (
	ErrTaskNotFound = errors.New("task not found")
)

const (
	taskColumns = `
            t.id,
            t.tenant_id,
            t.title,
            t.description,
            t.assignee_id,
            t.issuer_id,
            t.status,
            t.completion_artifact_ref,
            t.created_at,
            t.updated_at`

	taskFindQuery = `SELECT` + taskColumns + `
        FROM tasks t`

	taskListForAssigneeQuery = `SELECT` + taskColumns + `, s.display_name, s.login_handle
        FROM tasks t
        JOIN staff s ON s.id = t.issuer_id
        WHERE t.assignee_id = $1 AND t.tenant_id = $2
        ORDER BY t.created_at DESC`

	taskListForIssuerQuery = `SELECT` + taskColumns + `, s.display_name, s.login_handle
        FROM tasks t
        JOIN staff s ON s.id = t.assignee_id
        WHERE t.issuer_id = $1 AND t.tenant_id = $2
        ORDER BY t.created_at DESC`

	taskSetInProgressQuery = `
        UPDATE tasks
        SET status = 'in_progress', updated_at = now()
        WHERE id = $1 AND tenant_id = $2 AND status = 'pending'`

	taskCompleteQuery = `
        UPDATE tasks
        SET status = 'completed', completion_artifact_ref = $3, updated_at = now()
        WHERE id = $1 AND tenant_id = $2 AND status IN ('pending', 'in_progress')`

	taskCancelQuery = `
        UPDATE tasks
        SET status = 'cancelled', updated_at = now()
        WHERE id = $1 AND tenant_id = $2 AND status IN ('pending', 'in_progress')`
)

type PgTaskRepository struct{}

func NewTaskRepository() task.Repository {
	return &PgTaskRepository{}
}

func (g *PgTaskRepository) Create(ctx context.Context, data task.Task) (task.Task, error) {
	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return task.Task{}, errors.Wrap(err, "failed to get tenant from context")
	}

	tx, err := composables.UseTx(ctx)
	if err != nil {
		return task.Task{}, errors.Wrap(err, "failed to get transaction")
	}

	fields := []string{
		"tenant_id",
		"title",
		"description",
		"assignee_id",
		"issuer_id",
		"status",
	}
	query := repo.Insert("tasks", fields, "id")

	var newID uuid.UUID
	err = tx.QueryRow(
		ctx,
		query,
		tenantID,
		data.Title(),
		data.Description(),
		data.AssigneeID(),
		data.IssuerID(),
		string(data.Status()),
	).Scan(&newID)
	if err != nil {
		return task.Task{}, errors.Wrap(err, "failed to create task")
	}

	return g.getByID(ctx, newID)
}

func (g *PgTaskRepository) GetForAssignee(ctx context.Context, id, assigneeID uuid.UUID) (task.Task, error) {
	return g.getOne(ctx, " WHERE t.id = $1 AND t.tenant_id = $2 AND t.assignee_id = $3", id, assigneeID)
}

func (g *PgTaskRepository) GetForIssuer(ctx context.Context, id, issuerID uuid.UUID) (task.Task, error) {
	return g.getOne(ctx, " WHERE t.id = $1 AND t.tenant_id = $2 AND t.issuer_id = $3", id, issuerID)
}

func (g *PgTaskRepository) ListForAssignee(ctx context.Context, assigneeID uuid.UUID) ([]task.ListEntry, error) {
	return g.queryEntries(ctx, taskListForAssigneeQuery, assigneeID)
}

func (g *PgTaskRepository) ListForIssuer(ctx context.Context, issuerID uuid.UUID) ([]task.ListEntry, error) {
	return g.queryEntries(ctx, taskListForIssuerQuery, issuerID)
}

func (g *PgTaskRepository) SetInProgress(ctx context.Context, id uuid.UUID) (task.Task, error) {
	return g.execTransition(ctx, taskSetInProgressQuery, id)
}

func (g *PgTaskRepository) Complete(ctx context.Context, id uuid.UUID, artifactRef string) (task.Task, error) {
	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return task.Task{}, errors.Wrap(err, "failed to get tenant from context")
	}

	tx, err := composables.UseTx(ctx)
	if err != nil {
		return task.Task{}, errors.Wrap(err, "failed to get transaction")
	}

	tag, err := tx.Exec(ctx, taskCompleteQuery, id, tenantID, artifactRef)
	if err != nil {
		return task.Task{}, errors.Wrap(err, "failed to complete task")
	}
	if tag.RowsAffected() == 0 {
		return task.Task{}, ErrTaskNotFound
	}
	return g.getByID(ctx, id)
}

func (g *PgTaskRepository) Cancel(ctx context.Context, id uuid.UUID) (task.Task, error) {
	return g.execTransition(ctx, taskCancelQuery, id)
}

func (g *PgTaskRepository) execTransition(ctx context.Context, query string, id uuid.UUID) (task.Task, error) {
	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return task.Task{}, errors.Wrap(err, "failed to get tenant from context")
	}

	tx, err := composables.UseTx(ctx)
	if err != nil {
		return task.Task{}, errors.Wrap(err, "failed to get transaction")
	}

	tag, err := tx.Exec(ctx, query, id, tenantID)
	if err != nil {
		return task.Task{}, errors.Wrap(err, "failed to update task status")
	}
	if tag.RowsAffected() == 0 {
		return task.Task{}, ErrTaskNotFound
	}
	return g.getByID(ctx, id)
}

func (g *PgTaskRepository) getByID(ctx context.Context, id uuid.UUID) (task.Task, error) {
	return g.getOne(ctx, " WHERE t.id = $1 AND t.tenant_id = $2", id)
}

func (g *PgTaskRepository) getOne(ctx context.Context, where string, id uuid.UUID, extra ...any) (task.Task, error) {
	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return task.Task{}, errors.Wrap(err, "failed to get tenant from context")
	}

	tx, err := composables.UseTx(ctx)
	if err != nil {
		return task.Task{}, errors.Wrap(err, "failed to get transaction")
	}

	args := append([]any{id, tenantID}, extra...)
	var m models.Task
	err = tx.QueryRow(ctx, taskFindQuery+where, args...).Scan(
		&m.ID,
		&m.TenantID,
		&m.Title,
		&m.Description,
		&m.AssigneeID,
		&m.IssuerID,
		&m.Status,
		&m.CompletionArtifactRef,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return task.Task{}, ErrTaskNotFound
		}
		return task.Task{}, errors.Wrap(err, "failed to get task")
	}
	return toDomainTask(m)
}

func (g *PgTaskRepository) queryEntries(ctx context.Context, query string, ownerID uuid.UUID) ([]task.ListEntry, error) {
	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get tenant from context")
	}

	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get transaction")
	}

	rows, err := tx.Query(ctx, query, ownerID, tenantID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list tasks")
	}
	defer rows.Close()

	entries := make([]task.ListEntry, 0)
	for rows.Next() {
		var m models.Task
		var counterpartName, counterpartHandle string
		if err := rows.Scan(
			&m.ID,
			&m.TenantID,
			&m.Title,
			&m.Description,
			&m.AssigneeID,
			&m.IssuerID,
			&m.Status,
			&m.CompletionArtifactRef,
			&m.CreatedAt,
			&m.UpdatedAt,
			&counterpartName,
			&counterpartHandle,
		); err != nil {
			return nil, errors.Wrap(err, "failed to scan task row")
		}
		entity, err := toDomainTask(m)
		if err != nil {
			return nil, err
		}
		entries = append(entries, task.ListEntry{
			Task:              entity,
			CounterpartName:   counterpartName,
			CounterpartHandle: counterpartHandle,
		})
	}
	return entries, rows.Err()
}
