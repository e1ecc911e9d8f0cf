package task

import (
	"context"

	"github.com/google/uuid"
)

// ListEntry is a task joined with the display identity of its counterpart:
// the issuer for assignee-view listings, the assignee for issuer-view ones.
type ListEntry struct {
	Task              Task
	CounterpartName   string
	CounterpartHandle string
}

// Repository persists tasks. Ownership-scoped reads take the owner id as part
// of the query so callers other than the true owner see "not found" rather
// than learning the task exists.
type Repository interface {
	Create(ctx context.Context, data Task) (Task, error)
	GetForAssignee(ctx context.Context, id, assigneeID uuid.UUID) (Task, error)
	GetForIssuer(ctx context.Context, id, issuerID uuid.UUID) (Task, error)
	ListForAssignee(ctx context.Context, assigneeID uuid.UUID) ([]ListEntry, error)
	ListForIssuer(ctx context.Context, issuerID uuid.UUID) ([]ListEntry, error)
	SetInProgress(ctx context.Context, id uuid.UUID) (Task, error)
	Complete(ctx context.Context, id uuid.UUID, artifactRef string) (Task, error)
	Cancel(ctx context.Context, id uuid.UUID) (Task, error)
}
