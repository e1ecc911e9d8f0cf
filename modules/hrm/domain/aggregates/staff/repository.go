package staff

import (
	"context"

	"github.com/google/uuid"
)

// Repository reads and writes staff accounts. All methods are scoped to the
// tenant bound to the context; rows from other tenants are never visible.
//
// AssignSupervisor and ClearSupervisor update only rows whose role is a
// worker role and whose tenant matches: ineligible ids are filtered out of
// the update set, not errored. Both return the ids actually modified.
type Repository interface {
	GetByID(ctx context.Context, id uuid.UUID) (Staff, error)
	ListUnsupervised(ctx context.Context) ([]Staff, error)
	ListSupervisedBy(ctx context.Context, supervisorID uuid.UUID) ([]Staff, error)
	ListManagers(ctx context.Context) ([]Staff, error)
	ExistsByLoginHandle(ctx context.Context, handle string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Create(ctx context.Context, data Staff) (Staff, error)
	Delete(ctx context.Context, id uuid.UUID) error
	AssignSupervisor(ctx context.Context, supervisorID uuid.UUID, workerIDs []uuid.UUID) ([]uuid.UUID, error)
	ClearSupervisor(ctx context.Context, workerIDs []uuid.UUID) ([]uuid.UUID, error)
}
