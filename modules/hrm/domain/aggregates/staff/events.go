package staff

import "github.com/google/uuid"

type CreatedEvent struct {
	Result Staff
}

type DeletedEvent struct {
	Result Staff
}

type AssignedEvent struct {
	TenantID     uuid.UUID
	SupervisorID uuid.UUID
	WorkerIDs    []uuid.UUID
}

type UnassignedEvent struct {
	TenantID  uuid.UUID
	WorkerIDs []uuid.UUID
}

func NewCreatedEvent(result Staff) *CreatedEvent {
	return &CreatedEvent{Result: result}
}

func NewDeletedEvent(result Staff) *DeletedEvent {
	return &DeletedEvent{Result: result}
}

func NewAssignedEvent(tenantID, supervisorID uuid.UUID, workerIDs []uuid.UUID) *AssignedEvent {
	return &AssignedEvent{TenantID: tenantID, SupervisorID: supervisorID, WorkerIDs: workerIDs}
}

func NewUnassignedEvent(tenantID uuid.UUID, workerIDs []uuid.UUID) *UnassignedEvent {
	return &UnassignedEvent{TenantID: tenantID, WorkerIDs: workerIDs}
}
