package task

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// IsTerminal reports whether no further transition may leave this status.
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// Task is one unit of delegated work linking an issuer (hr or manager) to an
// assignee (employee or intern) within one tenant. completionArtifactRef is
// non-nil iff status is completed.
type Task struct {
	id                    uuid.UUID
	tenantID              uuid.UUID
	title                 string
	description           string
	assigneeID            uuid.UUID
	issuerID              uuid.UUID
	status                Status
	completionArtifactRef *string
	createdAt             time.Time
	updatedAt             time.Time
}

func New(tenantID, issuerID, assigneeID uuid.UUID, title, description string) Task {
	return Task{
		tenantID:    tenantID,
		title:       strings.TrimSpace(title),
		description: strings.TrimSpace(description),
		assigneeID:  assigneeID,
		issuerID:    issuerID,
		status:      StatusPending,
	}
}

func Hydrate(
	id uuid.UUID,
	tenantID uuid.UUID,
	title string,
	description string,
	assigneeID uuid.UUID,
	issuerID uuid.UUID,
	status Status,
	completionArtifactRef *string,
	createdAt time.Time,
	updatedAt time.Time,
) Task {
	return Task{
		id:                    id,
		tenantID:              tenantID,
		title:                 title,
		description:           description,
		assigneeID:            assigneeID,
		issuerID:              issuerID,
		status:                status,
		completionArtifactRef: completionArtifactRef,
		createdAt:             createdAt,
		updatedAt:             updatedAt,
	}
}

func (t Task) ID() uuid.UUID                  { return t.id }
func (t Task) TenantID() uuid.UUID            { return t.tenantID }
func (t Task) Title() string                  { return t.title }
func (t Task) Description() string            { return t.description }
func (t Task) AssigneeID() uuid.UUID          { return t.assigneeID }
func (t Task) IssuerID() uuid.UUID            { return t.issuerID }
func (t Task) Status() Status                 { return t.status }
func (t Task) CompletionArtifactRef() *string { return t.completionArtifactRef }
func (t Task) CreatedAt() time.Time           { return t.createdAt }
func (t Task) UpdatedAt() time.Time           { return t.updatedAt }
func (t Task) IsZero() bool                   { return t.id == uuid.Nil }
