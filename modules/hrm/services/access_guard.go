package services

import (
	"context"
	"fmt"

	"github.com/go-faster/errors"

	"github.com/peopledesk/backoffice/modules/hrm/domain/aggregates/staff"
	"github.com/peopledesk/backoffice/pkg/composables"
	"github.com/peopledesk/backoffice/pkg/serrors"
)

// Operation identifies one gated service operation in the capability table.
type Operation string

const (
	OpStaffListUnsupervised Operation = "staff.list_unsupervised"
	OpStaffListManagers     Operation = "staff.list_managers"
	OpStaffListSupervised   Operation = "staff.list_supervised"
	OpStaffCreate           Operation = "staff.create"
	OpStaffDelete           Operation = "staff.delete"

	OpAssignmentAssign      Operation = "assignment.assign"
	OpAssignmentUnassign    Operation = "assignment.unassign"
	OpAssignmentUnassignOne Operation = "assignment.unassign_one"

	OpTaskCreate          Operation = "task.create"
	OpTaskStart           Operation = "task.start"
	OpTaskComplete        Operation = "task.complete"
	OpTaskCancel          Operation = "task.cancel"
	OpTaskListForAssignee Operation = "task.list_for_assignee"
	OpTaskListForIssuer   Operation = "task.list_for_issuer"

	OpAttendanceSubmit Operation = "attendance.submit"
	OpAttendanceQuery  Operation = "attendance.query"
)

// capabilities is the single role table consulted before every operation.
// Ownership constraints (self-only listings, issuer-only cancel) are enforced
// by the services on top of the role gate, via ownership-scoped queries.
var capabilities = map[Operation][]staff.Role{
	OpStaffListUnsupervised: {staff.RoleHR},
	OpStaffListManagers:     {staff.RoleHR},
	OpStaffListSupervised:   {staff.RoleHR, staff.RoleManager},
	OpStaffCreate:           {staff.RoleHR},
	OpStaffDelete:           {staff.RoleHR},

	OpAssignmentAssign:      {staff.RoleHR, staff.RoleManager},
	OpAssignmentUnassign:    {staff.RoleHR},
	OpAssignmentUnassignOne: {staff.RoleHR, staff.RoleManager},

	OpTaskCreate:          {staff.RoleHR, staff.RoleManager},
	OpTaskStart:           {staff.RoleEmployee, staff.RoleIntern},
	OpTaskComplete:        {staff.RoleEmployee, staff.RoleIntern},
	OpTaskCancel:          {staff.RoleHR, staff.RoleManager},
	OpTaskListForAssignee: {staff.RoleEmployee, staff.RoleIntern},
	OpTaskListForIssuer:   {staff.RoleHR, staff.RoleManager},

	OpAttendanceSubmit: {staff.RoleHR, staff.RoleManager},
	OpAttendanceQuery:  {staff.RoleHR, staff.RoleManager, staff.RoleEmployee, staff.RoleIntern},
}

// Authorize resolves the actor from the context and checks the capability
// table. It returns the actor so callers can scope queries to it.
func Authorize(ctx context.Context, op Operation) (composables.Actor, error) {
	actor, err := composables.UseActor(ctx)
	if err != nil {
		return composables.Actor{}, serrors.NewPolicy("UNAUTHENTICATED", "no authenticated actor")
	}

	allowed, ok := capabilities[op]
	if !ok {
		return composables.Actor{}, serrors.NewPolicy("UNKNOWN_OPERATION", fmt.Sprintf("unknown operation %q", op))
	}
	for _, role := range allowed {
		if role == actor.Role {
			return actor, nil
		}
	}
	return composables.Actor{}, serrors.NewPolicy(
		"FORBIDDEN",
		fmt.Sprintf("role %q may not perform %s", actor.Role, op),
	)
}

// authorize is swapped out in service tests.
var authorize = Authorize

// ensureClassified passes classified service errors through untouched and
// wraps everything else as a storage failure so raw persistence text never
// reaches callers.
func ensureClassified(err error, message string) error {
	var be *serrors.BaseError
	if errors.As(err, &be) {
		return err
	}
	return serrors.NewStorage(message, err)
}
