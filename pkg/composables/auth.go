package composables

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/peopledesk/backoffice/modules/hrm/domain/aggregates/staff"
	"github.com/peopledesk/backoffice/pkg/constants"
)

var (
	ErrNoActor    = errors.New("no actor found in context")
	ErrNoTenantID = errors.New("no tenant id found in context")
)

// Actor is the verified caller identity extracted from the session token.
// Session issuance and credential verification happen outside this service.
type Actor struct {
	ID       uuid.UUID
	TenantID uuid.UUID
	Role     staff.Role
}

func WithActor(ctx context.Context, actor Actor) context.Context {
	ctx = context.WithValue(ctx, constants.ActorKey, actor)
	return context.WithValue(ctx, constants.TenantIDKey, actor.TenantID)
}

func UseActor(ctx context.Context) (Actor, error) {
	actor, ok := ctx.Value(constants.ActorKey).(Actor)
	if !ok {
		return Actor{}, ErrNoActor
	}
	return actor, nil
}

func WithTenantID(ctx context.Context, tenantID uuid.UUID) context.Context {
	return context.WithValue(ctx, constants.TenantIDKey, tenantID)
}

func UseTenantID(ctx context.Context) (uuid.UUID, error) {
	tenantID, ok := ctx.Value(constants.TenantIDKey).(uuid.UUID)
	if !ok {
		return uuid.Nil, ErrNoTenantID
	}
	return tenantID, nil
}
