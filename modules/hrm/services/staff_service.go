package services

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/peopledesk/backoffice/modules/hrm/domain/aggregates/staff"
	"github.com/peopledesk/backoffice/modules/hrm/infrastructure/persistence"
	"github.com/peopledesk/backoffice/pkg/composables"
	"github.com/peopledesk/backoffice/pkg/eventbus"
	"github.com/peopledesk/backoffice/pkg/serrors"
)

type StaffService struct {
	repo      staff.Repository
	publisher eventbus.EventBus
}

func NewStaffService(repo staff.Repository, publisher eventbus.EventBus) *StaffService {
	return &StaffService{
		repo:      repo,
		publisher: publisher,
	}
}

func (s *StaffService) ListUnsupervised(ctx context.Context) ([]staff.Staff, error) {
	if _, err := authorize(ctx, OpStaffListUnsupervised); err != nil {
		return nil, err
	}
	entities, err := s.repo.ListUnsupervised(ctx)
	if err != nil {
		return nil, ensureClassified(err, "failed to list unsupervised staff")
	}
	return entities, nil
}

func (s *StaffService) ListSupervisedBy(ctx context.Context, supervisorID uuid.UUID) ([]staff.Staff, error) {
	if _, err := authorize(ctx, OpStaffListSupervised); err != nil {
		return nil, err
	}
	entities, err := s.repo.ListSupervisedBy(ctx, supervisorID)
	if err != nil {
		return nil, ensureClassified(err, "failed to list supervised staff")
	}
	return entities, nil
}

func (s *StaffService) ListManagers(ctx context.Context) ([]staff.Staff, error) {
	if _, err := authorize(ctx, OpStaffListManagers); err != nil {
		return nil, err
	}
	entities, err := s.repo.ListManagers(ctx)
	if err != nil {
		return nil, ensureClassified(err, "failed to list managers")
	}
	return entities, nil
}

// Create provisions a workforce account. The raw password is hashed here and
// never persisted or returned.
func (s *StaffService) Create(ctx context.Context, dto *staff.CreateDTO) (staff.Staff, error) {
	actor, err := authorize(ctx, OpStaffCreate)
	if err != nil {
		return staff.Staff{}, err
	}

	if fieldErrs, ok := dto.Ok(); !ok {
		return staff.Staff{}, serrors.NewValidation("INVALID_PAYLOAD", "invalid staff payload").WithMeta(fieldErrs)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(dto.Password), bcrypt.DefaultCost)
	if err != nil {
		return staff.Staff{}, serrors.NewStorage("failed to hash credential", err)
	}

	entity, err := dto.ToEntity(actor.TenantID, string(hash), &actor.ID)
	if err != nil {
		return staff.Staff{}, serrors.NewValidation("INVALID_ROLE", err.Error())
	}

	created, err := composables.InTenantTxResult(ctx, func(txCtx context.Context) (staff.Staff, error) {
		taken, err := s.repo.ExistsByLoginHandle(txCtx, entity.LoginHandle())
		if err != nil {
			return staff.Staff{}, serrors.NewStorage("failed to check login handle", err)
		}
		if taken {
			return staff.Staff{}, serrors.NewValidation("LOGIN_HANDLE_TAKEN", "login handle already in use")
		}

		taken, err = s.repo.ExistsByEmail(txCtx, entity.Email())
		if err != nil {
			return staff.Staff{}, serrors.NewStorage("failed to check email", err)
		}
		if taken {
			return staff.Staff{}, serrors.NewValidation("EMAIL_TAKEN", "email already in use")
		}

		return s.repo.Create(txCtx, entity)
	})
	if err != nil {
		return staff.Staff{}, ensureClassified(err, "failed to create staff")
	}

	s.publisher.Publish(staff.NewCreatedEvent(created))
	return created, nil
}

// Delete removes an employee or intern account. Removal of hr and manager
// accounts goes through a different path and is refused here.
func (s *StaffService) Delete(ctx context.Context, id uuid.UUID) (staff.Staff, error) {
	if _, err := authorize(ctx, OpStaffDelete); err != nil {
		return staff.Staff{}, err
	}

	deleted, err := composables.InTenantTxResult(ctx, func(txCtx context.Context) (staff.Staff, error) {
		entity, err := s.repo.GetByID(txCtx, id)
		if err != nil {
			if errors.Is(err, persistence.ErrStaffNotFound) {
				return staff.Staff{}, serrors.NewNotFound("STAFF_NOT_FOUND", "staff not found")
			}
			return staff.Staff{}, serrors.NewStorage("failed to load staff", err)
		}
		if !entity.Role().IsWorker() {
			return staff.Staff{}, serrors.NewPolicy("NOT_DELETABLE", "only employee and intern accounts can be deleted here")
		}
		if err := s.repo.Delete(txCtx, id); err != nil {
			return staff.Staff{}, serrors.NewStorage("failed to delete staff", err)
		}
		return entity, nil
	})
	if err != nil {
		return staff.Staff{}, ensureClassified(err, "failed to delete staff")
	}

	s.publisher.Publish(staff.NewDeletedEvent(deleted))
	return deleted, nil
}
