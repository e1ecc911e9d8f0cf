package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/peopledesk/backoffice/modules/hrm/domain/aggregates/staff"
	"github.com/peopledesk/backoffice/pkg/eventbus"
	"github.com/peopledesk/backoffice/pkg/serrors"
)

func newStaffService(repo *mockStaffRepo) *StaffService {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return NewStaffService(repo, eventbus.NewEventPublisher(logger))
}

func TestStaffService_Create(t *testing.T) {
	tenantID := uuid.New()
	repo := newMockStaffRepo()
	svc := newStaffService(repo)
	ctx, _ := testContext(staff.RoleHR, tenantID)

	dto := &staff.CreateDTO{
		DisplayName: "Jane Porter",
		LoginHandle: "JPorter",
		Email:       "Jane@Example.com",
		Password:    "correct-horse",
		Role:        "employee",
	}
	created, err := svc.Create(ctx, dto)
	require.NoError(t, err)
	require.Equal(t, "jporter", created.LoginHandle())
	require.Equal(t, "jane@example.com", created.Email())
	require.Equal(t, staff.RoleEmployee, created.Role())
	require.NotEqual(t, uuid.Nil, created.ID())
	require.NotEqual(t, "correct-horse", created.CredentialHash())
}

func TestStaffService_Create_DuplicateHandle(t *testing.T) {
	tenantID := uuid.New()
	repo := newMockStaffRepo()
	repo.seed(newStaff(tenantID, staff.RoleEmployee, "Existing", "jporter", nil))
	svc := newStaffService(repo)
	ctx, _ := testContext(staff.RoleHR, tenantID)

	_, err := svc.Create(ctx, &staff.CreateDTO{
		DisplayName: "Jane Porter",
		LoginHandle: "jporter",
		Email:       "other@example.com",
		Password:    "correct-horse",
		Role:        "employee",
	})
	require.Error(t, err)
	require.True(t, serrors.IsKind(err, serrors.KindValidation))
}

func TestStaffService_Create_InvalidPayload(t *testing.T) {
	repo := newMockStaffRepo()
	svc := newStaffService(repo)
	ctx, _ := testContext(staff.RoleHR, uuid.New())

	_, err := svc.Create(ctx, &staff.CreateDTO{
		DisplayName: "Short Password",
		LoginHandle: "shorty",
		Email:       "shorty@example.com",
		Password:    "short",
		Role:        "employee",
	})
	require.Error(t, err)
	require.True(t, serrors.IsKind(err, serrors.KindValidation))
}

func TestStaffService_Create_RequiresHR(t *testing.T) {
	repo := newMockStaffRepo()
	svc := newStaffService(repo)
	ctx, _ := testContext(staff.RoleManager, uuid.New())

	_, err := svc.Create(ctx, &staff.CreateDTO{
		DisplayName: "Jane Porter",
		LoginHandle: "jporter",
		Email:       "jane@example.com",
		Password:    "correct-horse",
		Role:        "employee",
	})
	require.Error(t, err)
	require.True(t, serrors.IsKind(err, serrors.KindPolicy))
}

func TestStaffService_ListUnsupervised_RequiresHR(t *testing.T) {
	repo := newMockStaffRepo()
	svc := newStaffService(repo)
	ctx, _ := testContext(staff.RoleManager, uuid.New())

	_, err := svc.ListUnsupervised(ctx)
	require.Error(t, err)
	require.True(t, serrors.IsKind(err, serrors.KindPolicy))
}

func TestStaffService_ListUnsupervised(t *testing.T) {
	tenantID := uuid.New()
	managerID := uuid.New()
	repo := newMockStaffRepo()
	repo.seed(
		newStaff(tenantID, staff.RoleEmployee, "Alice", "alice", nil),
		newStaff(tenantID, staff.RoleIntern, "Bob", "bob", &managerID),
		newStaff(tenantID, staff.RoleManager, "Carol", "carol", nil),
		newStaff(uuid.New(), staff.RoleEmployee, "Dave", "dave", nil),
	)
	svc := newStaffService(repo)
	ctx, _ := testContext(staff.RoleHR, tenantID)

	workers, err := svc.ListUnsupervised(ctx)
	require.NoError(t, err)
	require.Len(t, workers, 1)
	require.Equal(t, "alice", workers[0].LoginHandle())
}

func TestStaffService_Delete_RefusesNonWorker(t *testing.T) {
	tenantID := uuid.New()
	manager := newStaff(tenantID, staff.RoleManager, "Carol", "carol", nil)
	repo := newMockStaffRepo()
	repo.seed(manager)
	svc := newStaffService(repo)
	ctx, _ := testContext(staff.RoleHR, tenantID)

	_, err := svc.Delete(ctx, manager.ID())
	require.Error(t, err)
	require.True(t, serrors.IsKind(err, serrors.KindPolicy))

	_, getErr := repo.GetByID(ctx, manager.ID())
	require.NoError(t, getErr)
}

func TestStaffService_Delete(t *testing.T) {
	tenantID := uuid.New()
	worker := newStaff(tenantID, staff.RoleIntern, "Bob", "bob", nil)
	repo := newMockStaffRepo()
	repo.seed(worker)
	svc := newStaffService(repo)
	ctx, _ := testContext(staff.RoleHR, tenantID)

	deleted, err := svc.Delete(ctx, worker.ID())
	require.NoError(t, err)
	require.Equal(t, worker.ID(), deleted.ID())

	_, err = svc.Delete(ctx, worker.ID())
	require.True(t, serrors.IsKind(err, serrors.KindNotFound))
}

func TestStaffService_Delete_OtherTenantInvisible(t *testing.T) {
	worker := newStaff(uuid.New(), staff.RoleEmployee, "Dave", "dave", nil)
	repo := newMockStaffRepo()
	repo.seed(worker)
	svc := newStaffService(repo)
	ctx, _ := testContext(staff.RoleHR, uuid.New())

	_, err := svc.Delete(ctx, worker.ID())
	require.True(t, serrors.IsKind(err, serrors.KindNotFound))
}
