package services

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/peopledesk/backoffice/modules/hrm/domain/aggregates/staff"
	"github.com/peopledesk/backoffice/modules/hrm/domain/aggregates/task"
	"github.com/peopledesk/backoffice/modules/hrm/domain/entities/attendance"
	"github.com/peopledesk/backoffice/modules/hrm/infrastructure/persistence"
	"github.com/peopledesk/backoffice/pkg/composables"
)

// stubTx satisfies the transaction composable so services run their
// transactional closures against the in-memory repositories below. None of
// its methods should ever be reached.
type stubTx struct{}

func (stubTx) Query(context.Context, string, ...any) (pgx.Rows, error) {
	return nil, errors.New("no database in service tests")
}

func (stubTx) QueryRow(context.Context, string, ...any) pgx.Row {
	panic("no database in service tests")
}

func (stubTx) Exec(context.Context, string, ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, errors.New("no database in service tests")
}

func testContext(role staff.Role, tenantID uuid.UUID) (context.Context, composables.Actor) {
	actor := composables.Actor{ID: uuid.New(), TenantID: tenantID, Role: role}
	ctx := composables.WithActor(context.Background(), actor)
	ctx = composables.WithTx(ctx, stubTx{})
	return ctx, actor
}

func contextForActor(actor composables.Actor) context.Context {
	ctx := composables.WithActor(context.Background(), actor)
	return composables.WithTx(ctx, stubTx{})
}

func newStaff(tenantID uuid.UUID, role staff.Role, name, handle string, supervisorID *uuid.UUID) staff.Staff {
	now := time.Now()
	return staff.Hydrate(
		uuid.New(), tenantID, role, name, handle, handle+"@example.com",
		"$2a$10$hash", supervisorID, nil, now, now,
	)
}

// mockStaffRepo is an in-memory staff.Repository with the same tenant and
// role filters the SQL queries apply.
type mockStaffRepo struct {
	mu    sync.Mutex
	items map[uuid.UUID]staff.Staff
}

func newMockStaffRepo() *mockStaffRepo {
	return &mockStaffRepo{items: map[uuid.UUID]staff.Staff{}}
}

func (m *mockStaffRepo) seed(entities ...staff.Staff) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range entities {
		m.items[e.ID()] = e
	}
}

func (m *mockStaffRepo) GetByID(ctx context.Context, id uuid.UUID) (staff.Staff, error) {
	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return staff.Staff{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	entity, ok := m.items[id]
	if !ok || entity.TenantID() != tenantID {
		return staff.Staff{}, persistence.ErrStaffNotFound
	}
	return entity, nil
}

func (m *mockStaffRepo) ListUnsupervised(ctx context.Context) ([]staff.Staff, error) {
	return m.list(ctx, func(e staff.Staff) bool {
		return e.Role().IsWorker() && e.SupervisorID() == nil
	})
}

func (m *mockStaffRepo) ListSupervisedBy(ctx context.Context, supervisorID uuid.UUID) ([]staff.Staff, error) {
	return m.list(ctx, func(e staff.Staff) bool {
		return e.Role().IsWorker() && e.SupervisorID() != nil && *e.SupervisorID() == supervisorID
	})
}

func (m *mockStaffRepo) ListManagers(ctx context.Context) ([]staff.Staff, error) {
	return m.list(ctx, func(e staff.Staff) bool {
		return e.Role() == staff.RoleManager
	})
}

func (m *mockStaffRepo) ExistsByLoginHandle(ctx context.Context, handle string) (bool, error) {
	return m.exists(ctx, func(e staff.Staff) bool { return e.LoginHandle() == handle })
}

func (m *mockStaffRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return m.exists(ctx, func(e staff.Staff) bool { return e.Email() == email })
}

func (m *mockStaffRepo) Create(ctx context.Context, data staff.Staff) (staff.Staff, error) {
	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return staff.Staff{}, err
	}
	now := time.Now()
	entity := staff.Hydrate(
		uuid.New(),
		tenantID,
		data.Role(),
		data.DisplayName(),
		data.LoginHandle(),
		data.Email(),
		data.CredentialHash(),
		data.SupervisorID(),
		data.CreatedByID(),
		now,
		now,
	)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[entity.ID()] = entity
	return entity, nil
}

func (m *mockStaffRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	entity, ok := m.items[id]
	if !ok || entity.TenantID() != tenantID {
		return persistence.ErrStaffNotFound
	}
	delete(m.items, id)
	return nil
}

func (m *mockStaffRepo) AssignSupervisor(ctx context.Context, supervisorID uuid.UUID, workerIDs []uuid.UUID) ([]uuid.UUID, error) {
	return m.setSupervisor(ctx, &supervisorID, workerIDs)
}

func (m *mockStaffRepo) ClearSupervisor(ctx context.Context, workerIDs []uuid.UUID) ([]uuid.UUID, error) {
	return m.setSupervisor(ctx, nil, workerIDs)
}

func (m *mockStaffRepo) setSupervisor(ctx context.Context, supervisorID *uuid.UUID, workerIDs []uuid.UUID) ([]uuid.UUID, error) {
	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	updated := make([]uuid.UUID, 0, len(workerIDs))
	for _, id := range workerIDs {
		entity, ok := m.items[id]
		if !ok || entity.TenantID() != tenantID || !entity.Role().IsWorker() {
			continue
		}
		m.items[id] = staff.Hydrate(
			entity.ID(),
			entity.TenantID(),
			entity.Role(),
			entity.DisplayName(),
			entity.LoginHandle(),
			entity.Email(),
			entity.CredentialHash(),
			supervisorID,
			entity.CreatedByID(),
			entity.CreatedAt(),
			time.Now(),
		)
		updated = append(updated, id)
	}
	return updated, nil
}

func (m *mockStaffRepo) list(ctx context.Context, match func(staff.Staff) bool) ([]staff.Staff, error) {
	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]staff.Staff, 0)
	for _, e := range m.items {
		if e.TenantID() == tenantID && match(e) {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DisplayName() < out[j].DisplayName() })
	return out, nil
}

func (m *mockStaffRepo) exists(ctx context.Context, match func(staff.Staff) bool) (bool, error) {
	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return false, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.items {
		if e.TenantID() == tenantID && match(e) {
			return true, nil
		}
	}
	return false, nil
}

// mockTaskRepo mirrors the status guards of the SQL transition queries.
type mockTaskRepo struct {
	mu    sync.Mutex
	items map[uuid.UUID]task.Task
	staff *mockStaffRepo
}

func newMockTaskRepo(staffRepo *mockStaffRepo) *mockTaskRepo {
	return &mockTaskRepo{items: map[uuid.UUID]task.Task{}, staff: staffRepo}
}

func (m *mockTaskRepo) Create(ctx context.Context, data task.Task) (task.Task, error) {
	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return task.Task{}, err
	}
	now := time.Now()
	entity := task.Hydrate(
		uuid.New(),
		tenantID,
		data.Title(),
		data.Description(),
		data.AssigneeID(),
		data.IssuerID(),
		data.Status(),
		data.CompletionArtifactRef(),
		now,
		now,
	)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[entity.ID()] = entity
	return entity, nil
}

func (m *mockTaskRepo) GetForAssignee(ctx context.Context, id, assigneeID uuid.UUID) (task.Task, error) {
	return m.getOne(ctx, id, func(t task.Task) bool { return t.AssigneeID() == assigneeID })
}

func (m *mockTaskRepo) GetForIssuer(ctx context.Context, id, issuerID uuid.UUID) (task.Task, error) {
	return m.getOne(ctx, id, func(t task.Task) bool { return t.IssuerID() == issuerID })
}

func (m *mockTaskRepo) ListForAssignee(ctx context.Context, assigneeID uuid.UUID) ([]task.ListEntry, error) {
	return m.listEntries(ctx,
		func(t task.Task) bool { return t.AssigneeID() == assigneeID },
		func(t task.Task) uuid.UUID { return t.IssuerID() },
	)
}

func (m *mockTaskRepo) ListForIssuer(ctx context.Context, issuerID uuid.UUID) ([]task.ListEntry, error) {
	return m.listEntries(ctx,
		func(t task.Task) bool { return t.IssuerID() == issuerID },
		func(t task.Task) uuid.UUID { return t.AssigneeID() },
	)
}

func (m *mockTaskRepo) SetInProgress(ctx context.Context, id uuid.UUID) (task.Task, error) {
	return m.transition(ctx, id, func(t task.Task) (task.Task, bool) {
		if t.Status() != task.StatusPending {
			return task.Task{}, false
		}
		return rehydrateTask(t, task.StatusInProgress, t.CompletionArtifactRef()), true
	})
}

func (m *mockTaskRepo) Complete(ctx context.Context, id uuid.UUID, artifactRef string) (task.Task, error) {
	return m.transition(ctx, id, func(t task.Task) (task.Task, bool) {
		if t.Status().IsTerminal() {
			return task.Task{}, false
		}
		return rehydrateTask(t, task.StatusCompleted, &artifactRef), true
	})
}

func (m *mockTaskRepo) Cancel(ctx context.Context, id uuid.UUID) (task.Task, error) {
	return m.transition(ctx, id, func(t task.Task) (task.Task, bool) {
		if t.Status().IsTerminal() {
			return task.Task{}, false
		}
		return rehydrateTask(t, task.StatusCancelled, t.CompletionArtifactRef()), true
	})
}

func (m *mockTaskRepo) getOne(ctx context.Context, id uuid.UUID, match func(task.Task) bool) (task.Task, error) {
	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return task.Task{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	entity, ok := m.items[id]
	if !ok || entity.TenantID() != tenantID || !match(entity) {
		return task.Task{}, persistence.ErrTaskNotFound
	}
	return entity, nil
}

func (m *mockTaskRepo) transition(ctx context.Context, id uuid.UUID, apply func(task.Task) (task.Task, bool)) (task.Task, error) {
	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return task.Task{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	entity, ok := m.items[id]
	if !ok || entity.TenantID() != tenantID {
		return task.Task{}, persistence.ErrTaskNotFound
	}
	next, applied := apply(entity)
	if !applied {
		return task.Task{}, persistence.ErrTaskNotFound
	}
	m.items[id] = next
	return next, nil
}

func (m *mockTaskRepo) listEntries(ctx context.Context, match func(task.Task) bool, counterpart func(task.Task) uuid.UUID) ([]task.ListEntry, error) {
	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]task.ListEntry, 0)
	for _, t := range m.items {
		if t.TenantID() != tenantID || !match(t) {
			continue
		}
		entry := task.ListEntry{Task: t}
		if m.staff != nil {
			m.staff.mu.Lock()
			if other, ok := m.staff.items[counterpart(t)]; ok {
				entry.CounterpartName = other.DisplayName()
				entry.CounterpartHandle = other.LoginHandle()
			}
			m.staff.mu.Unlock()
		}
		out = append(out, entry)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Task.CreatedAt().After(out[j].Task.CreatedAt())
	})
	return out, nil
}

func rehydrateTask(t task.Task, status task.Status, artifactRef *string) task.Task {
	return task.Hydrate(
		t.ID(),
		t.TenantID(),
		t.Title(),
		t.Description(),
		t.AssigneeID(),
		t.IssuerID(),
		status,
		artifactRef,
		t.CreatedAt(),
		time.Now(),
	)
}

// mockAttendanceRepo keeps the ledger as a flat slice, matching rows the way
// the cohort delete and filtered query do.
type mockAttendanceRepo struct {
	mu      sync.Mutex
	records []attendance.Record
}

func newMockAttendanceRepo() *mockAttendanceRepo {
	return &mockAttendanceRepo{}
}

func (m *mockAttendanceRepo) DeleteCohort(ctx context.Context, day time.Time, shift attendance.Shift, workerRefs []string) error {
	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return err
	}
	refs := make(map[string]struct{}, len(workerRefs))
	for _, ref := range workerRefs {
		refs[ref] = struct{}{}
	}
	day = attendance.Day(day)
	m.mu.Lock()
	defer m.mu.Unlock()
	kept := m.records[:0]
	for _, r := range m.records {
		_, inCohort := refs[r.WorkerRef()]
		if r.TenantID() == tenantID && r.Date().Equal(day) && r.Shift() == shift && inCohort {
			continue
		}
		kept = append(kept, r)
	}
	m.records = kept
	return nil
}

func (m *mockAttendanceRepo) InsertBatch(ctx context.Context, records []attendance.Record) ([]attendance.Record, error) {
	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	inserted := make([]attendance.Record, 0, len(records))
	for _, r := range records {
		stored := attendance.Hydrate(
			uuid.New(),
			tenantID,
			r.WorkerRef(),
			r.WorkerName(),
			attendance.Day(r.Date()),
			r.Shift(),
			r.Status(),
			r.CheckIn(),
			r.CheckOut(),
			time.Now(),
		)
		m.records = append(m.records, stored)
		inserted = append(inserted, stored)
	}
	return inserted, nil
}

func (m *mockAttendanceRepo) Query(ctx context.Context, filter attendance.Filter) ([]attendance.Record, error) {
	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]attendance.Record, 0)
	for _, r := range m.records {
		if r.TenantID() != tenantID {
			continue
		}
		if filter.Date != nil && !r.Date().Equal(attendance.Day(*filter.Date)) {
			continue
		}
		if filter.Shift != nil && r.Shift() != *filter.Shift {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}
