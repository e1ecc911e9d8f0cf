package persistence

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/peopledesk/backoffice/modules/hrm/domain/aggregates/staff"
	"github.com/peopledesk/backoffice/modules/hrm/infrastructure/persistence/models"
	"github.com/peopledesk/backoffice/pkg/composables"
	"github.com/peopledesk/backoffice/pkg/repo"
)

var (
	ErrStaffNotFound = errors.New("staff not found")
)

const (
	staffFindQuery = `
        SELECT
            s.id,
            s.tenant_id,
            s.display_name,
            s.login_handle,
            s.email,
            s.credential_hash,
            s.role,
            s.supervisor_id,
            s.created_by_id,
            s.created_at,
            s.updated_at
        FROM staff s`

	staffExistsQuery = `SELECT 1 FROM staff s`

	staffDeleteQuery = `DELETE FROM staff WHERE id = $1 AND tenant_id = $2`

	staffAssignQuery = `
        UPDATE staff
        SET supervisor_id = $1, updated_at = now()
        WHERE tenant_id = $2 AND id = ANY($3::uuid[]) AND role IN ('employee', 'intern')
        RETURNING id`

	staffUnassignQuery = `
        UPDATE staff
        SET supervisor_id = NULL, updated_at = now()
        WHERE tenant_id = $1 AND id = ANY($2::uuid[]) AND role IN ('employee', 'intern')
        RETURNING id`
)

type PgStaffRepository struct{}

func NewStaffRepository() staff.Repository {
	return &PgStaffRepository{}
}

func (g *PgStaffRepository) GetByID(ctx context.Context, id uuid.UUID) (staff.Staff, error) {
	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return staff.Staff{}, errors.Wrap(err, "failed to get tenant from context")
	}

	entities, err := g.queryStaff(ctx, staffFindQuery+" WHERE s.id = $1 AND s.tenant_id = $2", id, tenantID)
	if err != nil {
		return staff.Staff{}, err
	}
	if len(entities) == 0 {
		return staff.Staff{}, ErrStaffNotFound
	}
	return entities[0], nil
}

func (g *PgStaffRepository) ListUnsupervised(ctx context.Context) ([]staff.Staff, error) {
	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get tenant from context")
	}

	query := repo.Join(
		staffFindQuery,
		repo.JoinWhere(
			"s.tenant_id = $1",
			"s.role IN ('employee', 'intern')",
			"s.supervisor_id IS NULL",
		),
		"ORDER BY s.display_name",
	)
	return g.queryStaff(ctx, query, tenantID)
}

func (g *PgStaffRepository) ListSupervisedBy(ctx context.Context, supervisorID uuid.UUID) ([]staff.Staff, error) {
	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get tenant from context")
	}

	query := repo.Join(
		staffFindQuery,
		repo.JoinWhere(
			"s.tenant_id = $1",
			"s.role IN ('employee', 'intern')",
			"s.supervisor_id = $2",
		),
		"ORDER BY s.display_name",
	)
	return g.queryStaff(ctx, query, tenantID, supervisorID)
}

func (g *PgStaffRepository) ListManagers(ctx context.Context) ([]staff.Staff, error) {
	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get tenant from context")
	}

	query := repo.Join(
		staffFindQuery,
		repo.JoinWhere("s.tenant_id = $1", "s.role = 'manager'"),
		"ORDER BY s.display_name",
	)
	return g.queryStaff(ctx, query, tenantID)
}

func (g *PgStaffRepository) ExistsByLoginHandle(ctx context.Context, handle string) (bool, error) {
	return g.exists(ctx, "s.login_handle = $2", handle)
}

func (g *PgStaffRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return g.exists(ctx, "s.email = $2", email)
}

func (g *PgStaffRepository) exists(ctx context.Context, condition string, value string) (bool, error) {
	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return false, errors.Wrap(err, "failed to get tenant from context")
	}

	tx, err := composables.UseTx(ctx)
	if err != nil {
		return false, errors.Wrap(err, "failed to get transaction")
	}

	query := repo.Exists(repo.Join(staffExistsQuery, repo.JoinWhere("s.tenant_id = $1", condition)))
	var found bool
	if err := tx.QueryRow(ctx, query, tenantID, value).Scan(&found); err != nil {
		return false, errors.Wrap(err, "failed to check staff existence")
	}
	return found, nil
}

func (g *PgStaffRepository) Create(ctx context.Context, data staff.Staff) (staff.Staff, error) {
	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return staff.Staff{}, errors.Wrap(err, "failed to get tenant from context")
	}

	tx, err := composables.UseTx(ctx)
	if err != nil {
		return staff.Staff{}, errors.Wrap(err, "failed to get transaction")
	}

	fields := []string{
		"tenant_id",
		"display_name",
		"login_handle",
		"email",
		"credential_hash",
		"role",
		"created_by_id",
	}
	query := repo.Insert("staff", fields, "id")

	var newID uuid.UUID
	err = tx.QueryRow(
		ctx,
		query,
		tenantID,
		data.DisplayName(),
		data.LoginHandle(),
		data.Email(),
		data.CredentialHash(),
		string(data.Role()),
		ptrToNullUUID(data.CreatedByID()),
	).Scan(&newID)
	if err != nil {
		return staff.Staff{}, errors.Wrap(err, "failed to create staff")
	}

	return g.GetByID(ctx, newID)
}

func (g *PgStaffRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to get tenant from context")
	}

	tx, err := composables.UseTx(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to get transaction")
	}

	tag, err := tx.Exec(ctx, staffDeleteQuery, id, tenantID)
	if err != nil {
		return errors.Wrap(err, "failed to delete staff")
	}
	if tag.RowsAffected() == 0 {
		return ErrStaffNotFound
	}
	return nil
}

func (g *PgStaffRepository) AssignSupervisor(ctx context.Context, supervisorID uuid.UUID, workerIDs []uuid.UUID) ([]uuid.UUID, error) {
	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get tenant from context")
	}

	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get transaction")
	}

	rows, err := tx.Query(ctx, staffAssignQuery, supervisorID, tenantID, uuidStrings(workerIDs))
	if err != nil {
		return nil, errors.Wrap(err, "failed to assign supervisor")
	}
	defer rows.Close()
	return scanIDs(rows)
}

func (g *PgStaffRepository) ClearSupervisor(ctx context.Context, workerIDs []uuid.UUID) ([]uuid.UUID, error) {
	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get tenant from context")
	}

	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get transaction")
	}

	rows, err := tx.Query(ctx, staffUnassignQuery, tenantID, uuidStrings(workerIDs))
	if err != nil {
		return nil, errors.Wrap(err, "failed to clear supervisor")
	}
	defer rows.Close()
	return scanIDs(rows)
}

func (g *PgStaffRepository) queryStaff(ctx context.Context, query string, args ...any) ([]staff.Staff, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get transaction")
	}

	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query staff")
	}
	defer rows.Close()

	entities := make([]staff.Staff, 0)
	for rows.Next() {
		var m models.Staff
		if err := rows.Scan(
			&m.ID,
			&m.TenantID,
			&m.DisplayName,
			&m.LoginHandle,
			&m.Email,
			&m.CredentialHash,
			&m.Role,
			&m.SupervisorID,
			&m.CreatedByID,
			&m.CreatedAt,
			&m.UpdatedAt,
		); err != nil {
			return nil, errors.Wrap(err, "failed to scan staff row")
		}
		entity, err := toDomainStaff(m)
		if err != nil {
			return nil, err
		}
		entities = append(entities, entity)
	}
	return entities, rows.Err()
}

func scanIDs(rows pgx.Rows) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0)
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, errors.Wrap(err, "failed to scan id")
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func uuidStrings(ids []uuid.UUID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}
