package staff

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Staff is one workforce account inside a tenant. The supervisor edge is only
// ever set on worker roles; the assignment service is the sole writer of it.
type Staff struct {
	id             uuid.UUID
	tenantID       uuid.UUID
	displayName    string
	loginHandle    string
	email          string
	credentialHash string
	role           Role
	supervisorID   *uuid.UUID
	createdByID    *uuid.UUID
	createdAt      time.Time
	updatedAt      time.Time
}

func New(tenantID uuid.UUID, role Role, displayName, loginHandle, email, credentialHash string, createdByID *uuid.UUID) Staff {
	return Staff{
		tenantID:       tenantID,
		displayName:    strings.TrimSpace(displayName),
		loginHandle:    normalizeHandle(loginHandle),
		email:          normalizeEmail(email),
		credentialHash: credentialHash,
		role:           role,
		createdByID:    createdByID,
	}
}

func Hydrate(
	id uuid.UUID,
	tenantID uuid.UUID,
	role Role,
	displayName string,
	loginHandle string,
	email string,
	credentialHash string,
	supervisorID *uuid.UUID,
	createdByID *uuid.UUID,
	createdAt time.Time,
	updatedAt time.Time,
) Staff {
	return Staff{
		id:             id,
		tenantID:       tenantID,
		displayName:    displayName,
		loginHandle:    loginHandle,
		email:          email,
		credentialHash: credentialHash,
		role:           role,
		supervisorID:   supervisorID,
		createdByID:    createdByID,
		createdAt:      createdAt,
		updatedAt:      updatedAt,
	}
}

func (s Staff) ID() uuid.UUID            { return s.id }
func (s Staff) TenantID() uuid.UUID      { return s.tenantID }
func (s Staff) DisplayName() string      { return s.displayName }
func (s Staff) LoginHandle() string      { return s.loginHandle }
func (s Staff) Email() string            { return s.email }
func (s Staff) CredentialHash() string   { return s.credentialHash }
func (s Staff) Role() Role               { return s.role }
func (s Staff) SupervisorID() *uuid.UUID { return s.supervisorID }
func (s Staff) CreatedByID() *uuid.UUID  { return s.createdByID }
func (s Staff) CreatedAt() time.Time     { return s.createdAt }
func (s Staff) UpdatedAt() time.Time     { return s.updatedAt }
func (s Staff) IsZero() bool             { return s.id == uuid.Nil && s.loginHandle == "" }

func normalizeHandle(v string) string { return strings.ToLower(strings.TrimSpace(v)) }
func normalizeEmail(v string) string  { return strings.ToLower(strings.TrimSpace(v)) }
