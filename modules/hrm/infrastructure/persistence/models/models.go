package models

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

type Staff struct {
	ID             uuid.UUID
	TenantID       uuid.UUID
	DisplayName    string
	LoginHandle    string
	Email          string
	CredentialHash string
	Role           string
	SupervisorID   uuid.NullUUID
	CreatedByID    uuid.NullUUID
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type Task struct {
	ID                    uuid.UUID
	TenantID              uuid.UUID
	Title                 string
	Description           string
	AssigneeID            uuid.UUID
	IssuerID              uuid.UUID
	Status                string
	CompletionArtifactRef sql.NullString
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

type AttendanceRecord struct {
	ID         uuid.UUID
	TenantID   uuid.UUID
	WorkerRef  string
	WorkerName string
	Date       time.Time
	Shift      string
	Status     string
	CheckIn    sql.NullTime
	CheckOut   sql.NullTime
	CreatedAt  time.Time
}
