package controllers

import (
	"time"

	"github.com/peopledesk/backoffice/modules/hrm/domain/aggregates/staff"
	"github.com/peopledesk/backoffice/modules/hrm/domain/aggregates/task"
	"github.com/peopledesk/backoffice/modules/hrm/domain/entities/attendance"
	"github.com/peopledesk/backoffice/modules/hrm/services"
)

const dateLayout = "2006-01-02"

type StaffResponse struct {
	ID           string  `json:"id"`
	DisplayName  string  `json:"display_name"`
	LoginHandle  string  `json:"login_handle"`
	Email        string  `json:"email"`
	Role         string  `json:"role"`
	SupervisorID *string `json:"supervisor_id,omitempty"`
	CreatedAt    string  `json:"created_at"`
}

func toStaffResponse(e staff.Staff) StaffResponse {
	resp := StaffResponse{
		ID:          e.ID().String(),
		DisplayName: e.DisplayName(),
		LoginHandle: e.LoginHandle(),
		Email:       e.Email(),
		Role:        string(e.Role()),
		CreatedAt:   e.CreatedAt().Format(time.RFC3339),
	}
	if e.SupervisorID() != nil {
		id := e.SupervisorID().String()
		resp.SupervisorID = &id
	}
	return resp
}

func toStaffResponses(entities []staff.Staff) []StaffResponse {
	out := make([]StaffResponse, 0, len(entities))
	for _, e := range entities {
		out = append(out, toStaffResponse(e))
	}
	return out
}

type TaskResponse struct {
	ID                    string  `json:"id"`
	Title                 string  `json:"title"`
	Description           string  `json:"description,omitempty"`
	AssigneeID            string  `json:"assignee_id"`
	IssuerID              string  `json:"issuer_id"`
	Status                string  `json:"status"`
	CompletionArtifactRef *string `json:"completion_artifact_ref,omitempty"`
	CreatedAt             string  `json:"created_at"`
	UpdatedAt             string  `json:"updated_at"`
}

func toTaskResponse(t task.Task) TaskResponse {
	return TaskResponse{
		ID:                    t.ID().String(),
		Title:                 t.Title(),
		Description:           t.Description(),
		AssigneeID:            t.AssigneeID().String(),
		IssuerID:              t.IssuerID().String(),
		Status:                string(t.Status()),
		CompletionArtifactRef: t.CompletionArtifactRef(),
		CreatedAt:             t.CreatedAt().Format(time.RFC3339),
		UpdatedAt:             t.UpdatedAt().Format(time.RFC3339),
	}
}

type TaskListEntryResponse struct {
	TaskResponse
	CounterpartName   string `json:"counterpart_name"`
	CounterpartHandle string `json:"counterpart_handle"`
}

func toTaskListResponses(entries []task.ListEntry) []TaskListEntryResponse {
	out := make([]TaskListEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, TaskListEntryResponse{
			TaskResponse:      toTaskResponse(e.Task),
			CounterpartName:   e.CounterpartName,
			CounterpartHandle: e.CounterpartHandle,
		})
	}
	return out
}

type AttendanceRecordResponse struct {
	ID         string     `json:"id"`
	WorkerRef  string     `json:"worker_ref"`
	WorkerName string     `json:"worker_name"`
	Date       string     `json:"date"`
	Shift      string     `json:"shift"`
	Status     string     `json:"status"`
	CheckIn    *time.Time `json:"check_in,omitempty"`
	CheckOut   *time.Time `json:"check_out,omitempty"`
}

func toAttendanceResponse(r attendance.Record) AttendanceRecordResponse {
	return AttendanceRecordResponse{
		ID:         r.ID().String(),
		WorkerRef:  r.WorkerRef(),
		WorkerName: r.WorkerName(),
		Date:       r.Date().Format(dateLayout),
		Shift:      string(r.Shift()),
		Status:     string(r.Status()),
		CheckIn:    r.CheckIn(),
		CheckOut:   r.CheckOut(),
	}
}

func toAttendanceResponses(records []attendance.Record) []AttendanceRecordResponse {
	out := make([]AttendanceRecordResponse, 0, len(records))
	for _, r := range records {
		out = append(out, toAttendanceResponse(r))
	}
	return out
}

type SubmitBatchRequest struct {
	Date    string                `json:"date"`
	Shift   string                `json:"shift"`
	Records []attendance.EntryDTO `json:"records"`
}

type SubmitBatchResponse struct {
	Inserted []AttendanceRecordResponse `json:"inserted"`
	Skipped  []services.SkippedEntry    `json:"skipped"`
}

type AssignRequest struct {
	SupervisorID string   `json:"supervisor_id"`
	WorkerIDs    []string `json:"worker_ids"`
}

type UnassignRequest struct {
	WorkerIDs []string `json:"worker_ids"`
}
