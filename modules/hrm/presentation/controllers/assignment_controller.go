package controllers

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/peopledesk/backoffice/modules/hrm/services"
	"github.com/peopledesk/backoffice/pkg/application"
	"github.com/peopledesk/backoffice/pkg/httpapi"
)

// AssignmentController exposes the bulk supervision mutations. All role and
// eligibility filtering happens in the service; the controller only shapes
// the request and response.
type AssignmentController struct {
	app      application.Application
	basePath string
	svc      *services.AssignmentService
}

func NewAssignmentController(app application.Application) application.Controller {
	return &AssignmentController{
		app:      app,
		basePath: "/api/assignments",
		svc:      app.Service(services.AssignmentService{}).(*services.AssignmentService),
	}
}

func (c *AssignmentController) Key() string {
	return c.basePath
}

func (c *AssignmentController) Register(r *mux.Router) {
	router := r.PathPrefix(c.basePath).Subrouter()
	router.HandleFunc("/assign", c.assign).Methods(http.MethodPost)
	router.HandleFunc("/unassign", c.unassign).Methods(http.MethodPost)
	router.HandleFunc("/unassign/{workerID}", c.unassignOne).Methods(http.MethodPost)
}

func (c *AssignmentController) assign(w http.ResponseWriter, r *http.Request) {
	var req AssignRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	supervisorID, err := uuid.Parse(req.SupervisorID)
	if err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "INVALID_ID", "supervisor_id must be a uuid", nil)
		return
	}
	workerIDs, err := parseUUIDs(req.WorkerIDs)
	if err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "INVALID_ID", err.Error(), nil)
		return
	}

	result, err := c.svc.Assign(r.Context(), supervisorID, workerIDs)
	if err != nil {
		httpapi.WriteServiceError(w, requestLogger(r), err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, result)
}

func (c *AssignmentController) unassign(w http.ResponseWriter, r *http.Request) {
	var req UnassignRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	workerIDs, err := parseUUIDs(req.WorkerIDs)
	if err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "INVALID_ID", err.Error(), nil)
		return
	}

	result, err := c.svc.Unassign(r.Context(), workerIDs)
	if err != nil {
		httpapi.WriteServiceError(w, requestLogger(r), err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, result)
}

func (c *AssignmentController) unassignOne(w http.ResponseWriter, r *http.Request) {
	workerID, ok := pathUUID(w, r, "workerID")
	if !ok {
		return
	}
	updated, err := c.svc.UnassignOne(r.Context(), workerID)
	if err != nil {
		httpapi.WriteServiceError(w, requestLogger(r), err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, toStaffResponse(updated))
}
