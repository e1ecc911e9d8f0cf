package controllers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/peopledesk/backoffice/modules/hrm/domain/aggregates/staff"
	"github.com/peopledesk/backoffice/modules/hrm/services"
	"github.com/peopledesk/backoffice/pkg/application"
	"github.com/peopledesk/backoffice/pkg/httpapi"
)

// StaffController exposes the workforce account API: provisioning, removal
// and the hierarchy listings the other components read.
type StaffController struct {
	app      application.Application
	basePath string
	svc      *services.StaffService
}

func NewStaffController(app application.Application) application.Controller {
	return &StaffController{
		app:      app,
		basePath: "/api/staff",
		svc:      app.Service(services.StaffService{}).(*services.StaffService),
	}
}

func (c *StaffController) Key() string {
	return c.basePath
}

func (c *StaffController) Register(r *mux.Router) {
	router := r.PathPrefix(c.basePath).Subrouter()
	router.HandleFunc("", c.create).Methods(http.MethodPost)
	router.HandleFunc("/unsupervised", c.listUnsupervised).Methods(http.MethodGet)
	router.HandleFunc("/managers", c.listManagers).Methods(http.MethodGet)
	router.HandleFunc("/supervised-by/{supervisorID}", c.listSupervisedBy).Methods(http.MethodGet)
	router.HandleFunc("/{id}", c.delete).Methods(http.MethodDelete)
}

func (c *StaffController) create(w http.ResponseWriter, r *http.Request) {
	var dto staff.CreateDTO
	if !decodeJSON(w, r, &dto) {
		return
	}
	created, err := c.svc.Create(r.Context(), &dto)
	if err != nil {
		httpapi.WriteServiceError(w, requestLogger(r), err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusCreated, toStaffResponse(created))
}

func (c *StaffController) delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	deleted, err := c.svc.Delete(r.Context(), id)
	if err != nil {
		httpapi.WriteServiceError(w, requestLogger(r), err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, toStaffResponse(deleted))
}

func (c *StaffController) listUnsupervised(w http.ResponseWriter, r *http.Request) {
	workers, err := c.svc.ListUnsupervised(r.Context())
	if err != nil {
		httpapi.WriteServiceError(w, requestLogger(r), err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, toStaffResponses(workers))
}

func (c *StaffController) listManagers(w http.ResponseWriter, r *http.Request) {
	managers, err := c.svc.ListManagers(r.Context())
	if err != nil {
		httpapi.WriteServiceError(w, requestLogger(r), err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, toStaffResponses(managers))
}

func (c *StaffController) listSupervisedBy(w http.ResponseWriter, r *http.Request) {
	supervisorID, ok := pathUUID(w, r, "supervisorID")
	if !ok {
		return
	}
	workers, err := c.svc.ListSupervisedBy(r.Context(), supervisorID)
	if err != nil {
		httpapi.WriteServiceError(w, requestLogger(r), err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, toStaffResponses(workers))
}
