package controllers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/peopledesk/backoffice/modules/hrm/domain/aggregates/task"
	"github.com/peopledesk/backoffice/modules/hrm/services"
	"github.com/peopledesk/backoffice/pkg/application"
	"github.com/peopledesk/backoffice/pkg/artifacts"
	"github.com/peopledesk/backoffice/pkg/configuration"
	"github.com/peopledesk/backoffice/pkg/httpapi"
)

// TaskController exposes the task lifecycle. Completion takes the evidence
// file as multipart content, hands it to the artifact store and records the
// returned reference on the task.
type TaskController struct {
	app      application.Application
	basePath string
	svc      *services.TaskService
	store    artifacts.Store
}

func NewTaskController(app application.Application, store artifacts.Store) application.Controller {
	return &TaskController{
		app:      app,
		basePath: "/api/tasks",
		svc:      app.Service(services.TaskService{}).(*services.TaskService),
		store:    store,
	}
}

func (c *TaskController) Key() string {
	return c.basePath
}

func (c *TaskController) Register(r *mux.Router) {
	router := r.PathPrefix(c.basePath).Subrouter()
	router.HandleFunc("", c.create).Methods(http.MethodPost)
	router.HandleFunc("/assigned", c.listForAssignee).Methods(http.MethodGet)
	router.HandleFunc("/issued", c.listForIssuer).Methods(http.MethodGet)
	router.HandleFunc("/{id}/start", c.start).Methods(http.MethodPost)
	router.HandleFunc("/{id}/complete", c.complete).Methods(http.MethodPost)
	router.HandleFunc("/{id}/cancel", c.cancel).Methods(http.MethodPost)
}

func (c *TaskController) create(w http.ResponseWriter, r *http.Request) {
	var dto task.CreateDTO
	if !decodeJSON(w, r, &dto) {
		return
	}
	created, err := c.svc.Create(r.Context(), &dto)
	if err != nil {
		httpapi.WriteServiceError(w, requestLogger(r), err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusCreated, toTaskResponse(created))
}

func (c *TaskController) start(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	started, err := c.svc.Start(r.Context(), id)
	if err != nil {
		httpapi.WriteServiceError(w, requestLogger(r), err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, toTaskResponse(started))
}

func (c *TaskController) complete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	conf := configuration.Use()
	if err := r.ParseMultipartForm(conf.MaxUploadSize); err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "INVALID_MULTIPART", "request must be multipart form data", nil)
		return
	}
	file, header, err := r.FormFile("artifact")
	if err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "MISSING_ARTIFACT", "artifact file is required", nil)
		return
	}
	defer file.Close()

	ref, err := c.store.Put(r.Context(), header.Filename, file)
	if err != nil {
		logger := requestLogger(r)
		if logger != nil {
			logger.WithError(err).Error("failed to store completion artifact")
		}
		_ = httpapi.WriteError(w, http.StatusInternalServerError, "ARTIFACT_STORE_FAILURE", "failed to store artifact", nil)
		return
	}

	completed, err := c.svc.Complete(r.Context(), id, ref)
	if err != nil {
		httpapi.WriteServiceError(w, requestLogger(r), err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, toTaskResponse(completed))
}

func (c *TaskController) cancel(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	cancelled, err := c.svc.Cancel(r.Context(), id)
	if err != nil {
		httpapi.WriteServiceError(w, requestLogger(r), err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, toTaskResponse(cancelled))
}

func (c *TaskController) listForAssignee(w http.ResponseWriter, r *http.Request) {
	entries, err := c.svc.ListForAssignee(r.Context())
	if err != nil {
		httpapi.WriteServiceError(w, requestLogger(r), err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, toTaskListResponses(entries))
}

func (c *TaskController) listForIssuer(w http.ResponseWriter, r *http.Request) {
	entries, err := c.svc.ListForIssuer(r.Context())
	if err != nil {
		httpapi.WriteServiceError(w, requestLogger(r), err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, toTaskListResponses(entries))
}
