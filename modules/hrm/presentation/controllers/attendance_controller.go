package controllers

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/peopledesk/backoffice/modules/hrm/domain/entities/attendance"
	"github.com/peopledesk/backoffice/modules/hrm/services"
	"github.com/peopledesk/backoffice/pkg/application"
	"github.com/peopledesk/backoffice/pkg/httpapi"
)

// AttendanceController exposes the ledger: batch submission and the filtered
// query the dashboards read.
type AttendanceController struct {
	app      application.Application
	basePath string
	svc      *services.AttendanceService
}

func NewAttendanceController(app application.Application) application.Controller {
	return &AttendanceController{
		app:      app,
		basePath: "/api/attendance",
		svc:      app.Service(services.AttendanceService{}).(*services.AttendanceService),
	}
}

func (c *AttendanceController) Key() string {
	return c.basePath
}

func (c *AttendanceController) Register(r *mux.Router) {
	router := r.PathPrefix(c.basePath).Subrouter()
	router.HandleFunc("", c.submitBatch).Methods(http.MethodPost)
	router.HandleFunc("", c.query).Methods(http.MethodGet)
}

func (c *AttendanceController) submitBatch(w http.ResponseWriter, r *http.Request) {
	var req SubmitBatchRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "INVALID_DATE", "date must be formatted YYYY-MM-DD", nil)
		return
	}

	result, err := c.svc.SubmitBatch(r.Context(), date, attendance.Shift(req.Shift), req.Records)
	if err != nil {
		httpapi.WriteServiceError(w, requestLogger(r), err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, SubmitBatchResponse{
		Inserted: toAttendanceResponses(result.Inserted),
		Skipped:  result.Skipped,
	})
}

func (c *AttendanceController) query(w http.ResponseWriter, r *http.Request) {
	var filter attendance.Filter
	if raw := r.URL.Query().Get("date"); raw != "" {
		date, err := time.Parse(dateLayout, raw)
		if err != nil {
			_ = httpapi.WriteError(w, http.StatusBadRequest, "INVALID_DATE", "date must be formatted YYYY-MM-DD", nil)
			return
		}
		filter.Date = &date
	}
	if raw := r.URL.Query().Get("shift"); raw != "" {
		shift, err := attendance.NewShift(raw)
		if err != nil {
			_ = httpapi.WriteError(w, http.StatusBadRequest, "INVALID_SHIFT", "shift must be one of: morning, evening, night", nil)
			return
		}
		filter.Shift = &shift
	}

	records, err := c.svc.Query(r.Context(), filter)
	if err != nil {
		httpapi.WriteServiceError(w, requestLogger(r), err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, toAttendanceResponses(records))
}
