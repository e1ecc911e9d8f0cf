package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"

	"github.com/peopledesk/backoffice/pkg/application"
	"github.com/peopledesk/backoffice/pkg/configuration"
	"github.com/peopledesk/backoffice/pkg/httpapi"
	"github.com/peopledesk/backoffice/pkg/middleware"
)

type DefaultOptions struct {
	Logger        *logrus.Logger
	Configuration *configuration.Configuration
	Application   application.Application
	Pool          *pgxpool.Pool
}

// Default assembles the HTTP server: request logging and the database pool on
// every route, session authentication on the API routes the modules register.
func Default(options *DefaultOptions) (*http.Server, error) {
	router := mux.NewRouter()
	router.Use(
		middleware.WithLogger(options.Logger),
		middleware.WithPool(options.Pool),
	)
	router.NotFoundHandler = http.HandlerFunc(notFound)
	router.MethodNotAllowedHandler = http.HandlerFunc(methodNotAllowed)

	router.HandleFunc("/healthz", health).Methods(http.MethodGet)

	api := router.PathPrefix("/").Subrouter()
	api.Use(middleware.Authenticate(options.Configuration.SessionSecret))
	for _, controller := range options.Application.Controllers() {
		controller.Register(api)
		options.Logger.WithField("controller", controller.Key()).Debug("registered controller")
	}

	return &http.Server{
		Addr:              fmt.Sprintf(":%d", options.Configuration.ServerPort),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}, nil
}

func health(w http.ResponseWriter, _ *http.Request) {
	_ = httpapi.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func notFound(w http.ResponseWriter, _ *http.Request) {
	_ = httpapi.WriteError(w, http.StatusNotFound, "NOT_FOUND", "route not found", nil)
}

func methodNotAllowed(w http.ResponseWriter, _ *http.Request) {
	_ = httpapi.WriteError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "method not allowed", nil)
}
