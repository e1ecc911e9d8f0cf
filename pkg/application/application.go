package application

import (
	"embed"
	"fmt"
	"reflect"

	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"

	"github.com/peopledesk/backoffice/pkg/eventbus"
)

// Controller is one routable unit registered by a module.
type Controller interface {
	Key() string
	Register(r *mux.Router)
}

// Module wires its services and controllers into the application.
type Module interface {
	Name() string
	Register(app Application) error
}

type Application interface {
	DB() *pgxpool.Pool
	EventPublisher() eventbus.EventBus
	Logger() *logrus.Logger
	RegisterServices(services ...any)
	Service(service any) any
	RegisterControllers(controllers ...Controller)
	Controllers() []Controller
	RegisterSchema(fs *embed.FS)
	Schemas() []*embed.FS
	RegisterModule(module Module) error
}

func New(pool *pgxpool.Pool, publisher eventbus.EventBus, logger *logrus.Logger) Application {
	return &application{
		pool:      pool,
		publisher: publisher,
		logger:    logger,
		services:  map[reflect.Type]any{},
	}
}

type application struct {
	pool        *pgxpool.Pool
	publisher   eventbus.EventBus
	logger      *logrus.Logger
	services    map[reflect.Type]any
	controllers []Controller
	schemas     []*embed.FS
}

func (a *application) DB() *pgxpool.Pool {
	return a.pool
}

func (a *application) EventPublisher() eventbus.EventBus {
	return a.publisher
}

func (a *application) Logger() *logrus.Logger {
	return a.logger
}

func (a *application) RegisterServices(services ...any) {
	for _, s := range services {
		a.services[reflect.TypeOf(s).Elem()] = s
	}
}

// Service looks a registered service up by example value, e.g.
// app.Service(services.TaskService{}).
func (a *application) Service(service any) any {
	s, ok := a.services[reflect.TypeOf(service)]
	if !ok {
		panic(fmt.Sprintf("service %T not registered", service))
	}
	return s
}

func (a *application) RegisterControllers(controllers ...Controller) {
	a.controllers = append(a.controllers, controllers...)
}

func (a *application) Controllers() []Controller {
	return a.controllers
}

func (a *application) RegisterSchema(fs *embed.FS) {
	a.schemas = append(a.schemas, fs)
}

func (a *application) Schemas() []*embed.FS {
	return a.schemas
}

func (a *application) RegisterModule(module Module) error {
	if err := module.Register(a); err != nil {
		return fmt.Errorf("register module %s: %w", module.Name(), err)
	}
	return nil
}
