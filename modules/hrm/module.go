package hrm

import (
	"embed"

	"github.com/peopledesk/backoffice/modules/hrm/infrastructure/persistence"
	"github.com/peopledesk/backoffice/modules/hrm/presentation/controllers"
	"github.com/peopledesk/backoffice/modules/hrm/services"
	"github.com/peopledesk/backoffice/pkg/application"
	"github.com/peopledesk/backoffice/pkg/artifacts"
	"github.com/peopledesk/backoffice/pkg/configuration"
)

//go:embed infrastructure/persistence/schema/hrm-schema.sql
var SchemaFiles embed.FS

func NewModule() application.Module {
	return &Module{}
}

type Module struct {
}

func (m *Module) Register(app application.Application) error {
	conf := configuration.Use()

	app.RegisterSchema(&SchemaFiles)
	app.RegisterServices(
		services.NewStaffService(persistence.NewStaffRepository(), app.EventPublisher()),
		services.NewAssignmentService(persistence.NewStaffRepository(), app.EventPublisher()),
		services.NewTaskService(persistence.NewTaskRepository(), persistence.NewStaffRepository(), app.EventPublisher()),
		services.NewAttendanceService(persistence.NewAttendanceRepository(), app.EventPublisher()),
	)
	app.RegisterControllers(
		controllers.NewStaffController(app),
		controllers.NewAssignmentController(app),
		controllers.NewTaskController(app, artifacts.NewLocalStore(conf.ArtifactsPath)),
		controllers.NewAttendanceController(app),
	)
	return nil
}

func (m *Module) Name() string {
	return "hrm"
}
