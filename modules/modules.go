package modules

import (
	"github.com/peopledesk/backoffice/modules/hrm"
	"github.com/peopledesk/backoffice/pkg/application"
)

// BuiltInModules is the default module set the server boots with.
var BuiltInModules = []application.Module{
	hrm.NewModule(),
}

func Load(app application.Application, externalModules ...application.Module) error {
	for _, module := range externalModules {
		if err := app.RegisterModule(module); err != nil {
			return err
		}
	}
	return nil
}
