package task

import (
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/peopledesk/backoffice/pkg/constants"
	"github.com/peopledesk/backoffice/pkg/serrors"
)

type CreateDTO struct {
	AssigneeID  string `json:"assignee_id" validate:"required,uuid"`
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
}

func (d *CreateDTO) Normalize() {
	d.Title = strings.TrimSpace(d.Title)
	d.Description = strings.TrimSpace(d.Description)
}

func (d *CreateDTO) Ok() (serrors.ValidationErrors, bool) {
	d.Normalize()

	errs := constants.Validate.Struct(d)
	if errs == nil {
		return serrors.ValidationErrors{}, true
	}
	return serrors.ProcessValidatorErrors(errs.(validator.ValidationErrors)), false
}
