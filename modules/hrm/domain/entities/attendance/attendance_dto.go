package attendance

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/peopledesk/backoffice/pkg/constants"
	"github.com/peopledesk/backoffice/pkg/serrors"
)

// EntryDTO is one worker's row in a batch submission.
type EntryDTO struct {
	WorkerRef  string     `json:"worker_ref" validate:"required"`
	WorkerName string     `json:"worker_name" validate:"required"`
	Status     string     `json:"status" validate:"required,oneof=present absent leave"`
	CheckIn    *time.Time `json:"check_in"`
	CheckOut   *time.Time `json:"check_out"`
}

func (d *EntryDTO) Normalize() {
	d.WorkerRef = strings.TrimSpace(d.WorkerRef)
	d.WorkerName = strings.TrimSpace(d.WorkerName)
}

func (d *EntryDTO) Ok() (serrors.ValidationErrors, bool) {
	d.Normalize()

	errs := constants.Validate.Struct(d)
	if errs == nil {
		return serrors.ValidationErrors{}, true
	}
	return serrors.ProcessValidatorErrors(errs.(validator.ValidationErrors)), false
}
