package staff

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/peopledesk/backoffice/pkg/constants"
	"github.com/peopledesk/backoffice/pkg/serrors"
)

type CreateDTO struct {
	DisplayName string `json:"display_name" validate:"required"`
	LoginHandle string `json:"login_handle" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=8"`
	Role        string `json:"role" validate:"required,oneof=hr manager employee intern"`
}

func (d *CreateDTO) Normalize() {
	d.DisplayName = strings.TrimSpace(d.DisplayName)
	d.LoginHandle = strings.ToLower(strings.TrimSpace(d.LoginHandle))
	d.Email = strings.ToLower(strings.TrimSpace(d.Email))
}

// Ok validates the DTO and returns per-field messages on failure.
func (d *CreateDTO) Ok() (serrors.ValidationErrors, bool) {
	d.Normalize()

	errs := constants.Validate.Struct(d)
	if errs == nil {
		return serrors.ValidationErrors{}, true
	}
	return serrors.ProcessValidatorErrors(errs.(validator.ValidationErrors)), false
}

// ToEntity builds the aggregate with an already-hashed credential. The raw
// password never reaches the entity.
func (d *CreateDTO) ToEntity(tenantID uuid.UUID, credentialHash string, createdByID *uuid.UUID) (Staff, error) {
	role, err := NewRole(d.Role)
	if err != nil {
		return Staff{}, err
	}
	return New(tenantID, role, d.DisplayName, d.LoginHandle, d.Email, credentialHash, createdByID), nil
}
