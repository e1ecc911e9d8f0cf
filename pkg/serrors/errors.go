package serrors

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Kind classifies service errors so transports can map them to a stable
// status without inspecting storage-layer error text.
type Kind string

const (
	KindValidation Kind = "VALIDATION"
	KindNotFound   Kind = "NOT_FOUND"
	KindPolicy     Kind = "POLICY"
	KindConflict   Kind = "CONFLICT"
	KindStorage    Kind = "STORAGE"
)

type BaseError struct {
	Kind    Kind
	Code    string
	Message string
	Meta    map[string]string
	cause   error
}

func (e *BaseError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *BaseError) Unwrap() error {
	return e.cause
}

func NewError(kind Kind, code, message string) *BaseError {
	return &BaseError{
		Kind:    kind,
		Code:    code,
		Message: message,
	}
}

func (e *BaseError) WithMeta(meta map[string]string) *BaseError {
	e.Meta = meta
	return e
}

func (e *BaseError) WithCause(err error) *BaseError {
	e.cause = err
	return e
}

func NewValidation(code, message string) *BaseError {
	return NewError(KindValidation, code, message)
}

func NewNotFound(code, message string) *BaseError {
	return NewError(KindNotFound, code, message)
}

func NewPolicy(code, message string) *BaseError {
	return NewError(KindPolicy, code, message)
}

func NewConflict(code, message string) *BaseError {
	return NewError(KindConflict, code, message)
}

// NewStorage wraps an unclassified persistence failure. The cause stays
// available for logging via Unwrap but is never rendered to callers.
func NewStorage(message string, cause error) *BaseError {
	return NewError(KindStorage, "STORAGE_FAILURE", message).WithCause(cause)
}

// KindOf returns the kind of err, or KindStorage when err carries no
// classification.
func KindOf(err error) Kind {
	var be *BaseError
	if errors.As(err, &be) {
		return be.Kind
	}
	return KindStorage
}

func IsKind(err error, kind Kind) bool {
	var be *BaseError
	if errors.As(err, &be) {
		return be.Kind == kind
	}
	return false
}

// ValidationErrors maps a field name to a human-readable message.
type ValidationErrors map[string]string

// ProcessValidatorErrors flattens go-playground validator output into
// per-field messages.
func ProcessValidatorErrors(errs validator.ValidationErrors) ValidationErrors {
	out := make(ValidationErrors, len(errs))
	for _, fe := range errs {
		switch fe.Tag() {
		case "required":
			out[fe.Field()] = fmt.Sprintf("%s is required", fe.Field())
		case "email":
			out[fe.Field()] = fmt.Sprintf("%s must be a valid email address", fe.Field())
		case "oneof":
			out[fe.Field()] = fmt.Sprintf("%s must be one of: %s", fe.Field(), fe.Param())
		default:
			out[fe.Field()] = fmt.Sprintf("%s is invalid", fe.Field())
		}
	}
	return out
}
