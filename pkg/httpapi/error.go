package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/peopledesk/backoffice/pkg/serrors"
)

// ErrorEnvelope standardizes JSON error responses for API namespaces.
type ErrorEnvelope struct {
	Message string            `json:"message"`
	Code    string            `json:"code"`
	Meta    map[string]string `json:"meta,omitempty"`
}

func WriteJSON(w http.ResponseWriter, status int, payload any) error {
	if w == nil {
		return nil
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return nil
	}
	return json.NewEncoder(w).Encode(payload)
}

func WriteError(w http.ResponseWriter, status int, code, message string, meta map[string]string) error {
	return WriteJSON(w, status, &ErrorEnvelope{
		Code:    code,
		Message: message,
		Meta:    meta,
	})
}

// WriteServiceError maps a service error to its stable status. Raw storage
// error text never reaches the caller; it is logged and replaced with a
// generic message.
func WriteServiceError(w http.ResponseWriter, logger *logrus.Entry, err error) {
	var be *serrors.BaseError
	if !errors.As(err, &be) {
		if logger != nil {
			logger.WithError(err).Error("unclassified error in request handler")
		}
		_ = WriteError(w, http.StatusInternalServerError, "INTERNAL", "internal server error", nil)
		return
	}

	status := statusForKind(be.Kind)
	message := be.Message
	if be.Kind == serrors.KindStorage {
		if logger != nil {
			logger.WithError(err).Error("storage failure in request handler")
		}
		message = "storage failure"
	}
	_ = WriteError(w, status, be.Code, message, be.Meta)
}

func statusForKind(kind serrors.Kind) int {
	switch kind {
	case serrors.KindValidation:
		return http.StatusBadRequest
	case serrors.KindNotFound:
		return http.StatusNotFound
	case serrors.KindPolicy:
		return http.StatusForbidden
	case serrors.KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
