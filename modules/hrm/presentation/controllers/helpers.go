package controllers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/peopledesk/backoffice/pkg/composables"
	"github.com/peopledesk/backoffice/pkg/httpapi"
)

func requestLogger(r *http.Request) *logrus.Entry {
	logger, _ := composables.TryUseLogger(r.Context())
	return logger
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "INVALID_JSON", "request body must be valid JSON", nil)
		return false
	}
	return true
}

func pathUUID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	raw := mux.Vars(r)[name]
	id, err := uuid.Parse(raw)
	if err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "INVALID_ID", fmt.Sprintf("%s must be a uuid", name), nil)
		return uuid.Nil, false
	}
	return id, true
}

func parseUUIDs(raw []string) ([]uuid.UUID, error) {
	out := make([]uuid.UUID, 0, len(raw))
	for _, v := range raw {
		id, err := uuid.Parse(v)
		if err != nil {
			return nil, fmt.Errorf("invalid id %q", v)
		}
		out = append(out, id)
	}
	return out, nil
}
