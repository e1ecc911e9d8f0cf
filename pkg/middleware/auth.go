package middleware

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/peopledesk/backoffice/modules/hrm/domain/aggregates/staff"
	"github.com/peopledesk/backoffice/pkg/composables"
	"github.com/peopledesk/backoffice/pkg/httpapi"
)

// SessionClaims is the payload of the externally-issued session token. This
// service verifies the signature and extracts the caller identity; it never
// issues tokens.
type SessionClaims struct {
	Role     string `json:"role"`
	TenantID string `json:"tenant_id"`
	jwt.RegisteredClaims
}

// Authenticate verifies the bearer token and binds the resulting actor
// (id, role, tenant) to the request context.
func Authenticate(secret string) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actor, ok := actorFromRequest(r, secret)
			if !ok {
				_ = httpapi.WriteError(w, http.StatusUnauthorized, "UNAUTHENTICATED", "missing or invalid session token", nil)
				return
			}
			next.ServeHTTP(w, r.WithContext(composables.WithActor(r.Context(), actor)))
		})
	}
}

func actorFromRequest(r *http.Request, secret string) (composables.Actor, bool) {
	header := r.Header.Get("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return composables.Actor{}, false
	}
	raw := strings.TrimPrefix(header, "Bearer ")

	claims := &SessionClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return composables.Actor{}, false
	}

	actorID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return composables.Actor{}, false
	}
	tenantID, err := uuid.Parse(claims.TenantID)
	if err != nil {
		return composables.Actor{}, false
	}
	role, err := staff.NewRole(claims.Role)
	if err != nil {
		return composables.Actor{}, false
	}

	return composables.Actor{ID: actorID, TenantID: tenantID, Role: role}, true
}
