package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/peopledesk/backoffice/modules/hrm/domain/aggregates/staff"
	"github.com/peopledesk/backoffice/pkg/composables"
)

const testSecret = "session-secret"

func signToken(t *testing.T, secret string, claims *SessionClaims) string {
	t.Helper()
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return raw
}

func sessionClaims(actorID, tenantID uuid.UUID, role string) *SessionClaims {
	return &SessionClaims{
		Role:     role,
		TenantID: tenantID.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   actorID.String(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
}

func TestAuthenticate_BindsActor(t *testing.T) {
	actorID := uuid.New()
	tenantID := uuid.New()
	token := signToken(t, testSecret, sessionClaims(actorID, tenantID, "manager"))

	var got composables.Actor
	handler := Authenticate(testSecret)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor, err := composables.UseActor(r.Context())
		require.NoError(t, err)
		got = actor
		w.WriteHeader(http.StatusNoContent)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/tasks/assigned", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Equal(t, actorID, got.ID)
	require.Equal(t, tenantID, got.TenantID)
	require.Equal(t, staff.RoleManager, got.Role)
}

func TestAuthenticate_Rejects(t *testing.T) {
	actorID := uuid.New()
	tenantID := uuid.New()

	cases := []struct {
		name   string
		header string
	}{
		{name: "missing header", header: ""},
		{name: "not bearer", header: "Basic abc"},
		{name: "garbage token", header: "Bearer not.a.jwt"},
		{
			name:   "wrong secret",
			header: "Bearer " + signToken(t, "other-secret", sessionClaims(actorID, tenantID, "hr")),
		},
		{
			name: "expired token",
			header: "Bearer " + signToken(t, testSecret, &SessionClaims{
				Role:     "hr",
				TenantID: tenantID.String(),
				RegisteredClaims: jwt.RegisteredClaims{
					Subject:   actorID.String(),
					ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
				},
			}),
		},
		{
			name:   "unknown role",
			header: "Bearer " + signToken(t, testSecret, sessionClaims(actorID, tenantID, "sysadmin")),
		},
		{
			name: "malformed subject",
			header: "Bearer " + signToken(t, testSecret, &SessionClaims{
				Role:     "hr",
				TenantID: tenantID.String(),
				RegisteredClaims: jwt.RegisteredClaims{
					Subject:   "not-a-uuid",
					ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
				},
			}),
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			handler := Authenticate(testSecret)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				t.Fatal("handler must not run for unauthenticated requests")
			}))

			req := httptest.NewRequest(http.MethodGet, "/api/tasks/assigned", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			require.Equal(t, http.StatusUnauthorized, rec.Code)
			require.Contains(t, rec.Body.String(), "UNAUTHENTICATED")
		})
	}
}
