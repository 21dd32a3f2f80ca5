package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cmlabs-hris/attendance-backend/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProtected(t *testing.T, svc *jwt.JWTService, admin bool) http.Handler {
	t.Helper()
	r := chi.NewRouter()
	r.Use(jwtauth.Verifier(svc.JWTAuth()))
	r.Use(AuthRequired(svc))
	if admin {
		r.Use(AdminOnly)
	}
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		id, err := EmployeeID(r.Context())
		require.NoError(t, err)
		w.Header().Set("X-Employee", id)
		w.WriteHeader(http.StatusNoContent)
	})
	return r
}

func do(h http.Handler, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestAuthRequired(t *testing.T) {
	svc, err := jwt.NewJWTService("secret", "1h")
	require.NoError(t, err)

	access, exp, err := svc.GenerateAccessToken(jwt.Claims{EmployeeID: "e-1", Email: "a@b.c", Role: "employee"})
	require.NoError(t, err)
	sseToken, _, err := svc.GenerateSSEToken("e-1")
	require.NoError(t, err)

	h := newProtected(t, svc, false)

	rec := do(h, access)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "e-1", rec.Header().Get("X-Employee"))

	assert.Equal(t, http.StatusUnauthorized, do(h, "").Code)
	assert.Equal(t, http.StatusUnauthorized, do(h, sseToken).Code, "sse tokens are not access tokens")

	svc.RevokeToken(access, exp)
	assert.Equal(t, http.StatusUnauthorized, do(h, access).Code)
}

func TestAdminOnly(t *testing.T) {
	svc, err := jwt.NewJWTService("secret", "1h")
	require.NoError(t, err)

	employeeToken, _, err := svc.GenerateAccessToken(jwt.Claims{EmployeeID: "e-1", Role: "employee"})
	require.NoError(t, err)
	adminToken, _, err := svc.GenerateAccessToken(jwt.Claims{EmployeeID: "a-1", Role: "admin"})
	require.NoError(t, err)

	h := newProtected(t, svc, true)
	assert.Equal(t, http.StatusForbidden, do(h, employeeToken).Code)
	assert.Equal(t, http.StatusNoContent, do(h, adminToken).Code)
}
