package api_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rcpp-platform/rcpp-api/api"
)

var testSecret = []byte("test-secret")

func guardedEcho(t *testing.T) (http.Handler, *api.Session) {
	captured := &api.Session{}
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session, ok := api.SessionFromContext(r.Context())
		assert.True(t, ok)
		*captured = session
		w.WriteHeader(http.StatusOK)
	})
	guard := api.Guard{Secret: testSecret, AllowedRoles: []string{"Admin", "user"}}
	return guard.Middleware(next), captured
}

func TestGuardRejectsMissingToken(t *testing.T) {
	handler, _ := guardedEcho(t)

	req := httptest.NewRequest(http.MethodGet, "/cases", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.JSONEq(t, `{"error": "unauthorized"}`, rr.Body.String())
}

func TestGuardRejectsMalformedHeader(t *testing.T) {
	handler, _ := guardedEcho(t)

	req := httptest.NewRequest(http.MethodGet, "/cases", nil)
	req.Header.Set("Authorization", "Token abc123")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestGuardRejectsGarbageToken(t *testing.T) {
	handler, _ := guardedEcho(t)

	req := httptest.NewRequest(http.MethodGet, "/cases", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestGuardRejectsWrongSigningKey(t *testing.T) {
	handler, _ := guardedEcho(t)

	token, err := api.IssueToken([]byte("some-other-secret"), "abc", "a@b.c", "Admin")
	assert.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/cases", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestGuardRejectsDisallowedRole(t *testing.T) {
	handler, _ := guardedEcho(t)

	token, err := api.IssueToken(testSecret, "abc", "a@b.c", "Auditor")
	assert.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/cases", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusForbidden, rr.Code)
	assert.JSONEq(t, `{"error": "access denied"}`, rr.Body.String())
}

func TestGuardInjectsSession(t *testing.T) {
	handler, captured := guardedEcho(t)

	token, err := api.IssueToken(testSecret, "6123456789abcdef01234567", "officer@rcpp.gov.bd", "Admin")
	assert.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/cases", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "6123456789abcdef01234567", captured.UserID)
	assert.Equal(t, "officer@rcpp.gov.bd", captured.Email)
	assert.Equal(t, "Admin", captured.Role)
}

func TestResolveSessionMissingIdentity(t *testing.T) {
	token, err := api.IssueToken(testSecret, "", "a@b.c", "Admin")
	assert.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	_, err = api.ResolveSession(req, testSecret)
	assert.EqualError(t, err, "token missing identity")
}
