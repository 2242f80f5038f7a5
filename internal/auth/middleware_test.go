package auth_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/inletdocs/pdf-insight-api/internal/auth"
	"github.com/inletdocs/pdf-insight-api/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestMiddleware() *auth.Middleware {
	return auth.NewMiddleware(&config.AuthConfig{
		ApiKey:    "admin-key",
		JWTSecret: testSecret,
	}, zap.NewNop())
}

func protectedHandler(t *testing.T, gotUser **auth.UserContext) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userCtx, ok := auth.FromContext(r.Context())
		require.True(t, ok)
		*gotUser = userCtx
		w.WriteHeader(http.StatusOK)
	})
}

func TestRequireAdmin_ValidAPIKey(t *testing.T) {
	var gotUser *auth.UserContext
	handler := newTestMiddleware().RequireAdmin(protectedHandler(t, &gotUser))

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/reports/abc", nil)
	req.Header.Set("x-api-key", "admin-key")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, gotUser)
	assert.Equal(t, "api-key", gotUser.Subject)
}

func TestRequireAdmin_InvalidAPIKey(t *testing.T) {
	handler := newTestMiddleware().RequireAdmin(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not be reached")
	}))

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/reports/abc", nil)
	req.Header.Set("x-api-key", "wrong-key")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "unauthorized")
}

func TestRequireAdmin_ValidBearerToken(t *testing.T) {
	var gotUser *auth.UserContext
	handler := newTestMiddleware().RequireAdmin(protectedHandler(t, &gotUser))

	token := signToken(t, testSecret, jwt.MapClaims{
		"sub":  "user-42",
		"name": "Ops User",
		"exp":  time.Now().Add(time.Hour).Unix(),
	})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/reports/abc/reanalyze", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, gotUser)
	assert.Equal(t, "user-42", gotUser.Subject)
}

func TestRequireAdmin_ExpiredBearerToken(t *testing.T) {
	handler := newTestMiddleware().RequireAdmin(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not be reached")
	}))

	token := signToken(t, testSecret, jwt.MapClaims{
		"sub": "user-42",
		"exp": time.Now().Add(-time.Hour).Unix(),
	})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/reports/abc/reanalyze", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAdmin_NoCredentials(t *testing.T) {
	handler := newTestMiddleware().RequireAdmin(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not be reached")
	}))

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/reports/abc", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
