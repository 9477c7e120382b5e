package main

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/phrazzld/users-api/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Port:                   8080,
			LogLevel:               "info",
			CORSAllowedOrigins:     []string{"https://app.example.com"},
			ShutdownTimeoutSeconds: 1,
		},
		Database: config.DatabaseConfig{
			Store:                  storeMemory,
			MaxOpenConns:           10,
			MaxIdleConns:           5,
			ConnMaxLifetimeMinutes: 5,
		},
	}
}

func newTestApp(t *testing.T) *application {
	t.Helper()
	app, err := newApplication(context.Background(), newTestConfig(), slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	return app
}

func TestSetupRouter_Health(t *testing.T) {
	router := newTestApp(t).setupRouter()

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "OK", rr.Body.String())
}

func TestSetupRouter_UserLifecycle(t *testing.T) {
	router := newTestApp(t).setupRouter()

	do := func(method, path, body string) *httptest.ResponseRecorder {
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(method, path, strings.NewReader(body)))
		return rr
	}

	rr := do(http.MethodPost, "/users", `{"email":"a@b.com","firstName":"A","lastName":"B"}`)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"id":1`)

	rr = do(http.MethodGet, "/users/999999", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, rr.Body.String(), `"error":"User not found"`)

	rr = do(http.MethodPut, "/users/1", `{"social":{"twitter":"not a url"}}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = do(http.MethodDelete, "/users/1", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Delete user : 1 successfully")

	rr = do(http.MethodGet, "/users/1", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestSetupRouter_CORS(t *testing.T) {
	router := newTestApp(t).setupRouter()

	req := httptest.NewRequest(http.MethodOptions, "/users", nil)
	req.Header.Set("Origin", "https://app.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, "https://app.example.com", rr.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/users", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Empty(t, rr.Header().Get("Access-Control-Allow-Origin"))
}

func TestSetupRouter_RequestIDHeaderBecomesTraceID(t *testing.T) {
	router := newTestApp(t).setupRouter()

	req := httptest.NewRequest(http.MethodGet, "/users/1", nil)
	req.Header.Set("X-Request-Id", "req-123")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, rr.Body.String(), `"trace_id":"req-123"`)
}
