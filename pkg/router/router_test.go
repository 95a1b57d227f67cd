package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"messaging-demo/backend/pkg/config"
	"messaging-demo/backend/pkg/di"
	"messaging-demo/backend/pkg/jwt"
	"messaging-demo/backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestContainer wires a container without a database; only routes that
// never touch the services are exercised here.
func newTestContainer() *di.Container {
	cfg := &config.Config{}
	cfg.Server.Env = "test"

	return &di.Container{
		Config:     cfg,
		Logger:     logger.New(logger.Config{Level: "error", JSON: true}),
		JWTService: jwt.NewService("test-secret", time.Hour),
	}
}

func TestHealthEndpoint(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := New(newTestContainer())
	r.SetupRoutes()

	req, _ := http.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	r.Engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp["status"])
	assert.Equal(t, "test", resp["env"])
}

func TestCORSPreflight(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := New(newTestContainer())
	r.SetupRoutes()

	req, _ := http.NewRequest(http.MethodOptions, "/api/v2/login", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	w := httptest.NewRecorder()
	r.Engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "POST")
}

func TestProtectedRouteNeedsToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := New(newTestContainer())
	r.SetupRoutes()

	req, _ := http.NewRequest(http.MethodGet, "/api/v2/users?page=1&limit=10", nil)
	w := httptest.NewRecorder()
	r.Engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "401", resp["error_code"])
}
