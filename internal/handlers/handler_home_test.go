package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	portssvc "github.com/fbsys/fbs_backend/internal/core/ports/services"
	"github.com/fbsys/fbs_backend/internal/platform/config"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The frontend polls these endpoints without a token, so they must be
// reachable through the full route setup, outside the authenticated group.
func TestDiagnosticsEndpoints(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{
		FrontendBaseURL: "http://localhost:3000",
		JWTSecret:       "test-secret",
	}
	r := gin.New()
	RegisterRoutes(r, cfg, &portssvc.ServiceContainer{})

	for _, path := range []string{"/", "/health", "/message"} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, path, nil)
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code, "GET %s", path)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/message", nil))

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "FBS Backend is running", body["message"])
	assert.NotEmpty(t, body["description"])
	assert.NotEmpty(t, body["timestamp"])
}
