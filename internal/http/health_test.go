package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthController_Status(t *testing.T) {
	gin.SetMode(gin.TestMode)

	serve := func(controller *HealthController) (*httptest.ResponseRecorder, HealthResponse) {
		router := gin.New()
		router.GET("/health", controller.Status)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/health", nil)
		router.ServeHTTP(w, req)

		var response HealthResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		return w, response
	}

	t.Run("returns healthy when database is connected", func(t *testing.T) {
		db := newTestDB(t)
		w, response := serve(NewHealthController(map[string]HealthCheck{"database": db.Ping}, "1.0.0"))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "healthy", response.Status)
		assert.Equal(t, "1.0.0", response.Version)
		assert.Equal(t, "ok", response.Checks["database"])
		assert.NotEmpty(t, response.Time)
	})

	t.Run("reports not configured for a nil check", func(t *testing.T) {
		w, response := serve(NewHealthController(map[string]HealthCheck{"tasks": nil}, "1.0.0"))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "not configured", response.Checks["tasks"])
	})

	t.Run("returns unhealthy when database connection is closed", func(t *testing.T) {
		db := newTestDB(t)
		require.NoError(t, db.Close())

		w, response := serve(NewHealthController(map[string]HealthCheck{"database": db.Ping}, "1.0.0"))

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Equal(t, "unhealthy", response.Status)
		assert.Contains(t, response.Checks["database"], "error")
	})

	t.Run("one failing check makes the whole service unhealthy", func(t *testing.T) {
		checks := map[string]HealthCheck{
			"database": func(context.Context) error { return nil },
			"tasks":    func(context.Context) error { return errors.New("locked") },
		}
		w, response := serve(NewHealthController(checks, ""))

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Equal(t, "ok", response.Checks["database"])
		assert.Equal(t, "error: locked", response.Checks["tasks"])
	})
}

func TestRouter_HealthIncludesDatabase(t *testing.T) {
	env := setupCatalog(t)

	w := env.get("/health")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"database": "ok"`)
}
