package http

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
)

// HealthCheck checks one dependency; a nil error means it is usable.
type HealthCheck func(ctx context.Context) error

type HealthResponse struct {
	Status  string            `json:"status"`
	Time    string            `json:"time"`
	Version string            `json:"version,omitempty"`
	Checks  map[string]string `json:"checks"`
}

type HealthController struct {
	checks  map[string]HealthCheck
	version string
}

// NewHealthController reports on every named check. A nil check is listed
// as "not configured" and does not make the service unhealthy.
func NewHealthController(checks map[string]HealthCheck, version string) *HealthController {
	return &HealthController{
		checks:  checks,
		version: version,
	}
}

func (h *HealthController) Status(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	var (
		mu      sync.Mutex
		healthy = true
		results = make(map[string]string, len(h.checks))
	)
	var g errgroup.Group
	for name, check := range h.checks {
		g.Go(func() error {
			result := "ok"
			if check == nil {
				result = "not configured"
			} else if err := check(ctx); err != nil {
				result = "error: " + err.Error()
			}

			mu.Lock()
			defer mu.Unlock()
			results[name] = result
			if check != nil && result != "ok" {
				healthy = false
			}
			return nil
		})
	}
	_ = g.Wait()

	status, statusCode := "healthy", http.StatusOK
	if !healthy {
		status, statusCode = "unhealthy", http.StatusServiceUnavailable
	}

	c.IndentedJSON(statusCode, HealthResponse{
		Status:  status,
		Time:    time.Now().Format(time.RFC3339),
		Version: h.version,
		Checks:  results,
	})
}
