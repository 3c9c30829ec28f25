package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// ReadinessCheck probes one downstream dependency.
type ReadinessCheck func(ctx context.Context) error

// HealthHandler exposes liveness and readiness information.
type HealthHandler struct {
	startedAt time.Time
	checks    map[string]ReadinessCheck
}

// NewHealthHandler builds a new health handler instance.
func NewHealthHandler(checks map[string]ReadinessCheck) *HealthHandler {
	return &HealthHandler{
		startedAt: time.Now().UTC(),
		checks:    checks,
	}
}

// Status reports liveness. It never touches dependencies.
func (h *HealthHandler) Status(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:    "ok",
		StartedAt: h.startedAt,
		Timestamp: time.Now().UTC(),
	})
}

// Ready runs every registered dependency check and reports 503 when any
// of them fails.
func (h *HealthHandler) Ready(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	status := "ready"
	code := http.StatusOK
	results := make(map[string]string, len(h.checks))

	for name, check := range h.checks {
		if err := check(ctx); err != nil {
			status = "not_ready"
			code = http.StatusServiceUnavailable
			results[name] = err.Error()
			continue
		}
		results[name] = "ok"
	}

	c.JSON(code, ReadyResponse{
		Status:    status,
		Checks:    results,
		Timestamp: time.Now().UTC(),
	})
}
