package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/amirhossein-jamali/headshot-service/internal/infrastructure/adapter/database"
)

// HealthReporter reports database health
type HealthReporter interface {
	Health(ctx context.Context) database.HealthReport
}

// HealthHandler serves the liveness endpoint
type HealthHandler struct {
	reporter HealthReporter
}

// NewHealthHandler creates a new health handler instance
func NewHealthHandler(reporter HealthReporter) *HealthHandler {
	return &HealthHandler{reporter: reporter}
}

// Check handles GET /healthz
func (h *HealthHandler) Check(c *gin.Context) {
	report := h.reporter.Health(c.Request.Context())
	status := http.StatusOK
	if !report.IsUp() {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, report)
}
