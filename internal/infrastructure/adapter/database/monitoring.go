package database

import (
	"context"
	"time"

	coreport "github.com/amirhossein-jamali/headshot-service/internal/domain/port/core"
)

// QueryMetrics describes one timed database call
type QueryMetrics struct {
	Operation    string
	Duration     time.Duration
	RowsAffected int64
	Slow         bool
	Err          error
}

// MetricsCollector times database calls made outside GORM, such as health pings
type MetricsCollector struct {
	logger        coreport.Logger
	timeProvider  coreport.TimeProvider
	slowThreshold time.Duration
}

// NewMetricsCollector creates a collector; a zero slowThreshold disables slow-call warnings
func NewMetricsCollector(logger coreport.Logger, timeProvider coreport.TimeProvider, slowThreshold time.Duration) *MetricsCollector {
	return &MetricsCollector{
		logger:        logger,
		timeProvider:  timeProvider,
		slowThreshold: slowThreshold,
	}
}

// MeasureQuery runs fn and records how long it took. The returned metrics are never nil.
func (c *MetricsCollector) MeasureQuery(ctx context.Context, operation string, fn func(ctx context.Context) (int64, error)) (*QueryMetrics, error) {
	started := c.timeProvider.Now()
	rows, err := fn(ctx)

	m := &QueryMetrics{
		Operation:    operation,
		Duration:     c.timeProvider.Since(started).Std(),
		RowsAffected: rows,
		Err:          err,
	}
	m.Slow = c.slowThreshold > 0 && m.Duration > c.slowThreshold

	if m.Slow {
		fields := map[string]any{
			"operation":    operation,
			"duration_ms":  m.Duration.Milliseconds(),
			"threshold_ms": c.slowThreshold.Milliseconds(),
		}
		if err != nil {
			fields["error"] = err.Error()
		}
		c.logger.Warn("Slow database call", fields)
	}

	return m, err
}
