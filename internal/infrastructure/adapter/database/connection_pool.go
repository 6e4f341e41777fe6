package database

import (
	"context"
	"database/sql"
	"sync"

	coreport "github.com/amirhossein-jamali/headshot-service/internal/domain/port/core"
)

// ConnectionPoolMetrics tracks database connection pool metrics
type ConnectionPoolMetrics struct {
	OpenConnections    int   `json:"openConnections"`
	IdleConnections    int   `json:"idleConnections"`
	MaxOpenConnections int   `json:"maxOpenConnections"`
	InUse              int   `json:"inUse"`
	WaitCount          int64 `json:"waitCount"`
	WaitDurationMs     int64 `json:"waitDurationMs"`
	MaxIdleClosed      int64 `json:"maxIdleClosed"`
	MaxLifetimeClosed  int64 `json:"maxLifetimeClosed"`
}

func poolMetrics(stats sql.DBStats) ConnectionPoolMetrics {
	return ConnectionPoolMetrics{
		OpenConnections:    stats.OpenConnections,
		IdleConnections:    stats.Idle,
		MaxOpenConnections: stats.MaxOpenConnections,
		InUse:              stats.InUse,
		WaitCount:          stats.WaitCount,
		WaitDurationMs:     stats.WaitDuration.Milliseconds(),
		MaxIdleClosed:      stats.MaxIdleClosed,
		MaxLifetimeClosed:  stats.MaxLifetimeClosed,
	}
}

// ConnectionPoolMonitor periodically samples the connection pool and warns
// when it is close to exhaustion
type ConnectionPoolMonitor struct {
	sqlDB        *sql.DB
	logger       coreport.Logger
	timeProvider coreport.TimeProvider
	metricsCache *ConnectionPoolMetrics
	mutex        sync.RWMutex
	stopChan     chan struct{}
	stopOnce     sync.Once
}

// NewConnectionPoolMonitor creates a new connection pool monitor
func NewConnectionPoolMonitor(sqlDB *sql.DB, logger coreport.Logger, timeProvider coreport.TimeProvider) *ConnectionPoolMonitor {
	return &ConnectionPoolMonitor{
		sqlDB:        sqlDB,
		logger:       logger,
		timeProvider: timeProvider,
		stopChan:     make(chan struct{}),
	}
}

// Start begins monitoring the connection pool
func (m *ConnectionPoolMonitor) Start(interval coreport.Duration) {
	ticker := m.timeProvider.NewTicker(interval)
	m.collectMetrics()

	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C():
				m.collectMetrics()
			case <-m.stopChan:
				return
			}
		}
	}()
}

// Stop stops the monitoring
func (m *ConnectionPoolMonitor) Stop() {
	m.stopOnce.Do(func() { close(m.stopChan) })
}

// GetMetrics returns the last sampled connection pool metrics
func (m *ConnectionPoolMonitor) GetMetrics() ConnectionPoolMetrics {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	if m.metricsCache == nil {
		return ConnectionPoolMetrics{}
	}
	return *m.metricsCache
}

func (m *ConnectionPoolMonitor) collectMetrics() {
	metrics := poolMetrics(m.sqlDB.Stats())

	m.mutex.Lock()
	m.metricsCache = &metrics
	m.mutex.Unlock()

	threshold := float64(metrics.MaxOpenConnections) * 0.8
	if metrics.MaxOpenConnections > 0 && float64(metrics.InUse) > threshold {
		m.logger.Warn("Database connection pool nearly exhausted", map[string]any{
			"in_use":     metrics.InUse,
			"max_open":   metrics.MaxOpenConnections,
			"idle":       metrics.IdleConnections,
			"wait_count": metrics.WaitCount,
			"wait_ms":    metrics.WaitDurationMs,
		})
	}
}

// HealthReport is the database section of the health endpoint
type HealthReport struct {
	Status    string                `json:"status"`
	LatencyMs int64                 `json:"latencyMs"`
	Pool      ConnectionPoolMetrics `json:"pool"`
	Error     string                `json:"error,omitempty"`
}

// Health statuses
const (
	HealthStatusUp   = "up"
	HealthStatusDown = "down"
)

// IsUp reports whether the database answered the ping
func (r HealthReport) IsUp() bool {
	return r.Status == HealthStatusUp
}

// HealthChecker pings the database on demand
type HealthChecker struct {
	sqlDB        *sql.DB
	logger       coreport.Logger
	timeProvider coreport.TimeProvider
	metrics      *MetricsCollector
	timeout      coreport.Duration
}

// NewHealthChecker creates a new health checker
func NewHealthChecker(sqlDB *sql.DB, logger coreport.Logger, timeProvider coreport.TimeProvider, metrics *MetricsCollector, timeout coreport.Duration) *HealthChecker {
	return &HealthChecker{
		sqlDB:        sqlDB,
		logger:       logger,
		timeProvider: timeProvider,
		metrics:      metrics,
		timeout:      timeout,
	}
}

// Check pings the database and reports pool statistics
func (h *HealthChecker) Check(ctx context.Context) HealthReport {
	ctx, cancel := h.timeProvider.WithTimeout(ctx, h.timeout)
	defer cancel()

	measured, err := h.metrics.MeasureQuery(ctx, "ping", func(ctx context.Context) (int64, error) {
		return 0, h.sqlDB.PingContext(ctx)
	})

	report := HealthReport{
		Status:    HealthStatusUp,
		LatencyMs: measured.Duration.Milliseconds(),
		Pool:      poolMetrics(h.sqlDB.Stats()),
	}
	if err != nil {
		h.logger.Error("Database ping failed", map[string]any{
			"error": err.Error(),
		})
		report.Status = HealthStatusDown
		report.Error = err.Error()
	}
	return report
}
