package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	coreport "github.com/amirhossein-jamali/headshot-service/internal/domain/port/core"
	"github.com/amirhossein-jamali/headshot-service/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/headshot-service/internal/infrastructure/adapter/database/migration"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const poolMonitorInterval = 30 * coreport.Second

// Manager manages database connections
type Manager struct {
	config            *Config
	db                *gorm.DB
	sqlDB             *sql.DB
	logger            coreport.Logger
	timeProvider      coreport.TimeProvider
	dialector         func(dsn string) gorm.Dialector
	isolation         string
	connectionMonitor *ConnectionPoolMonitor
	healthChecker     *HealthChecker
}

// ManagerOption customizes a Manager
type ManagerOption func(*Manager)

// WithDialector replaces the PostgreSQL dialector, mainly for tests
func WithDialector(dialector func(dsn string) gorm.Dialector) ManagerOption {
	return func(m *Manager) {
		m.dialector = dialector
	}
}

// NewManager creates a new database manager
func NewManager(config *Config, logger coreport.Logger, timeProvider coreport.TimeProvider, opts ...ManagerOption) *Manager {
	m := &Manager{
		config:       config,
		logger:       logger,
		timeProvider: timeProvider,
		dialector:    postgres.Open,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Connect establishes a database connection, retrying transient failures
func (m *Manager) Connect(ctx context.Context) (*gorm.DB, error) {
	if err := m.config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid database configuration: %w", err)
	}
	isolation, err := m.config.IsolationStatement()
	if err != nil {
		return nil, err
	}
	m.isolation = isolation

	m.logger.Info("Connecting to database", map[string]any{
		"host": m.config.Host,
		"port": m.config.Port,
		"name": m.config.Database,
	})

	gormConfig := &gorm.Config{
		Logger: NewDatabaseLogger(m.logger, m.timeProvider, m.config.LogLevel, m.config.SlowThreshold),
		NowFunc: func() time.Time {
			return m.timeProvider.Now()
		},
		PrepareStmt:            true,
		SkipDefaultTransaction: true,
	}

	retry := RetryConfig{
		MaxRetries:    m.config.RetryAttempts,
		RetryInterval: m.config.RetryDelay,
		MaxInterval:   4 * m.config.RetryDelay,
		JitterFactor:  0.2,
	}

	var gormDB *gorm.DB
	err = RetryOnTransientError(ctx, retry, func() error {
		var openErr error
		gormDB, openErr = gorm.Open(m.dialector(m.config.DSN()), gormConfig)
		return openErr
	}, m.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database after %d attempts: %w", m.config.RetryAttempts, err)
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database connection: %w", err)
	}

	sqlDB.SetMaxOpenConns(m.config.MaxOpenConns)
	sqlDB.SetMaxIdleConns(m.config.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(m.config.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(m.config.ConnMaxIdleTime)

	m.logger.Info("Successfully connected to database", map[string]any{
		"host":           m.config.Host,
		"name":           m.config.Database,
		"max_open_conns": m.config.MaxOpenConns,
		"max_idle_conns": m.config.MaxIdleConns,
		"isolation":      m.config.Isolation,
	})

	m.db = gormDB
	m.sqlDB = sqlDB
	m.healthChecker = NewHealthChecker(
		sqlDB,
		m.logger,
		m.timeProvider,
		NewMetricsCollector(m.logger, m.timeProvider, m.config.SlowThreshold),
		coreport.Duration(m.config.QueryTimeout),
	)
	m.connectionMonitor = NewConnectionPoolMonitor(sqlDB, m.logger, m.timeProvider)
	m.connectionMonitor.Start(poolMonitorInterval)

	return m.db, nil
}

// DB returns the GORM database instance
func (m *Manager) DB() *gorm.DB {
	return m.db
}

// Migrate brings the schema to the current version
func (m *Manager) Migrate(ctx context.Context) error {
	return migration.NewMigrationManager(m.db, m.logger, m.timeProvider).MigrateAll(ctx)
}

// Health pings the database and reports pool statistics
func (m *Manager) Health(ctx context.Context) HealthReport {
	if m.healthChecker == nil {
		return HealthReport{Status: HealthStatusDown, Error: "database not connected"}
	}
	return m.healthChecker.Check(ctx)
}

// Close closes the database connection
func (m *Manager) Close() error {
	m.logger.Info("Closing database connection", nil)

	if m.connectionMonitor != nil {
		m.connectionMonitor.Stop()
	}
	if m.sqlDB == nil {
		return nil
	}
	return m.sqlDB.Close()
}

// CreateUnitOfWork creates a new UnitOfWork instance
func (m *Manager) CreateUnitOfWork() persistence.UnitOfWork {
	return NewUnitOfWork(m.db, m.logger, m.timeProvider, m.isolation)
}
