package database

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/amirhossein-jamali/headshot-service/internal/infrastructure/adapter/logger"
	timeadapter "github.com/amirhossein-jamali/headshot-service/internal/infrastructure/adapter/time"
)

func TestManager_ConnectHealthClose(t *testing.T) {
	sqlDB, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)

	var gotDSN string
	manager := NewManager(validConfig(), logger.NewNoopLogger(), timeadapter.NewRealTimeProvider(),
		WithDialector(func(dsn string) gorm.Dialector {
			gotDSN = dsn
			return postgres.New(postgres.Config{Conn: sqlDB})
		}))

	mock.ExpectPing()
	_, err = manager.Connect(context.Background())
	require.NoError(t, err)
	assert.Contains(t, gotDSN, "dbname=headshots")
	assert.NotNil(t, manager.CreateUnitOfWork())

	mock.ExpectPing()
	report := manager.Health(context.Background())
	assert.True(t, report.IsUp())
	assert.Equal(t, 25, report.Pool.MaxOpenConnections)

	mock.ExpectPing().WillReturnError(errors.New("connection refused"))
	report = manager.Health(context.Background())
	assert.False(t, report.IsUp())
	assert.Equal(t, "connection refused", report.Error)

	mock.ExpectClose()
	require.NoError(t, manager.Close())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestManager_RejectsInvalidConfig(t *testing.T) {
	cfg := validConfig()
	cfg.Host = ""

	manager := NewManager(cfg, logger.NewNoopLogger(), timeadapter.NewRealTimeProvider())
	_, err := manager.Connect(context.Background())
	assert.ErrorContains(t, err, "invalid database configuration")

	assert.False(t, manager.Health(context.Background()).IsUp())
	assert.NoError(t, manager.Close())
}
