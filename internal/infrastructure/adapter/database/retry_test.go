package database

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/amirhossein-jamali/headshot-service/internal/infrastructure/adapter/logger"
)

func fastRetryConfig(maxRetries int) RetryConfig {
	return RetryConfig{
		MaxRetries:    maxRetries,
		RetryInterval: time.Millisecond,
		MaxInterval:   2 * time.Millisecond,
	}
}

func TestRetryOnTransientError(t *testing.T) {
	t.Run("succeeds after transient failures", func(t *testing.T) {
		calls := 0
		err := RetryOnTransientError(context.Background(), fastRetryConfig(3), func() error {
			calls++
			if calls < 3 {
				return errors.New("dial tcp: connection refused")
			}
			return nil
		}, logger.NewNoopLogger())

		assert.NoError(t, err)
		assert.Equal(t, 3, calls)
	})

	t.Run("gives up after max retries", func(t *testing.T) {
		calls := 0
		err := RetryOnTransientError(context.Background(), fastRetryConfig(2), func() error {
			calls++
			return errors.New("write: broken pipe")
		}, logger.NewNoopLogger())

		assert.EqualError(t, err, "write: broken pipe")
		assert.Equal(t, 2, calls)
	})

	t.Run("does not retry permanent errors", func(t *testing.T) {
		calls := 0
		permanent := errors.New(`relation "generations" does not exist`)
		err := RetryOnTransientError(context.Background(), fastRetryConfig(5), func() error {
			calls++
			return permanent
		}, logger.NewNoopLogger())

		assert.ErrorIs(t, err, permanent)
		assert.Equal(t, 1, calls)
	})

	t.Run("stops when context is cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		calls := 0
		err := RetryOnTransientError(ctx, fastRetryConfig(10), func() error {
			calls++
			cancel()
			return errors.New("connection reset by peer")
		}, logger.NewNoopLogger())

		assert.Error(t, err)
		assert.Equal(t, 1, calls)
	})
}

func TestIsTransientError(t *testing.T) {
	assert.True(t, IsTransientError(errors.New("ERROR: deadlock detected")))
	assert.True(t, IsTransientError(errors.New("read tcp: i/o timeout")))
	assert.False(t, IsTransientError(errors.New("duplicate key value violates unique constraint")))
	assert.False(t, IsTransientError(nil))
}
