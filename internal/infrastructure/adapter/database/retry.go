package database

import (
	"context"
	"strings"
	"time"

	coreport "github.com/amirhossein-jamali/headshot-service/internal/domain/port/core"
	"github.com/cenkalti/backoff/v4"
)

// RetryConfig holds configuration for retry operations
type RetryConfig struct {
	MaxRetries    int
	RetryInterval time.Duration
	MaxInterval   time.Duration
	JitterFactor  float64
}

// DefaultRetryConfig returns the default retry configuration
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxRetries:    5,
		RetryInterval: 100 * time.Millisecond,
		MaxInterval:   2 * time.Second,
		JitterFactor:  0.2,
	}
}

// newBackOff builds the exponential policy for config, bounded by MaxRetries and ctx
func newBackOff(ctx context.Context, config RetryConfig) backoff.BackOff {
	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = config.RetryInterval
	policy.MaxInterval = config.MaxInterval
	policy.RandomizationFactor = config.JitterFactor
	policy.MaxElapsedTime = 0

	retries := config.MaxRetries - 1
	if retries < 0 {
		retries = 0
	}
	return backoff.WithContext(backoff.WithMaxRetries(policy, uint64(retries)), ctx)
}

// RetryOnTransientError runs operation until it succeeds, returns a non-transient error,
// or MaxRetries attempts have been made
func RetryOnTransientError(
	ctx context.Context,
	config RetryConfig,
	operation func() error,
	logger coreport.Logger,
) error {
	attempt := 0
	err := backoff.RetryNotify(
		func() error {
			attempt++
			err := operation()
			if err != nil && !IsTransientError(err) {
				return backoff.Permanent(err)
			}
			return err
		},
		newBackOff(ctx, config),
		func(err error, wait time.Duration) {
			logger.Warn("Transient database error, retrying operation", map[string]any{
				"attempt":     attempt,
				"max_retries": config.MaxRetries,
				"error":       err.Error(),
				"retry_after": wait.String(),
			})
		},
	)

	if err != nil && IsTransientError(err) {
		logger.Error("All retry attempts failed", map[string]any{
			"attempts":    attempt,
			"max_retries": config.MaxRetries,
			"error":       err.Error(),
		})
	}
	return err
}

// IsTransientError checks if an error is transient and can be retried
func IsTransientError(err error) bool {
	if err == nil {
		return false
	}

	errMsg := strings.ToLower(err.Error())
	return strings.Contains(errMsg, "deadlock") ||
		strings.Contains(errMsg, "could not serialize access") ||
		strings.Contains(errMsg, "connection reset") ||
		strings.Contains(errMsg, "connection refused") ||
		strings.Contains(errMsg, "i/o timeout") ||
		strings.Contains(errMsg, "too many connections") ||
		strings.Contains(errMsg, "server closed") ||
		strings.Contains(errMsg, "broken pipe") ||
		strings.Contains(errMsg, "lock timeout") ||
		strings.Contains(errMsg, "unexpected eof")
}
