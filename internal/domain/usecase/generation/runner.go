package generation

import (
	"context"
	"fmt"
	"sync"

	coreport "github.com/amirhossein-jamali/headshot-service/internal/domain/port/core"
)

// Dispatcher starts a generation out of band
type Dispatcher interface {
	// Dispatch returns false when the generation could not be started
	Dispatch(generationID uint64) bool
}

// ExecuteFunc is the function signature for running a generation
type ExecuteFunc func(ctx context.Context, generationID uint64) error

// Runner executes generations in background goroutines, detached from the
// request that triggered them
type Runner struct {
	execute      ExecuteFunc
	logger       coreport.Logger
	timeProvider coreport.TimeProvider
	timeout      coreport.Duration

	mu      sync.RWMutex
	closed  bool
	running sync.WaitGroup
}

// NewRunner creates a new runner
func NewRunner(
	execute ExecuteFunc,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
	timeout coreport.Duration,
) *Runner {
	if execute == nil {
		panic("generation execute function cannot be nil")
	}

	return &Runner{
		execute:      execute,
		logger:       logger,
		timeProvider: timeProvider,
		timeout:      timeout,
	}
}

// Dispatch starts the generation in its own goroutine
func (r *Runner) Dispatch(generationID uint64) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.closed {
		r.logger.Warn("Runner is shut down, generation not dispatched", map[string]any{
			"generation_id": generationID,
		})
		return false
	}

	r.running.Add(1)
	go r.run(generationID)

	r.logger.Debug("Generation dispatched", map[string]any{
		"generation_id": generationID,
	})
	return true
}

func (r *Runner) run(generationID uint64) {
	defer r.running.Done()
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Error("Generation runner recovered from panic", map[string]any{
				"generation_id": generationID,
				"panic":         fmt.Sprint(rec),
			})
		}
	}()

	ctx, cancel := r.timeProvider.WithTimeout(context.Background(), r.timeout)
	defer cancel()

	start := r.timeProvider.Now()
	err := r.execute(ctx, generationID)

	fields := map[string]any{
		"generation_id": generationID,
		"duration_ms":   r.timeProvider.Since(start).Std().Milliseconds(),
	}
	if err != nil {
		fields["error"] = err.Error()
		r.logger.Warn("Generation run finished with error", fields)
		return
	}
	r.logger.Info("Generation run finished", fields)
}

// Shutdown stops accepting work and waits for running generations until ctx ends
func (r *Runner) Shutdown(ctx context.Context) error {
	r.mu.Lock()
	r.closed = true
	r.mu.Unlock()

	r.logger.Info("Waiting for running generations", nil)

	done := make(chan struct{})
	go func() {
		r.running.Wait()
		close(done)
	}()

	select {
	case <-done:
		r.logger.Info("Generation runner shut down successfully", nil)
		return nil
	case <-ctx.Done():
		r.logger.Warn("Generation runner shutdown timed out", map[string]any{
			"error": ctx.Err().Error(),
		})
		return ctx.Err()
	}
}
