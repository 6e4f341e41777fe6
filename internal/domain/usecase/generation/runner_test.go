package generation

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	coreport "github.com/amirhossein-jamali/headshot-service/internal/domain/port/core"
	coremocks "github.com/amirhossein-jamali/headshot-service/mocks/port/core"
)

func newRunnerTimeProvider(t *testing.T) *coremocks.MockTimeProvider {
	tp := coremocks.NewMockTimeProvider(t)
	tp.On("WithTimeout", mock.Anything, mock.Anything).Return(
		func(ctx context.Context, d coreport.Duration) (context.Context, context.CancelFunc) {
			return context.WithTimeout(ctx, d.Std())
		},
	).Maybe()
	tp.On("Now").Return(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)).Maybe()
	tp.On("Since", mock.Anything).Return(coreport.Duration(0)).Maybe()
	return tp
}

func TestRunner_Dispatch(t *testing.T) {
	t.Run("executes in background with a detached deadline", func(t *testing.T) {
		var (
			mu       sync.Mutex
			executed []uint64
			deadline bool
		)
		execute := func(ctx context.Context, id uint64) error {
			mu.Lock()
			defer mu.Unlock()
			executed = append(executed, id)
			_, deadline = ctx.Deadline()
			return nil
		}
		runner := NewRunner(execute, newRunnerTimeProvider(t), newTestLogger(t), 5*coreport.Minute)

		assert.True(t, runner.Dispatch(7))
		assert.True(t, runner.Dispatch(8))
		require.NoError(t, runner.Shutdown(context.Background()))

		mu.Lock()
		defer mu.Unlock()
		assert.ElementsMatch(t, []uint64{7, 8}, executed)
		assert.True(t, deadline)
	})

	t.Run("errors and panics do not escape", func(t *testing.T) {
		execute := func(ctx context.Context, id uint64) error {
			if id == 1 {
				panic("unexpected")
			}
			return errors.New("inference failed")
		}
		runner := NewRunner(execute, newRunnerTimeProvider(t), newTestLogger(t), coreport.Minute)

		assert.True(t, runner.Dispatch(1))
		assert.True(t, runner.Dispatch(2))
		assert.NoError(t, runner.Shutdown(context.Background()))
	})

	t.Run("rejects work after shutdown", func(t *testing.T) {
		runner := NewRunner(func(ctx context.Context, id uint64) error { return nil },
			newRunnerTimeProvider(t), newTestLogger(t), coreport.Minute)

		require.NoError(t, runner.Shutdown(context.Background()))

		assert.False(t, runner.Dispatch(3))
	})

	t.Run("shutdown gives up when context ends", func(t *testing.T) {
		release := make(chan struct{})
		started := make(chan struct{})
		execute := func(ctx context.Context, id uint64) error {
			close(started)
			<-release
			return nil
		}
		runner := NewRunner(execute, newRunnerTimeProvider(t), newTestLogger(t), coreport.Minute)

		require.True(t, runner.Dispatch(9))
		<-started

		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()
		err := runner.Shutdown(ctx)

		assert.ErrorIs(t, err, context.DeadlineExceeded)
		close(release)
		assert.NoError(t, runner.Shutdown(context.Background()))
	})
}

func TestNewRunner_PanicsWithoutExecuteFunc(t *testing.T) {
	assert.Panics(t, func() {
		NewRunner(nil, coremocks.NewMockTimeProvider(t), newTestLogger(t), coreport.Minute)
	})
}
