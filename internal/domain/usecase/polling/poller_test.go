package polling

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/amirhossein-jamali/headshot-service/internal/domain/entity"
	errs "github.com/amirhossein-jamali/headshot-service/internal/domain/error"
	coreport "github.com/amirhossein-jamali/headshot-service/internal/domain/port/core"
	coremocks "github.com/amirhossein-jamali/headshot-service/mocks/port/core"
	gatewaymocks "github.com/amirhossein-jamali/headshot-service/mocks/port/gateway"
)

const generationID = uint64(42)

type pollerFixture struct {
	client    *gatewaymocks.MockStatusClient
	time      *coremocks.MockTimeProvider
	ticker    *coremocks.MockTicker
	ticks     chan time.Time
	refreshes []Result
	poller    *Poller
}

func newPollerFixture(t *testing.T, maxAttempts int) *pollerFixture {
	logger := coremocks.NewMockLogger(t)
	for _, method := range []string{"Debug", "Info", "Warn", "Error"} {
		logger.On(method, mock.Anything, mock.Anything).Maybe()
	}
	logger.On("With", mock.Anything).Return(logger).Maybe()

	f := &pollerFixture{
		client: gatewaymocks.NewMockStatusClient(t),
		time:   coremocks.NewMockTimeProvider(t),
		ticker: coremocks.NewMockTicker(t),
		ticks:  make(chan time.Time),
	}
	f.ticker.On("C").Return(f.ticks).Maybe()
	f.poller = NewPoller(f.client, f.time, logger, Config{Interval: coreport.Second, MaxAttempts: maxAttempts},
		func(r Result) { f.refreshes = append(f.refreshes, r) })
	return f
}

// tick delivers n ticks, each one after the previous query has returned
func (f *pollerFixture) tick(n int) {
	go func() {
		for i := 0; i < n; i++ {
			f.ticks <- time.Now()
		}
	}()
}

func snapshot(status entity.GenerationStatus) *entity.GenerationSnapshot {
	return &entity.GenerationSnapshot{ID: generationID, Status: status}
}

func processing() entity.GenerationSnapshot {
	return *snapshot(entity.StatusProcessing)
}

func TestPoller_IdleUnlessProcessing(t *testing.T) {
	f := newPollerFixture(t, 3)

	result, err := f.poller.Run(context.Background(), *snapshot(entity.StatusCompleted))

	require.NoError(t, err)
	assert.Equal(t, StateIdle, result.State)
	assert.Empty(t, f.refreshes)
	f.client.AssertNotCalled(t, "Status", mock.Anything, mock.Anything)
}

func TestPoller_CompletesOnFirstQuery(t *testing.T) {
	f := newPollerFixture(t, 3)
	url := "https://img/42.png"
	f.client.On("Status", mock.Anything, generationID).
		Return(&entity.GenerationSnapshot{ID: generationID, Status: entity.StatusCompleted, ImageURL: &url}, nil).Once()

	result, err := f.poller.Run(context.Background(), processing())

	require.NoError(t, err)
	assert.Equal(t, StateCompleted, result.State)
	assert.Equal(t, 1, result.Attempts)
	assert.Len(t, f.refreshes, 1)
	f.time.AssertNotCalled(t, "NewTicker", mock.Anything)
}

func TestPoller_CompletesAfterTicks(t *testing.T) {
	f := newPollerFixture(t, 5)
	f.time.On("NewTicker", coreport.Second).Return(f.ticker).Once()
	f.ticker.On("Stop").Return().Once()
	f.client.On("Status", mock.Anything, generationID).Return(snapshot(entity.StatusProcessing), nil).Twice()
	f.client.On("Status", mock.Anything, generationID).Return(snapshot(entity.StatusFailed), nil).Once()
	f.tick(2)

	result, err := f.poller.Run(context.Background(), processing())

	require.NoError(t, err)
	assert.Equal(t, StateFailed, result.State)
	assert.Equal(t, 3, result.Attempts)
	require.Len(t, f.refreshes, 1)
	assert.Equal(t, StateFailed, f.refreshes[0].State)
	f.client.AssertNotCalled(t, "MarkFailed", mock.Anything, mock.Anything, mock.Anything)
}

func TestPoller_TimesOutAndMarksFailedOnce(t *testing.T) {
	const maxAttempts = 4
	f := newPollerFixture(t, maxAttempts)
	f.time.On("NewTicker", coreport.Second).Return(f.ticker).Once()
	f.ticker.On("Stop").Return().Once()
	f.client.On("Status", mock.Anything, generationID).Return(snapshot(entity.StatusProcessing), nil).Times(maxAttempts)
	f.client.On("MarkFailed", mock.Anything, generationID, TimeoutReason).Return(nil).Once()
	f.tick(maxAttempts - 1)

	result, err := f.poller.Run(context.Background(), processing())

	assert.ErrorIs(t, err, errs.ErrPollTimeout)
	assert.Equal(t, StateTimedOut, result.State)
	assert.Equal(t, maxAttempts, result.Attempts)
	assert.Len(t, f.refreshes, 1)
	f.client.AssertNumberOfCalls(t, "MarkFailed", 1)
}

func TestPoller_QueryErrorStopsWithoutMutation(t *testing.T) {
	f := newPollerFixture(t, 5)
	f.time.On("NewTicker", coreport.Second).Return(f.ticker).Once()
	f.ticker.On("Stop").Return().Once()
	f.client.On("Status", mock.Anything, generationID).Return(snapshot(entity.StatusProcessing), nil).Once()
	f.client.On("Status", mock.Anything, generationID).Return(nil, errors.New("connection refused")).Once()
	f.tick(1)

	result, err := f.poller.Run(context.Background(), processing())

	assert.ErrorIs(t, err, errs.ErrConnection)
	assert.Equal(t, StateErrored, result.State)
	assert.Len(t, f.refreshes, 1)
	f.client.AssertNotCalled(t, "MarkFailed", mock.Anything, mock.Anything, mock.Anything)
}

func TestPoller_CancellationStopsLocally(t *testing.T) {
	f := newPollerFixture(t, 5)
	ctx, cancel := context.WithCancel(context.Background())
	f.time.On("NewTicker", coreport.Second).Return(f.ticker).Once()
	f.ticker.On("Stop").Return().Once()
	f.client.On("Status", mock.Anything, generationID).Run(func(args mock.Arguments) {
		cancel()
	}).Return(snapshot(entity.StatusProcessing), nil).Once()

	result, err := f.poller.Run(ctx, processing())

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, StatePolling, result.State)
	assert.Empty(t, f.refreshes)
	f.client.AssertNotCalled(t, "MarkFailed", mock.Anything, mock.Anything, mock.Anything)
}

func TestNewPoller_Defaults(t *testing.T) {
	p := NewPoller(gatewaymocks.NewMockStatusClient(t), coremocks.NewMockTimeProvider(t), coremocks.NewMockLogger(t), Config{}, nil)

	assert.Equal(t, DefaultInterval, p.config.Interval)
	assert.Equal(t, DefaultMaxAttempts, p.config.MaxAttempts)
	assert.True(t, StateTimedOut.IsTerminal())
	assert.False(t, StatePolling.IsTerminal())
}
