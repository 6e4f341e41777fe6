package polling

import (
	"context"
	"errors"
	"fmt"

	"github.com/amirhossein-jamali/headshot-service/internal/domain/entity"
	errs "github.com/amirhossein-jamali/headshot-service/internal/domain/error"
	coreport "github.com/amirhossein-jamali/headshot-service/internal/domain/port/core"
	"github.com/amirhossein-jamali/headshot-service/internal/domain/port/gateway"
)

// State is the polling session state
type State string

// Polling states
const (
	StateIdle      State = "IDLE"
	StatePolling   State = "POLLING"
	StateCompleted State = "COMPLETED"
	StateFailed    State = "FAILED"
	StateTimedOut  State = "TIMED_OUT"
	StateErrored   State = "ERRORED"
)

// IsTerminal reports whether the session has ended
func (s State) IsTerminal() bool {
	switch s {
	case StateCompleted, StateFailed, StateTimedOut, StateErrored:
		return true
	}
	return false
}

// Defaults match roughly two minutes of polling
const (
	DefaultInterval    = 5 * coreport.Second
	DefaultMaxAttempts = 24
	TimeoutReason      = "Polling timeout after 2 minutes"
)

// Config controls the polling cadence
type Config struct {
	Interval    coreport.Duration
	MaxAttempts int
}

// Result is the outcome of a polling session
type Result struct {
	State    State
	Snapshot *entity.GenerationSnapshot
	Attempts int
	Err      error
}

// RefreshFunc is invoked once when a session reaches a terminal state
type RefreshFunc func(Result)

// Poller observes a processing generation until it settles or times out
type Poller struct {
	client       gateway.StatusClient
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
	config       Config
	refresh      RefreshFunc
}

// NewPoller creates a poller. Zero config values fall back to the defaults.
func NewPoller(
	client gateway.StatusClient,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
	config Config,
	refresh RefreshFunc,
) *Poller {
	if config.Interval <= 0 {
		config.Interval = DefaultInterval
	}
	if config.MaxAttempts <= 0 {
		config.MaxAttempts = DefaultMaxAttempts
	}
	if refresh == nil {
		refresh = func(Result) {}
	}

	return &Poller{
		client:       client,
		timeProvider: timeProvider,
		logger:       logger,
		config:       config,
		refresh:      refresh,
	}
}

// Run polls the generation described by known. It queries immediately and
// then once per interval while the generation is PROCESSING. Cancelling ctx
// stops polling without touching server state.
func (p *Poller) Run(ctx context.Context, known entity.GenerationSnapshot) (Result, error) {
	if known.Status != entity.StatusProcessing {
		return Result{State: StateIdle, Snapshot: &known}, nil
	}

	log := p.logger.With(map[string]any{"generation_id": known.ID})
	log.Info("Polling generation", map[string]any{
		"interval_ms":  p.config.Interval.Std().Milliseconds(),
		"max_attempts": p.config.MaxAttempts,
	})

	session := &session{poller: p, id: known.ID, log: log, result: Result{State: StatePolling}}

	if session.poll(ctx) {
		return session.finish()
	}

	ticker := p.timeProvider.NewTicker(p.config.Interval)
	for {
		select {
		case <-ctx.Done():
			ticker.Stop()
			log.Info("Polling cancelled", map[string]any{"attempts": session.result.Attempts})
			return session.result, ctx.Err()
		case <-ticker.C():
			if session.poll(ctx) {
				ticker.Stop()
				return session.finish()
			}
		}
	}
}

type session struct {
	poller *Poller
	id     uint64
	log    coreport.Logger
	result Result
}

// poll issues one status query and reports whether the session ended
func (s *session) poll(ctx context.Context) bool {
	snap, err := s.poller.client.Status(ctx, s.id)
	if err != nil {
		if ctx.Err() != nil {
			return false
		}
		if !errors.Is(err, errs.ErrConnection) {
			err = fmt.Errorf("%w: %v", errs.ErrConnection, err)
		}
		s.result.State = StateErrored
		s.result.Err = err
		return true
	}

	s.result.Attempts++
	s.result.Snapshot = snap

	switch snap.Status {
	case entity.StatusProcessing:
		if s.result.Attempts < s.poller.config.MaxAttempts {
			s.log.Debug("Generation still processing", map[string]any{"attempt": s.result.Attempts})
			return false
		}
		s.timeout(ctx)
		return true
	case entity.StatusCompleted:
		s.result.State = StateCompleted
	case entity.StatusFailed:
		s.result.State = StateFailed
	default:
		s.result.State = StateErrored
		s.result.Err = fmt.Errorf("%w: unexpected status %s", errs.ErrInvalidState, snap.Status)
	}
	return true
}

// timeout asks the server to fail the generation; it is called at most once per session
func (s *session) timeout(ctx context.Context) {
	s.result.State = StateTimedOut
	s.result.Err = errs.ErrPollTimeout

	if err := s.poller.client.MarkFailed(context.WithoutCancel(ctx), s.id, TimeoutReason); err != nil {
		s.log.Warn("Failed to mark timed out generation as failed", map[string]any{"error": err.Error()})
		s.result.Err = errors.Join(errs.ErrPollTimeout, err)
	}
}

func (s *session) finish() (Result, error) {
	fields := map[string]any{
		"state":    string(s.result.State),
		"attempts": s.result.Attempts,
	}
	if s.result.Err != nil {
		fields["error"] = s.result.Err.Error()
		s.log.Warn("Polling ended", fields)
	} else {
		s.log.Info("Polling ended", fields)
	}

	s.poller.refresh(s.result)
	return s.result, s.result.Err
}
