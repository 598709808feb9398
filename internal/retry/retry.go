// Package retry drives request attempts through an explicit state machine
// with exponential backoff. The engine owns scheduling only: callers classify
// each attempt's result into an Outcome and the engine decides whether to
// retry, how long to wait, and which terminal error to surface.
package retry

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"lingopher/apierror"
	"lingopher/internal/observability"
)

// State is a phase of a single retried operation. Succeeded, FailedFatal and
// FailedExhausted are terminal: the engine never leaves them.
type State string

const (
	// StateAttempting means a request attempt is in flight.
	StateAttempting State = "attempting"
	// StateBackingOff means the engine is waiting out a backoff delay.
	StateBackingOff State = "backing_off"
	// StateSucceeded means an attempt completed successfully.
	StateSucceeded State = "succeeded"
	// StateFailedFatal means an attempt failed with a non-retryable error.
	StateFailedFatal State = "failed_fatal"
	// StateFailedExhausted means the retry budget ran out.
	StateFailedExhausted State = "failed_exhausted"
)

// Verdict classifies the result of one attempt.
type Verdict int

const (
	// VerdictSuccess ends the operation successfully.
	VerdictSuccess Verdict = iota
	// VerdictRetryable schedules another attempt if budget remains.
	VerdictRetryable
	// VerdictFatal ends the operation immediately with the attempt's error.
	VerdictFatal
)

// Outcome is the classified result of one attempt, produced by the caller.
type Outcome struct {
	Verdict Verdict
	// Err is the classified failure; nil on success.
	Err error
	// RetryAfter carries the service's explicit wait hint, zero when absent.
	RetryAfter time.Duration
	// RateLimited marks HTTP 429 failures so the rate-limit floor applies.
	RateLimited bool
}

// Operation performs one attempt. The engine passes the zero-based attempt
// number; implementations must honor ctx.
type Operation func(ctx context.Context, attempt int) Outcome

// Clock abstracts time so backoff is testable without real sleeps. Sleep
// returns early with the context error when ctx ends first.
type Clock interface {
	Now() time.Time
	Sleep(ctx context.Context, d time.Duration) error
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

func (realClock) Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Config tunes the engine. MaxRetries counts retries after the first
// attempt, so MaxRetries=5 allows six attempts in total.
type Config struct {
	MaxRetries      int           `yaml:"max_retries" validate:"gte=0"`
	BackoffInitial  time.Duration `yaml:"backoff_initial" validate:"gt=0"`
	BackoffMax      time.Duration `yaml:"backoff_max" validate:"gte=0"`
	JitterRatio     float64       `yaml:"jitter_ratio" validate:"gte=0,lte=1"`
	RetryAfterFloor time.Duration `yaml:"retry_after_floor" validate:"gte=0"`
}

// DefaultConfig returns the tuning used when the caller does not override it:
// up to 5 retries, delays doubling from 1s to a 60s ceiling with ±20% jitter,
// and a 1s floor on rate-limited waits.
func DefaultConfig() Config {
	return Config{
		MaxRetries:      5,
		BackoffInitial:  time.Second,
		BackoffMax:      60 * time.Second,
		JitterRatio:     0.2,
		RetryAfterFloor: time.Second,
	}
}

// Engine schedules retries. It holds no per-operation state, so a single
// Engine is safe for concurrent Execute calls.
type Engine struct {
	cfg       Config
	clock     Clock
	logger    *observability.Logger
	randFloat func() float64
}

// NewEngine creates an engine on the real clock.
func NewEngine(cfg Config, logger *observability.Logger) *Engine {
	return NewEngineWithClock(cfg, logger, realClock{})
}

// NewEngineWithClock creates an engine on the given clock. Tests use this to
// observe backoff without sleeping.
func NewEngineWithClock(cfg Config, logger *observability.Logger, clock Clock) *Engine {
	if logger == nil {
		logger = observability.NewLogger(nil)
	}
	return &Engine{
		cfg:       cfg,
		clock:     clock,
		logger:    logger,
		randFloat: rand.Float64,
	}
}

// Execute runs op until it succeeds, fails fatally, exhausts the retry
// budget, or ctx ends. The returned error is nil on success, the attempt's
// own error on fatal failure, a RETRY_EXHAUSTED wrapper around the last
// failure when the budget runs out, and a CANCELLED error when ctx ends
// during an attempt gap or backoff.
func (e *Engine) Execute(ctx context.Context, op Operation) error {
	state := StateAttempting
	started := e.clock.Now()
	var lastErr error

	for attempt := 0; ; attempt++ {
		if err := ctx.Err(); err != nil {
			return cancelled(err)
		}

		out := op(ctx, attempt)
		switch out.Verdict {
		case VerdictSuccess:
			state = StateSucceeded
			e.logger.Debug(ctx, "Attempt succeeded", map[string]interface{}{
				"attempt": attempt,
				"state":   string(state),
			})
			return nil

		case VerdictFatal:
			state = StateFailedFatal
			e.logger.Warn(ctx, "Attempt failed fatally", map[string]interface{}{
				"attempt": attempt,
				"state":   string(state),
				"error":   errString(out.Err),
			})
			return out.Err

		case VerdictRetryable:
			lastErr = out.Err
			if attempt >= e.cfg.MaxRetries {
				state = StateFailedExhausted
				elapsed := e.clock.Now().Sub(started)
				e.logger.Warn(ctx, "Retry budget exhausted", map[string]interface{}{
					"attempts": attempt + 1,
					"elapsed":  elapsed.String(),
					"state":    string(state),
					"error":    errString(lastErr),
				})
				return apierror.NewWithCause(apierror.ErrorCodeRetryExhausted, apierror.SeverityError,
					"Retry budget exhausted",
					fmt.Sprintf("%d attempts over %s", attempt+1, elapsed), lastErr)
			}

			state = StateBackingOff
			delay := e.nextDelay(attempt, out)
			e.logger.Debug(ctx, "Backing off before retry", map[string]interface{}{
				"attempt":      attempt,
				"delay":        delay.String(),
				"rate_limited": out.RateLimited,
				"state":        string(state),
			})
			if err := e.clock.Sleep(ctx, delay); err != nil {
				return cancelled(err)
			}
			state = StateAttempting

		default:
			return apierror.New(apierror.ErrorCodeNetwork, apierror.SeverityError,
				"Unknown attempt verdict", "")
		}
	}
}

// nextDelay computes the wait before the next attempt. A service hint
// replaces the computed backoff outright; rate-limited waits never drop
// below the configured floor.
func (e *Engine) nextDelay(attempt int, out Outcome) time.Duration {
	delay := e.backoffDelay(attempt)
	if out.RetryAfter > 0 {
		delay = out.RetryAfter
	}
	if out.RateLimited && delay < e.cfg.RetryAfterFloor {
		delay = e.cfg.RetryAfterFloor
	}
	return delay
}

// backoffDelay is BackoffInitial doubled per attempt, capped at BackoffMax,
// then jittered. Doubling in a loop bounded by the cap avoids shift overflow
// on large attempt numbers.
func (e *Engine) backoffDelay(attempt int) time.Duration {
	delay := e.cfg.BackoffInitial
	for i := 0; i < attempt && delay < e.cfg.BackoffMax; i++ {
		delay *= 2
	}
	if e.cfg.BackoffMax > 0 && delay > e.cfg.BackoffMax {
		delay = e.cfg.BackoffMax
	}

	if ratio := e.cfg.JitterRatio; ratio > 0 {
		multiplier := 1 - ratio + 2*ratio*e.randFloat()
		delay = time.Duration(float64(delay) * multiplier)
	}
	return delay
}

func cancelled(cause error) error {
	return apierror.NewWithCause(apierror.ErrorCodeCancelled, apierror.SeverityInfo,
		"Operation cancelled", cause.Error(), cause)
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
