package retry

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lingopher/apierror"
	"lingopher/internal/observability"
)

// fakeClock advances virtual time by exactly the requested sleep and records
// every delay, so tests can assert on backoff without waiting.
type fakeClock struct {
	mu     sync.Mutex
	now    time.Time
	sleeps []time.Duration
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Sleep(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
	c.sleeps = append(c.sleeps, d)
	return nil
}

func (c *fakeClock) totalSlept() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	var total time.Duration
	for _, d := range c.sleeps {
		total += d
	}
	return total
}

func noJitterConfig() Config {
	cfg := DefaultConfig()
	cfg.JitterRatio = 0
	return cfg
}

func newTestEngine(cfg Config, clock Clock) *Engine {
	return NewEngineWithClock(cfg, observability.NewLogger(nil), clock)
}

func retryableOutcome(err error) Outcome {
	return Outcome{Verdict: VerdictRetryable, Err: err}
}

func TestExecute_SuccessFirstAttempt(t *testing.T) {
	clock := newFakeClock()
	engine := newTestEngine(noJitterConfig(), clock)

	calls := 0
	err := engine.Execute(context.Background(), func(ctx context.Context, attempt int) Outcome {
		calls++
		return Outcome{Verdict: VerdictSuccess}
	})

	require.NoError(t, err)
	assert.Equal(t, 1, calls)
	assert.Empty(t, clock.sleeps)
}

func TestExecute_RetryableThenSuccess(t *testing.T) {
	clock := newFakeClock()
	engine := newTestEngine(noJitterConfig(), clock)

	calls := 0
	err := engine.Execute(context.Background(), func(ctx context.Context, attempt int) Outcome {
		calls++
		if calls == 1 {
			return retryableOutcome(apierror.New(apierror.ErrorCodeServerError, apierror.SeverityError, "503", ""))
		}
		return Outcome{Verdict: VerdictSuccess}
	})

	require.NoError(t, err)
	assert.Equal(t, 2, calls)
	require.Len(t, clock.sleeps, 1)
	assert.Equal(t, time.Second, clock.sleeps[0])
}

func TestExecute_FatalStopsImmediately(t *testing.T) {
	clock := newFakeClock()
	engine := newTestEngine(noJitterConfig(), clock)

	fatal := apierror.New(apierror.ErrorCodeRequestRejected, apierror.SeverityError,
		"Service rejected the request", "Value for 'target_lang' not supported.")

	calls := 0
	err := engine.Execute(context.Background(), func(ctx context.Context, attempt int) Outcome {
		calls++
		return Outcome{Verdict: VerdictFatal, Err: fatal}
	})

	require.Error(t, err)
	assert.Equal(t, fatal, err)
	assert.Equal(t, 1, calls)
	assert.Empty(t, clock.sleeps, "fatal failures must not back off")
}

func TestExecute_ExhaustsBudget(t *testing.T) {
	clock := newFakeClock()
	cfg := noJitterConfig()
	cfg.MaxRetries = 2
	engine := newTestEngine(cfg, clock)

	lastErr := apierror.New(apierror.ErrorCodeServerError, apierror.SeverityError, "502", "")
	calls := 0
	err := engine.Execute(context.Background(), func(ctx context.Context, attempt int) Outcome {
		calls++
		return retryableOutcome(lastErr)
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, apierror.ErrRetryExhausted))
	assert.True(t, errors.Is(err, lastErr), "exhausted error must wrap the last failure")
	assert.Equal(t, 3, calls, "MaxRetries=2 allows three attempts")
	assert.Len(t, clock.sleeps, 2)
}

func TestExecute_ExponentialBackoffWithCap(t *testing.T) {
	clock := newFakeClock()
	cfg := Config{
		MaxRetries:      5,
		BackoffInitial:  time.Second,
		BackoffMax:      4 * time.Second,
		JitterRatio:     0,
		RetryAfterFloor: time.Second,
	}
	engine := newTestEngine(cfg, clock)

	err := engine.Execute(context.Background(), func(ctx context.Context, attempt int) Outcome {
		return retryableOutcome(apierror.New(apierror.ErrorCodeNetwork, apierror.SeverityWarn, "timeout", ""))
	})

	require.Error(t, err)
	assert.Equal(t,
		[]time.Duration{time.Second, 2 * time.Second, 4 * time.Second, 4 * time.Second, 4 * time.Second},
		clock.sleeps)
}

func TestExecute_JitterBounds(t *testing.T) {
	tests := []struct {
		name     string
		random   float64
		expected time.Duration
	}{
		{"lowest multiplier", 0, 800 * time.Millisecond},
		{"midpoint is unjittered", 0.5, time.Second},
		{"highest multiplier", 0.999999, 1200 * time.Millisecond},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clock := newFakeClock()
			cfg := DefaultConfig()
			cfg.MaxRetries = 1
			cfg.RetryAfterFloor = 0
			engine := newTestEngine(cfg, clock)
			engine.randFloat = func() float64 { return tt.random }

			calls := 0
			err := engine.Execute(context.Background(), func(ctx context.Context, attempt int) Outcome {
				calls++
				if calls == 1 {
					return retryableOutcome(apierror.New(apierror.ErrorCodeServerError, apierror.SeverityError, "500", ""))
				}
				return Outcome{Verdict: VerdictSuccess}
			})

			require.NoError(t, err)
			require.Len(t, clock.sleeps, 1)
			assert.InDelta(t, float64(tt.expected), float64(clock.sleeps[0]), float64(time.Millisecond))
		})
	}
}

func TestExecute_RetryAfterHintOverridesBackoff(t *testing.T) {
	t.Run("hint longer than computed", func(t *testing.T) {
		clock := newFakeClock()
		engine := newTestEngine(noJitterConfig(), clock)

		calls := 0
		err := engine.Execute(context.Background(), func(ctx context.Context, attempt int) Outcome {
			calls++
			if calls == 1 {
				return Outcome{
					Verdict:     VerdictRetryable,
					Err:         apierror.New(apierror.ErrorCodeRateLimit, apierror.SeverityWarn, "429", ""),
					RetryAfter:  5 * time.Second,
					RateLimited: true,
				}
			}
			return Outcome{Verdict: VerdictSuccess}
		})

		require.NoError(t, err)
		require.Len(t, clock.sleeps, 1)
		assert.Equal(t, 5*time.Second, clock.sleeps[0])
	})

	t.Run("hint shorter than computed still wins above the floor", func(t *testing.T) {
		clock := newFakeClock()
		cfg := noJitterConfig()
		cfg.BackoffInitial = 10 * time.Second
		engine := newTestEngine(cfg, clock)

		calls := 0
		err := engine.Execute(context.Background(), func(ctx context.Context, attempt int) Outcome {
			calls++
			if calls == 1 {
				return Outcome{
					Verdict:     VerdictRetryable,
					Err:         apierror.New(apierror.ErrorCodeRateLimit, apierror.SeverityWarn, "429", ""),
					RetryAfter:  2 * time.Second,
					RateLimited: true,
				}
			}
			return Outcome{Verdict: VerdictSuccess}
		})

		require.NoError(t, err)
		require.Len(t, clock.sleeps, 1)
		assert.Equal(t, 2*time.Second, clock.sleeps[0])
	})
}

func TestExecute_RateLimitFloor(t *testing.T) {
	// Two rate-limited failures then success: with a 1s floor, at least a
	// full simulated second must elapse even when the service hints tiny
	// waits.
	clock := newFakeClock()
	engine := newTestEngine(noJitterConfig(), clock)
	start := clock.Now()

	calls := 0
	err := engine.Execute(context.Background(), func(ctx context.Context, attempt int) Outcome {
		calls++
		if calls <= 2 {
			return Outcome{
				Verdict:     VerdictRetryable,
				Err:         apierror.New(apierror.ErrorCodeRateLimit, apierror.SeverityWarn, "429", ""),
				RetryAfter:  100 * time.Millisecond,
				RateLimited: true,
			}
		}
		return Outcome{Verdict: VerdictSuccess}
	})

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
	assert.GreaterOrEqual(t, clock.Now().Sub(start), time.Second)
	assert.GreaterOrEqual(t, clock.totalSlept(), 2*time.Second)
	for _, d := range clock.sleeps {
		assert.GreaterOrEqual(t, d, time.Second, "rate-limited waits must respect the floor")
	}
}

func TestExecute_FloorDoesNotApplyToPlainServerErrors(t *testing.T) {
	clock := newFakeClock()
	cfg := noJitterConfig()
	cfg.BackoffInitial = 100 * time.Millisecond
	cfg.RetryAfterFloor = time.Second
	engine := newTestEngine(cfg, clock)

	calls := 0
	err := engine.Execute(context.Background(), func(ctx context.Context, attempt int) Outcome {
		calls++
		if calls == 1 {
			return retryableOutcome(apierror.New(apierror.ErrorCodeServerError, apierror.SeverityError, "500", ""))
		}
		return Outcome{Verdict: VerdictSuccess}
	})

	require.NoError(t, err)
	require.Len(t, clock.sleeps, 1)
	assert.Equal(t, 100*time.Millisecond, clock.sleeps[0])
}

func TestExecute_CancelledBeforeFirstAttempt(t *testing.T) {
	clock := newFakeClock()
	engine := newTestEngine(noJitterConfig(), clock)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	err := engine.Execute(ctx, func(ctx context.Context, attempt int) Outcome {
		calls++
		return Outcome{Verdict: VerdictSuccess}
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, apierror.ErrCancelled))
	assert.Equal(t, 0, calls, "no attempt may start on a dead context")
}

func TestExecute_CancelledDuringBackoff(t *testing.T) {
	clock := newFakeClock()
	engine := newTestEngine(noJitterConfig(), clock)

	ctx, cancel := context.WithCancel(context.Background())

	calls := 0
	err := engine.Execute(ctx, func(ctx context.Context, attempt int) Outcome {
		calls++
		cancel() // ends the context before the backoff sleep
		return retryableOutcome(apierror.New(apierror.ErrorCodeServerError, apierror.SeverityError, "503", ""))
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, apierror.ErrCancelled))
	assert.Equal(t, 1, calls)
	assert.Empty(t, clock.sleeps, "cancelled backoff must not complete")
}

func TestExecute_ZeroRetriesMeansSingleAttempt(t *testing.T) {
	clock := newFakeClock()
	cfg := noJitterConfig()
	cfg.MaxRetries = 0
	engine := newTestEngine(cfg, clock)

	calls := 0
	err := engine.Execute(context.Background(), func(ctx context.Context, attempt int) Outcome {
		calls++
		return retryableOutcome(apierror.New(apierror.ErrorCodeNetwork, apierror.SeverityWarn, "refused", ""))
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, apierror.ErrRetryExhausted))
	assert.Equal(t, 1, calls)
	assert.Empty(t, clock.sleeps)
}

func TestExecute_AttemptNumbersArePassedThrough(t *testing.T) {
	clock := newFakeClock()
	cfg := noJitterConfig()
	cfg.MaxRetries = 3
	engine := newTestEngine(cfg, clock)

	var seen []int
	_ = engine.Execute(context.Background(), func(ctx context.Context, attempt int) Outcome {
		seen = append(seen, attempt)
		return retryableOutcome(apierror.New(apierror.ErrorCodeServerError, apierror.SeverityError, "500", ""))
	})

	assert.Equal(t, []int{0, 1, 2, 3}, seen)
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, 5, cfg.MaxRetries)
	assert.Equal(t, time.Second, cfg.BackoffInitial)
	assert.Equal(t, 60*time.Second, cfg.BackoffMax)
	assert.Equal(t, 0.2, cfg.JitterRatio)
	assert.Equal(t, time.Second, cfg.RetryAfterFloor)
}

func TestRealClock_SleepHonorsContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := realClock{}.Sleep(ctx, time.Minute)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestRealClock_SleepZeroReturnsImmediately(t *testing.T) {
	start := time.Now()
	err := realClock{}.Sleep(context.Background(), 0)
	require.NoError(t, err)
	assert.Less(t, time.Since(start), 100*time.Millisecond)
}
