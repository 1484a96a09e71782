package retrylimit

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

type statusError int

func (e statusError) Error() string   { return http.StatusText(int(e)) }
func (e statusError) StatusCode() int { return int(e) }

func fastConfig(attempts int) RetryConfig {
	cfg := DefaultRetryConfig()
	cfg.MaxAttempts = attempts
	cfg.InitialDelay = time.Millisecond
	cfg.MaxDelay = 2 * time.Millisecond
	cfg.RateLimitDelay = time.Millisecond
	cfg.Jitter = false
	return cfg
}

func TestRetrySucceedsAfterTransientErrors(t *testing.T) {
	calls := 0
	err := WithRetryConfig(context.Background(), func() error {
		calls++
		if calls < 3 {
			return statusError(http.StatusBadGateway)
		}
		return nil
	}, nil, fastConfig(5))

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestRetryStopsOnFinalErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"fatal", &FatalError{Err: errors.New("bad token")}},
		{"client status", statusError(http.StatusBadRequest)},
		{"wrapped client status", errors.Join(errors.New("register"), statusError(http.StatusForbidden))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			err := WithRetryConfig(context.Background(), func() error {
				calls++
				return tt.err
			}, nil, fastConfig(5))

			assert.Equal(t, 1, calls)
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestRetryGivesUp(t *testing.T) {
	want := errors.New("flaky")
	calls := 0
	err := WithRetryConfig(context.Background(), func() error {
		calls++
		return want
	}, nil, fastConfig(3))

	assert.Equal(t, 3, calls)
	assert.ErrorIs(t, err, want)
	assert.Contains(t, err.Error(), "max attempts (3) exceeded")
}

func TestRetryHonorsContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := WithRetryConfig(ctx, func() error { return nil }, nil, fastConfig(3))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestAdaptiveLimiter(t *testing.T) {
	lim := NewAdaptiveLimiter(4, 1, 8, 1, 0.5)
	assert.InDelta(t, 4.0, lim.CurrentLimit(), 0.001)

	lim.RateLimited()
	assert.InDelta(t, 2.0, lim.CurrentLimit(), 0.001)
	lim.RateLimited()
	lim.RateLimited()
	assert.InDelta(t, 1.0, lim.CurrentLimit(), 0.001, "clamped at min")

	lim.Success()
	assert.InDelta(t, 1.0, lim.CurrentLimit(), 0.001, "no step up right after an error")

	fresh := NewAdaptiveLimiter(rate.Limit(7.5), 1, 8, 1, 0.5)
	fresh.Success()
	assert.InDelta(t, 8.0, fresh.CurrentLimit(), 0.001, "clamped at max")
}

func TestRateLimitedSlowsLimiter(t *testing.T) {
	lim := NewAdaptiveLimiter(20, 1, 40, 1, 0.5)
	calls := 0
	err := WithRetryConfig(context.Background(), func() error {
		calls++
		if calls == 1 {
			return statusError(http.StatusTooManyRequests)
		}
		return nil
	}, lim, fastConfig(3))

	require.NoError(t, err)
	assert.Equal(t, 2, calls)
	assert.InDelta(t, 10.0, lim.CurrentLimit(), 0.001)
}
