package retry

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/modelmux/modelmux-go"
	"github.com/stretchr/testify/assert"
)

// mockTransientError simulates a transient network error.
type mockTransientError struct {
	msg string
}

func (e *mockTransientError) Error() string   { return e.msg }
func (e *mockTransientError) Timeout() bool   { return true }
func (e *mockTransientError) Temporary() bool { return true }

// Ensure mockTransientError implements net.Error
var _ net.Error = (*mockTransientError)(nil)

func fastConfig() Config {
	return Config{
		MaxAttempts:  3,
		InitialDelay: time.Millisecond,
		MaxDelay:     10 * time.Millisecond,
		Multiplier:   2.0,
		Jitter:       0,
	}
}

func TestDoSuccess(t *testing.T) {
	cfg := DefaultConfig()
	callCount := 0

	result, err := Do(context.Background(), cfg, func() (string, error) {
		callCount++
		return "success", nil
	})

	assert.NoError(t, err)
	assert.Equal(t, "success", result)
	assert.Equal(t, 1, callCount)
}

func TestDoRetryOnTransientError(t *testing.T) {
	callCount := 0
	transientErr := &mockTransientError{msg: "timeout"}

	result, err := Do(context.Background(), fastConfig(), func() (string, error) {
		callCount++
		if callCount < 3 {
			return "", transientErr
		}
		return "success", nil
	})

	assert.NoError(t, err)
	assert.Equal(t, "success", result)
	assert.Equal(t, 3, callCount)
}

func TestDoRetryOnCategorizedTransientError(t *testing.T) {
	callCount := 0
	serverErr := modelmux.NewServerError("internal server error", 500)

	_, err := Do(context.Background(), fastConfig(), func() (string, error) {
		callCount++
		return "", serverErr
	})

	assert.Error(t, err)
	assert.Equal(t, 3, callCount)
}

func TestDoNoRetryOnPermanentError(t *testing.T) {
	cfg := DefaultConfig()
	callCount := 0
	permanentErr := errors.New("permanent error")

	_, err := Do(context.Background(), cfg, func() (string, error) {
		callCount++
		return "", permanentErr
	})

	assert.Error(t, err)
	assert.Equal(t, permanentErr, err)
	assert.Equal(t, 1, callCount) // No retries
}

func TestDoNoRetryOnAuthenticationError(t *testing.T) {
	cfg := DefaultConfig()
	callCount := 0
	authErr := modelmux.NewAuthenticationError("invalid API key", 401)

	_, err := Do(context.Background(), cfg, func() (string, error) {
		callCount++
		return "", authErr
	})

	assert.Error(t, err)
	assert.Equal(t, 1, callCount)
}

func TestDoExhaustsRetries(t *testing.T) {
	callCount := 0
	transientErr := &mockTransientError{msg: "timeout"}

	_, err := Do(context.Background(), fastConfig(), func() (string, error) {
		callCount++
		return "", transientErr
	})

	assert.Error(t, err)
	assert.Equal(t, transientErr, err)
	assert.Equal(t, 3, callCount) // All attempts exhausted
}

func TestDoRespectsContextCancellation(t *testing.T) {
	cfg := Config{
		MaxAttempts:  10,
		InitialDelay: time.Second, // Long delay
		MaxDelay:     time.Second,
		Multiplier:   1.0,
		Jitter:       0,
	}

	ctx, cancel := context.WithCancel(context.Background())
	callCount := 0

	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()

	_, err := Do(ctx, cfg, func() (string, error) {
		callCount++
		return "", &mockTransientError{msg: "timeout"}
	})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, callCount) // Only first attempt before cancellation
}

func TestDoWithDisabledRetry(t *testing.T) {
	cfg := Disabled()
	callCount := 0
	transientErr := &mockTransientError{msg: "timeout"}

	_, err := Do(context.Background(), cfg, func() (string, error) {
		callCount++
		return "", transientErr
	})

	assert.Error(t, err)
	assert.Equal(t, 1, callCount) // Only one attempt with disabled retry
}

func TestDoWithEventsSequence(t *testing.T) {
	events := make(chan Event, 32)
	callCount := 0
	transientErr := &mockTransientError{msg: "timeout"}

	_, err := DoWithEvents(context.Background(), fastConfig(), events, func() (string, error) {
		callCount++
		if callCount < 2 {
			return "", transientErr
		}
		return "success", nil
	})
	assert.NoError(t, err)
	close(events)

	var types []EventType
	for ev := range events {
		types = append(types, ev.Type)
	}

	assert.Equal(t, []EventType{
		EventAttemptStart,
		EventAttemptFailed,
		EventRetrying,
		EventAttemptStart,
		EventSuccess,
	}, types)
}

func TestDelayForHonorsRetryAfter(t *testing.T) {
	cfg := Config{
		InitialDelay: time.Second,
		MaxDelay:     30 * time.Second,
		Multiplier:   2.0,
		Jitter:       0,
	}
	rateErr := modelmux.NewRateLimitError("rate limited", 5*time.Second)

	// Server hint exceeds the 1s backoff for the first retry.
	assert.Equal(t, 5*time.Second, cfg.DelayFor(0, rateErr))

	// The configured backoff (8s) wins once it outgrows the hint.
	assert.Equal(t, 8*time.Second, cfg.DelayFor(3, rateErr))

	// Errors without a hint fall back to the plain backoff.
	assert.Equal(t, time.Second, cfg.DelayFor(0, errors.New("plain")))
}

func TestDoStreamSuccess(t *testing.T) {
	cfg := DefaultConfig()
	callCount := 0

	ch, err := DoStream(context.Background(), cfg, func() (<-chan string, error) {
		callCount++
		c := make(chan string, 1)
		c <- "data"
		close(c)
		return c, nil
	})

	assert.NoError(t, err)
	assert.NotNil(t, ch)
	assert.Equal(t, 1, callCount)

	// Read from channel
	data := <-ch
	assert.Equal(t, "data", data)
}

func TestDoStreamRetryOnTransientError(t *testing.T) {
	callCount := 0
	transientErr := &mockTransientError{msg: "timeout"}

	ch, err := DoStream(context.Background(), fastConfig(), func() (<-chan string, error) {
		callCount++
		if callCount < 3 {
			return nil, transientErr
		}
		c := make(chan string, 1)
		c <- "success"
		close(c)
		return c, nil
	})

	assert.NoError(t, err)
	assert.NotNil(t, ch)
	assert.Equal(t, 3, callCount)
}

func TestDoStreamNoRetryOnPermanentError(t *testing.T) {
	cfg := DefaultConfig()
	callCount := 0
	permanentErr := errors.New("permanent error")

	_, err := DoStream(context.Background(), cfg, func() (<-chan string, error) {
		callCount++
		return nil, permanentErr
	})

	assert.Error(t, err)
	assert.Equal(t, permanentErr, err)
	assert.Equal(t, 1, callCount)
}

func TestDoStreamWithEventsSequence(t *testing.T) {
	events := make(chan Event, 32)
	callCount := 0
	transientErr := &mockTransientError{msg: "timeout"}

	_, err := DoStreamWithEvents(context.Background(), fastConfig(), events, func() (<-chan string, error) {
		callCount++
		if callCount < 2 {
			return nil, transientErr
		}
		c := make(chan string)
		close(c)
		return c, nil
	})
	assert.NoError(t, err)
	close(events)

	var types []EventType
	for ev := range events {
		types = append(types, ev.Type)
	}

	assert.Equal(t, []EventType{
		EventAttemptStart,
		EventAttemptFailed,
		EventRetrying,
		EventAttemptStart,
		EventSuccess,
	}, types)
}

func TestDoStreamRespectsContextCancellation(t *testing.T) {
	cfg := Config{
		MaxAttempts:  10,
		InitialDelay: time.Second,
		MaxDelay:     time.Second,
		Multiplier:   1.0,
		Jitter:       0,
	}

	ctx, cancel := context.WithCancel(context.Background())
	callCount := 0

	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()

	_, err := DoStream(ctx, cfg, func() (<-chan string, error) {
		callCount++
		return nil, &mockTransientError{msg: "timeout"}
	})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, callCount)
}

func TestDelay(t *testing.T) {
	cfg := Config{
		InitialDelay: time.Second,
		MaxDelay:     10 * time.Second,
		Multiplier:   2.0,
		Jitter:       0,
	}

	assert.Equal(t, time.Second, cfg.Delay(0))
	assert.Equal(t, 2*time.Second, cfg.Delay(1))
	assert.Equal(t, 4*time.Second, cfg.Delay(2))
	assert.Equal(t, 10*time.Second, cfg.Delay(5)) // Capped at MaxDelay
	assert.Equal(t, time.Second, cfg.Delay(-1))   // Clamped to 0
}
