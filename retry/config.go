// Package retry provides retry logic with exponential backoff for transient errors.
package retry

import (
	"math/rand"
	"time"

	"github.com/modelmux/modelmux-go"
)

// Config controls how failed requests are reattempted.
type Config struct {
	// MaxAttempts caps the total number of attempts, counting the
	// initial request as attempt 1 (default: 3).
	MaxAttempts int

	// InitialDelay is the backoff before the first retry (default: 1s).
	InitialDelay time.Duration

	// MaxDelay caps the backoff between retries (default: 30s).
	MaxDelay time.Duration

	// Multiplier grows the backoff after each retry (default: 2.0).
	Multiplier float64

	// Jitter randomizes each delay by up to the given fraction in either
	// direction, spreading out clients that fail in lockstep
	// (default: 0.1).
	Jitter float64
}

// DefaultConfig returns the default retry configuration: 3 attempts
// with a 1 second initial delay doubling up to 30 seconds, randomized
// by 10% jitter.
func DefaultConfig() Config {
	return Config{
		MaxAttempts:  3,
		InitialDelay: 1 * time.Second,
		MaxDelay:     30 * time.Second,
		Multiplier:   2.0,
		Jitter:       0.1,
	}
}

// Disabled returns a configuration that disables retries (single attempt).
func Disabled() Config {
	return Config{MaxAttempts: 1}
}

// Delay returns the configured backoff before retry number attempt
// (0-indexed), before any server hint is taken into account.
func (c Config) Delay(attempt int) time.Duration {
	delay := float64(c.InitialDelay)
	for i := 0; i < attempt; i++ {
		delay *= c.Multiplier
		if delay >= float64(c.MaxDelay) {
			delay = float64(c.MaxDelay)
			break
		}
	}

	if c.Jitter > 0 {
		delay *= 1 + c.Jitter*(2*rand.Float64()-1)
	}

	return time.Duration(delay)
}

// DelayFor returns the wait before the attempt following err. A
// rate-limited response carrying a Retry-After hint can stretch the
// wait beyond the configured backoff, but never shrink it.
func (c Config) DelayFor(attempt int, err error) time.Duration {
	delay := c.Delay(attempt)
	if server := modelmux.RetryAfterOf(err); server > delay {
		return server
	}
	return delay
}
