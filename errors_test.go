package modelmux

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestErrorCategories(t *testing.T) {
	tests := []struct {
		name      string
		err       *Error
		category  ErrorCategory
		retryable bool
		code      int
	}{
		{
			name:      "authentication failure is permanent",
			err:       NewAuthenticationError("invalid API key", 401),
			category:  ErrorPermanent,
			retryable: false,
			code:      401,
		},
		{
			name:      "rate limit is transient",
			err:       NewRateLimitError("too many requests", 0),
			category:  ErrorTransient,
			retryable: true,
			code:      429,
		},
		{
			name:      "client error is user input",
			err:       NewClientError("unknown router", 404),
			category:  ErrorUserInput,
			retryable: false,
			code:      404,
		},
		{
			name:      "server error is transient",
			err:       NewServerError("internal error", 500),
			category:  ErrorTransient,
			retryable: true,
			code:      500,
		},
		{
			name:      "network error is transient",
			err:       NewNetworkError("connection reset", errors.New("reset")),
			category:  ErrorTransient,
			retryable: true,
			code:      0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.category, tt.err.Category())
			assert.Equal(t, tt.retryable, tt.err.Retryable())
			assert.Equal(t, tt.code, tt.err.StatusCode())
		})
	}
}

func TestErrorMessage(t *testing.T) {
	t.Run("includes cause when present", func(t *testing.T) {
		err := NewNetworkError("request failed", errors.New("connection refused"))
		assert.Equal(t, "request failed: connection refused", err.Error())
	})

	t.Run("message only without cause", func(t *testing.T) {
		err := NewServerError("internal error", 500)
		assert.Equal(t, "internal error", err.Error())
	})

	t.Run("Unwrap returns underlying error", func(t *testing.T) {
		cause := errors.New("boom")
		err := NewNetworkError("request failed", cause)
		assert.True(t, errors.Is(err, cause))
	})
}

func TestCategoryHelpers(t *testing.T) {
	t.Run("classify through wrapping", func(t *testing.T) {
		wrapped := fmt.Errorf("call failed: %w", NewServerError("internal error", 503))
		assert.True(t, IsTransient(wrapped))
		assert.False(t, IsPermanent(wrapped))
		assert.Equal(t, 503, StatusCodeOf(wrapped))
	})

	t.Run("uncategorized errors report nothing", func(t *testing.T) {
		err := errors.New("plain")
		assert.False(t, IsTransient(err))
		assert.False(t, IsPermanent(err))
		assert.False(t, IsUserInput(err))
		assert.Equal(t, 0, StatusCodeOf(err))
		assert.Equal(t, time.Duration(0), RetryAfterOf(err))
	})

	t.Run("RetryAfterOf reads server delay", func(t *testing.T) {
		err := NewRateLimitError("slow down", 5*time.Second)
		assert.Equal(t, 5*time.Second, RetryAfterOf(err))
	})
}

func TestValidationError(t *testing.T) {
	t.Run("names the offending field", func(t *testing.T) {
		err := &ValidationError{Field: "agentId"}
		assert.Equal(t, "missing required field: agentId", err.Error())
	})

	t.Run("includes detail when present", func(t *testing.T) {
		err := &ValidationError{Field: "baseUrl", Msg: "not a URL"}
		assert.Equal(t, "invalid baseUrl: not a URL", err.Error())
	})

	t.Run("IsValidation detects wrapped validation errors", func(t *testing.T) {
		err := fmt.Errorf("precheck: %w", &ValidationError{Field: "messages"})
		assert.True(t, IsValidation(err))
		assert.False(t, IsValidation(errors.New("plain")))
	})
}
