package transport

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	mux "github.com/modelmux/modelmux-go"
	"github.com/modelmux/modelmux-go/retry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTransport(url string) *Transport {
	return New(Config{
		BaseURL: url,
		APIKey:  "test-key",
		Retry: retry.Config{
			MaxAttempts:  3,
			InitialDelay: time.Millisecond,
			MaxDelay:     10 * time.Millisecond,
			Multiplier:   2.0,
			Jitter:       0,
		},
	})
}

func TestDoDecodesResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		_, _ = w.Write([]byte(`{"value": "ok"}`))
	}))
	defer srv.Close()

	var out struct {
		Value string `json:"value"`
	}
	err := newTestTransport(srv.URL).Do(context.Background(), http.MethodPost, "/x",
		map[string]string{"k": "v"}, &out)

	require.NoError(t, err)
	assert.Equal(t, "ok", out.Value)
}

func TestDoNilBodyAndOut(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Content-Type"))
		_, _ = w.Write([]byte(`{"ignored": true}`))
	}))
	defer srv.Close()

	err := newTestTransport(srv.URL).Do(context.Background(), http.MethodGet, "/x", nil, nil)
	assert.NoError(t, err)
}

func TestDoTrimsTrailingSlash(t *testing.T) {
	var path string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	err := newTestTransport(srv.URL + "/").Do(context.Background(), http.MethodGet, "/models", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "/models", path)
}

func TestDoRetriesServerErrors(t *testing.T) {
	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts < 2 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	err := newTestTransport(srv.URL).Do(context.Background(), http.MethodGet, "/x", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, attempts)
}

func TestDoDoesNotRetryClientErrors(t *testing.T) {
	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error": {"message": "unknown router"}}`))
	}))
	defer srv.Close()

	err := newTestTransport(srv.URL).Do(context.Background(), http.MethodGet, "/x", nil, nil)
	require.Error(t, err)
	assert.True(t, mux.IsUserInput(err))
	assert.Equal(t, 1, attempts)
}

func TestClassifyStatus(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		category mux.ErrorCategory
	}{
		{"unauthorized", http.StatusUnauthorized, mux.ErrorPermanent},
		{"forbidden", http.StatusForbidden, mux.ErrorPermanent},
		{"rate limited", http.StatusTooManyRequests, mux.ErrorTransient},
		{"bad request", http.StatusBadRequest, mux.ErrorUserInput},
		{"not found", http.StatusNotFound, mux.ErrorUserInput},
		{"internal error", http.StatusInternalServerError, mux.ErrorTransient},
		{"bad gateway", http.StatusBadGateway, mux.ErrorTransient},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := &http.Response{StatusCode: tt.status, Header: http.Header{}}
			err := classifyStatus(resp, nil)

			var ce mux.CategorizedError
			require.ErrorAs(t, err, &ce)
			assert.Equal(t, tt.category, ce.Category())
			assert.Equal(t, tt.status, ce.StatusCode())
		})
	}
}

func TestErrorMessage(t *testing.T) {
	t.Run("api envelope", func(t *testing.T) {
		msg := errorMessage(401, []byte(`{"error": {"message": "invalid API key", "type": "auth"}}`))
		assert.Equal(t, "API error (status 401): invalid API key", msg)
	})

	t.Run("raw body fallback", func(t *testing.T) {
		msg := errorMessage(502, []byte("bad gateway"))
		assert.Equal(t, "API error (status 502): bad gateway", msg)
	})

	t.Run("empty body", func(t *testing.T) {
		msg := errorMessage(500, nil)
		assert.Equal(t, "API error (status 500)", msg)
	})

	t.Run("long body truncated", func(t *testing.T) {
		body := make([]byte, 2048)
		for i := range body {
			body[i] = 'x'
		}
		msg := errorMessage(500, body)
		assert.LessOrEqual(t, len(msg), 512+len("API error (status 500): "))
	})
}

func TestParseRetryAfter(t *testing.T) {
	newResp := func(value string) *http.Response {
		h := http.Header{}
		if value != "" {
			h.Set("Retry-After", value)
		}
		return &http.Response{Header: h}
	}

	t.Run("seconds", func(t *testing.T) {
		assert.Equal(t, 5*time.Second, parseRetryAfter(newResp("5")))
	})

	t.Run("http date", func(t *testing.T) {
		future := time.Now().Add(10 * time.Second).UTC().Format(http.TimeFormat)
		got := parseRetryAfter(newResp(future))
		assert.Greater(t, got, 5*time.Second)
		assert.LessOrEqual(t, got, 10*time.Second)
	})

	t.Run("past date", func(t *testing.T) {
		past := time.Now().Add(-time.Minute).UTC().Format(http.TimeFormat)
		assert.Equal(t, time.Duration(0), parseRetryAfter(newResp(past)))
	})

	t.Run("missing", func(t *testing.T) {
		assert.Equal(t, time.Duration(0), parseRetryAfter(newResp("")))
	})

	t.Run("garbage", func(t *testing.T) {
		assert.Equal(t, time.Duration(0), parseRetryAfter(newResp("soon")))
	})
}

func TestStreamReadsDataLines(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "text/event-stream", r.Header.Get("Accept"))
		w.Header().Set("Content-Type", "text/event-stream")
		_, _ = w.Write([]byte("event: message\ndata: {\"a\":1}\n\ndata: {\"b\":2}\n\ndata: [DONE]\n\ndata: {\"never\":3}\n"))
	}))
	defer srv.Close()

	ch, err := newTestTransport(srv.URL).Stream(context.Background(), "/x", map[string]bool{"stream": true})
	require.NoError(t, err)

	var payloads []string
	for chunk := range ch {
		require.NoError(t, chunk.Err)
		payloads = append(payloads, string(chunk.Data))
	}

	// Non-data lines are skipped and nothing follows the done marker.
	assert.Equal(t, []string{`{"a":1}`, `{"b":2}`}, payloads)
}

func TestStreamConnectionRetryEmitsEvents(t *testing.T) {
	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts < 2 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "text/event-stream")
		_, _ = w.Write([]byte("data: {\"a\":1}\n\ndata: [DONE]\n\n"))
	}))
	defer srv.Close()

	events := make(chan retry.Event, 16)
	tr := New(Config{
		BaseURL:     srv.URL,
		APIKey:      "test-key",
		RetryEvents: events,
		Retry: retry.Config{
			MaxAttempts:  3,
			InitialDelay: time.Millisecond,
			MaxDelay:     10 * time.Millisecond,
			Multiplier:   2.0,
			Jitter:       0,
		},
	})

	ch, err := tr.Stream(context.Background(), "/x", nil)
	require.NoError(t, err)
	for range ch {
	}
	close(events)

	var types []retry.EventType
	for ev := range events {
		types = append(types, ev.Type)
	}

	assert.Equal(t, []retry.EventType{
		retry.EventAttemptStart,
		retry.EventAttemptFailed,
		retry.EventRetrying,
		retry.EventAttemptStart,
		retry.EventSuccess,
	}, types)
	assert.Equal(t, 2, attempts)
}

func TestStreamNon2xxClassified(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error": {"message": "no access"}}`))
	}))
	defer srv.Close()

	_, err := newTestTransport(srv.URL).Stream(context.Background(), "/x", nil)
	require.Error(t, err)
	assert.True(t, mux.IsPermanent(err))
	assert.Contains(t, err.Error(), "no access")
}
