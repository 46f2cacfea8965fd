// Package transport issues authenticated HTTPS requests to the ModelMux
// API, classifying failures into the library's error taxonomy and
// retrying transient ones with exponential backoff.
package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	mux "github.com/modelmux/modelmux-go"
	"github.com/modelmux/modelmux-go/retry"
)

// Config holds transport construction parameters. Every transport is
// independently configured; there is no shared client state.
type Config struct {
	// BaseURL is the API root, without a trailing slash.
	BaseURL string

	// APIKey is the bearer credential included on every request.
	APIKey string

	// Headers are additional headers set on every request.
	Headers map[string]string

	// HTTPClient overrides the default HTTP client.
	HTTPClient *http.Client

	// Retry configures backoff for transient failures.
	Retry retry.Config

	// RetryEvents optionally receives retry attempt events.
	RetryEvents chan<- retry.Event
}

// Transport sends JSON requests to the API.
type Transport struct {
	baseURL     string
	apiKey      string
	headers     map[string]string
	httpClient  *http.Client
	retryConfig retry.Config
	retryEvents chan<- retry.Event
}

// New creates a Transport from the given configuration.
func New(cfg Config) *Transport {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 60 * time.Second}
	}

	return &Transport{
		baseURL:     strings.TrimSuffix(cfg.BaseURL, "/"),
		apiKey:      cfg.APIKey,
		headers:     cfg.Headers,
		httpClient:  httpClient,
		retryConfig: cfg.Retry,
		retryEvents: cfg.RetryEvents,
	}
}

// Do sends a request and decodes the JSON response body into out.
// Transient failures (5xx, 429, network errors) are retried with
// exponential backoff; authentication failures and other 4xx responses
// propagate immediately. Pass nil for body on GET requests and nil for
// out to discard the response body.
func (t *Transport) Do(ctx context.Context, method, path string, body, out any) error {
	var payload []byte
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		payload = data
	}

	respBody, err := retry.DoWithEvents(ctx, t.retryConfig, t.retryEvents, func() ([]byte, error) {
		return t.roundTrip(ctx, method, path, payload)
	})
	if err != nil {
		return err
	}

	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("failed to parse response: %w", err)
		}
	}
	return nil
}

// roundTrip performs a single HTTP exchange and returns the response body.
func (t *Transport) roundTrip(ctx context.Context, method, path string, payload []byte) ([]byte, error) {
	req, err := t.newRequest(ctx, method, path, payload)
	if err != nil {
		return nil, err
	}

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return nil, mux.NewNetworkError("request failed", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, mux.NewNetworkError("failed to read response", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, classifyStatus(resp, respBody)
	}

	return respBody, nil
}

func (t *Transport) newRequest(ctx context.Context, method, path string, payload []byte) (*http.Request, error) {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, t.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+t.apiKey)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range t.headers {
		req.Header.Set(k, v)
	}
	return req, nil
}

// apiErrorBody is the error envelope the service returns on failures.
type apiErrorBody struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// classifyStatus maps a non-2xx response to a categorized error.
func classifyStatus(resp *http.Response, body []byte) error {
	msg := errorMessage(resp.StatusCode, body)
	code := resp.StatusCode

	switch {
	case code == http.StatusUnauthorized || code == http.StatusForbidden:
		return mux.NewAuthenticationError(msg, code)
	case code == http.StatusTooManyRequests:
		return mux.NewRateLimitError(msg, parseRetryAfter(resp))
	case code >= 500:
		return mux.NewServerError(msg, code)
	default:
		return mux.NewClientError(msg, code)
	}
}

// errorMessage extracts the API error message from a response body,
// falling back to the raw body text.
func errorMessage(status int, body []byte) string {
	var envelope apiErrorBody
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Error.Message != "" {
		return fmt.Sprintf("API error (status %d): %s", status, envelope.Error.Message)
	}

	text := strings.TrimSpace(string(body))
	if len(text) > 512 {
		text = text[:512]
	}
	if text == "" {
		return fmt.Sprintf("API error (status %d)", status)
	}
	return fmt.Sprintf("API error (status %d): %s", status, text)
}

// parseRetryAfter extracts the Retry-After duration from a response.
// Returns 0 if the header is not present or cannot be parsed.
func parseRetryAfter(resp *http.Response) time.Duration {
	header := resp.Header.Get("Retry-After")
	if header == "" {
		return 0
	}

	// Try parsing as seconds (most common)
	if seconds, err := strconv.Atoi(header); err == nil {
		return time.Duration(seconds) * time.Second
	}

	// Try parsing as HTTP-date (RFC 7231)
	if t, err := http.ParseTime(header); err == nil {
		delay := time.Until(t)
		if delay > 0 {
			return delay
		}
	}

	return 0
}
