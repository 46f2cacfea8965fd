package client

import (
	"context"
	"net/http"
	"net/url"
	"time"

	mux "github.com/modelmux/modelmux-go"
	"github.com/modelmux/modelmux-go/internal/transport"
	"github.com/modelmux/modelmux-go/retry"
)

// DefaultBaseURL is the production API root.
const DefaultBaseURL = "https://api.modelmux.ai/v1"

// Config holds configuration for creating a client.
// It is validated by [New]; no network call is made at construction.
type Config struct {
	// APIKey is the bearer credential for the service. Required.
	APIKey string

	// BaseURL overrides the API root. Defaults to [DefaultBaseURL].
	BaseURL string

	// RouterID selects the router used for chat requests that don't pin
	// a model. Optional.
	RouterID string

	// Timeout bounds each HTTP request. Defaults to 60 seconds.
	Timeout time.Duration

	// Headers are additional headers sent on every request.
	Headers map[string]string

	// Retry configures retry behavior for transient errors.
	// If nil, uses the default configuration (3 attempts with
	// exponential backoff).
	Retry *retry.Config

	// RetryEvents is an optional channel for retry attempt events.
	// Events are sent non-blocking; if the channel is full, events are dropped.
	RetryEvents chan<- retry.Event
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient sets a custom HTTP client, overriding Timeout.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithDefaultOptions sets default options for all chat requests.
// Per-request options override these defaults.
func WithDefaultOptions(opts ...mux.Option) ClientOption {
	return func(c *Client) {
		c.defaultOpts = append(c.defaultOpts, opts...)
	}
}

// Client talks to the ModelMux API.
type Client struct {
	routerID    string
	transport   *transport.Transport
	httpClient  *http.Client
	defaultOpts []mux.Option
}

// New creates a client from the given configuration.
// It fails with a validation error when the API key is missing or the
// base URL does not parse.
func New(cfg Config, opts ...ClientOption) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, &mux.ValidationError{Field: "apiKey"}
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if _, err := url.Parse(baseURL); err != nil {
		return nil, &mux.ValidationError{Field: "baseUrl", Msg: err.Error()}
	}

	retryConfig := retry.DefaultConfig()
	if cfg.Retry != nil {
		retryConfig = *cfg.Retry
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 60 * time.Second
	}

	c := &Client{
		routerID:   cfg.RouterID,
		httpClient: &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(c)
	}

	c.transport = transport.New(transport.Config{
		BaseURL:     baseURL,
		APIKey:      cfg.APIKey,
		Headers:     cfg.Headers,
		HTTPClient:  c.httpClient,
		Retry:       retryConfig,
		RetryEvents: cfg.RetryEvents,
	})
	return c, nil
}

// chatRequest is the body for POST /chat/completions.
type chatRequest struct {
	Router      string         `json:"router,omitempty"`
	Model       string         `json:"model,omitempty"`
	Messages    []mux.Message  `json:"messages"`
	Tools       []mux.Tool     `json:"tools,omitempty"`
	ToolChoice  mux.ToolChoice `json:"tool_choice,omitempty"`
	Temperature *float64       `json:"temperature,omitempty"`
	MaxTokens   int            `json:"max_tokens,omitempty"`
	Stream      bool           `json:"stream,omitempty"`
}

func (c *Client) buildChatRequest(messages []mux.Message, opts []mux.Option) chatRequest {
	options := mux.ApplyOptions(append(append([]mux.Option{}, c.defaultOpts...), opts...)...)

	req := chatRequest{
		Router:      c.routerID,
		Model:       options.Model,
		Messages:    messages,
		Temperature: options.Temperature,
		MaxTokens:   options.MaxTokens,
		ToolChoice:  options.ToolChoice,
	}
	if len(options.Tools) > 0 {
		req.Tools = stripCallbacks(options.Tools)
	}
	return req
}

// stripCallbacks copies a tool list with callbacks removed.
// Callbacks are never transmitted.
func stripCallbacks(tools []mux.Tool) []mux.Tool {
	clean := make([]mux.Tool, len(tools))
	for i, t := range tools {
		t.Callback = nil
		clean[i] = t
	}
	return clean
}

// Chat sends a conversation and returns the complete response.
func (c *Client) Chat(ctx context.Context, messages []mux.Message, opts ...mux.Option) (*mux.Response, error) {
	if len(messages) == 0 {
		return nil, &mux.ValidationError{Field: "messages"}
	}

	var resp mux.Response
	if err := c.transport.Do(ctx, http.MethodPost, "/chat/completions", c.buildChatRequest(messages, opts), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// agentRequest is the body for POST /agents.
type agentRequest struct {
	AgentID  string        `json:"agentId"`
	Messages []mux.Message `json:"messages"`
	Tools    []mux.Tool    `json:"tools,omitempty"`
	Options  *agentOptions `json:"options,omitempty"`
}

type agentOptions struct {
	Model       string   `json:"model,omitempty"`
	Temperature *float64 `json:"temperature,omitempty"`
	MaxTokens   int      `json:"max_tokens,omitempty"`
}

// CallAgent performs one round trip against the agent endpoint.
// Tools are transmitted as given; strip callbacks before calling.
// The agent run loop in [github.com/modelmux/modelmux-go/agent] drives
// this method; most callers want agent.Run instead.
func (c *Client) CallAgent(ctx context.Context, agentID string, messages []mux.Message, tools []mux.Tool, opts ...mux.Option) (*mux.Response, error) {
	if agentID == "" {
		return nil, &mux.ValidationError{Field: "agentId"}
	}
	if len(messages) == 0 {
		return nil, &mux.ValidationError{Field: "messages"}
	}

	options := mux.ApplyOptions(opts...)

	req := agentRequest{
		AgentID:  agentID,
		Messages: messages,
		Tools:    tools,
	}
	if options.Model != "" || options.Temperature != nil || options.MaxTokens != 0 {
		req.Options = &agentOptions{
			Model:       options.Model,
			Temperature: options.Temperature,
			MaxTokens:   options.MaxTokens,
		}
	}

	var resp mux.Response
	if err := c.transport.Do(ctx, http.MethodPost, "/agents", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetRouterConfig fetches the server-side configuration of a router.
func (c *Client) GetRouterConfig(ctx context.Context, routerID string) (*mux.RouterConfig, error) {
	if routerID == "" {
		return nil, &mux.ValidationError{Field: "routerId"}
	}

	var cfg mux.RouterConfig
	if err := c.transport.Do(ctx, http.MethodGet, "/getRouterConfig/"+url.PathEscape(routerID), nil, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// GetModels lists the models available through the service.
func (c *Client) GetModels(ctx context.Context) ([]mux.ModelInfo, error) {
	var envelope struct {
		Data []mux.ModelInfo `json:"data"`
	}
	if err := c.transport.Do(ctx, http.MethodGet, "/getModels", nil, &envelope); err != nil {
		return nil, err
	}
	return envelope.Data, nil
}
