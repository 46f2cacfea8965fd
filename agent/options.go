package agent

import (
	mux "github.com/modelmux/modelmux-go"
	"github.com/modelmux/modelmux-go/event"
)

// DefaultMaxToolIterations is the default iteration budget for a run.
const DefaultMaxToolIterations = 10

// Options contains configuration for agent execution.
type Options struct {
	// MaxToolIterations limits the number of request/response round
	// trips in one run. Default is DefaultMaxToolIterations.
	MaxToolIterations int

	// Events optionally receives run lifecycle events.
	// Events are sent non-blocking; if the channel is full, events are dropped.
	Events chan<- event.Event

	// ValidateArguments enables client-side validation of tool call
	// arguments against each tool's parameter schema.
	ValidateArguments bool

	// RequestOptions are passed through to every agent call.
	RequestOptions []mux.Option
}

// Option is a functional option for configuring agent execution.
type Option func(*Options)

// WithMaxToolIterations sets the iteration budget for the run.
func WithMaxToolIterations(n int) Option {
	return func(o *Options) {
		o.MaxToolIterations = n
	}
}

// WithEvents sets the channel receiving run lifecycle events.
func WithEvents(ch chan<- event.Event) Option {
	return func(o *Options) {
		o.Events = ch
	}
}

// WithArgumentValidation enables schema validation of tool call
// arguments before callbacks are invoked.
func WithArgumentValidation() Option {
	return func(o *Options) {
		o.ValidateArguments = true
	}
}

// WithRequestOptions passes per-request options through to every agent call.
func WithRequestOptions(opts ...mux.Option) Option {
	return func(o *Options) {
		o.RequestOptions = append(o.RequestOptions, opts...)
	}
}

// applyOptions applies functional options over the defaults.
func applyOptions(opts ...Option) *Options {
	o := &Options{MaxToolIterations: DefaultMaxToolIterations}
	for _, opt := range opts {
		opt(o)
	}
	return o
}
