// Package event provides lifecycle events for observing agent runs.
// Events are delivered on optional buffered channels and are dropped
// rather than blocking when a consumer falls behind.
package event

import (
	"time"

	mux "github.com/modelmux/modelmux-go"
)

// Type identifies the kind of event.
type Type string

// Run lifecycle events
const (
	// RunStart fires when an agent run begins.
	RunStart Type = "run_start"

	// RunEnd fires when an agent run completes successfully.
	RunEnd Type = "run_end"

	// RunError fires when an unrecoverable error occurs.
	RunError Type = "run_error"
)

// Iteration lifecycle events
const (
	// IterationStart fires when a request/response round trip begins.
	IterationStart Type = "iteration_start"

	// IterationEnd fires when a round trip completes.
	IterationEnd Type = "iteration_end"
)

// Tool call lifecycle events
const (
	// ToolCallStart fires before a tool callback executes.
	ToolCallStart Type = "tool_call_start"

	// ToolCallResult fires with the tool execution result.
	ToolCallResult Type = "tool_call_result"
)

// Event represents an observable occurrence during an agent run.
type Event struct {
	// Type identifies the kind of event.
	Type Type

	// Iteration is the current round trip number (1-indexed).
	Iteration int

	// Response contains the response for IterationEnd and RunEnd events.
	Response *mux.Response

	// ToolCall contains the tool call for tool-related events.
	ToolCall *mux.ToolCall

	// ToolResult contains the result for ToolCallResult events.
	ToolResult *mux.ToolResult

	// Error contains the error for RunError events.
	Error error

	// Timestamp is when the event occurred.
	Timestamp time.Time
}

// Emit sends an event with timestamp to the channel without blocking.
// A nil channel is ignored.
func Emit(ch chan<- Event, e Event) {
	if ch == nil {
		return
	}
	e.Timestamp = time.Now()
	select {
	case ch <- e:
	default:
		// Channel full - don't block
	}
}

// NewChannel creates a buffered event channel with standard capacity.
func NewChannel() chan Event {
	return make(chan Event, 100)
}
