package agent

import (
	"context"

	mux "github.com/modelmux/modelmux-go"
	"github.com/modelmux/modelmux-go/event"
	"github.com/modelmux/modelmux-go/tool"
)

// Caller performs one round trip against the agent endpoint.
// The [github.com/modelmux/modelmux-go/client.Client] type implements
// this interface.
type Caller interface {
	CallAgent(ctx context.Context, agentID string, messages []mux.Message, tools []mux.Tool, opts ...mux.Option) (*mux.Response, error)
}

// Agent orchestrates autonomous tool-calling conversations against a
// server-side configured agent.
type Agent struct {
	caller Caller
}

// New creates an Agent backed by the given caller.
func New(c Caller) *Agent {
	return &Agent{caller: c}
}

// Result represents the final outcome of an agent run.
type Result struct {
	// Response is the final response from the remote agent, returned
	// unchanged from the last round trip.
	Response *mux.Response

	// Messages is the complete conversation history, including the
	// assistant and tool messages appended during the run.
	Messages []mux.Message

	// Iterations is the number of round trips performed.
	Iterations int

	// Usage aggregates token usage across all round trips.
	Usage mux.Usage
}

// Run executes the agent loop until the remote agent no longer requests
// tool execution or the iteration budget is exhausted.
//
// Callbacks are extracted from the tool list once at entry; the remote
// agent only ever sees callback-free tool definitions. Each response
// that requests tool execution has its calls resolved in order, the
// assistant message and tool results appended to the history, and the
// extended conversation resubmitted. Exhausting the budget fails with
// [MaxIterationsError] rather than returning a partial response.
func (a *Agent) Run(ctx context.Context, agentID string, messages []mux.Message, tools []mux.Tool, opts ...Option) (*Result, error) {
	if agentID == "" {
		return nil, &mux.ValidationError{Field: "agentId"}
	}
	if len(messages) == 0 {
		return nil, &mux.ValidationError{Field: "messages"}
	}

	options := applyOptions(opts...)

	var registryOpts []tool.RegistryOption
	if options.ValidateArguments {
		registryOpts = append(registryOpts, tool.WithArgumentValidation())
	}
	clean, registry := tool.Extract(tools, registryOpts...)

	// Copy so the caller's slice is never mutated.
	history := make([]mux.Message, len(messages), len(messages)+8)
	copy(history, messages)

	event.Emit(options.Events, event.Event{Type: event.RunStart})

	var usage mux.Usage

	for iteration := 1; ; iteration++ {
		if iteration > options.MaxToolIterations {
			err := &MaxIterationsError{Limit: options.MaxToolIterations}
			event.Emit(options.Events, event.Event{Type: event.RunError, Iteration: iteration - 1, Error: err})
			return nil, err
		}

		event.Emit(options.Events, event.Event{Type: event.IterationStart, Iteration: iteration})

		resp, err := a.caller.CallAgent(ctx, agentID, history, clean, options.RequestOptions...)
		if err != nil {
			event.Emit(options.Events, event.Event{Type: event.RunError, Iteration: iteration, Error: err})
			return nil, err
		}

		event.Emit(options.Events, event.Event{Type: event.IterationEnd, Iteration: iteration, Response: resp})

		usage.PromptTokens += resp.Usage.PromptTokens
		usage.CompletionTokens += resp.Usage.CompletionTokens
		usage.TotalTokens += resp.Usage.TotalTokens

		calls := resp.ToolCalls()

		// A tool-execution flag without actual calls is not an error;
		// the response passes through as a completion.
		if !resp.RequiresToolExecution() || len(calls) == 0 {
			event.Emit(options.Events, event.Event{Type: event.RunEnd, Iteration: iteration, Response: resp})
			return &Result{
				Response:   resp,
				Messages:   history,
				Iterations: iteration,
				Usage:      usage,
			}, nil
		}

		results := a.resolveCalls(ctx, registry, calls, iteration, options.Events)

		history = append(history, mux.Message{
			ID:        mux.GenerateMessageID(),
			Role:      mux.RoleAssistant,
			Content:   resp.Content(),
			ToolCalls: calls,
		})
		for _, res := range results {
			msg := res.Message()
			msg.ID = mux.GenerateMessageID()
			history = append(history, msg)
		}
	}
}

// resolveCalls executes callbacks strictly in the order the calls appear
// in the response, emitting lifecycle events around each one.
func (a *Agent) resolveCalls(ctx context.Context, registry *tool.Registry, calls []mux.ToolCall, iteration int, events chan<- event.Event) []mux.ToolResult {
	results := make([]mux.ToolResult, len(calls))
	for i := range calls {
		call := calls[i]
		event.Emit(events, event.Event{Type: event.ToolCallStart, Iteration: iteration, ToolCall: &call})

		results[i] = registry.Resolve(ctx, calls[i:i+1])[0]

		event.Emit(events, event.Event{Type: event.ToolCallResult, Iteration: iteration, ToolCall: &call, ToolResult: &results[i]})
	}
	return results
}

// Execute performs a single round trip against the agent endpoint with
// callbacks stripped from the tool list, returning the raw response.
// Any tool-call resolution is left to the caller.
func (a *Agent) Execute(ctx context.Context, agentID string, messages []mux.Message, tools []mux.Tool, opts ...Option) (*mux.Response, error) {
	if agentID == "" {
		return nil, &mux.ValidationError{Field: "agentId"}
	}
	if len(messages) == 0 {
		return nil, &mux.ValidationError{Field: "messages"}
	}

	options := applyOptions(opts...)

	clean, _ := tool.Extract(tools)
	return a.caller.CallAgent(ctx, agentID, messages, clean, options.RequestOptions...)
}
