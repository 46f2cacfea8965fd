package client

import (
	"context"
	"encoding/json"

	mux "github.com/modelmux/modelmux-go"
	"github.com/modelmux/modelmux-go/internal/transport"
)

// streamChunk is one incremental delta from a streaming completion.
type streamChunk struct {
	ID      string `json:"id,omitempty"`
	Model   string `json:"model,omitempty"`
	Choices []struct {
		Delta struct {
			Role      string          `json:"role,omitempty"`
			Content   string          `json:"content,omitempty"`
			ToolCalls []toolCallDelta `json:"tool_calls,omitempty"`
		} `json:"delta"`
		FinishReason string `json:"finish_reason,omitempty"`
	} `json:"choices"`
	Usage *mux.Usage `json:"usage,omitempty"`
}

// toolCallDelta is a tool call fragment; fragments sharing an index are
// merged as they arrive.
type toolCallDelta struct {
	Index    int    `json:"index"`
	ID       string `json:"id,omitempty"`
	Type     string `json:"type,omitempty"`
	Function struct {
		Name      string `json:"name,omitempty"`
		Arguments string `json:"arguments,omitempty"`
	} `json:"function"`
}

// ChatStream sends a conversation and returns a channel of streaming
// events. The stream is a single pass: each delta is delivered once, and
// the final event carries Done=true with the accumulated Response.
// Callers should check StreamEvent.Err for any errors. Stopping
// consumption and cancelling the context releases the connection.
func (c *Client) ChatStream(ctx context.Context, messages []mux.Message, opts ...mux.Option) (<-chan mux.StreamEvent, error) {
	if len(messages) == 0 {
		return nil, &mux.ValidationError{Field: "messages"}
	}

	req := c.buildChatRequest(messages, opts)
	req.Stream = true

	chunks, err := c.transport.Stream(ctx, "/chat/completions", req)
	if err != nil {
		return nil, err
	}

	events := make(chan mux.StreamEvent)
	go forwardStream(ctx, chunks, events)
	return events, nil
}

// forwardStream parses raw chunks into stream events, accumulating
// content and tool call fragments into the final response. Every send
// races context cancellation so an abandoned consumer never strands
// the goroutine.
func forwardStream(ctx context.Context, chunks <-chan transport.Chunk, events chan<- mux.StreamEvent) {
	defer close(events)

	acc := newStreamAccumulator()

	for chunk := range chunks {
		if chunk.Err != nil {
			sendEvent(ctx, events, mux.StreamEvent{Err: chunk.Err})
			return
		}

		var parsed streamChunk
		if err := json.Unmarshal(chunk.Data, &parsed); err != nil {
			// Skip malformed keep-alive or comment payloads.
			continue
		}

		delta := acc.add(parsed)
		if delta != "" {
			if !sendEvent(ctx, events, mux.StreamEvent{Delta: delta}) {
				return
			}
		}
	}

	sendEvent(ctx, events, mux.StreamEvent{Done: true, Response: acc.response()})
}

// sendEvent delivers one event, giving up when the context is cancelled.
func sendEvent(ctx context.Context, events chan<- mux.StreamEvent, ev mux.StreamEvent) bool {
	select {
	case events <- ev:
		return true
	case <-ctx.Done():
		return false
	}
}

// streamAccumulator assembles a complete Response from deltas.
type streamAccumulator struct {
	id           string
	model        string
	content      []byte
	toolCalls    []mux.ToolCall
	finishReason string
	usage        mux.Usage
}

func newStreamAccumulator() *streamAccumulator {
	return &streamAccumulator{}
}

// add folds one chunk into the accumulator and returns its text delta.
func (a *streamAccumulator) add(chunk streamChunk) string {
	if chunk.ID != "" {
		a.id = chunk.ID
	}
	if chunk.Model != "" {
		a.model = chunk.Model
	}
	if chunk.Usage != nil {
		a.usage = *chunk.Usage
	}
	if len(chunk.Choices) == 0 {
		return ""
	}

	choice := chunk.Choices[0]
	if choice.FinishReason != "" {
		a.finishReason = choice.FinishReason
	}

	for _, tc := range choice.Delta.ToolCalls {
		a.mergeToolCall(tc)
	}

	a.content = append(a.content, choice.Delta.Content...)
	return choice.Delta.Content
}

// mergeToolCall folds a tool call fragment into the call at its index.
func (a *streamAccumulator) mergeToolCall(delta toolCallDelta) {
	for delta.Index >= len(a.toolCalls) {
		a.toolCalls = append(a.toolCalls, mux.ToolCall{})
	}

	call := &a.toolCalls[delta.Index]
	if delta.ID != "" {
		call.ID = delta.ID
	}
	if delta.Type != "" {
		call.Type = delta.Type
	}
	if delta.Function.Name != "" {
		call.Function.Name = delta.Function.Name
	}
	call.Function.Arguments += delta.Function.Arguments
}

func (a *streamAccumulator) response() *mux.Response {
	return &mux.Response{
		ID:    a.id,
		Model: a.model,
		Choices: []mux.Choice{{
			Message: mux.Message{
				Role:      mux.RoleAssistant,
				Content:   string(a.content),
				ToolCalls: a.toolCalls,
			},
			FinishReason: a.finishReason,
		}},
		Usage: a.usage,
	}
}
