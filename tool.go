package modelmux

import (
	"context"
	"encoding/json"
)

// Callback is a caller-supplied local function that satisfies one tool
// call. The args map is decoded from the tool call's JSON arguments
// (empty when the call carries none). The returned value becomes the
// tool result content: strings are used verbatim, anything else is
// JSON-serialized. A returned error is reported to the model in-band as
// an error payload rather than aborting the run.
type Callback func(ctx context.Context, args map[string]any) (any, error)

// ToolTypeFunction is the only tool type the service currently defines.
const ToolTypeFunction = "function"

// FunctionDef describes a callable function exposed to the model.
type FunctionDef struct {
	// Name uniquely identifies the tool within one request.
	Name string `json:"name"`
	// Description explains what the tool does (helps the model decide when to use it).
	Description string `json:"description,omitempty"`
	// Parameters is a JSON Schema object defining the function parameters.
	Parameters json.RawMessage `json:"parameters,omitempty"`
}

// Tool defines a capability the remote agent may invoke.
type Tool struct {
	Type     string      `json:"type"`
	Function FunctionDef `json:"function"`

	// Callback executes the tool locally. It is never transmitted to the
	// service; the client strips it before sending.
	Callback Callback `json:"-"`

	// WebhookURL, WebhookTimeout, and WebhookHeaders configure server-side
	// webhook execution. They are passed through untouched; the local run
	// loop ignores webhook tools.
	WebhookURL     string            `json:"webhookUrl,omitempty"`
	WebhookTimeout int               `json:"webhookTimeout,omitempty"`
	WebhookHeaders map[string]string `json:"webhookHeaders,omitempty"`
}

// NewFunctionTool creates a function tool backed by a local callback.
// Pass a nil callback for tools that execute server-side.
func NewFunctionTool(name, description string, parameters json.RawMessage, fn Callback) Tool {
	return Tool{
		Type: ToolTypeFunction,
		Function: FunctionDef{
			Name:        name,
			Description: description,
			Parameters:  parameters,
		},
		Callback: fn,
	}
}

// FunctionCall carries the name and JSON-encoded arguments of a tool call.
type FunctionCall struct {
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
}

// ToolCall represents a request from the remote agent to invoke a tool.
type ToolCall struct {
	// ID is unique per response and is echoed back in the tool result.
	ID       string       `json:"id"`
	Type     string       `json:"type,omitempty"`
	Function FunctionCall `json:"function"`
}

// ToolResult represents the locally produced result of one tool call.
type ToolResult struct {
	// ToolCallID matches the ID from the corresponding ToolCall.
	ToolCallID string `json:"tool_call_id"`
	// Content is the serialized result content to return to the model.
	Content string `json:"content"`
	// IsError indicates the content is an in-band error payload.
	IsError bool `json:"-"`
}

// Message converts the result into a tool message for the conversation.
func (r ToolResult) Message() Message {
	return NewToolMessage(r.ToolCallID, r.Content)
}
