package modelmux

// Finish reasons reported by the service.
const (
	FinishReasonStop      = "stop"
	FinishReasonToolCalls = "tool_calls"
	FinishReasonLength    = "length"
)

// Choice is one completion alternative in a response.
type Choice struct {
	Index        int     `json:"index"`
	Message      Message `json:"message"`
	FinishReason string  `json:"finish_reason,omitempty"`
}

// AgentMetadata carries agent-specific response metadata.
type AgentMetadata struct {
	// RequiresToolExecution flags that the agent expects the caller to
	// execute tool calls and resubmit before a final answer is produced.
	RequiresToolExecution bool   `json:"requires_tool_execution,omitempty"`
	AgentID               string `json:"agent_id,omitempty"`
}

// Usage contains token usage information for a request.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// Response represents a complete response from the service, for both
// chat completions and agent calls.
type Response struct {
	ID            string         `json:"id,omitempty"`
	Model         string         `json:"model,omitempty"`
	Created       int64          `json:"created,omitempty"`
	Choices       []Choice       `json:"choices"`
	AgentMetadata *AgentMetadata `json:"agent_metadata,omitempty"`
	Usage         Usage          `json:"usage"`
}

// Content returns the message content of the first choice, or "" when
// the response has no choices.
func (r *Response) Content() string {
	if len(r.Choices) == 0 {
		return ""
	}
	return r.Choices[0].Message.Content
}

// FinishReason returns the finish reason of the first choice, or ""
// when the response has no choices.
func (r *Response) FinishReason() string {
	if len(r.Choices) == 0 {
		return ""
	}
	return r.Choices[0].FinishReason
}

// ToolCalls returns the tool calls of the first choice, if any.
func (r *Response) ToolCalls() []ToolCall {
	if len(r.Choices) == 0 {
		return nil
	}
	return r.Choices[0].Message.ToolCalls
}

// RequiresToolExecution reports whether the response signals that tool
// calls must be executed: either the first choice finished with
// tool_calls or the agent metadata explicitly flags it.
func (r *Response) RequiresToolExecution() bool {
	if r.FinishReason() == FinishReasonToolCalls {
		return true
	}
	return r.AgentMetadata != nil && r.AgentMetadata.RequiresToolExecution
}

// StreamEvent represents a single event in a streaming response.
type StreamEvent struct {
	// Delta contains the incremental content for this event.
	Delta string
	// Done indicates if this is the final event in the stream.
	Done bool
	// Response contains the accumulated response data when Done is true.
	Response *Response
	// Err contains any error that occurred during streaming.
	Err error
}

// RouterConfig describes a router's server-side configuration.
type RouterConfig struct {
	RouterID    string         `json:"router_id"`
	Name        string         `json:"name,omitempty"`
	Description string         `json:"description,omitempty"`
	Models      []string       `json:"models,omitempty"`
	Policy      map[string]any `json:"policy,omitempty"`
}

// ModelInfo describes a model available through the service.
type ModelInfo struct {
	ID       string `json:"id"`
	Provider string `json:"provider,omitempty"`
	Name     string `json:"name,omitempty"`
}
