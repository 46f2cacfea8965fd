package tool

import (
	"context"
	"encoding/json"
	"fmt"

	mux "github.com/modelmux/modelmux-go"
)

// Resolve executes the callbacks for the given tool calls, returning one
// result per call in the same order. Failures never escape as errors:
// a missing callback, malformed arguments, a schema violation, or a
// callback error or panic all produce a result whose content is an
// {"error": ...} payload for the model to observe.
func (r *Registry) Resolve(ctx context.Context, calls []mux.ToolCall) []mux.ToolResult {
	results := make([]mux.ToolResult, len(calls))
	for i, call := range calls {
		results[i] = r.resolveOne(ctx, call)
	}
	return results
}

func (r *Registry) resolveOne(ctx context.Context, call mux.ToolCall) mux.ToolResult {
	name := call.Function.Name

	r.mu.RLock()
	rt, ok := r.tools[name]
	r.mu.RUnlock()

	if !ok {
		return errorResult(call.ID, fmt.Sprintf("No callback registered for tool: %s", name))
	}

	args, err := decodeArguments(call.Function.Arguments)
	if err != nil {
		return errorResult(call.ID, fmt.Sprintf("invalid arguments for tool %s: %v", name, err))
	}

	if r.validateArgs && len(rt.schema) > 0 {
		if err := validateArguments(rt.schema, args); err != nil {
			return errorResult(call.ID, err.Error())
		}
	}

	value, err := invoke(ctx, rt.callback, args)
	if err != nil {
		return errorResult(call.ID, err.Error())
	}

	content, err := serializeContent(value)
	if err != nil {
		return errorResult(call.ID, fmt.Sprintf("unserializable result from tool %s: %v", name, err))
	}

	return mux.ToolResult{ToolCallID: call.ID, Content: content}
}

// invoke runs the callback, converting a panic into an error so a
// misbehaving callback cannot abort the run loop.
func invoke(ctx context.Context, fn mux.Callback, args map[string]any) (value any, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("callback panic: %v", rec)
		}
	}()
	return fn(ctx, args)
}

// decodeArguments parses the JSON-encoded arguments of a tool call into
// a map. Absent arguments decode to an empty map. The service normally
// sends a JSON object, but a double-encoded object (a JSON string
// containing an object) is unwrapped once.
func decodeArguments(raw string) (map[string]any, error) {
	if raw == "" {
		return map[string]any{}, nil
	}

	var decoded any
	if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
		return nil, err
	}

	if s, ok := decoded.(string); ok {
		if err := json.Unmarshal([]byte(s), &decoded); err != nil {
			return nil, err
		}
	}

	switch v := decoded.(type) {
	case map[string]any:
		return v, nil
	case nil:
		return map[string]any{}, nil
	default:
		return nil, fmt.Errorf("expected a JSON object, got %T", decoded)
	}
}

// serializeContent converts a callback's return value into tool result
// content. Strings pass through verbatim; everything else is
// JSON-serialized.
func serializeContent(value any) (string, error) {
	if s, ok := value.(string); ok {
		return s, nil
	}
	data, err := json.Marshal(value)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// errorResult builds a tool result carrying an in-band error payload.
func errorResult(callID, msg string) mux.ToolResult {
	data, _ := json.Marshal(map[string]string{"error": msg})
	return mux.ToolResult{
		ToolCallID: callID,
		Content:    string(data),
		IsError:    true,
	}
}
