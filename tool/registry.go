package tool

import (
	"encoding/json"
	"sync"

	mux "github.com/modelmux/modelmux-go"
)

// registeredTool combines a callback with the parameter schema of the
// tool it serves. The schema is kept for optional argument validation.
type registeredTool struct {
	callback mux.Callback
	schema   json.RawMessage
}

// Registry maps tool names to local callbacks.
// It is safe for concurrent use.
type Registry struct {
	mu           sync.RWMutex
	tools        map[string]registeredTool
	validateArgs bool
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithArgumentValidation enables client-side validation of tool call
// arguments against the tool's JSON-schema parameters before the
// callback is invoked. Violations are reported to the model as in-band
// error results.
func WithArgumentValidation() RegistryOption {
	return func(r *Registry) {
		r.validateArgs = true
	}
}

// NewRegistry creates an empty callback registry.
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{
		tools: make(map[string]registeredTool),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register adds a tool's callback to the registry.
// Returns an error if the tool has no callback or a callback is already
// registered under the same function name.
func (r *Registry) Register(t mux.Tool) error {
	if t.Callback == nil {
		return &ErrNoCallback{Name: t.Function.Name}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.tools[t.Function.Name]; exists {
		return &ErrAlreadyRegistered{Name: t.Function.Name}
	}

	r.tools[t.Function.Name] = registeredTool{
		callback: t.Callback,
		schema:   t.Function.Parameters,
	}
	return nil
}

// set stores a callback, overwriting any previous registration.
func (r *Registry) set(t mux.Tool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tools[t.Function.Name] = registeredTool{
		callback: t.Callback,
		schema:   t.Function.Parameters,
	}
}

// Get retrieves a callback by tool name.
func (r *Registry) Get(name string) (mux.Callback, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rt, ok := r.tools[name]
	if !ok {
		return nil, false
	}
	return rt.callback, true
}

// Names returns the names of all registered tools.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.tools))
	for name := range r.tools {
		names = append(names, name)
	}
	return names
}

// Len returns the number of registered callbacks.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.tools)
}

// Extract splits a tool list into a transmit-safe copy and a registry of
// local callbacks. The returned tools preserve the input length and
// order with callbacks removed; tools without callbacks (server-side and
// webhook tools) pass through untouched. The input slice is not mutated.
//
// When two tools share a function name the later callback wins. Use
// [Registry.Register] directly for strict duplicate rejection.
func Extract(tools []mux.Tool, opts ...RegistryOption) ([]mux.Tool, *Registry) {
	registry := NewRegistry(opts...)

	clean := make([]mux.Tool, len(tools))
	for i, t := range tools {
		if t.Callback != nil {
			registry.set(t)
		}
		t.Callback = nil
		clean[i] = t
	}

	return clean, registry
}
