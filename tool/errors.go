package tool

import "fmt"

// ErrNoCallback is returned when registering a tool that carries no callback.
type ErrNoCallback struct {
	Name string
}

// Error returns a formatted error message including the tool name.
func (e *ErrNoCallback) Error() string {
	return fmt.Sprintf("tool: %s has no callback", e.Name)
}

// ErrAlreadyRegistered is returned when registering a tool with a duplicate name.
type ErrAlreadyRegistered struct {
	Name string
}

// Error returns a formatted error message including the duplicate tool name.
func (e *ErrAlreadyRegistered) Error() string {
	return fmt.Sprintf("tool: already registered: %s", e.Name)
}
