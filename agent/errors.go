package agent

import "fmt"

// MaxIterationsError indicates the run loop exhausted its iteration
// budget while the remote agent kept requesting tool execution. It is a
// hard failure; no partial response is returned alongside it.
type MaxIterationsError struct {
	Limit int
}

// Error returns a message naming the configured limit.
func (e *MaxIterationsError) Error() string {
	return fmt.Sprintf("agent: maximum tool iterations reached (limit %d)", e.Limit)
}
