// Package execution defines the capability interface for the external
// service that carries out confirmed tasks, such as a web search
// provider. Implementations live under internal/platform.
package execution

import (
	"context"
	"errors"
)

// Common execution errors.
var (
	// ErrExecutionFailed is the base error for an execution attempt that
	// did not produce a usable result. It is recorded on the task and is
	// never fatal to the pass.
	ErrExecutionFailed = errors.New("execution failed")

	// ErrTimeout is returned when the adapter's own time bound expires
	// before the external service answered.
	ErrTimeout = errors.New("execution timed out")
)

// Result carries the text payload summarizing a successful execution,
// suitable for direct insertion into a task description.
type Result struct {
	Summary string
}

// Executor invokes an external capability with a task's instruction text.
// Implementations must bound their own execution time and surface a
// timeout as an error rather than hang the caller.
type Executor interface {
	Execute(ctx context.Context, instruction string) (Result, error)
}
