package queryengine

import (
	"context"
	"fmt"
)

// State is the lifecycle state of a submitted query execution.
type State string

const (
	StateQueued    State = "QUEUED"
	StateRunning   State = "RUNNING"
	StateSucceeded State = "SUCCEEDED"
	StateFailed    State = "FAILED"
	StateCancelled State = "CANCELLED"
)

// Terminal reports whether the state can no longer change.
func (s State) Terminal() bool {
	return s == StateSucceeded || s == StateFailed || s == StateCancelled
}

// Query is one unit of work for the engine. Database and OutputLocation are
// passed through to engines that need them; the local engine ignores both.
type Query struct {
	SQL            string
	Database       string
	OutputLocation string
}

// Status is the poll response for an execution.
type Status struct {
	State         State
	FailureReason string
}

// Result holds a completed execution's output. Every cell is string-typed
// regardless of its logical type; callers decode per their own schema.
type Result struct {
	Columns []string
	Rows    [][]string
}

// Engine is the query execution service consumed by the replay engine.
type Engine interface {
	SubmitQuery(ctx context.Context, q Query) (string, error)
	QueryStatus(ctx context.Context, executionID string) (Status, error)
	QueryResults(ctx context.Context, executionID string) (*Result, error)
}

// ExecutionError is a terminal FAILED or CANCELLED status.
type ExecutionError struct {
	ExecutionID string
	State       State
	Reason      string
}

func (e *ExecutionError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("query execution %s ended in state %s", e.ExecutionID, e.State)
	}
	return fmt.Sprintf("query execution %s ended in state %s: %s", e.ExecutionID, e.State, e.Reason)
}
