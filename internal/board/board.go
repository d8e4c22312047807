// Package board defines the capability interface for the shared task
// board and the error taxonomy its implementations must follow. The
// orchestrator only ever talks to the board through this interface, so
// alternative board backends can be substituted without touching the
// pass logic.
package board

import (
	"context"

	"github.com/notewire/notewire/internal/domain"
)

// UpdateFields carries a partial update to a task record. Nil fields are
// left untouched on the board.
type UpdateFields struct {
	Description *string
}

// Client is the narrow surface the orchestrator consumes. Every call is a
// single atomic operation against the remote board: a killed pass leaves
// each record either fully updated or untouched.
type Client interface {
	// CreateTask creates a new record in the given bucket and returns the
	// board-assigned ID. It returns an error wrapping ErrWrite when the
	// write cannot be confirmed; a task is never silently dropped.
	CreateTask(ctx context.Context, bucket domain.Bucket, title, description string) (string, error)

	// ListTasks returns a snapshot of all records currently in the bucket.
	ListTasks(ctx context.Context, bucket domain.Bucket) ([]domain.TaskRecord, error)

	// UpdateTask applies a partial update to the record with the given ID.
	// It returns an error wrapping ErrNotFound when the record no longer
	// exists, for example because a human deleted it on the board.
	UpdateTask(ctx context.Context, id string, fields UpdateFields) error

	// MoveTask moves the record into the target bucket. The operation is
	// idempotent: moving a record that is already in the target bucket
	// returns ErrAlreadyMoved, which callers treat as success.
	MoveTask(ctx context.Context, id string, target domain.Bucket) error
}
