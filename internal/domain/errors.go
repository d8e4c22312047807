// Package domain defines the core entities of the notes-to-tasks pipeline:
// task candidates proposed by the extractor and task records persisted on
// the board, together with the bucket state machine they move through.
package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrInvalidBucket is returned when a bucket name is not one of the
	// known board buckets.
	ErrInvalidBucket = errors.New("invalid bucket")

	// ErrEmptyCandidateTitle is returned when an extracted candidate has
	// no title.
	ErrEmptyCandidateTitle = errors.New("candidate title cannot be empty")

	// ErrEmptyCandidateDescription is returned when an extracted candidate
	// has no instruction text.
	ErrEmptyCandidateDescription = errors.New("candidate description cannot be empty")

	// ErrEmptyTaskID is returned when a task record carries no board ID.
	ErrEmptyTaskID = errors.New("task ID cannot be empty")
)
