package board

import "errors"

// Common board errors used across all client implementations.
var (
	// ErrWrite is returned when a board write (create, update or move)
	// fails, for example on a network or auth error. The affected record
	// is left in its last known-good state.
	ErrWrite = errors.New("board write failed")

	// ErrNotFound is returned when the addressed record no longer exists
	// on the board.
	ErrNotFound = errors.New("board task not found")

	// ErrAlreadyMoved is the non-fatal idempotency signal returned when a
	// record is already in the requested target bucket.
	ErrAlreadyMoved = errors.New("task already in target bucket")

	// ErrUnauthorized is returned when the board rejects the configured
	// credentials. Detected before a pass starts, this is fatal.
	ErrUnauthorized = errors.New("board rejected credentials")
)

// IsWriteError reports whether the error represents a failed board
// mutation of any kind, including writes against vanished records.
func IsWriteError(err error) bool {
	return errors.Is(err, ErrWrite) || errors.Is(err, ErrNotFound)
}

// IsAlreadyMoved reports whether the error is the idempotent-move signal,
// which callers must treat as success.
func IsAlreadyMoved(err error) bool {
	return errors.Is(err, ErrAlreadyMoved)
}
