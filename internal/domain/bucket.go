package domain

import "fmt"

// Bucket identifies a named column on the task board. The board itself
// addresses buckets by environment-specific numeric IDs; the rest of the
// application only ever deals in these symbolic values and resolves them
// through configuration.
type Bucket string

// The three buckets a task record can live in. Records only move forward:
// Inbox -> Confirmed is a human action on the board, Confirmed -> Done is
// performed by the execute pass after a terminal outcome is recorded.
const (
	BucketInbox     Bucket = "inbox"
	BucketConfirmed Bucket = "confirmed"
	BucketDone      Bucket = "done"
)

// ParseBucket converts a string into a Bucket, returning an error for
// anything that is not one of the three known buckets.
func ParseBucket(s string) (Bucket, error) {
	switch Bucket(s) {
	case BucketInbox, BucketConfirmed, BucketDone:
		return Bucket(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidBucket, s)
	}
}

// Valid reports whether the bucket is one of the three known buckets.
func (b Bucket) Valid() bool {
	switch b {
	case BucketInbox, BucketConfirmed, BucketDone:
		return true
	default:
		return false
	}
}

func (b Bucket) String() string {
	return string(b)
}
