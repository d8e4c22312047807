// Package ledger tracks which source units have already been ingested so
// repeated ingest runs over an unchanged corpus do not recreate duplicate
// task records. The ledger is optional: without one, ingestion is
// at-least-once and re-runs recreate candidates.
package ledger

import (
	"context"
	"encoding/hex"
	"time"

	"golang.org/x/crypto/blake2b"
)

// Ledger is keyed on the content hash of a source unit, so editing a note
// makes it eligible for ingestion again.
type Ledger interface {
	// Seen reports whether a unit with this content hash was already
	// ingested.
	Seen(ctx context.Context, hash string) (bool, error)

	// Record marks a unit as ingested, keeping the file's modification
	// time for audit. Recording the same hash twice is a no-op.
	Record(ctx context.Context, hash, unitID string, modTime time.Time) error
}

// Hash returns the dedup key for a unit's text: a hex-encoded
// BLAKE2b-256 digest.
func Hash(text string) string {
	sum := blake2b.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}
