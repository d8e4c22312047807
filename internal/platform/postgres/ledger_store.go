package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// LedgerStore implements the ledger.Ledger interface on PostgreSQL.
type LedgerStore struct {
	db *sql.DB
}

// NewLedgerStore creates a LedgerStore over an open connection.
func NewLedgerStore(db *sql.DB) *LedgerStore {
	return &LedgerStore{db: db}
}

// Seen reports whether a unit with this content hash was already
// ingested.
func (s *LedgerStore) Seen(ctx context.Context, hash string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM ingest_ledger WHERE content_hash = $1)`

	var seen bool
	if err := s.db.QueryRowContext(ctx, query, hash).Scan(&seen); err != nil {
		return false, fmt.Errorf("failed to query ingest ledger: %w", err)
	}
	return seen, nil
}

// Record marks a unit as ingested. Conflicting inserts are ignored, so
// concurrent workers recording the same hash are harmless.
func (s *LedgerStore) Record(ctx context.Context, hash, unitID string, modTime time.Time) error {
	query := `
		INSERT INTO ingest_ledger (content_hash, unit_id, unit_modified_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (content_hash) DO NOTHING
	`

	var modified sql.NullTime
	if !modTime.IsZero() {
		modified = sql.NullTime{Time: modTime, Valid: true}
	}
	if _, err := s.db.ExecContext(ctx, query, hash, unitID, modified); err != nil {
		return fmt.Errorf("failed to record ingested unit: %w", err)
	}
	return nil
}
