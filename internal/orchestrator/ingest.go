package orchestrator

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/notewire/notewire/internal/domain"
	"github.com/notewire/notewire/internal/ledger"
	"github.com/notewire/notewire/internal/source"
)

// Ingest runs one ingest pass: read every source unit, extract task
// candidates from each, and create an inbox record per candidate.
//
// The pass only fails outright when the source cannot be enumerated.
// Per-unit and per-candidate errors are logged, counted in the
// Summary, and do not stop the remaining work. Re-running the pass
// without a ledger re-creates records (at-least-once); with a ledger,
// units whose content was fully ingested before are skipped.
func (o *Orchestrator) Ingest(ctx context.Context) (Summary, error) {
	runID := uuid.NewString()
	log := o.logger.With("run_id", runID)

	units, err := o.reader.Units(ctx)
	if err != nil {
		return Summary{Pass: "ingest", RunID: runID}, fmt.Errorf("failed to read source units: %w", err)
	}

	log.Info("starting ingest pass",
		"units", len(units),
		"workers", o.workers,
		"dry_run", o.dryRun)

	results := newCollector("ingest")
	work := make(chan source.Unit)

	var wg sync.WaitGroup
	for i := 0; i < o.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for unit := range work {
				results.add(o.ingestUnit(ctx, log, unit))
			}
		}()
	}

	for _, unit := range units {
		work <- unit
	}
	close(work)
	wg.Wait()

	summary := results.summary()
	summary.RunID = runID
	log.Info("ingest pass complete",
		"units", summary.Units,
		"created", summary.Created,
		"skipped", summary.Skipped,
		"dropped", summary.Dropped,
		"failed", summary.Failed)
	return summary, nil
}

// ingestUnit processes a single unit and returns its contribution to
// the pass summary.
func (o *Orchestrator) ingestUnit(ctx context.Context, runLog *slog.Logger, unit source.Unit) Summary {
	log := runLog.With("unit", unit.ID)
	delta := Summary{Units: 1}

	hash := ledger.Hash(unit.Text)
	if o.ledger != nil {
		seen, err := o.ledger.Seen(ctx, hash)
		if err != nil {
			log.Error("failed to check ingest ledger", "error", err)
			delta.Failed++
			return delta
		}
		if seen {
			log.Debug("unit already ingested, skipping")
			delta.Skipped++
			return delta
		}
	}

	candidates, dropped, err := o.extractor.Extract(ctx, unit.Text, unit.Meta)
	if err != nil {
		log.Error("extraction failed", "error", err)
		delta.Failed++
		return delta
	}
	delta.Dropped += dropped

	if len(candidates) == 0 {
		log.Info("no task candidates found")
		o.recordIngested(ctx, log, hash, unit)
		return delta
	}

	created := 0
	for _, candidate := range candidates {
		if o.dryRun {
			log.Info("dry run: would create task", "title", candidate.Title)
			created++
			continue
		}

		id, err := o.board.CreateTask(ctx, domain.BucketInbox, candidate.Title, candidate.BoardDescription())
		if err != nil {
			log.Error("failed to create task", "title", candidate.Title, "error", err)
			delta.Failed++
			continue
		}
		log.Info("created task", "task_id", id, "title", candidate.Title)
		created++
	}
	delta.Created += created

	// Only a fully landed unit is marked ingested: a partial failure
	// leaves the unit eligible for the next run.
	if created == len(candidates) && !o.dryRun {
		o.recordIngested(ctx, log, hash, unit)
	}
	return delta
}

// recordIngested writes the unit's hash to the ledger when one is
// configured. A failed write is logged but does not fail the unit: the
// worst case is re-ingesting it next run.
func (o *Orchestrator) recordIngested(ctx context.Context, log *slog.Logger, hash string, unit source.Unit) {
	if o.ledger == nil || o.dryRun {
		return
	}
	if err := o.ledger.Record(ctx, hash, unit.ID, unit.ModTime); err != nil {
		log.Warn("failed to record unit in ingest ledger", "error", err)
	}
}
