// Package orchestrator coordinates the two passes of the task lifecycle:
// ingest (notes -> extracted candidates -> Inbox records) and execute
// (Confirmed records -> external execution -> annotated Done records).
// Both passes are discrete batch jobs, idempotent at the pass level and
// safe to re-run; the human confirmation step between them happens on
// the board, outside this process.
package orchestrator

import (
	"context"
	"errors"
	"log/slog"

	"github.com/notewire/notewire/internal/board"
	"github.com/notewire/notewire/internal/domain"
	"github.com/notewire/notewire/internal/execution"
	"github.com/notewire/notewire/internal/ledger"
	"github.com/notewire/notewire/internal/source"
)

// Constructor errors.
var (
	ErrNilReader    = errors.New("source reader cannot be nil")
	ErrNilExtractor = errors.New("extractor cannot be nil")
	ErrNilBoard     = errors.New("board client cannot be nil")
	ErrNilExecutor  = errors.New("executor cannot be nil")
	ErrNilLogger    = errors.New("logger cannot be nil")
)

// defaultWorkers bounds concurrency against the rate-limited model and
// execution backends when no worker count is configured.
const defaultWorkers = 2

// CandidateExtractor is the slice of the extraction package the
// orchestrator consumes. It returns the candidates found in one unit
// plus the count of malformed items that were dropped.
type CandidateExtractor interface {
	Extract(ctx context.Context, content string, meta map[string]any) ([]domain.TaskCandidate, int, error)
}

// Deps carries every collaborator for an Orchestrator. Ledger is
// optional; everything else is required.
type Deps struct {
	Reader    source.Reader
	Extractor CandidateExtractor
	Board     board.Client
	Executor  execution.Executor
	Ledger    ledger.Ledger
	Logger    *slog.Logger

	// Workers is the fixed size of the per-pass worker pool.
	Workers int

	// DryRun makes the ingest pass extract and log without writing to
	// the board.
	DryRun bool
}

// Orchestrator drives both passes.
type Orchestrator struct {
	reader    source.Reader
	extractor CandidateExtractor
	board     board.Client
	executor  execution.Executor
	ledger    ledger.Ledger
	logger    *slog.Logger
	workers   int
	dryRun    bool
}

// New validates the dependencies and creates an Orchestrator.
func New(deps Deps) (*Orchestrator, error) {
	if deps.Reader == nil {
		return nil, ErrNilReader
	}
	if deps.Extractor == nil {
		return nil, ErrNilExtractor
	}
	if deps.Board == nil {
		return nil, ErrNilBoard
	}
	if deps.Executor == nil {
		return nil, ErrNilExecutor
	}
	if deps.Logger == nil {
		return nil, ErrNilLogger
	}

	workers := deps.Workers
	if workers < 1 {
		workers = defaultWorkers
	}

	return &Orchestrator{
		reader:    deps.Reader,
		extractor: deps.Extractor,
		board:     deps.Board,
		executor:  deps.Executor,
		ledger:    deps.Ledger,
		logger:    deps.Logger,
		workers:   workers,
		dryRun:    deps.DryRun,
	}, nil
}
