package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/notewire/notewire/internal/config"
	"github.com/notewire/notewire/internal/domain"
	"github.com/notewire/notewire/internal/extraction"
	"github.com/notewire/notewire/internal/ledger"
	"github.com/notewire/notewire/internal/orchestrator"
	"github.com/notewire/notewire/internal/platform/gemini"
	"github.com/notewire/notewire/internal/platform/jigsaw"
	"github.com/notewire/notewire/internal/platform/logger"
	"github.com/notewire/notewire/internal/platform/ollama"
	"github.com/notewire/notewire/internal/platform/postgres"
	"github.com/notewire/notewire/internal/platform/vikunja"
	"github.com/notewire/notewire/internal/source"
)

func newIngestCmd() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "ingest",
		Short: "Extract task candidates from notes into the board inbox",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPass(cmd.Context(), dryRun, func(ctx context.Context, o *orchestrator.Orchestrator) (orchestrator.Summary, error) {
				return o.Ingest(ctx)
			})
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "extract and log candidates without writing to the board")
	return cmd
}

func newExecuteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "execute",
		Short: "Run confirmed tasks and move them to done",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPass(cmd.Context(), false, func(ctx context.Context, o *orchestrator.Orchestrator) (orchestrator.Summary, error) {
				return o.Execute(ctx)
			})
		},
	}
}

// runPass wires the configured collaborators into an orchestrator and
// runs one pass. Item-level failures are reported in the summary and do
// not affect the exit code; only setup and pass-fatal errors do.
func runPass(ctx context.Context, dryRun bool, pass func(context.Context, *orchestrator.Orchestrator) (orchestrator.Summary, error)) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log := logger.Setup(cfg.Logging)

	o, cleanup, err := buildOrchestrator(ctx, cfg, log, dryRun)
	if err != nil {
		return err
	}
	defer cleanup()

	summary, err := pass(ctx, o)
	if err != nil {
		return err
	}

	log.Info("pass finished",
		"pass", summary.Pass,
		"units", summary.Units,
		"tasks", summary.Tasks,
		"created", summary.Created,
		"completed", summary.Completed,
		"skipped", summary.Skipped,
		"dropped", summary.Dropped,
		"failed", summary.Failed)
	return nil
}

func buildOrchestrator(ctx context.Context, cfg *config.Config, log *slog.Logger, dryRun bool) (*orchestrator.Orchestrator, func(), error) {
	cleanup := func() {}

	model, err := buildModelClient(ctx, cfg, log)
	if err != nil {
		return nil, cleanup, fmt.Errorf("failed to initialize model backend: %w", err)
	}

	extractor, err := extraction.NewExtractor(model, cfg.Model.ChunkSize, log)
	if err != nil {
		return nil, cleanup, err
	}

	boardClient, err := vikunja.New(vikunja.Config{
		BaseURL:   cfg.Board.URL,
		Token:     cfg.Board.Token,
		ProjectID: cfg.Board.ProjectID,
		ViewID:    cfg.Board.ViewID,
		BucketIDs: map[domain.Bucket]int64{
			domain.BucketInbox:     cfg.Board.InboxBucketID,
			domain.BucketConfirmed: cfg.Board.ConfirmedBucketID,
			domain.BucketDone:      cfg.Board.DoneBucketID,
		},
	}, log)
	if err != nil {
		return nil, cleanup, fmt.Errorf("failed to initialize board client: %w", err)
	}

	executor, err := jigsaw.New(jigsaw.Config{
		BaseURL: cfg.Execution.URL,
		APIKey:  cfg.Execution.APIKey,
		Timeout: time.Duration(cfg.Execution.TimeoutSeconds) * time.Second,
	}, log)
	if err != nil {
		return nil, cleanup, fmt.Errorf("failed to initialize execution client: %w", err)
	}

	var (
		led ledger.Ledger
		db  *sql.DB
	)
	if cfg.Ledger.DatabaseURL != "" {
		db, err = postgres.Open(ctx, cfg.Ledger.DatabaseURL, log)
		if err != nil {
			return nil, cleanup, fmt.Errorf("failed to connect to ledger database: %w", err)
		}
		cleanup = func() { _ = db.Close() }
		if err := postgres.Migrate(ctx, db, log); err != nil {
			return nil, cleanup, fmt.Errorf("failed to migrate ledger database: %w", err)
		}
		led = postgres.NewLedgerStore(db)
	}

	o, err := orchestrator.New(orchestrator.Deps{
		Reader:    source.NewDirReader(cfg.Source.Dir),
		Extractor: extractor,
		Board:     boardClient,
		Executor:  executor,
		Ledger:    led,
		Logger:    log,
		Workers:   cfg.Workers,
		DryRun:    dryRun,
	})
	if err != nil {
		return nil, cleanup, err
	}
	return o, cleanup, nil
}

// buildModelClient picks the extraction backend named in the
// configuration.
func buildModelClient(ctx context.Context, cfg *config.Config, log *slog.Logger) (extraction.ModelClient, error) {
	switch cfg.Model.Backend {
	case "gemini":
		return gemini.New(ctx, cfg.Model, log)
	case "ollama":
		return ollama.New(cfg.Model, log)
	default:
		return nil, fmt.Errorf("unknown model backend %q", cfg.Model.Backend)
	}
}
