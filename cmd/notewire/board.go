package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/notewire/notewire/internal/platform/boardserver"
)

func newBoardCmd() *cobra.Command {
	board := &cobra.Command{
		Use:   "board",
		Short: "Local development board",
	}
	board.AddCommand(newBoardServeCmd())
	return board
}

func newBoardServeCmd() *cobra.Command {
	var (
		addr      string
		token     string
		projectID int64
		viewID    int64
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve an in-memory board with inbox, confirmed and done buckets",
		Long: `Serve an in-memory board speaking the same task API the ingest and
execute passes talk to. State lives in memory only; restarting the
server clears the board. Buckets are created with IDs 1 (inbox),
2 (confirmed) and 3 (done).`,
		RunE: func(_ *cobra.Command, _ []string) error {
			log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

			srv := boardserver.New(boardserver.Config{
				ProjectID: projectID,
				ViewID:    viewID,
				BucketIDs: []int64{1, 2, 3},
				Token:     token,
			}, log)

			log.Info("development board listening",
				"addr", addr,
				"project_id", projectID,
				"view_id", viewID)
			if err := http.ListenAndServe(addr, srv.Handler()); err != nil {
				return fmt.Errorf("board server stopped: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":3456", "listen address")
	cmd.Flags().StringVar(&token, "token", "", "require this bearer token on every request")
	cmd.Flags().Int64Var(&projectID, "project-id", 1, "project identifier the board answers for")
	cmd.Flags().Int64Var(&viewID, "view-id", 1, "view identifier that lists tasks by bucket")
	return cmd
}
