// Command notewire drives the notes-to-tasks lifecycle: the ingest pass
// extracts task candidates from a notes directory into the board inbox,
// and the execute pass runs human-confirmed tasks and moves them to
// done. A local development board server is included for working
// without a real board instance.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "notewire",
		Short:         "Turn markdown notes into executed kanban tasks",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newIngestCmd())
	root.AddCommand(newExecuteCmd())
	root.AddCommand(newBoardCmd())
	return root
}
