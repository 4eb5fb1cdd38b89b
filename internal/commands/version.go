package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Build info (set via ldflags).
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("ocusage %s (commit %s, built %s)\n", Version, Commit, BuildDate)
		},
	}
}
