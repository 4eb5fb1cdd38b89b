package commands

import (
	"github.com/spf13/cobra"
)

func newTodayCommand(opts *reportOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "today",
		Short: "Show usage since midnight",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(cmd.Context(), opts, "today")
		},
	}
}

func newYesterdayCommand(opts *reportOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "yesterday",
		Short: "Show usage since yesterday's midnight",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(cmd.Context(), opts, "yesterday")
		},
	}
}
