package commands

import (
	"fmt"
	"time"

	"github.com/sdpower/ocusage-go/internal/config"
	"github.com/sdpower/ocusage-go/internal/monitor"
	"github.com/sdpower/ocusage-go/internal/store"
	"github.com/spf13/cobra"
)

func newWatchCommand(opts *reportOptions) *cobra.Command {
	var interval int

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Watch usage totals live",
		Long:  `Watch OpenCode usage totals and top models live, refreshing on an interval.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(opts.cfgFile)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			dbPath := opts.dbPath
			if dbPath == "" {
				dbPath = cfg.Database.Path
			}
			if dbPath == "" {
				dbPath = store.DefaultPath()
			}

			days := opts.days
			if days <= 0 {
				days = cfg.Report.DefaultDays
			}

			mon := monitor.New(monitor.Options{
				DBPath:   dbPath,
				Interval: time.Duration(interval) * time.Second,
				NoColor:  opts.noColor || cfg.Report.NoColor,
				Days:     days,
			})

			if err := mon.Start(cmd.Context()); err != nil {
				return fmt.Errorf("watch failed: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&interval, "interval", 5, "Refresh interval in seconds")

	return cmd
}
