package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/sdpower/ocusage-go/internal/calculator"
	"github.com/sdpower/ocusage-go/internal/config"
	"github.com/sdpower/ocusage-go/internal/output"
	"github.com/sdpower/ocusage-go/internal/store"
	"github.com/sdpower/ocusage-go/internal/types"
	"github.com/spf13/cobra"
)

// reportOptions carries the flag values shared by the root command and
// the today/yesterday shortcuts.
type reportOptions struct {
	days      int
	sinceSpec string
	by        string
	limit     int
	jsonOut   bool
	csvOut    bool
	dbPath    string
	compare   bool
	noColor   bool
	cfgFile   string
}

// NewRootCommand builds the ocusage command tree. The root command
// itself runs the report; subcommands cover the quick shortcuts and
// the live watch view.
func NewRootCommand() *cobra.Command {
	opts := &reportOptions{}

	cmd := &cobra.Command{
		Use:   "ocusage",
		Short: "OpenCode token usage statistics",
		Long: `ocusage reads the local OpenCode SQLite database and reports aggregate
token usage: calls, token counts per category and cost, grouped by day,
model, agent, provider or session.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(cmd.Context(), opts, "")
		},
	}

	cmd.PersistentFlags().IntVar(&opts.days, "days", 0, "Show last N days (default 7)")
	cmd.PersistentFlags().StringVar(&opts.sinceSpec, "since", "", "Time filter: '7d', '2w', '30d', '3h', or ISO date")
	cmd.PersistentFlags().StringVar(&opts.by, "by", "day", "Group results by dimension (day, model, agent, provider, session)")
	cmd.PersistentFlags().IntVar(&opts.limit, "limit", 0, "Max rows to display")
	cmd.PersistentFlags().BoolVar(&opts.jsonOut, "json", false, "Output as JSON")
	cmd.PersistentFlags().BoolVar(&opts.csvOut, "csv", false, "Output as CSV")
	cmd.PersistentFlags().StringVar(&opts.dbPath, "db", "", "Path to OpenCode database (default: auto-detect)")
	cmd.PersistentFlags().BoolVar(&opts.compare, "compare", false, "Compare against the previous period")
	cmd.PersistentFlags().BoolVar(&opts.noColor, "no-color", false, "Disable colored output")
	cmd.PersistentFlags().StringVar(&opts.cfgFile, "config", "", "Config file (default: ~/.config/ocusage/config.toml)")

	cmd.AddCommand(
		newTodayCommand(opts),
		newYesterdayCommand(opts),
		newWatchCommand(opts),
		newVersionCommand(),
	)

	return cmd
}

func runReport(ctx context.Context, opts *reportOptions, shortcut string) error {
	cfg, err := config.Load(opts.cfgFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	dim := types.Dimension(opts.by)
	if !dim.Valid() {
		return fmt.Errorf("%w: %q (choose one of day, model, agent, provider, session)", types.ErrInvalidDimension, opts.by)
	}

	since, period, err := resolveWindow(shortcut, opts.sinceSpec, opts.days, cfg.Report.DefaultDays)
	if err != nil {
		return err
	}

	limit := opts.limit
	if limit == 0 {
		limit = cfg.Report.Limit
	}

	st, err := openStore(opts, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	queryOpts := store.QueryOptions{Since: since, Limit: limit}

	rows, err := st.Rows(ctx, dim, queryOpts)
	if err != nil {
		return err
	}
	total, err := st.Totals(ctx, store.QueryOptions{Since: since})
	if err != nil {
		return err
	}

	// Previous equal-length window for --compare. Row deltas are only
	// fetched for groupings that render them; the daily table shows a
	// trend column instead.
	var (
		deltas    []*float64
		prevTotal *types.UsageRow
	)
	if opts.compare {
		prevSince, prevUntil := calculator.PreviousWindow(since, time.Time{})
		prevOpts := store.QueryOptions{Since: prevSince, Until: prevUntil}
		if rowDeltasShown(dim) {
			prevRows, err := st.Rows(ctx, dim, prevOpts)
			if err != nil {
				return err
			}
			deltas = calculator.ComputeDeltas(rows, prevRows)
		}
		pt, err := st.Totals(ctx, prevOpts)
		if err != nil {
			return err
		}
		prevTotal = &pt
	}

	if opts.jsonOut || opts.csvOut {
		format := "json"
		if opts.csvOut {
			format = "csv"
		}
		formatter := output.NewFormatter(output.FormatterOptions{Format: format})
		out, err := formatter.FormatReport(period, total, rows)
		if err != nil {
			return fmt.Errorf("format report: %w", err)
		}
		fmt.Print(out)
		return nil
	}

	noColor := opts.noColor || cfg.Report.NoColor || !stdoutIsTerminal()
	tableFormatter := output.NewTableWriterFormatter(noColor)

	fmt.Print(tableFormatter.FormatSummary(total, prevTotal, period))
	fmt.Println()

	if dim == types.GroupByDay {
		fmt.Print(tableFormatter.FormatDailyReport(rows, period))
	} else {
		fmt.Print(tableFormatter.FormatGroupedReport(rows, dim, period, deltas))
	}
	return nil
}

// rowDeltasShown reports whether the table for dim carries a per-row
// delta column under --compare.
func rowDeltasShown(dim types.Dimension) bool {
	return dim != types.GroupByDay
}

// openStore resolves the database path (flag, config, then platform
// default) and opens it, turning a missing file into a setup hint.
func openStore(opts *reportOptions, cfg *config.Config) (*store.Store, error) {
	path := opts.dbPath
	if path == "" {
		path = cfg.Database.Path
	}
	if path == "" {
		path = store.DefaultPath()
	}

	st, err := store.Open(path)
	if err != nil {
		if errors.Is(err, types.ErrDatabaseNotFound) {
			return nil, fmt.Errorf("OpenCode database not found at %s\nSet the OPENCODE_DB environment variable or pass --db to override", path)
		}
		return nil, err
	}
	return st, nil
}

func stdoutIsTerminal() bool {
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}
