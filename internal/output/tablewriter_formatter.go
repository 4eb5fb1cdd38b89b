package output

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/sdpower/ocusage-go/internal/calculator"
	"github.com/sdpower/ocusage-go/internal/types"
)

// TableWriterFormatter renders usage tables with tablewriter.
type TableWriterFormatter struct {
	noColor bool
	width   int
}

func NewTableWriterFormatter(noColor bool) *TableWriterFormatter {
	return &TableWriterFormatter{
		noColor: noColor,
		width:   120,
	}
}

// SetWidth overrides the assumed terminal width used to size the
// daily trend column.
func (f *TableWriterFormatter) SetWidth(w int) {
	if w > 0 {
		f.width = w
	}
}

// formatCalls formats a call count with thousand separators.
func formatCalls(n int) string {
	if n < 0 {
		return "-" + formatCalls(-n)
	}
	if n < 1000 {
		return strconv.Itoa(n)
	}
	return formatCalls(n/1000) + "," + fmt.Sprintf("%03d", n%1000)
}

// FormatSummary renders the one-line totals panel shown above every
// report. prev enables delta arrows when comparing periods.
func (f *TableWriterFormatter) FormatSummary(total types.UsageRow, prev *types.UsageRow, period string) string {
	var line strings.Builder

	line.WriteString("Calls: ")
	line.WriteString(formatCalls(total.Calls))
	if prev != nil {
		line.WriteString(" ")
		line.WriteString(FormatDelta(calculator.Delta(float64(total.Calls), float64(prev.Calls)), f.noColor))
	}
	line.WriteString("  │  Tokens: ")
	line.WriteString(FormatTokens(total.Tokens.Total))
	if prev != nil {
		line.WriteString(" ")
		line.WriteString(FormatDelta(calculator.Delta(float64(total.Tokens.Total), float64(prev.Tokens.Total)), f.noColor))
	}
	line.WriteString("  │  Cost: ")
	line.WriteString(FormatCost(total.Cost))
	if prev != nil {
		line.WriteString(" ")
		line.WriteString(FormatDelta(calculator.Delta(total.Cost, prev.Cost), f.noColor))
	}

	panelStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(0, 2)
	if !f.noColor {
		panelStyle = panelStyle.BorderForeground(lipgloss.Color("240"))
	}

	title := "OpenCode Usage — " + period
	if !f.noColor {
		title = lipgloss.NewStyle().Bold(true).Render(title)
	}
	return title + "\n" + panelStyle.Render(line.String()) + "\n"
}

// FormatDailyReport renders the per-day table with a trend column.
func (f *TableWriterFormatter) FormatDailyReport(rows []types.UsageRow, period string) string {
	if len(rows) == 0 {
		return f.formatEmptyReport(period)
	}

	trend := calculator.TrendValues(rows)
	trendMax := calculator.MaxValue(trend)
	barWidth := f.trendBarWidth()

	var buf bytes.Buffer
	table := f.newTable(&buf)

	table.Header([]string{
		"Date\n",
		"Calls\n",
		"Input\n",
		"Output\n",
		"Cache\nRead",
		"Cache\nWrite",
		"Total\nTokens",
		"Cost\n(USD)",
		"Trend\n",
	})

	var totals types.UsageRow
	for i, r := range rows {
		accumulate(&totals, r)
		table.Append([]string{
			r.Label,
			formatCalls(r.Calls),
			FormatTokens(r.Tokens.Input),
			FormatTokens(r.Tokens.Output),
			FormatTokens(r.Tokens.CacheRead),
			FormatTokens(r.Tokens.CacheWrite),
			FormatTokens(r.Tokens.Total),
			FormatCost(r.Cost),
			calculator.SparkBar(trend[i], trendMax, barWidth),
		})
	}

	table.Footer([]string{
		"Total",
		formatCalls(totals.Calls),
		FormatTokens(totals.Tokens.Input),
		FormatTokens(totals.Tokens.Output),
		FormatTokens(totals.Tokens.CacheRead),
		FormatTokens(totals.Tokens.CacheWrite),
		FormatTokens(totals.Tokens.Total),
		FormatCost(totals.Cost),
		"",
	})

	table.Render()

	return f.titleLine("Daily Usage ("+period+")") + f.colorize(buf.String())
}

// FormatGroupedReport renders a breakdown table for a non-day grouping
// dimension. deltas, when non-nil, adds a Δ column (from --compare).
func (f *TableWriterFormatter) FormatGroupedReport(rows []types.UsageRow, dim types.Dimension, period string, deltas []*float64) string {
	if len(rows) == 0 {
		return f.formatEmptyReport(period)
	}

	labelHeader := dimensionHeader(dim)

	// The agent view carries an extra Model column; agent and session
	// views drop the token breakdown to keep the table narrow.
	showDetail := dim == types.GroupByAgent
	showBreakdown := dim != types.GroupByAgent && dim != types.GroupBySession

	var buf bytes.Buffer
	table := f.newTable(&buf)

	headers := []string{labelHeader + "\n"}
	if showDetail {
		headers = append(headers, "Model\n")
	}
	headers = append(headers, "Calls\n")
	if showBreakdown {
		headers = append(headers, "Input\n", "Output\n", "Cache\nRead", "Cache\nWrite")
	}
	headers = append(headers, "Total\nTokens", "Cost\n(USD)")
	if deltas != nil {
		headers = append(headers, "Δ\n")
	}
	table.Header(headers)

	var totals types.UsageRow
	prevLabel := ""
	for i, r := range rows {
		accumulate(&totals, r)

		// Repeated agent labels collapse so each group reads as one block.
		displayLabel := r.Label
		if showDetail && r.Label == prevLabel {
			displayLabel = ""
		}
		prevLabel = r.Label

		cols := []string{displayLabel}
		if showDetail {
			cols = append(cols, ShortenModelName(r.Detail))
		}
		cols = append(cols, formatCalls(r.Calls))
		if showBreakdown {
			cols = append(cols,
				FormatTokens(r.Tokens.Input),
				FormatTokens(r.Tokens.Output),
				FormatTokens(r.Tokens.CacheRead),
				FormatTokens(r.Tokens.CacheWrite),
			)
		}
		cols = append(cols, FormatTokens(r.Tokens.Total), FormatCost(r.Cost))
		if deltas != nil {
			var d *float64
			if i < len(deltas) {
				d = deltas[i]
			}
			cols = append(cols, FormatDelta(d, f.noColor))
		}
		table.Append(cols)
	}

	footer := []string{"Total"}
	if showDetail {
		footer = append(footer, "")
	}
	footer = append(footer, formatCalls(totals.Calls))
	if showBreakdown {
		footer = append(footer,
			FormatTokens(totals.Tokens.Input),
			FormatTokens(totals.Tokens.Output),
			FormatTokens(totals.Tokens.CacheRead),
			FormatTokens(totals.Tokens.CacheWrite),
		)
	}
	footer = append(footer, FormatTokens(totals.Tokens.Total), FormatCost(totals.Cost))
	if deltas != nil {
		footer = append(footer, "")
	}
	table.Footer(footer)

	table.Render()

	return f.titleLine("Usage by "+labelHeader+" ("+period+")") + f.colorize(buf.String())
}

func (f *TableWriterFormatter) newTable(buf *bytes.Buffer) *tablewriter.Table {
	return tablewriter.NewTable(buf,
		tablewriter.WithRenderer(renderer.NewBlueprint(tw.Rendition{
			Settings: tw.Settings{Separators: tw.Separators{BetweenRows: tw.On}},
		})),
		tablewriter.WithConfig(tablewriter.Config{
			Row: tw.CellConfig{
				Alignment: tw.CellAlignment{Global: tw.AlignRight},
			},
		}),
		tablewriter.WithHeaderAutoFormat(tw.Off),
	)
}

func (f *TableWriterFormatter) titleLine(title string) string {
	if f.noColor {
		return "\n" + title + "\n"
	}
	return "\n" + lipgloss.NewStyle().Bold(true).Render(title) + "\n"
}

func (f *TableWriterFormatter) formatEmptyReport(period string) string {
	return fmt.Sprintf("\nNo usage data found for %s.\n", period)
}

// trendBarWidth fits the spark bar into whatever width the fixed
// columns leave over.
func (f *TableWriterFormatter) trendBarWidth() int {
	// Rough estimate of the fixed daily columns: date (10), calls (7),
	// five token columns (8 each), cost (9), plus borders and padding.
	const fixed = 10 + 7 + 5*8 + 9 + 10*3
	remaining := f.width - fixed
	if remaining < calculator.DefaultBarWidth {
		return calculator.DefaultBarWidth
	}
	if remaining > 24 {
		return 24
	}
	return remaining
}

func dimensionHeader(dim types.Dimension) string {
	switch dim {
	case types.GroupByModel:
		return "Model"
	case types.GroupByAgent:
		return "Agent"
	case types.GroupByProvider:
		return "Provider"
	case types.GroupBySession:
		return "Session"
	}
	return string(dim)
}

func accumulate(totals *types.UsageRow, r types.UsageRow) {
	totals.Calls += r.Calls
	totals.Tokens.Input += r.Tokens.Input
	totals.Tokens.Output += r.Tokens.Output
	totals.Tokens.Reasoning += r.Tokens.Reasoning
	totals.Tokens.CacheRead += r.Tokens.CacheRead
	totals.Tokens.CacheWrite += r.Tokens.CacheWrite
	totals.Tokens.Total += r.Tokens.Total
	totals.Cost += r.Cost
}

// colorize applies ANSI styling to a rendered table: gray borders,
// cyan headers, yellow totals.
func (f *TableWriterFormatter) colorize(tableOutput string) string {
	if f.noColor {
		return tableOutput
	}

	lines := strings.Split(tableOutput, "\n")
	var colored strings.Builder
	inHeader := true

	for i, line := range lines {
		switch {
		case line == "":
			// keep blank lines as-is

		case strings.HasPrefix(line, "┌") || strings.HasPrefix(line, "└"):
			colored.WriteString(ansiGray + line + ansiReset)

		case strings.HasPrefix(line, "├"):
			// First separator closes the header block.
			inHeader = false
			colored.WriteString(ansiGray + line + ansiReset)

		case strings.Contains(line, "│"):
			parts := strings.Split(line, "│")
			for j, part := range parts {
				if j > 0 {
					colored.WriteString(ansiGray + "│" + ansiReset)
				}
				switch {
				case strings.TrimSpace(part) == "":
					colored.WriteString(part)
				case inHeader:
					colored.WriteString(ansiCyan + part + ansiReset)
				case strings.Contains(line, "Total"):
					colored.WriteString(ansiYell + part + ansiReset)
				default:
					colored.WriteString(part)
				}
			}

		default:
			colored.WriteString(line)
		}

		if i < len(lines)-1 {
			colored.WriteString("\n")
		}
	}

	return colored.String()
}
