package output

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sdpower/ocusage-go/internal/types"
)

func dailyRows() []types.UsageRow {
	return []types.UsageRow{
		{Label: "2026-08-30", Calls: 3, Tokens: types.TokenStats{Input: 300, Output: 150, CacheRead: 30, CacheWrite: 15, Total: 2300}, Cost: 0.07},
		{Label: "2026-08-29", Calls: 2, Tokens: types.TokenStats{Input: 200, Output: 100, CacheRead: 20, CacheWrite: 10, Total: 500}, Cost: 0.01},
	}
}

func TestFormatDailyReport(t *testing.T) {
	f := NewTableWriterFormatter(true)
	out := f.FormatDailyReport(dailyRows(), "Last 7 days")

	assert.Contains(t, out, "Daily Usage (Last 7 days)")
	assert.Contains(t, out, "2026-08-30")
	assert.Contains(t, out, "2026-08-29")
	assert.Contains(t, out, "Calls")
	assert.Contains(t, out, "Total")
	// Footer sums both days.
	assert.Contains(t, out, "2.8K")
	// Trend bars present, heavier day fuller than lighter day.
	assert.Contains(t, out, "█")
	assert.Contains(t, out, "░")
	// noColor output carries no escape codes.
	assert.NotContains(t, out, "\033[")
}

func TestFormatDailyReport_Empty(t *testing.T) {
	f := NewTableWriterFormatter(true)
	out := f.FormatDailyReport(nil, "Today")
	assert.Contains(t, out, "No usage data found")
}

func TestFormatGroupedReport_Model(t *testing.T) {
	f := NewTableWriterFormatter(true)
	rows := []types.UsageRow{
		{Label: "deepseek-r1", Calls: 4, Tokens: types.TokenStats{Input: 400, Output: 200, Total: 6700}, Cost: 0.32},
		{Label: "gemma-3", Calls: 1, Tokens: types.TokenStats{Input: 100, Output: 50, Total: 800}, Cost: 0},
	}

	out := f.FormatGroupedReport(rows, types.GroupByModel, "Last 7 days", nil)

	assert.Contains(t, out, "Usage by Model (Last 7 days)")
	assert.Contains(t, out, "deepseek-r1")
	assert.Contains(t, out, "6.7K")
	assert.Contains(t, out, "Input")
	assert.NotContains(t, out, "Δ")
}

func TestFormatGroupedReport_AgentDedupesLabels(t *testing.T) {
	f := NewTableWriterFormatter(true)
	rows := []types.UsageRow{
		{Label: "explore", Detail: "gemma-3", Calls: 1, Tokens: types.TokenStats{Total: 800}},
		{Label: "explore", Detail: "qwen-3-coder", Calls: 1, Tokens: types.TokenStats{Total: 300}},
	}

	out := f.FormatGroupedReport(rows, types.GroupByAgent, "Today", nil)

	// Agent view shows the model column and drops the token breakdown.
	assert.Contains(t, out, "Model")
	assert.NotContains(t, out, "Input")
	// The repeated agent label appears once.
	assert.Equal(t, 1, strings.Count(out, "explore"))
}

func TestFormatGroupedReport_Deltas(t *testing.T) {
	f := NewTableWriterFormatter(true)
	up := 50.0
	rows := []types.UsageRow{
		{Label: "deepseek-r1", Calls: 2, Tokens: types.TokenStats{Total: 1500}, Cost: 0.05},
	}

	out := f.FormatGroupedReport(rows, types.GroupByModel, "Today", []*float64{&up})

	assert.Contains(t, out, "Δ")
	assert.Contains(t, out, "↑50%")
}

func TestFormatSummary(t *testing.T) {
	f := NewTableWriterFormatter(true)
	total := types.UsageRow{Label: "total", Calls: 1234, Tokens: types.TokenStats{Total: 1_500_000}, Cost: 12.34}

	out := f.FormatSummary(total, nil, "Last 7 days")

	assert.Contains(t, out, "OpenCode Usage — Last 7 days")
	assert.Contains(t, out, "Calls: 1,234")
	assert.Contains(t, out, "Tokens: 1.5M")
	assert.Contains(t, out, "Cost: $12.34")
}

func TestFormatSummary_WithComparison(t *testing.T) {
	f := NewTableWriterFormatter(true)
	total := types.UsageRow{Calls: 200, Tokens: types.TokenStats{Total: 2000}, Cost: 2}
	prev := types.UsageRow{Calls: 100, Tokens: types.TokenStats{Total: 1000}, Cost: 4}

	out := f.FormatSummary(total, &prev, "Today")

	assert.Contains(t, out, "↑100%")
	assert.Contains(t, out, "↓50%")
}

func TestColorize(t *testing.T) {
	f := NewTableWriterFormatter(false)
	out := f.FormatDailyReport(dailyRows(), "Today")

	// Borders gray, headers cyan.
	assert.Contains(t, out, ansiGray+"│"+ansiReset)
	assert.Contains(t, out, ansiCyan)
}
