package output

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sdpower/ocusage-go/internal/types"
)

func sampleRows() (types.UsageRow, []types.UsageRow) {
	total := types.UsageRow{
		Label: "total",
		Calls: 3,
		Tokens: types.TokenStats{
			Input: 300, Output: 150, CacheRead: 30, CacheWrite: 15, Total: 2300,
		},
		Cost: 0.123456,
	}
	rows := []types.UsageRow{
		{Label: "build", Detail: "deepseek-r1", Calls: 2, Tokens: types.TokenStats{Total: 1500}, Cost: 0.07},
		{Label: "explore", Detail: "gemma-3", Calls: 1, Tokens: types.TokenStats{Total: 800}, Cost: 0},
	}
	return total, rows
}

func TestBuildReport(t *testing.T) {
	total, rows := sampleRows()
	report := BuildReport("Last 7 days", total, rows)

	assert.Equal(t, "Last 7 days", report.Period)
	assert.Equal(t, 0.1235, report.Total.Cost)
	require.Len(t, report.Rows, 2)
	assert.Equal(t, "deepseek-r1", report.Rows[0].Model)
}

func TestFormatReport_JSON(t *testing.T) {
	total, rows := sampleRows()
	f := NewFormatter(FormatterOptions{Format: "json"})

	out, err := f.FormatReport("Today", total, rows)
	require.NoError(t, err)

	var decoded types.Report
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, "Today", decoded.Period)
	assert.Equal(t, 3, decoded.Total.Calls)
	assert.Equal(t, 2300, decoded.Total.Tokens.Total)

	// Detail becomes the model key; rows without detail omit it.
	assert.Contains(t, out, `"model": "deepseek-r1"`)
}

func TestFormatReport_JSONOmitsEmptyModel(t *testing.T) {
	f := NewFormatter(FormatterOptions{Format: "json"})
	rows := []types.UsageRow{{Label: "deepseek-r1", Calls: 1}}

	out, err := f.FormatReport("Today", types.UsageRow{Label: "total"}, rows)
	require.NoError(t, err)
	assert.NotContains(t, out, `"model"`)
}

func TestFormatReport_CSV(t *testing.T) {
	total, rows := sampleRows()
	f := NewFormatter(FormatterOptions{Format: "csv"})

	out, err := f.FormatReport("Today", total, rows)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "label,model,calls,input_tokens,output_tokens,reasoning_tokens,cache_read,cache_write,total_tokens,cost", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "build,deepseek-r1,2,"))
}

func TestFormatReport_CSVEscaping(t *testing.T) {
	f := NewFormatter(FormatterOptions{Format: "csv"})
	rows := []types.UsageRow{{Label: `fix "the" bug, quickly`, Calls: 1}}

	out, err := f.FormatReport("Today", types.UsageRow{}, rows)
	require.NoError(t, err)
	assert.Contains(t, out, `"fix ""the"" bug, quickly"`)
}
