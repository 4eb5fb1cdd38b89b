package output

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/sdpower/ocusage-go/internal/types"
)

// Formatter handles machine-readable output (JSON, CSV).
type Formatter struct {
	options FormatterOptions
}

type FormatterOptions struct {
	Format string // "json" or "csv"
}

func NewFormatter(opts FormatterOptions) *Formatter {
	return &Formatter{options: opts}
}

// FormatReport serializes the report in the configured format.
func (f *Formatter) FormatReport(period string, total types.UsageRow, rows []types.UsageRow) (string, error) {
	switch f.options.Format {
	case "csv":
		return f.formatCSV(rows), nil
	default:
		return f.formatJSON(period, total, rows)
	}
}

func (f *Formatter) formatJSON(period string, total types.UsageRow, rows []types.UsageRow) (string, error) {
	report := BuildReport(period, total, rows)
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data) + "\n", nil
}

// BuildReport converts aggregated rows into the JSON document shape.
func BuildReport(period string, total types.UsageRow, rows []types.UsageRow) types.Report {
	report := types.Report{
		Period: period,
		Total:  toReportRow(total),
		Rows:   make([]types.ReportRow, 0, len(rows)),
	}
	for _, r := range rows {
		report.Rows = append(report.Rows, toReportRow(r))
	}
	return report
}

func toReportRow(r types.UsageRow) types.ReportRow {
	return types.ReportRow{
		Label:  r.Label,
		Calls:  r.Calls,
		Tokens: r.Tokens,
		Cost:   roundCost(r.Cost),
		Model:  r.Detail,
	}
}

// roundCost rounds to four decimal places for serialization.
func roundCost(c float64) float64 {
	return math.Round(c*10000) / 10000
}

func (f *Formatter) formatCSV(rows []types.UsageRow) string {
	var output strings.Builder
	output.WriteString("label,model,calls,input_tokens,output_tokens,reasoning_tokens,cache_read,cache_write,total_tokens,cost\n")

	for _, r := range rows {
		fields := []string{
			csvEscape(r.Label),
			csvEscape(r.Detail),
			strconv.Itoa(r.Calls),
			strconv.Itoa(r.Tokens.Input),
			strconv.Itoa(r.Tokens.Output),
			strconv.Itoa(r.Tokens.Reasoning),
			strconv.Itoa(r.Tokens.CacheRead),
			strconv.Itoa(r.Tokens.CacheWrite),
			strconv.Itoa(r.Tokens.Total),
			strconv.FormatFloat(r.Cost, 'f', 6, 64),
		}
		output.WriteString(strings.Join(fields, ","))
		output.WriteString("\n")
	}

	return output.String()
}

func csvEscape(cell string) string {
	if strings.ContainsAny(cell, "\",\n") {
		return "\"" + strings.ReplaceAll(cell, "\"", "\"\"") + "\""
	}
	return cell
}
