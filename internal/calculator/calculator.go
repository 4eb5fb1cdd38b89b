// Package calculator derives presentation metrics from aggregated rows:
// percentage deltas against a previous window and sparkline bars for
// trend columns.
package calculator

import (
	"math"
	"strings"
	"time"

	"github.com/sdpower/ocusage-go/internal/types"
)

const (
	barFull  = "█"
	barEmpty = "░"

	// DefaultBarWidth is the fallback trend column width when the
	// terminal leaves no room to size it dynamically.
	DefaultBarWidth = 8
)

// ComputeDeltas returns the percent change of total tokens for each
// current row against the previous-window row with the same label (and
// detail, for agent rows). The result has one entry per current row;
// nil means no comparable previous row, including a zero previous
// total, where a percentage is undefined.
func ComputeDeltas(current, previous []types.UsageRow) []*float64 {
	prev := make(map[[2]string]int, len(previous))
	for _, r := range previous {
		prev[[2]string{r.Label, r.Detail}] = r.Tokens.Total
	}

	deltas := make([]*float64, len(current))
	for i, r := range current {
		before, ok := prev[[2]string{r.Label, r.Detail}]
		if !ok || before == 0 {
			continue
		}
		pct := float64(r.Tokens.Total-before) / float64(before) * 100
		deltas[i] = &pct
	}
	return deltas
}

// Delta returns the percent change from before to after, or nil when
// before is not positive.
func Delta(after, before float64) *float64 {
	if before <= 0 {
		return nil
	}
	pct := (after - before) / before * 100
	return &pct
}

// SparkBar renders a fixed-width horizontal bar proportional to
// value/max. A non-positive value or max yields an all-empty bar; any
// positive value fills at least one cell.
func SparkBar(value, max, width int) string {
	if width < 1 {
		width = 1
	}
	if max <= 0 || value <= 0 {
		return strings.Repeat(barEmpty, width)
	}
	filled := int(math.Round(float64(value) / float64(max) * float64(width)))
	if filled < 1 {
		filled = 1
	}
	if filled > width {
		filled = width
	}
	return strings.Repeat(barFull, filled) + strings.Repeat(barEmpty, width-filled)
}

// TrendValues extracts the total-token series used for the daily
// trend column.
func TrendValues(rows []types.UsageRow) []int {
	values := make([]int, len(rows))
	for i, r := range rows {
		values[i] = r.Tokens.Total
	}
	return values
}

// MaxValue returns the largest value in the series, or 0 when empty.
func MaxValue(values []int) int {
	max := 0
	for _, v := range values {
		if v > max {
			max = v
		}
	}
	return max
}

// PreviousWindow returns the window of equal length immediately
// preceding [since, until). A zero until means "now".
func PreviousWindow(since, until time.Time) (time.Time, time.Time) {
	if until.IsZero() {
		until = time.Now()
	}
	span := until.Sub(since)
	return since.Add(-span), since
}
