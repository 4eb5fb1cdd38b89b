package output

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ANSI escapes reused across formatters.
const (
	ansiReset = "\033[0m"
	ansiRed   = "\033[31m"
	ansiGreen = "\033[32m"
	ansiDim   = "\033[2m"
	ansiGray  = "\033[90m"
	ansiCyan  = "\033[36m"
	ansiYell  = "\033[33m"
)

// FormatTokens renders a token count in humanized form: 1.5K, 2.3M, 1.1B.
func FormatTokens(n int) string {
	switch {
	case n >= 1_000_000_000:
		return fmt.Sprintf("%.1fB", float64(n)/1_000_000_000)
	case n >= 1_000_000:
		return fmt.Sprintf("%.1fM", float64(n)/1_000_000)
	case n >= 1_000:
		return fmt.Sprintf("%.1fK", float64(n)/1_000)
	}
	return strconv.Itoa(n)
}

// FormatCost renders a dollar cost. Zero is a dash; sub-cent values get
// four decimals so small API costs stay visible.
func FormatCost(c float64) string {
	if c == 0 {
		return "-"
	}
	if c < 0.01 {
		return fmt.Sprintf("$%.4f", c)
	}
	return fmt.Sprintf("$%.2f", c)
}

// FormatDelta renders a percentage delta with a direction arrow.
// Increases are red (more spend), decreases green. nil means no
// comparable previous value and renders as a dim dash.
func FormatDelta(pct *float64, noColor bool) string {
	if pct == nil {
		if noColor {
			return "-"
		}
		return ansiDim + "-" + ansiReset
	}
	switch {
	case *pct > 0:
		if noColor {
			return fmt.Sprintf("↑%.0f%%", *pct)
		}
		return fmt.Sprintf("%s↑%.0f%%%s", ansiRed, *pct, ansiReset)
	case *pct < 0:
		if noColor {
			return fmt.Sprintf("↓%.0f%%", -*pct)
		}
		return fmt.Sprintf("%s↓%.0f%%%s", ansiGreen, -*pct, ansiReset)
	}
	if noColor {
		return "→0%"
	}
	return ansiDim + "→0%" + ansiReset
}

var (
	vendorModelRe = regexp.MustCompile(`^\w+-([a-z]\w+)-(\d+-\d+)(?:-\d+)?$`)
	previewRe     = regexp.MustCompile(`-preview$`)
	freeRe        = regexp.MustCompile(`-free$`)
)

// ShortenModelName abbreviates common model id forms to save table
// width: vendor-variant-1-2-20251016 becomes variant-1-2, trailing
// -preview and -free markers are dropped, grok-code- collapses to grok-.
func ShortenModelName(name string) string {
	if m := vendorModelRe.FindStringSubmatch(name); m != nil {
		return m[1] + "-" + m[2]
	}

	name = previewRe.ReplaceAllString(name, "")
	name = strings.ReplaceAll(name, "grok-code-", "grok-")
	name = freeRe.ReplaceAllString(name, "")
	return name
}
