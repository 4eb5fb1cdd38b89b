package output

import (
	"testing"
)

func TestFormatTokens(t *testing.T) {
	testCases := []struct {
		input    int
		expected string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1.0K"},
		{1500, "1.5K"},
		{999_999, "1000.0K"},
		{1_000_000, "1.0M"},
		{1_500_000, "1.5M"},
		{1_000_000_000, "1.0B"},
		{1_100_000_000, "1.1B"},
	}

	for _, tc := range testCases {
		if got := FormatTokens(tc.input); got != tc.expected {
			t.Errorf("FormatTokens(%d) = %q, want %q", tc.input, got, tc.expected)
		}
	}
}

func TestFormatCost(t *testing.T) {
	testCases := []struct {
		input    float64
		expected string
	}{
		{0, "-"},
		{0.0042, "$0.0042"},
		{0.0099, "$0.0099"},
		{0.01, "$0.01"},
		{1.5, "$1.50"},
		{123.456, "$123.46"},
	}

	for _, tc := range testCases {
		if got := FormatCost(tc.input); got != tc.expected {
			t.Errorf("FormatCost(%v) = %q, want %q", tc.input, got, tc.expected)
		}
	}
}

func TestFormatDelta(t *testing.T) {
	up, down, zero := 12.4, -33.0, 0.0

	testCases := []struct {
		name     string
		pct      *float64
		expected string
	}{
		{"positive", &up, "↑12%"},
		{"negative", &down, "↓33%"},
		{"zero", &zero, "→0%"},
		{"nil", nil, "-"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := FormatDelta(tc.pct, true); got != tc.expected {
				t.Errorf("FormatDelta = %q, want %q", got, tc.expected)
			}
		})
	}
}

func TestFormatDelta_Colored(t *testing.T) {
	up := 50.0
	got := FormatDelta(&up, false)
	if got != ansiRed+"↑50%"+ansiReset {
		t.Errorf("colored delta = %q", got)
	}
}

func TestShortenModelName(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
		desc     string
	}{
		{"anthropic-claude-3-5-20241022", "claude-3-5", "vendor prefix with date"},
		{"vendor-variant-1-2", "variant-1-2", "vendor prefix without date"},
		{"gemini-3-pro-preview", "gemini-3-pro", "preview suffix dropped"},
		{"grok-code-fast-1", "grok-fast-1", "grok-code collapsed"},
		{"minimax-m2.5-free", "minimax-m2.5", "free suffix dropped"},
		{"deepseek-r1", "deepseek-r1", "unmatched passthrough"},
		{"some-model-free", "some-model", "free without preview"},
	}

	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			if got := ShortenModelName(tc.input); got != tc.expected {
				t.Errorf("ShortenModelName(%q) = %q, want %q", tc.input, got, tc.expected)
			}
		})
	}
}
