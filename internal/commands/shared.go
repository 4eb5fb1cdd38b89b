package commands

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/sdpower/ocusage-go/internal/types"
)

var durationSpecRe = regexp.MustCompile(`^(\d+)([dhwm])$`)

// parseSince parses a relative duration like "7d", "2w", "3h", "1m"
// or an ISO date. Specs are case-insensitive and whitespace-trimmed.
func parseSince(value string) (time.Time, error) {
	trimmed := strings.TrimSpace(value)
	spec := strings.ToLower(trimmed)

	if m := durationSpecRe.FindStringSubmatch(spec); m != nil {
		n, err := strconv.Atoi(m[1])
		if err != nil {
			return time.Time{}, fmt.Errorf("%w: %q", types.ErrInvalidTimeSpec, value)
		}
		var d time.Duration
		switch m[2] {
		case "h":
			d = time.Duration(n) * time.Hour
		case "d":
			d = time.Duration(n) * 24 * time.Hour
		case "w":
			d = time.Duration(n) * 7 * 24 * time.Hour
		case "m":
			d = time.Duration(n) * 30 * 24 * time.Hour
		}
		return time.Now().Add(-d), nil
	}

	for _, layout := range []string{"2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.ParseInLocation(layout, trimmed, time.Local); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("%w: %q (use '7d', '2w', '30d', '3h', or an ISO date)", types.ErrInvalidTimeSpec, value)
}

// resolveWindow determines the effective reporting window start and a
// human-readable period label. Precedence: shortcut command, --since,
// --days, then the configured default.
func resolveWindow(shortcut, sinceSpec string, days, defaultDays int) (time.Time, string, error) {
	now := time.Now()

	switch shortcut {
	case "today":
		since := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		return since, "Today", nil
	case "yesterday":
		y := now.AddDate(0, 0, -1)
		since := time.Date(y.Year(), y.Month(), y.Day(), 0, 0, 0, 0, y.Location())
		return since, "Yesterday & Today", nil
	}

	if sinceSpec != "" {
		since, err := parseSince(sinceSpec)
		if err != nil {
			return time.Time{}, "", err
		}
		return since, "Since " + since.Format("2006-01-02"), nil
	}

	if days > 0 {
		return now.AddDate(0, 0, -days), fmt.Sprintf("Last %d days", days), nil
	}

	if defaultDays <= 0 {
		defaultDays = 7
	}
	return now.AddDate(0, 0, -defaultDays), fmt.Sprintf("Last %d days", defaultDays), nil
}
