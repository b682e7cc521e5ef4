package shared

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// FormatCount renders a numeric string as a compact human-readable count
// ("1.2M", "3.4K"). Non-numeric or empty input renders as "0".
//
// YouTube statistics arrive as decimal strings, so the input is a string.
func FormatCount(value string) string {
	if value == "" {
		return "0"
	}
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return "0"
	}

	switch {
	case n >= 1_000_000:
		return strings.Replace(fmt.Sprintf("%.1fM", float64(n)/1_000_000), ".0M", "M", 1)
	case n >= 1_000:
		return strings.Replace(fmt.Sprintf("%.1fK", float64(n)/1_000), ".0K", "K", 1)
	default:
		return strconv.FormatInt(n, 10)
	}
}

// FormatDate renders a timestamp as a short date, or "unknown" for the zero value.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return "unknown"
	}
	return t.Format("2006-01-02")
}
