package ui

import (
	"fmt"
	"time"

	"github.com/amonks/kanban/internal/age"
)

// FormatTimeAgo returns a compact age string like "2m ago".
func FormatTimeAgo(then time.Time, now time.Time) string {
	elapsed, ok := age.AgeData(then, now)
	if !ok {
		return "-"
	}
	return FormatDurationShort(elapsed) + " ago"
}

// FormatDurationShort formats a duration using short units (s/m/h/d).
func FormatDurationShort(duration time.Duration) string {
	if duration < 0 {
		duration = 0
	}

	seconds := int64(duration.Truncate(time.Second).Seconds())
	switch {
	case seconds < 60:
		return fmt.Sprintf("%ds", seconds)
	case seconds < 60*60:
		return fmt.Sprintf("%dm", seconds/60)
	case seconds < 24*60*60:
		return fmt.Sprintf("%dh", seconds/(60*60))
	}
	return fmt.Sprintf("%dd", seconds/(24*60*60))
}

// FormatDate formats a date-only value the way the CLI accepts it.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// DateLayout is the layout for due dates on the command line.
const DateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD date as midnight in loc.
func ParseDate(value string, loc *time.Location) (time.Time, error) {
	parsed, err := time.ParseInLocation(DateLayout, value, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", value)
	}
	return parsed, nil
}
