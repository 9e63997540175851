package tui

import (
	"fmt"
	"time"
	"unicode/utf8"
)

// formatDate renders an ISO date as "10th January 2024". Unparseable
// values are shown as-is rather than hidden.
func formatDate(raw string) string {
	t, err := parseDate(raw)
	if err != nil {
		return raw
	}
	return fmt.Sprintf("%s %s %d", ordinal(t.Day()), t.Month(), t.Year())
}

// parseDate accepts both the date-only form used for application dates
// and the full RFC 3339 timestamps the server assigns.
func parseDate(raw string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, raw)
}

// ordinal renders a day number with its English suffix: 1st, 2nd, 23rd.
func ordinal(n int) string {
	suffix := "th"
	if n%100 < 11 || n%100 > 13 {
		switch n % 10 {
		case 1:
			suffix = "st"
		case 2:
			suffix = "nd"
		case 3:
			suffix = "rd"
		}
	}
	return fmt.Sprintf("%d%s", n, suffix)
}

// formatTime renders a relative timestamp for list displays.
func formatTime(t time.Time) string {
	d := time.Since(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	}
}

// truncStr truncates a string to maxLen runes, appending an ellipsis if needed.
func truncStr(s string, maxLen int) string {
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	runes := []rune(s)
	return string(runes[:maxLen-1]) + "…"
}
