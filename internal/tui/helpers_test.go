package tui

import (
	"testing"
	"time"
)

func TestFormatDateOrdinals(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{"2024-01-10", "10th January 2024"},
		{"2024-03-01", "1st March 2024"},
		{"2024-03-02", "2nd March 2024"},
		{"2024-03-03", "3rd March 2024"},
		{"2024-03-11", "11th March 2024"},
		{"2024-03-12", "12th March 2024"},
		{"2024-03-13", "13th March 2024"},
		{"2024-03-21", "21st March 2024"},
		{"2024-03-22", "22nd March 2024"},
		{"2024-03-23", "23rd March 2024"},
		{"2024-12-31", "31st December 2024"},
	}
	for _, tc := range cases {
		if got := formatDate(tc.raw); got != tc.want {
			t.Errorf("formatDate(%q) = %q, want %q", tc.raw, got, tc.want)
		}
	}
}

func TestFormatDateServerTimestamp(t *testing.T) {
	if got := formatDate("2024-01-10T08:30:00.000+00:00"); got != "10th January 2024" {
		t.Errorf("formatDate(RFC3339) = %q, want 10th January 2024", got)
	}
}

func TestFormatDateUnparseable(t *testing.T) {
	if got := formatDate("soonish"); got != "soonish" {
		t.Errorf("formatDate passes unparseable values through, got %q", got)
	}
}

func TestFormatTime(t *testing.T) {
	if got := formatTime(time.Now().Add(-30 * time.Second)); got != "just now" {
		t.Errorf("formatTime(now) = %q", got)
	}
	if got := formatTime(time.Now().Add(-3 * time.Hour)); got != "3h ago" {
		t.Errorf("formatTime(-3h) = %q", got)
	}
}

func TestTruncStr(t *testing.T) {
	if got := truncStr("short", 10); got != "short" {
		t.Errorf("truncStr(short) = %q", got)
	}
	if got := truncStr("a very long company name", 10); got != "a very lo…" {
		t.Errorf("truncStr() = %q", got)
	}
}
