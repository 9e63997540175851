package tui

import (
	"strings"
	"testing"
)

func TestEditRune(t *testing.T) {
	if got := editRune("acm", "e"); got != "acme" {
		t.Errorf("append: got %q", got)
	}
	if got := editRune("acme", "backspace"); got != "acm" {
		t.Errorf("backspace: got %q", got)
	}
	if got := editRune("", "backspace"); got != "" {
		t.Errorf("backspace on empty: got %q", got)
	}
	// Non-printable keys leave the text alone
	for _, key := range []string{"enter", "esc", "tab", "up"} {
		if got := editRune("acme", key); got != "acme" {
			t.Errorf("key %q changed text to %q", key, got)
		}
	}
	// Rune-aware backspace
	if got := editRune("café", "backspace"); got != "caf" {
		t.Errorf("unicode backspace: got %q", got)
	}
}

func TestEditRuneClampsLength(t *testing.T) {
	long := strings.Repeat("a", maxInputLen)
	if got := editRune(long, "b"); len(got) != maxInputLen {
		t.Errorf("input grew past the clamp: %d runes", len(got))
	}
}

func TestTruncateToHeight(t *testing.T) {
	s := "one\ntwo\nthree\nfour\n"
	if got := truncateToHeight(s, 2); got != "one\ntwo\n" {
		t.Errorf("truncateToHeight(2) = %q", got)
	}
	if got := truncateToHeight(s, 10); got != s {
		t.Errorf("truncateToHeight(10) modified fitting text: %q", got)
	}
	if got := truncateToHeight(s, 0); got != s {
		t.Errorf("truncateToHeight(0) should disable limiting, got %q", got)
	}
}
