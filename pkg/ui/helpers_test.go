package ui

import (
	"testing"
	"time"

	"github.com/mattn/go-runewidth"
)

func TestFormatTimeRel(t *testing.T) {
	now := time.Now()
	cases := []struct {
		name string
		t    time.Time
		want string
	}{
		{"zero", time.Time{}, "unknown"},
		{"future", now.Add(time.Hour), "now"},
		{"seconds", now.Add(-30 * time.Second), "now"},
		{"minutes", now.Add(-5 * time.Minute), "5m ago"},
		{"hours", now.Add(-3 * time.Hour), "3h ago"},
		{"days", now.Add(-2 * 24 * time.Hour), "2d ago"},
		{"weeks", now.Add(-10 * 24 * time.Hour), "1w ago"},
		{"months", now.Add(-70 * 24 * time.Hour), "2mo ago"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := FormatTimeRel(tc.t); got != tc.want {
				t.Errorf("FormatTimeRel = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("hello", 10); got != "hello" {
		t.Errorf("short strings pass through: %q", got)
	}
	if got := truncate("hello world", 8); runewidth.StringWidth(got) > 8 {
		t.Errorf("truncated string too wide: %q", got)
	}
	if got := truncate("hello", 0); got != "" {
		t.Errorf("zero width should be empty: %q", got)
	}
	// Wide characters count by cell, not by rune.
	if got := truncate("日本語のタイトル", 6); runewidth.StringWidth(got) > 6 {
		t.Errorf("wide-rune truncation overflows: %q", got)
	}
}

func TestPadRight(t *testing.T) {
	if got := padRight("ab", 5); got != "ab   " {
		t.Errorf("padRight = %q", got)
	}
	if got := padRight("abcdef", 3); got != "abcdef" {
		t.Errorf("padRight must not shrink: %q", got)
	}
}
