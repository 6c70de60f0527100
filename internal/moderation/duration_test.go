package moderation

import (
	"testing"
	"time"
)

func TestParseCompact(t *testing.T) {
	tests := []struct {
		in   string
		want time.Duration
		ok   bool
	}{
		{"30s", 30 * time.Second, true},
		{"5m", 5 * time.Minute, true},
		{"2h", 2 * time.Hour, true},
		{"1d", 24 * time.Hour, true},
		{"90", 90 * time.Second, true},
		{"0", 0, true},
		{"5w", 0, false},
		{"m5", 0, false},
		{"5 m", 0, false},
		{"-5m", 0, false},
		{"", 0, false},
		{"abc", 0, false},
	}
	for _, tt := range tests {
		got, ok := ParseCompact(tt.in)
		if ok != tt.ok || got != tt.want {
			t.Errorf("ParseCompact(%q) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestParseTimeoutBounds(t *testing.T) {
	if _, err := ParseTimeout("28d"); err != nil {
		t.Errorf("28d rejected: %v", err)
	}
	if _, err := ParseTimeout("29d"); err == nil {
		t.Error("29d accepted, want out-of-range error")
	}
	if _, err := ParseTimeout("0"); err == nil {
		t.Error("0 accepted, want out-of-range error")
	}
	if d, err := ParseTimeout("1"); err != nil || d != time.Second {
		t.Errorf("ParseTimeout(1) = %v, %v", d, err)
	}
}

func TestParseFlexible(t *testing.T) {
	tests := []struct {
		in   string
		want time.Duration
		ok   bool
	}{
		{"30s", 30 * time.Second, true},
		{"30 seconds", 30 * time.Second, true},
		{"5 min", 5 * time.Minute, true},
		{"5 minutes", 5 * time.Minute, true},
		{"2h", 2 * time.Hour, true},
		{"2 HOURS", 2 * time.Hour, true},
		{"1 day", 24 * time.Hour, true},
		{"1w", 7 * 24 * time.Hour, true},
		{"2 weeks", 14 * 24 * time.Hour, true},
		{"1mo", 30 * 24 * time.Hour, true},
		{"1 month", 30 * 24 * time.Hour, true},
		{"10", 0, false},
		{"soon", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		got, ok := ParseFlexible(tt.in)
		if ok != tt.ok || got != tt.want {
			t.Errorf("ParseFlexible(%q) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{0, "0 seconds"},
		{-5 * time.Second, "0 seconds"},
		{time.Second, "1 second"},
		{61 * time.Second, "1 minute 1 second"},
		{90 * time.Minute, "1 hour 30 minutes"},
		{26*time.Hour + 5*time.Minute, "1 day 2 hours 5 minutes"},
		{48 * time.Hour, "2 days"},
	}
	for _, tt := range tests {
		if got := FormatDuration(tt.in); got != tt.want {
			t.Errorf("FormatDuration(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
