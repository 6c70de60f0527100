package moderation

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// MaxTimeout is the longest timeout the API accepts, 28 days.
const MaxTimeout = 28 * 24 * time.Hour

var compactRe = regexp.MustCompile(`^(\d+)([smhd])$`)

var compactUnits = map[string]time.Duration{
	"s": time.Second,
	"m": time.Minute,
	"h": time.Hour,
	"d": 24 * time.Hour,
}

// ParseCompact reads the short moderation duration grammar: an integer
// with an s/m/h/d suffix, or a bare integer counted as seconds.
func ParseCompact(arg string) (time.Duration, bool) {
	if m := compactRe.FindStringSubmatch(arg); m != nil {
		n, err := strconv.ParseInt(m[1], 10, 64)
		if err != nil {
			return 0, false
		}
		return time.Duration(n) * compactUnits[m[2]], true
	}
	if n, err := strconv.ParseInt(arg, 10, 64); err == nil && n >= 0 {
		return time.Duration(n) * time.Second, true
	}
	return 0, false
}

// ParseTimeout parses a compact duration and enforces the API's
// timeout bounds.
func ParseTimeout(arg string) (time.Duration, error) {
	d, ok := ParseCompact(arg)
	if !ok {
		return 0, fmt.Errorf("invalid duration %q, use formats like 30s, 5m, 2h, 1d", arg)
	}
	if d < time.Second || d > MaxTimeout {
		return 0, fmt.Errorf("duration must be between 1 second and 28 days")
	}
	return d, nil
}

// flexiblePatterns mirror the long-form grammar giveaways accept:
// "30s", "30 seconds", "5 min", "2 hours", "1 week", "1mo". Months
// count as 30 days.
var flexiblePatterns = []struct {
	re   *regexp.Regexp
	unit time.Duration
}{
	{regexp.MustCompile(`^(\d+)s(?:ec(?:ond)?s?)?$`), time.Second},
	{regexp.MustCompile(`^(\d+)m(?:in(?:ute)?s?)?$`), time.Minute},
	{regexp.MustCompile(`^(\d+)h(?:r(?:s)?|our(?:s)?)?$`), time.Hour},
	{regexp.MustCompile(`^(\d+)d(?:ay(?:s)?)?$`), 24 * time.Hour},
	{regexp.MustCompile(`^(\d+)w(?:eek(?:s)?)?$`), 7 * 24 * time.Hour},
	{regexp.MustCompile(`^(\d+)mo(?:nth(?:s)?)?$`), 30 * 24 * time.Hour},
}

var spaceRe = regexp.MustCompile(`\s+`)

// ParseFlexible reads the long duration grammar. Case-insensitive,
// internal whitespace ignored.
func ParseFlexible(arg string) (time.Duration, bool) {
	norm := spaceRe.ReplaceAllString(strings.ToLower(arg), "")
	for _, p := range flexiblePatterns {
		if m := p.re.FindStringSubmatch(norm); m != nil {
			n, err := strconv.ParseInt(m[1], 10, 64)
			if err != nil {
				return 0, false
			}
			return time.Duration(n) * p.unit, true
		}
	}
	return 0, false
}

// FormatDuration renders a duration the way the DM embeds and list
// views show it: "1 day 2 hours 5 minutes". Sub-second amounts render
// as "0 seconds".
func FormatDuration(d time.Duration) string {
	secs := int64(d / time.Second)
	if secs <= 0 {
		return "0 seconds"
	}
	periods := []struct {
		name string
		secs int64
	}{
		{"day", 86400},
		{"hour", 3600},
		{"minute", 60},
		{"second", 1},
	}
	var parts []string
	for _, p := range periods {
		if secs >= p.secs {
			n := secs / p.secs
			secs %= p.secs
			label := p.name
			if n != 1 {
				label += "s"
			}
			parts = append(parts, fmt.Sprintf("%d %s", n, label))
		}
	}
	return strings.Join(parts, " ")
}
