package domain

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// TimeRange is a half-open [StartMin, EndMin) interval in minutes from midnight.
type TimeRange struct {
	StartMin int
	EndMin   int
}

var (
	rangeSeparator = regexp.MustCompile(`[;,]+`)
	rangePattern   = regexp.MustCompile(`(\d{1,2}:\d{2})\s*-\s*(\d{1,2}:\d{2})`)
)

// ParseTimeRanges tokenizes "HH:MM-HH:MM[;, ...]" text. Tokens that do not
// contain a well-formed range are skipped.
func ParseTimeRanges(text string) []TimeRange {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	var ranges []TimeRange
	for _, part := range rangeSeparator.Split(text, -1) {
		m := rangePattern.FindStringSubmatch(strings.TrimSpace(part))
		if m == nil {
			continue
		}
		start, ok := ParseClock(m[1])
		if !ok {
			continue
		}
		end, ok := ParseClock(m[2])
		if !ok || end <= start {
			continue
		}
		ranges = append(ranges, TimeRange{StartMin: start, EndMin: end})
	}
	return ranges
}

// ParseClock converts "H:MM" or "HH:MM" into minutes from midnight.
// "24:00" is accepted as end of day.
func ParseClock(s string) (int, bool) {
	h, m, found := strings.Cut(strings.TrimSpace(s), ":")
	if !found || len(m) != 2 {
		return 0, false
	}
	hours, err := strconv.Atoi(h)
	if err != nil || hours < 0 || hours > 24 {
		return 0, false
	}
	mins, err := strconv.Atoi(m)
	if err != nil || mins < 0 || mins > 59 {
		return 0, false
	}
	if hours == 24 && mins != 0 {
		return 0, false
	}
	return hours*60 + mins, true
}

// FormatClock renders minutes from midnight as "HH:MM".
func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// Contains reports whether minute falls inside the range.
func (r TimeRange) Contains(minute int) bool {
	return minute >= r.StartMin && minute < r.EndMin
}

// Overlaps reports whether [start, end) intersects the range.
func (r TimeRange) Overlaps(start, end int) bool {
	return start < r.EndMin && r.StartMin < end
}

func (r TimeRange) String() string {
	return FormatClock(r.StartMin) + "-" + FormatClock(r.EndMin)
}

// FormatTimeRanges renders ranges back into the "HH:MM-HH:MM; ..." form.
func FormatTimeRanges(ranges []TimeRange) string {
	parts := make([]string, len(ranges))
	for i, r := range ranges {
		parts[i] = r.String()
	}
	return strings.Join(parts, "; ")
}
