package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseTimeRanges(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want []TimeRange
	}{
		{"empty", "", nil},
		{"single", "09:00-10:30", []TimeRange{{540, 630}}},
		{"semicolon list", "09:00-10:00; 13:00-14:00", []TimeRange{{540, 600}, {780, 840}}},
		{"comma list", "9:00 - 10:00,13:00-14:00", []TimeRange{{540, 600}, {780, 840}}},
		{"embedded in text", "lunch 12:00-13:00 daily", []TimeRange{{720, 780}}},
		{"invalid token skipped", "garbage; 15:00-16:00", []TimeRange{{900, 960}}},
		{"end of day", "22:00-24:00", []TimeRange{{1320, 1440}}},
		{"reversed range dropped", "14:00-13:00", nil},
		{"bad minutes dropped", "10:75-11:00", nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ParseTimeRanges(tc.in))
		})
	}
}

func TestParseClock(t *testing.T) {
	m, ok := ParseClock("7:05")
	assert.True(t, ok)
	assert.Equal(t, 425, m)

	_, ok = ParseClock("24:30")
	assert.False(t, ok)

	_, ok = ParseClock("noon")
	assert.False(t, ok)
}

func TestTimeRange_Overlaps(t *testing.T) {
	r := TimeRange{StartMin: 540, EndMin: 600}
	assert.True(t, r.Overlaps(570, 630))
	assert.False(t, r.Overlaps(600, 630), "touching end is not an overlap")
	assert.False(t, r.Overlaps(480, 540), "touching start is not an overlap")
	assert.True(t, r.Contains(540))
	assert.False(t, r.Contains(600))
}

func TestFormatTimeRanges_RoundTrip(t *testing.T) {
	text := "09:00-10:00; 13:30-15:00"
	assert.Equal(t, text, FormatTimeRanges(ParseTimeRanges(text)))
}
