package scheduler

import (
	"testing"
	"time"

	"github.com/alexanderramin/planwise/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedAt(label string, category domain.FixedCategory, day int, start, end string) domain.FixedBlock {
	s, _ := domain.ParseClock(start)
	e, _ := domain.ParseClock(end)
	return domain.FixedBlock{
		Label:    label,
		Category: category,
		Start:    time.Date(2025, 6, day, 0, s, 0, 0, time.UTC),
		End:      time.Date(2025, 6, day, 0, e, 0, 0, time.UTC),
	}
}

func TestMergeFixedBlocks(t *testing.T) {
	cases := []struct {
		name string
		in   []domain.FixedBlock
		want []domain.FixedBlock
	}{
		{
			name: "empty",
			in:   nil,
			want: nil,
		},
		{
			name: "adjacent slices coalesce",
			in: []domain.FixedBlock{
				fixedAt("Work", domain.FixedRoutine, 16, "09:00", "09:30"),
				fixedAt("Work", domain.FixedRoutine, 16, "09:30", "10:00"),
				fixedAt("Work", domain.FixedRoutine, 16, "10:00", "10:30"),
			},
			want: []domain.FixedBlock{fixedAt("Work", domain.FixedRoutine, 16, "09:00", "10:30")},
		},
		{
			name: "one minute gap still merges",
			in: []domain.FixedBlock{
				fixedAt("Work", domain.FixedRoutine, 16, "09:00", "09:29"),
				fixedAt("Work", domain.FixedRoutine, 16, "09:30", "10:00"),
			},
			want: []domain.FixedBlock{fixedAt("Work", domain.FixedRoutine, 16, "09:00", "10:00")},
		},
		{
			name: "larger gap stays split",
			in: []domain.FixedBlock{
				fixedAt("Work", domain.FixedRoutine, 16, "09:00", "09:30"),
				fixedAt("Work", domain.FixedRoutine, 16, "09:32", "10:00"),
			},
			want: []domain.FixedBlock{
				fixedAt("Work", domain.FixedRoutine, 16, "09:00", "09:30"),
				fixedAt("Work", domain.FixedRoutine, 16, "09:32", "10:00"),
			},
		},
		{
			name: "different labels never merge",
			in: []domain.FixedBlock{
				fixedAt("Work", domain.FixedRoutine, 16, "09:00", "09:30"),
				fixedAt("Gym", domain.FixedRoutine, 16, "09:30", "10:00"),
			},
			want: []domain.FixedBlock{
				fixedAt("Work", domain.FixedRoutine, 16, "09:00", "09:30"),
				fixedAt("Gym", domain.FixedRoutine, 16, "09:30", "10:00"),
			},
		},
		{
			name: "different categories never merge",
			in: []domain.FixedBlock{
				fixedAt("Break", domain.FixedBreak, 16, "12:00", "12:30"),
				fixedAt("Break", domain.FixedRoutine, 16, "12:30", "13:00"),
			},
			want: []domain.FixedBlock{
				fixedAt("Break", domain.FixedBreak, 16, "12:00", "12:30"),
				fixedAt("Break", domain.FixedRoutine, 16, "12:30", "13:00"),
			},
		},
		{
			name: "different days never merge",
			in: []domain.FixedBlock{
				fixedAt("Break", domain.FixedBreak, 17, "12:00", "12:30"),
				fixedAt("Break", domain.FixedBreak, 16, "12:00", "12:30"),
			},
			want: []domain.FixedBlock{
				fixedAt("Break", domain.FixedBreak, 16, "12:00", "12:30"),
				fixedAt("Break", domain.FixedBreak, 17, "12:00", "12:30"),
			},
		},
		{
			name: "contained slice keeps outer end",
			in: []domain.FixedBlock{
				fixedAt("Work", domain.FixedRoutine, 16, "09:00", "11:00"),
				fixedAt("Work", domain.FixedRoutine, 16, "09:30", "10:00"),
			},
			want: []domain.FixedBlock{fixedAt("Work", domain.FixedRoutine, 16, "09:00", "11:00")},
		},
		{
			name: "unsorted input",
			in: []domain.FixedBlock{
				fixedAt("Work", domain.FixedRoutine, 16, "10:00", "10:30"),
				fixedAt("Work", domain.FixedRoutine, 16, "09:00", "09:30"),
				fixedAt("Work", domain.FixedRoutine, 16, "09:30", "10:00"),
			},
			want: []domain.FixedBlock{fixedAt("Work", domain.FixedRoutine, 16, "09:00", "10:30")},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, MergeFixedBlocks(tc.in))
		})
	}
}

func TestMergeFixedBlocks_FromGrid(t *testing.T) {
	p := domain.NewProfile()
	p.SetBreakTimes("12:00-13:30")

	_, raw := BuildGrid(p, monday)
	merged := MergeFixedBlocks(raw)

	require.Len(t, raw, 3*HorizonDays)
	require.Len(t, merged, HorizonDays)
	for i, b := range merged {
		assert.Equal(t, 90*time.Minute, b.End.Sub(b.Start))
		if i > 0 {
			assert.True(t, merged[i-1].Start.Before(b.Start), "sorted by start")
		}
	}
}
