package scheduler

import (
	"testing"
	"time"

	"github.com/alexanderramin/planwise/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(day, hour, minute int) time.Time {
	return time.Date(2025, 6, day, hour, minute, 0, 0, time.UTC)
}

func TestCheckMove(t *testing.T) {
	block := domain.ScheduleBlock{ID: "b1", TaskID: "t1", TaskName: "Essay", Start: at(16, 9, 0), End: at(16, 9, 30)}
	other := domain.ScheduleBlock{ID: "b2", TaskID: "t2", TaskName: "Lab report", Start: at(16, 14, 0), End: at(16, 15, 0)}
	schedule := []domain.ScheduleBlock{block, other}
	fixed := []domain.FixedBlock{{Label: "Lecture", Category: domain.FixedRoutine, Start: at(16, 10, 0), End: at(16, 11, 0)}}
	deadline := at(18, 23, 59)

	cases := []struct {
		name     string
		newStart time.Time
		wantErr  error
	}{
		{name: "free slot", newStart: at(16, 12, 0)},
		{name: "onto its own position", newStart: at(16, 9, 15)},
		{name: "touching a fixed block edge", newStart: at(16, 11, 0)},
		{name: "into a lecture", newStart: at(16, 10, 15), wantErr: ErrConflictsWithFixed},
		{name: "straddling a lecture start", newStart: at(16, 9, 45), wantErr: ErrConflictsWithFixed},
		{name: "onto another task", newStart: at(16, 14, 30), wantErr: ErrConflictsWithTask},
		{name: "past the deadline", newStart: at(18, 23, 45), wantErr: ErrPastDeadline},
		{name: "ending exactly at the deadline", newStart: at(18, 23, 29)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			moved, err := CheckMove(block, tc.newStart, schedule, fixed, deadline)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				assert.Equal(t, block, moved, "rejected moves return the original block")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.newStart, moved.Start)
			assert.Equal(t, 30*time.Minute, moved.Duration())
			assert.Equal(t, block.ID, moved.ID)
		})
	}
}

func TestCheckMove_FixedCheckedBeforeTasks(t *testing.T) {
	block := domain.ScheduleBlock{TaskID: "t1", Start: at(16, 9, 0), End: at(16, 10, 0)}
	other := domain.ScheduleBlock{TaskID: "t2", TaskName: "Other", Start: at(16, 12, 0), End: at(16, 13, 0)}
	fixed := []domain.FixedBlock{{Label: "Lunch", Category: domain.FixedBreak, Start: at(16, 12, 0), End: at(16, 13, 0)}}

	_, err := CheckMove(block, at(16, 12, 0), []domain.ScheduleBlock{block, other}, fixed, at(20, 23, 59))

	require.ErrorIs(t, err, ErrConflictsWithFixed)
	assert.Contains(t, err.Error(), "Lunch 12:00-13:00")
}

func TestCheckMove_UnsavedBlocksMatchByTaskAndStart(t *testing.T) {
	block := domain.ScheduleBlock{TaskID: "t1", Start: at(16, 9, 0), End: at(16, 10, 0)}
	sibling := domain.ScheduleBlock{TaskID: "t1", TaskName: "Essay", Start: at(16, 10, 0), End: at(16, 11, 0)}
	schedule := []domain.ScheduleBlock{block, sibling}

	_, err := CheckMove(block, at(16, 9, 30), schedule, nil, at(20, 23, 59))
	require.ErrorIs(t, err, ErrConflictsWithTask, "another chunk of the same task still counts")

	moved, err := CheckMove(block, at(16, 8, 30), schedule, nil, at(20, 23, 59))
	require.NoError(t, err)
	assert.Equal(t, at(16, 9, 30), moved.End)
}

func TestCheckMove_SetsWeekendFlag(t *testing.T) {
	block := domain.ScheduleBlock{ID: "b1", TaskID: "t1", Start: at(20, 9, 0), End: at(20, 10, 0)}

	moved, err := CheckMove(block, at(21, 9, 0), nil, nil, at(25, 23, 59))
	require.NoError(t, err)
	assert.True(t, moved.IsWeekend, "2025-06-21 is a Saturday")

	moved, err = CheckMove(moved, at(23, 9, 0), nil, nil, at(25, 23, 59))
	require.NoError(t, err)
	assert.False(t, moved.IsWeekend)
}
