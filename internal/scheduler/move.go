package scheduler

import (
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/planwise/internal/domain"
)

var (
	ErrConflictsWithFixed = errors.New("overlaps a fixed commitment")
	ErrConflictsWithTask  = errors.New("overlaps another scheduled block")
	ErrPastDeadline       = errors.New("would end after the task deadline")
)

// CheckMove validates moving block to start at newStart, keeping its length.
// The block itself is excluded from the overlap check. Only raw interval
// conflicts and the task's deadline are checked; the buffer and scoring rules
// do not apply to manual moves.
func CheckMove(
	block domain.ScheduleBlock,
	newStart time.Time,
	schedule []domain.ScheduleBlock,
	fixed []domain.FixedBlock,
	deadline time.Time,
) (domain.ScheduleBlock, error) {
	moved := block
	moved.Start = newStart
	moved.End = newStart.Add(block.Duration())

	for _, f := range fixed {
		if f.Overlaps(moved.Start, moved.End) {
			return block, fmt.Errorf("%w: %s %s-%s", ErrConflictsWithFixed,
				f.Label, f.Start.Format("15:04"), f.End.Format("15:04"))
		}
	}
	for _, other := range schedule {
		if sameBlock(other, block) {
			continue
		}
		if other.Overlaps(moved.Start, moved.End) {
			return block, fmt.Errorf("%w: %s %s-%s", ErrConflictsWithTask,
				other.TaskName, other.Start.Format("15:04"), other.End.Format("15:04"))
		}
	}
	if moved.End.After(deadline) {
		return block, fmt.Errorf("%w (%s)", ErrPastDeadline, deadline.Format("2006-01-02 15:04"))
	}
	moved.IsWeekend = isWeekend(moved.Start)
	return moved, nil
}

func sameBlock(a, b domain.ScheduleBlock) bool {
	if a.ID != "" || b.ID != "" {
		return a.ID == b.ID
	}
	return a.TaskID == b.TaskID && a.Start.Equal(b.Start)
}

func isWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}
