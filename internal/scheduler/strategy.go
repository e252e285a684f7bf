package scheduler

import (
	"time"

	"github.com/alexanderramin/planwise/internal/domain"
)

// DayRange is an inclusive range of horizon day indexes.
type DayRange struct {
	Start int
	End   int
}

func (r DayRange) Len() int {
	return r.End - r.Start + 1
}

func (r DayRange) Empty() bool {
	return r.End < r.Start
}

// Strategy decides which days a task's chunks are tried on, in what order,
// and how many chunks a single day may take.
type Strategy struct {
	Kind            domain.StrategyKind
	DayOrder        func(DayRange) []int
	MaxChunksPerDay func(chunkCount, daysAvailable int) int
}

var (
	balanced = Strategy{
		Kind:     domain.StrategyBalanced,
		DayOrder: forwardDays,
		MaxChunksPerDay: func(count, days int) int {
			return max(1, ceilDiv(count, days))
		},
	}
	distributed = Strategy{
		Kind:     domain.StrategyDistributed,
		DayOrder: forwardDays,
		MaxChunksPerDay: func(count, days int) int {
			return max(1, ceilDiv(count, days))
		},
	}
	intensive = Strategy{
		Kind:     domain.StrategyIntensive,
		DayOrder: forwardDays,
		MaxChunksPerDay: func(count, days int) int {
			return max(2, ceilDiv(count, max(1, days/2)))
		},
	}
	deadlineProximate = Strategy{
		Kind:     domain.StrategyDeadlineProximate,
		DayOrder: backwardDays,
		MaxChunksPerDay: func(count, days int) int {
			return max(2, ceilDiv(count, max(1, days-2)))
		},
	}
)

// SelectStrategy maps a procrastination profile to a placement strategy.
// Non-procrastinators always get the balanced strategy.
func SelectStrategy(isProcrastinator bool, t domain.ProcrastinatorType) Strategy {
	if !isProcrastinator {
		return balanced
	}
	switch t {
	case domain.ProcrastinatorPerfectionist, domain.ProcrastinatorOverwhelmed, domain.ProcrastinatorAvoidant:
		return distributed
	case domain.ProcrastinatorLackOfMotivation, domain.ProcrastinatorDistraction:
		return intensive
	case domain.ProcrastinatorDeadlineDriven:
		return deadlineProximate
	default:
		return balanced
	}
}

func forwardDays(r DayRange) []int {
	days := make([]int, 0, max(0, r.Len()))
	for i := r.Start; i <= r.End; i++ {
		days = append(days, i)
	}
	return days
}

func backwardDays(r DayRange) []int {
	days := make([]int, 0, max(0, r.Len()))
	for i := r.End; i >= r.Start; i-- {
		days = append(days, i)
	}
	return days
}

// UsableDays returns the days a task may be worked on: from the first day
// that has not fully passed at now, through the last day whose 23:59 is at
// or before latestAllowed.
func UsableDays(grid Grid, now, latestAllowed time.Time) DayRange {
	r := DayRange{Start: len(grid), End: -1}
	for i := range grid {
		if !grid[i].EndOfDay().Before(now) {
			r.Start = i
			break
		}
	}
	for i := range grid {
		if !grid[i].EndOfDay().After(latestAllowed) {
			r.End = i
		}
	}
	return r
}
