package scheduler

import (
	"sort"
	"time"

	"github.com/alexanderramin/planwise/internal/domain"
)

// Breaks longer than this are expected to be covered by the profile's own
// break times and are not reserved on the grid.
const maxReservedBreakMin = 15

// PlaceInput carries one task through placement.
type PlaceInput struct {
	Task     *domain.Task
	Profile  *domain.Profile
	Plan     ChunkPlan
	Strategy Strategy
	Now      time.Time
	Deadline time.Time
}

// PlaceTask greedily commits a task's chunks onto the grid, day by day in
// strategy order, and reports how many chunks it managed to place. The grid
// is mutated: claimed slots become unavailable to later tasks.
func PlaceTask(grid Grid, in PlaceInput) ([]domain.ScheduleBlock, domain.TaskPlacement) {
	report := domain.TaskPlacement{
		TaskID:       in.Task.ID,
		TaskName:     in.Task.Name,
		Strategy:     in.Strategy.Kind,
		ChunkSizeMin: in.Plan.ChunkSizeMin,
		BreakMin:     in.Plan.BreakMin,
		BufferMin:    in.Plan.BufferMin,
		ChunkCount:   in.Plan.ChunkCount,
	}
	latest := in.Deadline.Add(-time.Duration(in.Plan.BufferMin) * time.Minute)
	days := UsableDays(grid, in.Now, latest)
	if days.Empty() {
		report.Skipped = true
		return nil, report
	}
	perDay := in.Strategy.MaxChunksPerDay(in.Plan.ChunkCount, max(1, days.Len()))

	var blocks []domain.ScheduleBlock
	for _, di := range in.Strategy.DayOrder(days) {
		if report.ChunksScheduled >= in.Plan.ChunkCount {
			break
		}
		d := &grid[di]
		candidates := RankCandidates(d, in, latest, grid[0].Date)

		placedToday := 0
		lastEndMin := -1 // break spacing does not carry across days
		for _, c := range candidates {
			if placedToday >= perDay || report.ChunksScheduled >= in.Plan.ChunkCount {
				break
			}
			startMin := d.Slots[c.Index].StartMin
			endMin := startMin + in.Plan.ChunkSizeMin
			if !d.canPlace(startMin, endMin) {
				continue
			}
			if lastEndMin >= 0 && in.Plan.BreakMin > 0 && startMin < lastEndMin+in.Plan.BreakMin {
				continue
			}

			d.claim(startMin, endMin)
			if in.Plan.BreakMin > 0 && in.Plan.BreakMin <= maxReservedBreakMin &&
				report.ChunksScheduled < in.Plan.ChunkCount-1 {
				d.claim(endMin, endMin+in.Plan.BreakMin)
			}

			blocks = append(blocks, domain.ScheduleBlock{
				TaskID:    in.Task.ID,
				TaskName:  in.Task.Name,
				Priority:  in.Task.Priority,
				Category:  in.Task.EffectiveCategory(),
				Start:     d.At(startMin),
				End:       d.At(endMin),
				IsWeekend: d.IsWeekend(),
			})
			report.ChunksScheduled++
			placedToday++
			lastEndMin = endMin
		}
	}
	return blocks, report
}

// RankCandidates scores every slot of the day that could host a chunk and
// returns them best first. Equal scores keep grid order.
func RankCandidates(d *DaySlots, in PlaceInput, latest, horizonStart time.Time) []ScoredSlot {
	weight := in.Task.Priority.Weight()
	var candidates []ScoredSlot
	for i, s := range d.Slots {
		if !s.Available {
			continue
		}
		start := d.At(s.StartMin)
		endMin := s.StartMin + in.Plan.ChunkSizeMin
		if start.Before(in.Now) || d.At(endMin).After(latest) {
			continue
		}
		if !d.canPlace(s.StartMin, endMin) {
			continue
		}
		candidates = append(candidates, ScoredSlot{
			Index: i,
			Start: start,
			Score: ScoreSlot(SlotInput{
				Profile:         in.Profile,
				TaskName:        in.Task.Name,
				PriorityWeight:  weight,
				SlotStart:       start,
				StartMin:        s.StartMin,
				IsWeekend:       d.IsWeekend(),
				ReviewPreferred: s.ReviewPreferred,
				Deadline:        in.Deadline,
				LatestAllowed:   latest,
				HorizonStart:    horizonStart,
			}),
		})
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score > candidates[j].Score
	})
	return candidates
}

// canPlace reports whether [startMin, endMin) fits inside the day, touches
// only available slots and crosses no fixed interval.
func (d *DaySlots) canPlace(startMin, endMin int) bool {
	if endMin > DayEndMin {
		return false
	}
	for _, i := range d.coveredSlots(startMin, endMin) {
		if !d.Slots[i].Available {
			return false
		}
	}
	return !d.overlapsFixed(startMin, endMin)
}

func (d *DaySlots) claim(startMin, endMin int) {
	for _, i := range d.coveredSlots(startMin, endMin) {
		d.Slots[i].Available = false
	}
}
