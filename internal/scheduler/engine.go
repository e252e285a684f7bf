package scheduler

import (
	"time"

	"github.com/alexanderramin/planwise/internal/domain"
)

// Result is the output of one engine run.
type Result struct {
	Schedule    []domain.ScheduleBlock
	FixedBlocks []domain.FixedBlock
	Placements  []domain.TaskPlacement
}

// Engine turns a profile and a ranked task list into a schedule. It keeps no
// state between runs; every Generate call starts from a fresh grid.
type Engine struct {
	Now      func() time.Time
	Location *time.Location
}

func NewEngine(loc *time.Location) *Engine {
	if loc == nil {
		loc = time.Local
	}
	return &Engine{Now: time.Now, Location: loc}
}

// Generate places ranked tasks in order. Earlier tasks claim slots first.
// Completed tasks are ignored. A task that cannot be placed in full keeps
// whatever chunks fit and is reported through Result.Placements.
func (e *Engine) Generate(profile *domain.Profile, ranked []*domain.Task) Result {
	now := e.Now().In(e.Location)
	grid, rawFixed := BuildGrid(profile, now)

	var res Result
	for _, task := range ranked {
		if task.Completed {
			continue
		}
		plan := PlanChunks(task, profile)
		strategy := SelectStrategy(profile.IsProcrastinator, profile.ProcrastinatorType)

		deadline, err := task.DeadlineAt(e.Location)
		if err != nil {
			res.Placements = append(res.Placements, domain.TaskPlacement{
				TaskID:     task.ID,
				TaskName:   task.Name,
				Strategy:   strategy.Kind,
				ChunkCount: plan.ChunkCount,
				BufferMin:  plan.BufferMin,
				Skipped:    true,
			})
			continue
		}

		blocks, placement := PlaceTask(grid, PlaceInput{
			Task:     task,
			Profile:  profile,
			Plan:     plan,
			Strategy: strategy,
			Now:      now,
			Deadline: deadline,
		})
		res.Schedule = append(res.Schedule, blocks...)
		res.Placements = append(res.Placements, placement)
	}

	res.FixedBlocks = MergeFixedBlocks(rawFixed)
	return res
}
