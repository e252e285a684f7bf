package scheduler

import (
	"testing"
	"time"

	"github.com/alexanderramin/planwise/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func placeInput(p *domain.Profile, task *domain.Task, now time.Time) PlaceInput {
	deadline, _ := task.DeadlineAt(time.UTC)
	return PlaceInput{
		Task:     task,
		Profile:  p,
		Plan:     PlanChunks(task, p),
		Strategy: SelectStrategy(p.IsProcrastinator, p.ProcrastinatorType),
		Now:      now,
		Deadline: deadline,
	}
}

func TestPlaceTask_SkipsPastSlotsToday(t *testing.T) {
	p := domain.NewProfile()
	task := &domain.Task{ID: "t1", Name: "Read", Priority: domain.PriorityUrgentImportant, Deadline: "2025-06-17", DurationHours: 0.5}
	now := time.Date(2025, 6, 16, 14, 10, 0, 0, time.UTC)
	grid, _ := BuildGrid(p, now)

	blocks, report := PlaceTask(grid, placeInput(p, task, now))

	require.Len(t, blocks, 1)
	assert.Equal(t, time.Date(2025, 6, 16, 14, 30, 0, 0, time.UTC), blocks[0].Start,
		"first productive slot after now")
	assert.Equal(t, 1, report.ChunksScheduled)
}

func TestPlaceTask_EmptyGridSkipsTask(t *testing.T) {
	p := domain.NewProfile()
	task := &domain.Task{ID: "t1", Name: "Read", Priority: domain.PriorityUrgentImportant, Deadline: "2025-06-17", DurationHours: 0.5}

	blocks, report := PlaceTask(nil, placeInput(p, task, monday))

	assert.Empty(t, blocks)
	assert.True(t, report.Skipped)
}

func TestPlaceTask_ChunkNeverCrossesUnalignedCommitment(t *testing.T) {
	p := domain.NewProfile()
	p.WorkStyle = domain.WorkStyleLongSessions
	p.WeeklySchedule["Mon"] = []domain.Commitment{domain.NewCommitment("Call", "10:15-10:45", "")}
	task := &domain.Task{ID: "t1", Name: "Write", Priority: domain.PriorityUrgentImportant, Deadline: "2025-06-17", DurationHours: 1}
	grid, _ := BuildGrid(p, monday)

	blocks, _ := PlaceTask(grid, placeInput(p, task, monday))

	require.Len(t, blocks, 1)
	call := domain.FixedBlock{
		Start: time.Date(2025, 6, 16, 10, 15, 0, 0, time.UTC),
		End:   time.Date(2025, 6, 16, 10, 45, 0, 0, time.UTC),
	}
	assert.False(t, call.Overlaps(blocks[0].Start, blocks[0].End))
	assert.Equal(t, time.Date(2025, 6, 16, 9, 0, 0, 0, time.UTC), blocks[0].Start)
}

func TestPlaceTask_LongChunkNeedsEveryCoveredSlot(t *testing.T) {
	p := domain.NewProfile()
	p.WorkStyle = domain.WorkStyleLongSessions
	p.ProductiveTime = domain.ProductiveMorning
	p.WeeklySchedule["Mon"] = []domain.Commitment{domain.NewCommitment("Gym", "09:30-10:00; 11:00-11:30", "")}
	task := &domain.Task{ID: "t1", Name: "Deep work", Priority: domain.PriorityUrgentImportant, Deadline: "2025-06-17", DurationHours: 1}
	grid, _ := BuildGrid(p, monday)

	blocks, _ := PlaceTask(grid, placeInput(p, task, monday))

	require.Len(t, blocks, 1)
	assert.Equal(t, time.Date(2025, 6, 16, 10, 0, 0, 0, time.UTC), blocks[0].Start,
		"09:00 would run into the 09:30 gym slot")
	assert.Equal(t, time.Hour, blocks[0].Duration())
}

func TestPlaceTask_ReservesShortBreakAfterChunk(t *testing.T) {
	p := domain.NewProfile()
	p.WorkStyle = domain.WorkStyleLongSessions
	task := &domain.Task{ID: "t1", Name: "Project", Priority: domain.PriorityUrgentImportant, Deadline: "2025-06-17", DurationHours: 2}
	grid, _ := BuildGrid(p, monday)

	blocks, report := PlaceTask(grid, placeInput(p, task, monday))

	require.Len(t, blocks, 2)
	assert.Equal(t, 2, report.ChunksScheduled)
	assert.Equal(t, time.Date(2025, 6, 16, 9, 0, 0, 0, time.UTC), blocks[0].Start)
	assert.Equal(t, time.Date(2025, 6, 16, 10, 30, 0, 0, time.UTC), blocks[1].Start,
		"the 10:00 slot holds the 10 minute break")
	assert.False(t, slotAt(t, grid[0], "10:00").Available)
}

func TestPlaceTask_LongBreakNotReserved(t *testing.T) {
	p := domain.NewProfile()
	p.StudyMethod = "30 min work then a 20 min break"
	task := &domain.Task{ID: "t1", Name: "Flashcards", Priority: domain.PriorityUrgentImportant, Deadline: "2025-06-17", DurationHours: 1}
	grid, _ := BuildGrid(p, monday)

	in := placeInput(p, task, monday)
	require.Equal(t, 20, in.Plan.BreakMin)
	blocks, _ := PlaceTask(grid, in)

	require.Len(t, blocks, 2)
	assert.Equal(t, time.Date(2025, 6, 16, 9, 0, 0, 0, time.UTC), blocks[0].Start)
	assert.Equal(t, time.Date(2025, 6, 16, 10, 0, 0, 0, time.UTC), blocks[1].Start,
		"09:30 is too soon after 09:30 + 20 minutes")
	assert.True(t, slotAt(t, grid[0], "09:30").Available, "a 20 minute break does not block the grid")
}

func TestPlaceTask_EarlierTasksClaimSlotsFirst(t *testing.T) {
	p := domain.NewProfile()
	p.ProductiveTime = domain.ProductiveMorning
	first := &domain.Task{ID: "a", Name: "First", Priority: domain.PriorityUrgentImportant, Deadline: "2025-06-17", DurationHours: 1}
	second := &domain.Task{ID: "b", Name: "Second", Priority: domain.PriorityUrgentImportant, Deadline: "2025-06-17", DurationHours: 1}
	grid, _ := BuildGrid(p, monday)

	a, _ := PlaceTask(grid, placeInput(p, first, monday))
	b, _ := PlaceTask(grid, placeInput(p, second, monday))

	require.Len(t, a, 2)
	require.Len(t, b, 2)
	assert.Equal(t, 9, a[0].Start.Hour())
	assert.Equal(t, time.Date(2025, 6, 16, 10, 0, 0, 0, time.UTC), b[0].Start)
	assert.Equal(t, time.Date(2025, 6, 16, 10, 30, 0, 0, time.UTC), b[1].Start)
}

func TestPlaceTask_ReportsDeficitWhenDayIsFull(t *testing.T) {
	p := domain.NewProfile()
	for _, d := range domain.Weekdays {
		p.WeeklySchedule[d] = []domain.Commitment{domain.NewCommitment("Shift", "06:00-23:00", "")}
	}
	task := &domain.Task{ID: "t1", Name: "Report", Priority: domain.PriorityUrgentImportant, Deadline: "2025-06-17", DurationHours: 3}
	grid, _ := BuildGrid(p, monday)

	blocks, report := PlaceTask(grid, placeInput(p, task, monday))

	assert.Len(t, blocks, 2, "only 23:00 and 23:30 are free on Monday")
	assert.Equal(t, 6, report.ChunkCount)
	assert.Equal(t, 2, report.ChunksScheduled)
	assert.Equal(t, 4, report.Deficit())
	assert.False(t, report.Skipped)
}

func TestRankCandidates_StableOnTies(t *testing.T) {
	p := domain.NewProfile()
	task := &domain.Task{ID: "t1", Name: "Read", Priority: domain.PriorityNotUrgentNotImportant, Deadline: "2025-06-20", DurationHours: 1}
	grid, _ := BuildGrid(p, monday)
	in := placeInput(p, task, monday)
	latest := in.Deadline.Add(-30 * time.Minute)

	candidates := RankCandidates(&grid[0], in, latest, grid[0].Date)

	require.NotEmpty(t, candidates)
	assert.Equal(t, 9*60, grid[0].Slots[candidates[0].Index].StartMin, "productive window first")
	for i := 1; i < len(candidates); i++ {
		if candidates[i].Score == candidates[i-1].Score {
			assert.Less(t, candidates[i-1].Index, candidates[i].Index, "ties keep grid order")
		}
	}
}
