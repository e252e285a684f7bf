package domain

import "time"

// ScheduleBlock is one placed work chunk of a task.
type ScheduleBlock struct {
	ID        string
	TaskID    string
	TaskName  string
	Priority  Priority
	Category  string
	Start     time.Time
	End       time.Time
	IsWeekend bool
}

func (b ScheduleBlock) Kind() string { return "task" }

func (b ScheduleBlock) Duration() time.Duration {
	return b.End.Sub(b.Start)
}

// Overlaps reports whether [start, end) intersects the block.
func (b ScheduleBlock) Overlaps(start, end time.Time) bool {
	return start.Before(b.End) && b.Start.Before(end)
}

// FixedBlock is time occupied by a commitment, a break or a weekend activity.
type FixedBlock struct {
	ID       string
	Label    string
	Category FixedCategory
	Start    time.Time
	End      time.Time
}

func (b FixedBlock) Kind() string { return "fixed" }

func (b FixedBlock) Overlaps(start, end time.Time) bool {
	return start.Before(b.End) && b.Start.Before(end)
}

// TaskPlacement reports how much of a task the engine managed to place.
type TaskPlacement struct {
	TaskID          string
	TaskName        string
	Strategy        StrategyKind
	ChunkSizeMin    int
	BreakMin        int
	BufferMin       int
	ChunkCount      int
	ChunksScheduled int
	Skipped         bool
}

// Deficit is the number of chunks that could not be placed.
func (p TaskPlacement) Deficit() int {
	return p.ChunkCount - p.ChunksScheduled
}

func (p TaskPlacement) Complete() bool {
	return p.ChunksScheduled >= p.ChunkCount
}
