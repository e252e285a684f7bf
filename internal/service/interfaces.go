package service

import (
	"context"
	"time"

	"github.com/alexanderramin/planwise/internal/domain"
	"github.com/alexanderramin/planwise/internal/importer"
)

type ProfileService interface {
	Get(ctx context.Context) (*domain.Profile, error)
	// Save normalizes and validates p before storing it.
	Save(ctx context.Context, p *domain.Profile) error
}

type TaskService interface {
	Create(ctx context.Context, t *domain.Task) error
	GetByID(ctx context.Context, id string) (*domain.Task, error)
	// Resolve finds a task by ID, unique ID prefix or case-insensitive name.
	Resolve(ctx context.Context, ref string) (*domain.Task, error)
	List(ctx context.Context, includeCompleted bool) ([]*domain.Task, error)
	// Ranked returns incomplete tasks in placement order.
	Ranked(ctx context.Context) ([]*domain.Task, error)
	Update(ctx context.Context, t *domain.Task) error
	MarkDone(ctx context.Context, id string) error
	// Delete removes the task together with its schedule blocks.
	Delete(ctx context.Context, id string) error
}

type GoalService interface {
	Create(ctx context.Context, name string) (*domain.Goal, error)
	List(ctx context.Context) ([]*domain.Goal, error)
	// Delete removes a goal by ID or name and moves its tasks back to the
	// default category. It returns the number of tasks moved.
	Delete(ctx context.Context, ref string) (int64, error)
}

// GenerateResult is the outcome of one schedule generation.
type GenerateResult struct {
	Ranked      []*domain.Task
	Schedule    []domain.ScheduleBlock
	FixedBlocks []domain.FixedBlock
	Placements  []domain.TaskPlacement
	GeneratedAt time.Time
}

// Partial returns the placements that could not be scheduled in full.
func (r *GenerateResult) Partial() []domain.TaskPlacement {
	var out []domain.TaskPlacement
	for _, p := range r.Placements {
		if !p.Complete() {
			out = append(out, p)
		}
	}
	return out
}

// Agenda is the stored schedule for a date range.
type Agenda struct {
	From        time.Time
	To          time.Time
	Blocks      []domain.ScheduleBlock
	FixedBlocks []domain.FixedBlock
	Placements  []domain.TaskPlacement
}

type ScheduleService interface {
	Generate(ctx context.Context) (*GenerateResult, error)
	// Agenda returns the stored schedule for [from, to). A zero range
	// returns everything.
	Agenda(ctx context.Context, from, to time.Time) (*Agenda, error)
	Move(ctx context.Context, blockID string, newStart time.Time) (*domain.ScheduleBlock, error)
	FocusDuration(ctx context.Context) (time.Duration, error)
}

// ImportResult holds the outcome of a state import.
type ImportResult struct {
	ProfileImported bool
	TaskCount       int
	GoalCount       int
	BlockCount      int
	FixedCount      int
	Migrations      []string
}

type ImportService interface {
	ImportState(ctx context.Context, filePath string) (*ImportResult, error)
	ImportStateDoc(ctx context.Context, state *importer.State) (*ImportResult, error)
}

// ExportData is everything the exporters render.
type ExportData struct {
	Profile     *domain.Profile
	Tasks       []*domain.Task
	Ranked      []*domain.Task
	Schedule    []domain.ScheduleBlock
	FixedBlocks []domain.FixedBlock
	Placements  []domain.TaskPlacement
	Goals       []*domain.Goal
}

type ExportService interface {
	Collect(ctx context.Context) (*ExportData, error)
	State(ctx context.Context) (*importer.State, error)
}

// SyncResult counts the calendar changes one sync made.
type SyncResult struct {
	Inserted int
	Updated  int
	Deleted  int
}

type SyncService interface {
	Sync(ctx context.Context, cal CalendarGateway) (*SyncResult, error)
}
