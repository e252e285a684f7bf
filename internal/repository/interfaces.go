package repository

import (
	"context"
	"time"

	"github.com/alexanderramin/planwise/internal/domain"
)

type ProfileRepo interface {
	Get(ctx context.Context) (*domain.Profile, error)
	Upsert(ctx context.Context, p *domain.Profile) error
}

type TaskRepo interface {
	Create(ctx context.Context, t *domain.Task) error
	GetByID(ctx context.Context, id string) (*domain.Task, error)
	// List returns tasks in insertion order.
	List(ctx context.Context, includeCompleted bool) ([]*domain.Task, error)
	Update(ctx context.Context, t *domain.Task) error
	Delete(ctx context.Context, id string) error
	ReassignCategory(ctx context.Context, from, to string) (int64, error)
}

type GoalRepo interface {
	Create(ctx context.Context, g *domain.Goal) error
	GetByID(ctx context.Context, id string) (*domain.Goal, error)
	GetByName(ctx context.Context, name string) (*domain.Goal, error)
	List(ctx context.Context) ([]*domain.Goal, error)
	Delete(ctx context.Context, id string) error
}

// Snapshot is everything one engine run persists.
type Snapshot struct {
	Blocks      []domain.ScheduleBlock
	FixedBlocks []domain.FixedBlock
	Placements  []domain.TaskPlacement
	GeneratedAt time.Time
}

type ScheduleRepo interface {
	// Replace drops the stored schedule and writes snap in its place.
	Replace(ctx context.Context, snap Snapshot) error
	ListBlocks(ctx context.Context) ([]domain.ScheduleBlock, error)
	ListBlocksBetween(ctx context.Context, from, to time.Time) ([]domain.ScheduleBlock, error)
	ListFixed(ctx context.Context) ([]domain.FixedBlock, error)
	ListPlacements(ctx context.Context) ([]domain.TaskPlacement, error)
	GetBlock(ctx context.Context, id string) (*domain.ScheduleBlock, error)
	UpdateBlock(ctx context.Context, b *domain.ScheduleBlock) error
	// DeleteForTask removes the task's blocks and placement report.
	DeleteForTask(ctx context.Context, taskID string) error
}
