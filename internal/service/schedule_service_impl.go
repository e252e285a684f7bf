package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/planwise/internal/db"
	"github.com/alexanderramin/planwise/internal/domain"
	"github.com/alexanderramin/planwise/internal/logger"
	"github.com/alexanderramin/planwise/internal/repository"
	"github.com/alexanderramin/planwise/internal/scheduler"
	"github.com/charmbracelet/log"
)

type scheduleService struct {
	profiles repository.ProfileRepo
	tasks    repository.TaskRepo
	schedule repository.ScheduleRepo
	uow      db.UnitOfWork
	engine   *scheduler.Engine
	log      *log.Logger
	observer UseCaseObserver
}

func NewScheduleService(
	profiles repository.ProfileRepo,
	tasks repository.TaskRepo,
	schedule repository.ScheduleRepo,
	uow db.UnitOfWork,
	engine *scheduler.Engine,
	lg *log.Logger,
	observers ...UseCaseObserver,
) ScheduleService {
	if lg == nil {
		lg = logger.Discard()
	}
	return &scheduleService{
		profiles: profiles,
		tasks:    tasks,
		schedule: schedule,
		uow:      uow,
		engine:   engine,
		log:      lg,
		observer: useCaseObserverOrNoop(observers),
	}
}

// Generate rebuilds the whole schedule from the stored profile and the
// incomplete tasks, replacing what was stored before.
func (s *scheduleService) Generate(ctx context.Context) (res *GenerateResult, err error) {
	startedAt := time.Now()
	fields := map[string]any{}
	defer observe(ctx, s.observer, "schedule.generate", startedAt, fields, &err)

	profile, err := s.profiles.Get(ctx)
	if err != nil {
		return nil, mapNotFound(err, ErrProfileNotFound)
	}
	tasks, err := s.tasks.List(ctx, false)
	if err != nil {
		return nil, err
	}

	ranked := scheduler.RankTasks(tasks)
	out := s.engine.Generate(profile, ranked)
	snap := repository.Snapshot{
		Blocks:      out.Schedule,
		FixedBlocks: out.FixedBlocks,
		Placements:  out.Placements,
		GeneratedAt: s.engine.Now().UTC(),
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return repository.NewSQLiteScheduleRepo(tx).Replace(ctx, snap)
	})
	if err != nil {
		return nil, fmt.Errorf("saving schedule: %w", err)
	}

	res = &GenerateResult{
		Ranked:      ranked,
		Schedule:    snap.Blocks,
		FixedBlocks: snap.FixedBlocks,
		Placements:  snap.Placements,
		GeneratedAt: snap.GeneratedAt,
	}
	for _, p := range res.Partial() {
		s.log.Warn("task not fully scheduled",
			"task", p.TaskName,
			"scheduled", fmt.Sprintf("%d/%d", p.ChunksScheduled, p.ChunkCount),
			"skipped", p.Skipped)
	}
	fields["tasks"] = len(ranked)
	fields["blocks"] = len(res.Schedule)
	fields["partial"] = len(res.Partial())
	return res, nil
}

func (s *scheduleService) Agenda(ctx context.Context, from, to time.Time) (*Agenda, error) {
	var (
		blocks []domain.ScheduleBlock
		err    error
	)
	if from.IsZero() && to.IsZero() {
		blocks, err = s.schedule.ListBlocks(ctx)
	} else {
		blocks, err = s.schedule.ListBlocksBetween(ctx, from, to)
	}
	if err != nil {
		return nil, err
	}
	fixed, err := s.schedule.ListFixed(ctx)
	if err != nil {
		return nil, err
	}
	placements, err := s.schedule.ListPlacements(ctx)
	if err != nil {
		return nil, err
	}

	loc := s.engine.Location
	agenda := &Agenda{From: from, To: to, Placements: placements}
	for _, b := range blocks {
		b.Start, b.End = b.Start.In(loc), b.End.In(loc)
		agenda.Blocks = append(agenda.Blocks, b)
	}
	for _, f := range fixed {
		if !from.IsZero() && !to.IsZero() && !f.Overlaps(from, to) {
			continue
		}
		f.Start, f.End = f.Start.In(loc), f.End.In(loc)
		agenda.FixedBlocks = append(agenda.FixedBlocks, f)
	}
	return agenda, nil
}

// Move shifts a stored block to newStart, keeping its length. The move is
// rejected when it overlaps a fixed block or another task block, or when it
// would end after the task's deadline.
func (s *scheduleService) Move(ctx context.Context, blockID string, newStart time.Time) (moved *domain.ScheduleBlock, err error) {
	startedAt := time.Now()
	defer observe(ctx, s.observer, "schedule.move", startedAt, map[string]any{"block_id": blockID}, &err)

	loc := s.engine.Location
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txSchedule := repository.NewSQLiteScheduleRepo(tx)
		block, err := txSchedule.GetBlock(ctx, blockID)
		if err != nil {
			return mapNotFound(err, ErrBlockNotFound)
		}
		task, err := repository.NewSQLiteTaskRepo(tx).GetByID(ctx, block.TaskID)
		if err != nil {
			return mapNotFound(err, ErrTaskNotFound)
		}
		deadline, err := task.DeadlineAt(loc)
		if err != nil {
			return err
		}
		blocks, err := txSchedule.ListBlocks(ctx)
		if err != nil {
			return err
		}
		fixed, err := txSchedule.ListFixed(ctx)
		if err != nil {
			return err
		}

		next, err := scheduler.CheckMove(*block, newStart.In(loc), blocks, fixed, deadline)
		if err != nil {
			return err
		}
		if err := txSchedule.UpdateBlock(ctx, &next); err != nil {
			return mapNotFound(err, ErrBlockNotFound)
		}
		next.Start, next.End = next.Start.In(loc), next.End.In(loc)
		moved = &next
		return nil
	})
	if err != nil {
		return nil, err
	}
	return moved, nil
}

func (s *scheduleService) FocusDuration(ctx context.Context) (time.Duration, error) {
	profile, err := s.profiles.Get(ctx)
	if err != nil {
		return 0, mapNotFound(err, ErrProfileNotFound)
	}
	return scheduler.FocusDuration(profile), nil
}
