package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/planwise/internal/db"
	"github.com/alexanderramin/planwise/internal/importer"
	"github.com/alexanderramin/planwise/internal/repository"
)

type importService struct {
	uow      db.UnitOfWork
	loc      *time.Location
	observer UseCaseObserver
}

// NewImportService creates an ImportService. Every import runs in a single
// transaction; loc is the zone block timestamps are read into.
func NewImportService(uow db.UnitOfWork, loc *time.Location, observers ...UseCaseObserver) ImportService {
	if loc == nil {
		loc = time.Local
	}
	return &importService{uow: uow, loc: loc, observer: useCaseObserverOrNoop(observers)}
}

func (s *importService) ImportState(ctx context.Context, filePath string) (*ImportResult, error) {
	state, err := importer.LoadState(filePath)
	if err != nil {
		return nil, fmt.Errorf("loading import file: %w", err)
	}
	return s.ImportStateDoc(ctx, state)
}

func (s *importService) ImportStateDoc(ctx context.Context, state *importer.State) (res *ImportResult, err error) {
	startedAt := time.Now()
	fields := map[string]any{}
	defer observe(ctx, s.observer, "import.state", startedAt, fields, &err)

	notes, err := importer.MigrateLegacy(state)
	if err != nil {
		return nil, fmt.Errorf("migrating import file: %w", err)
	}
	if errs := importer.ValidateState(state); len(errs) > 0 {
		return nil, formatValidationErrors(errs)
	}
	bundle, err := importer.Convert(state, s.loc)
	if err != nil {
		return nil, fmt.Errorf("converting import file: %w", err)
	}

	res = &ImportResult{Migrations: notes}
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return s.persist(ctx, tx, bundle, res)
	})
	if err != nil {
		return nil, err
	}
	fields["tasks"] = res.TaskCount
	fields["goals"] = res.GoalCount
	fields["blocks"] = res.BlockCount
	fields["migrations"] = len(res.Migrations)
	return res, nil
}

// persist upserts tasks by ID and skips goals whose ID or name is already
// taken.
// The stored schedule is replaced only when the document carries one.
func (s *importService) persist(ctx context.Context, tx db.DBTX, b *importer.Bundle, res *ImportResult) error {
	if b.Profile != nil {
		if err := repository.NewSQLiteProfileRepo(tx).Upsert(ctx, b.Profile); err != nil {
			return fmt.Errorf("saving profile: %w", err)
		}
		res.ProfileImported = true
	}

	tasks := repository.NewSQLiteTaskRepo(tx)
	known := make(map[string]bool, len(b.Tasks))
	for _, t := range b.Tasks {
		_, err := tasks.GetByID(ctx, t.ID)
		switch {
		case err == nil:
			err = tasks.Update(ctx, t)
		case errors.Is(err, repository.ErrNotFound):
			err = tasks.Create(ctx, t)
		}
		if err != nil {
			return fmt.Errorf("saving task %q: %w", t.Name, err)
		}
		known[t.ID] = true
		res.TaskCount++
	}

	goals := repository.NewSQLiteGoalRepo(tx)
	for _, g := range b.Goals {
		if _, err := goals.GetByID(ctx, g.ID); err == nil {
			continue
		}
		_, err := goals.GetByName(ctx, g.Name)
		if err == nil {
			continue
		}
		if !errors.Is(err, repository.ErrNotFound) {
			return err
		}
		if err := goals.Create(ctx, g); err != nil {
			return fmt.Errorf("creating goal %q: %w", g.Name, err)
		}
		res.GoalCount++
	}

	if len(b.Schedule) == 0 && len(b.FixedBlocks) == 0 {
		return nil
	}
	snap := repository.Snapshot{FixedBlocks: b.FixedBlocks, GeneratedAt: time.Now().UTC()}
	for _, blk := range b.Schedule {
		if !known[blk.TaskID] {
			if _, err := tasks.GetByID(ctx, blk.TaskID); err != nil {
				continue
			}
		}
		snap.Blocks = append(snap.Blocks, blk)
	}
	if err := repository.NewSQLiteScheduleRepo(tx).Replace(ctx, snap); err != nil {
		return fmt.Errorf("saving schedule: %w", err)
	}
	res.BlockCount = len(snap.Blocks)
	res.FixedCount = len(snap.FixedBlocks)
	return nil
}
