package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/planwise/internal/db"
	"github.com/alexanderramin/planwise/internal/domain"
	"github.com/alexanderramin/planwise/internal/repository"
	"github.com/google/uuid"
)

type goalService struct {
	goals repository.GoalRepo
	uow   db.UnitOfWork
}

func NewGoalService(goals repository.GoalRepo, uow db.UnitOfWork) GoalService {
	return &goalService{goals: goals, uow: uow}
}

// Create picks the next palette color based on how many goals exist.
func (s *goalService) Create(ctx context.Context, name string) (*domain.Goal, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.New("goal name is required")
	}
	if _, err := s.goals.GetByName(ctx, name); err == nil {
		return nil, fmt.Errorf("%w: %q", ErrGoalExists, name)
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	existing, err := s.goals.List(ctx)
	if err != nil {
		return nil, err
	}
	g := &domain.Goal{
		ID:        uuid.New().String(),
		Name:      name,
		Color:     domain.GoalPalette[len(existing)%len(domain.GoalPalette)],
		CreatedAt: time.Now().UTC(),
	}
	if err := s.goals.Create(ctx, g); err != nil {
		return nil, err
	}
	return g, nil
}

func (s *goalService) List(ctx context.Context) ([]*domain.Goal, error) {
	return s.goals.List(ctx)
}

func (s *goalService) Delete(ctx context.Context, ref string) (int64, error) {
	ref = strings.TrimSpace(ref)
	var moved int64
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txGoals := repository.NewSQLiteGoalRepo(tx)
		g, err := txGoals.GetByID(ctx, ref)
		if errors.Is(err, repository.ErrNotFound) {
			g, err = txGoals.GetByName(ctx, ref)
		}
		if err != nil {
			return mapNotFound(err, ErrGoalNotFound)
		}

		if err := txGoals.Delete(ctx, g.ID); err != nil {
			return mapNotFound(err, ErrGoalNotFound)
		}
		moved, err = repository.NewSQLiteTaskRepo(tx).ReassignCategory(ctx, g.Slug(), domain.DefaultCategory)
		return err
	})
	if err != nil {
		return 0, err
	}
	return moved, nil
}
