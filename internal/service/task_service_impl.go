package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/planwise/internal/db"
	"github.com/alexanderramin/planwise/internal/domain"
	"github.com/alexanderramin/planwise/internal/repository"
	"github.com/alexanderramin/planwise/internal/scheduler"
	"github.com/google/uuid"
)

// minPrefixLen is the shortest ID prefix Resolve accepts.
const minPrefixLen = 4

type taskService struct {
	tasks repository.TaskRepo
	uow   db.UnitOfWork
}

func NewTaskService(tasks repository.TaskRepo, uow db.UnitOfWork) TaskService {
	return &taskService{tasks: tasks, uow: uow}
}

func (s *taskService) Create(ctx context.Context, t *domain.Task) error {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	t.Name = strings.TrimSpace(t.Name)
	t.Category = t.EffectiveCategory()
	t.DeadlineTime = t.EffectiveDeadlineTime()
	if err := t.Validate(); err != nil {
		return err
	}
	now := time.Now().UTC()
	t.CreatedAt = now
	t.UpdatedAt = now
	return s.tasks.Create(ctx, t)
}

func (s *taskService) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	t, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err, ErrTaskNotFound)
	}
	return t, nil
}

func (s *taskService) Resolve(ctx context.Context, ref string) (*domain.Task, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, fmt.Errorf("%w: empty reference", ErrTaskNotFound)
	}
	all, err := s.tasks.List(ctx, true)
	if err != nil {
		return nil, err
	}

	for _, t := range all {
		if t.ID == ref {
			return t, nil
		}
	}

	var matches []*domain.Task
	if len(ref) >= minPrefixLen {
		for _, t := range all {
			if strings.HasPrefix(t.ID, ref) {
				matches = append(matches, t)
			}
		}
	}
	if len(matches) == 0 {
		for _, t := range all {
			if strings.EqualFold(t.Name, ref) {
				matches = append(matches, t)
			}
		}
	}

	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("%w: %q", ErrTaskNotFound, ref)
	case 1:
		return matches[0], nil
	default:
		return nil, fmt.Errorf("%w: %q matches %d tasks", ErrAmbiguousTask, ref, len(matches))
	}
}

func (s *taskService) List(ctx context.Context, includeCompleted bool) ([]*domain.Task, error) {
	return s.tasks.List(ctx, includeCompleted)
}

func (s *taskService) Ranked(ctx context.Context) ([]*domain.Task, error) {
	tasks, err := s.tasks.List(ctx, false)
	if err != nil {
		return nil, err
	}
	return scheduler.RankTasks(tasks), nil
}

// Update keeps the task's ID and creation time.
func (s *taskService) Update(ctx context.Context, t *domain.Task) error {
	t.Name = strings.TrimSpace(t.Name)
	t.Category = t.EffectiveCategory()
	t.DeadlineTime = t.EffectiveDeadlineTime()
	if err := t.Validate(); err != nil {
		return err
	}
	t.UpdatedAt = time.Now().UTC()
	if err := s.tasks.Update(ctx, t); err != nil {
		return mapNotFound(err, ErrTaskNotFound)
	}
	return nil
}

func (s *taskService) MarkDone(ctx context.Context, id string) error {
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txTasks := repository.NewSQLiteTaskRepo(tx)
		t, err := txTasks.GetByID(ctx, id)
		if err != nil {
			return mapNotFound(err, ErrTaskNotFound)
		}
		t.Completed = true
		t.UpdatedAt = time.Now().UTC()
		return txTasks.Update(ctx, t)
	})
}

func (s *taskService) Delete(ctx context.Context, id string) error {
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if err := repository.NewSQLiteScheduleRepo(tx).DeleteForTask(ctx, id); err != nil {
			return err
		}
		if err := repository.NewSQLiteTaskRepo(tx).Delete(ctx, id); err != nil {
			return mapNotFound(err, ErrTaskNotFound)
		}
		return nil
	})
}
