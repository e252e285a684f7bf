package service

import (
	"context"
	"errors"
	"time"

	"github.com/alexanderramin/planwise/internal/domain"
	"github.com/alexanderramin/planwise/internal/importer"
	"github.com/alexanderramin/planwise/internal/repository"
	"github.com/alexanderramin/planwise/internal/scheduler"
)

type exportService struct {
	profiles repository.ProfileRepo
	tasks    repository.TaskRepo
	goals    repository.GoalRepo
	schedule repository.ScheduleRepo
	loc      *time.Location
}

func NewExportService(
	profiles repository.ProfileRepo,
	tasks repository.TaskRepo,
	goals repository.GoalRepo,
	schedule repository.ScheduleRepo,
	loc *time.Location,
) ExportService {
	if loc == nil {
		loc = time.Local
	}
	return &exportService{profiles: profiles, tasks: tasks, goals: goals, schedule: schedule, loc: loc}
}

// Collect gathers everything stored. A missing profile is not an error.
func (s *exportService) Collect(ctx context.Context) (*ExportData, error) {
	data := &ExportData{}

	profile, err := s.profiles.Get(ctx)
	switch {
	case err == nil:
		data.Profile = profile
	case !errors.Is(err, repository.ErrNotFound):
		return nil, err
	}

	if data.Tasks, err = s.tasks.List(ctx, true); err != nil {
		return nil, err
	}
	var open []*domain.Task
	for _, t := range data.Tasks {
		if !t.Completed {
			open = append(open, t)
		}
	}
	data.Ranked = scheduler.RankTasks(open)

	blocks, err := s.schedule.ListBlocks(ctx)
	if err != nil {
		return nil, err
	}
	for _, b := range blocks {
		b.Start, b.End = b.Start.In(s.loc), b.End.In(s.loc)
		data.Schedule = append(data.Schedule, b)
	}
	fixed, err := s.schedule.ListFixed(ctx)
	if err != nil {
		return nil, err
	}
	for _, f := range fixed {
		f.Start, f.End = f.Start.In(s.loc), f.End.In(s.loc)
		data.FixedBlocks = append(data.FixedBlocks, f)
	}
	if data.Placements, err = s.schedule.ListPlacements(ctx); err != nil {
		return nil, err
	}
	if data.Goals, err = s.goals.List(ctx); err != nil {
		return nil, err
	}
	return data, nil
}

// State renders the stored data as a state document that ImportState reads
// back.
func (s *exportService) State(ctx context.Context) (*importer.State, error) {
	data, err := s.Collect(ctx)
	if err != nil {
		return nil, err
	}
	return importer.FromDomain(data.Profile, data.Tasks, data.Ranked, data.Schedule, data.FixedBlocks, data.Goals)
}
