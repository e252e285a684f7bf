package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alexanderramin/planwise/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errDiskFull = errors.New("disk full")

func TestScheduleService_FailedGenerateKeepsPreviousSchedule(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	seedMorningEssay(t, env)

	first, err := NewScheduleService(env.profiles, env.tasks, env.schedule, env.uow, fixedEngine(), nil).Generate(ctx)
	require.NoError(t, err)
	require.Len(t, first.Schedule, 4)

	require.NoError(t, env.tasks.Create(ctx, testutil.NewTestTask("Report", testutil.WithDeadline("2025-06-20"))))

	failing := &testutil.FailingExecUoW{DB: env.db, Match: "INSERT INTO placements", Err: errDiskFull}
	svc := NewScheduleService(env.profiles, env.tasks, env.schedule, failing, fixedEngine(), nil)
	_, err = svc.Generate(ctx)
	require.ErrorIs(t, err, errDiskFull)
	assert.Equal(t, 1, failing.Hits)

	agenda, err := svc.Agenda(ctx, time.Time{}, time.Time{})
	require.NoError(t, err)
	assert.Equal(t, first.Schedule, agenda.Blocks)
	require.Len(t, agenda.Placements, 1)
	assert.Equal(t, "Essay", agenda.Placements[0].TaskName)
}

func TestTaskService_FailedDeleteKeepsBlocks(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	essay := seedMorningEssay(t, env)
	_, err := NewScheduleService(env.profiles, env.tasks, env.schedule, env.uow, fixedEngine(), nil).Generate(ctx)
	require.NoError(t, err)

	failing := &testutil.FailingExecUoW{DB: env.db, Match: "DELETE FROM tasks", Err: errDiskFull}
	err = NewTaskService(env.tasks, failing).Delete(ctx, essay.ID)
	require.ErrorIs(t, err, errDiskFull)

	_, err = env.tasks.GetByID(ctx, essay.ID)
	require.NoError(t, err)
	blocks, err := env.schedule.ListBlocks(ctx)
	require.NoError(t, err)
	assert.Len(t, blocks, 4, "block deletion must roll back with the task")
}

func TestImportService_FailedImportStoresNothing(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	failing := &testutil.FailingExecUoW{DB: env.db, Match: "INSERT INTO goals", Err: errDiskFull}
	_, err := NewImportService(failing, time.UTC).ImportState(ctx, writeStateFile(t, legacyStateJSON))
	require.ErrorIs(t, err, errDiskFull)

	_, err = env.profiles.Get(ctx)
	assert.Error(t, err, "profile must not survive the rollback")
	tasks, err := env.tasks.List(ctx, true)
	require.NoError(t, err)
	assert.Empty(t, tasks)
}
