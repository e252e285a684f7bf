package service

import (
	"context"
	"database/sql"
	"sync"
	"testing"
	"time"

	"github.com/alexanderramin/planwise/internal/db"
	"github.com/alexanderramin/planwise/internal/repository"
	"github.com/alexanderramin/planwise/internal/scheduler"
	"github.com/alexanderramin/planwise/internal/testutil"
)

// monday is 2025-06-16 06:00 UTC.
var monday = time.Date(2025, 6, 16, 6, 0, 0, 0, time.UTC)

func at(day, hour, minute int) time.Time {
	return time.Date(2025, 6, day, hour, minute, 0, 0, time.UTC)
}

type testEnv struct {
	db       *sql.DB
	uow      db.UnitOfWork
	profiles *repository.SQLiteProfileRepo
	tasks    *repository.SQLiteTaskRepo
	goals    *repository.SQLiteGoalRepo
	schedule *repository.SQLiteScheduleRepo
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	database := testutil.NewTestDB(t)
	return &testEnv{
		db:       database,
		uow:      testutil.NewTestUoW(database),
		profiles: repository.NewSQLiteProfileRepo(database),
		tasks:    repository.NewSQLiteTaskRepo(database),
		goals:    repository.NewSQLiteGoalRepo(database),
		schedule: repository.NewSQLiteScheduleRepo(database),
	}
}

func fixedEngine() *scheduler.Engine {
	e := scheduler.NewEngine(time.UTC)
	e.Now = func() time.Time { return monday }
	return e
}

type recordingObserver struct {
	mu     sync.Mutex
	events []UseCaseEvent
}

func (o *recordingObserver) ObserveUseCase(_ context.Context, event UseCaseEvent) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = append(o.events, event)
}

func (o *recordingObserver) last() UseCaseEvent {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.events[len(o.events)-1]
}
