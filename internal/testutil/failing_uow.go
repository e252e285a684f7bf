package testutil

import (
	"context"
	"database/sql"
	"strings"

	"github.com/alexanderramin/planwise/internal/db"
)

// FailingExecUoW runs transactions like the real unit of work, except that
// the first write whose SQL contains Match returns Err instead of running.
// Reads are never intercepted.
type FailingExecUoW struct {
	DB    *sql.DB
	Match string
	Err   error

	// Hits counts the writes that were refused.
	Hits int
}

func (u *FailingExecUoW) WithinTx(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	inner := db.NewSQLiteUnitOfWork(u.DB)
	return inner.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return fn(ctx, &failingExec{DBTX: tx, uow: u})
	})
}

type failingExec struct {
	db.DBTX
	uow     *FailingExecUoW
	tripped bool
}

func (f *failingExec) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	if !f.tripped && strings.Contains(query, f.uow.Match) {
		f.tripped = true
		f.uow.Hits++
		return nil, f.uow.Err
	}
	return f.DBTX.ExecContext(ctx, query, args...)
}
