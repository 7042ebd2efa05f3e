package testutil

import (
	"context"
	"database/sql"
	"sync/atomic"

	"github.com/alexanderramin/estimator/internal/db"
)

// CountingUoW runs transactions like the SQLite unit of work and counts every
// ExecContext issued through them.
type CountingUoW struct {
	DB *sql.DB

	execs atomic.Int32
}

// Execs returns the number of writes issued so far.
func (u *CountingUoW) Execs() int { return int(u.execs.Load()) }

func (u *CountingUoW) WithinTx(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	return db.NewSQLiteUnitOfWork(u.DB).WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return fn(ctx, &countingExec{DBTX: tx, count: &u.execs})
	})
}

type countingExec struct {
	db.DBTX
	count *atomic.Int32
}

func (c *countingExec) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	c.count.Add(1)
	return c.DBTX.ExecContext(ctx, query, args...)
}
