package db_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/alexanderramin/estimator/internal/db"
	"github.com/alexanderramin/estimator/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUoW(t *testing.T) *db.SQLiteUnitOfWork {
	t.Helper()
	database, err := db.CreateDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	return db.NewSQLiteUnitOfWork(database)
}

const insertTask = `INSERT INTO TaskItem (TaskItemID, ItemDescription, EstimatedTimeMinutes,
	MinimumTimeMinutes, MaximumTimeMinutes, PercentageComplete, TimeSpentMinutes)
	VALUES (?, ?, 0, 0, 0, 0, 0)`

func taskExists(t *testing.T, uow *db.SQLiteUnitOfWork, id int) bool {
	t.Helper()
	var n int
	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		return tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM TaskItem WHERE TaskItemID = ?`, id).Scan(&n)
	})
	require.NoError(t, err)
	return n > 0
}

func TestWithinTx_CommitOnSuccess(t *testing.T) {
	uow := newUoW(t)

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		_, err := tx.ExecContext(ctx, insertTask, 1, "root")
		return err
	})
	require.NoError(t, err)
	assert.True(t, taskExists(t, uow, 1))
}

func TestWithinTx_RollbackOnError(t *testing.T) {
	uow := newUoW(t)

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		if _, err := tx.ExecContext(ctx, insertTask, 2, "child"); err != nil {
			return err
		}
		return fmt.Errorf("deliberate failure")
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "deliberate failure")
	assert.False(t, taskExists(t, uow, 2), "row should not exist after rollback")
}

func TestWithinTx_RollbackOnPanic(t *testing.T) {
	uow := newUoW(t)

	assert.Panics(t, func() {
		_ = uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
			_, _ = tx.ExecContext(ctx, insertTask, 3, "boom")
			panic("boom")
		})
	})
	assert.False(t, taskExists(t, uow, 3), "row should not exist after panic rollback")
}

func TestWithinTx_ClosedConnectionIsUnavailable(t *testing.T) {
	database, err := db.CreateDB(":memory:")
	require.NoError(t, err)
	uow := db.NewSQLiteUnitOfWork(database)
	require.NoError(t, database.Close())

	called := false
	err = uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
	assert.False(t, called)
}
