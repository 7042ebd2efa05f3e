package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/estimator/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArchiveRepo_ArchiveTask_CopiesStoredRow(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	tasks := NewSQLiteTaskItemRepo(database)
	versions := NewSQLiteProjectVersionRepo(database)
	archive := NewSQLiteArchiveRepo(database)

	stored := testutil.NewTestTaskRow(4, 2, testutil.WithEstimate(45, 60, 90), testutil.WithProgress(10, 5))
	require.NoError(t, tasks.InsertOrReplace(ctx, stored))

	at := time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC)
	v, err := versions.Create(ctx, at)
	require.NoError(t, err)

	ok, err := archive.ArchiveTask(ctx, v.ID, 4, at)
	require.NoError(t, err)
	assert.True(t, ok)

	// The live row changes; the archive keeps the old values.
	updated := stored
	updated.PercentComplete = 80
	require.NoError(t, tasks.InsertOrReplace(ctx, updated))

	history, err := archive.ListByTask(ctx, 4)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, v.ID, history[0].ProjectVersionID)
	assert.Equal(t, stored, history[0].TaskRow)
	assert.True(t, at.Equal(history[0].ArchivedAt))
}

func TestArchiveRepo_ArchiveTask_NoStoredRow(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	versions := NewSQLiteProjectVersionRepo(database)
	archive := NewSQLiteArchiveRepo(database)

	v, err := versions.Create(ctx, time.Now())
	require.NoError(t, err)

	ok, err := archive.ArchiveTask(ctx, v.ID, 12, time.Now())
	require.NoError(t, err)
	assert.False(t, ok)

	rows, err := archive.ListByVersion(ctx, v.ID)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestArchiveRepo_ArchiveTask_RequiresVersion(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	tasks := NewSQLiteTaskItemRepo(database)
	archive := NewSQLiteArchiveRepo(database)

	require.NoError(t, tasks.InsertOrReplace(ctx, testutil.NewTestTaskRow(1, 0)))

	_, err := archive.ArchiveTask(ctx, 999, 1, time.Now())
	assert.Error(t, err)
}
