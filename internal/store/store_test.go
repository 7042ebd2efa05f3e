package store

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alexanderramin/estimator/internal/db"
	"github.com/alexanderramin/estimator/internal/domain"
	"github.com/alexanderramin/estimator/internal/model"
	"github.com/alexanderramin/estimator/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC)

func createTestStore(t *testing.T) (model.Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "project.estimate")
	s, err := NewOpener(WithClock(func() time.Time { return fixedNow })).Create(context.Background(), path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s, path
}

func TestOpener_CreateSeedsMetadataWithoutVersion(t *testing.T) {
	s, _ := createTestStore(t)
	ctx := context.Background()

	meta, err := s.Metadata(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.SchemaVersion, meta.SchemaVersion)
	assert.Equal(t, domain.DefaultMinutesPerWorkDay, meta.MinutesPerWorkDay)
	assert.True(t, fixedNow.Equal(meta.LastUpdate))

	versions, err := s.ProjectVersions(ctx)
	require.NoError(t, err)
	assert.Empty(t, versions)
}

func TestOpener_OpenExisting(t *testing.T) {
	s, path := createTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.InsertTask(ctx, testutil.NewTestTaskRow(1, 0)))
	require.NoError(t, s.Close())

	reopened, err := NewOpener().Open(ctx, path)
	require.NoError(t, err)
	defer reopened.Close()

	rows, err := reopened.ActiveTasks(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, path, reopened.Path())
}

func TestOpener_OpenMissingFile(t *testing.T) {
	_, err := NewOpener().Open(context.Background(), filepath.Join(t.TempDir(), "absent.estimate"))
	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
}

func TestOpener_OpenRejectsOtherSchemaVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "future.estimate")
	conn, err := db.CreateDB(path)
	require.NoError(t, err)
	_, err = conn.Exec(`INSERT INTO ProjectMetaData (ProjectMetaDataID, IntegralValue) VALUES (1, 2)`)
	require.NoError(t, err)
	_, err = conn.Exec(`INSERT INTO ProjectMetaData (ProjectMetaDataID, DateTimeValue) VALUES (2, '2026-01-01T00:00:00Z')`)
	require.NoError(t, err)
	require.NoError(t, conn.Close())

	_, err = NewOpener().Open(context.Background(), path)
	assert.ErrorIs(t, err, domain.ErrSchemaVersionMismatch)
}

func TestOpener_OpenRejectsMissingMetadata(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bare.estimate")
	conn, err := db.CreateDB(path)
	require.NoError(t, err)
	require.NoError(t, conn.Close())

	_, err = NewOpener().Open(context.Background(), path)
	assert.ErrorIs(t, err, domain.ErrMissingMetadata)
}

func TestOpener_OpenRejectsNonProjectFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("plain text, not a project"), 0644))

	_, err := NewOpener().Open(context.Background(), path)
	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
}

func TestStore_UpsertArchivesStoredRowFirst(t *testing.T) {
	s, _ := createTestStore(t)
	ctx := context.Background()

	original := testutil.NewTestTaskRow(1, 0, testutil.WithDescription("before"))
	require.NoError(t, s.InsertTask(ctx, original))

	v, err := s.CreateVersion(ctx, fixedNow)
	require.NoError(t, err)
	updated := original
	updated.Description = "after"
	require.NoError(t, s.UpsertTask(ctx, v.ID, updated, fixedNow))

	rows, err := s.ActiveTasks(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "after", rows[0].Description)

	history, err := s.TaskHistory(ctx, 1)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "before", history[0].Description)
	assert.Equal(t, v.ID, history[0].ProjectVersionID)
}

func TestStore_SoftDelete(t *testing.T) {
	s, _ := createTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.InsertTask(ctx, testutil.NewTestTaskRow(1, 0)))
	require.NoError(t, s.InsertTask(ctx, testutil.NewTestTaskRow(2, 1)))

	v, err := s.CreateVersion(ctx, fixedNow)
	require.NoError(t, err)
	found, err := s.SoftDeleteTask(ctx, v.ID, 2, fixedNow)
	require.NoError(t, err)
	assert.True(t, found)

	rows, err := s.ActiveTasks(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	history, err := s.TaskHistory(ctx, 2)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.False(t, history[0].IsDeleted)

	max, err := s.MaxTaskID(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, max)
}

func TestStore_SoftDeleteUnsavedTaskReportsNotFound(t *testing.T) {
	s, _ := createTestStore(t)
	ctx := context.Background()

	v, err := s.CreateVersion(ctx, fixedNow)
	require.NoError(t, err)
	found, err := s.SoftDeleteTask(ctx, v.ID, 9, fixedNow)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestStore_WorkDays(t *testing.T) {
	s, _ := createTestStore(t)
	ctx := context.Background()

	id, err := s.AppendWorkDay(ctx, domain.WorkDay{Date: fixedNow, Snapshot: domain.SnapshotNotRecorded})
	require.NoError(t, err)
	require.NoError(t, s.UpdateWorkDay(ctx, domain.WorkDay{ID: id, Snapshot: 35}))

	days, err := s.WorkDays(ctx)
	require.NoError(t, err)
	require.Len(t, days, 1)
	assert.Equal(t, 35, days[0].Snapshot)
	assert.Equal(t, "2026-06-01", days[0].Date.Format("2006-01-02"))
}

func TestStore_FailedWriteRollsBackArchive(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rollback.estimate")
	boom := errors.New("disk full")
	opener := NewOpener(WithUnitOfWork(func(conn *sql.DB) db.UnitOfWork {
		// Create seeds 4 metadata rows, the insert is 5th, the version 6th,
		// the archive copy 7th and the overwrite 8th.
		return &testutil.FailOnNthExecUoW{DB: conn, FailOn: 8, Err: boom}
	}))
	ctx := context.Background()
	s, err := opener.Create(ctx, path)
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.InsertTask(ctx, testutil.NewTestTaskRow(1, 0)))
	v, err := s.CreateVersion(ctx, fixedNow)
	require.NoError(t, err)

	err = s.UpsertTask(ctx, v.ID, testutil.NewTestTaskRow(1, 0, testutil.WithDescription("lost")), fixedNow)
	require.ErrorIs(t, err, boom)

	history, err := s.TaskHistory(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, history)
}
