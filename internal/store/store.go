// Package store implements the project file on SQLite.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/estimator/internal/db"
	"github.com/alexanderramin/estimator/internal/domain"
	"github.com/alexanderramin/estimator/internal/model"
	"github.com/alexanderramin/estimator/internal/repository"
)

// SQLiteStore is one open project file. Reads go straight to the
// connection; every write runs in its own transaction.
type SQLiteStore struct {
	path string
	conn *sql.DB
	uow  db.UnitOfWork

	tasks    *repository.SQLiteTaskItemRepo
	archive  *repository.SQLiteArchiveRepo
	versions *repository.SQLiteProjectVersionRepo
	days     *repository.SQLiteWorkDayRepo
	meta     *repository.SQLiteMetadataRepo
}

var _ model.Store = (*SQLiteStore)(nil)

// New wraps an open connection. uow may be nil to use a plain SQLite unit of
// work over conn.
func New(path string, conn *sql.DB, uow db.UnitOfWork) *SQLiteStore {
	if uow == nil {
		uow = db.NewSQLiteUnitOfWork(conn)
	}
	return &SQLiteStore{
		path:     path,
		conn:     conn,
		uow:      uow,
		tasks:    repository.NewSQLiteTaskItemRepo(conn),
		archive:  repository.NewSQLiteArchiveRepo(conn),
		versions: repository.NewSQLiteProjectVersionRepo(conn),
		days:     repository.NewSQLiteWorkDayRepo(conn),
		meta:     repository.NewSQLiteMetadataRepo(conn),
	}
}

func (s *SQLiteStore) Path() string { return s.path }

func (s *SQLiteStore) Metadata(ctx context.Context) (*domain.Metadata, error) {
	return s.meta.Get(ctx)
}

func (s *SQLiteStore) ActiveTasks(ctx context.Context) ([]domain.TaskRow, error) {
	return s.tasks.ListActive(ctx)
}

func (s *SQLiteStore) MaxTaskID(ctx context.Context) (int, error) {
	return s.tasks.MaxID(ctx)
}

func (s *SQLiteStore) InsertTask(ctx context.Context, row domain.TaskRow) error {
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return repository.NewSQLiteTaskItemRepo(tx).InsertOrReplace(ctx, row)
	})
}

func (s *SQLiteStore) UpsertTask(ctx context.Context, versionID int, row domain.TaskRow, at time.Time) error {
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if _, err := repository.NewSQLiteArchiveRepo(tx).ArchiveTask(ctx, versionID, row.ID, at); err != nil {
			return err
		}
		return repository.NewSQLiteTaskItemRepo(tx).InsertOrReplace(ctx, row)
	})
}

func (s *SQLiteStore) SoftDeleteTask(ctx context.Context, versionID, taskID int, at time.Time) (bool, error) {
	var found bool
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if _, err := repository.NewSQLiteArchiveRepo(tx).ArchiveTask(ctx, versionID, taskID, at); err != nil {
			return err
		}
		var err error
		found, err = repository.NewSQLiteTaskItemRepo(tx).SetDeleted(ctx, taskID, true)
		return err
	})
	return found, err
}

func (s *SQLiteStore) TaskHistory(ctx context.Context, taskID int) ([]domain.ArchiveRow, error) {
	return s.archive.ListByTask(ctx, taskID)
}

func (s *SQLiteStore) CreateVersion(ctx context.Context, at time.Time) (*domain.ProjectVersion, error) {
	var v *domain.ProjectVersion
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		var err error
		v, err = repository.NewSQLiteProjectVersionRepo(tx).Create(ctx, at)
		return err
	})
	return v, err
}

func (s *SQLiteStore) ProjectVersions(ctx context.Context) ([]domain.ProjectVersion, error) {
	return s.versions.List(ctx)
}

func (s *SQLiteStore) WorkDays(ctx context.Context) ([]domain.WorkDay, error) {
	return s.days.List(ctx)
}

func (s *SQLiteStore) AppendWorkDay(ctx context.Context, day domain.WorkDay) (int, error) {
	var id int
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		var err error
		id, err = repository.NewSQLiteWorkDayRepo(tx).Append(ctx, day.Date, day.Snapshot)
		return err
	})
	return id, err
}

func (s *SQLiteStore) UpdateWorkDay(ctx context.Context, day domain.WorkDay) error {
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return repository.NewSQLiteWorkDayRepo(tx).UpdateSnapshot(ctx, day.ID, day.Snapshot)
	})
}

func (s *SQLiteStore) SetLastUpdate(ctx context.Context, at time.Time) error {
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return repository.NewSQLiteMetadataRepo(tx).SetLastUpdate(ctx, at)
	})
}

func (s *SQLiteStore) SetMinutesPerWorkDay(ctx context.Context, minutes int) error {
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return repository.NewSQLiteMetadataRepo(tx).SetMinutesPerWorkDay(ctx, minutes)
	})
}

func (s *SQLiteStore) Close() error {
	return s.conn.Close()
}

// checkSchema verifies the file's metadata rows and schema version.
func (s *SQLiteStore) checkSchema(ctx context.Context) error {
	meta, err := s.meta.Get(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrMissingMetadata) {
			return err
		}
		return fmt.Errorf("%s: %v: %w", s.path, err, domain.ErrStoreUnavailable)
	}
	if meta.SchemaVersion != domain.SchemaVersion {
		return fmt.Errorf("%s has schema version %d, want %d: %w",
			s.path, meta.SchemaVersion, domain.SchemaVersion, domain.ErrSchemaVersionMismatch)
	}
	return nil
}
