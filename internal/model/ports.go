package model

import (
	"context"
	"time"

	"github.com/alexanderramin/estimator/internal/domain"
)

// Store is the persistence port of a single open project file.
type Store interface {
	Path() string
	Metadata(ctx context.Context) (*domain.Metadata, error)

	ActiveTasks(ctx context.Context) ([]domain.TaskRow, error)
	MaxTaskID(ctx context.Context) (int, error)
	InsertTask(ctx context.Context, row domain.TaskRow) error
	// UpsertTask archives the stored row under versionID, then overwrites it.
	UpsertTask(ctx context.Context, versionID int, row domain.TaskRow, at time.Time) error
	// SoftDeleteTask archives the stored row under versionID, then marks it
	// deleted. It reports whether a stored row existed.
	SoftDeleteTask(ctx context.Context, versionID, taskID int, at time.Time) (bool, error)
	TaskHistory(ctx context.Context, taskID int) ([]domain.ArchiveRow, error)

	CreateVersion(ctx context.Context, at time.Time) (*domain.ProjectVersion, error)
	ProjectVersions(ctx context.Context) ([]domain.ProjectVersion, error)

	WorkDays(ctx context.Context) ([]domain.WorkDay, error)
	AppendWorkDay(ctx context.Context, day domain.WorkDay) (int, error)
	UpdateWorkDay(ctx context.Context, day domain.WorkDay) error

	SetLastUpdate(ctx context.Context, at time.Time) error
	SetMinutesPerWorkDay(ctx context.Context, minutes int) error

	Close() error
}

// StoreOpener attaches project files.
type StoreOpener interface {
	// Create makes a new, empty project file at path, replacing any file there.
	Create(ctx context.Context, path string) (Store, error)
	// Open attaches an existing project file and checks its schema version.
	Open(ctx context.Context, path string) (Store, error)
}
