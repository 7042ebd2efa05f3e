package repository

import (
	"context"
	"time"

	"github.com/alexanderramin/estimator/internal/domain"
)

type TaskItemRepo interface {
	ListActive(ctx context.Context) ([]domain.TaskRow, error)
	GetByID(ctx context.Context, id int) (*domain.TaskRow, error)
	MaxID(ctx context.Context) (int, error)
	InsertOrReplace(ctx context.Context, row domain.TaskRow) error
	SetDeleted(ctx context.Context, id int, deleted bool) (bool, error)
}

type ArchiveRepo interface {
	ArchiveTask(ctx context.Context, versionID, taskID int, at time.Time) (bool, error)
	ListByTask(ctx context.Context, taskID int) ([]domain.ArchiveRow, error)
	ListByVersion(ctx context.Context, versionID int) ([]domain.ArchiveRow, error)
}

type ProjectVersionRepo interface {
	Create(ctx context.Context, at time.Time) (*domain.ProjectVersion, error)
	Latest(ctx context.Context) (*domain.ProjectVersion, error)
	List(ctx context.Context) ([]domain.ProjectVersion, error)
}

type WorkDayRepo interface {
	List(ctx context.Context) ([]domain.WorkDay, error)
	Append(ctx context.Context, date time.Time, snapshot int) (int, error)
	UpdateSnapshot(ctx context.Context, id, snapshot int) error
}

type MetadataRepo interface {
	Init(ctx context.Context, at time.Time, minutesPerWorkDay int) error
	Get(ctx context.Context) (*domain.Metadata, error)
	SetLastUpdate(ctx context.Context, at time.Time) error
	SetMinutesPerWorkDay(ctx context.Context, minutes int) error
}
