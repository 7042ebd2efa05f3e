package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/estimator/internal/db"
	"github.com/alexanderramin/estimator/internal/domain"
)

// SQLiteArchiveRepo implements ArchiveRepo using a SQLite database.
type SQLiteArchiveRepo struct {
	db db.DBTX
}

// NewSQLiteArchiveRepo creates a new SQLiteArchiveRepo.
func NewSQLiteArchiveRepo(conn db.DBTX) *SQLiteArchiveRepo {
	return &SQLiteArchiveRepo{db: conn}
}

// ArchiveTask copies the currently stored row for taskID into the archive
// under versionID. It reports false when no stored row exists.
func (r *SQLiteArchiveRepo) ArchiveTask(ctx context.Context, versionID, taskID int, at time.Time) (bool, error) {
	query := `INSERT INTO TaskItemArchive (ProjectVersionID, TaskItemID, ParentTaskItemID,
		ItemDescription, EstimatedTimeMinutes, MinimumTimeMinutes, MaximumTimeMinutes,
		PercentageComplete, TimeSpentMinutes, IsDeleted, ArchiveTime)
		SELECT ?, TaskItemID, ParentTaskItemID, ItemDescription, EstimatedTimeMinutes,
			MinimumTimeMinutes, MaximumTimeMinutes, PercentageComplete, TimeSpentMinutes,
			IsDeleted, ?
		FROM TaskItem WHERE TaskItemID = ?`
	res, err := r.db.ExecContext(ctx, query, versionID, at.UTC().Format(timestampLayout), taskID)
	if err != nil {
		return false, fmt.Errorf("archiving task item %d: %w", taskID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("archiving task item %d: %w", taskID, err)
	}
	return n > 0, nil
}

// ListByTask returns the archived rows of one task, oldest first.
func (r *SQLiteArchiveRepo) ListByTask(ctx context.Context, taskID int) ([]domain.ArchiveRow, error) {
	return r.list(ctx, `WHERE TaskItemID = ?`, taskID)
}

func (r *SQLiteArchiveRepo) ListByVersion(ctx context.Context, versionID int) ([]domain.ArchiveRow, error) {
	return r.list(ctx, `WHERE ProjectVersionID = ?`, versionID)
}

func (r *SQLiteArchiveRepo) list(ctx context.Context, where string, arg int) ([]domain.ArchiveRow, error) {
	query := `SELECT TaskItemArchiveID, ProjectVersionID, ` + taskItemColumns + `, ArchiveTime
		FROM TaskItemArchive ` + where + `
		ORDER BY TaskItemArchiveID`
	rows, err := r.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("listing archived task items: %w", err)
	}
	defer rows.Close()

	var out []domain.ArchiveRow
	for rows.Next() {
		var a domain.ArchiveRow
		var archivedAt string
		var parentID, isDeleted sql.NullInt64
		err := rows.Scan(&a.ArchiveID, &a.ProjectVersionID,
			&a.ID, &parentID, &a.Description, &a.EstimatedMinutes,
			&a.MinimumMinutes, &a.MaximumMinutes, &a.PercentComplete, &a.TimeSpentMinutes,
			&isDeleted, &archivedAt)
		if err != nil {
			return nil, fmt.Errorf("scanning archived task item: %w", err)
		}
		a.ParentID = parentFromNull(parentID)
		a.IsDeleted = deletedFromNull(isDeleted)
		a.ArchivedAt, err = time.Parse(timestampLayout, archivedAt)
		if err != nil {
			return nil, fmt.Errorf("parsing archive time %q: %w", archivedAt, err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating archived task items: %w", err)
	}
	return out, nil
}
