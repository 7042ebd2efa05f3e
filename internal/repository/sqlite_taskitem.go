package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/estimator/internal/db"
	"github.com/alexanderramin/estimator/internal/domain"
)

// taskItemColumns is the canonical SELECT column list for TaskItem.
const taskItemColumns = `TaskItemID, ParentTaskItemID, ItemDescription, EstimatedTimeMinutes,
		MinimumTimeMinutes, MaximumTimeMinutes, PercentageComplete, TimeSpentMinutes, IsDeleted`

// SQLiteTaskItemRepo implements TaskItemRepo using a SQLite database.
type SQLiteTaskItemRepo struct {
	db db.DBTX
}

// NewSQLiteTaskItemRepo creates a new SQLiteTaskItemRepo.
func NewSQLiteTaskItemRepo(conn db.DBTX) *SQLiteTaskItemRepo {
	return &SQLiteTaskItemRepo{db: conn}
}

// ListActive returns rows not marked deleted, ordered by id.
func (r *SQLiteTaskItemRepo) ListActive(ctx context.Context) ([]domain.TaskRow, error) {
	query := `SELECT ` + taskItemColumns + ` FROM TaskItem
		WHERE IsDeleted IS NULL OR IsDeleted = 0
		ORDER BY TaskItemID`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing active task items: %w", err)
	}
	defer rows.Close()

	var out []domain.TaskRow
	for rows.Next() {
		row, err := scanTaskRow(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning task item row: %w", err)
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating task items: %w", err)
	}
	return out, nil
}

func (r *SQLiteTaskItemRepo) GetByID(ctx context.Context, id int) (*domain.TaskRow, error) {
	query := `SELECT ` + taskItemColumns + ` FROM TaskItem WHERE TaskItemID = ?`
	row, err := scanTaskRow(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("task item %d: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("scanning task item: %w", err)
	}
	return &row, nil
}

// MaxID returns the highest task id ever stored, deleted rows included.
func (r *SQLiteTaskItemRepo) MaxID(ctx context.Context) (int, error) {
	var max sql.NullInt64
	if err := r.db.QueryRowContext(ctx, `SELECT MAX(TaskItemID) FROM TaskItem`).Scan(&max); err != nil {
		return 0, fmt.Errorf("reading highest task item id: %w", err)
	}
	return int(max.Int64), nil
}

// InsertOrReplace writes the row keyed by id. The deleted marker is left NULL.
func (r *SQLiteTaskItemRepo) InsertOrReplace(ctx context.Context, t domain.TaskRow) error {
	query := `INSERT OR REPLACE INTO TaskItem (TaskItemID, ParentTaskItemID, ItemDescription,
		EstimatedTimeMinutes, MinimumTimeMinutes, MaximumTimeMinutes, PercentageComplete,
		TimeSpentMinutes)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		t.ID,
		parentToValue(t.ParentID),
		t.Description,
		t.EstimatedMinutes,
		t.MinimumMinutes,
		t.MaximumMinutes,
		t.PercentComplete,
		t.TimeSpentMinutes,
	)
	if err != nil {
		return fmt.Errorf("writing task item %d: %w", t.ID, err)
	}
	return nil
}

// SetDeleted flips the soft-delete marker and reports whether a row existed.
func (r *SQLiteTaskItemRepo) SetDeleted(ctx context.Context, id int, deleted bool) (bool, error) {
	res, err := r.db.ExecContext(ctx, `UPDATE TaskItem SET IsDeleted = ? WHERE TaskItemID = ?`,
		boolToInt(deleted), id)
	if err != nil {
		return false, fmt.Errorf("marking task item %d deleted: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("marking task item %d deleted: %w", id, err)
	}
	return n > 0, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTaskRow(s rowScanner) (domain.TaskRow, error) {
	var t domain.TaskRow
	var parentID, isDeleted sql.NullInt64
	err := s.Scan(
		&t.ID, &parentID, &t.Description, &t.EstimatedMinutes,
		&t.MinimumMinutes, &t.MaximumMinutes, &t.PercentComplete, &t.TimeSpentMinutes,
		&isDeleted,
	)
	if err != nil {
		return t, err
	}
	t.ParentID = parentFromNull(parentID)
	t.IsDeleted = deletedFromNull(isDeleted)
	return t, nil
}
