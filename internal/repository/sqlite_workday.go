package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/estimator/internal/db"
	"github.com/alexanderramin/estimator/internal/domain"
)

// SQLiteWorkDayRepo implements WorkDayRepo over the DaysWorked table.
type SQLiteWorkDayRepo struct {
	db db.DBTX
}

// NewSQLiteWorkDayRepo creates a new SQLiteWorkDayRepo.
func NewSQLiteWorkDayRepo(conn db.DBTX) *SQLiteWorkDayRepo {
	return &SQLiteWorkDayRepo{db: conn}
}

// List returns every work day ordered by id.
func (r *SQLiteWorkDayRepo) List(ctx context.Context) ([]domain.WorkDay, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT DaysWorkedID, CalendarDate, ProjectPercentageComplete
		FROM DaysWorked ORDER BY DaysWorkedID`)
	if err != nil {
		return nil, fmt.Errorf("listing work days: %w", err)
	}
	defer rows.Close()

	var out []domain.WorkDay
	for rows.Next() {
		var d domain.WorkDay
		var date string
		if err := rows.Scan(&d.ID, &date, &d.Snapshot); err != nil {
			return nil, fmt.Errorf("scanning work day: %w", err)
		}
		d.Date, err = time.Parse(dateLayout, date)
		if err != nil {
			return nil, fmt.Errorf("parsing work day date %q: %w", date, err)
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating work days: %w", err)
	}
	return out, nil
}

// Append stores a new work day and returns its id.
func (r *SQLiteWorkDayRepo) Append(ctx context.Context, date time.Time, snapshot int) (int, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO DaysWorked (CalendarDate, ProjectPercentageComplete) VALUES (?, ?)`,
		date.Format(dateLayout), snapshot)
	if err != nil {
		return 0, fmt.Errorf("appending work day: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading work day id: %w", err)
	}
	return int(id), nil
}

func (r *SQLiteWorkDayRepo) UpdateSnapshot(ctx context.Context, id, snapshot int) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE DaysWorked SET ProjectPercentageComplete = ? WHERE DaysWorkedID = ?`, snapshot, id)
	if err != nil {
		return fmt.Errorf("updating work day %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("updating work day %d: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("work day %d: %w", id, domain.ErrNotFound)
	}
	return nil
}
