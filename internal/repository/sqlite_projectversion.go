package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/estimator/internal/db"
	"github.com/alexanderramin/estimator/internal/domain"
)

// SQLiteProjectVersionRepo implements ProjectVersionRepo using a SQLite database.
type SQLiteProjectVersionRepo struct {
	db db.DBTX
}

// NewSQLiteProjectVersionRepo creates a new SQLiteProjectVersionRepo.
func NewSQLiteProjectVersionRepo(conn db.DBTX) *SQLiteProjectVersionRepo {
	return &SQLiteProjectVersionRepo{db: conn}
}

func (r *SQLiteProjectVersionRepo) Create(ctx context.Context, at time.Time) (*domain.ProjectVersion, error) {
	at = at.UTC().Truncate(time.Second)
	res, err := r.db.ExecContext(ctx, `INSERT INTO ProjectVersion (VersionDate) VALUES (?)`,
		at.Format(timestampLayout))
	if err != nil {
		return nil, fmt.Errorf("creating project version: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("reading project version id: %w", err)
	}
	return &domain.ProjectVersion{ID: int(id), CreatedAt: at}, nil
}

// Latest returns the most recently created version.
func (r *SQLiteProjectVersionRepo) Latest(ctx context.Context) (*domain.ProjectVersion, error) {
	row := r.db.QueryRowContext(ctx, `SELECT ProjectVersionID, VersionDate FROM ProjectVersion
		ORDER BY ProjectVersionID DESC LIMIT 1`)
	v, err := scanProjectVersion(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("latest project version: %w", domain.ErrNotFound)
		}
		return nil, err
	}
	return &v, nil
}

// List returns all versions, newest first.
func (r *SQLiteProjectVersionRepo) List(ctx context.Context) ([]domain.ProjectVersion, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT ProjectVersionID, VersionDate FROM ProjectVersion
		ORDER BY ProjectVersionID DESC`)
	if err != nil {
		return nil, fmt.Errorf("listing project versions: %w", err)
	}
	defer rows.Close()

	var out []domain.ProjectVersion
	for rows.Next() {
		v, err := scanProjectVersion(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating project versions: %w", err)
	}
	return out, nil
}

func scanProjectVersion(s rowScanner) (domain.ProjectVersion, error) {
	var v domain.ProjectVersion
	var created string
	if err := s.Scan(&v.ID, &created); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return v, err
		}
		return v, fmt.Errorf("scanning project version: %w", err)
	}
	t, err := time.Parse(timestampLayout, created)
	if err != nil {
		return v, fmt.Errorf("parsing version date %q: %w", created, err)
	}
	v.CreatedAt = t
	return v, nil
}
