package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/estimator/internal/db"
	"github.com/alexanderramin/estimator/internal/domain"
)

// Metadata row ids in ProjectMetaData.
const (
	metaSchemaVersion     = 1
	metaLastUpdate        = 2
	metaStartDate         = 3
	metaMinutesPerWorkDay = 4
)

// SQLiteMetadataRepo implements MetadataRepo over the ProjectMetaData
// key/value table.
type SQLiteMetadataRepo struct {
	db db.DBTX
}

// NewSQLiteMetadataRepo creates a new SQLiteMetadataRepo.
func NewSQLiteMetadataRepo(conn db.DBTX) *SQLiteMetadataRepo {
	return &SQLiteMetadataRepo{db: conn}
}

// Init seeds the rows of a freshly created store.
func (r *SQLiteMetadataRepo) Init(ctx context.Context, at time.Time, minutesPerWorkDay int) error {
	stamp := at.UTC().Format(timestampLayout)
	stmts := []struct {
		query string
		args  []any
	}{
		{`INSERT OR REPLACE INTO ProjectMetaData (ProjectMetaDataID, IntegralValue) VALUES (?, ?)`,
			[]any{metaSchemaVersion, domain.SchemaVersion}},
		{`INSERT OR REPLACE INTO ProjectMetaData (ProjectMetaDataID, DateTimeValue) VALUES (?, ?)`,
			[]any{metaLastUpdate, stamp}},
		{`INSERT OR REPLACE INTO ProjectMetaData (ProjectMetaDataID, DateTimeValue) VALUES (?, ?)`,
			[]any{metaStartDate, at.Format(dateLayout)}},
		{`INSERT OR REPLACE INTO ProjectMetaData (ProjectMetaDataID, IntegralValue) VALUES (?, ?)`,
			[]any{metaMinutesPerWorkDay, minutesPerWorkDay}},
	}
	for _, s := range stmts {
		if _, err := r.db.ExecContext(ctx, s.query, s.args...); err != nil {
			return fmt.Errorf("seeding project metadata: %w", err)
		}
	}
	return nil
}

// Get reads the metadata rows. The schema version and last-update rows are
// required; the others fall back to defaults.
func (r *SQLiteMetadataRepo) Get(ctx context.Context) (*domain.Metadata, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT ProjectMetaDataID, IntegralValue, DateTimeValue
		FROM ProjectMetaData`)
	if err != nil {
		return nil, fmt.Errorf("reading project metadata: %w", err)
	}
	defer rows.Close()

	m := &domain.Metadata{MinutesPerWorkDay: domain.DefaultMinutesPerWorkDay}
	var haveVersion, haveUpdate bool
	for rows.Next() {
		var id int
		var integral sql.NullInt64
		var stamp sql.NullString
		if err := rows.Scan(&id, &integral, &stamp); err != nil {
			return nil, fmt.Errorf("scanning project metadata: %w", err)
		}
		switch id {
		case metaSchemaVersion:
			haveVersion = integral.Valid
			m.SchemaVersion = int(integral.Int64)
		case metaLastUpdate:
			if t := parseNullableTime(stamp, timestampLayout); t != nil {
				haveUpdate = true
				m.LastUpdate = *t
			}
		case metaStartDate:
			m.StartDate = parseNullableTime(stamp, dateLayout)
		case metaMinutesPerWorkDay:
			if integral.Valid && integral.Int64 > 0 {
				m.MinutesPerWorkDay = int(integral.Int64)
			}
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating project metadata: %w", err)
	}
	if !haveVersion {
		return nil, fmt.Errorf("schema version row: %w", domain.ErrMissingMetadata)
	}
	if !haveUpdate {
		return nil, fmt.Errorf("last update row: %w", domain.ErrMissingMetadata)
	}
	return m, nil
}

func (r *SQLiteMetadataRepo) SetLastUpdate(ctx context.Context, at time.Time) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO ProjectMetaData (ProjectMetaDataID, DateTimeValue) VALUES (?, ?)`,
		metaLastUpdate, at.UTC().Format(timestampLayout))
	if err != nil {
		return fmt.Errorf("writing last update: %w", err)
	}
	return nil
}

func (r *SQLiteMetadataRepo) SetMinutesPerWorkDay(ctx context.Context, minutes int) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO ProjectMetaData (ProjectMetaDataID, IntegralValue) VALUES (?, ?)`,
		metaMinutesPerWorkDay, minutes)
	if err != nil {
		return fmt.Errorf("writing minutes per work day: %w", err)
	}
	return nil
}
