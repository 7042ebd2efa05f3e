package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/estimator/internal/db"
	"github.com/alexanderramin/estimator/internal/domain"
	"github.com/alexanderramin/estimator/internal/model"
	"github.com/alexanderramin/estimator/internal/repository"
)

// Opener creates and opens SQLite project files.
type Opener struct {
	now        func() time.Time
	unitOfWork func(*sql.DB) db.UnitOfWork
}

var _ model.StoreOpener = (*Opener)(nil)

type OpenerOption func(*Opener)

// WithClock sets the time used to seed a new file's metadata.
func WithClock(now func() time.Time) OpenerOption {
	return func(o *Opener) { o.now = now }
}

// WithUnitOfWork replaces the transaction runner used by opened stores.
func WithUnitOfWork(fn func(*sql.DB) db.UnitOfWork) OpenerOption {
	return func(o *Opener) { o.unitOfWork = fn }
}

func NewOpener(opts ...OpenerOption) *Opener {
	o := &Opener{now: time.Now}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Create lays down an empty project file at path and seeds its metadata.
func (o *Opener) Create(ctx context.Context, path string) (model.Store, error) {
	conn, err := db.CreateDB(path)
	if err != nil {
		return nil, fmt.Errorf("creating project file: %w", err)
	}
	s := o.wrap(path, conn)
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return repository.NewSQLiteMetadataRepo(tx).Init(ctx, o.now(), domain.DefaultMinutesPerWorkDay)
	})
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("creating project file: %w", err)
	}
	return s, nil
}

// Open attaches the project file at path after checking its schema version.
func (o *Opener) Open(ctx context.Context, path string) (model.Store, error) {
	conn, err := db.OpenDB(path)
	if err != nil {
		return nil, fmt.Errorf("opening project file: %w", err)
	}
	s := o.wrap(path, conn)
	if err := s.checkSchema(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("opening project file: %w", err)
	}
	return s, nil
}

func (o *Opener) wrap(path string, conn *sql.DB) *SQLiteStore {
	var uow db.UnitOfWork
	if o.unitOfWork != nil {
		uow = o.unitOfWork(conn)
	}
	return New(path, conn, uow)
}
