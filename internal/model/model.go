// Package model holds the project estimate: the task tree, its change
// tracking and the work-day ledger, and reconciles them with a project file.
package model

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/alexanderramin/estimator/internal/burndown"
	"github.com/alexanderramin/estimator/internal/domain"
	"github.com/google/uuid"
)

// MaxMinutesPerWorkDay bounds the configurable work-day length.
const MaxMinutesPerWorkDay = 24 * 60

// Model is the single entry point for working on a project. It is not safe
// for concurrent use.
type Model struct {
	opener StoreOpener
	store  Store
	path   string
	// fresh means the project file has not been created yet.
	fresh bool

	tree              *domain.Tree
	ledger            *Ledger
	ids               idAllocator
	changed           bool
	minutesPerWorkDay int
	minutesDirty      bool
	startDate         *time.Time

	state       *lifecycle
	subscribers []func(Event)
	reconciler  *Reconciler
	observer    UseCaseObserver
	logger      *slog.Logger
	now         func() time.Time
	newOpID     func() string
}

type Option func(*Model)

func WithObserver(o UseCaseObserver) Option {
	return func(m *Model) {
		if o != nil {
			m.observer = o
		}
	}
}

// WithLogger sets the logger used for reconciliation warnings.
func WithLogger(l *slog.Logger) Option {
	return func(m *Model) {
		if l != nil {
			m.logger = l
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(m *Model) {
		if now != nil {
			m.now = now
		}
	}
}

// New creates a model with no project open.
func New(opener StoreOpener, opts ...Option) (*Model, error) {
	state, err := newLifecycle()
	if err != nil {
		return nil, err
	}
	m := &Model{
		opener:            opener,
		ledger:            NewLedger(),
		minutesPerWorkDay: domain.DefaultMinutesPerWorkDay,
		state:             state,
		observer:          NoopUseCaseObserver{},
		logger:            slog.New(slog.DiscardHandler),
		now:               func() time.Time { return time.Now().UTC() },
		newOpID:           uuid.NewString,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.reconciler = NewReconciler(m.logger, m.now)
	return m, nil
}

func (m *Model) State() State { return m.state.current() }

// ModelChanged reports unsaved changes.
func (m *Model) ModelChanged() bool { return m.changed }

// Path is the project file path, empty when none is set.
func (m *Model) Path() string { return m.path }

// Root returns the live root task, or nil when no project is open.
func (m *Model) Root() *domain.TaskNode {
	if m.tree == nil {
		return nil
	}
	return m.tree.Root()
}

func (m *Model) MinutesPerWorkDay() int { return m.minutesPerWorkDay }

// StartDate is the project's start date, nil if unknown.
func (m *Model) StartDate() *time.Time { return m.startDate }

// NewProject replaces any open project with a new one holding a single root
// task. The project file at path is created on the first save.
func (m *Model) NewProject(path, description string) error {
	m.Discard()

	root := domain.NewTaskNode(1, description)
	root.SetFlags(domain.Added)
	tree, err := domain.NewTree(root)
	if err != nil {
		return err
	}
	m.attach(tree)
	m.ids.observe(root.ID())
	m.path = path
	m.fresh = true
	m.minutesPerWorkDay = domain.DefaultMinutesPerWorkDay
	m.minutesDirty = false
	today := domain.DayOf(m.now())
	m.startDate = &today
	return m.transition(eventNew)
}

// Load replaces any open project with the one stored at path.
func (m *Model) Load(ctx context.Context, path string) (err error) {
	done := m.observe(ctx, "load", map[string]any{"path": path})
	defer done(&err)

	m.Discard()
	store, err := m.opener.Open(ctx, path)
	if err != nil {
		return fmt.Errorf("loading project: %w", err)
	}
	if err = m.loadFrom(ctx, store); err != nil {
		_ = store.Close()
		return fmt.Errorf("loading project: %w", err)
	}
	m.store = store
	m.path = path
	return m.transition(eventLoad)
}

func (m *Model) loadFrom(ctx context.Context, store Store) error {
	meta, err := store.Metadata(ctx)
	if err != nil {
		return err
	}
	rows, err := store.ActiveTasks(ctx)
	if err != nil {
		return err
	}
	tree, err := Rebuild(rows)
	if err != nil {
		return err
	}
	days, err := store.WorkDays(ctx)
	if err != nil {
		return err
	}
	maxID, err := store.MaxTaskID(ctx)
	if err != nil {
		return err
	}

	m.attach(tree)
	m.ids.observe(tree.MaxID())
	m.ids.observe(maxID)
	m.ledger.Replace(days)
	m.minutesPerWorkDay = meta.MinutesPerWorkDay
	m.startDate = meta.StartDate
	return nil
}

// Save writes pending task and work-day changes. Saving with nothing pending
// touches nothing.
func (m *Model) Save(ctx context.Context) (err error) {
	fields := map[string]any{"path": m.path}
	done := m.observe(ctx, "save", fields)
	defer done(&err)

	if m.tree == nil {
		return domain.ErrNoProject
	}
	items, err := OrganizeForStore(m.tree)
	if err != nil {
		return err
	}
	fields["items"] = len(items)
	if len(items) == 0 && !m.ledger.Dirty() && !m.minutesDirty && !m.fresh {
		return m.settle()
	}

	store, err := m.ensureStore(ctx)
	if err != nil {
		return err
	}

	res, err := m.reconciler.Write(ctx, store, items)
	if pruned := m.tree.Prune(func(n *domain.TaskNode) bool { return res.Settled[n.ID()] }); len(pruned) > 0 {
		fields["pruned"] = len(pruned)
	}
	if res.Version != nil {
		fields["version_id"] = res.Version.ID
	}
	if err != nil {
		return fmt.Errorf("saving project: %w", err)
	}

	if err = m.ledger.Flush(ctx, store); err != nil {
		return fmt.Errorf("saving project: %w", err)
	}
	if m.minutesDirty {
		if err = store.SetMinutesPerWorkDay(ctx, m.minutesPerWorkDay); err != nil {
			return fmt.Errorf("saving project: %w", err)
		}
		m.minutesDirty = false
	}
	if err = store.SetLastUpdate(ctx, m.now()); err != nil {
		return fmt.Errorf("saving project: %w", err)
	}
	fields["written"] = res.Written
	return m.settle()
}

// SaveAs writes the whole project to a new file at path and continues with
// that file.
func (m *Model) SaveAs(ctx context.Context, path string) (err error) {
	done := m.observe(ctx, "save_as", map[string]any{"path": path})
	defer done(&err)

	if m.tree == nil {
		return domain.ErrNoProject
	}
	if path == "" {
		return fmt.Errorf("save as: empty path: %w", domain.ErrStoreUnavailable)
	}
	if m.store != nil {
		if err = m.store.Close(); err != nil {
			return fmt.Errorf("save as: closing %s: %w", m.path, err)
		}
		m.store = nil
	}
	m.path = path
	m.fresh = true

	_ = m.tree.Walk(func(n *domain.TaskNode) error {
		n.SetFlags(domain.Added | (n.Flags() & domain.Deleted))
		return nil
	})
	m.ledger.MarkAllAdded()
	m.minutesDirty = true
	m.markChanged()
	return m.Save(ctx)
}

// Close releases the project file and returns to having no project.
// Unsaved changes are dropped.
func (m *Model) Close(ctx context.Context) (err error) {
	done := m.observe(ctx, "close", map[string]any{"path": m.path})
	defer done(&err)

	if m.State() == StateNoProject {
		return domain.ErrNoProject
	}
	return m.release()
}

// Discard is Close for cleanup paths: it is a no-op without a project and
// reports nothing.
func (m *Model) Discard() {
	if m.State() == StateNoProject && m.store == nil {
		return
	}
	if err := m.release(); err != nil {
		m.logger.Warn("discarding project", "path", m.path, "error", err)
	}
}

func (m *Model) release() error {
	var closeErr error
	if m.store != nil {
		closeErr = m.store.Close()
		m.store = nil
	}
	m.tree = nil
	m.ledger.Clear()
	m.ids.reset()
	m.changed = false
	m.minutesDirty = false
	m.minutesPerWorkDay = domain.DefaultMinutesPerWorkDay
	m.startDate = nil
	m.path = ""
	m.fresh = false
	if m.State() != StateNoProject {
		if err := m.transition(eventClose); err != nil {
			return errors.Join(closeErr, err)
		}
	}
	if closeErr != nil {
		return fmt.Errorf("closing project file: %w", closeErr)
	}
	return nil
}

// Node returns the live task with id.
func (m *Model) Node(id int) (*domain.TaskNode, error) {
	if m.tree == nil {
		return nil, domain.ErrNoProject
	}
	return m.tree.Node(id)
}

// Snapshot returns a detached copy of the task with id for editing.
func (m *Model) Snapshot(id int) (*domain.TaskNode, error) {
	n, err := m.Node(id)
	if err != nil {
		return nil, err
	}
	return n.Clone(), nil
}

// ApplyEdit copies an edited snapshot back onto its live task.
func (m *Model) ApplyEdit(edited *domain.TaskNode) error {
	if edited == nil {
		return nil
	}
	n, err := m.Node(edited.ID())
	if err != nil {
		return err
	}
	return n.UpdateFrom(edited)
}

// AddNode appends a new task under parentID.
func (m *Model) AddNode(parentID int, description string) (*domain.TaskNode, error) {
	parent, err := m.Node(parentID)
	if err != nil {
		return nil, err
	}
	if parent.IsDeleted() {
		return nil, fmt.Errorf("task %d is deleted: %w", parentID, domain.ErrNotFound)
	}
	n := domain.NewTaskNode(m.ids.next(), description)
	n.SetFlags(domain.Added)
	if err := m.tree.AddChild(parentID, n); err != nil {
		return nil, err
	}
	return n, nil
}

// DeleteNode flags the task and its subtree as deleted. They disappear from
// the tree on the next save.
func (m *Model) DeleteNode(id int) error {
	if m.tree == nil {
		return domain.ErrNoProject
	}
	return m.tree.Delete(id)
}

// AddWorkDay logs a work day whose snapshot is the root's total time spent.
func (m *Model) AddWorkDay(date time.Time) (domain.WorkDay, error) {
	if m.tree == nil {
		return domain.WorkDay{}, domain.ErrNoProject
	}
	d := m.ledger.Add(date, m.tree.Root().TimeSpentMinutes())
	m.markChanged()
	m.publish(Event{Kind: EventWorkDayCreated, From: m.State(), To: m.State(), WorkDay: d})
	return d, nil
}

// RecordProgress sets the latest work day's progress snapshot.
func (m *Model) RecordProgress(percent int) error {
	if m.tree == nil {
		return domain.ErrNoProject
	}
	if err := m.ledger.RecordProgress(percent); err != nil {
		return err
	}
	m.markChanged()
	return nil
}

func (m *Model) WorkDays() []domain.WorkDay { return m.ledger.Days() }

// CurrentWorkDayID is the latest work day's id, or 0 if none was logged.
func (m *Model) CurrentWorkDayID() int { return m.ledger.CurrentID() }

func (m *Model) SetMinutesPerWorkDay(minutes int) error {
	if m.tree == nil {
		return domain.ErrNoProject
	}
	if minutes <= 0 || minutes > MaxMinutesPerWorkDay {
		return fmt.Errorf("minutes per work day %d out of range 1-%d", minutes, MaxMinutesPerWorkDay)
	}
	if minutes == m.minutesPerWorkDay {
		return nil
	}
	m.minutesPerWorkDay = minutes
	m.minutesDirty = true
	m.markChanged()
	return nil
}

// ProjectVersions lists saved versions, newest first.
func (m *Model) ProjectVersions(ctx context.Context) ([]domain.ProjectVersion, error) {
	if m.tree == nil {
		return nil, domain.ErrNoProject
	}
	if m.store == nil {
		return nil, nil
	}
	return m.store.ProjectVersions(ctx)
}

// History returns the archived states of a task, oldest first.
func (m *Model) History(ctx context.Context, taskID int) ([]domain.ArchiveRow, error) {
	if m.tree == nil {
		return nil, domain.ErrNoProject
	}
	if m.store == nil {
		return nil, nil
	}
	return m.store.TaskHistory(ctx, taskID)
}

// BurnDown projects the ideal and actual progress series.
func (m *Model) BurnDown() burndown.Chart {
	in := burndown.Input{MinutesPerWorkDay: m.minutesPerWorkDay, Days: m.ledger.Days()}
	if root := m.Root(); root != nil {
		in.EstimatedMinutes = root.EstimatedMinutes()
	}
	return burndown.Project(in)
}

func (m *Model) attach(tree *domain.Tree) {
	m.tree = tree
	tree.OnChange(func(*domain.TaskNode) { m.markChanged() })
}

func (m *Model) ensureStore(ctx context.Context) (Store, error) {
	if m.store != nil {
		return m.store, nil
	}
	if m.path == "" {
		return nil, fmt.Errorf("no project file set: %w", domain.ErrStoreUnavailable)
	}
	var (
		store Store
		err   error
	)
	if m.fresh {
		store, err = m.opener.Create(ctx, m.path)
	} else {
		store, err = m.opener.Open(ctx, m.path)
	}
	if err != nil {
		return nil, err
	}
	m.store = store
	m.fresh = false
	return store, nil
}

func (m *Model) markChanged() {
	m.changed = true
	if m.State() == StateOpen {
		if err := m.transition(eventEdit); err != nil {
			m.logger.Warn("marking project modified", "error", err)
		}
	}
}

// settle clears the changed flag after a successful save.
func (m *Model) settle() error {
	m.changed = false
	if m.State() == StateModified {
		return m.transition(eventSave)
	}
	return nil
}

func (m *Model) transition(event string) error {
	from, to, err := m.state.send(event)
	if err != nil {
		return err
	}
	m.publish(Event{Kind: EventStateChanged, From: from, To: to})
	return nil
}
