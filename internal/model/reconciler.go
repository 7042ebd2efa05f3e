package model

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/alexanderramin/estimator/internal/domain"
)

// WorkItem is one task that needs attention on save.
type WorkItem struct {
	Node   *domain.TaskNode
	Row    domain.TaskRow
	Action domain.SaveAction
	After  domain.ChangeFlags
}

// SaveResult describes what a reconciler write did.
type SaveResult struct {
	Version *domain.ProjectVersion
	Written int
	// Settled lists tasks that are gone from the project after this save:
	// soft-deleted or never persisted. Only tasks whose whole subtree was
	// processed are listed.
	Settled map[int]bool
}

// Reconciler turns change-tracked tasks into store writes.
type Reconciler struct {
	logger *slog.Logger
	now    func() time.Time
}

func NewReconciler(logger *slog.Logger, now func() time.Time) *Reconciler {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if now == nil {
		now = time.Now
	}
	return &Reconciler{logger: logger, now: now}
}

// OrganizeForStore walks the tree in pre-order and lists every task whose
// flags call for a save action other than none. Branches about to lose all
// of their children are first collapsed so they are rewritten as empty leaves.
func OrganizeForStore(tree *domain.Tree) ([]WorkItem, error) {
	tree.CollapseEmptied()
	var items []WorkItem
	err := tree.Walk(func(n *domain.TaskNode) error {
		rec, err := domain.Reconcile(n.Flags())
		if err != nil {
			return fmt.Errorf("task %d: %w", n.ID(), err)
		}
		if rec.Action == domain.ActionNone {
			return nil
		}
		row := n.Row()
		if p := tree.Parent(n); p != nil {
			row.ParentID = p.ID()
		} else {
			row.ParentID = 0
		}
		items = append(items, WorkItem{Node: n, Row: row, Action: rec.Action, After: rec.After})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("organizing tasks for save: %w", err)
	}
	return items, nil
}

// Write applies items in order. A project version is created first when any
// item touches the store. Each task's flags are reset as soon as its own
// write succeeds; on failure the loop stops and the remaining tasks keep
// their flags, so a later save retries only those.
func (r *Reconciler) Write(ctx context.Context, store Store, items []WorkItem) (SaveResult, error) {
	res := SaveResult{Settled: map[int]bool{}}
	done := make(map[int]bool, len(items))

	needsVersion := false
	for _, it := range items {
		if it.Action.Writes() {
			needsVersion = true
			break
		}
	}
	if needsVersion {
		v, err := store.CreateVersion(ctx, r.now())
		if err != nil {
			return res, fmt.Errorf("creating project version: %w", err)
		}
		res.Version = v
	}

	var writeErr error
	for _, it := range items {
		if err := r.apply(ctx, store, res.Version, it); err != nil {
			writeErr = fmt.Errorf("saving task %d (%s): %w", it.Row.ID, it.Action, err)
			break
		}
		it.Node.SetFlags(it.After)
		done[it.Row.ID] = true
		if it.Action.Writes() {
			res.Written++
		}
	}

	for _, it := range items {
		if !done[it.Row.ID] {
			continue
		}
		if it.Action != domain.ActionSoftDelete && it.Action != domain.ActionNoop {
			continue
		}
		if subtreeDone(it.Node, done) {
			res.Settled[it.Row.ID] = true
		}
	}
	return res, writeErr
}

func (r *Reconciler) apply(ctx context.Context, store Store, v *domain.ProjectVersion, it WorkItem) error {
	at := r.now()
	switch it.Action {
	case domain.ActionNoop:
		return nil
	case domain.ActionInsert:
		return store.InsertTask(ctx, it.Row)
	case domain.ActionArchiveUpsert:
		return store.UpsertTask(ctx, v.ID, it.Row, at)
	case domain.ActionSoftDelete:
		found, err := store.SoftDeleteTask(ctx, v.ID, it.Row.ID, at)
		if err != nil {
			return err
		}
		if !found {
			r.logger.WarnContext(ctx, "soft delete of unsaved task",
				"task_id", it.Row.ID, "flags", it.Node.Flags().String(), "version_id", v.ID)
		}
		return nil
	default:
		return fmt.Errorf("action %q: %w", it.Action, domain.ErrReconciliationFlag)
	}
}

func subtreeDone(n *domain.TaskNode, done map[int]bool) bool {
	if !done[n.ID()] {
		return false
	}
	for _, c := range n.Children() {
		if !subtreeDone(c, done) {
			return false
		}
	}
	return true
}
