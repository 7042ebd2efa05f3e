package domain

import "fmt"

// ChangeFlags records what happened to a task since the last successful save.
type ChangeFlags uint8

const (
	Unchanged ChangeFlags = 0
	Added     ChangeFlags = 1 << 0
	Modified  ChangeFlags = 1 << 1
	Deleted   ChangeFlags = 1 << 2

	allFlags = Added | Modified | Deleted
)

func (f ChangeFlags) Has(flag ChangeFlags) bool { return f&flag == flag }

func (f ChangeFlags) String() string {
	if f == Unchanged {
		return "unchanged"
	}
	s := ""
	for _, p := range []struct {
		flag ChangeFlags
		name string
	}{{Added, "added"}, {Modified, "modified"}, {Deleted, "deleted"}} {
		if f.Has(p.flag) {
			if s != "" {
				s += "|"
			}
			s += p.name
		}
	}
	if f&^allFlags != 0 {
		s += fmt.Sprintf("|0x%02x", uint8(f&^allFlags))
	}
	return s
}

// SaveAction is the store operation a task needs on the next save.
type SaveAction string

const (
	ActionNone          SaveAction = "none"
	ActionNoop          SaveAction = "noop"
	ActionInsert        SaveAction = "insert"
	ActionArchiveUpsert SaveAction = "archive_upsert"
	ActionSoftDelete    SaveAction = "soft_delete"
)

// Writes reports whether the action touches the store.
func (a SaveAction) Writes() bool {
	return a == ActionInsert || a == ActionArchiveUpsert || a == ActionSoftDelete
}

// Archives reports whether the stored row is copied to the archive first.
func (a SaveAction) Archives() bool {
	return a == ActionArchiveUpsert || a == ActionSoftDelete
}

// Reconciliation is one row of the save action table.
type Reconciliation struct {
	Action SaveAction
	After  ChangeFlags
}

// saveActions covers every combination of the three flags. An item that was
// added and deleted before it was ever saved reduces to a no-op. The
// added+modified+deleted row soft-deletes even though no stored row exists
// yet; the store reports that nothing was affected.
var saveActions = [8]Reconciliation{
	Unchanged:                  {ActionNone, Unchanged},
	Deleted:                    {ActionSoftDelete, Deleted},
	Modified:                   {ActionArchiveUpsert, Unchanged},
	Modified | Deleted:         {ActionSoftDelete, Deleted},
	Added:                      {ActionInsert, Unchanged},
	Added | Deleted:            {ActionNoop, Unchanged},
	Added | Modified:           {ActionInsert, Unchanged},
	Added | Modified | Deleted: {ActionSoftDelete, Deleted},
}

// Reconcile reduces a flag combination to its save action and post-save flags.
func Reconcile(f ChangeFlags) (Reconciliation, error) {
	if f&^allFlags != 0 {
		return Reconciliation{}, fmt.Errorf("flags %s: %w", f, ErrReconciliationFlag)
	}
	return saveActions[f], nil
}
