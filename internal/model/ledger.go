package model

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/estimator/internal/domain"
)

// Ledger is the ordered list of logged work days. Days added or changed since
// the last save are tracked by id until they are flushed.
type Ledger struct {
	days     []domain.WorkDay
	added    map[int]bool
	modified map[int]bool
}

func NewLedger() *Ledger {
	return &Ledger{added: map[int]bool{}, modified: map[int]bool{}}
}

// Days returns a copy of the ledger ordered by id.
func (l *Ledger) Days() []domain.WorkDay {
	out := make([]domain.WorkDay, len(l.days))
	copy(out, l.days)
	return out
}

func (l *Ledger) Len() int { return len(l.days) }

// CurrentID is the latest day's id, or 0 when nothing has been logged.
func (l *Ledger) CurrentID() int {
	if len(l.days) == 0 {
		return 0
	}
	return l.days[len(l.days)-1].ID
}

// Dirty reports whether any day still needs writing.
func (l *Ledger) Dirty() bool { return len(l.added) > 0 || len(l.modified) > 0 }

// Add appends a day with the next local id.
func (l *Ledger) Add(date time.Time, snapshot int) domain.WorkDay {
	d := domain.WorkDay{ID: l.CurrentID() + 1, Date: domain.DayOf(date), Snapshot: snapshot}
	l.days = append(l.days, d)
	l.added[d.ID] = true
	return d
}

// RecordProgress overwrites the latest day's snapshot.
func (l *Ledger) RecordProgress(percent int) error {
	if len(l.days) == 0 {
		return domain.ErrNoWorkDay
	}
	if percent < 0 || percent > 100 {
		return fmt.Errorf("progress %d out of range 0-100", percent)
	}
	last := &l.days[len(l.days)-1]
	if last.Snapshot == percent {
		return nil
	}
	last.Snapshot = percent
	if !l.added[last.ID] {
		l.modified[last.ID] = true
	}
	return nil
}

// Replace swaps in days read from the store and forgets pending changes.
func (l *Ledger) Replace(days []domain.WorkDay) {
	l.days = append(l.days[:0:0], days...)
	l.added = map[int]bool{}
	l.modified = map[int]bool{}
}

// MarkAllAdded queues every day for insertion, as when writing to a new file.
func (l *Ledger) MarkAllAdded() {
	l.modified = map[int]bool{}
	for _, d := range l.days {
		l.added[d.ID] = true
	}
}

func (l *Ledger) Clear() { l.Replace(nil) }

// Flush writes pending days in id order: updates for stored days changed this
// session, inserts for new ones. The ledger is then re-read so store ids
// replace local ones. Each day is cleared from the pending set as soon as its
// write succeeds.
func (l *Ledger) Flush(ctx context.Context, store Store) error {
	if !l.Dirty() {
		return nil
	}
	for _, d := range l.days {
		switch {
		case l.modified[d.ID]:
			if err := store.UpdateWorkDay(ctx, d); err != nil {
				return fmt.Errorf("updating work day %d: %w", d.ID, err)
			}
			delete(l.modified, d.ID)
		case l.added[d.ID]:
			if _, err := store.AppendWorkDay(ctx, d); err != nil {
				return fmt.Errorf("appending work day %s: %w", d.Date.Format("2006-01-02"), err)
			}
			delete(l.added, d.ID)
		}
	}
	days, err := store.WorkDays(ctx)
	if err != nil {
		return fmt.Errorf("reloading work days: %w", err)
	}
	l.Replace(days)
	return nil
}
