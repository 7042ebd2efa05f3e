package domain

import "time"

// SnapshotNotRecorded marks a work day whose progress has not been captured.
const SnapshotNotRecorded = -1

// WorkDay is one entry of the work-day ledger.
type WorkDay struct {
	ID       int
	Date     time.Time // day granularity
	Snapshot int
}

// DayOf truncates t to its calendar day in t's location.
func DayOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
