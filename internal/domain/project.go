package domain

import "time"

// SchemaVersion is the store layout this build reads and writes.
const SchemaVersion = 1

// DefaultMinutesPerWorkDay is a 7.5 hour day.
const DefaultMinutesPerWorkDay = 450

// TaskRow is the flat persisted form of a task.
type TaskRow struct {
	ID               int
	ParentID         int // 0 for the root
	Description      string
	EstimatedMinutes int
	MinimumMinutes   int
	MaximumMinutes   int
	PercentComplete  int
	TimeSpentMinutes int
	IsDeleted        bool
}

// ArchiveRow is a snapshot of a task row taken before it was overwritten.
type ArchiveRow struct {
	ArchiveID        int
	ProjectVersionID int
	TaskRow
	ArchivedAt time.Time
}

// ProjectVersion groups the archive rows written by one save.
type ProjectVersion struct {
	ID        int
	CreatedAt time.Time
}

// Metadata holds the key/value rows of a project store.
type Metadata struct {
	SchemaVersion     int
	LastUpdate        time.Time
	StartDate         *time.Time
	MinutesPerWorkDay int
}
