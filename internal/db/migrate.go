package db

import (
	"database/sql"
	"fmt"
)

// Migrate lays down the project store schema. Statements are idempotent.
func Migrate(db *sql.DB) error {
	for i, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("schema statement %d: %w", i, err)
		}
	}
	return nil
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS ProjectMetaData (
		ProjectMetaDataID INTEGER NOT NULL PRIMARY KEY,
		IntegralValue     INTEGER NULL,
		StringValue       TEXT NULL,
		DateTimeValue     TEXT NULL,
		RealValue         REAL NULL
	)`,

	`CREATE TABLE IF NOT EXISTS DaysWorked (
		DaysWorkedID              INTEGER NOT NULL PRIMARY KEY,
		CalendarDate              TEXT NOT NULL,
		ProjectPercentageComplete INTEGER NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS ProjectVersion (
		ProjectVersionID INTEGER NOT NULL PRIMARY KEY,
		VersionDate      TEXT NOT NULL
	)`,

	// Parents are written in pre-order but the reference is not enforced:
	// insert-or-replace of a parent row would otherwise trip the constraint.
	`CREATE TABLE IF NOT EXISTS TaskItem (
		TaskItemID           INTEGER NOT NULL PRIMARY KEY,
		ParentTaskItemID     INTEGER NULL,
		ItemDescription      TEXT NOT NULL,
		EstimatedTimeMinutes INTEGER NOT NULL,
		MinimumTimeMinutes   INTEGER NOT NULL,
		MaximumTimeMinutes   INTEGER NOT NULL,
		PercentageComplete   INTEGER NOT NULL,
		TimeSpentMinutes     INTEGER NOT NULL,
		IsDeleted            INTEGER NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_task_item_parent ON TaskItem(ParentTaskItemID)`,

	`CREATE TABLE IF NOT EXISTS TaskItemArchive (
		TaskItemArchiveID    INTEGER NOT NULL PRIMARY KEY,
		ProjectVersionID     INTEGER NOT NULL REFERENCES ProjectVersion(ProjectVersionID),
		TaskItemID           INTEGER NOT NULL,
		ParentTaskItemID     INTEGER NULL,
		ItemDescription      TEXT NOT NULL,
		EstimatedTimeMinutes INTEGER NOT NULL,
		MinimumTimeMinutes   INTEGER NOT NULL,
		MaximumTimeMinutes   INTEGER NOT NULL,
		PercentageComplete   INTEGER NOT NULL,
		TimeSpentMinutes     INTEGER NOT NULL,
		IsDeleted            INTEGER NULL,
		ArchiveTime          TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_task_item_archive_task ON TaskItemArchive(TaskItemID)`,
	`CREATE INDEX IF NOT EXISTS idx_task_item_archive_version ON TaskItemArchive(ProjectVersionID)`,

	`CREATE TABLE IF NOT EXISTS TaskItemNote (
		TaskItemNoteID INTEGER NOT NULL PRIMARY KEY,
		TaskItemID     INTEGER NOT NULL,
		IsHandled      INTEGER NULL,
		NoteText       TEXT NOT NULL
	)`,
}
