package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations. Statements are idempotent and re-run
// on every startup.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS works (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'in_progress'
			CHECK (status IN ('in_progress', 'completed', 'archived')),
		deadline TEXT,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,

	// One row per work unit, adjacency-list style. stage_index is NULL for
	// branches and set for leaves; that single column distinguishes the two
	// node variants.
	`CREATE TABLE IF NOT EXISTS work_units (
		id TEXT PRIMARY KEY,
		work_id TEXT NOT NULL REFERENCES works(id) ON DELETE CASCADE,
		parent_id TEXT REFERENCES work_units(id) ON DELETE CASCADE,
		idx INTEGER NOT NULL,
		stage_index INTEGER
	)`,
	`CREATE INDEX IF NOT EXISTS idx_work_units_work ON work_units(work_id)`,
	`CREATE INDEX IF NOT EXISTS idx_work_units_parent ON work_units(parent_id)`,

	// Stage tables and granularity registries are work-scoped; the empty
	// work_id holds the user defaults that seed new works.
	`CREATE TABLE IF NOT EXISTS stages (
		work_id TEXT NOT NULL DEFAULT '',
		stage_id INTEGER NOT NULL,
		position INTEGER NOT NULL,
		label TEXT NOT NULL,
		color TEXT NOT NULL DEFAULT '',
		base_hours REAL,
		PRIMARY KEY (work_id, stage_id)
	)`,

	`CREATE TABLE IF NOT EXISTS granularities (
		work_id TEXT NOT NULL DEFAULT '',
		gran_id TEXT NOT NULL,
		position INTEGER NOT NULL,
		label TEXT NOT NULL,
		weight INTEGER NOT NULL,
		default_count INTEGER NOT NULL DEFAULT 1,
		PRIMARY KEY (work_id, gran_id)
	)`,

	`CREATE TABLE IF NOT EXISTS snapshots (
		id TEXT PRIMARY KEY,
		work_id TEXT NOT NULL REFERENCES works(id) ON DELETE CASCADE,
		taken_at TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_snapshots_work ON snapshots(work_id)`,

	`CREATE TABLE IF NOT EXISTS snapshot_counts (
		snapshot_id TEXT NOT NULL REFERENCES snapshots(id) ON DELETE CASCADE,
		stage_id INTEGER NOT NULL,
		count INTEGER NOT NULL,
		PRIMARY KEY (snapshot_id, stage_id)
	)`,
}
