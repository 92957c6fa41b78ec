package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations.
// The full list re-runs on every start; CREATE statements are guarded with
// IF NOT EXISTS and ALTER TABLE statements tolerate "duplicate column name",
// so an already-migrated database passes through unchanged.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS artifacts (
		filename   TEXT    NOT NULL,
		version    INTEGER NOT NULL CHECK(version > 0),
		mime       TEXT    NOT NULL DEFAULT 'text/markdown',
		size_bytes INTEGER NOT NULL DEFAULT 0,
		sha256     TEXT    NOT NULL DEFAULT '',
		metadata   TEXT    NOT NULL DEFAULT '{}',
		created_at TEXT    NOT NULL,
		PRIMARY KEY (filename, version)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_artifacts_created ON artifacts(created_at)`,

	`CREATE TABLE IF NOT EXISTS runs (
		id               TEXT PRIMARY KEY,
		course_name      TEXT    NOT NULL DEFAULT '',
		chapter_count    INTEGER NOT NULL DEFAULT 0,
		total_days       INTEGER NOT NULL DEFAULT 0,
		total_study_days INTEGER NOT NULL DEFAULT 0,
		total_hours      REAL    NOT NULL DEFAULT 0,
		ok               INTEGER NOT NULL DEFAULT 0,
		hard_violations  INTEGER NOT NULL DEFAULT 0,
		soft_warnings    INTEGER NOT NULL DEFAULT 0,
		start_date       TEXT,
		topics_json      TEXT    NOT NULL DEFAULT '{}',
		plan_json        TEXT    NOT NULL DEFAULT '{}',
		artifact_filename TEXT,
		artifact_version  INTEGER,
		created_at       TEXT    NOT NULL,
		FOREIGN KEY (artifact_filename, artifact_version)
		            REFERENCES artifacts(filename, version)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at)`,

	// Record which path produced the plan: LLM or deterministic fallback
	`ALTER TABLE runs ADD COLUMN source TEXT NOT NULL DEFAULT 'llm'`,
}
