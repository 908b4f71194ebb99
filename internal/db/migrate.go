package db

import (
	"database/sql"
	"fmt"
)

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS scan_reports (
		id           TEXT PRIMARY KEY,
		package_path TEXT NOT NULL,
		module_type  TEXT NOT NULL,
		edition      TEXT NOT NULL,
		identifier   TEXT NOT NULL DEFAULT '',
		title        TEXT NOT NULL DEFAULT '',
		description  TEXT NOT NULL DEFAULT '',
		launch_url   TEXT NOT NULL DEFAULT '',
		status       TEXT NOT NULL
		             CHECK(status IN ('valid','with_warnings','with_errors')),
		scanned_at   TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS scan_issues (
		report_id     TEXT NOT NULL REFERENCES scan_reports(id) ON DELETE CASCADE,
		position      INTEGER NOT NULL,
		code          TEXT NOT NULL,
		severity      TEXT NOT NULL CHECK(severity IN ('error','warning')),
		message       TEXT NOT NULL,
		location      TEXT NOT NULL DEFAULT '',
		suggested_fix TEXT NOT NULL DEFAULT '',
		PRIMARY KEY (report_id, position)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_scan_reports_package
		ON scan_reports(package_path, scanned_at)`,

	`CREATE INDEX IF NOT EXISTS idx_scan_issues_code
		ON scan_issues(code)`,
}

// Migrate runs all schema migrations. Statements are idempotent so the
// full list re-runs safely on every open.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}
