package db

// SchemaSQL is the complete schema for fresh civictrack installs.
//
// This is the SINGLE SOURCE OF TRUTH for the database schema. All tests use
// this schema via GetSchemaSQL(): if repository code references a column that
// doesn't exist here, tests fail immediately with "no such column", catching
// drift at development time instead of production.
//
// When adding new columns or tables:
//  1. Add a migration in internal/db/migrations.go
//  2. Update SchemaSQL here
//  3. Run `make test` to verify alignment
const SchemaSQL = `
-- Users (citizens who report issues, staff who work them)
CREATE TABLE IF NOT EXISTS users (
	user_id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL,
	phone TEXT NOT NULL UNIQUE,
	email TEXT NOT NULL UNIQUE,
	role TEXT NOT NULL CHECK(role IN ('citizen', 'staff')) DEFAULT 'citizen',
	password_hash TEXT NOT NULL,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Categories (reference data: pothole, streetlight, garbage, ...)
CREATE TABLE IF NOT EXISTS categories (
	category_id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL UNIQUE
);

-- Locations (reference data: area plus optional address and coordinates)
CREATE TABLE IF NOT EXISTS locations (
	location_id INTEGER PRIMARY KEY AUTOINCREMENT,
	area TEXT NOT NULL,
	address TEXT,
	latitude REAL,
	longitude REAL
);

-- Status vocabulary (closed set, stable numeric identities)
CREATE TABLE IF NOT EXISTS status (
	status_id INTEGER PRIMARY KEY,
	status_name TEXT NOT NULL UNIQUE
);

INSERT OR IGNORE INTO status (status_id, status_name) VALUES
	(1, 'Pending'),
	(2, 'In-Progress'),
	(3, 'Resolved'),
	(4, 'Closed'),
	(5, 'Duplicate');

-- Issues (current state of each report)
CREATE TABLE IF NOT EXISTS issues (
	issue_id INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id INTEGER NOT NULL,
	category_id INTEGER NOT NULL,
	location_id INTEGER NOT NULL,
	status_id INTEGER NOT NULL DEFAULT 1,
	description TEXT NOT NULL,
	severity TEXT NOT NULL CHECK(severity IN ('Low', 'Medium', 'High')),
	photo_path TEXT,
	master_issue_id INTEGER,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	FOREIGN KEY (user_id) REFERENCES users(user_id),
	FOREIGN KEY (category_id) REFERENCES categories(category_id),
	FOREIGN KEY (location_id) REFERENCES locations(location_id),
	FOREIGN KEY (status_id) REFERENCES status(status_id),
	FOREIGN KEY (master_issue_id) REFERENCES issues(issue_id)
);

CREATE INDEX IF NOT EXISTS idx_issues_user ON issues(user_id);
CREATE INDEX IF NOT EXISTS idx_issues_status ON issues(status_id);
CREATE INDEX IF NOT EXISTS idx_issues_category ON issues(category_id);
CREATE INDEX IF NOT EXISTS idx_issues_location ON issues(location_id);
CREATE INDEX IF NOT EXISTS idx_issues_created ON issues(created_at);

-- Resolution history (append-only ledger of status transitions).
-- Rows are only ever inserted, in the same transaction as the issue update.
CREATE TABLE IF NOT EXISTS resolution_history (
	history_id INTEGER PRIMARY KEY AUTOINCREMENT,
	issue_id INTEGER NOT NULL,
	old_status_id INTEGER NOT NULL,
	new_status_id INTEGER NOT NULL,
	changed_by INTEGER NOT NULL,
	timestamp DATETIME DEFAULT CURRENT_TIMESTAMP,
	FOREIGN KEY (issue_id) REFERENCES issues(issue_id),
	FOREIGN KEY (old_status_id) REFERENCES status(status_id),
	FOREIGN KEY (new_status_id) REFERENCES status(status_id),
	FOREIGN KEY (changed_by) REFERENCES users(user_id)
);

CREATE INDEX IF NOT EXISTS idx_history_issue ON resolution_history(issue_id);
CREATE INDEX IF NOT EXISTS idx_history_new_status ON resolution_history(new_status_id);
`

// InitSchema creates the database schema
func InitSchema() error {
	db, err := GetDB()
	if err != nil {
		return err
	}

	// Check if schema_version table exists to determine if this is a fresh install
	var tableCount int
	err = db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='schema_version'").Scan(&tableCount)
	if err != nil {
		return err
	}

	if tableCount == 0 {
		// Completely fresh install - create the schema directly and mark all
		// migrations as applied so the runner skips them.
		if _, err := db.Exec(SchemaSQL); err != nil {
			return err
		}
		_, err = db.Exec(`
			CREATE TABLE IF NOT EXISTS schema_version (
				version INTEGER PRIMARY KEY,
				applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
			)
		`)
		if err != nil {
			return err
		}
		for _, m := range migrations {
			if _, err := db.Exec("INSERT INTO schema_version (version) VALUES (?)", m.Version); err != nil {
				return err
			}
		}
		return nil
	}

	// schema_version table exists - run any pending migrations
	return RunMigrations()
}

// GetSchemaSQL returns the authoritative schema SQL for use by tests.
// Tests should use this instead of hardcoding their own schema to prevent drift.
func GetSchemaSQL() string {
	return SchemaSQL
}
