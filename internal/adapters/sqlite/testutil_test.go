// Package sqlite_test contains integration tests for SQLite repositories.
//
// # Schema Protection
//
// This file is the SINGLE POINT where the database schema is loaded for tests.
// All test setup functions use db.GetSchemaSQL() to ensure tests run against
// the authoritative schema, preventing drift between test and production.
//
// DO NOT hardcode CREATE TABLE statements in test files. Use setupTestDB()
// and the seed* helpers instead.
package sqlite_test

import (
	"database/sql"
	"fmt"
	"sync/atomic"
	"testing"

	_ "github.com/mattn/go-sqlite3"

	"github.com/example/civictrack/internal/db"
)

// setupTestDB creates an in-memory database with the authoritative schema.
// This is the single shared test database setup function for all repository
// tests. The in-memory database lives on a single connection, so the pool
// is capped at one.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	testDB, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	testDB.SetMaxOpenConns(1)

	if _, err := testDB.Exec("PRAGMA foreign_keys = ON"); err != nil {
		t.Fatalf("failed to enable foreign keys: %v", err)
	}

	// Use the authoritative schema from schema.go
	if _, err := testDB.Exec(db.GetSchemaSQL()); err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	t.Cleanup(func() {
		testDB.Close()
	})

	return testDB
}

var seedSeq int64

// seedUser inserts a test user with a unique email and phone and returns its ID.
func seedUser(t *testing.T, db *sql.DB, name, role string) int64 {
	t.Helper()
	n := atomic.AddInt64(&seedSeq, 1)
	result, err := db.Exec(
		"INSERT INTO users (name, phone, email, role, password_hash) VALUES (?, ?, ?, ?, 'test-hash')",
		name, fmt.Sprintf("90%08d", n), fmt.Sprintf("user%d@test.local", n), role,
	)
	if err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	id, _ := result.LastInsertId()
	return id
}

// seedCategory inserts a test category and returns its ID.
func seedCategory(t *testing.T, db *sql.DB, name string) int64 {
	t.Helper()
	result, err := db.Exec("INSERT INTO categories (name) VALUES (?)", name)
	if err != nil {
		t.Fatalf("failed to seed category: %v", err)
	}
	id, _ := result.LastInsertId()
	return id
}

// seedLocation inserts a test location and returns its ID.
func seedLocation(t *testing.T, db *sql.DB, area string) int64 {
	t.Helper()
	result, err := db.Exec(
		"INSERT INTO locations (area, address) VALUES (?, ?)", area, area+" Main Road",
	)
	if err != nil {
		t.Fatalf("failed to seed location: %v", err)
	}
	id, _ := result.LastInsertId()
	return id
}

// seedIssue inserts a test issue in Pending and returns its ID.
func seedIssue(t *testing.T, db *sql.DB, reporterID, categoryID, locationID int64, severity string) int64 {
	t.Helper()
	result, err := db.Exec(
		"INSERT INTO issues (user_id, category_id, location_id, status_id, description, severity) VALUES (?, ?, ?, 1, 'seeded issue', ?)",
		reporterID, categoryID, locationID, severity,
	)
	if err != nil {
		t.Fatalf("failed to seed issue: %v", err)
	}
	id, _ := result.LastInsertId()
	return id
}

// seedIssueAt inserts a test issue with an explicit creation time.
func seedIssueAt(t *testing.T, db *sql.DB, reporterID, categoryID, locationID int64, severity, createdAt string) int64 {
	t.Helper()
	result, err := db.Exec(
		"INSERT INTO issues (user_id, category_id, location_id, status_id, description, severity, created_at, updated_at) VALUES (?, ?, ?, 1, 'seeded issue', ?, ?, ?)",
		reporterID, categoryID, locationID, severity, createdAt, createdAt,
	)
	if err != nil {
		t.Fatalf("failed to seed issue: %v", err)
	}
	id, _ := result.LastInsertId()
	return id
}

// seedHistory inserts a ledger entry with an explicit timestamp and returns its ID.
func seedHistory(t *testing.T, db *sql.DB, issueID, oldStatusID, newStatusID, actorID int64, timestamp string) int64 {
	t.Helper()
	result, err := db.Exec(
		"INSERT INTO resolution_history (issue_id, old_status_id, new_status_id, changed_by, timestamp) VALUES (?, ?, ?, ?, ?)",
		issueID, oldStatusID, newStatusID, actorID, timestamp,
	)
	if err != nil {
		t.Fatalf("failed to seed history: %v", err)
	}
	id, _ := result.LastInsertId()
	return id
}
