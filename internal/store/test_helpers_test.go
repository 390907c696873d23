package store

import (
	"database/sql"
	"path/filepath"
	"testing"
)

// seedDatabase creates a database file with the given statements applied
// through a writable connection and returns its path.
func seedDatabase(t *testing.T, stmts ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		t.Fatalf("sql.Open() failed: %v", err)
	}
	defer db.Close()

	// Force file creation even with no statements
	if _, err := db.Exec("PRAGMA user_version = 1"); err != nil {
		t.Fatalf("create database: %v", err)
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			t.Fatalf("seed %q: %v", stmt, err)
		}
	}
	return path
}

// openSeeded seeds a database and opens it through Open.
func openSeeded(t *testing.T, stmts ...string) *Store {
	t.Helper()
	s, err := Open(seedDatabase(t, stmts...))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}
