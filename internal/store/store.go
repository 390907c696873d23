package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/roach88/hashlookup/internal/result"
)

// Store is a read-only handle on an identity database.
type Store struct {
	db *sql.DB
}

// Open opens the SQLite database at path read-only.
// Fails if the file does not exist or is not a database.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", dsn(path))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// One invocation, one connection
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	// Verify connection works (sql.Open is lazy)
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply pragmas: %w", err)
	}

	// A non-database file only fails on first read
	if err := checkDatabase(db); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

// uriPathEscaper escapes the characters that would end the path part of an
// SQLite URI filename.
var uriPathEscaper = strings.NewReplacer("%", "%25", "?", "%3f", "#", "%23")

// dsn builds a read-only SQLite URI for path.
func dsn(path string) string {
	return "file:" + uriPathEscaper.Replace(path) + "?mode=ro"
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// DB returns the underlying sql.DB for direct queries.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Query executes a query and returns the resulting rows.
// Callers are responsible for closing the returned rows.
func (s *Store) Query(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return s.db.QueryContext(ctx, query, args...)
}

// QuerySet executes a query and collects every row as text.
func (s *Store) QuerySet(ctx context.Context, query string, args ...any) (result.Set, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("prepare query: %w", err)
	}
	defer rows.Close()

	return Collect(rows)
}

// requiredPragmas are set on open and read back to confirm they took effect.
var requiredPragmas = []struct {
	name  string
	value string
}{
	{"query_only", "1"},
	{"busy_timeout", "5000"},
}

// applyPragmas sets required SQLite configuration.
func applyPragmas(db *sql.DB) error {
	for _, p := range requiredPragmas {
		pragma := fmt.Sprintf("PRAGMA %s = %s", p.name, p.value)
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("failed to execute %q: %w", pragma, err)
		}
		if err := verifyPragma(db, p.name, p.value); err != nil {
			return err
		}
	}

	return nil
}

// checkDatabase reads the schema header so that a file which is not an
// SQLite database is reported at open time.
func checkDatabase(db *sql.DB) error {
	var n int
	if err := db.QueryRow("SELECT count(*) FROM sqlite_master").Scan(&n); err != nil {
		return fmt.Errorf("failed to read database: %w", err)
	}
	return nil
}

// verifyPragma checks that a pragma is set to the expected value.
func verifyPragma(db *sql.DB, name, expected string) error {
	var value string
	query := fmt.Sprintf("PRAGMA %s", name)
	if err := db.QueryRow(query).Scan(&value); err != nil {
		return fmt.Errorf("failed to query %s: %w", name, err)
	}
	if value != expected {
		return fmt.Errorf("%s = %q, expected %q", name, value, expected)
	}
	return nil
}
