package cli

import (
	"bytes"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/roach88/hashlookup/internal/digest"
	"github.com/roach88/hashlookup/internal/lookup"
)

// createDB applies stmts to a fresh database file and returns its path.
func createDB(t *testing.T, stmts ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "identity.db")

	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	defer db.Close()

	for _, stmt := range stmts {
		_, err := db.Exec(stmt)
		require.NoError(t, err, stmt)
	}
	return path
}

// createTestDB writes a small identity table to a temp file and returns its path.
func createTestDB(t *testing.T) string {
	t.Helper()
	return createDB(t,
		`CREATE TABLE people (id INTEGER, name TEXT, street TEXT, phone_sha256 TEXT, row_hashes TEXT)`,
		fmt.Sprintf(`INSERT INTO people VALUES (1, 'Ada', 'Main Street', '%s', NULL)`,
			digest.String("+14155550100")),
		fmt.Sprintf(`INSERT INTO people VALUES (2, 'Bob', 'Elm Road', NULL, '["%s"]')`,
			digest.String("bob@example.com")),
	)
}

// execute runs the root command with args and returns stdout, stderr and the error.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	if args == nil {
		args = []string{}
	}
	cmd := NewRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func countRows(out string) int {
	return strings.Count(out, "---- Row ----")
}

// errorKind returns the lookup error kind carried by err, or "" if none.
func errorKind(err error) lookup.ErrorKind {
	var le *lookup.Error
	if errors.As(err, &le) {
		return le.Kind
	}
	return ""
}

// chdir changes the working directory to dir for the duration of the test,
// restoring the previous directory on cleanup (testing.T.Chdir needs Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { require.NoError(t, os.Chdir(prev)) })
}
