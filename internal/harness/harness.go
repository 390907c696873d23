package harness

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/roach88/hashlookup/internal/digest"
	"github.com/roach88/hashlookup/internal/lookup"
	"github.com/roach88/hashlookup/internal/querysql"
	"github.com/roach88/hashlookup/internal/schema"
	"github.com/roach88/hashlookup/internal/store"
)

// DigestPrefix marks a seed string to be stored as its SHA-256 hex digest.
const DigestPrefix = "sha256:"

// Run executes a scenario and returns the result.
//
// Each scenario runs against a fresh database file that is seeded through
// a writable connection and then reopened read-only through store.Open,
// exactly as the CLI opens it.
func Run(scenario *Scenario) (*Result, error) {
	return RunContext(context.Background(), scenario)
}

// RunContext is Run with a caller-supplied context.
func RunContext(ctx context.Context, scenario *Scenario) (*Result, error) {
	dir, err := os.MkdirTemp("", "hashlookup-scenario-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create scenario directory: %w", err)
	}
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "scenario.db")
	if err := seed(path, scenario.Tables); err != nil {
		return nil, fmt.Errorf("failed to seed database: %w", err)
	}

	st, err := store.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open seeded store: %w", err)
	}
	defer st.Close()

	res := NewResult()
	for i, step := range scenario.Lookups {
		sr := runStep(ctx, st, step)
		res.Steps = append(res.Steps, sr)

		for _, err := range checkExpect(step, sr) {
			res.AddError(fmt.Sprintf("lookups[%d] %s: %v", i, stepName(step), err))
		}
	}

	return res, nil
}

func runStep(ctx context.Context, st *store.Store, step LookupStep) StepResult {
	rules := schema.DefaultRules()
	if step.ListColumn != nil {
		rules.ListColumn = *step.ListColumn
	}

	sr := StepResult{
		Name:  stepName(step),
		Mode:  lookup.Mode(step.Mode),
		Table: step.Table,
		Query: step.Query,
	}

	rows, err := lookup.New(st, rules).Lookup(ctx, sr.Mode, step.Table, step.Query)
	if err != nil {
		sr.Err = err
		var le *lookup.Error
		if errors.As(err, &le) {
			sr.ErrorKind = le.Kind
		}
		return sr
	}
	sr.Rows = rows
	return sr
}

func stepName(step LookupStep) string {
	if step.Name != "" {
		return step.Name
	}
	return fmt.Sprintf("%s %s %q", step.Mode, step.Table, step.Query)
}

// seed creates every table and inserts its rows in one transaction.
func seed(path string, tables []TableDef) error {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return err
	}
	defer db.Close()

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	// Force file creation when the scenario has no tables
	if _, err := tx.Exec("PRAGMA user_version = 1"); err != nil {
		return err
	}

	for _, t := range tables {
		ddl, err := createTableSQL(t)
		if err != nil {
			return err
		}
		if _, err := tx.Exec(ddl); err != nil {
			return fmt.Errorf("create table %s: %w", t.Name, err)
		}

		for i, row := range t.Rows {
			stmt, args, err := insertSQL(t, row)
			if err != nil {
				return fmt.Errorf("table %s row %d: %w", t.Name, i, err)
			}
			if _, err := tx.Exec(stmt, args...); err != nil {
				return fmt.Errorf("table %s row %d: %w", t.Name, i, err)
			}
		}
	}

	return tx.Commit()
}

func createTableSQL(t TableDef) (string, error) {
	name, err := querysql.QuoteIdent(t.Name)
	if err != nil {
		return "", err
	}

	defs := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		col, err := querysql.QuoteIdent(c.Name)
		if err != nil {
			return "", err
		}
		defs[i] = strings.TrimSpace(col + " " + c.Type)
	}
	return fmt.Sprintf("CREATE TABLE %s (%s)", name, strings.Join(defs, ", ")), nil
}

// insertSQL binds the row's values in column declaration order.
func insertSQL(t TableDef, row map[string]any) (string, []any, error) {
	name, err := querysql.QuoteIdent(t.Name)
	if err != nil {
		return "", nil, err
	}

	var cols, marks []string
	var args []any
	for _, c := range t.Columns {
		v, ok := row[c.Name]
		if !ok {
			continue
		}
		col, err := querysql.QuoteIdent(c.Name)
		if err != nil {
			return "", nil, err
		}
		val, err := SeedValue(v)
		if err != nil {
			return "", nil, fmt.Errorf("column %s: %w", c.Name, err)
		}
		cols = append(cols, col)
		marks = append(marks, "?")
		args = append(args, val)
	}

	if len(cols) == 0 {
		return fmt.Sprintf("INSERT INTO %s DEFAULT VALUES", name), nil, nil
	}
	stmt := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		name, strings.Join(cols, ", "), strings.Join(marks, ", "))
	return stmt, args, nil
}

// SeedValue resolves a YAML seed value to the value bound on insert.
func SeedValue(v any) (any, error) {
	switch val := v.(type) {
	case nil:
		return nil, nil
	case string:
		if rest, ok := strings.CutPrefix(val, DigestPrefix); ok {
			return digest.String(rest), nil
		}
		return val, nil
	case int, int64, float64, bool:
		return val, nil
	case []any:
		elems := make([]any, len(val))
		for i, e := range val {
			if _, nested := e.([]any); nested {
				return nil, fmt.Errorf("nested list at index %d", i)
			}
			r, err := SeedValue(e)
			if err != nil {
				return nil, err
			}
			elems[i] = r
		}
		data, err := json.Marshal(elems)
		if err != nil {
			return nil, err
		}
		return string(data), nil
	default:
		return nil, fmt.Errorf("unsupported seed value type %T", v)
	}
}
