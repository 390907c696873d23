package schema

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// ErrTableNotFound is returned by Probe when the table has no columns,
// which is how SQLite reports a table that does not exist.
var ErrTableNotFound = errors.New("no such table")

// Querier runs a read query. *store.Store satisfies it.
type Querier interface {
	Query(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// Column is one column of a probed table.
type Column struct {
	Name string
	Type string // declared type, may be empty
	Role Role
}

// Table is the classified column list of one table, in declaration order.
type Table struct {
	Name    string
	Columns []Column
}

// Digest returns the scalar digest column names.
func (t *Table) Digest() []string {
	return t.names(RoleDigest)
}

// ListDigest returns the list-valued digest column name, or "" if the
// table has none.
func (t *Table) ListDigest() string {
	names := t.names(RoleListDigest)
	if len(names) == 0 {
		return ""
	}
	return names[0]
}

// FreeText returns the address-like column names.
func (t *Table) FreeText() []string {
	return t.names(RoleFreeText)
}

func (t *Table) names(role Role) []string {
	var out []string
	for _, c := range t.Columns {
		if c.Role == role {
			out = append(out, c.Name)
		}
	}
	return out
}

// Probe reads the column metadata of table and classifies every column.
// The table name is bound as a parameter, never interpolated.
//
// The column set is the one SELECT * returns: ordinary columns plus
// generated columns (hidden 2 and 3), without virtual-table hidden columns.
//
// Returns an error wrapping ErrTableNotFound if the table does not exist.
func Probe(ctx context.Context, q Querier, table string, rules Rules) (*Table, error) {
	rows, err := q.Query(ctx, `
		SELECT name, type
		FROM pragma_table_xinfo(?)
		WHERE hidden IN (0, 2, 3)
		ORDER BY cid ASC
	`, table)
	if err != nil {
		return nil, fmt.Errorf("read columns of %q: %w", table, err)
	}
	defer rows.Close()

	t := &Table{Name: table}
	for rows.Next() {
		var name string
		var typ sql.NullString
		if err := rows.Scan(&name, &typ); err != nil {
			return nil, fmt.Errorf("scan column of %q: %w", table, err)
		}
		t.Columns = append(t.Columns, Column{
			Name: name,
			Type: typ.String,
			Role: rules.Classify(name),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate columns of %q: %w", table, err)
	}

	if len(t.Columns) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrTableNotFound, table)
	}

	return t, nil
}
