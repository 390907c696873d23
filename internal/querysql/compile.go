package querysql

import (
	"fmt"
	"strings"

	"github.com/roach88/hashlookup/internal/queryir"
)

// tableAlias is the alias every compiled statement gives its source table.
// ListContains correlates json_each against it.
const tableAlias = "t"

// SQLCompiler compiles lookup IR to parameterized SQL for SQLite.
//
// CRITICAL: Identifiers (table, column, tag names) are always double-quoted
// with embedded quotes doubled. Values are always bound, never interpolated.
//
// No ORDER BY is emitted: results follow the table's natural row order.
type SQLCompiler struct{}

// NewSQLCompiler creates a new SQLCompiler.
func NewSQLCompiler() *SQLCompiler {
	return &SQLCompiler{}
}

// Compile converts a query to parameterized SQL.
// Returns (sql, params, error). The query is validated first.
func (c *SQLCompiler) Compile(q queryir.Query) (string, []any, error) {
	if err := queryir.Validate(q); err != nil {
		return "", nil, fmt.Errorf("invalid query: %w", err)
	}

	switch query := q.(type) {
	case queryir.Select:
		return c.compileSelect(query)
	case *queryir.Select:
		return c.compileSelect(*query)
	default:
		return "", nil, fmt.Errorf("unsupported query type: %T", q)
	}
}

// compileSelect compiles a queryir.Select to SQL.
func (c *SQLCompiler) compileSelect(q queryir.Select) (string, []any, error) {
	table, err := QuoteIdent(q.Table)
	if err != nil {
		return "", nil, err
	}

	var params []any

	selectClause, err := c.compileProjection(q.Columns)
	if err != nil {
		return "", nil, err
	}
	if q.Tag != nil {
		tagName, err := QuoteIdent(q.Tag.Name)
		if err != nil {
			return "", nil, err
		}
		selectClause += ", ? AS " + tagName
		params = append(params, q.Tag.Value)
	}

	var whereClause string
	if q.Filter != nil {
		filterSQL, filterParams, err := c.compilePredicate(q.Filter)
		if err != nil {
			return "", nil, fmt.Errorf("compile filter: %w", err)
		}
		whereClause = " WHERE " + filterSQL
		params = append(params, filterParams...)
	}

	sql := fmt.Sprintf("SELECT %s FROM %s AS %s%s",
		selectClause,
		table,
		tableAlias,
		whereClause)

	return sql, params, nil
}

// compileProjection builds the column list. Each column is cast to TEXT so
// values reach the caller exactly as SQLite renders them, whatever the
// declared type.
func (c *SQLCompiler) compileProjection(columns []string) (string, error) {
	if len(columns) == 0 {
		return tableAlias + ".*", nil
	}

	parts := make([]string, 0, len(columns))
	for _, name := range columns {
		quoted, err := QuoteIdent(name)
		if err != nil {
			return "", err
		}
		parts = append(parts, fmt.Sprintf("CAST(%s.%s AS TEXT) AS %s", tableAlias, quoted, quoted))
	}
	return strings.Join(parts, ", "), nil
}

// compilePredicate compiles a predicate to a WHERE clause fragment.
// CRITICAL: Values NEVER interpolated - always use ? placeholders.
func (c *SQLCompiler) compilePredicate(p queryir.Predicate) (string, []any, error) {
	switch pred := p.(type) {
	case queryir.Equals:
		return c.compileEquals(pred)
	case *queryir.Equals:
		return c.compileEquals(*pred)
	case queryir.In:
		return c.compileIn(pred)
	case *queryir.In:
		return c.compileIn(*pred)
	case queryir.ContainsFold:
		return c.compileContainsFold(pred)
	case *queryir.ContainsFold:
		return c.compileContainsFold(*pred)
	case queryir.ListContains:
		return c.compileListContains(pred)
	case *queryir.ListContains:
		return c.compileListContains(*pred)
	case queryir.Or:
		return c.compileOr(pred)
	case *queryir.Or:
		return c.compileOr(*pred)
	default:
		return "", nil, fmt.Errorf("unsupported predicate type: %T", p)
	}
}

// compileEquals compiles to `t."col" = ?`.
func (c *SQLCompiler) compileEquals(eq queryir.Equals) (string, []any, error) {
	col, err := column(eq.Column)
	if err != nil {
		return "", nil, err
	}
	return col + " = ?", []any{eq.Value}, nil
}

// compileIn compiles to `t."col" IN (?, ?, ...)`.
func (c *SQLCompiler) compileIn(in queryir.In) (string, []any, error) {
	col, err := column(in.Column)
	if err != nil {
		return "", nil, err
	}

	placeholders := make([]string, len(in.Values))
	params := make([]any, len(in.Values))
	for i, v := range in.Values {
		placeholders[i] = "?"
		params[i] = v
	}

	return fmt.Sprintf("%s IN (%s)", col, strings.Join(placeholders, ", ")), params, nil
}

// compileContainsFold compiles to `lower(t."col") LIKE lower(?)`.
// lower() folds ASCII only, matching SQLite's built-in LIKE.
func (c *SQLCompiler) compileContainsFold(cf queryir.ContainsFold) (string, []any, error) {
	col, err := column(cf.Column)
	if err != nil {
		return "", nil, err
	}
	return fmt.Sprintf("lower(%s) LIKE lower(?)", col), []any{cf.Pattern}, nil
}

// compileListContains compiles to a json_each membership test.
// Rows whose list column is not valid JSON never match instead of failing
// the whole statement.
func (c *SQLCompiler) compileListContains(lc queryir.ListContains) (string, []any, error) {
	col, err := column(lc.Column)
	if err != nil {
		return "", nil, err
	}
	sql := fmt.Sprintf(
		"(CASE WHEN json_valid(%[1]s) THEN EXISTS (SELECT 1 FROM json_each(%[1]s) WHERE json_each.value = ?) ELSE 0 END)",
		col)
	return sql, []any{lc.Value}, nil
}

// compileOr compiles to a parenthesized disjunction.
func (c *SQLCompiler) compileOr(or queryir.Or) (string, []any, error) {
	if len(or.Predicates) == 0 {
		return "0 = 1", nil, nil // Matches nothing
	}

	var sqlParts []string
	var allParams []any

	for _, pred := range or.Predicates {
		sql, params, err := c.compilePredicate(pred)
		if err != nil {
			return "", nil, err
		}
		sqlParts = append(sqlParts, sql)
		allParams = append(allParams, params...)
	}

	if len(sqlParts) == 1 {
		return sqlParts[0], allParams, nil
	}
	return "(" + strings.Join(sqlParts, " OR ") + ")", allParams, nil
}

// column returns the quoted, alias-qualified reference to a column.
func column(name string) (string, error) {
	quoted, err := QuoteIdent(name)
	if err != nil {
		return "", err
	}
	return tableAlias + "." + quoted, nil
}

// QuoteIdent quotes an SQLite identifier: wraps it in double quotes and
// doubles any embedded double quote. Names containing NUL are rejected
// because the driver would truncate them.
func QuoteIdent(name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("empty identifier")
	}
	if strings.ContainsRune(name, 0) {
		return "", fmt.Errorf("identifier %q contains NUL", name)
	}
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`, nil
}
