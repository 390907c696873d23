package lookup

import (
	"context"
	"log/slog"

	"github.com/roach88/hashlookup/internal/digest"
	"github.com/roach88/hashlookup/internal/normalize"
	"github.com/roach88/hashlookup/internal/queryir"
	"github.com/roach88/hashlookup/internal/querysql"
	"github.com/roach88/hashlookup/internal/result"
	"github.com/roach88/hashlookup/internal/schema"
)

// MatchedColumn is the synthetic field naming the column an address
// lookup matched on.
const MatchedColumn = "matched_col"

// Store is the database surface the engine needs. *store.Store satisfies it.
type Store interface {
	schema.Querier
	QuerySet(ctx context.Context, query string, args ...any) (result.Set, error)
}

// Statement is one compiled predicate ready to run.
type Statement struct {
	SQL    string
	Params []any
}

// Engine runs lookups against one store.
type Engine struct {
	store    Store
	rules    schema.Rules
	compiler *querysql.SQLCompiler
}

// New creates an Engine. rules controls column classification.
func New(st Store, rules schema.Rules) *Engine {
	return &Engine{
		store:    st,
		rules:    rules,
		compiler: querysql.NewSQLCompiler(),
	}
}

// Phone finds rows where any digest column holds the digest of either
// form of the phone number.
func (e *Engine) Phone(ctx context.Context, table, raw string) (result.Set, error) {
	return e.Lookup(ctx, ModePhone, table, raw)
}

// Address finds rows whose free-text columns contain raw, ignoring case.
func (e *Engine) Address(ctx context.Context, table, raw string) (result.Set, error) {
	return e.Lookup(ctx, ModeAddress, table, raw)
}

// Hash finds rows whose list column or digest columns hold digest(raw).
func (e *Engine) Hash(ctx context.Context, table, raw string) (result.Set, error) {
	return e.Lookup(ctx, ModeHash, table, raw)
}

// Lookup runs every statement of the mode's plan in order and concatenates
// the rows. Any failure discards everything collected so far.
func (e *Engine) Lookup(ctx context.Context, mode Mode, table, raw string) (result.Set, error) {
	stmts, err := e.Statements(ctx, mode, table, raw)
	if err != nil {
		return nil, err
	}

	set := result.Set{}
	for i, stmt := range stmts {
		slog.Debug("executing statement",
			"table", table,
			"mode", mode,
			"index", i,
			"sql", stmt.SQL,
			"params", len(stmt.Params))

		rows, err := e.store.QuerySet(ctx, stmt.SQL, stmt.Params...)
		if err != nil {
			return nil, NewQueryError(table, "statement failed", err)
		}

		slog.Debug("statement matched", "table", table, "index", i, "rows", len(rows))
		set = set.Concat(rows)
	}

	return set, nil
}

// Statements plans and compiles the lookup without running it.
// A table without columns for the mode yields no statements.
func (e *Engine) Statements(ctx context.Context, mode Mode, table, raw string) ([]Statement, error) {
	plan, err := e.Plan(ctx, mode, table, raw)
	if err != nil {
		return nil, err
	}

	stmts := make([]Statement, 0, len(plan))
	for _, sel := range plan {
		sql, params, err := e.compiler.Compile(sel)
		if err != nil {
			return nil, NewQueryError(table, "cannot build statement", err)
		}
		stmts = append(stmts, Statement{SQL: sql, Params: params})
	}
	return stmts, nil
}

// Plan probes the table and builds the mode's predicates, in execution order.
func (e *Engine) Plan(ctx context.Context, mode Mode, table, raw string) ([]queryir.Select, error) {
	if _, err := ParseMode(string(mode)); err != nil {
		return nil, err
	}

	t, err := schema.Probe(ctx, e.store, table, e.rules)
	if err != nil {
		return nil, NewSchemaError(table, err)
	}

	slog.Debug("probed table",
		"table", table,
		"columns", len(t.Columns),
		"digest", t.Digest(),
		"list", t.ListDigest(),
		"free_text", t.FreeText())

	switch mode {
	case ModePhone:
		return planPhone(t, raw), nil
	case ModeAddress:
		return planAddress(t, raw), nil
	default:
		return planHash(t, raw), nil
	}
}

// planPhone builds a single statement: any digest column IN the digests of
// both phone forms.
func planPhone(t *schema.Table, raw string) []queryir.Select {
	cols := t.Digest()
	if len(cols) == 0 {
		return nil
	}

	hashes := digest.Strings(normalize.PhoneCandidates(raw))
	return []queryir.Select{{
		Table:   t.Name,
		Columns: columnNames(t),
		Filter:  queryir.AnyIn(cols, hashes),
	}}
}

// planAddress builds one tagged substring statement per free-text column.
func planAddress(t *schema.Table, raw string) []queryir.Select {
	cols := t.FreeText()
	if len(cols) == 0 {
		return nil
	}

	pattern := normalize.AddressPattern(raw)
	projection := columnNames(t)

	plan := make([]queryir.Select, 0, len(cols))
	for _, col := range cols {
		plan = append(plan, queryir.Select{
			Table:   t.Name,
			Columns: projection,
			Filter:  queryir.ContainsFold{Column: col, Pattern: pattern},
			Tag:     &queryir.Tag{Name: MatchedColumn, Value: col},
		})
	}
	return plan
}

// planHash builds the list-membership statement and the digest-equality
// statement, each only when the table has the columns for it.
func planHash(t *schema.Table, raw string) []queryir.Select {
	h := digest.String(normalize.HashInput(raw))
	projection := columnNames(t)

	var plan []queryir.Select
	if list := t.ListDigest(); list != "" {
		plan = append(plan, queryir.Select{
			Table:   t.Name,
			Columns: projection,
			Filter:  queryir.ListContains{Column: list, Value: h},
		})
	}
	if cols := t.Digest(); len(cols) > 0 {
		plan = append(plan, queryir.Select{
			Table:   t.Name,
			Columns: projection,
			Filter:  queryir.AnyEquals(cols, h),
		})
	}
	return plan
}

func columnNames(t *schema.Table) []string {
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name
	}
	return names
}
