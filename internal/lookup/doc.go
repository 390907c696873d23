// Package lookup is the matching engine: it turns a raw query and a lookup
// mode into parameterized statements over the columns a table actually has,
// runs them, and merges the rows.
//
// # Modes
//
// Phone: the query is reduced to digits, both "+digits" and "digits" are
// digested, and one statement matches rows where any digest column holds
// any candidate digest. No digest columns means no statement.
//
// Address: one case-insensitive substring statement per free-text column,
// in declaration order. Each row is tagged with matched_col naming the
// column that matched.
//
// Hash: the query is digested once. If the table has a list column, rows
// whose JSON array contains the digest are returned first; then rows where
// any digest column equals it. A row matching both paths appears twice.
//
// # Failure
//
// Every failure aborts the lookup. There are no partial results and no
// retries. Errors carry a Kind so the CLI can report them uniformly.
package lookup
