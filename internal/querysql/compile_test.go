package querysql

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/hashlookup/internal/queryir"
)

func TestCompile_PhoneLookup(t *testing.T) {
	compiler := NewSQLCompiler()

	query := queryir.Select{
		Table:  "people",
		Filter: queryir.AnyIn([]string{"phone_sha256", "alt_sha"}, []string{"h1", "h2"}),
	}

	sql, params, err := compiler.Compile(query)
	require.NoError(t, err)

	assert.Equal(t,
		`SELECT t.* FROM "people" AS t WHERE (t."phone_sha256" IN (?, ?) OR t."alt_sha" IN (?, ?))`,
		sql)
	// Values NOT in SQL
	assert.NotContains(t, sql, "h1")
	assert.Equal(t, []any{"h1", "h2", "h1", "h2"}, params)
}

func TestCompile_SingleColumnOrIsUnwrapped(t *testing.T) {
	compiler := NewSQLCompiler()

	sql, params, err := compiler.Compile(&queryir.Select{
		Table:  "people",
		Filter: queryir.AnyEquals([]string{"phone_sha256"}, "h"),
	})
	require.NoError(t, err)

	assert.Equal(t, `SELECT t.* FROM "people" AS t WHERE t."phone_sha256" = ?`, sql)
	assert.Equal(t, []any{"h"}, params)
}

func TestCompile_HashLookup(t *testing.T) {
	compiler := NewSQLCompiler()

	sql, params, err := compiler.Compile(queryir.Select{
		Table:  "people",
		Filter: queryir.AnyEquals([]string{"a_sha", "b_sha256"}, "h"),
	})
	require.NoError(t, err)

	assert.Equal(t, `SELECT t.* FROM "people" AS t WHERE (t."a_sha" = ? OR t."b_sha256" = ?)`, sql)
	assert.Equal(t, []any{"h", "h"}, params)
}

func TestCompile_AddressLookupWithTag(t *testing.T) {
	compiler := NewSQLCompiler()

	sql, params, err := compiler.Compile(queryir.Select{
		Table:  "people",
		Filter: queryir.ContainsFold{Column: "street", Pattern: "%Main%"},
		Tag:    &queryir.Tag{Name: "matched_col", Value: "street"},
	})
	require.NoError(t, err)

	assert.Equal(t,
		`SELECT t.*, ? AS "matched_col" FROM "people" AS t WHERE lower(t."street") LIKE lower(?)`,
		sql)
	// Tag parameter comes first: it precedes the filter in the statement.
	assert.Equal(t, []any{"street", "%Main%"}, params)
}

func TestCompile_ListContains(t *testing.T) {
	compiler := NewSQLCompiler()

	sql, params, err := compiler.Compile(queryir.Select{
		Table:  "people",
		Filter: queryir.ListContains{Column: "row_hashes", Value: "h"},
	})
	require.NoError(t, err)

	assert.Contains(t, sql, `json_valid(t."row_hashes")`)
	assert.Contains(t, sql, `EXISTS (SELECT 1 FROM json_each(t."row_hashes") WHERE json_each.value = ?)`)
	assert.Equal(t, []any{"h"}, params)
}

func TestCompile_NoFilter(t *testing.T) {
	sql, params, err := NewSQLCompiler().Compile(queryir.Select{Table: "people"})
	require.NoError(t, err)

	assert.Equal(t, `SELECT t.* FROM "people" AS t`, sql)
	assert.Empty(t, params)
}

func TestCompile_EmptyOrMatchesNothing(t *testing.T) {
	sql, params, err := NewSQLCompiler().Compile(queryir.Select{
		Table:  "people",
		Filter: queryir.Or{},
	})
	require.NoError(t, err)

	assert.Equal(t, `SELECT t.* FROM "people" AS t WHERE 0 = 1`, sql)
	assert.Empty(t, params)
}

func TestCompile_QuotesHostileIdentifiers(t *testing.T) {
	compiler := NewSQLCompiler()

	sql, params, err := compiler.Compile(queryir.Select{
		Table:  `people"; DROP TABLE people; --`,
		Filter: queryir.Equals{Column: `x"_sha`, Value: `'; DELETE FROM people; --`},
	})
	require.NoError(t, err)

	assert.Equal(t,
		`SELECT t.* FROM "people""; DROP TABLE people; --" AS t WHERE t."x""_sha" = ?`,
		sql)
	assert.NotContains(t, sql, "DELETE")
	assert.Equal(t, []any{`'; DELETE FROM people; --`}, params)
}

func TestCompile_InvalidQueries(t *testing.T) {
	compiler := NewSQLCompiler()

	testCases := []struct {
		name  string
		query queryir.Query
	}{
		{"nil", nil},
		{"empty table", queryir.Select{}},
		{"in without values", queryir.Select{Table: "t", Filter: queryir.In{Column: "a_sha"}}},
		{"NUL in table", queryir.Select{Table: "a\x00b"}},
		{"NUL in column", queryir.Select{Table: "t", Filter: queryir.Equals{Column: "a\x00", Value: "h"}}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := compiler.Compile(tc.query)
			assert.Error(t, err)
		})
	}
}

func TestQuoteIdent(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"people", `"people"`},
		{"Contact_SHA256", `"Contact_SHA256"`},
		{`a"b`, `"a""b"`},
		{"with space", `"with space"`},
		{"it's", `"it's"`},
	}
	for _, tt := range tests {
		got, err := QuoteIdent(tt.in)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}

	_, err := QuoteIdent("")
	assert.Error(t, err)
}

func TestCompile_TextProjection(t *testing.T) {
	sql, params, err := NewSQLCompiler().Compile(queryir.Select{
		Table:   "people",
		Columns: []string{"id", `we"ird`},
		Filter:  queryir.ContainsFold{Column: "city", Pattern: "%x%"},
		Tag:     &queryir.Tag{Name: "matched_col", Value: "city"},
	})
	require.NoError(t, err)

	assert.Equal(t,
		`SELECT CAST(t."id" AS TEXT) AS "id", CAST(t."we""ird" AS TEXT) AS "we""ird", ? AS "matched_col" FROM "people" AS t WHERE lower(t."city") LIKE lower(?)`,
		sql)
	assert.Equal(t, []any{"city", "%x%"}, params)
}
