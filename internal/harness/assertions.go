package harness

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/roach88/hashlookup/internal/result"
)

// AssertionError is returned when an expectation fails.
// It includes the returned rows to help debug the failure.
type AssertionError struct {
	Check    string     // Expectation that failed: count, ids, rows, error
	Expected string     // Human-readable expected outcome
	Actual   string     // Human-readable actual outcome
	Rows     result.Set // Rows the lookup returned
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Check)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)

	if len(e.Rows) > 0 {
		fmt.Fprintf(&buf, "\nRows:\n")
		for i, row := range e.Rows {
			fmt.Fprintf(&buf, "  [%d] %s\n", i+1, formatRow(row))
		}
	}

	return buf.String()
}

func formatRow(row result.Row) string {
	parts := make([]string, len(row.Fields))
	for i, f := range row.Fields {
		parts[i] = fmt.Sprintf("%s=%q", f.Name, f.Value)
	}
	return strings.Join(parts, " ")
}

// checkExpect evaluates every expectation set on the step.
func checkExpect(step LookupStep, sr StepResult) []error {
	exp := step.Expect

	if exp.Error != "" {
		if err := assertError(exp.Error, sr); err != nil {
			return []error{err}
		}
		return nil
	}
	if sr.Err != nil {
		return []error{&AssertionError{
			Check:    "error",
			Expected: "no error",
			Actual:   sr.Err.Error(),
		}}
	}

	var errs []error
	if exp.Count != nil {
		if err := assertCount(*exp.Count, sr.Rows); err != nil {
			errs = append(errs, err)
		}
	}
	if exp.IDs != nil {
		if err := assertIDs(exp.IDColumn, exp.IDs, sr.Rows); err != nil {
			errs = append(errs, err)
		}
	}
	if exp.Rows != nil {
		if err := assertRows(exp.Rows, sr.Rows); err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}

func assertError(kind string, sr StepResult) error {
	if sr.Err == nil {
		return &AssertionError{
			Check:    "error",
			Expected: kind,
			Actual:   fmt.Sprintf("success with %d rows", len(sr.Rows)),
			Rows:     sr.Rows,
		}
	}
	if string(sr.ErrorKind) != kind {
		return &AssertionError{
			Check:    "error",
			Expected: kind,
			Actual:   sr.Err.Error(),
		}
	}
	return nil
}

func assertCount(want int, rows result.Set) error {
	if len(rows) == want {
		return nil
	}
	return &AssertionError{
		Check:    "count",
		Expected: fmt.Sprintf("%d rows", want),
		Actual:   fmt.Sprintf("%d rows", len(rows)),
		Rows:     rows,
	}
}

// assertIDs compares the id column of every row, in order.
func assertIDs(column string, want []string, rows result.Set) error {
	if column == "" {
		column = "id"
	}

	got := make([]string, len(rows))
	for i, row := range rows {
		v, ok := row.Get(column)
		if !ok {
			v = "<missing>"
		}
		got[i] = v
	}

	if slices.Equal(got, want) {
		return nil
	}
	return &AssertionError{
		Check:    "ids",
		Expected: fmt.Sprintf("%s = %v", column, want),
		Actual:   fmt.Sprintf("%s = %v", column, got),
		Rows:     rows,
	}
}

// assertRows subset-matches each expected row against the row at the same
// position. Fields not named in the expectation are ignored.
func assertRows(want []map[string]string, rows result.Set) error {
	if len(want) != len(rows) {
		return &AssertionError{
			Check:    "rows",
			Expected: fmt.Sprintf("%d rows", len(want)),
			Actual:   fmt.Sprintf("%d rows", len(rows)),
			Rows:     rows,
		}
	}

	var errs []error
	for i, fields := range want {
		for _, name := range sortedKeys(fields) {
			got, ok := rows[i].Get(name)
			switch {
			case !ok:
				errs = append(errs, fmt.Errorf("row %d: missing field %q", i+1, name))
			case got != fields[name]:
				errs = append(errs, fmt.Errorf("row %d: field %q = %q, want %q", i+1, name, got, fields[name]))
			}
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return &AssertionError{
		Check:    "rows",
		Expected: "matching field values",
		Actual:   errors.Join(errs...).Error(),
		Rows:     rows,
	}
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
