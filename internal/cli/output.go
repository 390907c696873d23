package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/roach88/hashlookup/internal/lookup"
	"github.com/roach88/hashlookup/internal/result"
)

// Exit codes for the CLI.
const (
	ExitSuccess = 0 // Successful execution, including zero-row results
	ExitFailure = 1 // Any failure: usage, store open, schema, query, output
)

// ExitError represents an error with a specific exit code.
type ExitError struct {
	Code    int    // Exit code
	Message string // Error message
	Err     error  // Underlying error (optional)
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// WrapExitError wraps an existing error with an exit code.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode extracts the exit code from an error.
// Returns ExitSuccess for nil and ExitFailure if the error is not an ExitError.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// OutputFormatter renders lookup results as console text or a JSON file.
type OutputFormatter struct {
	JSON   bool
	OutDir string
	Writer io.Writer
}

// Results writes the set. In JSON mode the set goes to a file named after
// the query and the path is reported on Writer.
func (f *OutputFormatter) Results(query string, set result.Set) error {
	if !f.JSON {
		return result.WriteText(f.Writer, set)
	}

	path, err := result.WriteJSONFile(f.OutDir, query, set)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(f.Writer, "Wrote %s\n", path)
	return err
}

// Explain prints each planned statement with its bound parameters.
func (f *OutputFormatter) Explain(stmts []lookup.Statement) error {
	if len(stmts) == 0 {
		_, err := fmt.Fprintln(f.Writer, "-- no statements: table has no columns for this mode")
		return err
	}

	for i, stmt := range stmts {
		fmt.Fprintf(f.Writer, "-- statement %d (%d params)\n", i+1, len(stmt.Params))
		fmt.Fprintln(f.Writer, stmt.SQL)
		for j, p := range stmt.Params {
			fmt.Fprintf(f.Writer, "--   ?%d = %q\n", j+1, fmt.Sprint(p))
		}
	}
	return nil
}
