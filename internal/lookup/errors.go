package lookup

import (
	"errors"
	"fmt"
)

// ErrorKind categorizes lookup failures.
type ErrorKind string

const (
	// KindUsage indicates malformed arguments or an unknown mode.
	KindUsage ErrorKind = "USAGE_ERROR"

	// KindStoreOpen indicates the database could not be opened.
	KindStoreOpen ErrorKind = "STORE_OPEN_ERROR"

	// KindSchema indicates table metadata could not be read,
	// including a table that does not exist.
	KindSchema ErrorKind = "SCHEMA_ERROR"

	// KindQueryExecution indicates a statement failed to prepare or run.
	KindQueryExecution ErrorKind = "QUERY_EXECUTION_ERROR"

	// KindOutput indicates the result file could not be written.
	KindOutput ErrorKind = "OUTPUT_ERROR"
)

// Error is a lookup failure with a kind and optional context.
type Error struct {
	// Kind identifies the error category.
	Kind ErrorKind

	// Message is a human-readable description.
	Message string

	// Table is the table being looked up, if known.
	Table string

	// Err is the underlying error, usually from the store.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Kind, e.Message)
	if e.Table != "" {
		msg += fmt.Sprintf(" (table=%s)", e.Table)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// IsKind reports whether err is, or wraps, an *Error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var le *Error
	if errors.As(err, &le) {
		return le.Kind == kind
	}
	return false
}

// NewUsageError creates an Error for bad invocation arguments.
func NewUsageError(format string, args ...any) *Error {
	return &Error{Kind: KindUsage, Message: fmt.Sprintf(format, args...)}
}

// NewStoreOpenError wraps a database open failure.
func NewStoreOpenError(path string, err error) *Error {
	return &Error{
		Kind:    KindStoreOpen,
		Message: fmt.Sprintf("cannot open database %s", path),
		Err:     err,
	}
}

// NewSchemaError wraps a failure to read table metadata.
func NewSchemaError(table string, err error) *Error {
	return &Error{
		Kind:    KindSchema,
		Message: "cannot read table columns",
		Table:   table,
		Err:     err,
	}
}

// NewQueryError wraps a statement preparation or execution failure.
func NewQueryError(table, message string, err error) *Error {
	return &Error{
		Kind:    KindQueryExecution,
		Message: message,
		Table:   table,
		Err:     err,
	}
}

// NewOutputError wraps a result file write failure.
func NewOutputError(err error) *Error {
	return &Error{
		Kind:    KindOutput,
		Message: "cannot write results",
		Err:     err,
	}
}
