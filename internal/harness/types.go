package harness

import (
	"github.com/roach88/hashlookup/internal/lookup"
	"github.com/roach88/hashlookup/internal/result"
)

// StepResult is the outcome of one lookup in a scenario.
type StepResult struct {
	Name  string
	Mode  lookup.Mode
	Table string
	Query string

	// Rows is nil when the lookup failed.
	Rows result.Set

	// ErrorKind is set when the lookup failed with a lookup error.
	ErrorKind lookup.ErrorKind

	// Err is the raw lookup error, if any.
	Err error
}

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass is true if every expectation matched.
	Pass bool

	// Steps holds one entry per lookup, in scenario order.
	Steps []StepResult

	// Errors contains expectation failures. Empty if Pass is true.
	Errors []string
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Steps:  []StepResult{},
		Errors: []string{},
	}
}

// AddError adds an expectation failure and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}
