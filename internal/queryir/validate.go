package queryir

import (
	"errors"
	"fmt"
)

// Validate checks that a query can be compiled into a meaningful statement.
//
// Rules:
//  1. Select.Table is non-empty
//  2. Every projected column and predicate column is non-empty
//  3. In has at least one value
//  4. A Tag has a non-empty name
//
// All problems are reported together. Validate is a pure function.
func Validate(q Query) error {
	v := &validator{}
	v.validateQuery(q)
	return errors.Join(v.problems...)
}

// validator accumulates problems during traversal.
type validator struct {
	problems []error
}

func (v *validator) addProblem(format string, args ...any) {
	v.problems = append(v.problems, fmt.Errorf(format, args...))
}

func (v *validator) validateQuery(q Query) {
	switch query := q.(type) {
	case nil:
		v.addProblem("nil query")
	case Select:
		v.validateSelect(query)
	case *Select:
		v.validateSelect(*query)
	default:
		v.addProblem("unknown query type: %T", q)
	}
}

func (v *validator) validateSelect(sel Select) {
	if sel.Table == "" {
		v.addProblem("select: empty table name")
	}
	for _, col := range sel.Columns {
		v.requireColumn("select", col)
	}
	if sel.Tag != nil && sel.Tag.Name == "" {
		v.addProblem("select: tag with empty name")
	}
	if sel.Filter != nil {
		v.validatePredicate(sel.Filter)
	}
}

func (v *validator) validatePredicate(p Predicate) {
	switch pred := p.(type) {
	case Equals:
		v.requireColumn("equals", pred.Column)
	case *Equals:
		v.requireColumn("equals", pred.Column)
	case In:
		v.validateIn(pred)
	case *In:
		v.validateIn(*pred)
	case ContainsFold:
		v.requireColumn("contains", pred.Column)
	case *ContainsFold:
		v.requireColumn("contains", pred.Column)
	case ListContains:
		v.requireColumn("list contains", pred.Column)
	case *ListContains:
		v.requireColumn("list contains", pred.Column)
	case Or:
		v.validateOr(pred)
	case *Or:
		v.validateOr(*pred)
	case nil:
		v.addProblem("nil predicate")
	default:
		v.addProblem("unknown predicate type: %T", p)
	}
}

func (v *validator) requireColumn(kind, column string) {
	if column == "" {
		v.addProblem("%s: empty column name", kind)
	}
}

func (v *validator) validateIn(in In) {
	v.requireColumn("in", in.Column)
	if len(in.Values) == 0 {
		v.addProblem("in %q: no values", in.Column)
	}
}

func (v *validator) validateOr(or Or) {
	for _, sub := range or.Predicates {
		v.validatePredicate(sub)
	}
}
