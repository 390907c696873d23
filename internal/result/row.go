package result

import (
	"slices"
	"strings"
)

// Field is one column of a result row. NULL values are stored as "".
type Field struct {
	Name  string
	Value string
}

// Row is a mapping of column name to text value. Fields are kept sorted by
// byte-wise name, which is the order rows print and serialize in.
type Row struct {
	Fields []Field
}

// NewRow builds a row from fields, applying Set semantics in order.
func NewRow(fields ...Field) Row {
	var r Row
	for _, f := range fields {
		r.Set(f.Name, f.Value)
	}
	return r
}

// Set assigns value to name. An existing field takes the new value; a new
// field is inserted at its sorted position.
func (r *Row) Set(name, value string) {
	i, found := r.search(name)
	if found {
		r.Fields[i].Value = value
		return
	}
	r.Fields = slices.Insert(r.Fields, i, Field{Name: name, Value: value})
}

// Get returns the value of name and whether the row has it.
func (r Row) Get(name string) (string, bool) {
	if i, found := r.search(name); found {
		return r.Fields[i].Value, true
	}
	return "", false
}

func (r Row) search(name string) (int, bool) {
	return slices.BinarySearchFunc(r.Fields, name, func(f Field, target string) int {
		return strings.Compare(f.Name, target)
	})
}

// Names returns the field names in sorted order.
func (r Row) Names() []string {
	names := make([]string, len(r.Fields))
	for i, f := range r.Fields {
		names[i] = f.Name
	}
	return names
}

// Set is an ordered sequence of rows.
type Set []Row

// Concat appends the rows of other sets in order.
func (s Set) Concat(others ...Set) Set {
	out := s
	for _, o := range others {
		out = append(out, o...)
	}
	return out
}
