// Package queryir provides the predicate intermediate representation (IR)
// for identity lookups.
//
// The lookup engine never concatenates SQL. It describes each lookup as a
// Select over one table with a Predicate tree, and a backend compiler
// (internal/querysql) turns that into a parameterized statement with quoted
// identifiers:
//
//	[lookup planner] → [Query IR] → [SQLite compiler]
//
// PREDICATES:
//
//   - Equals(column, value)           column = ?
//   - In(column, values)              column IN (?, ?, ...)
//   - ContainsFold(column, pattern)   lower(column) LIKE lower(?)
//   - ListContains(column, value)     value is an element of the JSON array in column
//   - Or(predicates)                  any predicate is true
//
// Column names come from schema introspection, values from the user. Both
// reach the store only through the compiler: names are quoted, values are
// bound.
//
// SEALED INTERFACES:
//
// Query and Predicate are sealed with marker methods so compilers can use
// exhaustive type switches:
//
//	switch p := pred.(type) {
//	case *Equals:
//	case *In:
//	...
//	}
package queryir
