package queryir

// Query is a lookup statement. Only Select implements it.
type Query interface {
	queryNode()
}

// Predicate is a row filter. Only types in this package implement it.
type Predicate interface {
	predicateNode()
}

// Select returns every column of the rows of Table matching Filter, in the
// table's natural order.
//
// Semantics:
//
//	SELECT <columns>[, <tag value> AS <tag name>] FROM <table> AS t WHERE <filter>
//
// A nil Filter matches every row. Empty Columns selects t.*; otherwise every
// listed column is projected as its SQLite text form, under its own name.
type Select struct {
	Table   string
	Columns []string
	Filter  Predicate

	// Tag appends a constant column to every result row.
	// Address lookups use it to report which column matched.
	Tag *Tag
}

func (Select) queryNode() {}

// Tag is a constant, named column added to a Select's projection.
// Value is bound as a parameter.
type Tag struct {
	Name  string
	Value string
}

// Equals matches rows whose Column equals Value.
//
//	"col" = ?
type Equals struct {
	Column string
	Value  string
}

func (Equals) predicateNode() {}

// In matches rows whose Column equals any of Values.
//
//	"col" IN (?, ?)
//
// Values must be non-empty.
type In struct {
	Column string
	Values []string
}

func (In) predicateNode() {}

// ContainsFold matches rows whose Column contains Pattern, ignoring ASCII case.
// Pattern is a LIKE pattern; callers add the wildcards.
//
//	lower("col") LIKE lower(?)
type ContainsFold struct {
	Column  string
	Pattern string
}

func (ContainsFold) predicateNode() {}

// ListContains matches rows whose Column holds a JSON array with Value as
// one of its elements. A row matches once no matter how often Value repeats
// in the array.
//
//	EXISTS (SELECT 1 FROM json_each(t."col") WHERE json_each.value = ?)
type ListContains struct {
	Column string
	Value  string
}

func (ListContains) predicateNode() {}

// Or matches rows satisfying any of Predicates.
// An empty Or matches nothing.
type Or struct {
	Predicates []Predicate
}

func (Or) predicateNode() {}

// AnyIn builds the phone-lookup filter: any column IN values.
func AnyIn(columns, values []string) Or {
	or := Or{Predicates: make([]Predicate, 0, len(columns))}
	for _, col := range columns {
		or.Predicates = append(or.Predicates, In{Column: col, Values: values})
	}
	return or
}

// AnyEquals builds the hash-lookup filter: any column = value.
func AnyEquals(columns []string, value string) Or {
	or := Or{Predicates: make([]Predicate, 0, len(columns))}
	for _, col := range columns {
		or.Predicates = append(or.Predicates, Equals{Column: col, Value: value})
	}
	return or
}
