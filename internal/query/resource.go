package query

import "strings"

// BaseAlias is the alias the resource's own table is rendered under.
const BaseAlias = "t"

// MatchKind tells the builder how a categorical filter value is compared.
type MatchKind int

const (
	// MatchExact compares a single scalar value for equality.
	MatchExact MatchKind = iota
	// MatchSet tests membership in a list of values (a single value is a set of one).
	MatchSet
	// MatchBool parses "true"/"false" before comparing.
	MatchBool
)

// CategoricalFilter binds a request key to a stored field.
type CategoricalFilter struct {
	Key   string
	Field string
	Kind  MatchKind
}

// Join declares a related table reachable from the resource.
// LocalKey is a field reference ("customer_id" or "category.parent_id"),
// ForeignKey a column of the joined table.
type Join struct {
	Alias      string
	Table      string
	ForeignKey string
	LocalKey   string
	// Where holds static conditions on the joined table's own columns.
	Where []Condition
	// SubjectColumn scopes the join to the calling user when set.
	SubjectColumn string
}

// Scoped reports whether the join depends on the caller's identity.
func (j Join) Scoped() bool { return j.SubjectColumn != "" }

// Resource is the configuration record one entity type is compiled with.
type Resource struct {
	Name         string
	Table        string
	KeyField     string
	LookupField  string
	SearchFields []string
	Filters      []CategoricalFilter
	RangeField   string
	SortField    string
	DefaultLimit int
	// Standing conditions are applied to every query regardless of input.
	Standing []Condition
	Joins    []Join
}

// Join returns the declared join for alias.
func (r *Resource) Join(alias string) (Join, bool) {
	for _, j := range r.Joins {
		if j.Alias == alias {
			return j, true
		}
	}
	return Join{}, false
}

// SplitField separates a field reference into its alias and column.
// Unqualified fields belong to the base table.
func SplitField(field string) (alias, column string) {
	if i := strings.LastIndex(field, "."); i >= 0 {
		return field[:i], field[i+1:]
	}
	return BaseAlias, field
}
