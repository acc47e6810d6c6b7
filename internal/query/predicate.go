package query

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"shopadmin/internal/utils"
)

// Op is a comparison the storage engine must support.
type Op string

const (
	OpContains Op = "contains" // case-insensitive substring
	OpEq       Op = "eq"
	OpIn       Op = "in"
	OpGte      Op = "gte"
	OpLte      Op = "lte"
	OpIsNull   Op = "is_null"
)

// Condition is a single comparison on a field reference.
type Condition struct {
	Field string
	Op    Op
	Value any
}

// Range is an inclusive bound on a timestamp field.
type Range struct {
	Field string
	From  time.Time
	To    time.Time
}

// Predicate is the AND of: standing conditions, the OR-group over
// searchable fields, the categorical filters and the date range.
// A zero Predicate matches every record.
type Predicate struct {
	Resource string
	Standing []Condition
	Search   []Condition
	Filters  []Condition
	Range    *Range
}

// IsEmpty reports whether the predicate places no constraint at all.
func (p Predicate) IsEmpty() bool {
	return len(p.Standing) == 0 && len(p.Search) == 0 && len(p.Filters) == 0 && p.Range == nil
}

// Fields lists every field reference the predicate touches.
func (p Predicate) Fields() []string {
	out := []string{}
	for _, group := range [][]Condition{p.Standing, p.Search, p.Filters} {
		for _, c := range group {
			out = append(out, c.Field)
		}
	}
	if p.Range != nil {
		out = append(out, p.Range.Field)
	}
	return out
}

// Build turns a raw filter into the resource's predicate. It never fails:
// values it cannot interpret are dropped.
func (r *Resource) Build(f RawFilter) Predicate {
	p := Predicate{Resource: r.Name}
	if len(r.Standing) > 0 {
		p.Standing = append([]Condition(nil), r.Standing...)
	}

	if term, ok := f.Text(KeySearch); ok && len(r.SearchFields) > 0 {
		p.Search = make([]Condition, 0, len(r.SearchFields))
		for _, field := range r.SearchFields {
			p.Search = append(p.Search, Condition{Field: field, Op: OpContains, Value: term})
		}
	}

	for _, cf := range r.Filters {
		switch cf.Kind {
		case MatchExact:
			if v, ok := f.Text(cf.Key); ok {
				p.Filters = append(p.Filters, Condition{Field: cf.Field, Op: OpEq, Value: v})
			}
		case MatchSet:
			// an empty list is "no filter", never "match nothing"
			if vals := f.List(cf.Key); len(vals) > 0 {
				p.Filters = append(p.Filters, Condition{Field: cf.Field, Op: OpIn, Value: vals})
			}
		case MatchBool:
			if v, ok := f.Bool(cf.Key); ok {
				p.Filters = append(p.Filters, Condition{Field: cf.Field, Op: OpEq, Value: v})
			}
		}
	}

	if r.RangeField != "" {
		p.Range = dateRange(r.RangeField, f)
	}
	return p
}

// dateRange requires both bounds; a single bound or a reversed pair yields nil.
func dateRange(field string, f RawFilter) *Range {
	startRaw, okStart := f.Text(KeyStartDate)
	endRaw, okEnd := f.Text(KeyEndDate)
	if !okStart || !okEnd {
		return nil
	}
	start, err := utils.ParseDate(startRaw)
	if err != nil {
		return nil
	}
	end, err := utils.ParseDate(endRaw)
	if err != nil {
		return nil
	}
	if end.Before(start) {
		return nil
	}
	return &Range{Field: field, From: start, To: utils.EndOfDay(end)}
}

// Matches evaluates the predicate against a record in memory, with the
// same semantics the SQL rendering has. Related fields are looked up as
// flat "alias.column" keys or as nested maps under the alias.
func (p Predicate) Matches(record map[string]any) bool {
	for _, c := range p.Standing {
		if !c.matches(record) {
			return false
		}
	}
	if len(p.Search) > 0 {
		hit := false
		for _, c := range p.Search {
			if c.matches(record) {
				hit = true
				break
			}
		}
		if !hit {
			return false
		}
	}
	for _, c := range p.Filters {
		if !c.matches(record) {
			return false
		}
	}
	if p.Range != nil {
		ts, ok := asTime(lookup(record, p.Range.Field))
		if !ok || ts.Before(p.Range.From) || ts.After(p.Range.To) {
			return false
		}
	}
	return true
}

func (c Condition) matches(record map[string]any) bool {
	v := lookup(record, c.Field)
	switch c.Op {
	case OpIsNull:
		return v == nil
	case OpContains:
		if v == nil {
			return false
		}
		return strings.Contains(strings.ToLower(asString(v)), strings.ToLower(asString(c.Value)))
	case OpEq:
		if want, ok := c.Value.(bool); ok {
			got, ok := asBool(v)
			return ok && got == want
		}
		return v != nil && asString(v) == asString(c.Value)
	case OpIn:
		if v == nil {
			return false
		}
		got := asString(v)
		for _, want := range toList(c.Value) {
			if got == want {
				return true
			}
		}
		return false
	case OpGte, OpLte:
		got, ok1 := asTime(v)
		want, ok2 := asTime(c.Value)
		if !ok1 || !ok2 {
			return false
		}
		if c.Op == OpGte {
			return !got.Before(want)
		}
		return !got.After(want)
	}
	return false
}

func lookup(record map[string]any, field string) any {
	if v, ok := record[field]; ok {
		return v
	}
	alias, column := SplitField(field)
	if alias == BaseAlias {
		return nil
	}
	if nested, ok := record[alias].(map[string]any); ok {
		return nested[column]
	}
	return nil
}

func asString(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case []byte:
		return string(val)
	case bool:
		return strconv.FormatBool(val)
	case time.Time:
		return val.Format(time.RFC3339Nano)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	default:
		return fmt.Sprint(val)
	}
}

// asBool reads a stored boolean. MySQL returns TINYINT(1) columns as
// integers or, over the text protocol, as "0"/"1" bytes.
func asBool(v any) (bool, bool) {
	switch val := v.(type) {
	case bool:
		return val, true
	case int64:
		return intBool(val)
	case int:
		return intBool(int64(val))
	case int32:
		return intBool(int64(val))
	case int8:
		return intBool(int64(val))
	case uint8:
		return intBool(int64(val))
	case float64:
		return intBool(int64(val))
	case []byte:
		return asBool(string(val))
	case string:
		switch strings.ToLower(strings.TrimSpace(val)) {
		case "1", "true":
			return true, true
		case "0", "false":
			return false, true
		}
	}
	return false, false
}

func intBool(n int64) (bool, bool) {
	switch n {
	case 1:
		return true, true
	case 0:
		return false, true
	}
	return false, false
}

func asTime(v any) (time.Time, bool) {
	switch val := v.(type) {
	case time.Time:
		return val, true
	case string:
		t, err := utils.ParseTimestamp(val)
		return t, err == nil
	case []byte:
		t, err := utils.ParseTimestamp(string(val))
		return t, err == nil
	}
	return time.Time{}, false
}
