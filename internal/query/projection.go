package query

import (
	"fmt"
	"sort"
	"strings"
)

// Shape names every resource may register.
const (
	ShapeGeneral = "general"
	// ShapeRef carries only the internal key, for attaching children.
	ShapeRef = "ref"
	// ShapeExists carries only the lookup key, for pre-update checks.
	ShapeExists = "exists"
)

// NestSep joins alias path and column in projected column names.
const NestSep = "__"

// Shape is a tree of field names returned for one read path.
type Shape struct {
	Fields    []string
	Relations []Relation
}

// Relation nests the shape of a joined table under its alias.
type Relation struct {
	Alias string
	Shape Shape
}

// Column is one flattened projected column.
type Column struct {
	Source string // table alias
	Name   string
	Key    string // output key, nested paths joined by NestSep
}

// Columns flattens the shape, base fields first.
func (s Shape) Columns() []Column {
	return s.columns(BaseAlias, nil)
}

func (s Shape) columns(source string, path []string) []Column {
	out := make([]Column, 0, len(s.Fields))
	for _, f := range s.Fields {
		key := strings.Join(append(append([]string(nil), path...), f), NestSep)
		out = append(out, Column{Source: source, Name: f, Key: key})
	}
	for _, rel := range s.Relations {
		out = append(out, rel.Shape.columns(rel.Alias, append(append([]string(nil), path...), rel.Alias))...)
	}
	return out
}

// Aliases lists the join aliases the shape reads from.
func (s Shape) Aliases() []string {
	out := []string{}
	for _, rel := range s.Relations {
		out = append(out, rel.Alias)
		out = append(out, rel.Shape.Aliases()...)
	}
	return out
}

// without drops relations whose alias is in drop, at any depth.
func (s Shape) without(drop map[string]bool) Shape {
	if len(drop) == 0 {
		return s
	}
	out := Shape{Fields: s.Fields}
	for _, rel := range s.Relations {
		if drop[rel.Alias] {
			continue
		}
		out.Relations = append(out.Relations, Relation{Alias: rel.Alias, Shape: rel.Shape.without(drop)})
	}
	return out
}

// Registry is the static set of shapes per resource. It is built once and
// only read afterwards.
type Registry struct {
	shapes map[string]map[string]Shape
}

// NewRegistry copies the given table so later edits to it cannot leak in.
func NewRegistry(table map[string]map[string]Shape) *Registry {
	r := &Registry{shapes: make(map[string]map[string]Shape, len(table))}
	for resource, named := range table {
		cp := make(map[string]Shape, len(named))
		for name, s := range named {
			cp[name] = s
		}
		r.shapes[resource] = cp
	}
	return r
}

// ShapeFor returns the named shape of a resource.
func (r *Registry) ShapeFor(resource, name string) (Shape, error) {
	named, ok := r.shapes[resource]
	if !ok {
		return Shape{}, fmt.Errorf("%w: %s", ErrUnknownResource, resource)
	}
	s, ok := named[name]
	if !ok {
		return Shape{}, fmt.Errorf("%w: %s/%s", ErrUnknownShape, resource, name)
	}
	return s, nil
}

// Names lists the shapes registered for a resource, sorted.
func (r *Registry) Names(resource string) []string {
	out := make([]string, 0, len(r.shapes[resource]))
	for name := range r.shapes[resource] {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
