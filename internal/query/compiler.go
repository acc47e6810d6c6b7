package query

import (
	"errors"
	"fmt"
	"sort"
)

var (
	ErrUnknownResource = errors.New("unknown resource")
	ErrUnknownShape    = errors.New("unknown shape")
)

// Query is the engine-neutral output handed to the storage layer.
type Query struct {
	Resource   *Resource
	Predicate  Predicate
	Pagination Directive
	Projection Shape
	// Subject is the caller identity for subject-scoped joins.
	Subject string
}

// Options select the read path.
type Options struct {
	Shape   string
	Subject string
}

// Compiler assembles predicates, paging and projections. It holds only
// static configuration and is safe for concurrent use.
type Compiler struct {
	resources map[string]*Resource
	registry  *Registry
	maxLimit  int
}

// NewCompiler wires resource configs and their shapes together.
func NewCompiler(resources []*Resource, registry *Registry, maxLimit int) *Compiler {
	if maxLimit <= 0 {
		maxLimit = MaxLimit
	}
	byName := make(map[string]*Resource, len(resources))
	for _, r := range resources {
		byName[r.Name] = r
	}
	return &Compiler{resources: byName, registry: registry, maxLimit: maxLimit}
}

// Resource returns the configuration for name.
func (c *Compiler) Resource(name string) (*Resource, error) {
	r, ok := c.resources[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownResource, name)
	}
	return r, nil
}

// Names lists the compiled resources, sorted.
func (c *Compiler) Names() []string {
	out := make([]string, 0, len(c.resources))
	for name := range c.resources {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Projection returns a registered shape of the resource as declared.
func (c *Compiler) Projection(resource, shape string) (Shape, error) {
	return c.registry.ShapeFor(resource, shape)
}

// Compile builds the list query for a resource.
func (c *Compiler) Compile(resource string, filter RawFilter, page PageParams, opts Options) (Query, error) {
	r, err := c.Resource(resource)
	if err != nil {
		return Query{}, err
	}
	shape, err := c.shape(r, opts)
	if err != nil {
		return Query{}, err
	}
	return Query{
		Resource:   r,
		Predicate:  r.Build(filter),
		Pagination: Paginate(page, c.pageConfig(r)),
		Projection: shape,
		Subject:    opts.Subject,
	}, nil
}

// Lookup builds a single-record query on the resource's lookup field.
// Standing conditions still apply.
func (c *Compiler) Lookup(resource, key string, opts Options) (Query, error) {
	r, err := c.Resource(resource)
	if err != nil {
		return Query{}, err
	}
	shape, err := c.shape(r, opts)
	if err != nil {
		return Query{}, err
	}
	p := Predicate{Resource: r.Name}
	if len(r.Standing) > 0 {
		p.Standing = append([]Condition(nil), r.Standing...)
	}
	p.Filters = []Condition{{Field: r.LookupField, Op: OpEq, Value: key}}
	pg := Paginate(PageParams{Page: "1", Limit: "1"}, c.pageConfig(r))
	return Query{
		Resource:   r,
		Predicate:  p,
		Pagination: pg,
		Projection: shape,
		Subject:    opts.Subject,
	}, nil
}

func (c *Compiler) shape(r *Resource, opts Options) (Shape, error) {
	name := opts.Shape
	if name == "" {
		name = ShapeGeneral
	}
	s, err := c.registry.ShapeFor(r.Name, name)
	if err != nil {
		return Shape{}, err
	}
	if opts.Subject != "" {
		return s, nil
	}
	// without a caller there is nothing to scope the join to
	drop := map[string]bool{}
	for _, j := range r.Joins {
		if j.Scoped() {
			drop[j.Alias] = true
		}
	}
	return s.without(drop), nil
}

func (c *Compiler) pageConfig(r *Resource) PageConfig {
	return PageConfig{
		DefaultLimit: r.DefaultLimit,
		MaxLimit:     c.maxLimit,
		SortField:    r.SortField,
		DefaultOrder: Desc,
	}
}

// Joins returns the joins the query needs, in declaration order, including
// the joins their local keys depend on.
func (q Query) Joins() []Join {
	return q.joinsFor(append(q.Projection.Aliases(), fieldAliases(q.Predicate.Fields())...))
}

// PredicateJoins returns only the joins the predicate reads from.
func (q Query) PredicateJoins() []Join {
	return q.joinsFor(fieldAliases(q.Predicate.Fields()))
}

func (q Query) joinsFor(aliases []string) []Join {
	need := map[string]bool{}
	var mark func(alias string)
	mark = func(alias string) {
		if alias == BaseAlias || need[alias] {
			return
		}
		j, ok := q.Resource.Join(alias)
		if !ok {
			return
		}
		need[alias] = true
		from, _ := SplitField(j.LocalKey)
		mark(from)
	}
	for _, a := range aliases {
		mark(a)
	}
	out := []Join{}
	for _, j := range q.Resource.Joins {
		if need[j.Alias] {
			out = append(out, j)
		}
	}
	return out
}

func fieldAliases(fields []string) []string {
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if alias, _ := SplitField(f); alias != BaseAlias {
			out = append(out, alias)
		}
	}
	return out
}
