// Package catalog holds the static query configuration of every resource
// the admin API lists: searchable fields, filters, standing conditions,
// joins and projection shapes.
package catalog

import (
	"fmt"

	"shopadmin/internal/query"
)

const (
	defaultKeyField    = "id"
	defaultLookupField = "uuid"
	defaultTimeField   = "created_at"
)

// Load builds the compiler for all resources. It is called once at start;
// the returned compiler is read-only.
func Load(maxLimit int) (*query.Compiler, error) {
	list := resources()
	for _, r := range list {
		applyDefaults(r)
	}
	registry := query.NewRegistry(shapes())
	if err := Validate(list, registry); err != nil {
		return nil, err
	}
	return query.NewCompiler(list, registry, maxLimit), nil
}

func applyDefaults(r *query.Resource) {
	if r.KeyField == "" {
		r.KeyField = defaultKeyField
	}
	if r.LookupField == "" {
		r.LookupField = defaultLookupField
	}
	if r.RangeField == "" {
		r.RangeField = defaultTimeField
	}
	if r.SortField == "" {
		r.SortField = defaultTimeField
	}
}

// Validate checks that every field reference points at a declared join and
// every resource has the shapes the handlers rely on.
func Validate(list []*query.Resource, registry *query.Registry) error {
	seen := map[string]bool{}
	for _, r := range list {
		if seen[r.Name] {
			return fmt.Errorf("resource %s declared twice", r.Name)
		}
		seen[r.Name] = true

		if len(r.SearchFields) > 4 {
			return fmt.Errorf("%s: at most 4 searchable fields, got %d", r.Name, len(r.SearchFields))
		}
		refs := append([]string(nil), r.SearchFields...)
		for _, f := range r.Filters {
			refs = append(refs, f.Field)
		}
		for _, c := range r.Standing {
			refs = append(refs, c.Field)
		}
		for _, j := range r.Joins {
			if j.Alias == query.BaseAlias {
				return fmt.Errorf("%s: join alias %q is reserved", r.Name, j.Alias)
			}
			refs = append(refs, j.LocalKey)
		}
		for _, ref := range refs {
			alias, _ := query.SplitField(ref)
			if alias == query.BaseAlias {
				continue
			}
			if _, ok := r.Join(alias); !ok {
				return fmt.Errorf("%s: field %s uses undeclared join %s", r.Name, ref, alias)
			}
		}

		for _, name := range []string{query.ShapeGeneral, query.ShapeExists} {
			if _, err := registry.ShapeFor(r.Name, name); err != nil {
				return err
			}
		}
		for _, name := range registry.Names(r.Name) {
			s, _ := registry.ShapeFor(r.Name, name)
			for _, alias := range s.Aliases() {
				if _, ok := r.Join(alias); !ok {
					return fmt.Errorf("%s/%s: relation %s has no join", r.Name, name, alias)
				}
			}
		}
	}
	return nil
}
