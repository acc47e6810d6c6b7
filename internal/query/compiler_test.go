package query

import (
	"errors"
	"reflect"
	"sync"
	"testing"
)

func newTestCompiler() *Compiler {
	orders := ordersFixture()
	vouchers := &Resource{
		Name:         "vouchers",
		Table:        "vouchers",
		KeyField:     "id",
		LookupField:  "uuid",
		SearchFields: []string{"code"},
		SortField:    "created_at",
		Joins: []Join{
			{Alias: "usage", Table: "voucher_usages", ForeignKey: "voucher_id", LocalKey: "id", SubjectColumn: "customer_uuid"},
		},
	}
	categories := &Resource{
		Name:         "categories",
		Table:        "categories",
		KeyField:     "id",
		LookupField:  "uuid",
		SearchFields: []string{"name", "grand.name"},
		SortField:    "created_at",
		Joins: []Join{
			{Alias: "parent", Table: "categories", ForeignKey: "id", LocalKey: "parent_id"},
			{Alias: "grand", Table: "categories", ForeignKey: "id", LocalKey: "parent.parent_id"},
		},
	}
	reg := NewRegistry(map[string]map[string]Shape{
		"orders": {
			ShapeGeneral: {Fields: []string{"uuid", "status"}},
			ShapeExists:  {Fields: []string{"uuid"}},
			ShapeRef:     {Fields: []string{"id"}},
		},
		"vouchers": {
			ShapeGeneral: {
				Fields:    []string{"uuid", "code"},
				Relations: []Relation{{Alias: "usage", Shape: Shape{Fields: []string{"usage_count"}}}},
			},
		},
		"categories": {
			ShapeGeneral: {Fields: []string{"uuid", "name"}},
		},
	})
	return NewCompiler([]*Resource{orders, vouchers, categories}, reg, 100)
}

func TestCompileUnknownResource(t *testing.T) {
	c := newTestCompiler()
	if _, err := c.Compile("unicorns", RawFilter{}, PageParams{}, Options{}); !errors.Is(err, ErrUnknownResource) {
		t.Fatalf("expected ErrUnknownResource, got %v", err)
	}
	if _, err := c.Lookup("unicorns", "x", Options{}); !errors.Is(err, ErrUnknownResource) {
		t.Fatalf("expected ErrUnknownResource from lookup, got %v", err)
	}
	if _, err := c.Compile("orders", RawFilter{}, PageParams{}, Options{Shape: "nope"}); !errors.Is(err, ErrUnknownShape) {
		t.Fatalf("expected ErrUnknownShape, got %v", err)
	}
}

func TestCompileIsIdempotent(t *testing.T) {
	c := newTestCompiler()
	f := RawFilter{"search": "inv", "status": "PAID", "categoryUuid": []string{"a", "b"}, "startDate": "2024-01-01", "endDate": "2024-01-31"}
	pg := PageParams{Page: "2", Limit: "10", Sort: "asc"}

	a, err := c.Compile("orders", f, pg, Options{})
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	b, _ := c.Compile("orders", f, pg, Options{})
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("compile is not deterministic")
	}
}

func TestCompileConcurrent(t *testing.T) {
	c := newTestCompiler()
	want, _ := c.Compile("orders", RawFilter{"search": "x"}, PageParams{Page: "3"}, Options{})

	var wg sync.WaitGroup
	errs := make(chan string, 16)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := c.Compile("orders", RawFilter{"search": "x"}, PageParams{Page: "3"}, Options{})
			if err != nil || !reflect.DeepEqual(got, want) {
				errs <- "concurrent compile diverged"
			}
		}()
	}
	wg.Wait()
	close(errs)
	for e := range errs {
		t.Fatal(e)
	}
}

func TestCompileDefaults(t *testing.T) {
	q, err := newTestCompiler().Compile("orders", RawFilter{}, PageParams{}, Options{})
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	want := Directive{Page: 1, Offset: 0, Limit: 10, SortField: "created_at", SortOrder: Desc}
	if q.Pagination != want {
		t.Fatalf("pagination = %+v", q.Pagination)
	}
	if !reflect.DeepEqual(q.Projection.Fields, []string{"uuid", "status"}) {
		t.Fatalf("general shape expected, got %+v", q.Projection)
	}
}

func TestCompileDropsScopedJoinWithoutSubject(t *testing.T) {
	c := newTestCompiler()

	anon, err := c.Compile("vouchers", RawFilter{}, PageParams{}, Options{})
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if len(anon.Projection.Relations) != 0 || len(anon.Joins()) != 0 {
		t.Fatalf("anonymous query kept scoped relation: %+v", anon.Projection)
	}

	own, _ := c.Compile("vouchers", RawFilter{}, PageParams{}, Options{Subject: "cust-1"})
	if len(own.Projection.Relations) != 1 || own.Subject != "cust-1" {
		t.Fatalf("subject query lost scoped relation: %+v", own.Projection)
	}
	if joins := own.Joins(); len(joins) != 1 || joins[0].Alias != "usage" {
		t.Fatalf("joins = %+v", joins)
	}
}

func TestQueryJoinsFollowDependencies(t *testing.T) {
	c := newTestCompiler()

	plain, _ := c.Compile("categories", RawFilter{}, PageParams{}, Options{})
	if len(plain.Joins()) != 0 {
		t.Fatalf("no join should be needed without search, got %+v", plain.Joins())
	}

	q, _ := c.Compile("categories", RawFilter{"search": "kopi"}, PageParams{}, Options{})
	joins := q.Joins()
	if len(joins) != 2 || joins[0].Alias != "parent" || joins[1].Alias != "grand" {
		t.Fatalf("search on grand.name must pull parent first, got %+v", joins)
	}
	if !reflect.DeepEqual(q.PredicateJoins(), joins) {
		t.Fatalf("predicate joins = %+v", q.PredicateJoins())
	}
}

func TestPredicateJoinsIgnoreProjection(t *testing.T) {
	c := newTestCompiler()
	q, _ := c.Compile("vouchers", RawFilter{}, PageParams{}, Options{Subject: "cust-1"})
	if len(q.PredicateJoins()) != 0 {
		t.Fatalf("count path should not join projected relations: %+v", q.PredicateJoins())
	}
}

func TestLookup(t *testing.T) {
	q, err := newTestCompiler().Lookup("orders", "ord-1", Options{Shape: ShapeExists})
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if !reflect.DeepEqual(q.Projection.Fields, []string{"uuid"}) {
		t.Fatalf("exists shape expected, got %+v", q.Projection)
	}
	wantFilters := []Condition{{Field: "uuid", Op: OpEq, Value: "ord-1"}}
	if !reflect.DeepEqual(q.Predicate.Filters, wantFilters) {
		t.Fatalf("filters = %+v", q.Predicate.Filters)
	}
	if len(q.Predicate.Standing) != 1 {
		t.Fatalf("standing clauses must apply to lookups: %+v", q.Predicate.Standing)
	}
	if q.Pagination.Limit != 1 || q.Pagination.Offset != 0 {
		t.Fatalf("lookup must fetch one row: %+v", q.Pagination)
	}
}

func TestCompilerNames(t *testing.T) {
	got := newTestCompiler().Names()
	if !reflect.DeepEqual(got, []string{"categories", "orders", "vouchers"}) {
		t.Fatalf("names = %v", got)
	}
}
