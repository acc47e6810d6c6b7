package db

import (
	"reflect"
	"testing"
	"time"

	"shopadmin/internal/query"
)

func productsResource() *query.Resource {
	return &query.Resource{
		Name:         "products",
		Table:        "products",
		KeyField:     "id",
		LookupField:  "uuid",
		SearchFields: []string{"name", "sku"},
		Filters: []query.CategoricalFilter{
			{Key: "isActive", Field: "is_active", Kind: query.MatchBool},
			{Key: "categoryUuid", Field: "category.uuid", Kind: query.MatchSet},
		},
		RangeField: "created_at",
		SortField:  "created_at",
		Standing:   []query.Condition{{Field: "deleted_at", Op: query.OpIsNull}},
		Joins: []query.Join{
			{Alias: "category", Table: "categories", ForeignKey: "id", LocalKey: "category_id"},
			{
				Alias: "primary_image", Table: "product_images", ForeignKey: "product_id", LocalKey: "id",
				Where: []query.Condition{{Field: "is_primary", Op: query.OpEq, Value: true}},
			},
		},
	}
}

func productsQuery() query.Query {
	r := productsResource()
	return query.Query{
		Resource: r,
		Predicate: r.Build(query.RawFilter{
			"search":       "50%_OFF",
			"isActive":     "true",
			"categoryUuid": []string{"cat-1", "cat-2"},
			"startDate":    "2024-01-01",
			"endDate":      "2024-01-31",
		}),
		Pagination: query.Paginate(query.PageParams{Page: "2", Limit: "10", Sort: "asc"}, query.PageConfig{SortField: "created_at"}),
		Projection: query.Shape{
			Fields:    []string{"uuid", "name"},
			Relations: []query.Relation{{Alias: "category", Shape: query.Shape{Fields: []string{"name"}}}},
		},
	}
}

const productsWhere = " WHERE t.deleted_at IS NULL" +
	" AND (LOWER(t.name) LIKE ? OR LOWER(t.sku) LIKE ?)" +
	" AND t.is_active = ?" +
	" AND category.uuid IN (?, ?)" +
	" AND t.created_at >= ? AND t.created_at <= ?"

func productsArgs() []any {
	return []any{
		`%50\%\_off%`, `%50\%\_off%`,
		true,
		"cat-1", "cat-2",
		time.Date(2024, 1, 1, 0, 0, 0, 0, time.Local),
		time.Date(2024, 1, 31, 23, 59, 59, 999999999, time.Local),
	}
}

func TestSelectStatement(t *testing.T) {
	stmt, err := SelectStatement(productsQuery())
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	wantSQL := "SELECT t.uuid AS uuid, t.name AS name, category.name AS category__name" +
		" FROM products AS t LEFT JOIN categories AS category ON category.id = t.category_id" +
		productsWhere +
		" ORDER BY t.created_at ASC, t.id ASC LIMIT ? OFFSET ?"
	if stmt.SQL != wantSQL {
		t.Fatalf("sql mismatch:\n got %s\nwant %s", stmt.SQL, wantSQL)
	}
	wantArgs := append(productsArgs(), 10, 10)
	if !reflect.DeepEqual(stmt.Args, wantArgs) {
		t.Fatalf("args mismatch:\n got %#v\nwant %#v", stmt.Args, wantArgs)
	}
}

func TestCountStatementSkipsPagingAndProjection(t *testing.T) {
	q := productsQuery()
	q.Projection.Relations = append(q.Projection.Relations,
		query.Relation{Alias: "primary_image", Shape: query.Shape{Fields: []string{"url"}}})

	stmt, err := CountStatement(q)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	wantSQL := "SELECT COUNT(*) FROM products AS t LEFT JOIN categories AS category ON category.id = t.category_id" + productsWhere
	if stmt.SQL != wantSQL {
		t.Fatalf("sql mismatch:\n got %s\nwant %s", stmt.SQL, wantSQL)
	}
	if !reflect.DeepEqual(stmt.Args, productsArgs()) {
		t.Fatalf("args mismatch: %#v", stmt.Args)
	}
}

func TestSelectStatementEmptyPredicate(t *testing.T) {
	r := &query.Resource{Name: "messages", Table: "messages", KeyField: "id", SortField: "created_at"}
	q := query.Query{
		Resource:   r,
		Predicate:  r.Build(query.RawFilter{"search": "   "}),
		Pagination: query.Paginate(query.PageParams{}, query.PageConfig{SortField: "created_at"}),
		Projection: query.Shape{Fields: []string{"uuid"}},
	}
	stmt, err := SelectStatement(q)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	want := "SELECT t.uuid AS uuid FROM messages AS t WHERE 1=1 ORDER BY t.created_at DESC, t.id DESC LIMIT ? OFFSET ?"
	if stmt.SQL != want {
		t.Fatalf("sql = %s", stmt.SQL)
	}
	if !reflect.DeepEqual(stmt.Args, []any{10, 0}) {
		t.Fatalf("args = %#v", stmt.Args)
	}
}

func TestSelectStatementJoinConditions(t *testing.T) {
	r := productsResource()
	r.Joins = append(r.Joins, query.Join{
		Alias: "wish", Table: "wishlists", ForeignKey: "product_id", LocalKey: "id", SubjectColumn: "customer_uuid",
	})
	q := query.Query{
		Resource:   r,
		Pagination: query.Paginate(query.PageParams{}, query.PageConfig{SortField: "created_at"}),
		Projection: query.Shape{
			Fields: []string{"uuid"},
			Relations: []query.Relation{
				{Alias: "primary_image", Shape: query.Shape{Fields: []string{"url"}}},
				{Alias: "wish", Shape: query.Shape{Fields: []string{"created_at"}}},
			},
		},
		Subject: "cust-7",
	}
	stmt, err := SelectStatement(q)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	want := "SELECT t.uuid AS uuid, primary_image.url AS primary_image__url, wish.created_at AS wish__created_at" +
		" FROM products AS t" +
		" LEFT JOIN product_images AS primary_image ON primary_image.product_id = t.id AND primary_image.is_primary = ?" +
		" LEFT JOIN wishlists AS wish ON wish.product_id = t.id AND wish.customer_uuid = ?" +
		" WHERE 1=1 ORDER BY t.created_at DESC, t.id DESC LIMIT ? OFFSET ?"
	if stmt.SQL != want {
		t.Fatalf("sql mismatch:\n got %s\nwant %s", stmt.SQL, want)
	}
	if !reflect.DeepEqual(stmt.Args, []any{true, "cust-7", 10, 0}) {
		t.Fatalf("args = %#v", stmt.Args)
	}
}

func TestSelectStatementRejectsIncompleteQuery(t *testing.T) {
	if _, err := SelectStatement(query.Query{}); err == nil {
		t.Fatalf("query without resource should fail")
	}
	if _, err := SelectStatement(query.Query{Resource: productsResource()}); err == nil {
		t.Fatalf("query without projection should fail")
	}
	if _, err := CountStatement(query.Query{}); err == nil {
		t.Fatalf("count without resource should fail")
	}
}

func TestEscapeLike(t *testing.T) {
	cases := map[string]string{
		"plain":   "plain",
		"50%":     `50\%`,
		"a_b":     `a\_b`,
		`c:\tmp`:  `c:\\tmp`,
		`%_\`:     `\%\_\\`,
		"INV-123": "INV-123",
	}
	for in, want := range cases {
		if got := EscapeLike(in); got != want {
			t.Errorf("EscapeLike(%q) = %q, want %q", in, got, want)
		}
	}
}
