package db

import (
	"fmt"
	"strings"

	"shopadmin/internal/query"

	"github.com/jmoiron/sqlx"
)

// Statement is rendered SQL with '?' bindvars; callers Rebind it for
// their driver.
type Statement struct {
	SQL  string
	Args []any
}

// SelectStatement renders the paged, projected read of q.
func SelectStatement(q query.Query) (Statement, error) {
	if q.Resource == nil {
		return Statement{}, fmt.Errorf("query tanpa resource")
	}
	cols := q.Projection.Columns()
	if len(cols) == 0 {
		return Statement{}, fmt.Errorf("%s: projection kosong", q.Resource.Name)
	}
	sel := make([]string, 0, len(cols))
	for _, c := range cols {
		sel = append(sel, c.Source+"."+c.Name+" AS "+c.Key)
	}

	b := &builder{}
	b.write("SELECT " + strings.Join(sel, ", "))
	b.from(q, q.Joins())
	b.where(q.Predicate)

	pg := q.Pagination
	dir := "DESC"
	if pg.SortOrder == query.Asc {
		dir = "ASC"
	}
	order := column(pg.SortField) + " " + dir
	if key := q.Resource.KeyField; key != "" && key != pg.SortField {
		order += ", " + column(key) + " " + dir
	}
	b.write(" ORDER BY " + order)
	b.write(" LIMIT ? OFFSET ?", pg.Limit, pg.Offset)

	return b.expand()
}

// CountStatement renders the total matching q's predicate, ignoring paging
// and projection.
func CountStatement(q query.Query) (Statement, error) {
	if q.Resource == nil {
		return Statement{}, fmt.Errorf("query tanpa resource")
	}
	b := &builder{}
	b.write("SELECT COUNT(*)")
	b.from(q, q.PredicateJoins())
	b.where(q.Predicate)
	return b.expand()
}

type builder struct {
	sb   strings.Builder
	args []any
}

func (b *builder) write(s string, args ...any) {
	b.sb.WriteString(s)
	b.args = append(b.args, args...)
}

func (b *builder) from(q query.Query, joins []query.Join) {
	b.write(" FROM " + q.Resource.Table + " AS " + query.BaseAlias)
	for _, j := range joins {
		b.write(" LEFT JOIN " + j.Table + " AS " + j.Alias + " ON " + j.Alias + "." + j.ForeignKey + " = " + column(j.LocalKey))
		for _, c := range j.Where {
			b.write(" AND ")
			b.condition(query.Condition{Field: j.Alias + "." + c.Field, Op: c.Op, Value: c.Value})
		}
		if j.Scoped() {
			b.write(" AND "+j.Alias+"."+j.SubjectColumn+" = ?", q.Subject)
		}
	}
}

func (b *builder) where(p query.Predicate) {
	if p.IsEmpty() {
		b.write(" WHERE 1=1")
		return
	}
	first := true
	and := func() {
		if first {
			b.write(" WHERE ")
			first = false
			return
		}
		b.write(" AND ")
	}
	for _, c := range p.Standing {
		and()
		b.condition(c)
	}
	if len(p.Search) > 0 {
		and()
		b.write("(")
		for i, c := range p.Search {
			if i > 0 {
				b.write(" OR ")
			}
			b.condition(c)
		}
		b.write(")")
	}
	for _, c := range p.Filters {
		and()
		b.condition(c)
	}
	if r := p.Range; r != nil {
		and()
		b.write(column(r.Field)+" >= ? AND "+column(r.Field)+" <= ?", r.From, r.To)
	}
}

func (b *builder) condition(c query.Condition) {
	col := column(c.Field)
	switch c.Op {
	case query.OpContains:
		term := strings.ToLower(fmt.Sprint(c.Value))
		b.write("LOWER("+col+") LIKE ?", "%"+EscapeLike(term)+"%")
	case query.OpEq:
		b.write(col+" = ?", c.Value)
	case query.OpIn:
		b.write(col+" IN (?)", c.Value)
	case query.OpGte:
		b.write(col+" >= ?", c.Value)
	case query.OpLte:
		b.write(col+" <= ?", c.Value)
	case query.OpIsNull:
		b.write(col + " IS NULL")
	default:
		// unknown ops never come out of the builder; keep the query valid
		b.write("1=1")
	}
}

// expand turns "IN (?)" with slice args into one bindvar per element.
func (b *builder) expand() (Statement, error) {
	sqlText, args, err := sqlx.In(b.sb.String(), b.args...)
	if err != nil {
		return Statement{}, fmt.Errorf("expand bindvars: %w", err)
	}
	return Statement{SQL: sqlText, Args: args}, nil
}

func column(field string) string {
	alias, col := query.SplitField(field)
	return alias + "." + col
}
