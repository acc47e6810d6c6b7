package repositories

import (
	"context"
	"fmt"
	"strings"

	intconfig "shopadmin/internal/config"
	intdb "shopadmin/internal/db"
	"shopadmin/internal/domain"
	"shopadmin/internal/query"
	"shopadmin/internal/utils"

	"github.com/jmoiron/sqlx"
)

// ResourceRepository executes compiled queries for any resource.
type ResourceRepository struct {
	DB *sqlx.DB
}

func (r ResourceRepository) db() (*sqlx.DB, error) {
	if r.DB != nil {
		return r.DB, nil
	}
	if intconfig.DB != nil {
		return intconfig.DB, nil
	}
	return nil, fmt.Errorf("database belum terhubung")
}

// List returns the projected rows of one page.
func (r ResourceRepository) List(ctx context.Context, q query.Query) ([]domain.Record, error) {
	db, err := r.db()
	if err != nil {
		return nil, err
	}
	stmt, err := intdb.SelectStatement(q)
	if err != nil {
		return nil, err
	}
	sqlText := db.Rebind(stmt.SQL)
	utils.Logger().Debug().Str("resource", q.Resource.Name).Str("sql", sqlText).Msg("list query")

	rows, err := db.QueryxContext(ctx, sqlText, stmt.Args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.Record{}
	for rows.Next() {
		row := map[string]any{}
		if err := rows.MapScan(row); err != nil {
			return out, err
		}
		out = append(out, nest(row))
	}
	return out, rows.Err()
}

// Count returns how many rows match the query's predicate.
func (r ResourceRepository) Count(ctx context.Context, q query.Query) (int64, error) {
	db, err := r.db()
	if err != nil {
		return 0, err
	}
	stmt, err := intdb.CountStatement(q)
	if err != nil {
		return 0, err
	}
	var total int64
	if err := db.QueryRowxContext(ctx, db.Rebind(stmt.SQL), stmt.Args...).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

// First returns the first projected row, or false when nothing matches.
func (r ResourceRepository) First(ctx context.Context, q query.Query) (domain.Record, bool, error) {
	q.Pagination.Limit = 1
	q.Pagination.Offset = 0
	rows, err := r.List(ctx, q)
	if err != nil || len(rows) == 0 {
		return nil, false, err
	}
	return rows[0], true, nil
}

// nest folds "alias__column" keys into nested maps. A relation whose
// columns are all NULL (no joined row) becomes nil.
func nest(row map[string]any) domain.Record {
	out := domain.Record{}
	for key, v := range row {
		if b, ok := v.([]byte); ok {
			v = string(b)
		}
		parts := strings.Split(key, query.NestSep)
		cur := map[string]any(out)
		for _, p := range parts[:len(parts)-1] {
			next, ok := cur[p].(map[string]any)
			if !ok {
				next = map[string]any{}
				cur[p] = next
			}
			cur = next
		}
		cur[parts[len(parts)-1]] = v
	}
	pruneEmpty(out)
	return out
}

func pruneEmpty(m map[string]any) bool {
	empty := true
	for k, v := range m {
		if nested, ok := v.(map[string]any); ok {
			if pruneEmpty(nested) {
				m[k] = nil
				continue
			}
			empty = false
			continue
		}
		if v != nil {
			empty = false
		}
	}
	return empty
}
