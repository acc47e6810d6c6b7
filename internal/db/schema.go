package db

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
)

// QueryRower is satisfied by *sqlx.DB and *sqlx.Tx.
type QueryRower interface {
	QueryRowxContext(ctx context.Context, query string, args ...any) *sqlx.Row
	Rebind(query string) string
	DriverName() string
}

func schemaExpr(driverName string) string {
	if driverName == "postgres" {
		return "current_schema()"
	}
	return "DATABASE()"
}

// HasTable reports whether table exists in the active schema. Connection
// errors read as false; callers decide how loud to be about it.
func HasTable(ctx context.Context, q QueryRower, table string) bool {
	var name sql.NullString
	err := q.QueryRowxContext(ctx, q.Rebind(`
		SELECT table_name
		FROM information_schema.tables
		WHERE table_schema = `+schemaExpr(q.DriverName())+`
		  AND table_name = ?
		LIMIT 1
	`), table).Scan(&name)
	if err != nil {
		return false
	}
	return name.Valid && name.String != ""
}

// HasColumn reports whether table.column exists in the active schema.
func HasColumn(ctx context.Context, q QueryRower, table, column string) bool {
	var name sql.NullString
	err := q.QueryRowxContext(ctx, q.Rebind(`
		SELECT column_name
		FROM information_schema.columns
		WHERE table_schema = `+schemaExpr(q.DriverName())+`
		  AND table_name = ?
		  AND column_name = ?
		LIMIT 1
	`), table, column).Scan(&name)
	if err != nil {
		return false
	}
	return name.Valid && name.String != ""
}
