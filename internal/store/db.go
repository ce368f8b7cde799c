package store

import (
	"context"
	"database/sql"
)

// DBTX is the subset of *sql.DB (and *sql.Tx) used by the SQL store
// implementations, so they can run against a pool or a single transaction.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}
