package repository

import (
	"context"
	"database/sql"
)

// DBTX - общий срез *sql.DB и *sql.Tx: репозитории работают
// как в рамках транзакции, так и вне ее
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}
