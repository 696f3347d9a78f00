// Package tx carries an open *sql.Tx through a context so that the registry
// managers and the audit store can write inside the same transaction.
package tx

import (
	"context"
	"database/sql"
)

// Querier is the statement surface shared by *sql.DB and *sql.Tx.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type txKey struct{}

// WithTx returns ctx carrying sqlTx. A nil transaction leaves ctx untouched.
func WithTx(ctx context.Context, sqlTx *sql.Tx) context.Context {
	if sqlTx == nil {
		return ctx
	}
	return context.WithValue(ctx, txKey{}, sqlTx)
}

// From returns the transaction carried by ctx.
func From(ctx context.Context) (*sql.Tx, bool) {
	sqlTx, ok := ctx.Value(txKey{}).(*sql.Tx)
	return sqlTx, ok && sqlTx != nil
}

// QuerierFor returns the transaction carried by ctx, or db when there is none.
func QuerierFor(ctx context.Context, db *sql.DB) Querier {
	if sqlTx, ok := From(ctx); ok {
		return sqlTx
	}
	return db
}
