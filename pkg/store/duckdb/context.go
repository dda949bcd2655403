// Package duckdb owns the embedded database used for traffic snapshots: the
// connector with its boot schema and the ctx-carried transaction the snapshot
// store joins when a caller batches several writes atomically.
package duckdb

import (
	"context"
	"database/sql"
)

type txKey struct{}

// WithTransaction attaches a transaction to the context so snapshot store
// writes within it share one commit.
func WithTransaction(ctx context.Context, tx *sql.Tx) context.Context {
	return context.WithValue(ctx, txKey{}, tx)
}

// GetTransaction returns the context's transaction, or nil when the caller
// did not start one.
func GetTransaction(ctx context.Context) *sql.Tx {
	tx, _ := ctx.Value(txKey{}).(*sql.Tx)
	return tx
}
