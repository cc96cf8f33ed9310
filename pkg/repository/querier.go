// Package repository holds the SQL functions of the postgres store.
// The functions take a Querier so they work on a pool as well as within a transaction.
package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

//nolint:lll // ok for interface
type Querier interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type Beginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

var (
	_ Querier  = (*pgx.Conn)(nil)
	_ Querier  = (*pgxpool.Pool)(nil)
	_ Querier  = pgx.Tx(nil)
	_ Beginner = (*pgxpool.Pool)(nil)
)

// InTx runs fn in a transaction which is committed if fn returns nil.
func InTx(ctx context.Context, conn Beginner, fn func(q Querier) error) error {
	return pgx.BeginFunc(ctx, conn, func(tx pgx.Tx) error {
		return fn(tx)
	})
}
