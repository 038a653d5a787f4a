// Package repokit binds repositories to whatever runs the current statement, a pool or a tx
package repokit

import (
	"context"

	"eshoppers/internal/platform/store"
)

type (
	// Queryer runs statements, see store.RowQuerier
	Queryer = store.RowQuerier
	// TxRunner opens transactions on a backend
	TxRunner = store.TxRunner
)

// Binder builds a repo on top of q
type Binder[R any] interface {
	Bind(q Queryer) R
}

// BindFunc is a Binder made of a func
type BindFunc[R any] func(Queryer) R

// Bind calls f
func (f BindFunc[R]) Bind(q Queryer) R { return f(q) }

func bind[R any](b Binder[R], q Queryer) R {
	if q == nil {
		panic("repokit: bind on a nil queryer")
	}
	return b.Bind(q)
}

// InTx runs fn in one transaction and returns its value
// any error rolls back and yields the zero value
func InTx[T any](ctx context.Context, tx TxRunner, fn func(q Queryer) (T, error)) (T, error) {
	var out T
	err := tx.Tx(ctx, func(q Queryer) error {
		v, err := fn(q)
		out = v
		return err
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return out, nil
}

// BindTx runs fn with a repo bound to a fresh transaction
func BindTx[R any](ctx context.Context, tx TxRunner, b Binder[R], fn func(r R) error) error {
	return tx.Tx(ctx, func(q Queryer) error { return fn(bind(b, q)) })
}
