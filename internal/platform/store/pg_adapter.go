package store

import (
	"context"
	"errors"
	"time"

	"eshoppers/internal/platform/store/dialect"
	"eshoppers/internal/platform/store/pg"
	"eshoppers/internal/platform/store/sqltrace"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// pgxQuerier is the part of pgxpool.Pool and pgx.Tx the adapter drives
type pgxQuerier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// pgAdapter wraps pg.PG and implements TxRunner, Pinger and Dialected
type pgAdapter struct {
	p *pg.PG
	pgQuerier
}

func newPGAdapter(p *pg.PG) *pgAdapter {
	return &pgAdapter{p: p, pgQuerier: pgQuerier{q: p.Pool, em: p.Emitter()}}
}

func (a *pgAdapter) Ping(ctx context.Context) error {
	if a == nil || a.p == nil {
		return errors.New("pg: nil adapter")
	}
	var one int
	return a.QueryRow(ctx, "SELECT 1").Scan(&one)
}

func (a *pgAdapter) Close() error { a.p.Close(); return nil }

func (a *pgAdapter) Tx(ctx context.Context, fn func(q RowQuerier) error) error {
	tx, err := a.p.Pool.Begin(ctx)
	if err != nil {
		return err
	}
	if err := fn(pgQuerier{q: tx, em: a.em}); err != nil {
		_ = tx.Rollback(ctx)
		return err
	}
	return tx.Commit(ctx)
}

// pgQuerier runs statements on a pool or a tx and traces each one
type pgQuerier struct {
	q  pgxQuerier
	em sqltrace.Emitter
}

func (pgQuerier) Dialect() dialect.Dialect { return dialect.Postgres{} }

func (x pgQuerier) Exec(ctx context.Context, sql string, args ...any) (CommandTag, error) {
	start := time.Now()
	ct, err := x.q.Exec(ctx, sql, args...)
	x.em.Emit(ctx, sql, args, start, err)
	return pgTag{ct}, err
}

// Query emits on open, scan time is not included
func (x pgQuerier) Query(ctx context.Context, sql string, args ...any) (Rows, error) {
	start := time.Now()
	rs, err := x.q.Query(ctx, sql, args...)
	x.em.Emit(ctx, sql, args, start, err)
	if err != nil {
		return nil, err
	}
	return tracedRows{r: rs}, nil
}

// QueryRow emits once Scan returns so the scan error is captured
func (x pgQuerier) QueryRow(ctx context.Context, sql string, args ...any) Row {
	start := time.Now()
	r := x.q.QueryRow(ctx, sql, args...)
	return tracedRow{
		r: r,
		after: func(scanErr error) {
			x.em.Emit(ctx, sql, args, start, scanErr)
		},
	}
}

type tracedRow struct {
	r     pgx.Row
	after func(error)
}

func (x tracedRow) Scan(dst ...any) error {
	err := x.r.Scan(dst...)
	if x.after != nil {
		x.after(err)
	}
	return err
}

type tracedRows struct{ r pgx.Rows }

func (x tracedRows) Next() bool            { return x.r.Next() }
func (x tracedRows) Scan(dst ...any) error { return x.r.Scan(dst...) }
func (x tracedRows) Err() error            { return x.r.Err() }
func (x tracedRows) Close()                { x.r.Close() }
func (x tracedRows) Columns() []string {
	f := x.r.FieldDescriptions()
	out := make([]string, len(f))
	for i := range f {
		out[i] = f[i].Name
	}
	return out
}

type pgTag struct{ t pgconn.CommandTag }

func (t pgTag) String() string      { return t.t.String() }
func (t pgTag) RowsAffected() int64 { return t.t.RowsAffected() }
