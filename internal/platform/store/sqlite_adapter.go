package store

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"time"

	"eshoppers/internal/platform/store/dialect"
	"eshoppers/internal/platform/store/lite"
	"eshoppers/internal/platform/store/sqltrace"
)

// sqlQuerier is the part of sql.DB and sql.Tx the adapter drives
type sqlQuerier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// liteAdapter wraps lite.Lite and implements TxRunner, Pinger and Dialected
type liteAdapter struct {
	l *lite.Lite
	liteQuerier
}

func newLiteAdapter(l *lite.Lite) *liteAdapter {
	return &liteAdapter{l: l, liteQuerier: liteQuerier{q: l.DB, em: l.Emitter()}}
}

func (a *liteAdapter) Ping(ctx context.Context) error {
	if a == nil || a.l == nil || a.l.DB == nil {
		return errors.New("sqlite: nil adapter")
	}
	return a.l.DB.PingContext(ctx)
}

func (a *liteAdapter) Close() error { return a.l.Close() }

func (a *liteAdapter) Tx(ctx context.Context, fn func(q RowQuerier) error) error {
	tx, err := a.l.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(liteQuerier{q: tx, em: a.em}); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

// liteQuerier runs statements on a db or a tx and traces each one
type liteQuerier struct {
	q  sqlQuerier
	em sqltrace.Emitter
}

func (liteQuerier) Dialect() dialect.Dialect { return dialect.SQLite{} }

func (x liteQuerier) Exec(ctx context.Context, query string, args ...any) (CommandTag, error) {
	start := time.Now()
	res, err := x.q.ExecContext(ctx, query, args...)
	x.em.Emit(ctx, query, args, start, err)
	if err != nil {
		return nil, err
	}
	return liteTag{res: res}, nil
}

func (x liteQuerier) Query(ctx context.Context, query string, args ...any) (Rows, error) {
	start := time.Now()
	rs, err := x.q.QueryContext(ctx, query, args...)
	x.em.Emit(ctx, query, args, start, err)
	if err != nil {
		return nil, err
	}
	return liteRows{r: rs}, nil
}

func (x liteQuerier) QueryRow(ctx context.Context, query string, args ...any) Row {
	start := time.Now()
	r := x.q.QueryRowContext(ctx, query, args...)
	return tracedRow{
		r: r,
		after: func(scanErr error) {
			x.em.Emit(ctx, query, args, start, scanErr)
		},
	}
}

type liteRows struct{ r *sql.Rows }

func (x liteRows) Next() bool            { return x.r.Next() }
func (x liteRows) Scan(dst ...any) error { return x.r.Scan(dst...) }
func (x liteRows) Err() error            { return x.r.Err() }
func (x liteRows) Close()                { _ = x.r.Close() }

// Columns is empty once the rows are closed
func (x liteRows) Columns() []string {
	cols, _ := x.r.Columns()
	return cols
}

// liteTag renders a pg style tag from sql.Result
type liteTag struct{ res sql.Result }

func (t liteTag) RowsAffected() int64 {
	n, err := t.res.RowsAffected()
	if err != nil {
		return 0
	}
	return n
}

func (t liteTag) String() string {
	return "OK " + strconv.FormatInt(t.RowsAffected(), 10)
}
