package jdbc

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"eshoppers/internal/platform/store"

	"github.com/stretchr/testify/require"
)

// memDB opens a private in memory sqlite store
func memDB(t *testing.T) store.TxRunner {
	t.Helper()
	s, err := store.Open(context.Background(), store.Config{
		SQLite: store.SQLiteConfig{Enabled: true, Path: ":memory:"},
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close(context.Background()) })
	return s.Lite
}

func mustExec(t *testing.T, q store.RowQuerier, stmts ...string) {
	t.Helper()
	for _, s := range stmts {
		_, err := q.Exec(context.Background(), s)
		require.NoError(t, err, s)
	}
}

// recQuerier records statements and serves canned results, postgres dialect by default
type recQuerier struct {
	sqls  []string
	args  [][]any
	rows  *fakeRows
	row   func(dest ...any) error
	exec  error
	query error
}

func (r *recQuerier) Exec(_ context.Context, sql string, args ...any) (store.CommandTag, error) {
	r.sqls = append(r.sqls, sql)
	r.args = append(r.args, args)
	if r.exec != nil {
		return nil, r.exec
	}
	return fakeTag(1), nil
}

func (r *recQuerier) Query(_ context.Context, sql string, args ...any) (store.Rows, error) {
	r.sqls = append(r.sqls, sql)
	r.args = append(r.args, args)
	if r.query != nil {
		return nil, r.query
	}
	if r.rows == nil {
		r.rows = &fakeRows{}
	}
	return r.rows, nil
}

func (r *recQuerier) QueryRow(_ context.Context, sql string, args ...any) store.Row {
	r.sqls = append(r.sqls, sql)
	r.args = append(r.args, args)
	return rowFunc(r.row)
}

type rowFunc func(dest ...any) error

func (f rowFunc) Scan(dest ...any) error {
	if f == nil {
		return errors.New("no row configured")
	}
	return f(dest...)
}

type fakeTag int64

func (t fakeTag) String() string      { return "OK" }
func (t fakeTag) RowsAffected() int64 { return int64(t) }

// fakeRows serves a grid of values and records Close
type fakeRows struct {
	cols   []string
	data   [][]any
	idx    int
	err    error
	closed bool
}

func (f *fakeRows) Next() bool {
	if f.idx >= len(f.data) {
		return false
	}
	f.idx++
	return true
}

func (f *fakeRows) Scan(dest ...any) error {
	row := f.data[f.idx-1]
	for i := range dest {
		switch d := dest[i].(type) {
		case *any:
			*d = row[i]
		case **int64:
			if v, ok := row[i].(int64); ok {
				*d = &v
			} else {
				*d = nil
			}
		default:
			return fmt.Errorf("fakeRows: cannot scan into %T", dest[i])
		}
	}
	return nil
}

func (f *fakeRows) Err() error        { return f.err }
func (f *fakeRows) Close()            { f.closed = true }
func (f *fakeRows) Columns() []string { return f.cols }
