// Package jdbc runs hand written sql against an explicit connection handle,
// binding typed params and mapping rows through caller supplied mappers
package jdbc

import (
	"context"
	"fmt"

	"eshoppers/internal/platform/logger"
	"eshoppers/internal/platform/store"
	"eshoppers/internal/platform/store/dialect"

	lru "github.com/hashicorp/golang-lru/v2"
)

// Rows is the live cursor handed to Query callbacks
type Rows = store.Rows

type rebindKey struct {
	dialect string
	sql     string
}

var rebound = mustCache(512)

func mustCache(size int) *lru.Cache[rebindKey, string] {
	c, err := lru.New[rebindKey, string](size)
	if err != nil {
		panic(err)
	}
	return c
}

// Executor runs statements on the handle it was built with
// it holds no mutable state and is safe to share
type Executor struct {
	q   store.RowQuerier
	d   dialect.Dialect
	log logger.Logger
}

// Option configures an Executor
type Option func(*Executor)

// WithLogger sets the logger used for failures
func WithLogger(l logger.Logger) Option {
	return func(e *Executor) { e.log = l }
}

// WithDialect overrides the placeholder style reported by the handle
func WithDialect(d dialect.Dialect) Option {
	return func(e *Executor) { e.d = d }
}

// New binds an executor to q
func New(q store.RowQuerier, opts ...Option) *Executor {
	if q == nil {
		panic("jdbc: nil RowQuerier")
	}
	e := &Executor{q: q, d: store.DialectOf(q), log: *logger.Named("jdbc")}
	for _, o := range opts {
		o(e)
	}
	return e
}

// Dialect returns the placeholder style statements are rebound to
func (e *Executor) Dialect() dialect.Dialect { return e.d }

// prepare rebinds sql and converts params, checking they line up
func (e *Executor) prepare(op, query string, params []Param) (string, []any, error) {
	if n := dialect.Count(query); n != len(params) {
		return "", nil, paramErr(op, fmt.Errorf("%w: %d placeholders, %d params", ErrPlaceholderCount, n, len(params)))
	}
	args, err := bindParams(params)
	if err != nil {
		return "", nil, paramErr(op, err)
	}
	return e.rebind(query), args, nil
}

func (e *Executor) rebind(query string) string {
	k := rebindKey{dialect: e.d.Name(), sql: query}
	if s, ok := rebound.Get(k); ok {
		return s
	}
	s := dialect.Rebind(e.d, query)
	rebound.Add(k, s)
	return s
}

// ExecuteUpdate runs an insert, update or delete and discards the result
func (e *Executor) ExecuteUpdate(ctx context.Context, query string, params ...Param) error {
	_, err := e.ExecuteUpdateCount(ctx, query, params...)
	return err
}

// ExecuteUpdateCount runs a write and returns the number of rows it touched
func (e *Executor) ExecuteUpdateCount(ctx context.Context, query string, params ...Param) (int64, error) {
	const op = "execute update"
	sqlText, args, err := e.prepare(op, query, params)
	if err != nil {
		return 0, e.fail(ctx, op, err)
	}
	tag, err := e.q.Exec(ctx, sqlText, args...)
	if err != nil {
		return 0, e.fail(ctx, op, execErr(op, err))
	}
	if tag == nil {
		return 0, nil
	}
	return tag.RowsAffected(), nil
}

// Query runs a parameterless select and hands the cursor to fn
// the cursor is closed on every exit path
func (e *Executor) Query(ctx context.Context, query string, fn func(Rows) error) error {
	const op = "query"
	sqlText, _, err := e.prepare(op, query, nil)
	if err != nil {
		return e.fail(ctx, op, err)
	}
	rs, err := e.q.Query(ctx, sqlText)
	if err != nil {
		return e.fail(ctx, op, execErr(op, err))
	}
	defer rs.Close()

	if err := fn(rs); err != nil {
		return e.fail(ctx, op, execErr(op, err))
	}
	if err := rs.Err(); err != nil {
		return e.fail(ctx, op, execErr(op, err))
	}
	return nil
}

// ExecuteInsert runs an insert ending in RETURNING id and returns that id
// a statement that yields no columns fails with ErrNoGeneratedKey, one that yields no row with ErrNoRowsAffected
func (e *Executor) ExecuteInsert(ctx context.Context, query string, params ...Param) (int64, error) {
	const op = "execute insert"
	sqlText, args, err := e.prepare(op, query, params)
	if err != nil {
		return 0, e.fail(ctx, op, err)
	}

	rs, err := e.q.Query(ctx, sqlText, args...)
	if err != nil {
		return 0, e.fail(ctx, op, execErr(op, err))
	}
	defer rs.Close()

	if len(rs.Columns()) == 0 {
		for rs.Next() {
		}
		if err := rs.Err(); err != nil {
			return 0, e.fail(ctx, op, execErr(op, err))
		}
		return 0, e.fail(ctx, op, logicErr(op, ErrNoGeneratedKey))
	}
	if !rs.Next() {
		if err := rs.Err(); err != nil {
			return 0, e.fail(ctx, op, execErr(op, err))
		}
		return 0, e.fail(ctx, op, logicErr(op, ErrNoRowsAffected))
	}

	var id *int64
	if err := rs.Scan(&id); err != nil {
		return 0, e.fail(ctx, op, execErr(op, err))
	}
	if err := rs.Err(); err != nil {
		return 0, e.fail(ctx, op, execErr(op, err))
	}
	if id == nil || *id <= 0 {
		return 0, e.fail(ctx, op, logicErr(op, ErrNoGeneratedKey))
	}
	return *id, nil
}

// DeleteByID runs a delete with the id as its single param
func (e *Executor) DeleteByID(ctx context.Context, query string, id int64) error {
	const op = "delete by id"
	sqlText, args, err := e.prepare(op, query, []Param{Long(id)})
	if err != nil {
		return e.failID(ctx, op, id, err)
	}
	if _, err := e.q.Exec(ctx, sqlText, args...); err != nil {
		return e.failID(ctx, op, id, execErr(op, err))
	}
	return nil
}

// QueryForEntities runs a select with one param and maps every row in order
func QueryForEntities[E any](ctx context.Context, e *Executor, query string, param Param, mapper RowMapper[E]) ([]E, error) {
	return collect(ctx, e, "query for entities", query, []Param{param}, mapper)
}

// QueryAll runs a parameterless select and maps every row in order
func QueryAll[E any](ctx context.Context, e *Executor, query string, mapper RowMapper[E]) ([]E, error) {
	return collect(ctx, e, "query all", query, nil, mapper)
}

// QueryWith runs a select with any number of params and maps every row in order
func QueryWith[E any](ctx context.Context, e *Executor, query string, mapper RowMapper[E], params ...Param) ([]E, error) {
	return collect(ctx, e, "query with", query, params, mapper)
}

func collect[E any](ctx context.Context, e *Executor, op, query string, params []Param, mapper RowMapper[E]) ([]E, error) {
	if mapper == nil {
		panic("jdbc: nil RowMapper")
	}
	sqlText, args, err := e.prepare(op, query, params)
	if err != nil {
		return nil, e.fail(ctx, op, err)
	}
	rs, err := e.q.Query(ctx, sqlText, args...)
	if err != nil {
		return nil, e.fail(ctx, op, execErr(op, err))
	}
	defer rs.Close()

	cols := rs.Columns()
	out := make([]E, 0)
	for rs.Next() {
		rec, err := scanRecord(cols, rs)
		if err != nil {
			return nil, e.fail(ctx, op, execErr(op, err))
		}
		ent, err := mapper(rec)
		if err != nil {
			return nil, e.fail(ctx, op, execErr(op, fmt.Errorf("row %d: %w", len(out)+1, err)))
		}
		out = append(out, ent)
	}
	if err := rs.Err(); err != nil {
		return nil, e.fail(ctx, op, execErr(op, err))
	}
	return out, nil
}

func (e *Executor) fail(ctx context.Context, op string, err error) error {
	e.log.Error().Ctx(ctx).Str("op", op).Err(err).Msg("sql failed")
	return err
}

func (e *Executor) failID(ctx context.Context, op string, id int64, err error) error {
	e.log.Error().Ctx(ctx).Str("op", op).Int64("id", id).Err(err).Msg("sql failed")
	return err
}
