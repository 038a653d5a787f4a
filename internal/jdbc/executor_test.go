package jdbc

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	perr "eshoppers/internal/platform/errors"
	"eshoppers/internal/platform/store"
	"eshoppers/internal/platform/store/dialect"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const kindsDDL = `CREATE TABLE kinds (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	t TEXT, i INTEGER, l INTEGER, f REAL, d REAL, dec NUMERIC,
	b BOOLEAN, ts TIMESTAMP, dt DATE, bl BLOB, n TEXT
)`

type kind struct {
	ID  int64
	T   string
	I   int64
	L   int64
	F   float64
	D   float64
	Dec decimal.Decimal
	B   bool
	TS  time.Time
	DT  time.Time
	BL  []byte
	N   bool
}

func mapKind(r Record) (kind, error) {
	var k kind
	var err error
	if k.ID, err = r.Int64("id"); err != nil {
		return k, err
	}
	if k.T, err = r.String("t"); err != nil {
		return k, err
	}
	if k.I, err = r.Int64("i"); err != nil {
		return k, err
	}
	if k.L, err = r.Int64("l"); err != nil {
		return k, err
	}
	if k.F, err = r.Float64("f"); err != nil {
		return k, err
	}
	if k.D, err = r.Float64("d"); err != nil {
		return k, err
	}
	if k.Dec, err = r.Decimal("dec"); err != nil {
		return k, err
	}
	if k.B, err = r.Bool("b"); err != nil {
		return k, err
	}
	if k.TS, err = r.Time("ts"); err != nil {
		return k, err
	}
	if k.DT, err = r.Time("dt"); err != nil {
		return k, err
	}
	if k.BL, err = r.Bytes("bl"); err != nil {
		return k, err
	}
	k.N, err = r.IsNull("n")
	return k, err
}

func TestExecutor_BindsEveryParamKind(t *testing.T) {
	t.Parallel()

	db := memDB(t)
	mustExec(t, db, kindsDDL)
	ex := New(db)
	ctx := context.Background()

	at := time.Date(2024, 3, 9, 22, 30, 15, 123000, time.UTC)
	id, err := ex.ExecuteInsert(ctx,
		`INSERT INTO kinds (t, i, l, f, d, dec, b, ts, dt, bl, n) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?) RETURNING id`,
		Text("it's"), Int(-3), Long(1<<40), Float(0.5), Double(2.25),
		Dec(decimal.RequireFromString("19.99")), Bool(true), TS(at), Date(at), Blob{0, 1, 2}, Null{},
	)
	require.NoError(t, err)
	assert.Positive(t, id)

	got, err := QueryForEntities(ctx, ex, `SELECT * FROM kinds WHERE id = ?`, Long(id), mapKind)
	require.NoError(t, err)
	require.Len(t, got, 1)

	k := got[0]
	assert.Equal(t, id, k.ID)
	assert.Equal(t, "it's", k.T)
	assert.Equal(t, int64(-3), k.I)
	assert.Equal(t, int64(1<<40), k.L)
	assert.Equal(t, 0.5, k.F)
	assert.Equal(t, 2.25, k.D)
	assert.True(t, k.Dec.Equal(decimal.RequireFromString("19.99")), "dec=%s", k.Dec)
	assert.True(t, k.B)
	assert.True(t, k.TS.Equal(at), "ts=%v", k.TS)
	assert.True(t, k.DT.Equal(time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC)), "dt=%v", k.DT)
	assert.Equal(t, []byte{0, 1, 2}, k.BL)
	assert.True(t, k.N)
}

func TestExecutor_QueryForEntities_OrderAndEmpty(t *testing.T) {
	t.Parallel()

	db := memDB(t)
	mustExec(t, db,
		`CREATE TABLE items (id INTEGER PRIMARY KEY AUTOINCREMENT, grp TEXT NOT NULL, name TEXT NOT NULL)`,
		`INSERT INTO items (grp, name) VALUES ('a', 'one'), ('b', 'skip'), ('a', 'two'), ('a', 'three')`,
	)
	ex := New(db)
	ctx := context.Background()
	name := func(r Record) (string, error) { return r.String("name") }

	got, err := QueryForEntities(ctx, ex, `SELECT name FROM items WHERE grp = ? ORDER BY id`, Text("a"), name)
	require.NoError(t, err)
	assert.Equal(t, []string{"one", "two", "three"}, got)

	none, err := QueryForEntities(ctx, ex, `SELECT name FROM items WHERE grp = ?`, Text("zzz"), name)
	require.NoError(t, err)
	require.NotNil(t, none)
	assert.Empty(t, none)

	all, err := QueryAll(ctx, ex, `SELECT name FROM items ORDER BY id DESC`, name)
	require.NoError(t, err)
	assert.Equal(t, []string{"three", "two", "skip", "one"}, all)

	two, err := QueryWith(ctx, ex, `SELECT name FROM items WHERE grp = ? AND id > ? ORDER BY id`, name, Text("a"), Long(1))
	require.NoError(t, err)
	assert.Equal(t, []string{"two", "three"}, two)
}

func TestExecutor_MapperFailureDiscardsResults(t *testing.T) {
	t.Parallel()

	db := memDB(t)
	mustExec(t, db,
		`CREATE TABLE items (id INTEGER PRIMARY KEY, name TEXT)`,
		`INSERT INTO items VALUES (1, 'ok'), (2, 'bad'), (3, 'ok')`,
	)
	boom := errors.New("cannot map")
	got, err := QueryAll(context.Background(), New(db), `SELECT name FROM items ORDER BY id`, func(r Record) (string, error) {
		s, _ := r.String("name")
		if s == "bad" {
			return "", boom
		}
		return s, nil
	})
	require.ErrorIs(t, err, boom)
	assert.Nil(t, got)
	assert.True(t, IsExecutionError(err))
}

func TestExecutor_ExecuteInsert_LogicErrors(t *testing.T) {
	t.Parallel()

	db := memDB(t)
	mustExec(t, db, `CREATE TABLE t (id INTEGER PRIMARY KEY AUTOINCREMENT, name TEXT)`)
	ex := New(db)
	ctx := context.Background()

	_, err := ex.ExecuteInsert(ctx, `INSERT INTO t (name) SELECT ? WHERE 0 RETURNING id`, Text("x"))
	require.ErrorIs(t, err, ErrNoRowsAffected)
	assert.True(t, IsLogicError(err))
	assert.False(t, IsExecutionError(err))
	assert.EqualError(t, err, "execute insert: no rows affected")

	_, err = ex.ExecuteInsert(ctx, `INSERT INTO t (name) VALUES (?) RETURNING NULL`, Text("x"))
	require.ErrorIs(t, err, ErrNoGeneratedKey)
	assert.True(t, IsLogicError(err))

	_, err = ex.ExecuteInsert(ctx, `INSERT INTO t (name) VALUES (?) RETURNING 0`, Text("x"))
	require.ErrorIs(t, err, ErrNoGeneratedKey)

	before := countRows(t, db, "t")
	_, err = ex.ExecuteInsert(ctx, `INSERT INTO t (name) VALUES (?)`, Text("x"))
	require.ErrorIs(t, err, ErrNoGeneratedKey)
	assert.NotErrorIs(t, err, ErrNoRowsAffected)
	assert.True(t, IsLogicError(err))
	assert.Equal(t, before+1, countRows(t, db, "t"), "the row is written even without a key")
}

func countRows(t *testing.T, q store.RowQuerier, table string) int64 {
	t.Helper()
	var n int64
	require.NoError(t, q.QueryRow(context.Background(), "SELECT COUNT(*) FROM "+table).Scan(&n))
	return n
}

func TestExecutor_NilBlobRoundTripsAsNull(t *testing.T) {
	t.Parallel()

	db := memDB(t)
	mustExec(t, db, `CREATE TABLE files (id INTEGER PRIMARY KEY AUTOINCREMENT, body BLOB)`)
	ex := New(db)
	ctx := context.Background()

	id, err := ex.ExecuteInsert(ctx, `INSERT INTO files (body) VALUES (?) RETURNING id`, Blob(nil))
	require.NoError(t, err)

	got, err := QueryForEntities(ctx, ex, `SELECT body, body IS NULL AS is_null FROM files WHERE id = ?`, Long(id),
		func(r Record) ([]byte, error) {
			null, err := r.Bool("is_null")
			if err != nil || !null {
				return nil, fmt.Errorf("body stored as non null (err=%v)", err)
			}
			return r.Bytes("body")
		})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Nil(t, got[0])
}

func TestExecutor_ExecutionErrors(t *testing.T) {
	t.Parallel()

	db := memDB(t)
	mustExec(t, db, `CREATE TABLE u (id INTEGER PRIMARY KEY AUTOINCREMENT, email TEXT UNIQUE NOT NULL)`)
	ex := New(db)
	ctx := context.Background()

	_, err := ex.ExecuteInsert(ctx, `INSERT INTO u (email) VALUES (?) RETURNING id`, Text("a@b"))
	require.NoError(t, err)

	_, err = ex.ExecuteInsert(ctx, `INSERT INTO u (email) VALUES (?) RETURNING id`, Text("a@b"))
	require.Error(t, err)
	assert.True(t, IsExecutionError(err))
	assert.Equal(t, perr.ErrorCodeDuplicateKey, perr.CodeOf(err))

	err = ex.ExecuteUpdate(ctx, `UPDATE missing SET x = ?`, Long(1))
	require.Error(t, err)
	assert.True(t, IsExecutionError(err))
	assert.Equal(t, perr.ErrorCodeDB, perr.CodeOf(err))

	e, ok := perr.As(err)
	require.True(t, ok)
	assert.Equal(t, "execute update", e.Op())
}

func TestExecutor_ExecuteUpdateCountAndDelete(t *testing.T) {
	t.Parallel()

	db := memDB(t)
	mustExec(t, db,
		`CREATE TABLE t (id INTEGER PRIMARY KEY, n INTEGER)`,
		`INSERT INTO t VALUES (1, 0), (2, 0), (3, 5)`,
	)
	ex := New(db)
	ctx := context.Background()

	n, err := ex.ExecuteUpdateCount(ctx, `UPDATE t SET n = n + ? WHERE n = ?`, Int(1), Int(0))
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	require.NoError(t, ex.DeleteByID(ctx, `DELETE FROM t WHERE id = ?`, 3))
	require.NoError(t, ex.DeleteByID(ctx, `DELETE FROM t WHERE id = ?`, 42))

	ids, err := QueryAll(ctx, ex, `SELECT id FROM t ORDER BY id`, func(r Record) (int64, error) { return r.Int64("id") })
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2}, ids)
}

func TestExecutor_Query_HandsCursorAndCloses(t *testing.T) {
	t.Parallel()

	db := memDB(t)
	mustExec(t, db,
		`CREATE TABLE t (id INTEGER PRIMARY KEY, name TEXT)`,
		`INSERT INTO t VALUES (1, 'a'), (2, 'b')`,
	)
	ex := New(db)

	var names []string
	err := ex.Query(context.Background(), `SELECT name FROM t ORDER BY id`, func(rs Rows) error {
		for rs.Next() {
			var s string
			if err := rs.Scan(&s); err != nil {
				return err
			}
			names = append(names, s)
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, names)

	boom := errors.New("callback")
	err = ex.Query(context.Background(), `SELECT name FROM t`, func(Rows) error { return boom })
	require.ErrorIs(t, err, boom)
	assert.True(t, IsExecutionError(err))
}

func TestExecutor_Query_ClosesOnPanic(t *testing.T) {
	t.Parallel()

	rq := &recQuerier{rows: &fakeRows{cols: []string{"n"}}}
	ex := New(rq)
	assert.Panics(t, func() {
		_ = ex.Query(context.Background(), "select n from t", func(Rows) error { panic("callback blew up") })
	})
	assert.True(t, rq.rows.closed)
}

func TestExecutor_RebindsForPostgres(t *testing.T) {
	t.Parallel()

	rq := &recQuerier{rows: &fakeRows{cols: []string{"id"}, data: [][]any{{int64(11)}}}}
	ex := New(rq)
	require.Equal(t, "postgres", ex.Dialect().Name())

	id, err := ex.ExecuteInsert(context.Background(), `INSERT INTO p (a, b) VALUES (?, '?') RETURNING id`, Text("x"))
	require.NoError(t, err)
	assert.Equal(t, int64(11), id)
	assert.Equal(t, `INSERT INTO p (a, b) VALUES ($1, '?') RETURNING id`, rq.sqls[0])
	assert.Equal(t, []any{"x"}, rq.args[0])

	require.NoError(t, ex.DeleteByID(context.Background(), `DELETE FROM p WHERE id = ?`, 11))
	assert.Equal(t, `DELETE FROM p WHERE id = $1`, rq.sqls[1])
	assert.Equal(t, []any{int64(11)}, rq.args[1])
}

func TestExecutor_WithDialectOverride(t *testing.T) {
	t.Parallel()

	rq := &recQuerier{}
	ex := New(rq, WithDialect(dialect.SQLite{}))
	require.NoError(t, ex.ExecuteUpdate(context.Background(), `UPDATE p SET a = ? WHERE id = ?`, Text("x"), Long(1)))
	assert.Equal(t, `UPDATE p SET a = ? WHERE id = ?`, rq.sqls[0])
}

func TestExecutor_ParamProblemsNeverReachTheDatabase(t *testing.T) {
	t.Parallel()

	rq := &recQuerier{}
	ex := New(rq)
	ctx := context.Background()

	err := ex.ExecuteUpdate(ctx, `UPDATE p SET a = ? WHERE id = ?`, Text("x"))
	require.ErrorIs(t, err, ErrPlaceholderCount)
	assert.Equal(t, perr.ErrorCodeInvalidArgument, perr.CodeOf(err))

	err = ex.ExecuteUpdate(ctx, `UPDATE p SET a = ?`, nil)
	require.ErrorIs(t, err, ErrUnsupportedParamType)

	assert.Empty(t, rq.sqls)
}

func TestExecutor_QueryErrorAndRowsErr(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	id := func(r Record) (int64, error) { return r.Int64("id") }

	failing := &recQuerier{query: errors.New("connection reset")}
	_, err := QueryAll(ctx, New(failing), `SELECT id FROM t`, id)
	require.Error(t, err)
	assert.True(t, IsExecutionError(err))

	broken := &recQuerier{rows: &fakeRows{cols: []string{"id"}, data: [][]any{{int64(1)}}, err: errors.New("stream cut")}}
	got, err := QueryAll(ctx, New(broken), `SELECT id FROM t`, id)
	require.Error(t, err)
	assert.Nil(t, got)
	assert.True(t, broken.rows.closed)
}

func TestExecutor_InsideTx(t *testing.T) {
	t.Parallel()

	db := memDB(t)
	mustExec(t, db, `CREATE TABLE t (id INTEGER PRIMARY KEY AUTOINCREMENT, name TEXT)`)
	ctx := context.Background()

	boom := errors.New("abort")
	err := db.Tx(ctx, func(q store.RowQuerier) error {
		ex := New(q)
		if _, err := ex.ExecuteInsert(ctx, `INSERT INTO t (name) VALUES (?) RETURNING id`, Text("gone")); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	n, err := QueryAll(ctx, New(db), `SELECT COUNT(*) AS n FROM t`, func(r Record) (int64, error) { return r.Int64("n") })
	require.NoError(t, err)
	assert.Equal(t, []int64{0}, n)
}

func TestNew_NilQuerierPanics(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() { New(nil) })
}
