package jdbc

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecord_Getters(t *testing.T) {
	t.Parallel()

	at := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	r := RecordOf(
		[]string{"ID", "name", "price", "active", "flag", "at", "at_text", "raw", "ratio", "note"},
		[]any{int64(4), "hat", "12.30", true, int64(1), at, "2024-01-02 03:04:05+00:00", []byte{1, 2}, 0.5, nil},
	)

	id, err := r.Int64("id")
	require.NoError(t, err)
	assert.Equal(t, int64(4), id)

	name, err := r.String("NAME")
	require.NoError(t, err)
	assert.Equal(t, "hat", name)

	price, err := r.Decimal("price")
	require.NoError(t, err)
	assert.True(t, price.Equal(decimal.RequireFromString("12.3")))

	active, err := r.Bool("active")
	require.NoError(t, err)
	assert.True(t, active)
	flag, err := r.Bool("flag")
	require.NoError(t, err)
	assert.True(t, flag)

	got, err := r.Time("at")
	require.NoError(t, err)
	assert.True(t, got.Equal(at))
	got, err = r.Time("at_text")
	require.NoError(t, err)
	assert.True(t, got.Equal(at))

	raw, err := r.Bytes("raw")
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2}, raw)

	ratio, err := r.Float64("ratio")
	require.NoError(t, err)
	assert.Equal(t, 0.5, ratio)

	note, err := r.String("note")
	require.NoError(t, err)
	assert.Equal(t, "", note)
	isNull, err := r.IsNull("note")
	require.NoError(t, err)
	assert.True(t, isNull)

	assert.True(t, r.Has("Price"))
	assert.False(t, r.Has("missing"))
	assert.Len(t, r.Columns(), 10)
}

func TestRecord_Failures(t *testing.T) {
	t.Parallel()

	r := RecordOf([]string{"id", "name", "at", "price"}, []any{"seven", int64(3), nil, "abc"})

	_, err := r.String("nope")
	require.ErrorIs(t, err, ErrColumnMissing)

	_, err = r.Int64("id")
	require.ErrorIs(t, err, ErrColumnType)

	_, err = r.String("name")
	require.ErrorIs(t, err, ErrColumnType)

	_, err = r.Time("at")
	require.ErrorIs(t, err, ErrNullValue)

	_, err = r.Decimal("price")
	require.ErrorIs(t, err, ErrColumnType)

	_, err = r.Bool("name")
	require.ErrorIs(t, err, ErrColumnType)
}

func TestRecord_DecimalSources(t *testing.T) {
	t.Parallel()

	want := decimal.RequireFromString("19.99")
	for _, v := range []any{"19.99", []byte("19.99"), 19.99, want} {
		got, err := RecordOf([]string{"p"}, []any{v}).Decimal("p")
		require.NoError(t, err, "%T", v)
		assert.True(t, got.Equal(want), "%T gave %s", v, got)
	}
	n, err := RecordOf([]string{"p"}, []any{int64(20)}).Decimal("p")
	require.NoError(t, err)
	assert.True(t, n.Equal(decimal.NewFromInt(20)))
}

func TestRecord_DuplicateColumnsKeepFirst(t *testing.T) {
	t.Parallel()

	r := RecordOf([]string{"id", "id"}, []any{int64(1), int64(2)})
	id, err := r.Int64("id")
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)
}

func TestReader_KeepsFirstError(t *testing.T) {
	t.Parallel()

	at := time.Date(2024, 1, 2, 3, 4, 5, 0, time.FixedZone("X", 3600))
	rd := Read(RecordOf([]string{"id", "name", "at"}, []any{int64(9), "cap", at}))
	assert.Equal(t, int64(9), rd.Int64("id"))
	assert.Equal(t, "cap", rd.String("name"))
	assert.Equal(t, time.UTC, rd.Time("at").Location())
	require.NoError(t, rd.Err())

	_ = rd.Int64("missing")
	_ = rd.Bool("name")
	require.ErrorIs(t, rd.Err(), ErrColumnMissing)
}
