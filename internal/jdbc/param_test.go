package jdbc

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParamOf_KnownTypes(t *testing.T) {
	t.Parallel()

	now := time.Now()
	d := decimal.RequireFromString("19.99")
	cases := []struct {
		in   any
		want Param
	}{
		{nil, Null{}},
		{"x", Text("x")},
		{int32(7), Int(7)},
		{7, Long(7)},
		{int64(8), Long(8)},
		{float32(1.5), Float(1.5)},
		{2.25, Double(2.25)},
		{true, Bool(true)},
		{[]byte("ab"), Blob("ab")},
		{d, Dec(d)},
		{now, Timestamp(now)},
		{Date(now), Date(now)},
	}
	for _, c := range cases {
		got, err := ParamOf(c.in)
		require.NoError(t, err, "%T", c.in)
		assert.Equal(t, c.want, got, "%T", c.in)
	}
}

func TestParamOf_Unsupported(t *testing.T) {
	t.Parallel()

	_, err := ParamOf(struct{ A int }{1})
	require.ErrorIs(t, err, ErrUnsupportedParamType)
	assert.EqualError(t, err, "param (struct { A int }): unsupported param type")

	_, err = Params("a", 1, map[string]int{})
	require.ErrorIs(t, err, ErrUnsupportedParamType)
	var pe *ParamError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, 3, pe.Pos)
	assert.Equal(t, "map[string]int", pe.Type)
	assert.EqualError(t, err, "param 3 (map[string]int): unsupported param type")
}

func TestNullableText(t *testing.T) {
	t.Parallel()

	assert.Equal(t, Null{}, NullableText(""))
	assert.Equal(t, Text("flat 2"), NullableText("flat 2"))
}

func TestBindParams_OrderAndValues(t *testing.T) {
	t.Parallel()

	loc := time.FixedZone("X", -5*3600)
	at := time.Date(2024, 3, 9, 22, 30, 0, 0, loc)
	args, err := bindParams([]Param{
		Text("a"), Int(1), Long(2), Float(0.5), Double(0.25), Bool(true),
		Blob(nil), Dec(decimal.RequireFromString("10.50")), TS(at), Date(at), Null{},
	})
	require.NoError(t, err)
	require.Len(t, args, 11)

	assert.Equal(t, "a", args[0])
	assert.Equal(t, int32(1), args[1])
	assert.Equal(t, int64(2), args[2])
	assert.Equal(t, float32(0.5), args[3])
	assert.Equal(t, 0.25, args[4])
	assert.Equal(t, true, args[5])
	assert.Nil(t, args[6])
	assert.Equal(t, "10.5", args[7])
	assert.True(t, at.Equal(args[8].(time.Time)))
	assert.Equal(t, time.UTC, args[8].(time.Time).Location())
	assert.Equal(t, time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC), args[9])
	assert.Nil(t, args[10])
}

func TestBindParams_NilParamFails(t *testing.T) {
	t.Parallel()

	_, err := bindParams([]Param{Text("ok"), nil})
	require.ErrorIs(t, err, ErrUnsupportedParamType)
	var pe *ParamError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, 2, pe.Pos)
}
