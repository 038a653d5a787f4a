package jdbc

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var (
	// ErrColumnMissing is returned for a column the row does not carry
	ErrColumnMissing = errors.New("column missing")
	// ErrColumnType is returned when a column holds a value the getter cannot convert
	ErrColumnType = errors.New("unexpected column type")
	// ErrNullValue is returned when a required column is NULL
	ErrNullValue = errors.New("unexpected null")
)

// RowMapper turns one Record into an entity
type RowMapper[E any] func(Record) (E, error)

// Record is one result row readable by column name
// names match case insensitively
type Record struct {
	cols  []string
	vals  []any
	index map[string]int
}

func newRecord(cols []string, vals []any) Record {
	idx := make(map[string]int, len(cols))
	for i, c := range cols {
		k := strings.ToLower(c)
		if _, dup := idx[k]; !dup {
			idx[k] = i
		}
	}
	return Record{cols: cols, vals: vals, index: idx}
}

// RecordOf builds a Record from parallel column and value slices
func RecordOf(cols []string, vals []any) Record { return newRecord(cols, vals) }

// scanRecord reads the current row of rs into a Record
func scanRecord(cols []string, rs interface{ Scan(...any) error }) (Record, error) {
	vals := make([]any, len(cols))
	ptrs := make([]any, len(cols))
	for i := range vals {
		ptrs[i] = &vals[i]
	}
	if err := rs.Scan(ptrs...); err != nil {
		return Record{}, err
	}
	return newRecord(cols, vals), nil
}

// Columns returns the column names in select order
func (r Record) Columns() []string { return r.cols }

// Has reports whether col is part of the row
func (r Record) Has(col string) bool {
	_, ok := r.index[strings.ToLower(col)]
	return ok
}

// Value returns the raw driver value of col
func (r Record) Value(col string) (any, error) {
	i, ok := r.index[strings.ToLower(col)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrColumnMissing, col)
	}
	return r.vals[i], nil
}

// IsNull reports whether col holds NULL
func (r Record) IsNull(col string) (bool, error) {
	v, err := r.Value(col)
	if err != nil {
		return false, err
	}
	return v == nil, nil
}

// String reads a text column, NULL reads as ""
func (r Record) String(col string) (string, error) {
	v, err := r.Value(col)
	if err != nil {
		return "", err
	}
	switch x := v.(type) {
	case nil:
		return "", nil
	case string:
		return x, nil
	case []byte:
		return string(x), nil
	}
	return "", typeErr(col, "string", v)
}

// Int64 reads a non null integer column
func (r Record) Int64(col string) (int64, error) {
	v, err := r.Value(col)
	if err != nil {
		return 0, err
	}
	switch x := v.(type) {
	case nil:
		return 0, fmt.Errorf("%w: %s", ErrNullValue, col)
	case int64:
		return x, nil
	case int32:
		return int64(x), nil
	case int16:
		return int64(x), nil
	case int:
		return int64(x), nil
	case float64:
		if x == math.Trunc(x) {
			return int64(x), nil
		}
	}
	return 0, typeErr(col, "int64", v)
}

// Float64 reads a non null floating point column
func (r Record) Float64(col string) (float64, error) {
	v, err := r.Value(col)
	if err != nil {
		return 0, err
	}
	switch x := v.(type) {
	case nil:
		return 0, fmt.Errorf("%w: %s", ErrNullValue, col)
	case float64:
		return x, nil
	case float32:
		return float64(x), nil
	case int64:
		return float64(x), nil
	case int32:
		return float64(x), nil
	}
	return 0, typeErr(col, "float64", v)
}

// Bool reads a non null boolean column, sqlite integers 0 and 1 included
func (r Record) Bool(col string) (bool, error) {
	v, err := r.Value(col)
	if err != nil {
		return false, err
	}
	switch x := v.(type) {
	case nil:
		return false, fmt.Errorf("%w: %s", ErrNullValue, col)
	case bool:
		return x, nil
	case int64:
		if x == 0 || x == 1 {
			return x == 1, nil
		}
	}
	return false, typeErr(col, "bool", v)
}

// Decimal reads a non null numeric column without going through float
// when the driver hands back text
func (r Record) Decimal(col string) (decimal.Decimal, error) {
	v, err := r.Value(col)
	if err != nil {
		return decimal.Zero, err
	}
	if dv, ok := v.(driver.Valuer); ok {
		if v, err = dv.Value(); err != nil {
			return decimal.Zero, typeErr(col, "decimal", v)
		}
	}
	switch x := v.(type) {
	case nil:
		return decimal.Zero, fmt.Errorf("%w: %s", ErrNullValue, col)
	case string:
		return parseDecimal(col, x)
	case []byte:
		return parseDecimal(col, string(x))
	case float64:
		return decimal.NewFromFloat(x), nil
	case int64:
		return decimal.NewFromInt(x), nil
	}
	return decimal.Zero, typeErr(col, "decimal", v)
}

func parseDecimal(col, s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %s: %v", ErrColumnType, col, err)
	}
	return d, nil
}

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999 -0700 MST",
	"2006-01-02",
}

// Time reads a non null timestamp column, text timestamps are parsed
func (r Record) Time(col string) (time.Time, error) {
	v, err := r.Value(col)
	if err != nil {
		return time.Time{}, err
	}
	switch x := v.(type) {
	case nil:
		return time.Time{}, fmt.Errorf("%w: %s", ErrNullValue, col)
	case time.Time:
		return x, nil
	case string:
		for _, l := range timeLayouts {
			if t, err := time.Parse(l, x); err == nil {
				return t, nil
			}
		}
	}
	return time.Time{}, typeErr(col, "time", v)
}

// Bytes reads a blob column, NULL reads as nil
func (r Record) Bytes(col string) ([]byte, error) {
	v, err := r.Value(col)
	if err != nil {
		return nil, err
	}
	switch x := v.(type) {
	case nil:
		return nil, nil
	case []byte:
		return x, nil
	case string:
		return []byte(x), nil
	}
	return nil, typeErr(col, "bytes", v)
}

func typeErr(col, want string, got any) error {
	return fmt.Errorf("%w: %s wants %s, got %T", ErrColumnType, col, want, got)
}

// Reader reads several columns from one Record and keeps the first error
// so mappers can read every field and check once
type Reader struct {
	rec Record
	err error
}

// Read starts a Reader over r
func Read(r Record) *Reader { return &Reader{rec: r} }

// Err returns the first error seen
func (x *Reader) Err() error { return x.err }

func keep[T any](x *Reader, v T, err error) T {
	if err != nil && x.err == nil {
		x.err = err
	}
	return v
}

// String reads a text column
func (x *Reader) String(col string) string {
	v, err := x.rec.String(col)
	return keep(x, v, err)
}

// Int64 reads an integer column
func (x *Reader) Int64(col string) int64 {
	v, err := x.rec.Int64(col)
	return keep(x, v, err)
}

// Float64 reads a floating point column
func (x *Reader) Float64(col string) float64 {
	v, err := x.rec.Float64(col)
	return keep(x, v, err)
}

// Bool reads a boolean column
func (x *Reader) Bool(col string) bool {
	v, err := x.rec.Bool(col)
	return keep(x, v, err)
}

// Decimal reads a numeric column
func (x *Reader) Decimal(col string) decimal.Decimal {
	v, err := x.rec.Decimal(col)
	return keep(x, v, err)
}

// Time reads a required timestamp column in UTC
func (x *Reader) Time(col string) time.Time {
	t, err := x.rec.Time(col)
	return keep(x, t.UTC(), err)
}

// Bytes reads a blob column
func (x *Reader) Bytes(col string) []byte {
	v, err := x.rec.Bytes(col)
	return keep(x, v, err)
}
