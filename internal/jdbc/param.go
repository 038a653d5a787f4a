package jdbc

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Param is one positional statement parameter
// the set of implementations is closed, see the types below
type Param interface {
	param()
}

type (
	// Text binds a string
	Text string
	// Int binds a 32 bit integer
	Int int32
	// Long binds a 64 bit integer
	Long int64
	// Float binds a 32 bit float
	Float float32
	// Double binds a 64 bit float
	Double float64
	// Bool binds a boolean
	Bool bool
	// Blob binds raw bytes, a nil Blob binds NULL
	Blob []byte
	// Decimal binds an exact decimal
	Decimal struct{ V decimal.Decimal }
	// Timestamp binds an instant
	Timestamp time.Time
	// Date binds a calendar date as midnight UTC
	Date time.Time
	// Null binds sql NULL
	Null struct{}
)

func (Text) param()      {}
func (Int) param()       {}
func (Long) param()      {}
func (Float) param()     {}
func (Double) param()    {}
func (Bool) param()      {}
func (Blob) param()      {}
func (Decimal) param()   {}
func (Timestamp) param() {}
func (Date) param()      {}
func (Null) param()      {}

// Dec wraps d as a Decimal param
func Dec(d decimal.Decimal) Decimal { return Decimal{V: d} }

// TS wraps t as a Timestamp param
func TS(t time.Time) Timestamp { return Timestamp(t) }

// NullableText binds s, or NULL when s is empty
func NullableText(s string) Param {
	if s == "" {
		return Null{}
	}
	return Text(s)
}

// ParamOf converts a plain go value into a Param
// unknown types yield ErrUnsupportedParamType
func ParamOf(v any) (Param, error) {
	switch x := v.(type) {
	case nil:
		return Null{}, nil
	case Param:
		return x, nil
	case string:
		return Text(x), nil
	case int32:
		return Int(x), nil
	case int:
		return Long(int64(x)), nil
	case int64:
		return Long(x), nil
	case float32:
		return Float(x), nil
	case float64:
		return Double(x), nil
	case bool:
		return Bool(x), nil
	case []byte:
		return Blob(x), nil
	case decimal.Decimal:
		return Dec(x), nil
	case time.Time:
		return Timestamp(x), nil
	default:
		return nil, &ParamError{Type: fmt.Sprintf("%T", v), Err: ErrUnsupportedParamType}
	}
}

// Params converts every value with ParamOf, failing on the first unsupported one
func Params(vs ...any) ([]Param, error) {
	out := make([]Param, 0, len(vs))
	for i, v := range vs {
		p, err := ParamOf(v)
		if err != nil {
			if pe, ok := err.(*ParamError); ok {
				pe.Pos = i + 1
			}
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

// bindParams turns params into driver arguments in input order
func bindParams(params []Param) ([]any, error) {
	args := make([]any, len(params))
	for i, p := range params {
		switch v := p.(type) {
		case Text:
			args[i] = string(v)
		case Int:
			args[i] = int32(v)
		case Long:
			args[i] = int64(v)
		case Float:
			args[i] = float32(v)
		case Double:
			args[i] = float64(v)
		case Bool:
			args[i] = bool(v)
		case Blob:
			if v == nil {
				args[i] = nil
			} else {
				args[i] = []byte(v)
			}
		case Decimal:
			args[i] = v.V.String()
		case Timestamp:
			args[i] = time.Time(v).UTC()
		case Date:
			y, m, d := time.Time(v).Date()
			args[i] = time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
		case Null:
			args[i] = nil
		default:
			return nil, &ParamError{Pos: i + 1, Type: fmt.Sprintf("%T", p), Err: ErrUnsupportedParamType}
		}
	}
	return args, nil
}
