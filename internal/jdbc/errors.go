package jdbc

import (
	"errors"
	"fmt"

	perr "eshoppers/internal/platform/errors"
)

var (
	// ErrUnsupportedParamType is returned when a value cannot be bound as a Param
	ErrUnsupportedParamType = errors.New("unsupported param type")

	// ErrNoRowsAffected is returned when an insert hands back no row
	ErrNoRowsAffected = errors.New("no rows affected")

	// ErrNoGeneratedKey is returned when an insert row carries no usable id
	ErrNoGeneratedKey = errors.New("no id obtained")

	// ErrPlaceholderCount is returned when params and placeholders disagree
	ErrPlaceholderCount = errors.New("placeholder count mismatch")
)

// ExecutionError is a failure raised by the database while running a statement
type ExecutionError struct {
	Op  string
	Err error
}

func (e *ExecutionError) Error() string { return e.Op + ": " + e.Err.Error() }

func (e *ExecutionError) Unwrap() error { return e.Err }

// LogicError is a statement that ran but produced a result the caller cannot use
// its message is the sentinel alone, the op is carried for inspection
type LogicError struct {
	Op  string
	Err error
}

func (e *LogicError) Error() string { return e.Err.Error() }

func (e *LogicError) Unwrap() error { return e.Err }

// ParamError reports a parameter that could not be bound
// Pos is 1 indexed like the placeholders it fills, 0 when the value was converted on its own
type ParamError struct {
	Pos  int
	Type string
	Err  error
}

func (e *ParamError) Error() string {
	if e.Pos == 0 {
		return fmt.Sprintf("param (%s): %v", e.Type, e.Err)
	}
	return fmt.Sprintf("param %d (%s): %v", e.Pos, e.Type, e.Err)
}

func (e *ParamError) Unwrap() error { return e.Err }

// IsExecutionError reports whether err came from the database
func IsExecutionError(err error) bool {
	var e *ExecutionError
	return errors.As(err, &e)
}

// IsLogicError reports whether err is a result the executor rejected
func IsLogicError(err error) bool {
	var e *LogicError
	return errors.As(err, &e)
}

func execErr(op string, err error) error {
	return perr.WithOp(perr.FromDBf(&ExecutionError{Op: op, Err: err}, "%s failed", op), op)
}

func logicErr(op string, sentinel error) error {
	return perr.WithOp(perr.Wrap(&LogicError{Op: op, Err: sentinel}, perr.ErrorCodeUnknown, op), op)
}

func paramErr(op string, err error) error {
	return perr.WithOp(perr.Wrapf(err, perr.ErrorCodeInvalidArgument, "%s: bad parameter", op), op)
}
