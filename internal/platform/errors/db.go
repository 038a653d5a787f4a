package errors

import (
	"context"
	stderrs "errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// fault is a driver error reduced to what callers act on
type fault struct {
	code  ErrorCode
	field string
	retry bool
}

// sqlstate classes from postgres
var pgFaults = map[string]fault{
	"23505": {code: ErrorCodeDuplicateKey},
	"23503": {code: ErrorCodeInvalidArgument},
	"23502": {code: ErrorCodeValidation},
	"23514": {code: ErrorCodeValidation},
	"22001": {code: ErrorCodeInvalidArgument},
	"22P02": {code: ErrorCodeInvalidArgument},
	"40001": {code: ErrorCodeDB, retry: true},
	"40P01": {code: ErrorCodeDB, retry: true},
	"55P03": {code: ErrorCodeDB, retry: true},
	"25006": {code: ErrorCodeUnavailable},
	"57P03": {code: ErrorCodeUnavailable},
}

func pgFault(err error) (fault, bool) {
	var pe *pgconn.PgError
	if !stderrs.As(err, &pe) {
		return fault{}, false
	}
	f, ok := pgFaults[pe.Code]
	if !ok {
		f = fault{code: ErrorCodeDB}
	}
	switch {
	case pe.ColumnName != "":
		f.field = pe.ColumnName
	case pe.ConstraintName != "":
		// product_name_key -> name
		c := strings.TrimSuffix(strings.TrimSuffix(pe.ConstraintName, "_key"), "_check")
		if pe.TableName != "" {
			c = strings.TrimPrefix(c, pe.TableName+"_")
		}
		f.field = c
	}
	return f, true
}

func sqliteFault(err error) (fault, bool) {
	var se *sqlite.Error
	if !stderrs.As(err, &se) {
		return fault{}, false
	}
	f := fault{code: ErrorCodeDB}
	switch se.Code() {
	case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
		f.code = ErrorCodeDuplicateKey
	case sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY:
		f.code = ErrorCodeInvalidArgument
	case sqlite3.SQLITE_CONSTRAINT_NOTNULL, sqlite3.SQLITE_CONSTRAINT_CHECK:
		f.code = ErrorCodeValidation
	default:
		switch se.Code() & 0xff {
		case sqlite3.SQLITE_BUSY, sqlite3.SQLITE_LOCKED:
			f.code, f.retry = ErrorCodeUnavailable, true
		case sqlite3.SQLITE_CONSTRAINT:
			f.code = ErrorCodeValidation
		}
	}
	f.field = sqliteColumn(se.Error())
	return f, true
}

// sqliteColumn pulls the column out of "NOT NULL constraint failed: product.name"
func sqliteColumn(msg string) string {
	i := strings.LastIndex(msg, "constraint failed: ")
	if i < 0 {
		return ""
	}
	rest := msg[i+len("constraint failed: "):]
	if j := strings.IndexAny(rest, " ,("); j >= 0 {
		rest = rest[:j]
	}
	if j := strings.LastIndexByte(rest, '.'); j >= 0 {
		return rest[j+1:]
	}
	return ""
}

func classify(err error) (fault, bool) {
	if f, ok := sqliteFault(err); ok {
		return f, true
	}
	return pgFault(err)
}

// DBCode maps a postgres or sqlite driver error to an ErrorCode
// ok is false when err did not come from either driver
func DBCode(err error) (ErrorCode, bool) {
	f, ok := classify(err)
	return f.code, ok
}

// FromDB wraps a driver error with its mapped code and the column it names
// nil stays nil, errors from neither driver become ErrorCodeDB
func FromDB(err error, msg string) error {
	if err == nil {
		return nil
	}
	f, ok := classify(err)
	if !ok {
		return Wrap(err, ErrorCodeDB, msg)
	}
	return &Error{code: f.code, msg: msg, field: f.field, orig: err}
}

// FromDBf is FromDB with a format
func FromDBf(err error, format string, a ...any) error {
	if err == nil {
		return nil
	}
	return FromDB(err, fmt.Sprintf(format, a...))
}

// IsDuplicateKey reports a unique violation from either backend
func IsDuplicateKey(err error) bool {
	f, ok := classify(err)
	return ok && f.code == ErrorCodeDuplicateKey
}

// IsRetryable reports contention worth another attempt
// postgres serialization and lock failures, sqlite busy and locked
// cancelled or expired contexts never are
func IsRetryable(err error) bool {
	if err == nil || stderrs.Is(err, context.Canceled) || stderrs.Is(err, context.DeadlineExceeded) {
		return false
	}
	if f, ok := classify(err); ok {
		return f.retry
	}
	s := strings.ToLower(Root(err).Error())
	return strings.Contains(s, "commit unexpectedly resulted in rollback") ||
		strings.Contains(s, "deadlock detected") ||
		strings.Contains(s, "could not serialize access")
}
