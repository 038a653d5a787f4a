// Package dialect describes the placeholder conventions of the sql backends
// repositories write portable sql with ? placeholders and the executor rebinds them
package dialect

import (
	"strconv"
	"strings"
)

// Dialect is the small surface the executor needs from a backend
type Dialect interface {
	// Name is a stable identifier, used as a cache key component
	Name() string
	// Placeholder renders the n-th (1-indexed) bind marker
	Placeholder(n int) string
}

// Postgres renders $1, $2, ...
type Postgres struct{}

// Name implements Dialect
func (Postgres) Name() string { return "postgres" }

// Placeholder implements Dialect
func (Postgres) Placeholder(n int) string { return "$" + strconv.Itoa(n) }

// SQLite keeps positional ? markers
type SQLite struct{}

// Name implements Dialect
func (SQLite) Name() string { return "sqlite" }

// Placeholder implements Dialect
func (SQLite) Placeholder(int) string { return "?" }

// Rebind rewrites every ? bind marker in query into the dialect's placeholder
// markers inside quoted literals, quoted identifiers and comments are left alone
func Rebind(d Dialect, query string) string {
	if d == nil || d.Placeholder(1) == "?" || !strings.Contains(query, "?") {
		return query
	}

	var b strings.Builder
	b.Grow(len(query) + 8)

	n := 0
	for i := 0; i < len(query); i++ {
		c := query[i]
		switch {
		case c == '\'' || c == '"':
			j := skipQuoted(query, i, c)
			b.WriteString(query[i:j])
			i = j - 1
		case c == '-' && i+1 < len(query) && query[i+1] == '-':
			j := strings.IndexByte(query[i:], '\n')
			if j < 0 {
				b.WriteString(query[i:])
				return b.String()
			}
			b.WriteString(query[i : i+j])
			i += j - 1
		case c == '/' && i+1 < len(query) && query[i+1] == '*':
			j := strings.Index(query[i+2:], "*/")
			if j < 0 {
				b.WriteString(query[i:])
				return b.String()
			}
			end := i + 2 + j + 2
			b.WriteString(query[i:end])
			i = end - 1
		case c == '?':
			n++
			b.WriteString(d.Placeholder(n))
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

// skipQuoted returns the index just past the quoted run starting at start
// a doubled quote char is an escaped quote
func skipQuoted(s string, start int, q byte) int {
	for i := start + 1; i < len(s); i++ {
		if s[i] != q {
			continue
		}
		if i+1 < len(s) && s[i+1] == q {
			i++
			continue
		}
		return i + 1
	}
	return len(s)
}

// Count returns how many ? bind markers query carries outside literals
func Count(query string) int {
	rebound := Rebind(counter{}, query)
	return strings.Count(rebound, "\x00")
}

// counter marks each placeholder with a NUL byte so Count can tally them
type counter struct{}

func (counter) Name() string { return "count" }

func (counter) Placeholder(int) string { return "\x00" }
