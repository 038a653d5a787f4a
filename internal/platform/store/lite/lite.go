// Package lite provides an embedded SQLite client over database/sql
// backed by the pure go modernc driver
package lite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"eshoppers/internal/platform/store/sqltrace"

	// registers the "sqlite" driver
	_ "modernc.org/sqlite"
)

// Config configures the sqlite client
type Config struct {
	// Path is a file path or ":memory:"
	Path string
	// MaxOpenConns caps the pool; in memory databases are pinned to one connection
	MaxOpenConns int
	// BusyTimeoutMs is applied as the busy_timeout pragma
	BusyTimeoutMs int
	SlowMs        int
}

// Lite is a sqlite client with an optional tracer
type Lite struct {
	DB     *sql.DB
	Tracer sqltrace.QueryTracer
	SlowMs int
}

var openDB = sql.Open

// Open opens the database and verifies it answers
func Open(ctx context.Context, cfg Config, tracer sqltrace.QueryTracer) (*Lite, error) {
	path := strings.TrimSpace(cfg.Path)
	if path == "" {
		return nil, fmt.Errorf("sqlite: empty path")
	}

	db, err := openDB("sqlite", DSN(path, cfg.BusyTimeoutMs))
	if err != nil {
		return nil, err
	}

	// every connection to :memory: is a distinct database
	switch {
	case path == ":memory:":
		db.SetMaxOpenConns(1)
	case cfg.MaxOpenConns > 0:
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite: ping: %w", err)
	}

	return &Lite{DB: db, Tracer: tracer, SlowMs: cfg.SlowMs}, nil
}

// DSN builds the modernc connection string with the pragmas we rely on
// timestamps are written in the sqlite text format so date functions work on them
func DSN(path string, busyTimeoutMs int) string {
	if busyTimeoutMs <= 0 {
		busyTimeoutMs = 5000
	}
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return fmt.Sprintf("%s%s_pragma=foreign_keys(1)&_pragma=busy_timeout(%d)&_time_format=sqlite", path, sep, busyTimeoutMs)
}

// Emitter returns the trace emitter for statements run on this client
func (l *Lite) Emitter() sqltrace.Emitter {
	if l == nil {
		return sqltrace.Emitter{}
	}
	return sqltrace.Emitter{Backend: "sqlite", Tracer: l.Tracer, SlowMs: l.SlowMs}
}

// Close closes the database
func (l *Lite) Close() error {
	if l == nil || l.DB == nil {
		return nil
	}
	return l.DB.Close()
}
