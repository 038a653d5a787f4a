// Package store provides a unified interface to the sql backends the shop can run on
package store

import (
	"context"
	"errors"
	"fmt"

	"eshoppers/internal/platform/logger"
	"eshoppers/internal/platform/store/dialect"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Store is the facade for the configured backends
// zero value is safe but does nothing
type Store struct {
	// Log is the logger used by subclients
	// zero means a no op zerolog logger
	Log logger.Logger

	// PG is the postgres sql seam, nil when disabled
	PG TxRunner

	// Lite is the embedded sqlite seam, nil when disabled
	Lite TxRunner

	poolMut func(*pgxpool.Config)
}

// Row exposes the minimal scan contract a single row needs
type Row interface {
	Scan(dest ...any) error
}

// Rows exposes the minimal iteration and scan for a result set
type Rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close()
	Columns() []string
}

// CommandTag is a tiny interface to inspect command results
type CommandTag interface {
	String() string
	RowsAffected() int64
}

// RowQuerier is the read and write surface repos use for sql
type RowQuerier interface {
	Exec(ctx context.Context, sql string, args ...any) (CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) Row
}

// TxRunner wraps transaction execution around a function
type TxRunner interface {
	RowQuerier
	Tx(ctx context.Context, fn func(q RowQuerier) error) error
}

// Pinger is any seam that can report readiness
type Pinger interface{ Ping(context.Context) error }

// Dialected is implemented by queriers that know their placeholder style
type Dialected interface {
	Dialect() dialect.Dialect
}

// DialectOf reports the placeholder dialect of q, postgres when q does not say
func DialectOf(q RowQuerier) dialect.Dialect {
	if d, ok := q.(Dialected); ok && d.Dialect() != nil {
		return d.Dialect()
	}
	return dialect.Postgres{}
}

// Option adjusts the Store before any backend opens
type Option func(*Store)

// WithLogger is where open retries and the sql trace go
func WithLogger(log logger.Logger) Option { return func(s *Store) { s.Log = log } }

// WithPoolConfig tunes the pgx pool after the config values are applied
func WithPoolConfig(fn func(*pgxpool.Config)) Option { return func(s *Store) { s.poolMut = fn } }

// Open constructs a Store with the requested backends
// backends not enabled in cfg remain nil on the Store
func Open(ctx context.Context, cfg Config, opts ...Option) (*Store, error) {
	s := &Store{}
	for _, o := range opts {
		o(s)
	}

	// defaults for zero logger to avoid nil checks
	s.Log = s.Log.With().Logger()

	if cfg.PG.Enabled {
		pgClient, err := openPG(ctx, cfg, s)
		if err != nil {
			return nil, err
		}
		s.PG = pgClient
	}

	if cfg.SQLite.Enabled {
		liteClient, err := openSQLite(ctx, cfg, s)
		if err != nil {
			_ = s.Close(ctx)
			return nil, err
		}
		s.Lite = liteClient
	}

	return s, nil
}

// Primary returns the backend repositories should use
// postgres wins when both are configured
func (s *Store) Primary() TxRunner {
	if s == nil {
		return nil
	}
	if s.PG != nil {
		return s.PG
	}
	return s.Lite
}

// Guard verifies all configured seams the Store knows about
func (s *Store) Guard(ctx context.Context) error {
	if s == nil {
		return errors.New("nil store")
	}
	var errs []error
	for _, b := range []struct {
		name string
		tx   TxRunner
	}{{"pg", s.PG}, {"sqlite", s.Lite}} {
		if b.tx == nil {
			continue
		}
		if p, ok := b.tx.(Pinger); ok {
			if err := p.Ping(ctx); err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", b.name, err))
			}
		}
	}
	return errors.Join(errs...)
}

// Close closes all initialized backends gracefully
// nil backends are ignored
func (s *Store) Close(ctx context.Context) error {
	if s == nil {
		return nil
	}
	var errs []error
	for _, tx := range []TxRunner{s.PG, s.Lite} {
		if c, ok := tx.(interface{ Close() error }); ok {
			if e := c.Close(); e != nil {
				errs = append(errs, e)
			}
		}
	}
	return errors.Join(errs...)
}
