// Package pg is the postgres client, a pgx pool plus the sql trace settings
package pg

import (
	"context"
	"fmt"
	"time"

	"eshoppers/internal/platform/store/sqltrace"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Config is what the store reads from ESHOP_PGSQL_*
type Config struct {
	URL         string
	MaxConns    int32
	MaxConnIdle time.Duration
	SlowMs      int
	AppName     string
}

// PG owns the pool
type PG struct {
	Pool   *pgxpool.Pool
	Tracer sqltrace.QueryTracer
	SlowMs int
}

var newPool = pgxpool.NewWithConfig

// PoolConfig parses cfg.URL and applies the pool limits and application_name on top
func PoolConfig(cfg Config) (*pgxpool.Config, error) {
	pc, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("pg: parse url: %w", err)
	}
	if cfg.MaxConns > 0 {
		pc.MaxConns = cfg.MaxConns
	}
	if cfg.MaxConnIdle > 0 {
		pc.MaxConnIdleTime = cfg.MaxConnIdle
	}
	if cfg.AppName != "" {
		pc.ConnConfig.RuntimeParams["application_name"] = cfg.AppName
	}
	return pc, nil
}

// Open builds the pool, mut sees the pool config last
// the pool connects lazily so Open does not reach the server
func Open(ctx context.Context, cfg Config, tracer sqltrace.QueryTracer, mut func(*pgxpool.Config)) (*PG, error) {
	pc, err := PoolConfig(cfg)
	if err != nil {
		return nil, err
	}
	if mut != nil {
		mut(pc)
	}
	pool, err := newPool(ctx, pc)
	if err != nil {
		return nil, fmt.Errorf("pg: pool: %w", err)
	}
	return &PG{Pool: pool, Tracer: tracer, SlowMs: cfg.SlowMs}, nil
}

// Emitter traces statements run through this client
func (p *PG) Emitter() sqltrace.Emitter {
	if p == nil {
		return sqltrace.Emitter{}
	}
	return sqltrace.Emitter{Backend: "pg", Tracer: p.Tracer, SlowMs: p.SlowMs}
}

// Close closes the pool, it is safe on a nil client
func (p *PG) Close() {
	if p != nil && p.Pool != nil {
		p.Pool.Close()
	}
}
