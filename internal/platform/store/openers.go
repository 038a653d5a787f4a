package store

import (
	"context"
	"fmt"
	"time"

	"eshoppers/internal/platform/store/lite"
	"eshoppers/internal/platform/store/pg"
	"eshoppers/internal/platform/store/sqltrace"
)

var (
	pgOpen   = pg.Open
	liteOpen = lite.Open
	sleep    = time.Sleep
)

// openPG opens pg and wraps it with our sql adapter
func openPG(ctx context.Context, cfg Config, s *Store) (TxRunner, error) {
	var tracer sqltrace.QueryTracer
	if cfg.PG.LogSQL {
		tracer = sqltrace.Tracer(s.Log, "pg")
	}

	p, err := pgOpen(ctx, pg.Config{
		URL:         cfg.PG.URL,
		MaxConns:    cfg.PG.MaxConns,
		MaxConnIdle: cfg.PG.MaxConnIdle,
		SlowMs:      cfg.PG.SlowQueryMs,
		AppName:     cfg.AppName,
	}, tracer, s.poolMut)
	if err != nil {
		return nil, err
	}

	// ping with retry/backoff against the pool directly so boot does not spam the sql trace
	const (
		backoffStart   = 150 * time.Millisecond
		backoffCeiling = 2 * time.Second
	)
	maxAttempts := cfg.PG.ConnectRetries
	if maxAttempts <= 0 {
		maxAttempts = 20
	}
	pingTimeout := cfg.PG.PingTimeout
	if pingTimeout <= 0 {
		pingTimeout = 3 * time.Second
	}

	var lastErr error
	backoff := backoffStart
	for i := 0; i < maxAttempts; i++ {
		toCtx, cancel := context.WithTimeout(ctx, pingTimeout)
		lastErr = p.Pool.Ping(toCtx)
		cancel()

		if lastErr == nil {
			return newPGAdapter(p), nil
		}
		if ctx.Err() != nil {
			p.Close()
			return nil, ctx.Err()
		}
		s.Log.Debug().Int("attempt", i+1).Err(lastErr).Msg("postgres not ready")
		sleep(backoff)
		if backoff < backoffCeiling {
			backoff = min(backoff*2, backoffCeiling)
		}
	}

	p.Close()
	return nil, fmt.Errorf("postgres ping failed after %d attempts: %w", maxAttempts, lastErr)
}

// openSQLite opens the embedded database and wraps it with our sql adapter
func openSQLite(ctx context.Context, cfg Config, s *Store) (TxRunner, error) {
	var tracer sqltrace.QueryTracer
	if cfg.SQLite.LogSQL {
		tracer = sqltrace.Tracer(s.Log, "sqlite")
	}

	l, err := liteOpen(ctx, lite.Config{
		Path:         cfg.SQLite.Path,
		MaxOpenConns: cfg.SQLite.MaxOpenConns,
		SlowMs:       cfg.SQLite.SlowQueryMs,
	}, tracer)
	if err != nil {
		return nil, fmt.Errorf("sqlite open: %w", err)
	}
	return newLiteAdapter(l), nil
}
