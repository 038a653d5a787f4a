package store

import (
	"time"

	"eshoppers/internal/platform/config"
)

// Config aggregates per backend configuration
type Config struct {
	AppName string

	PG     PGConfig
	SQLite SQLiteConfig
}

// PGConfig configures postgres connectivity and tracing
type PGConfig struct {
	Enabled     bool
	URL         string
	MaxConns    int32
	MaxConnIdle time.Duration
	LogSQL      bool
	SlowQueryMs int

	// boot knobs, zero means the defaults below
	ConnectRetries int           // default 20
	PingTimeout    time.Duration // default 3s
}

// SQLiteConfig configures the embedded sqlite backend
type SQLiteConfig struct {
	Enabled      bool
	Path         string
	MaxOpenConns int
	LogSQL       bool
	SlowQueryMs  int
}

// FromConfig reads backend settings, pg under PGSQL_ and sqlite under SQLITE_
// sqlite is enabled when pg has no DBURL, unless SQLITE_PATH is set explicitly
func FromConfig(cfg config.Conf, app string) Config {
	pgc := cfg.Prefix("PGSQL_")
	lc := cfg.Prefix("SQLITE_")

	url := pgc.MayString("DBURL", "")
	path := lc.MayString("PATH", "")
	c := Config{
		AppName: app,
		PG: PGConfig{
			Enabled:     url != "",
			URL:         url,
			MaxConns:    int32(pgc.MayInt("MAX_CONNS", 4)),
			MaxConnIdle: pgc.MayDuration("MAX_CONN_IDLE", 5*time.Minute),
			SlowQueryMs: pgc.MayInt("SLOW_MS", 500),
			LogSQL:      pgc.MayBool("LOG_SQL", false),
		},
		SQLite: SQLiteConfig{
			Enabled:      url == "" || path != "",
			Path:         path,
			MaxOpenConns: lc.MayInt("MAX_OPEN_CONNS", 1),
			SlowQueryMs:  lc.MayInt("SLOW_MS", 500),
			LogSQL:       lc.MayBool("LOG_SQL", false),
		},
	}
	if c.SQLite.Enabled && c.SQLite.Path == "" {
		c.SQLite.Path = "eshop.db"
	}
	return c
}
