// Package schema holds the bootstrap ddl for the shop tables
// statements are idempotent; versioned migrations live outside this repo
package schema

import (
	"context"
	_ "embed"
	"fmt"
	"strings"

	"eshoppers/internal/platform/store"
	"eshoppers/internal/platform/store/dialect"
)

var (
	//go:embed postgres.sql
	postgresDDL string

	//go:embed sqlite.sql
	sqliteDDL string
)

// Tables lists the tables the ddl creates
var Tables = []string{"shipping_address", "product"}

// DDL returns the ddl text for d
func DDL(d dialect.Dialect) (string, error) {
	switch d.(type) {
	case dialect.Postgres:
		return postgresDDL, nil
	case dialect.SQLite:
		return sqliteDDL, nil
	}
	return "", fmt.Errorf("schema: no ddl for dialect %v", d)
}

// Apply runs the ddl for q's dialect statement by statement inside one tx
func Apply(ctx context.Context, tx store.TxRunner) error {
	ddl, err := DDL(store.DialectOf(tx))
	if err != nil {
		return err
	}
	return tx.Tx(ctx, func(q store.RowQuerier) error {
		for _, stmt := range Statements(ddl) {
			if _, err := q.Exec(ctx, stmt); err != nil {
				return fmt.Errorf("schema: %w", err)
			}
		}
		return nil
	})
}

// Statements splits ddl on semicolons, dropping blanks
func Statements(ddl string) []string {
	var out []string
	for _, s := range strings.Split(ddl, ";") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
