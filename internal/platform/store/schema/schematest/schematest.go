// Package schematest opens throwaway sqlite stores carrying the shop schema for tests
package schematest

import (
	"context"
	"testing"

	"eshoppers/internal/platform/store"
	"eshoppers/internal/platform/store/schema"
)

// Open returns a private in memory sqlite store with every table created
// the store is closed when the test ends
func Open(t testing.TB) store.TxRunner {
	t.Helper()
	ctx := context.Background()
	s, err := store.Open(ctx, store.Config{
		SQLite: store.SQLiteConfig{Enabled: true, Path: ":memory:"},
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = s.Close(ctx) })
	if err := schema.Apply(ctx, s.Lite); err != nil {
		t.Fatalf("apply schema: %v", err)
	}
	return s.Lite
}
