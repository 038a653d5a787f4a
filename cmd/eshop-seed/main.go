// Command eshop-seed loads a yaml product catalog into the shop database
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"eshoppers/internal/core/version"
	"eshoppers/internal/platform/config"
	"eshoppers/internal/platform/logger"
	"eshoppers/internal/platform/store"
	"eshoppers/internal/platform/store/schema"

	catalogrepo "eshoppers/internal/services/catalog/repo"
	"eshoppers/internal/services/catalog/seed"
	catalogsvc "eshoppers/internal/services/catalog/service"
)

func main() {
	file := flag.String("file", "", "path to the yaml catalog")
	apply := flag.Bool("schema", true, "apply the bootstrap ddl first")
	flag.Parse()

	l := logger.Get()
	if *file == "" {
		l.Error().Msg("-file is required")
		flag.Usage()
		os.Exit(2)
	}
	if err := run(context.Background(), *file, *apply); err != nil {
		l.Error().Err(err).Str("file", *file).Msg("seed failed")
		os.Exit(1)
	}
}

func run(ctx context.Context, file string, apply bool) error {
	l := logger.Get()
	root := config.New().Prefix("ESHOP_")
	st, err := store.Open(ctx, store.FromConfig(root, version.Service+"-seed"), store.WithLogger(*l))
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer func() {
		if err := st.Close(ctx); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()

	if apply {
		if err := schema.Apply(ctx, st.Primary()); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}

	items, err := seed.Load(file)
	if err != nil {
		return err
	}

	svc := catalogsvc.New(st.Primary(), catalogrepo.NewSQL())
	res, err := svc.Import(ctx, items)
	if err != nil {
		return fmt.Errorf("import: %w", err)
	}
	l.Info().
		Int("created", len(res.Created)).
		Int("skipped", len(res.Skipped)).
		Strs("skipped_names", res.Skipped).
		Msg("catalog seeded")
	return nil
}
