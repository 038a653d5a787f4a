// Command eshop-api serves the shop API: shipping addresses, the product catalog and login
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"eshoppers/internal/core/version"
	"eshoppers/internal/platform/config"
	"eshoppers/internal/platform/logger"
	phttp "eshoppers/internal/platform/net/http"
	"eshoppers/internal/platform/store"
	"eshoppers/internal/platform/store/schema"

	"eshoppers/internal/services/api"
)

func main() {
	// service-scoped config for HTTP etc (ESHOP_API_*)
	root := config.New().Prefix("ESHOP_")
	apiCfg := root.Prefix("API_")

	// bring up logging early
	l := logger.Get()

	// backends live under ESHOP_PGSQL_* and ESHOP_SQLITE_*
	st, err := store.Open(
		context.Background(),
		store.FromConfig(root, version.Service),
		store.WithLogger(*logger.Get()),
	)
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()

	gctx, cancel := context.WithTimeout(context.Background(), apiCfg.MayDuration("GUARD_TIMEOUT", 5*time.Second))
	err = st.Guard(gctx)
	cancel()
	if err != nil {
		l.Panic().Err(err).Msg("backend not reachable")
	}

	if apiCfg.MayBool("APPLY_SCHEMA", true) {
		if err := schema.Apply(context.Background(), st.Primary()); err != nil {
			l.Panic().Err(err).Msg("schema apply failed")
		}
	}

	// http server (reads ESHOP_API_PORT and the *_TIMEOUT keys)
	srv := phttp.NewServer(apiCfg)

	// mount our API
	api.Mount(
		srv.Router(),
		api.Options{
			Config:         apiCfg,
			Store:          st,
			Logger:         l,
			EnableSwagger:  apiCfg.MayBool("SWAGGER", true),
			EnableProfiler: apiCfg.MayBool("PROFILER", false),
		},
	)

	// run until SIGINT or SIGTERM, then drain
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := srv.Run(ctx); err != nil {
		l.Panic().Err(err).Msg("http server stopped")
	}
}
