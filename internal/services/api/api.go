// Package api provides the HTTP API for the shop
package api

import (
	"net/http"
	"time"

	"eshoppers/internal/platform/config"
	"eshoppers/internal/platform/logger"
	phttp "eshoppers/internal/platform/net/http"
	"eshoppers/internal/platform/net/middleware"
	"eshoppers/internal/platform/store"

	"eshoppers/internal/modkit"
	"eshoppers/internal/modkit/httpkit"
	"eshoppers/internal/modkit/module"
	"eshoppers/internal/modkit/swaggerkit"

	authmod "eshoppers/internal/services/auth/module"
	catalogmod "eshoppers/internal/services/catalog/module"
	metamod "eshoppers/internal/services/meta/module"
	shippingmod "eshoppers/internal/services/shipping/module"
)

// Options are the API options
type Options struct {
	Config         config.Conf
	Store          *store.Store
	Logger         *logger.Logger
	EnableSwagger  bool
	EnableProfiler bool
}

// LoginHint is served on the gate's redirect target
type LoginHint struct {
	Message string `json:"message"`
	Login   string `json:"login"`
}

// gateAllow are the extra public paths on top of the gate's markers
var gateAllow = []string{"/meta/", "/api/docs", "/debug/"}

// Mount mounts the API service onto the given router
// it installs the login gate on r, so call it before anything else registers routes
func Mount(r phttp.Router, opt Options) {
	// shared deps for modules
	deps := modkit.Deps{
		Cfg: opt.Config,
		DB:  opt.Store.Primary(),
	}
	if opt.Logger != nil {
		deps.Log = *opt.Logger
	}

	// auth owns the session table the gate consults
	auth := authmod.New(deps)
	sessions := module.MustPortsOf[authmod.Ports](auth).Sessions

	r.Use(middleware.LoginGate(sessions, middleware.LoginGateOptions{
		LoginPath: middleware.DefaultLoginPath,
		Allow:     gateAllow,
	}))
	httpkit.Get(r, middleware.DefaultLoginPath, func(_ *http.Request) (any, error) {
		return LoginHint{Message: "login required", Login: "/api/v1/auth/login"}, nil
	})

	mods := []module.Module{
		metamod.New(deps),
		auth,
		shippingmod.New(deps),
		catalogmod.New(deps),
	}

	// versioned API with a common middleware stack
	stack := httpkit.CommonStack(httpkit.StackOptions{
		Origins: opt.Config.MayCSV("CORS_ORIGINS", nil),
		Slow:    opt.Config.MayDuration("SLOW_REQUEST", 500*time.Millisecond),
		Timeout: opt.Config.MayDuration("REQUEST_TIMEOUT", 30*time.Second),
	})
	httpkit.MountAPIV1(r, stack, func(api httpkit.Router) {
		for _, m := range mods {
			// register each module's ports under its own name (for cross-module lookups)
			module.Register(m.Name(), m.Ports())

			// mount module routes under its Prefix()
			m.MountRoutes(api)
		}
	})

	swaggerkit.Mount(r, opt.EnableSwagger)
	phttp.MountProfiler(r, "/debug", opt.EnableProfiler)
}
