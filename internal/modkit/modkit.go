// Package modkit is how the shop's API modules are assembled and mounted
package modkit

import (
	"net/http"

	"eshoppers/internal/modkit/httpkit"
	"eshoppers/internal/modkit/module"
	"eshoppers/internal/modkit/repokit"
	"eshoppers/internal/platform/config"
	"eshoppers/internal/platform/logger"
	str "eshoppers/internal/platform/strings"
)

// Module is what api.Mount wires, see module.Module
type Module = module.Module

// Deps is everything a module may be built from
type Deps struct {
	Log logger.Logger
	Cfg config.Conf
	// DB is the primary backend, postgres or sqlite
	DB repokit.TxRunner
}

// Named is Log tagged with the module name
func (d Deps) Named(module string) *logger.Logger {
	l := d.Log.With().Str("module", module).Logger()
	return &l
}

// Option overrides a Base default
type Option func(*Base)

// WithName renames the module in logs and in the port registry
func WithName(name string) Option { return func(b *Base) { b.name = name } }

// WithPrefix mounts the module somewhere else
func WithPrefix(prefix string) Option { return func(b *Base) { b.prefix = prefix } }

// WithMiddlewares runs mw in order in front of every route of the module
func WithMiddlewares(mw ...func(http.Handler) http.Handler) Option {
	return func(b *Base) { b.mws = append(b.mws, mw...) }
}

// WithRoutes registers extra routes after the module's own
func WithRoutes(fn func(httpkit.Router)) Option {
	return func(b *Base) { b.extra = append(b.extra, fn) }
}

// Base implements Module for anything that embeds it
type Base struct {
	name   string
	prefix string
	mws    []func(http.Handler) http.Handler
	routes func(httpkit.Router)
	extra  []func(httpkit.Router)
	ports  any
}

// NewBase names a module, says where it mounts, what it registers and which ports it exposes
// opts apply last so callers can override name and prefix
func NewBase(name, prefix string, routes func(httpkit.Router), ports any, opts ...Option) Base {
	b := Base{name: name, prefix: prefix, routes: routes, ports: ports}
	for _, o := range opts {
		o(&b)
	}
	return b
}

// Name is the module name, it panics when blank
func (b *Base) Name() string { return str.MustString(b.name, "module name") }

// Prefix is the normalized mount point, it panics when blank or "/"
func (b *Base) Prefix() string { return str.MustPrefix(b.prefix) }

// Ports is the port set other modules may look up
func (b *Base) Ports() any { return b.ports }

// Middlewares are the module scoped middlewares
func (b *Base) Middlewares() []func(http.Handler) http.Handler { return b.mws }

// MountRoutes registers the module under its prefix behind its middlewares
func (b *Base) MountRoutes(r httpkit.Router) {
	r.Route(b.Prefix(), func(rr httpkit.Router) {
		if len(b.mws) > 0 {
			rr.Use(b.mws...)
		}
		if b.routes != nil {
			b.routes(rr)
		}
		for _, fn := range b.extra {
			fn(rr)
		}
	})
}
