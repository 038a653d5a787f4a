// Package module mounts health, readiness, backend and version under /meta
package module

import (
	"time"

	"eshoppers/internal/core/version"
	modkit "eshoppers/internal/modkit"
	"eshoppers/internal/modkit/httpkit"
	metahttp "eshoppers/internal/services/meta/http"
)

// Module has no ports
type Module struct {
	modkit.Base
}

// New starts the uptime clock
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	md := metahttp.Deps{ServiceName: version.Service, StartedAt: time.Now(), DB: deps.DB}
	return &Module{Base: modkit.NewBase("meta", "/meta", func(r httpkit.Router) {
		metahttp.Register(r, md)
	}, nil, opts...)}
}
