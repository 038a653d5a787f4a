// Package module mounts the product catalog under /products
package module

import (
	modkit "eshoppers/internal/modkit"
	"eshoppers/internal/modkit/httpkit"
	cataloghttp "eshoppers/internal/services/catalog/http"
	catalogrepo "eshoppers/internal/services/catalog/repo"
	catalogsvc "eshoppers/internal/services/catalog/service"
)

// Module is the catalog, its ports are a domain.ServicePort
type Module struct {
	modkit.Base
	svc catalogsvc.Service
}

// New builds the catalog on deps.DB
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	m := &Module{svc: catalogsvc.New(deps.DB, catalogrepo.NewSQL())}
	m.Base = modkit.NewBase("catalog", "/products", func(r httpkit.Router) {
		cataloghttp.Register(r, m.svc)
	}, adaptCatalogPort{svc: m.svc}, opts...)
	return m
}
