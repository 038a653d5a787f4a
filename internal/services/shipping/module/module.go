// Package module mounts shipping addresses under /shipping-addresses
package module

import (
	modkit "eshoppers/internal/modkit"
	"eshoppers/internal/modkit/httpkit"
	shippinghttp "eshoppers/internal/services/shipping/http"
	shippingrepo "eshoppers/internal/services/shipping/repo"
	shippingsvc "eshoppers/internal/services/shipping/service"
)

// Module owns the shipping address book
type Module struct {
	modkit.Base
	svc shippingsvc.Service
}

// New builds the address book on deps.DB
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	svc := shippingsvc.New(deps.DB, shippingrepo.NewSQL())
	m := &Module{svc: svc}
	m.Base = modkit.NewBase("shipping", "/shipping-addresses", func(r httpkit.Router) {
		shippinghttp.Register(r, svc)
	}, adaptShippingPort{svc: svc}, opts...)
	return m
}
