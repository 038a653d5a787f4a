// Package http provides http transport for shipping addresses
package http

import (
	stdhttp "net/http"

	"eshoppers/internal/modkit/httpkit"
	"eshoppers/internal/services/shipping/domain"
	svc "eshoppers/internal/services/shipping/service"
)

// Register mounts shipping address endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}
	httpkit.CreateJSON[domain.AddressInput](r, "/", h.create)
	httpkit.Get(r, "/{id}", h.get)
	httpkit.PutJSON[domain.AddressUpdate](r, "/{id}", h.update)
	httpkit.NoContentDelete(r, "/{id}", h.delete)
}

type handlers struct{ svc svc.Service }

// POST /shipping-addresses, create a shipping address
func (h *handlers) create(r *stdhttp.Request, in domain.AddressInput) (any, error) {
	return h.svc.Create(r.Context(), in)
}

// GET /shipping-addresses/{id}, fetch a shipping address
func (h *handlers) get(r *stdhttp.Request) (any, error) {
	id, err := httpkit.PathID(r, "id")
	if err != nil {
		return nil, err
	}
	return h.svc.Get(r.Context(), id)
}

// PUT /shipping-addresses/{id}, replace a shipping address at a known version
func (h *handlers) update(r *stdhttp.Request, in domain.AddressUpdate) (any, error) {
	id, err := httpkit.PathID(r, "id")
	if err != nil {
		return nil, err
	}
	return h.svc.Update(r.Context(), id, in)
}

// DELETE /shipping-addresses/{id}, delete a shipping address
func (h *handlers) delete(r *stdhttp.Request) error {
	id, err := httpkit.PathID(r, "id")
	if err != nil {
		return err
	}
	return h.svc.Delete(r.Context(), id)
}
