// Package http provides http transport for the catalog
package http

import (
	stdhttp "net/http"

	"eshoppers/internal/modkit/httpkit"
	"eshoppers/internal/services/catalog/domain"
	svc "eshoppers/internal/services/catalog/service"
)

// Register mounts product endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}
	httpkit.CreateJSON[domain.ProductInput](r, "/", h.create)
	httpkit.Get(r, "/", h.list)
	httpkit.PostJSON[domain.ImportInput](r, "/import", h.importAll)
	httpkit.Get(r, "/{id}", h.get)
	httpkit.PutJSON[domain.ProductUpdate](r, "/{id}", h.update)
	httpkit.NoContentDelete(r, "/{id}", h.delete)
}

type handlers struct{ svc svc.Service }

// POST /products, create a product
func (h *handlers) create(r *stdhttp.Request, in domain.ProductInput) (any, error) {
	return h.svc.Create(r.Context(), in)
}

// GET /products, list every product ordered by id
func (h *handlers) list(r *stdhttp.Request) (any, error) {
	return h.svc.List(r.Context())
}

// POST /products/import, import products in one transaction, existing names are skipped
func (h *handlers) importAll(r *stdhttp.Request, in domain.ImportInput) (any, error) {
	return h.svc.Import(r.Context(), in.Products)
}

// GET /products/{id}, fetch a product
func (h *handlers) get(r *stdhttp.Request) (any, error) {
	id, err := httpkit.PathID(r, "id")
	if err != nil {
		return nil, err
	}
	return h.svc.Get(r.Context(), id)
}

// PUT /products/{id}, replace a product at a known version
func (h *handlers) update(r *stdhttp.Request, in domain.ProductUpdate) (any, error) {
	id, err := httpkit.PathID(r, "id")
	if err != nil {
		return nil, err
	}
	return h.svc.Update(r.Context(), id, in)
}

// DELETE /products/{id}, delete a product
func (h *handlers) delete(r *stdhttp.Request) error {
	id, err := httpkit.PathID(r, "id")
	if err != nil {
		return err
	}
	return h.svc.Delete(r.Context(), id)
}
