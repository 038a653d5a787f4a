package module

import (
	"context"

	catalogdom "eshoppers/internal/services/catalog/domain"
	catalogsvc "eshoppers/internal/services/catalog/service"
)

// adaptCatalogPort adapts the catalog service to the domain port interface
type adaptCatalogPort struct{ svc catalogsvc.Service }

func (a adaptCatalogPort) Create(ctx context.Context, in catalogdom.ProductInput) (catalogdom.Product, error) {
	return a.svc.Create(ctx, in)
}

func (a adaptCatalogPort) Get(ctx context.Context, id int64) (catalogdom.Product, error) {
	return a.svc.Get(ctx, id)
}

func (a adaptCatalogPort) List(ctx context.Context) ([]catalogdom.Product, error) {
	return a.svc.List(ctx)
}

func (a adaptCatalogPort) Update(ctx context.Context, id int64, in catalogdom.ProductUpdate) (catalogdom.Product, error) {
	return a.svc.Update(ctx, id, in)
}

func (a adaptCatalogPort) Delete(ctx context.Context, id int64) error {
	return a.svc.Delete(ctx, id)
}

func (a adaptCatalogPort) Import(ctx context.Context, items []catalogdom.ProductInput) (catalogdom.ImportResult, error) {
	return a.svc.Import(ctx, items)
}
