package domain

import "context"

// ServicePort defines the service contract for the catalog
type ServicePort interface {
	Create(ctx context.Context, in ProductInput) (Product, error)
	Get(ctx context.Context, id int64) (Product, error)
	List(ctx context.Context) ([]Product, error)
	Update(ctx context.Context, id int64, in ProductUpdate) (Product, error)
	Delete(ctx context.Context, id int64) error
	Import(ctx context.Context, items []ProductInput) (ImportResult, error)
}
