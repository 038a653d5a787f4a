package domain

import "context"

// ServicePort defines the service contract for shipping addresses
type ServicePort interface {
	Create(ctx context.Context, in AddressInput) (ShippingAddress, error)
	Get(ctx context.Context, id int64) (ShippingAddress, error)
	Update(ctx context.Context, id int64, in AddressUpdate) (ShippingAddress, error)
	Delete(ctx context.Context, id int64) error
}
