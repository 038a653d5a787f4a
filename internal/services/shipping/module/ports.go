package module

import (
	"context"

	shippingdom "eshoppers/internal/services/shipping/domain"
	shippingsvc "eshoppers/internal/services/shipping/service"
)

// adaptShippingPort adapts the shipping service to the domain port interface
type adaptShippingPort struct{ svc shippingsvc.Service }

// Create implements the domain ServicePort interface
func (a adaptShippingPort) Create(ctx context.Context, in shippingdom.AddressInput) (shippingdom.ShippingAddress, error) {
	return a.svc.Create(ctx, in)
}

// Get implements the domain ServicePort interface
func (a adaptShippingPort) Get(ctx context.Context, id int64) (shippingdom.ShippingAddress, error) {
	return a.svc.Get(ctx, id)
}

// Update implements the domain ServicePort interface
func (a adaptShippingPort) Update(ctx context.Context, id int64, in shippingdom.AddressUpdate) (shippingdom.ShippingAddress, error) {
	return a.svc.Update(ctx, id, in)
}

// Delete implements the domain ServicePort interface
func (a adaptShippingPort) Delete(ctx context.Context, id int64) error {
	return a.svc.Delete(ctx, id)
}
