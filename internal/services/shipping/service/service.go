// Package service contains shipping address workflows
package service

import (
	"context"

	"eshoppers/internal/modkit/repokit"
	perr "eshoppers/internal/platform/errors"
	str "eshoppers/internal/platform/strings"
	"eshoppers/internal/services/shipping/domain"
	"eshoppers/internal/services/shipping/repo"
)

// Service defines the service contract for shipping addresses
type Service interface{ domain.ServicePort }

// Svc implements the Service interface
type Svc struct {
	Repo   repo.Repo
	binder repokit.Binder[repo.Repo]
	db     repokit.TxRunner
}

// New creates a new shipping service
func New(db repokit.TxRunner, binder repokit.Binder[repo.Repo]) *Svc {
	if db == nil {
		panic("shipping.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("shipping.Service requires a non nil Repo binder")
	}
	return &Svc{Repo: binder.Bind(db), binder: binder, db: db}
}

// Create stores a new address and returns it with its id and version 0
func (s *Svc) Create(ctx context.Context, in domain.AddressInput) (domain.ShippingAddress, error) {
	in, err := clean(in)
	if err != nil {
		return domain.ShippingAddress{}, err
	}
	a := domain.ShippingAddress{}
	apply(&a, in)
	return repokit.InTx(ctx, s.db, func(q repokit.Queryer) (domain.ShippingAddress, error) {
		saved, err := s.binder.Bind(q).Save(ctx, &a)
		if err != nil {
			return domain.ShippingAddress{}, err
		}
		return *saved, nil
	})
}

// Get returns the address stored under id
func (s *Svc) Get(ctx context.Context, id int64) (domain.ShippingAddress, error) {
	a, ok, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return domain.ShippingAddress{}, err
	}
	if !ok {
		return domain.ShippingAddress{}, notFound(id)
	}
	return *a, nil
}

// Update replaces the editable fields of id when in.Version is still current
func (s *Svc) Update(ctx context.Context, id int64, in domain.AddressUpdate) (domain.ShippingAddress, error) {
	fields, err := clean(in.AddressInput)
	if err != nil {
		return domain.ShippingAddress{}, err
	}
	return repokit.InTx(ctx, s.db, func(q repokit.Queryer) (domain.ShippingAddress, error) {
		r := s.binder.Bind(q)
		cur, ok, err := r.FindByID(ctx, id)
		if err != nil {
			return domain.ShippingAddress{}, err
		}
		if !ok {
			return domain.ShippingAddress{}, notFound(id)
		}
		if cur.Version != in.Version {
			return domain.ShippingAddress{}, perr.WithField(
				perr.Conflictf("shipping address %d is at version %d, not %d", id, cur.Version, in.Version), "version")
		}
		apply(cur, fields)
		if err := r.Update(ctx, cur); err != nil {
			return domain.ShippingAddress{}, err
		}
		return *cur, nil
	})
}

// Delete removes the address stored under id
func (s *Svc) Delete(ctx context.Context, id int64) error {
	return repokit.BindTx(ctx, s.db, s.binder, func(r repo.Repo) error {
		_, ok, err := r.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if !ok {
			return notFound(id)
		}
		return r.Delete(ctx, id)
	})
}

func notFound(id int64) error { return perr.NotFoundf("shipping address %d not found", id) }

// clean trims and normalizes every field and rechecks the required ones
func clean(in domain.AddressInput) (domain.AddressInput, error) {
	out := domain.AddressInput{
		Address:      str.Clean(in.Address),
		Address2:     str.Clean(in.Address2),
		State:        str.Clean(in.State),
		Zip:          str.Clean(in.Zip),
		Country:      str.Clean(in.Country),
		MobileNumber: str.Clean(in.MobileNumber),
	}
	if out.Address == "" {
		return out, perr.Invalidf("address", "address is required")
	}
	if out.Country == "" {
		return out, perr.Invalidf("country", "country is required")
	}
	return out, nil
}

func apply(a *domain.ShippingAddress, in domain.AddressInput) {
	a.Address = in.Address
	a.Address2 = in.Address2
	a.State = in.State
	a.Zip = in.Zip
	a.Country = in.Country
	a.MobileNumber = in.MobileNumber
}
