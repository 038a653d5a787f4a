// Package repo provides sql access for shipping addresses
package repo

import (
	"context"

	"eshoppers/internal/jdbc"
	"eshoppers/internal/modkit/repokit"
	perr "eshoppers/internal/platform/errors"
	tm "eshoppers/internal/platform/time"
	"eshoppers/internal/services/shipping/domain"
)

// Repo defines the repository contract for shipping addresses
type Repo interface {
	Save(ctx context.Context, a *domain.ShippingAddress) (*domain.ShippingAddress, error)
	FindByID(ctx context.Context, id int64) (*domain.ShippingAddress, bool, error)
	Update(ctx context.Context, a *domain.ShippingAddress) error
	Delete(ctx context.Context, id int64) error
}

const (
	insertSQL = `
INSERT INTO shipping_address
(address, address2, state, zip, country, version, mobile_number, date_created, date_last_updated)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
RETURNING id`

	selectByIDSQL = `
SELECT id, address, address2, state, zip, country, version, mobile_number, date_created, date_last_updated
FROM shipping_address
WHERE id = ?`

	updateSQL = `
UPDATE shipping_address
SET address = ?, address2 = ?, state = ?, zip = ?, country = ?, mobile_number = ?,
version = version + 1, date_last_updated = ?
WHERE id = ? AND version = ?`

	deleteSQL = `DELETE FROM shipping_address WHERE id = ?`
)

type (
	// SQL implements the Repo interface on any store backend
	SQL struct{}

	// queries holds the database query methods
	queries struct{ ex *jdbc.Executor }
)

// NewSQL creates a new shipping address repository binder
func NewSQL() repokit.Binder[Repo] { return SQL{} }

// Bind binds a queryer to the Repo implementation
func (SQL) Bind(q repokit.Queryer) Repo { return &queries{ex: jdbc.New(q)} }

// Save inserts a as a new row at version 0 and writes the generated id back onto a
func (r *queries) Save(ctx context.Context, a *domain.ShippingAddress) (*domain.ShippingAddress, error) {
	a.Version = 0
	a.DateCreated = tm.OrNow(a.DateCreated)
	a.DateLastUpdated = tm.OrNow(a.DateLastUpdated)

	id, err := r.ex.ExecuteInsert(ctx, insertSQL,
		jdbc.Text(a.Address),
		jdbc.NullableText(a.Address2),
		jdbc.NullableText(a.State),
		jdbc.NullableText(a.Zip),
		jdbc.Text(a.Country),
		jdbc.Long(a.Version),
		jdbc.NullableText(a.MobileNumber),
		jdbc.TS(a.DateCreated),
		jdbc.TS(a.DateLastUpdated),
	)
	if err != nil {
		return nil, err
	}
	a.ID = id
	return a, nil
}

// FindByID returns the address stored under id, ok is false when there is none
func (r *queries) FindByID(ctx context.Context, id int64) (*domain.ShippingAddress, bool, error) {
	found, err := jdbc.QueryForEntities(ctx, r.ex, selectByIDSQL, jdbc.Long(id), mapAddress)
	if err != nil {
		return nil, false, err
	}
	if len(found) == 0 {
		return nil, false, nil
	}
	return &found[0], true, nil
}

// Update writes a back when its version still matches the stored one
// on success a carries the new version and last updated stamp
func (r *queries) Update(ctx context.Context, a *domain.ShippingAddress) error {
	stamp := tm.Max(tm.NowStamp(), tm.Stamp(a.DateLastUpdated))
	n, err := r.ex.ExecuteUpdateCount(ctx, updateSQL,
		jdbc.Text(a.Address),
		jdbc.NullableText(a.Address2),
		jdbc.NullableText(a.State),
		jdbc.NullableText(a.Zip),
		jdbc.Text(a.Country),
		jdbc.NullableText(a.MobileNumber),
		jdbc.TS(stamp),
		jdbc.Long(a.ID),
		jdbc.Long(a.Version),
	)
	if err != nil {
		return err
	}
	if n == 0 {
		_, ok, err := r.FindByID(ctx, a.ID)
		if err != nil {
			return err
		}
		if !ok {
			return perr.NotFoundf("shipping address %d not found", a.ID)
		}
		return perr.WithField(perr.Conflictf("shipping address %d changed since version %d", a.ID, a.Version), "version")
	}
	a.Version++
	a.DateLastUpdated = stamp
	return nil
}

// Delete removes the address stored under id
func (r *queries) Delete(ctx context.Context, id int64) error {
	return r.ex.DeleteByID(ctx, deleteSQL, id)
}

func mapAddress(rec jdbc.Record) (domain.ShippingAddress, error) {
	rd := jdbc.Read(rec)
	a := domain.ShippingAddress{
		ID:              rd.Int64("id"),
		Address:         rd.String("address"),
		Address2:        rd.String("address2"),
		State:           rd.String("state"),
		Zip:             rd.String("zip"),
		Country:         rd.String("country"),
		Version:         rd.Int64("version"),
		MobileNumber:    rd.String("mobile_number"),
		DateCreated:     rd.Time("date_created"),
		DateLastUpdated: rd.Time("date_last_updated"),
	}
	return a, rd.Err()
}
