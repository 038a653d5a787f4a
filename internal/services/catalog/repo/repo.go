// Package repo provides sql access for products
package repo

import (
	"context"

	"eshoppers/internal/jdbc"
	"eshoppers/internal/modkit/repokit"
	perr "eshoppers/internal/platform/errors"
	tm "eshoppers/internal/platform/time"
	"eshoppers/internal/services/catalog/domain"
)

// Repo defines the product repository contract
type Repo interface {
	Save(ctx context.Context, p *domain.Product) (*domain.Product, error)
	FindByID(ctx context.Context, id int64) (*domain.Product, bool, error)
	FindByName(ctx context.Context, name string) (*domain.Product, bool, error)
	FindAll(ctx context.Context) ([]domain.Product, error)
	Update(ctx context.Context, p *domain.Product) error
	Delete(ctx context.Context, id int64) error
}

const (
	columns = `id, name, description, price, version, date_created, date_last_updated`

	insertSQL = `
INSERT INTO product (name, description, price, version, date_created, date_last_updated)
VALUES (?, ?, ?, ?, ?, ?)
RETURNING id`

	selectByIDSQL   = `SELECT ` + columns + ` FROM product WHERE id = ?`
	selectByNameSQL = `SELECT ` + columns + ` FROM product WHERE name = ?`
	selectAllSQL    = `SELECT ` + columns + ` FROM product ORDER BY id`

	updateSQL = `
UPDATE product
SET name = ?, description = ?, price = ?, version = version + 1, date_last_updated = ?
WHERE id = ? AND version = ?`

	deleteSQL = `DELETE FROM product WHERE id = ?`
)

type (
	// SQL implements the Repo interface on any store backend
	SQL struct{}

	queries struct{ ex *jdbc.Executor }
)

// NewSQL creates a new product repository binder
func NewSQL() repokit.Binder[Repo] { return SQL{} }

// Bind binds a queryer to the Repo implementation
func (SQL) Bind(q repokit.Queryer) Repo { return &queries{ex: jdbc.New(q)} }

func (r *queries) Save(ctx context.Context, p *domain.Product) (*domain.Product, error) {
	p.Version = 0
	p.DateCreated = tm.OrNow(p.DateCreated)
	p.DateLastUpdated = tm.OrNow(p.DateLastUpdated)

	id, err := r.ex.ExecuteInsert(ctx, insertSQL,
		jdbc.Text(p.Name),
		jdbc.NullableText(p.Description),
		jdbc.Dec(p.Price),
		jdbc.Long(p.Version),
		jdbc.TS(p.DateCreated),
		jdbc.TS(p.DateLastUpdated),
	)
	if err != nil {
		return nil, err
	}
	p.ID = id
	return p, nil
}

func (r *queries) FindByID(ctx context.Context, id int64) (*domain.Product, bool, error) {
	return first(jdbc.QueryForEntities(ctx, r.ex, selectByIDSQL, jdbc.Long(id), mapProduct))
}

func (r *queries) FindByName(ctx context.Context, name string) (*domain.Product, bool, error) {
	return first(jdbc.QueryForEntities(ctx, r.ex, selectByNameSQL, jdbc.Text(name), mapProduct))
}

// FindAll returns every product ordered by id
func (r *queries) FindAll(ctx context.Context) ([]domain.Product, error) {
	return jdbc.QueryAll(ctx, r.ex, selectAllSQL, mapProduct)
}

func (r *queries) Update(ctx context.Context, p *domain.Product) error {
	stamp := tm.Max(tm.NowStamp(), tm.Stamp(p.DateLastUpdated))
	n, err := r.ex.ExecuteUpdateCount(ctx, updateSQL,
		jdbc.Text(p.Name),
		jdbc.NullableText(p.Description),
		jdbc.Dec(p.Price),
		jdbc.TS(stamp),
		jdbc.Long(p.ID),
		jdbc.Long(p.Version),
	)
	if err != nil {
		return err
	}
	if n == 0 {
		_, ok, err := r.FindByID(ctx, p.ID)
		if err != nil {
			return err
		}
		if !ok {
			return perr.NotFoundf("product %d not found", p.ID)
		}
		return perr.WithField(perr.Conflictf("product %d changed since version %d", p.ID, p.Version), "version")
	}
	p.Version++
	p.DateLastUpdated = stamp
	return nil
}

func (r *queries) Delete(ctx context.Context, id int64) error {
	return r.ex.DeleteByID(ctx, deleteSQL, id)
}

func first(found []domain.Product, err error) (*domain.Product, bool, error) {
	if err != nil || len(found) == 0 {
		return nil, false, err
	}
	return &found[0], true, nil
}

func mapProduct(rec jdbc.Record) (domain.Product, error) {
	rd := jdbc.Read(rec)
	p := domain.Product{
		ID:              rd.Int64("id"),
		Name:            rd.String("name"),
		Description:     rd.String("description"),
		Price:           rd.Decimal("price"),
		Version:         rd.Int64("version"),
		DateCreated:     rd.Time("date_created"),
		DateLastUpdated: rd.Time("date_last_updated"),
	}
	return p, rd.Err()
}
