// Package service contains catalog workflows
package service

import (
	"context"

	"eshoppers/internal/modkit/repokit"
	perr "eshoppers/internal/platform/errors"
	str "eshoppers/internal/platform/strings"
	"eshoppers/internal/services/catalog/domain"
	"eshoppers/internal/services/catalog/repo"

	"github.com/samber/lo"
)

// Service defines the service contract for the catalog
type Service interface{ domain.ServicePort }

// Svc implements the Service interface
type Svc struct {
	Repo   repo.Repo
	binder repokit.Binder[repo.Repo]
	db     repokit.TxRunner
}

// New creates a new catalog service
func New(db repokit.TxRunner, binder repokit.Binder[repo.Repo]) *Svc {
	if db == nil {
		panic("catalog.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("catalog.Service requires a non nil Repo binder")
	}
	return &Svc{Repo: binder.Bind(db), binder: binder, db: db}
}

// Create stores a new product
func (s *Svc) Create(ctx context.Context, in domain.ProductInput) (domain.Product, error) {
	in, err := clean(in)
	if err != nil {
		return domain.Product{}, err
	}
	return repokit.InTx(ctx, s.db, func(q repokit.Queryer) (domain.Product, error) {
		return create(ctx, s.binder.Bind(q), in)
	})
}

// Get returns the product stored under id
func (s *Svc) Get(ctx context.Context, id int64) (domain.Product, error) {
	p, ok, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return domain.Product{}, err
	}
	if !ok {
		return domain.Product{}, notFound(id)
	}
	return *p, nil
}

// List returns every product ordered by id
func (s *Svc) List(ctx context.Context) ([]domain.Product, error) {
	return s.Repo.FindAll(ctx)
}

// Update replaces the editable fields of id when in.Version is still current
func (s *Svc) Update(ctx context.Context, id int64, in domain.ProductUpdate) (domain.Product, error) {
	fields, err := clean(in.ProductInput)
	if err != nil {
		return domain.Product{}, err
	}
	return repokit.InTx(ctx, s.db, func(q repokit.Queryer) (domain.Product, error) {
		r := s.binder.Bind(q)
		cur, ok, err := r.FindByID(ctx, id)
		if err != nil {
			return domain.Product{}, err
		}
		if !ok {
			return domain.Product{}, notFound(id)
		}
		if cur.Version != in.Version {
			return domain.Product{}, perr.WithField(
				perr.Conflictf("product %d is at version %d, not %d", id, cur.Version, in.Version), "version")
		}
		cur.Name, cur.Description, cur.Price = fields.Name, fields.Description, fields.Price
		if err := r.Update(ctx, cur); err != nil {
			return domain.Product{}, err
		}
		return *cur, nil
	})
}

// Delete removes the product stored under id
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

// Import creates every product in one transaction
// names already in the catalog are skipped, any other failure rolls back the whole batch
func (s *Svc) Import(ctx context.Context, items []domain.ProductInput) (domain.ImportResult, error) {
	cleaned := make([]domain.ProductInput, 0, len(items))
	for i, it := range items {
		c, err := clean(it)
		if err != nil {
			return domain.ImportResult{}, perr.Wrapf(err, perr.CodeOf(err), "item %d", i+1)
		}
		cleaned = append(cleaned, c)
	}
	if dups := lo.FindDuplicatesBy(cleaned, func(p domain.ProductInput) string { return p.Name }); len(dups) > 0 {
		return domain.ImportResult{}, perr.Invalidf("name", "duplicate product name %q", dups[0].Name)
	}

	return repokit.InTx(ctx, s.db, func(q repokit.Queryer) (domain.ImportResult, error) {
		r := s.binder.Bind(q)
		res := domain.ImportResult{Created: []domain.Product{}, Skipped: []string{}}
		for _, in := range cleaned {
			_, exists, err := r.FindByName(ctx, in.Name)
			if err != nil {
				return domain.ImportResult{}, err
			}
			if exists {
				res.Skipped = append(res.Skipped, in.Name)
				continue
			}
			p, err := create(ctx, r, in)
			if err != nil {
				return domain.ImportResult{}, err
			}
			res.Created = append(res.Created, p)
		}
		return res, nil
	})
}

func create(ctx context.Context, r repo.Repo, in domain.ProductInput) (domain.Product, error) {
	p := &domain.Product{Name: in.Name, Description: in.Description, Price: in.Price}
	saved, err := r.Save(ctx, p)
	if err != nil {
		return domain.Product{}, err
	}
	return *saved, nil
}

func notFound(id int64) error { return perr.NotFoundf("product %d not found", id) }

func clean(in domain.ProductInput) (domain.ProductInput, error) {
	out := domain.ProductInput{
		Name:        str.Clean(in.Name),
		Description: str.Clean(in.Description),
		Price:       in.Price.Round(2),
	}
	if out.Name == "" {
		return out, perr.Invalidf("name", "name is required")
	}
	if out.Price.IsNegative() {
		return out, perr.Invalidf("price", "price must not be negative")
	}
	return out, nil
}
