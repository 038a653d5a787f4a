package repo

import (
	"context"
	"testing"

	"eshoppers/internal/jdbc"
	perr "eshoppers/internal/platform/errors"
	"eshoppers/internal/platform/store/schema/schematest"
	"eshoppers/internal/services/catalog/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepo(t *testing.T) Repo {
	t.Helper()
	return NewSQL().Bind(schematest.Open(t))
}

func product(name, price string) *domain.Product {
	return &domain.Product{Name: name, Price: decimal.RequireFromString(price)}
}

func TestSave_FindByID_KeepsPrice(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	r := newRepo(t)

	p := product("Espresso cup", "12.50")
	p.Description = "porcelain"
	saved, err := r.Save(ctx, p)
	require.NoError(t, err)
	assert.Positive(t, saved.ID)
	assert.Zero(t, saved.Version)

	got, ok, err := r.FindByID(ctx, saved.ID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Espresso cup", got.Name)
	assert.Equal(t, "porcelain", got.Description)
	assert.True(t, decimal.RequireFromString("12.5").Equal(got.Price), got.Price.String())
}

func TestFindByName(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	r := newRepo(t)

	_, err := r.Save(ctx, product("Mug", "4"))
	require.NoError(t, err)

	got, ok, err := r.FindByName(ctx, "Mug")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Mug", got.Name)

	_, ok, err = r.FindByName(ctx, "Plate")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSave_DuplicateName(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	r := newRepo(t)

	_, err := r.Save(ctx, product("Mug", "4"))
	require.NoError(t, err)
	_, err = r.Save(ctx, product("Mug", "5"))
	require.Error(t, err)
	assert.True(t, jdbc.IsExecutionError(err))
	assert.True(t, perr.IsCode(err, perr.ErrorCodeDuplicateKey))
}

func TestFindAll_OrderedByID(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	r := newRepo(t)

	empty, err := r.FindAll(ctx)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	for _, n := range []string{"c", "a", "b"} {
		_, err := r.Save(ctx, product(n, "1"))
		require.NoError(t, err)
	}
	all, err := r.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{"c", "a", "b"}, []string{all[0].Name, all[1].Name, all[2].Name})
	assert.Less(t, all[0].ID, all[1].ID)
	assert.Less(t, all[1].ID, all[2].ID)
}

func TestUpdate_AndConflict(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	r := newRepo(t)

	p, err := r.Save(ctx, product("Mug", "4"))
	require.NoError(t, err)
	stale := *p

	p.Price = decimal.RequireFromString("4.99")
	require.NoError(t, r.Update(ctx, p))
	assert.Equal(t, int64(1), p.Version)

	got, _, err := r.FindByID(ctx, p.ID)
	require.NoError(t, err)
	assert.True(t, got.Price.Equal(p.Price))

	err = r.Update(ctx, &stale)
	assert.True(t, perr.IsCode(err, perr.ErrorCodeConflict))

	err = r.Update(ctx, &domain.Product{ID: 999, Name: "x"})
	assert.True(t, perr.IsCode(err, perr.ErrorCodeNotFound))
}

func TestDelete(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	r := newRepo(t)

	p, err := r.Save(ctx, product("Mug", "4"))
	require.NoError(t, err)
	require.NoError(t, r.Delete(ctx, p.ID))
	_, ok, err := r.FindByID(ctx, p.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}
