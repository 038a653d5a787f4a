package service

import (
	"context"
	"testing"

	perr "eshoppers/internal/platform/errors"
	"eshoppers/internal/platform/store/schema/schematest"
	"eshoppers/internal/platform/testkit"
	"eshoppers/internal/services/catalog/domain"
	"eshoppers/internal/services/catalog/repo"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSvc(t *testing.T) *Svc {
	t.Helper()
	return New(schematest.Open(t), repo.NewSQL())
}

func in(name, price string) domain.ProductInput {
	return domain.ProductInput{Name: name, Price: decimal.RequireFromString(price)}
}

func TestNew_PanicsOnNil(t *testing.T) {
	t.Parallel()
	testkit.MustPanic(t, func() { New(nil, repo.NewSQL()) })
}

func TestCreate_RoundsPriceAndTrims(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := newSvc(t)

	p, err := s.Create(ctx, in("  Mug ", "4.499"))
	require.NoError(t, err)
	assert.Equal(t, "Mug", p.Name)
	assert.Equal(t, "4.5", p.Price.String())

	got, err := s.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.True(t, got.Price.Equal(p.Price))
}

func TestCreate_Rejects(t *testing.T) {
	t.Parallel()
	s := newSvc(t)

	_, err := s.Create(context.Background(), in("Mug", "-1"))
	assert.True(t, perr.IsCode(err, perr.ErrorCodeValidation))
	_, err = s.Create(context.Background(), in(" ", "1"))
	assert.True(t, perr.IsCode(err, perr.ErrorCodeValidation))
}

func TestList_UpdateDelete(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := newSvc(t)

	a, err := s.Create(ctx, in("a", "1"))
	require.NoError(t, err)
	_, err = s.Create(ctx, in("b", "2"))
	require.NoError(t, err)

	all, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "a", all[0].Name)

	up, err := s.Update(ctx, a.ID, domain.ProductUpdate{ProductInput: in("a2", "3"), Version: 0})
	require.NoError(t, err)
	assert.Equal(t, int64(1), up.Version)
	assert.Equal(t, "a2", up.Name)

	_, err = s.Update(ctx, a.ID, domain.ProductUpdate{ProductInput: in("a3", "3"), Version: 0})
	assert.True(t, perr.IsCode(err, perr.ErrorCodeConflict))

	require.NoError(t, s.Delete(ctx, a.ID))
	assert.True(t, perr.IsCode(s.Delete(ctx, a.ID), perr.ErrorCodeNotFound))
	_, err = s.Get(ctx, a.ID)
	assert.True(t, perr.IsCode(err, perr.ErrorCodeNotFound))
}

func TestImport_SkipsExisting(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := newSvc(t)

	_, err := s.Create(ctx, in("Mug", "4"))
	require.NoError(t, err)

	res, err := s.Import(ctx, []domain.ProductInput{in("Cup", "3"), in("Mug", "9"), in("Plate", "7.25")})
	require.NoError(t, err)
	assert.Equal(t, []string{"Mug"}, res.Skipped)
	require.Len(t, res.Created, 2)
	assert.Equal(t, "Cup", res.Created[0].Name)

	all, err := s.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestImport_RejectsBatchDuplicates(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := newSvc(t)

	_, err := s.Import(ctx, []domain.ProductInput{in("Cup", "3"), in(" Cup", "4")})
	require.Error(t, err)
	assert.True(t, perr.IsCode(err, perr.ErrorCodeValidation))

	all, err := s.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestImport_BadItemNamesPosition(t *testing.T) {
	t.Parallel()
	_, err := newSvc(t).Import(context.Background(), []domain.ProductInput{in("Cup", "3"), in("Bad", "-2")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "item 2")
	assert.True(t, perr.IsCode(err, perr.ErrorCodeValidation))
}
