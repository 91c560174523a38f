package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustProduct(t *testing.T, name string, price string, stock int) *catalog.Product {
	t.Helper()
	p, err := catalog.NewProduct(name, decimal.RequireFromString(price), stock)
	require.NoError(t, err)
	return p
}

func TestProductRepository_FindDiscounted(t *testing.T) {
	db := newTestDB(t, &catalog.Product{})
	repo := NewGormProductRepository(db)
	ctx := context.Background()

	// 33% off, in stock
	steep := mustProduct(t, "Steep Deal", "66.66", 5)
	orig := decimal.RequireFromString("100.00")
	require.NoError(t, steep.SetPricing(decimal.RequireFromString("66.66"), &orig))

	// 10% off, in stock
	shallow := mustProduct(t, "Shallow Deal", "90.00", 5)
	orig2 := decimal.RequireFromString("100.00")
	require.NoError(t, shallow.SetPricing(decimal.RequireFromString("90.00"), &orig2))

	// 5% off, below the threshold
	tiny := mustProduct(t, "Tiny Deal", "95.00", 5)
	orig3 := decimal.RequireFromString("100.00")
	require.NoError(t, tiny.SetPricing(decimal.RequireFromString("95.00"), &orig3))

	// 50% off but sold out
	soldOut := mustProduct(t, "Sold Out Deal", "50.00", 0)
	orig4 := decimal.RequireFromString("100.00")
	require.NoError(t, soldOut.SetPricing(decimal.RequireFromString("50.00"), &orig4))

	// No discount at all
	plain := mustProduct(t, "Plain", "20.00", 5)

	for _, p := range []*catalog.Product{steep, shallow, tiny, soldOut, plain} {
		require.NoError(t, repo.Save(ctx, p))
	}

	deals, err := repo.FindDiscounted(ctx, 10)
	require.NoError(t, err)

	require.Len(t, deals, 2)
	assert.Equal(t, "Steep Deal", deals[0].Name)
	assert.Equal(t, "Shallow Deal", deals[1].Name)
}

func TestProductRepository_ReserveStock(t *testing.T) {
	db := newTestDB(t, &catalog.Product{})
	repo := NewGormProductRepository(db)
	ctx := context.Background()

	p := mustProduct(t, "Limited", "10.00", 3)
	require.NoError(t, repo.Save(ctx, p))

	require.NoError(t, repo.ReserveStock(ctx, p.ID, 2))

	reloaded, err := repo.FindByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, reloaded.Stock)

	// Only one unit left, reserving two must fail and leave stock untouched
	err = repo.ReserveStock(ctx, p.ID, 2)
	assert.ErrorIs(t, err, shared.ErrInsufficientStock)

	reloaded, err = repo.FindByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, reloaded.Stock)
}

func TestProductRepository_ReserveStock_UnknownProduct(t *testing.T) {
	db := newTestDB(t, &catalog.Product{})
	repo := NewGormProductRepository(db)

	err := repo.ReserveStock(context.Background(), uuid.New(), 1)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestProductRepository_SaveDuplicateSlug(t *testing.T) {
	db := newTestDB(t, &catalog.Product{})
	repo := NewGormProductRepository(db)
	ctx := context.Background()

	first := mustProduct(t, "Same Name", "10.00", 1)
	second := mustProduct(t, "Same Name", "12.00", 1)

	require.NoError(t, repo.Save(ctx, first))
	err := repo.Save(ctx, second)
	assert.ErrorIs(t, err, shared.ErrAlreadyExists)
}

func TestProductRepository_FindBySlug(t *testing.T) {
	db := newTestDB(t, &catalog.Product{})
	repo := NewGormProductRepository(db)
	ctx := context.Background()

	p := mustProduct(t, "Café Crème Mug", "15.00", 10)
	require.NoError(t, repo.Save(ctx, p))

	found, err := repo.FindBySlug(ctx, "cafe-creme-mug")
	require.NoError(t, err)
	assert.Equal(t, p.ID, found.ID)

	_, err = repo.FindBySlug(ctx, "missing")
	assert.ErrorIs(t, err, shared.ErrNotFound)
}
