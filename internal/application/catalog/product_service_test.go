package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestProductService() (*ProductService, *MockProductRepository, *MockBrandRepository, *MockCategoryRepository) {
	productRepo := new(MockProductRepository)
	brandRepo := new(MockBrandRepository)
	categoryRepo := new(MockCategoryRepository)
	service := NewProductService(productRepo, brandRepo, categoryRepo, zap.NewNop())
	return service, productRepo, brandRepo, categoryRepo
}

func decimalPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestProductService_Create(t *testing.T) {
	service, productRepo, brandRepo, _ := newTestProductService()
	ctx := context.Background()

	brand, err := catalog.NewBrand("Acme", "")
	require.NoError(t, err)
	brandRepo.On("FindByID", ctx, brand.ID).Return(brand, nil)
	productRepo.On("Save", ctx, mock.AnythingOfType("*catalog.Product")).Return(nil)

	resp, err := service.Create(ctx, CreateProductInput{
		Name:          "Café Crème Mug",
		Price:         decimal.RequireFromString("20.00"),
		OriginalPrice: decimalPtr("30.00"),
		Stock:         10,
		BrandID:       &brand.ID,
		Colors:        []string{"white", "black"},
	})

	require.NoError(t, err)
	assert.Equal(t, "cafe-creme-mug", resp.Slug)
	assert.Equal(t, 33, resp.DiscountPercentage)
	assert.True(t, resp.InStock)
	assert.Equal(t, []string{"white", "black"}, resp.Colors)
	productRepo.AssertExpectations(t)
}

func TestProductService_Create_UnknownBrand(t *testing.T) {
	service, productRepo, brandRepo, _ := newTestProductService()
	ctx := context.Background()

	brandID := uuid.New()
	brandRepo.On("FindByID", ctx, brandID).Return(nil, shared.ErrNotFound)

	_, err := service.Create(ctx, CreateProductInput{
		Name:    "Desk Lamp",
		Price:   decimal.NewFromInt(30),
		Stock:   5,
		BrandID: &brandID,
	})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_BRAND", domainErr.Code)
	productRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestProductService_Create_OriginalPriceBelowPrice(t *testing.T) {
	service, productRepo, _, _ := newTestProductService()

	_, err := service.Create(context.Background(), CreateProductInput{
		Name:          "Desk Lamp",
		Price:         decimal.NewFromInt(30),
		OriginalPrice: decimalPtr("25.00"),
		Stock:         5,
	})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_PRICE", domainErr.Code)
	productRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestProductService_Create_DuplicateName(t *testing.T) {
	service, productRepo, _, _ := newTestProductService()
	ctx := context.Background()

	productRepo.On("Save", ctx, mock.AnythingOfType("*catalog.Product")).
		Return(shared.ErrAlreadyExists)

	_, err := service.Create(ctx, CreateProductInput{
		Name:  "Desk Lamp",
		Price: decimal.NewFromInt(30),
		Stock: 5,
	})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
}

func TestProductService_Update_ClearsReferences(t *testing.T) {
	service, productRepo, _, _ := newTestProductService()
	ctx := context.Background()

	brandID := uuid.New()
	product, err := catalog.NewProduct("Desk Lamp", decimal.NewFromInt(30), 5)
	require.NoError(t, err)
	product.BrandID = &brandID

	productRepo.On("FindByID", ctx, product.ID).Return(product, nil)
	productRepo.On("Save", ctx, product).Return(nil)

	resp, err := service.Update(ctx, product.ID, UpdateProductInput{
		Name:  "Desk Lamp v2",
		Price: decimal.NewFromInt(35),
		Stock: 8,
	})

	require.NoError(t, err)
	assert.Nil(t, resp.BrandID)
	assert.Equal(t, "desk-lamp-v2", resp.Slug)
	assert.Equal(t, 8, resp.Stock)
}

func TestProductService_List(t *testing.T) {
	service, productRepo, _, _ := newTestProductService()
	ctx := context.Background()

	product, err := catalog.NewProduct("Desk Lamp", decimal.NewFromInt(30), 5)
	require.NoError(t, err)

	inStock := true
	productRepo.On("FindAll", ctx, mock.MatchedBy(func(f shared.Filter) bool {
		return f.Filters["in_stock"] == true && f.OrderBy == "price" && f.OrderDir == "desc"
	})).Return([]catalog.Product{*product}, nil)
	productRepo.On("Count", ctx, mock.AnythingOfType("shared.Filter")).Return(int64(1), nil)

	products, total, err := service.List(ctx, ProductListFilter{
		Page:     1,
		PageSize: 20,
		InStock:  &inStock,
		SortBy:   "price",
		SortDesc: true,
	})

	require.NoError(t, err)
	assert.Len(t, products, 1)
	assert.Equal(t, int64(1), total)
}

func TestProductService_Deals(t *testing.T) {
	service, productRepo, _, _ := newTestProductService()
	ctx := context.Background()

	discounted, err := catalog.NewProduct("Desk Lamp", decimal.NewFromInt(20), 5)
	require.NoError(t, err)
	require.NoError(t, discounted.SetPricing(decimal.NewFromInt(20), decimalPtr("30.00")))

	productRepo.On("FindDiscounted", ctx, MinDealDiscountPercent).
		Return([]catalog.Product{*discounted}, nil)

	deals, err := service.Deals(ctx)

	require.NoError(t, err)
	require.Len(t, deals, 1)
	assert.Equal(t, 33, deals[0].DiscountPercentage)
	productRepo.AssertExpectations(t)
}

func TestProductService_Delete_NotFound(t *testing.T) {
	service, productRepo, _, _ := newTestProductService()
	ctx := context.Background()

	id := uuid.New()
	productRepo.On("Delete", ctx, id).Return(shared.ErrNotFound)

	err := service.Delete(ctx, id)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}
