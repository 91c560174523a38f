package catalog

import (
	"context"
	"testing"

	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestCategoryService() (*CategoryService, *MockCategoryRepository, *MockProductRepository) {
	categoryRepo := new(MockCategoryRepository)
	productRepo := new(MockProductRepository)
	service := NewCategoryService(categoryRepo, productRepo, zap.NewNop())
	return service, categoryRepo, productRepo
}

func TestCategoryService_Create(t *testing.T) {
	service, categoryRepo, _ := newTestCategoryService()
	ctx := context.Background()

	sortOrder := 3
	categoryRepo.On("ExistsByNameOrSlug", ctx, "Home Office", "home-office").Return(false, nil)
	categoryRepo.On("Save", ctx, mock.AnythingOfType("*catalog.Category")).Return(nil)

	resp, err := service.Create(ctx, CategoryInput{Name: "Home Office", SortOrder: &sortOrder})

	require.NoError(t, err)
	assert.Equal(t, "home-office", resp.Slug)
	assert.Equal(t, 3, resp.SortOrder)
	categoryRepo.AssertExpectations(t)
}

func TestCategoryService_Create_DuplicateName(t *testing.T) {
	service, categoryRepo, _ := newTestCategoryService()
	ctx := context.Background()

	categoryRepo.On("ExistsByNameOrSlug", ctx, "Home Office", "home-office").Return(true, nil)

	_, err := service.Create(ctx, CategoryInput{Name: "Home Office"})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
	categoryRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestCategoryService_Delete_BlockedByProducts(t *testing.T) {
	service, categoryRepo, productRepo := newTestCategoryService()
	ctx := context.Background()

	category, err := catalog.NewCategory("Home Office", "")
	require.NoError(t, err)

	categoryRepo.On("FindByID", ctx, category.ID).Return(category, nil)
	productRepo.On("CountByCategory", ctx, category.ID).Return(int64(2), nil)

	err = service.Delete(ctx, category.ID)

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "DEPENDENCY_CONFLICT", domainErr.Code)
	assert.Equal(t, int64(2), domainErr.Details["reference_count"])
	categoryRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestCategoryService_Delete_Unreferenced(t *testing.T) {
	service, categoryRepo, productRepo := newTestCategoryService()
	ctx := context.Background()

	category, err := catalog.NewCategory("Home Office", "")
	require.NoError(t, err)

	categoryRepo.On("FindByID", ctx, category.ID).Return(category, nil)
	productRepo.On("CountByCategory", ctx, category.ID).Return(int64(0), nil)
	categoryRepo.On("Delete", ctx, category.ID).Return(nil)

	require.NoError(t, service.Delete(ctx, category.ID))
	categoryRepo.AssertExpectations(t)
}

func TestCategoryService_List_OrderedBySortOrder(t *testing.T) {
	service, categoryRepo, productRepo := newTestCategoryService()
	ctx := context.Background()

	category, err := catalog.NewCategory("Home Office", "")
	require.NoError(t, err)

	categoryRepo.On("FindAll", ctx, mock.MatchedBy(func(f shared.Filter) bool {
		return f.OrderBy == "sort_order" && f.OrderDir == "asc" && f.Page == 0
	})).Return([]catalog.Category{*category}, nil)
	productRepo.On("CountByCategory", ctx, category.ID).Return(int64(5), nil)

	categories, err := service.List(ctx)

	require.NoError(t, err)
	require.Len(t, categories, 1)
	assert.Equal(t, int64(5), categories[0].ProductCount)
}
