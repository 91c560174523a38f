package catalog

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// CategoryService handles category operations
type CategoryService struct {
	categoryRepo catalog.CategoryRepository
	productRepo  catalog.ProductRepository
	logger       *zap.Logger
}

// NewCategoryService creates a new CategoryService
func NewCategoryService(
	categoryRepo catalog.CategoryRepository,
	productRepo catalog.ProductRepository,
	logger *zap.Logger,
) *CategoryService {
	return &CategoryService{
		categoryRepo: categoryRepo,
		productRepo:  productRepo,
		logger:       logger,
	}
}

// Create creates a new category
func (s *CategoryService) Create(ctx context.Context, input CategoryInput) (*CategoryResponse, error) {
	category, err := catalog.NewCategory(input.Name, input.ImageURL)
	if err != nil {
		return nil, err
	}
	if input.SortOrder != nil {
		category.SetSortOrder(*input.SortOrder)
	}

	exists, err := s.categoryRepo.ExistsByNameOrSlug(ctx, category.Name, category.Slug)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "A category with this name already exists")
	}

	if err := s.categoryRepo.Save(ctx, category); err != nil {
		if errors.Is(err, shared.ErrAlreadyExists) {
			return nil, shared.NewDomainError("ALREADY_EXISTS", "A category with this name already exists")
		}
		return nil, err
	}

	s.logger.Info("Category created", zap.String("category_id", category.ID.String()))
	resp := ToCategoryResponse(category, 0)
	return &resp, nil
}

// Update renames a category and replaces its image and sort order
func (s *CategoryService) Update(ctx context.Context, id uuid.UUID, input CategoryInput) (*CategoryResponse, error) {
	category, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := category.Rename(input.Name); err != nil {
		return nil, err
	}
	category.ImageURL = input.ImageURL
	if input.SortOrder != nil {
		category.SetSortOrder(*input.SortOrder)
	}

	if err := s.categoryRepo.Save(ctx, category); err != nil {
		if errors.Is(err, shared.ErrAlreadyExists) {
			return nil, shared.NewDomainError("ALREADY_EXISTS", "A category with this name already exists")
		}
		return nil, err
	}

	count, err := s.productRepo.CountByCategory(ctx, category.ID)
	if err != nil {
		return nil, err
	}
	resp := ToCategoryResponse(category, count)
	return &resp, nil
}

// GetByID retrieves a category by ID
func (s *CategoryService) GetByID(ctx context.Context, id uuid.UUID) (*CategoryResponse, error) {
	category, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	count, err := s.productRepo.CountByCategory(ctx, category.ID)
	if err != nil {
		return nil, err
	}
	resp := ToCategoryResponse(category, count)
	return &resp, nil
}

// List retrieves all categories in display order
func (s *CategoryService) List(ctx context.Context) ([]CategoryResponse, error) {
	filter := shared.DefaultFilter()
	filter.Page = 0 // unpaged
	filter.OrderBy = "sort_order"
	filter.OrderDir = "asc"

	categories, err := s.categoryRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]CategoryResponse, len(categories))
	for i := range categories {
		count, err := s.productRepo.CountByCategory(ctx, categories[i].ID)
		if err != nil {
			return nil, err
		}
		responses[i] = ToCategoryResponse(&categories[i], count)
	}
	return responses, nil
}

// Delete removes a category unless products still reference it
func (s *CategoryService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.categoryRepo.FindByID(ctx, id); err != nil {
		return err
	}

	count, err := s.productRepo.CountByCategory(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return shared.NewDependencyConflictError("Category is still assigned to products", count)
	}

	if err := s.categoryRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("Category deleted", zap.String("category_id", id.String()))
	return nil
}
