package catalog

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// BrandService handles brand operations
type BrandService struct {
	brandRepo   catalog.BrandRepository
	productRepo catalog.ProductRepository
	logger      *zap.Logger
}

// NewBrandService creates a new BrandService
func NewBrandService(
	brandRepo catalog.BrandRepository,
	productRepo catalog.ProductRepository,
	logger *zap.Logger,
) *BrandService {
	return &BrandService{
		brandRepo:   brandRepo,
		productRepo: productRepo,
		logger:      logger,
	}
}

// Create creates a new brand
func (s *BrandService) Create(ctx context.Context, input BrandInput) (*BrandResponse, error) {
	brand, err := catalog.NewBrand(input.Name, input.LogoURL)
	if err != nil {
		return nil, err
	}

	exists, err := s.brandRepo.ExistsByNameOrSlug(ctx, brand.Name, brand.Slug)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "A brand with this name already exists")
	}

	if err := s.brandRepo.Save(ctx, brand); err != nil {
		if errors.Is(err, shared.ErrAlreadyExists) {
			return nil, shared.NewDomainError("ALREADY_EXISTS", "A brand with this name already exists")
		}
		return nil, err
	}

	s.logger.Info("Brand created", zap.String("brand_id", brand.ID.String()))
	resp := ToBrandResponse(brand, 0)
	return &resp, nil
}

// Update renames a brand and replaces its logo
func (s *BrandService) Update(ctx context.Context, id uuid.UUID, input BrandInput) (*BrandResponse, error) {
	brand, err := s.brandRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := brand.Rename(input.Name); err != nil {
		return nil, err
	}
	brand.LogoURL = input.LogoURL

	if err := s.brandRepo.Save(ctx, brand); err != nil {
		if errors.Is(err, shared.ErrAlreadyExists) {
			return nil, shared.NewDomainError("ALREADY_EXISTS", "A brand with this name already exists")
		}
		return nil, err
	}

	count, err := s.productRepo.CountByBrand(ctx, brand.ID)
	if err != nil {
		return nil, err
	}
	resp := ToBrandResponse(brand, count)
	return &resp, nil
}

// GetByID retrieves a brand by ID
func (s *BrandService) GetByID(ctx context.Context, id uuid.UUID) (*BrandResponse, error) {
	brand, err := s.brandRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	count, err := s.productRepo.CountByBrand(ctx, brand.ID)
	if err != nil {
		return nil, err
	}
	resp := ToBrandResponse(brand, count)
	return &resp, nil
}

// List retrieves all brands
func (s *BrandService) List(ctx context.Context) ([]BrandResponse, error) {
	filter := shared.DefaultFilter()
	filter.Page = 0 // unpaged
	filter.OrderBy = "name"
	filter.OrderDir = "asc"

	brands, err := s.brandRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]BrandResponse, len(brands))
	for i := range brands {
		count, err := s.productRepo.CountByBrand(ctx, brands[i].ID)
		if err != nil {
			return nil, err
		}
		responses[i] = ToBrandResponse(&brands[i], count)
	}
	return responses, nil
}

// Delete removes a brand unless products still reference it
func (s *BrandService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.brandRepo.FindByID(ctx, id); err != nil {
		return err
	}

	count, err := s.productRepo.CountByBrand(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return shared.NewDependencyConflictError("Brand is still assigned to products", count)
	}

	if err := s.brandRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("Brand deleted", zap.String("brand_id", id.String()))
	return nil
}
