package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/shared"
)

// ProductRepository defines persistence operations for products
type ProductRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)
	FindBySlug(ctx context.Context, slug string) (*Product, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Product, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Product, error)
	// FindDiscounted returns in-stock products whose discount percentage is
	// at least minPercent, ordered by discount descending.
	FindDiscounted(ctx context.Context, minPercent int) ([]Product, error)
	Save(ctx context.Context, product *Product) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	CountByBrand(ctx context.Context, brandID uuid.UUID) (int64, error)
	CountByCategory(ctx context.Context, categoryID uuid.UUID) (int64, error)
	// ReserveStock atomically decrements stock, failing when fewer than
	// quantity units remain. Implementations must issue a single
	// compare-and-decrement statement.
	ReserveStock(ctx context.Context, productID uuid.UUID, quantity int) error
}

// RatingAggregate is the recomputed review summary for a product
type RatingAggregate struct {
	Rating      decimal.Decimal
	ReviewCount int
}

// ReviewRepository defines persistence operations for reviews
type ReviewRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Review, error)
	FindByProduct(ctx context.Context, productID uuid.UUID, filter shared.Filter) ([]Review, error)
	FindByStatus(ctx context.Context, status ReviewStatus, filter shared.Filter) ([]Review, error)
	Save(ctx context.Context, review *Review) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	CountByStatus(ctx context.Context, status ReviewStatus) (int64, error)
	ExistsByUserAndProduct(ctx context.Context, userID, productID uuid.UUID) (bool, error)
	// AggregateApproved computes mean rating and count over the product's
	// approved reviews from scratch.
	AggregateApproved(ctx context.Context, productID uuid.UUID) (RatingAggregate, error)
}

// BrandRepository defines persistence operations for brands
type BrandRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Brand, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Brand, error)
	Save(ctx context.Context, brand *Brand) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	ExistsByNameOrSlug(ctx context.Context, name, slug string) (bool, error)
}

// CategoryRepository defines persistence operations for categories
type CategoryRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Category, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Category, error)
	Save(ctx context.Context, category *Category) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	ExistsByNameOrSlug(ctx context.Context, name, slug string) (bool, error)
}
