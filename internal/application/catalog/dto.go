package catalog

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/catalog"
)

// CreateProductInput contains input for product creation
type CreateProductInput struct {
	Name          string
	Description   string
	Price         decimal.Decimal
	OriginalPrice *decimal.Decimal
	Stock         int
	BrandID       *uuid.UUID
	CategoryID    *uuid.UUID
	ImageURL      string
	Colors        []string
	Sizes         []string
}

// UpdateProductInput contains input for product updates
type UpdateProductInput struct {
	Name          string
	Description   string
	Price         decimal.Decimal
	OriginalPrice *decimal.Decimal
	Stock         int
	BrandID       *uuid.UUID
	CategoryID    *uuid.UUID
	ImageURL      string
	Colors        []string
	Sizes         []string
}

// ProductListFilter narrows and pages product listings
type ProductListFilter struct {
	Page       int
	PageSize   int
	Search     string
	BrandID    *uuid.UUID
	CategoryID *uuid.UUID
	MinPrice   *decimal.Decimal
	MaxPrice   *decimal.Decimal
	InStock    *bool
	SortBy     string
	SortDesc   bool
}

// ProductResponse is the public view of a product
type ProductResponse struct {
	ID                 uuid.UUID        `json:"id"`
	Name               string           `json:"name"`
	Slug               string           `json:"slug"`
	Description        string           `json:"description"`
	Price              decimal.Decimal  `json:"price"`
	OriginalPrice      *decimal.Decimal `json:"original_price,omitempty"`
	DiscountPercentage int              `json:"discount_percentage"`
	Stock              int              `json:"stock"`
	InStock            bool             `json:"in_stock"`
	Rating             decimal.Decimal  `json:"rating"`
	ReviewCount        int              `json:"review_count"`
	BrandID            *uuid.UUID       `json:"brand_id,omitempty"`
	CategoryID         *uuid.UUID       `json:"category_id,omitempty"`
	ImageURL           string           `json:"image_url"`
	Colors             []string         `json:"colors"`
	Sizes              []string         `json:"sizes"`
	CreatedAt          time.Time        `json:"created_at"`
}

// ToProductResponse converts a domain product to its public view
func ToProductResponse(p *catalog.Product) ProductResponse {
	return ProductResponse{
		ID:                 p.ID,
		Name:               p.Name,
		Slug:               p.Slug,
		Description:        p.Description,
		Price:              p.Price,
		OriginalPrice:      p.OriginalPrice,
		DiscountPercentage: p.DiscountPercentage(),
		Stock:              p.Stock,
		InStock:            p.InStock(),
		Rating:             p.Rating,
		ReviewCount:        p.ReviewCount,
		BrandID:            p.BrandID,
		CategoryID:         p.CategoryID,
		ImageURL:           p.ImageURL,
		Colors:             splitVariants(p.Colors),
		Sizes:              splitVariants(p.Sizes),
		CreatedAt:          p.CreatedAt,
	}
}

func splitVariants(s string) []string {
	if s == "" {
		return []string{}
	}
	return strings.Split(s, ",")
}

// BrandInput contains input for brand creation and updates
type BrandInput struct {
	Name    string
	LogoURL string
}

// BrandResponse is the public view of a brand
type BrandResponse struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Slug         string    `json:"slug"`
	LogoURL      string    `json:"logo_url"`
	ProductCount int64     `json:"product_count"`
}

// ToBrandResponse converts a domain brand to its public view
func ToBrandResponse(b *catalog.Brand, productCount int64) BrandResponse {
	return BrandResponse{
		ID:           b.ID,
		Name:         b.Name,
		Slug:         b.Slug,
		LogoURL:      b.LogoURL,
		ProductCount: productCount,
	}
}

// CategoryInput contains input for category creation and updates
type CategoryInput struct {
	Name      string
	ImageURL  string
	SortOrder *int
}

// CategoryResponse is the public view of a category
type CategoryResponse struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Slug         string    `json:"slug"`
	ImageURL     string    `json:"image_url"`
	SortOrder    int       `json:"sort_order"`
	ProductCount int64     `json:"product_count"`
}

// ToCategoryResponse converts a domain category to its public view
func ToCategoryResponse(c *catalog.Category, productCount int64) CategoryResponse {
	return CategoryResponse{
		ID:           c.ID,
		Name:         c.Name,
		Slug:         c.Slug,
		ImageURL:     c.ImageURL,
		SortOrder:    c.SortOrder,
		ProductCount: productCount,
	}
}

// SubmitReviewInput contains input for review submission
type SubmitReviewInput struct {
	UserID    uuid.UUID
	ProductID uuid.UUID
	Rating    int
	Title     string
	Comment   string
}

// ReviewResponse is the public view of a review
type ReviewResponse struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	ProductID uuid.UUID `json:"product_id"`
	Rating    int       `json:"rating"`
	Title     string    `json:"title"`
	Comment   string    `json:"comment"`
	Status    string    `json:"status"`
	Verified  bool      `json:"verified"`
	CreatedAt time.Time `json:"created_at"`
}

// ToReviewResponse converts a domain review to its public view
func ToReviewResponse(r *catalog.Review) ReviewResponse {
	return ReviewResponse{
		ID:        r.ID,
		UserID:    r.UserID,
		ProductID: r.ProductID,
		Rating:    r.Rating,
		Title:     r.Title,
		Comment:   r.Comment,
		Status:    string(r.Status),
		Verified:  r.IsVerified(),
		CreatedAt: r.CreatedAt,
	}
}
