package catalog

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/shared"
)

// Product is the aggregate root of the catalog. Rating and ReviewCount are
// denormalized aggregates: they are recomputed from the set of approved
// reviews on every moderation event, never edited directly.
type Product struct {
	shared.BaseEntity
	Name          string           `gorm:"type:varchar(200);not null"`
	Slug          string           `gorm:"type:varchar(220);not null;uniqueIndex"`
	Description   string           `gorm:"type:text"`
	Price         decimal.Decimal  `gorm:"type:decimal(18,2);not null;default:0"`
	OriginalPrice *decimal.Decimal `gorm:"type:decimal(18,2)"`
	Stock         int              `gorm:"not null;default:0"`
	Rating        decimal.Decimal  `gorm:"type:decimal(3,2);not null;default:0"`
	ReviewCount   int              `gorm:"not null;default:0"`
	BrandID       *uuid.UUID       `gorm:"type:uuid;index"`
	CategoryID    *uuid.UUID       `gorm:"type:uuid;index"`
	ImageURL      string           `gorm:"type:varchar(500)"`
	Colors        string           `gorm:"type:varchar(500)"` // comma-separated variant colors
	Sizes         string           `gorm:"type:varchar(500)"` // comma-separated variant sizes
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new product
func NewProduct(name string, price decimal.Decimal, stock int) (*Product, error) {
	if err := validateProductName(name); err != nil {
		return nil, err
	}
	if price.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}
	if stock < 0 {
		return nil, shared.NewDomainError("INVALID_STOCK", "Stock cannot be negative")
	}

	return &Product{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		Slug:       shared.Slugify(name),
		Price:      price,
		Stock:      stock,
		Rating:     decimal.Zero,
	}, nil
}

// Update updates the product's basic information
func (p *Product) Update(name, description string) error {
	if err := validateProductName(name); err != nil {
		return err
	}
	p.Name = name
	p.Slug = shared.Slugify(name)
	p.Description = description
	p.UpdatedAt = time.Now()
	return nil
}

// SetPricing sets the selling price and, optionally, the pre-discount
// original price. The original price must exceed the selling price.
func (p *Product) SetPricing(price decimal.Decimal, originalPrice *decimal.Decimal) error {
	if price.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}
	if originalPrice != nil && originalPrice.LessThanOrEqual(price) {
		return shared.NewDomainError("INVALID_PRICE", "Original price must be greater than the selling price")
	}
	p.Price = price
	p.OriginalPrice = originalPrice
	p.UpdatedAt = time.Now()
	return nil
}

// SetStock replaces the stock level
func (p *Product) SetStock(stock int) error {
	if stock < 0 {
		return shared.NewDomainError("INVALID_STOCK", "Stock cannot be negative")
	}
	p.Stock = stock
	p.UpdatedAt = time.Now()
	return nil
}

// SetVariants sets the available color and size options
func (p *Product) SetVariants(colors, sizes []string) {
	p.Colors = strings.Join(colors, ",")
	p.Sizes = strings.Join(sizes, ",")
	p.UpdatedAt = time.Now()
}

// ApplyRatingAggregate overwrites the denormalized review aggregate
func (p *Product) ApplyRatingAggregate(rating decimal.Decimal, reviewCount int) {
	p.Rating = rating
	p.ReviewCount = reviewCount
	p.UpdatedAt = time.Now()
}

// InStock reports whether the product has positive stock
func (p *Product) InStock() bool {
	return p.Stock > 0
}

// HasDiscount reports whether the product carries an original price
func (p *Product) HasDiscount() bool {
	return p.OriginalPrice != nil && p.OriginalPrice.GreaterThan(p.Price)
}

// DiscountPercentage returns round((original-price)/original*100), or 0 when
// the product has no original price.
func (p *Product) DiscountPercentage() int {
	if !p.HasDiscount() {
		return 0
	}
	pct := p.OriginalPrice.Sub(p.Price).
		Div(*p.OriginalPrice).
		Mul(decimal.NewFromInt(100)).
		Round(0)
	return int(pct.IntPart())
}

func validateProductName(name string) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot exceed 200 characters")
	}
	return nil
}
