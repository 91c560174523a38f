package catalog

import (
	"strings"
	"time"

	"github.com/storefront/backend/internal/domain/shared"
)

// Brand groups products under a manufacturer name. Name and slug are unique
// across the store.
type Brand struct {
	shared.BaseEntity
	Name    string `gorm:"type:varchar(100);not null;uniqueIndex"`
	Slug    string `gorm:"type:varchar(120);not null;uniqueIndex"`
	LogoURL string `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (Brand) TableName() string {
	return "brands"
}

// NewBrand creates a new brand
func NewBrand(name, logoURL string) (*Brand, error) {
	if err := validateBrandName(name); err != nil {
		return nil, err
	}
	return &Brand{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		Slug:       shared.Slugify(name),
		LogoURL:    logoURL,
	}, nil
}

// Rename updates the brand name and regenerates the slug
func (b *Brand) Rename(name string) error {
	if err := validateBrandName(name); err != nil {
		return err
	}
	b.Name = name
	b.Slug = shared.Slugify(name)
	b.UpdatedAt = time.Now()
	return nil
}

func validateBrandName(name string) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewDomainError("INVALID_NAME", "Brand name cannot be empty")
	}
	if len(name) > 100 {
		return shared.NewDomainError("INVALID_NAME", "Brand name cannot exceed 100 characters")
	}
	return nil
}
