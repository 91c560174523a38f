package order

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/shared"
)

// Address is a user's shipping address. At most one address per user may be
// the default; the swap (clear old default, set new) runs inside a single
// transaction in the repository. An address referenced by any order cannot
// be deleted.
type Address struct {
	shared.BaseEntity
	UserID     uuid.UUID `gorm:"type:uuid;not null;index"`
	FullName   string    `gorm:"type:varchar(100);not null"`
	Phone      string    `gorm:"type:varchar(30)"`
	Line1      string    `gorm:"type:varchar(200);not null"`
	Line2      string    `gorm:"type:varchar(200)"`
	City       string    `gorm:"type:varchar(100);not null"`
	State      string    `gorm:"type:varchar(100)"`
	PostalCode string    `gorm:"type:varchar(20);not null"`
	Country    string    `gorm:"type:varchar(100);not null"`
	IsDefault  bool      `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (Address) TableName() string {
	return "addresses"
}

// NewAddress creates a shipping address
func NewAddress(userID uuid.UUID, fullName, phone, line1, line2, city, state, postalCode, country string) (*Address, error) {
	if strings.TrimSpace(fullName) == "" {
		return nil, shared.NewDomainError("INVALID_ADDRESS", "Full name cannot be empty")
	}
	if strings.TrimSpace(line1) == "" {
		return nil, shared.NewDomainError("INVALID_ADDRESS", "Address line cannot be empty")
	}
	if strings.TrimSpace(city) == "" || strings.TrimSpace(country) == "" {
		return nil, shared.NewDomainError("INVALID_ADDRESS", "City and country are required")
	}
	if strings.TrimSpace(postalCode) == "" {
		return nil, shared.NewDomainError("INVALID_ADDRESS", "Postal code cannot be empty")
	}

	return &Address{
		BaseEntity: shared.NewBaseEntity(),
		UserID:     userID,
		FullName:   fullName,
		Phone:      phone,
		Line1:      line1,
		Line2:      line2,
		City:       city,
		State:      state,
		PostalCode: postalCode,
		Country:    country,
	}, nil
}

// Update replaces the address fields
func (a *Address) Update(fullName, phone, line1, line2, city, state, postalCode, country string) error {
	updated, err := NewAddress(a.UserID, fullName, phone, line1, line2, city, state, postalCode, country)
	if err != nil {
		return err
	}
	a.FullName = updated.FullName
	a.Phone = updated.Phone
	a.Line1 = updated.Line1
	a.Line2 = updated.Line2
	a.City = updated.City
	a.State = updated.State
	a.PostalCode = updated.PostalCode
	a.Country = updated.Country
	a.UpdatedAt = time.Now()
	return nil
}
