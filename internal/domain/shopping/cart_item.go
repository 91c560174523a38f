package shopping

import (
	"time"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/shared"
)

// CartItem is one line in a user's cart, keyed by (user, product, color,
// size): at most one row may exist per tuple. Quantity always satisfies
// 1 <= quantity <= product stock after any mutation; over-requests clamp
// silently instead of failing.
type CartItem struct {
	shared.BaseEntity
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_cart_variant,priority:1"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_cart_variant,priority:2"`
	Color     string    `gorm:"type:varchar(50);not null;default:'';uniqueIndex:idx_cart_variant,priority:3"`
	Size      string    `gorm:"type:varchar(50);not null;default:'';uniqueIndex:idx_cart_variant,priority:4"`
	Quantity  int       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (CartItem) TableName() string {
	return "cart_items"
}

// NewCartItem creates a cart line with the quantity already clamped to the
// available stock by the caller.
func NewCartItem(userID, productID uuid.UUID, color, size string, quantity int) (*CartItem, error) {
	if quantity < 1 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be at least 1")
	}
	return &CartItem{
		BaseEntity: shared.NewBaseEntity(),
		UserID:     userID,
		ProductID:  productID,
		Color:      color,
		Size:       size,
		Quantity:   quantity,
	}, nil
}

// Merge adds quantity from a repeated add of the same variant, capped at the
// available stock. The sum exceeding stock is not an error.
func (i *CartItem) Merge(quantity, stock int) error {
	if quantity < 1 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be at least 1")
	}
	i.Quantity = clamp(i.Quantity+quantity, stock)
	i.UpdatedAt = time.Now()
	return nil
}

// SetQuantity replaces the quantity, capped at the available stock
func (i *CartItem) SetQuantity(quantity, stock int) error {
	if quantity < 1 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be at least 1")
	}
	i.Quantity = clamp(quantity, stock)
	i.UpdatedAt = time.Now()
	return nil
}

func clamp(quantity, stock int) int {
	if quantity > stock {
		return stock
	}
	return quantity
}
