package shopping

import (
	"context"

	"github.com/google/uuid"
)

// CartRepository defines persistence operations for cart items. FindVariant
// and Save run inside the transaction carried by ctx when the caller opened
// one; the stock clamp depends on that.
type CartRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*CartItem, error)
	FindByUser(ctx context.Context, userID uuid.UUID) ([]CartItem, error)
	FindVariant(ctx context.Context, userID, productID uuid.UUID, color, size string) (*CartItem, error)
	Save(ctx context.Context, item *CartItem) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByUser(ctx context.Context, userID uuid.UUID) error
	CountByUser(ctx context.Context, userID uuid.UUID) (int64, error)
}

// WishlistRepository defines persistence operations for wishlist items
type WishlistRepository interface {
	FindByUser(ctx context.Context, userID uuid.UUID) ([]WishlistItem, error)
	FindByUserAndProduct(ctx context.Context, userID, productID uuid.UUID) (*WishlistItem, error)
	ExistsByUserAndProduct(ctx context.Context, userID, productID uuid.UUID) (bool, error)
	Save(ctx context.Context, item *WishlistItem) error
	DeleteByUserAndProduct(ctx context.Context, userID, productID uuid.UUID) error
}
