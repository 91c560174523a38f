package shopping

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/shopping"
)

// AddToCartInput contains input for adding a product variant to the cart
type AddToCartInput struct {
	UserID    uuid.UUID
	ProductID uuid.UUID
	Color     string
	Size      string
	Quantity  int
}

// CheckoutInput contains input for turning the cart into an order
type CheckoutInput struct {
	UserID    uuid.UUID
	AddressID uuid.UUID
}

// CartItemResponse is one cart line enriched with live product data
type CartItemResponse struct {
	ID        uuid.UUID       `json:"id"`
	ProductID uuid.UUID       `json:"product_id"`
	Name      string          `json:"name"`
	Slug      string          `json:"slug"`
	ImageURL  string          `json:"image_url"`
	Color     string          `json:"color,omitempty"`
	Size      string          `json:"size,omitempty"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
	Stock     int             `json:"stock"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// CartResponse is the user's whole cart
type CartResponse struct {
	Items     []CartItemResponse `json:"items"`
	ItemCount int                `json:"item_count"`
	Subtotal  decimal.Decimal    `json:"subtotal"`
}

// StockCheckRequestItem is one (product, quantity) pair to check directly,
// bypassing the stored cart.
type StockCheckRequestItem struct {
	ProductID uuid.UUID
	Quantity  int
}

// StockCheckItem reports whether one cart line can currently be fulfilled
type StockCheckItem struct {
	ProductID   uuid.UUID `json:"product_id"`
	Color       string    `json:"color,omitempty"`
	Size        string    `json:"size,omitempty"`
	Requested   int       `json:"requested"`
	Available   int       `json:"available"`
	Fulfillable bool      `json:"fulfillable"`
}

// StockCheckResponse is the fulfillability report for the whole cart
type StockCheckResponse struct {
	Items        []StockCheckItem `json:"items"`
	AllAvailable bool             `json:"all_available"`
}

// CheckoutResponse summarizes the order created from the cart
type CheckoutResponse struct {
	OrderID       uuid.UUID       `json:"order_id"`
	OrderNumber   string          `json:"order_number"`
	Total         decimal.Decimal `json:"total"`
	Status        string          `json:"status"`
	PaymentStatus string          `json:"payment_status"`
}

// WishlistItemResponse is a wishlist entry enriched with live product data
type WishlistItemResponse struct {
	ProductID          uuid.UUID        `json:"product_id"`
	Name               string           `json:"name"`
	Slug               string           `json:"slug"`
	Price              decimal.Decimal  `json:"price"`
	OriginalPrice      *decimal.Decimal `json:"original_price,omitempty"`
	DiscountPercentage int              `json:"discount_percentage"`
	ImageURL           string           `json:"image_url"`
	InStock            bool             `json:"in_stock"`
	AddedAt            time.Time        `json:"added_at"`
}

func toCartItemResponse(item *shopping.CartItem, product *catalog.Product) CartItemResponse {
	return CartItemResponse{
		ID:        item.ID,
		ProductID: item.ProductID,
		Name:      product.Name,
		Slug:      product.Slug,
		ImageURL:  product.ImageURL,
		Color:     item.Color,
		Size:      item.Size,
		UnitPrice: product.Price,
		Quantity:  item.Quantity,
		Stock:     product.Stock,
		Subtotal:  product.Price.Mul(decimal.NewFromInt(int64(item.Quantity))),
	}
}

func toWishlistItemResponse(item *shopping.WishlistItem, product *catalog.Product) WishlistItemResponse {
	return WishlistItemResponse{
		ProductID:          item.ProductID,
		Name:               product.Name,
		Slug:               product.Slug,
		Price:              product.Price,
		OriginalPrice:      product.OriginalPrice,
		DiscountPercentage: product.DiscountPercentage(),
		ImageURL:           product.ImageURL,
		InStock:            product.InStock(),
		AddedAt:            item.CreatedAt,
	}
}
