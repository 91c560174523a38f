package order

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/order"
)

// OrderListFilter narrows and pages order listings
type OrderListFilter struct {
	Page          int
	PageSize      int
	Status        string
	PaymentStatus string
}

// OrderItemResponse is one line of an order, as snapshotted at checkout
type OrderItemResponse struct {
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	ImageURL    string          `json:"image_url"`
	Color       string          `json:"color,omitempty"`
	Size        string          `json:"size,omitempty"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Quantity    int             `json:"quantity"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// OrderResponse is the public view of an order
type OrderResponse struct {
	ID                uuid.UUID           `json:"id"`
	OrderNumber       string              `json:"order_number"`
	UserID            uuid.UUID           `json:"user_id"`
	Status            string              `json:"status"`
	PaymentStatus     string              `json:"payment_status"`
	Total             decimal.Decimal     `json:"total"`
	ShippingAddressID uuid.UUID           `json:"shipping_address_id"`
	ShippingAddress   *AddressResponse    `json:"shipping_address,omitempty"`
	Items             []OrderItemResponse `json:"items"`
	CreatedAt         time.Time           `json:"created_at"`
}

// ToOrderResponse converts a domain order to its public view
func ToOrderResponse(o *order.Order) OrderResponse {
	items := make([]OrderItemResponse, len(o.Items))
	for i := range o.Items {
		item := &o.Items[i]
		items[i] = OrderItemResponse{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			ImageURL:    item.ImageURL,
			Color:       item.Color,
			Size:        item.Size,
			UnitPrice:   item.UnitPrice,
			Quantity:    item.Quantity,
			Subtotal:    item.Subtotal(),
		}
	}
	resp := OrderResponse{
		ID:                o.ID,
		OrderNumber:       o.OrderNumber,
		UserID:            o.UserID,
		Status:            string(o.Status),
		PaymentStatus:     string(o.PaymentStatus),
		Total:             o.Total,
		ShippingAddressID: o.ShippingAddressID,
		Items:             items,
		CreatedAt:         o.CreatedAt,
	}
	if o.ShippingAddress != nil {
		address := ToAddressResponse(o.ShippingAddress)
		resp.ShippingAddress = &address
	}
	return resp
}

// AddressInput contains input for address creation and updates
type AddressInput struct {
	FullName   string
	Phone      string
	Line1      string
	Line2      string
	City       string
	State      string
	PostalCode string
	Country    string
	IsDefault  bool
}

// AddressResponse is the public view of a shipping address
type AddressResponse struct {
	ID         uuid.UUID `json:"id"`
	FullName   string    `json:"full_name"`
	Phone      string    `json:"phone"`
	Line1      string    `json:"line1"`
	Line2      string    `json:"line2,omitempty"`
	City       string    `json:"city"`
	State      string    `json:"state,omitempty"`
	PostalCode string    `json:"postal_code"`
	Country    string    `json:"country"`
	IsDefault  bool      `json:"is_default"`
	CreatedAt  time.Time `json:"created_at"`
}

// ToAddressResponse converts a domain address to its public view
func ToAddressResponse(a *order.Address) AddressResponse {
	return AddressResponse{
		ID:         a.ID,
		FullName:   a.FullName,
		Phone:      a.Phone,
		Line1:      a.Line1,
		Line2:      a.Line2,
		City:       a.City,
		State:      a.State,
		PostalCode: a.PostalCode,
		Country:    a.Country,
		IsDefault:  a.IsDefault,
		CreatedAt:  a.CreatedAt,
	}
}
