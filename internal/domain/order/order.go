package order

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/shared"
)

// Status is the fulfillment state of an order
type Status string

const (
	StatusPending    Status = "pending"
	StatusConfirmed  Status = "confirmed"
	StatusProcessing Status = "processing"
	StatusShipped    Status = "shipped"
	StatusDelivered  Status = "delivered"
	StatusCancelled  Status = "cancelled"
)

// PaymentStatus is the payment state of an order, independent of Status
type PaymentStatus string

const (
	PaymentPending    PaymentStatus = "pending"
	PaymentProcessing PaymentStatus = "processing"
	PaymentCompleted  PaymentStatus = "completed"
	PaymentFailed     PaymentStatus = "failed"
	PaymentRefunded   PaymentStatus = "refunded"
)

// ParseStatus validates an order status value
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusPending, StatusConfirmed, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled:
		return Status(s), nil
	default:
		return "", shared.NewDomainError("INVALID_STATUS", "Unknown order status: "+s)
	}
}

// ParsePaymentStatus validates a payment status value
func ParsePaymentStatus(s string) (PaymentStatus, error) {
	switch PaymentStatus(s) {
	case PaymentPending, PaymentProcessing, PaymentCompleted, PaymentFailed, PaymentRefunded:
		return PaymentStatus(s), nil
	default:
		return "", shared.NewDomainError("INVALID_STATUS", "Unknown payment status: "+s)
	}
}

// Order is the aggregate root for a placed order. OrderNumber and Total are
// immutable after checkout; only the two status fields change afterwards,
// each guarded by its own TransitionPolicy.
type Order struct {
	shared.BaseEntity
	OrderNumber       string          `gorm:"type:varchar(30);not null;uniqueIndex"`
	UserID            uuid.UUID       `gorm:"type:uuid;not null;index"`
	Status            Status          `gorm:"type:varchar(20);not null;default:'pending'"`
	PaymentStatus     PaymentStatus   `gorm:"type:varchar(20);not null;default:'pending'"`
	Total             decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	ShippingAddressID uuid.UUID       `gorm:"type:uuid;not null;index"`
	// Read-only view onto the address book, loaded for denormalized responses.
	ShippingAddress *Address    `gorm:"foreignKey:ShippingAddressID;->"`
	Items           []OrderItem `gorm:"foreignKey:OrderID"`
}

// TableName returns the table name for GORM
func (Order) TableName() string {
	return "orders"
}

// OrderItem is a line of an order, snapshotting the product's name, image
// and unit price at checkout time.
type OrderItem struct {
	shared.BaseEntity
	OrderID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductName string          `gorm:"type:varchar(200);not null"`
	ImageURL    string          `gorm:"type:varchar(500)"`
	Color       string          `gorm:"type:varchar(50)"`
	Size        string          `gorm:"type:varchar(50)"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Quantity    int             `gorm:"not null"`
}

// TableName returns the table name for GORM
func (OrderItem) TableName() string {
	return "order_items"
}

// Subtotal returns unit price times quantity
func (i *OrderItem) Subtotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// NewOrder creates a pending order from checkout lines
func NewOrder(userID, shippingAddressID uuid.UUID, items []OrderItem) (*Order, error) {
	if len(items) == 0 {
		return nil, shared.NewDomainError("EMPTY_ORDER", "Order must contain at least one item")
	}

	o := &Order{
		BaseEntity:        shared.NewBaseEntity(),
		OrderNumber:       generateOrderNumber(),
		UserID:            userID,
		Status:            StatusPending,
		PaymentStatus:     PaymentPending,
		ShippingAddressID: shippingAddressID,
	}

	total := decimal.Zero
	for idx := range items {
		items[idx].OrderID = o.ID
		total = total.Add(items[idx].Subtotal())
	}
	o.Items = items
	o.Total = total
	return o, nil
}

// ChangeStatus moves the order to a new fulfillment status if the policy
// allows the transition.
func (o *Order) ChangeStatus(target Status, policy TransitionPolicy) error {
	if !policy.Allowed(string(o.Status), string(target)) {
		return shared.NewDomainError("INVALID_STATE",
			fmt.Sprintf("Transition %s -> %s is not allowed", o.Status, target))
	}
	o.Status = target
	o.UpdatedAt = time.Now()
	return nil
}

// ChangePaymentStatus moves the order to a new payment status if the policy
// allows the transition.
func (o *Order) ChangePaymentStatus(target PaymentStatus, policy TransitionPolicy) error {
	if !policy.Allowed(string(o.PaymentStatus), string(target)) {
		return shared.NewDomainError("INVALID_STATE",
			fmt.Sprintf("Transition %s -> %s is not allowed", o.PaymentStatus, target))
	}
	o.PaymentStatus = target
	o.UpdatedAt = time.Now()
	return nil
}

// generateOrderNumber builds an immutable human-readable order number:
// ORD-YYYYMMDD-<6 hex chars>.
func generateOrderNumber() string {
	buf := make([]byte, 3)
	_, _ = rand.Read(buf)
	return fmt.Sprintf("ORD-%s-%s", time.Now().Format("20060102"), hex.EncodeToString(buf))
}
