package order

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/shared"
)

// StockReservation is one product decrement performed at checkout
type StockReservation struct {
	ProductID uuid.UUID
	Quantity  int
}

// OrderRepository defines persistence operations for orders
type OrderRepository interface {
	// FindByID loads the order with its items preloaded.
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)
	FindByOrderNumber(ctx context.Context, orderNumber string) (*Order, error)
	FindByUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]Order, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Order, error)
	Save(ctx context.Context, o *Order) error
	// PlaceOrder reserves stock for every line and inserts the order with its
	// items in one transaction. A line with insufficient stock aborts the
	// whole checkout and releases every reservation already taken.
	PlaceOrder(ctx context.Context, o *Order, reservations []StockReservation) error
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	CountByUser(ctx context.Context, userID uuid.UUID) (int64, error)
	CountByAddress(ctx context.Context, addressID uuid.UUID) (int64, error)
	CountByStatus(ctx context.Context) (map[Status]int64, error)
	// Revenue sums totals of orders whose payment status is completed.
	Revenue(ctx context.Context) (decimal.Decimal, error)
	// CustomerSummaries groups orders per user: order count and spend total.
	CustomerSummaries(ctx context.Context) (map[uuid.UUID]CustomerSummary, error)
}

// CustomerSummary is the per-customer order aggregate used by the dashboard
type CustomerSummary struct {
	OrderCount int64
	Total      decimal.Decimal
}

// AddressRepository defines persistence operations for addresses
type AddressRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Address, error)
	FindByUser(ctx context.Context, userID uuid.UUID) ([]Address, error)
	FindDefaultByUser(ctx context.Context, userID uuid.UUID) (*Address, error)
	Save(ctx context.Context, address *Address) error
	Delete(ctx context.Context, id uuid.UUID) error
	// SetDefault clears the user's previous default and marks addressID as
	// the default inside one transaction, so a crash can never leave zero or
	// two defaults.
	SetDefault(ctx context.Context, userID, addressID uuid.UUID) error
	CountDefaultsByUser(ctx context.Context, userID uuid.UUID) (int64, error)
}
