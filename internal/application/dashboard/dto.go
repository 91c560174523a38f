package dashboard

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OverviewResponse is the store-wide aggregate view for the back office
type OverviewResponse struct {
	Revenue        decimal.Decimal  `json:"revenue"`
	OrderCount     int64            `json:"order_count"`
	OrdersByStatus map[string]int64 `json:"orders_by_status"`
	ProductCount   int64            `json:"product_count"`
	CustomerCount  int64            `json:"customer_count"`
	PendingReviews int64            `json:"pending_reviews"`
}

// CustomerResponse is one row of the back-office customer listing
type CustomerResponse struct {
	ID         uuid.UUID       `json:"id"`
	Email      string          `json:"email"`
	Name       string          `json:"name"`
	OrderCount int64           `json:"order_count"`
	TotalSpent decimal.Decimal `json:"total_spent"`
	JoinedAt   time.Time       `json:"joined_at"`
}
