package dashboard

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/identity"
	"github.com/storefront/backend/internal/domain/order"
	"github.com/storefront/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// DashboardService computes the back-office overview from live aggregate
// queries; nothing here is cached or denormalized.
type DashboardService struct {
	orderRepo   order.OrderRepository
	productRepo catalog.ProductRepository
	reviewRepo  catalog.ReviewRepository
	userRepo    identity.UserRepository
	logger      *zap.Logger
}

// NewDashboardService creates a new DashboardService
func NewDashboardService(
	orderRepo order.OrderRepository,
	productRepo catalog.ProductRepository,
	reviewRepo catalog.ReviewRepository,
	userRepo identity.UserRepository,
	logger *zap.Logger,
) *DashboardService {
	return &DashboardService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		reviewRepo:  reviewRepo,
		userRepo:    userRepo,
		logger:      logger,
	}
}

// Overview collects the store-wide aggregates shown on the admin landing page
func (s *DashboardService) Overview(ctx context.Context) (*OverviewResponse, error) {
	revenue, err := s.orderRepo.Revenue(ctx)
	if err != nil {
		return nil, err
	}
	statusCounts, err := s.orderRepo.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}

	unpaged := shared.Filter{Filters: map[string]interface{}{}}
	productCount, err := s.productRepo.Count(ctx, unpaged)
	if err != nil {
		return nil, err
	}

	customerFilter := shared.Filter{Filters: map[string]interface{}{
		"role": identity.RoleCustomer,
	}}
	customerCount, err := s.userRepo.Count(ctx, customerFilter)
	if err != nil {
		return nil, err
	}

	pendingReviews, err := s.reviewRepo.CountByStatus(ctx, catalog.ReviewStatusPending)
	if err != nil {
		return nil, err
	}

	resp := &OverviewResponse{
		Revenue:        revenue,
		ProductCount:   productCount,
		CustomerCount:  customerCount,
		PendingReviews: pendingReviews,
		OrdersByStatus: map[string]int64{},
	}
	for status, count := range statusCounts {
		resp.OrdersByStatus[string(status)] = count
		resp.OrderCount += count
	}
	return resp, nil
}

// Customers lists customer accounts with their order count and lifetime spend
func (s *DashboardService) Customers(ctx context.Context, page, pageSize int) ([]CustomerResponse, int64, error) {
	filter := shared.DefaultFilter()
	if page > 0 && pageSize > 0 {
		filter.Page = page
		filter.PageSize = pageSize
	}
	filter.Filters["role"] = identity.RoleCustomer

	users, err := s.userRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.userRepo.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	summaries, err := s.orderRepo.CustomerSummaries(ctx)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]CustomerResponse, len(users))
	for i := range users {
		user := &users[i]
		summary := summaries[user.ID]
		spent := summary.Total
		if summary.OrderCount == 0 {
			spent = decimal.Zero
		}
		responses[i] = CustomerResponse{
			ID:         user.ID,
			Email:      user.Email,
			Name:       user.Name,
			OrderCount: summary.OrderCount,
			TotalSpent: spent,
			JoinedAt:   user.CreatedAt,
		}
	}
	return responses, total, nil
}
