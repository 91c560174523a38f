package order

import (
	"context"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/order"
	"github.com/storefront/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// OrderService handles order queries and status management. Which transitions
// the two status fields accept is decided by the injected policies, not by
// this service.
type OrderService struct {
	orderRepo     order.OrderRepository
	statusPolicy  order.TransitionPolicy
	paymentPolicy order.TransitionPolicy
	logger        *zap.Logger
}

// NewOrderService creates a new OrderService
func NewOrderService(
	orderRepo order.OrderRepository,
	statusPolicy order.TransitionPolicy,
	paymentPolicy order.TransitionPolicy,
	logger *zap.Logger,
) *OrderService {
	return &OrderService{
		orderRepo:     orderRepo,
		statusPolicy:  statusPolicy,
		paymentPolicy: paymentPolicy,
		logger:        logger,
	}
}

// GetForUser retrieves an order, hiding other users' orders behind not-found
func (s *OrderService) GetForUser(ctx context.Context, userID, orderID uuid.UUID) (*OrderResponse, error) {
	o, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o.UserID != userID {
		return nil, shared.ErrNotFound
	}
	resp := ToOrderResponse(o)
	return &resp, nil
}

// Get retrieves any order by ID for the back office
func (s *OrderService) Get(ctx context.Context, orderID uuid.UUID) (*OrderResponse, error) {
	o, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	resp := ToOrderResponse(o)
	return &resp, nil
}

// ListForUser lists a user's orders, newest first
func (s *OrderService) ListForUser(ctx context.Context, userID uuid.UUID, page, pageSize int) ([]OrderResponse, int64, error) {
	filter := shared.DefaultFilter()
	if page > 0 && pageSize > 0 {
		filter.Page = page
		filter.PageSize = pageSize
	}

	orders, err := s.orderRepo.FindByUser(ctx, userID, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.orderRepo.CountByUser(ctx, userID)
	if err != nil {
		return nil, 0, err
	}
	return toOrderResponses(orders), total, nil
}

// List lists all orders for the back office, optionally narrowed by status
func (s *OrderService) List(ctx context.Context, listFilter OrderListFilter) ([]OrderResponse, int64, error) {
	filter := shared.DefaultFilter()
	if listFilter.Page > 0 && listFilter.PageSize > 0 {
		filter.Page = listFilter.Page
		filter.PageSize = listFilter.PageSize
	}
	if listFilter.Status != "" {
		status, err := order.ParseStatus(listFilter.Status)
		if err != nil {
			return nil, 0, err
		}
		filter.Filters["status"] = status
	}
	if listFilter.PaymentStatus != "" {
		paymentStatus, err := order.ParsePaymentStatus(listFilter.PaymentStatus)
		if err != nil {
			return nil, 0, err
		}
		filter.Filters["payment_status"] = paymentStatus
	}

	orders, err := s.orderRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.orderRepo.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return toOrderResponses(orders), total, nil
}

// UpdateStatus moves an order to a new fulfillment status if the configured
// policy allows the transition.
func (s *OrderService) UpdateStatus(ctx context.Context, orderID uuid.UUID, status string) (*OrderResponse, error) {
	target, err := order.ParseStatus(status)
	if err != nil {
		return nil, err
	}

	o, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if err := o.ChangeStatus(target, s.statusPolicy); err != nil {
		return nil, err
	}
	if err := s.orderRepo.Save(ctx, o); err != nil {
		return nil, err
	}

	s.logger.Info("Order status updated",
		zap.String("order_id", o.ID.String()),
		zap.String("status", string(o.Status)))

	resp := ToOrderResponse(o)
	return &resp, nil
}

// UpdatePaymentStatus moves an order to a new payment status if the
// configured policy allows the transition.
func (s *OrderService) UpdatePaymentStatus(ctx context.Context, orderID uuid.UUID, paymentStatus string) (*OrderResponse, error) {
	target, err := order.ParsePaymentStatus(paymentStatus)
	if err != nil {
		return nil, err
	}

	o, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if err := o.ChangePaymentStatus(target, s.paymentPolicy); err != nil {
		return nil, err
	}
	if err := s.orderRepo.Save(ctx, o); err != nil {
		return nil, err
	}

	s.logger.Info("Order payment status updated",
		zap.String("order_id", o.ID.String()),
		zap.String("payment_status", string(o.PaymentStatus)))

	resp := ToOrderResponse(o)
	return &resp, nil
}

func toOrderResponses(orders []order.Order) []OrderResponse {
	responses := make([]OrderResponse, len(orders))
	for i := range orders {
		responses[i] = ToOrderResponse(&orders[i])
	}
	return responses
}
