package shopping

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/order"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/shopping"
	"go.uber.org/zap"
)

// CartService handles cart operations. A first insert must be fully coverable
// by stock; merges and quantity updates clamp to available stock, and every
// read reconciles lines against live stock, so a cart can never promise more
// units than the catalog holds at that moment.
type CartService struct {
	cartRepo    shopping.CartRepository
	productRepo catalog.ProductRepository
	orderRepo   order.OrderRepository
	addressRepo order.AddressRepository
	logger      *zap.Logger
}

// NewCartService creates a new CartService
func NewCartService(
	cartRepo shopping.CartRepository,
	productRepo catalog.ProductRepository,
	orderRepo order.OrderRepository,
	addressRepo order.AddressRepository,
	logger *zap.Logger,
) *CartService {
	return &CartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
		orderRepo:   orderRepo,
		addressRepo: addressRepo,
		logger:      logger,
	}
}

// Get returns the user's cart enriched with live product data. Lines whose
// product disappeared or sold out are dropped; quantities above current stock
// are clamped and persisted.
func (s *CartService) Get(ctx context.Context, userID uuid.UUID) (*CartResponse, error) {
	items, err := s.cartRepo.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	products, err := s.loadProducts(ctx, items)
	if err != nil {
		return nil, err
	}

	resp := &CartResponse{Items: []CartItemResponse{}, Subtotal: decimal.Zero}
	for i := range items {
		item := &items[i]
		product, ok := products[item.ProductID]
		if !ok || product.Stock == 0 {
			if err := s.cartRepo.Delete(ctx, item.ID); err != nil && !errors.Is(err, shared.ErrNotFound) {
				return nil, err
			}
			continue
		}
		if item.Quantity > product.Stock {
			if err := item.SetQuantity(item.Quantity, product.Stock); err != nil {
				return nil, err
			}
			if err := s.cartRepo.Save(ctx, item); err != nil {
				return nil, err
			}
		}

		line := toCartItemResponse(item, product)
		resp.Items = append(resp.Items, line)
		resp.ItemCount += line.Quantity
		resp.Subtotal = resp.Subtotal.Add(line.Subtotal)
	}
	return resp, nil
}

// Add puts a product variant in the cart. A first insert requires the full
// requested quantity in stock; adding an existing variant merges quantities,
// silently capped at available stock.
func (s *CartService) Add(ctx context.Context, input AddToCartInput) (*CartResponse, error) {
	if input.Quantity < 1 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be at least 1")
	}

	product, err := s.productRepo.FindByID(ctx, input.ProductID)
	if err != nil {
		return nil, err
	}
	if product.Stock == 0 {
		return nil, shared.ErrInsufficientStock
	}

	existing, err := s.cartRepo.FindVariant(ctx, input.UserID, input.ProductID, input.Color, input.Size)
	switch {
	case err == nil:
		if err := existing.Merge(input.Quantity, product.Stock); err != nil {
			return nil, err
		}
		if err := s.cartRepo.Save(ctx, existing); err != nil {
			return nil, err
		}
	case errors.Is(err, shared.ErrNotFound):
		if product.Stock < input.Quantity {
			return nil, shared.ErrInsufficientStock
		}
		item, err := shopping.NewCartItem(
			input.UserID, input.ProductID, input.Color, input.Size,
			input.Quantity,
		)
		if err != nil {
			return nil, err
		}
		if err := s.cartRepo.Save(ctx, item); err != nil {
			return nil, err
		}
	default:
		return nil, err
	}

	s.logger.Info("Cart item added",
		zap.String("user_id", input.UserID.String()),
		zap.String("product_id", input.ProductID.String()))

	return s.Get(ctx, input.UserID)
}

// UpdateQuantity replaces a cart line's quantity, capped at available stock
func (s *CartService) UpdateQuantity(ctx context.Context, userID, itemID uuid.UUID, quantity int) (*CartResponse, error) {
	item, err := s.findOwnedItem(ctx, userID, itemID)
	if err != nil {
		return nil, err
	}

	product, err := s.productRepo.FindByID(ctx, item.ProductID)
	if err != nil {
		return nil, err
	}

	if err := item.SetQuantity(quantity, product.Stock); err != nil {
		return nil, err
	}
	if err := s.cartRepo.Save(ctx, item); err != nil {
		return nil, err
	}
	return s.Get(ctx, userID)
}

// Remove deletes a cart line
func (s *CartService) Remove(ctx context.Context, userID, itemID uuid.UUID) error {
	item, err := s.findOwnedItem(ctx, userID, itemID)
	if err != nil {
		return err
	}
	return s.cartRepo.Delete(ctx, item.ID)
}

// Clear empties the user's cart
func (s *CartService) Clear(ctx context.Context, userID uuid.UUID) error {
	return s.cartRepo.DeleteByUser(ctx, userID)
}

// StockCheck reports, line by line, whether the cart can currently be
// fulfilled without mutating anything.
func (s *CartService) StockCheck(ctx context.Context, userID uuid.UUID) (*StockCheckResponse, error) {
	items, err := s.cartRepo.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	products, err := s.loadProducts(ctx, items)
	if err != nil {
		return nil, err
	}

	resp := &StockCheckResponse{Items: []StockCheckItem{}, AllAvailable: true}
	for i := range items {
		item := &items[i]
		available := 0
		if product, ok := products[item.ProductID]; ok {
			available = product.Stock
		}
		line := StockCheckItem{
			ProductID:   item.ProductID,
			Color:       item.Color,
			Size:        item.Size,
			Requested:   item.Quantity,
			Available:   available,
			Fulfillable: available >= item.Quantity,
		}
		if !line.Fulfillable {
			resp.AllAvailable = false
		}
		resp.Items = append(resp.Items, line)
	}
	return resp, nil
}

// StockCheckItems reports fulfillability for explicit (product, quantity)
// pairs without touching the stored cart. Unknown products report zero
// availability instead of failing the whole check.
func (s *CartService) StockCheckItems(ctx context.Context, requests []StockCheckRequestItem) (*StockCheckResponse, error) {
	resp := &StockCheckResponse{Items: []StockCheckItem{}, AllAvailable: true}
	if len(requests) == 0 {
		return resp, nil
	}

	ids := make([]uuid.UUID, 0, len(requests))
	for _, req := range requests {
		ids = append(ids, req.ProductID)
	}
	products, err := s.productRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]*catalog.Product, len(products))
	for i := range products {
		byID[products[i].ID] = &products[i]
	}

	for _, req := range requests {
		available := 0
		if product, ok := byID[req.ProductID]; ok {
			available = product.Stock
		}
		line := StockCheckItem{
			ProductID:   req.ProductID,
			Requested:   req.Quantity,
			Available:   available,
			Fulfillable: available >= req.Quantity,
		}
		if !line.Fulfillable {
			resp.AllAvailable = false
		}
		resp.Items = append(resp.Items, line)
	}
	return resp, nil
}

// Checkout turns the cart into a pending order. Stock is reserved per line
// with an atomic compare-and-decrement inside one transaction; any line short
// on stock aborts the whole checkout. On success the cart is cleared.
func (s *CartService) Checkout(ctx context.Context, input CheckoutInput) (*CheckoutResponse, error) {
	items, err := s.cartRepo.FindByUser(ctx, input.UserID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, shared.NewDomainError("EMPTY_CART", "Cart is empty")
	}

	address, err := s.addressRepo.FindByID(ctx, input.AddressID)
	if err != nil {
		return nil, err
	}
	if address.UserID != input.UserID {
		return nil, shared.ErrNotFound
	}

	products, err := s.loadProducts(ctx, items)
	if err != nil {
		return nil, err
	}

	orderItems := make([]order.OrderItem, 0, len(items))
	reservations := make([]order.StockReservation, 0, len(items))
	for i := range items {
		item := &items[i]
		product, ok := products[item.ProductID]
		if !ok {
			return nil, shared.NewDomainError("INVALID_CART",
				"Cart references a product that no longer exists")
		}
		orderItems = append(orderItems, order.OrderItem{
			BaseEntity:  shared.NewBaseEntity(),
			ProductID:   product.ID,
			ProductName: product.Name,
			ImageURL:    product.ImageURL,
			Color:       item.Color,
			Size:        item.Size,
			UnitPrice:   product.Price,
			Quantity:    item.Quantity,
		})
		reservations = append(reservations, order.StockReservation{
			ProductID: product.ID,
			Quantity:  item.Quantity,
		})
	}

	o, err := order.NewOrder(input.UserID, input.AddressID, orderItems)
	if err != nil {
		return nil, err
	}

	if err := s.orderRepo.PlaceOrder(ctx, o, reservations); err != nil {
		return nil, err
	}
	if err := s.cartRepo.DeleteByUser(ctx, input.UserID); err != nil {
		// The order exists; a stale cart is recoverable, losing the order is not.
		s.logger.Warn("Failed to clear cart after checkout",
			zap.String("user_id", input.UserID.String()),
			zap.Error(err))
	}

	s.logger.Info("Order placed",
		zap.String("order_id", o.ID.String()),
		zap.String("order_number", o.OrderNumber),
		zap.String("user_id", input.UserID.String()))

	return &CheckoutResponse{
		OrderID:       o.ID,
		OrderNumber:   o.OrderNumber,
		Total:         o.Total,
		Status:        string(o.Status),
		PaymentStatus: string(o.PaymentStatus),
	}, nil
}

func (s *CartService) findOwnedItem(ctx context.Context, userID, itemID uuid.UUID) (*shopping.CartItem, error) {
	item, err := s.cartRepo.FindByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item.UserID != userID {
		return nil, shared.ErrNotFound
	}
	return item, nil
}

func (s *CartService) loadProducts(ctx context.Context, items []shopping.CartItem) (map[uuid.UUID]*catalog.Product, error) {
	if len(items) == 0 {
		return map[uuid.UUID]*catalog.Product{}, nil
	}

	seen := make(map[uuid.UUID]struct{}, len(items))
	ids := make([]uuid.UUID, 0, len(items))
	for i := range items {
		if _, ok := seen[items[i].ProductID]; ok {
			continue
		}
		seen[items[i].ProductID] = struct{}{}
		ids = append(ids, items[i].ProductID)
	}

	products, err := s.productRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	byID := make(map[uuid.UUID]*catalog.Product, len(products))
	for i := range products {
		byID[products[i].ID] = &products[i]
	}
	return byID, nil
}
