package shopping

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/shopping"
	"go.uber.org/zap"
)

// WishlistService handles wishlist operations
type WishlistService struct {
	wishlistRepo shopping.WishlistRepository
	productRepo  catalog.ProductRepository
	logger       *zap.Logger
}

// NewWishlistService creates a new WishlistService
func NewWishlistService(
	wishlistRepo shopping.WishlistRepository,
	productRepo catalog.ProductRepository,
	logger *zap.Logger,
) *WishlistService {
	return &WishlistService{
		wishlistRepo: wishlistRepo,
		productRepo:  productRepo,
		logger:       logger,
	}
}

// Add puts a product on the user's wishlist. A product already on the list
// is a conflict, not a silent no-op.
func (s *WishlistService) Add(ctx context.Context, userID, productID uuid.UUID) (*WishlistItemResponse, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	exists, err := s.wishlistRepo.ExistsByUserAndProduct(ctx, userID, productID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Product is already on the wishlist")
	}

	item := shopping.NewWishlistItem(userID, productID)
	if err := s.wishlistRepo.Save(ctx, item); err != nil {
		if errors.Is(err, shared.ErrAlreadyExists) {
			return nil, shared.NewDomainError("ALREADY_EXISTS", "Product is already on the wishlist")
		}
		return nil, err
	}

	s.logger.Info("Wishlist item added",
		zap.String("user_id", userID.String()),
		zap.String("product_id", productID.String()))

	resp := toWishlistItemResponse(item, product)
	return &resp, nil
}

// List returns the user's wishlist enriched with live product data, newest
// first. Entries whose product was removed from the catalog are skipped.
func (s *WishlistService) List(ctx context.Context, userID uuid.UUID) ([]WishlistItemResponse, error) {
	items, err := s.wishlistRepo.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return []WishlistItemResponse{}, nil
	}

	ids := make([]uuid.UUID, len(items))
	for i := range items {
		ids[i] = items[i].ProductID
	}
	products, err := s.productRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]*catalog.Product, len(products))
	for i := range products {
		byID[products[i].ID] = &products[i]
	}

	responses := make([]WishlistItemResponse, 0, len(items))
	for i := range items {
		product, ok := byID[items[i].ProductID]
		if !ok {
			continue
		}
		responses = append(responses, toWishlistItemResponse(&items[i], product))
	}
	return responses, nil
}

// Remove takes a product off the user's wishlist
func (s *WishlistService) Remove(ctx context.Context, userID, productID uuid.UUID) error {
	if err := s.wishlistRepo.DeleteByUserAndProduct(ctx, userID, productID); err != nil {
		return err
	}
	s.logger.Info("Wishlist item removed",
		zap.String("user_id", userID.String()),
		zap.String("product_id", productID.String()))
	return nil
}
