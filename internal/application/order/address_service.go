package order

import (
	"context"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/order"
	"github.com/storefront/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// AddressService handles shipping address operations. The single-default
// invariant is maintained by the repository's transactional swap; this
// service decides when the swap runs.
type AddressService struct {
	addressRepo order.AddressRepository
	orderRepo   order.OrderRepository
	logger      *zap.Logger
}

// NewAddressService creates a new AddressService
func NewAddressService(
	addressRepo order.AddressRepository,
	orderRepo order.OrderRepository,
	logger *zap.Logger,
) *AddressService {
	return &AddressService{
		addressRepo: addressRepo,
		orderRepo:   orderRepo,
		logger:      logger,
	}
}

// Create adds a shipping address. The user's first address becomes the
// default automatically; an explicit request swaps the default afterwards.
func (s *AddressService) Create(ctx context.Context, userID uuid.UUID, input AddressInput) (*AddressResponse, error) {
	address, err := order.NewAddress(userID,
		input.FullName, input.Phone, input.Line1, input.Line2,
		input.City, input.State, input.PostalCode, input.Country)
	if err != nil {
		return nil, err
	}

	existing, err := s.addressRepo.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	address.IsDefault = len(existing) == 0

	if err := s.addressRepo.Save(ctx, address); err != nil {
		return nil, err
	}

	if input.IsDefault && !address.IsDefault {
		if err := s.addressRepo.SetDefault(ctx, userID, address.ID); err != nil {
			return nil, err
		}
		address.IsDefault = true
	}

	s.logger.Info("Address created",
		zap.String("user_id", userID.String()),
		zap.String("address_id", address.ID.String()))

	resp := ToAddressResponse(address)
	return &resp, nil
}

// Update replaces an address's fields
func (s *AddressService) Update(ctx context.Context, userID, addressID uuid.UUID, input AddressInput) (*AddressResponse, error) {
	address, err := s.findOwned(ctx, userID, addressID)
	if err != nil {
		return nil, err
	}

	if err := address.Update(
		input.FullName, input.Phone, input.Line1, input.Line2,
		input.City, input.State, input.PostalCode, input.Country); err != nil {
		return nil, err
	}
	if err := s.addressRepo.Save(ctx, address); err != nil {
		return nil, err
	}

	if input.IsDefault && !address.IsDefault {
		if err := s.addressRepo.SetDefault(ctx, userID, address.ID); err != nil {
			return nil, err
		}
		address.IsDefault = true
	}

	resp := ToAddressResponse(address)
	return &resp, nil
}

// List returns the user's addresses, default first
func (s *AddressService) List(ctx context.Context, userID uuid.UUID) ([]AddressResponse, error) {
	addresses, err := s.addressRepo.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	responses := make([]AddressResponse, len(addresses))
	for i := range addresses {
		responses[i] = ToAddressResponse(&addresses[i])
	}
	return responses, nil
}

// SetDefault makes an address the user's default, demoting the previous one
// in the same transaction.
func (s *AddressService) SetDefault(ctx context.Context, userID, addressID uuid.UUID) error {
	if err := s.addressRepo.SetDefault(ctx, userID, addressID); err != nil {
		return err
	}
	s.logger.Info("Default address changed",
		zap.String("user_id", userID.String()),
		zap.String("address_id", addressID.String()))
	return nil
}

// Delete removes an address unless orders still ship to it
func (s *AddressService) Delete(ctx context.Context, userID, addressID uuid.UUID) error {
	address, err := s.findOwned(ctx, userID, addressID)
	if err != nil {
		return err
	}

	count, err := s.orderRepo.CountByAddress(ctx, addressID)
	if err != nil {
		return err
	}
	if count > 0 {
		return shared.NewDependencyConflictError("Address is referenced by existing orders", count)
	}

	if err := s.addressRepo.Delete(ctx, addressID); err != nil {
		return err
	}

	// Deleting the default leaves the most recent remaining address in charge.
	if address.IsDefault {
		remaining, err := s.addressRepo.FindByUser(ctx, userID)
		if err != nil {
			return err
		}
		if len(remaining) > 0 {
			if err := s.addressRepo.SetDefault(ctx, userID, remaining[0].ID); err != nil {
				return err
			}
		}
	}

	s.logger.Info("Address deleted",
		zap.String("user_id", userID.String()),
		zap.String("address_id", addressID.String()))
	return nil
}

func (s *AddressService) findOwned(ctx context.Context, userID, addressID uuid.UUID) (*order.Address, error) {
	address, err := s.addressRepo.FindByID(ctx, addressID)
	if err != nil {
		return nil, err
	}
	if address.UserID != userID {
		return nil, shared.ErrNotFound
	}
	return address, nil
}
