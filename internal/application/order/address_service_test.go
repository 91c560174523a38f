package order

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/order"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestAddressService() (*AddressService, *MockAddressRepository, *MockOrderRepository) {
	addressRepo := new(MockAddressRepository)
	orderRepo := new(MockOrderRepository)
	service := NewAddressService(addressRepo, orderRepo, zap.NewNop())
	return service, addressRepo, orderRepo
}

func mustAddress(t *testing.T, userID uuid.UUID) *order.Address {
	t.Helper()
	address, err := order.NewAddress(userID, "Sam Doe", "555-0100",
		"1 Main St", "", "Springfield", "IL", "12345", "US")
	require.NoError(t, err)
	return address
}

func addressInput() AddressInput {
	return AddressInput{
		FullName:   "Sam Doe",
		Phone:      "555-0100",
		Line1:      "1 Main St",
		City:       "Springfield",
		State:      "IL",
		PostalCode: "12345",
		Country:    "US",
	}
}

func TestAddressService_Create_FirstAddressBecomesDefault(t *testing.T) {
	service, addressRepo, _ := newTestAddressService()
	ctx := context.Background()
	userID := uuid.New()

	addressRepo.On("FindByUser", ctx, userID).Return([]order.Address{}, nil)
	addressRepo.On("Save", ctx, mock.MatchedBy(func(a *order.Address) bool {
		return a.IsDefault
	})).Return(nil)

	resp, err := service.Create(ctx, userID, addressInput())

	require.NoError(t, err)
	assert.True(t, resp.IsDefault)
	addressRepo.AssertNotCalled(t, "SetDefault", mock.Anything, mock.Anything, mock.Anything)
}

func TestAddressService_Create_SecondAddressIsNotDefault(t *testing.T) {
	service, addressRepo, _ := newTestAddressService()
	ctx := context.Background()
	userID := uuid.New()

	existing := mustAddress(t, userID)
	existing.IsDefault = true

	addressRepo.On("FindByUser", ctx, userID).Return([]order.Address{*existing}, nil)
	addressRepo.On("Save", ctx, mock.MatchedBy(func(a *order.Address) bool {
		return !a.IsDefault
	})).Return(nil)

	resp, err := service.Create(ctx, userID, addressInput())

	require.NoError(t, err)
	assert.False(t, resp.IsDefault)
}

func TestAddressService_Create_ExplicitDefaultSwaps(t *testing.T) {
	service, addressRepo, _ := newTestAddressService()
	ctx := context.Background()
	userID := uuid.New()

	existing := mustAddress(t, userID)
	existing.IsDefault = true

	addressRepo.On("FindByUser", ctx, userID).Return([]order.Address{*existing}, nil)
	addressRepo.On("Save", ctx, mock.AnythingOfType("*order.Address")).Return(nil)
	addressRepo.On("SetDefault", ctx, userID, mock.AnythingOfType("uuid.UUID")).Return(nil)

	input := addressInput()
	input.IsDefault = true
	resp, err := service.Create(ctx, userID, input)

	require.NoError(t, err)
	assert.True(t, resp.IsDefault)
	addressRepo.AssertExpectations(t)
}

func TestAddressService_Create_InvalidAddress(t *testing.T) {
	service, addressRepo, _ := newTestAddressService()

	input := addressInput()
	input.Line1 = "   "
	_, err := service.Create(context.Background(), uuid.New(), input)

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_ADDRESS", domainErr.Code)
	addressRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestAddressService_Delete_BlockedByOrders(t *testing.T) {
	service, addressRepo, orderRepo := newTestAddressService()
	ctx := context.Background()
	userID := uuid.New()

	address := mustAddress(t, userID)
	addressRepo.On("FindByID", ctx, address.ID).Return(address, nil)
	orderRepo.On("CountByAddress", ctx, address.ID).Return(int64(2), nil)

	err := service.Delete(ctx, userID, address.ID)

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "DEPENDENCY_CONFLICT", domainErr.Code)
	assert.Equal(t, int64(2), domainErr.Details["reference_count"])
	addressRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestAddressService_Delete_DefaultPromotesRemaining(t *testing.T) {
	service, addressRepo, orderRepo := newTestAddressService()
	ctx := context.Background()
	userID := uuid.New()

	address := mustAddress(t, userID)
	address.IsDefault = true
	survivor := mustAddress(t, userID)

	addressRepo.On("FindByID", ctx, address.ID).Return(address, nil)
	orderRepo.On("CountByAddress", ctx, address.ID).Return(int64(0), nil)
	addressRepo.On("Delete", ctx, address.ID).Return(nil)
	addressRepo.On("FindByUser", ctx, userID).Return([]order.Address{*survivor}, nil)
	addressRepo.On("SetDefault", ctx, userID, survivor.ID).Return(nil)

	require.NoError(t, service.Delete(ctx, userID, address.ID))
	addressRepo.AssertExpectations(t)
}

func TestAddressService_Delete_ForeignAddress(t *testing.T) {
	service, addressRepo, orderRepo := newTestAddressService()
	ctx := context.Background()

	address := mustAddress(t, uuid.New())
	addressRepo.On("FindByID", ctx, address.ID).Return(address, nil)

	err := service.Delete(ctx, uuid.New(), address.ID)

	assert.ErrorIs(t, err, shared.ErrNotFound)
	orderRepo.AssertNotCalled(t, "CountByAddress", mock.Anything, mock.Anything)
}

func TestAddressService_SetDefault_UnknownAddress(t *testing.T) {
	service, addressRepo, _ := newTestAddressService()
	ctx := context.Background()
	userID, addressID := uuid.New(), uuid.New()

	addressRepo.On("SetDefault", ctx, userID, addressID).Return(shared.ErrNotFound)

	err := service.SetDefault(ctx, userID, addressID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}
