package order

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func testItems() []OrderItem {
	return []OrderItem{
		{ProductID: uuid.New(), ProductName: "Trail Runner XT", UnitPrice: decimal.NewFromInt(80), Quantity: 2},
		{ProductID: uuid.New(), ProductName: "Wool Socks", UnitPrice: decimal.RequireFromString("9.50"), Quantity: 3},
	}
}

func TestNewOrder(t *testing.T) {
	o, err := NewOrder(uuid.New(), uuid.New(), testItems())

	assert.NoError(t, err)
	assert.Equal(t, StatusPending, o.Status)
	assert.Equal(t, PaymentPending, o.PaymentStatus)
	assert.True(t, strings.HasPrefix(o.OrderNumber, "ORD-"))
	// 2*80 + 3*9.50 = 188.50
	assert.True(t, o.Total.Equal(decimal.RequireFromString("188.50")), "got %s", o.Total)
	for _, item := range o.Items {
		assert.Equal(t, o.ID, item.OrderID)
	}
}

func TestNewOrder_Empty(t *testing.T) {
	_, err := NewOrder(uuid.New(), uuid.New(), nil)
	assert.Error(t, err)
}

func TestChangeStatus_Permissive(t *testing.T) {
	o, _ := NewOrder(uuid.New(), uuid.New(), testItems())
	policy := PermissivePolicy()

	assert.NoError(t, o.ChangeStatus(StatusDelivered, policy))
	// admins may move orders backwards under the permissive policy
	assert.NoError(t, o.ChangeStatus(StatusPending, policy))
}

func TestChangeStatus_Strict(t *testing.T) {
	o, _ := NewOrder(uuid.New(), uuid.New(), testItems())
	policy := StrictStatusPolicy()

	assert.Error(t, o.ChangeStatus(StatusDelivered, policy))
	assert.Equal(t, StatusPending, o.Status)

	assert.NoError(t, o.ChangeStatus(StatusConfirmed, policy))
	assert.NoError(t, o.ChangeStatus(StatusProcessing, policy))
	assert.NoError(t, o.ChangeStatus(StatusShipped, policy))
	assert.Error(t, o.ChangeStatus(StatusCancelled, policy), "cannot cancel after shipping")
	assert.NoError(t, o.ChangeStatus(StatusDelivered, policy))
	assert.Error(t, o.ChangeStatus(StatusPending, policy), "delivered is terminal")
}

func TestChangePaymentStatus_IndependentOfStatus(t *testing.T) {
	o, _ := NewOrder(uuid.New(), uuid.New(), testItems())
	policy := PermissivePolicy()

	assert.NoError(t, o.ChangePaymentStatus(PaymentCompleted, policy))
	assert.Equal(t, StatusPending, o.Status, "fulfillment status untouched")
	assert.Equal(t, PaymentCompleted, o.PaymentStatus)
}

func TestStrictPaymentPolicy(t *testing.T) {
	policy := StrictPaymentPolicy()

	assert.True(t, policy.Allowed("pending", "processing"))
	assert.True(t, policy.Allowed("completed", "refunded"))
	assert.False(t, policy.Allowed("pending", "refunded"))
	assert.False(t, policy.Allowed("refunded", "pending"))
	assert.True(t, policy.Allowed("pending", "pending"), "self transition is a no-op")
}

func TestParseStatus(t *testing.T) {
	_, err := ParseStatus("shipped")
	assert.NoError(t, err)

	_, err = ParseStatus("teleported")
	assert.Error(t, err)

	_, err = ParsePaymentStatus("refunded")
	assert.NoError(t, err)

	_, err = ParsePaymentStatus("iou")
	assert.Error(t, err)
}
