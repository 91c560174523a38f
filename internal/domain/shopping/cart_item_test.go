package shopping

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestNewCartItem(t *testing.T) {
	item, err := NewCartItem(uuid.New(), uuid.New(), "black", "42", 3)

	assert.NoError(t, err)
	assert.Equal(t, 3, item.Quantity)
}

func TestNewCartItem_QuantityBelowOne(t *testing.T) {
	_, err := NewCartItem(uuid.New(), uuid.New(), "", "", 0)
	assert.Error(t, err)
}

func TestMergeClampsAtStock(t *testing.T) {
	// stock=5, cart has 3, add 4 more: clamps to 5, not 7
	item, _ := NewCartItem(uuid.New(), uuid.New(), "", "", 3)

	assert.NoError(t, item.Merge(4, 5))
	assert.Equal(t, 5, item.Quantity)
}

func TestMergeWithinStock(t *testing.T) {
	item, _ := NewCartItem(uuid.New(), uuid.New(), "", "", 1)

	assert.NoError(t, item.Merge(2, 5))
	assert.Equal(t, 3, item.Quantity)
}

func TestSetQuantityClamps(t *testing.T) {
	item, _ := NewCartItem(uuid.New(), uuid.New(), "", "", 1)

	assert.NoError(t, item.SetQuantity(99, 4))
	assert.Equal(t, 4, item.Quantity)

	assert.NoError(t, item.SetQuantity(2, 4))
	assert.Equal(t, 2, item.Quantity)
}

func TestSetQuantityBelowOne(t *testing.T) {
	item, _ := NewCartItem(uuid.New(), uuid.New(), "", "", 2)

	assert.Error(t, item.SetQuantity(0, 4))
	assert.Equal(t, 2, item.Quantity, "failed update must not change quantity")
}
