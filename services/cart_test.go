package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddToCartComputesTotal(t *testing.T) {
	db := newTestDB(t)
	cart := NewCartService(db)
	userID := uuid.New()

	item, err := cart.AddToCart(userID, uuid.New(), "Compost Mix", 450.0, "bag", 3)
	require.NoError(t, err)
	assert.Equal(t, 1350.0, item.TotalAmount)

	items, err := cart.GetUserCartItems(userID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 1350.0, items[0].TotalAmount)
}

func TestAddToCartRejectsNonPositiveQuantity(t *testing.T) {
	db := newTestDB(t)
	cart := NewCartService(db)

	_, err := cart.AddToCart(uuid.New(), uuid.New(), "Compost Mix", 450.0, "bag", 0)
	assert.Error(t, err)
}

func TestUpdateQuantityRecomputesTotal(t *testing.T) {
	db := newTestDB(t)
	cart := NewCartService(db)
	userID := uuid.New()

	item, err := cart.AddToCart(userID, uuid.New(), "Organic Pellets", 120.5, "kg", 2)
	require.NoError(t, err)

	require.NoError(t, cart.UpdateCartItemQuantity(userID, item.ID, 7))

	items, err := cart.GetUserCartItems(userID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 7, items[0].Quantity)
	assert.Equal(t, 7*120.5, items[0].TotalAmount)
}

func TestUpdateQuantityZeroRemovesItem(t *testing.T) {
	db := newTestDB(t)
	cart := NewCartService(db)
	userID := uuid.New()

	item, err := cart.AddToCart(userID, uuid.New(), "Organic Pellets", 120.5, "kg", 2)
	require.NoError(t, err)

	require.NoError(t, cart.UpdateCartItemQuantity(userID, item.ID, 0))

	items, err := cart.GetUserCartItems(userID)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestRemoveFromCartNotFound(t *testing.T) {
	db := newTestDB(t)
	cart := NewCartService(db)

	err := cart.RemoveFromCart(uuid.New(), uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestClearCart(t *testing.T) {
	db := newTestDB(t)
	cart := NewCartService(db)
	userID := uuid.New()
	otherUser := uuid.New()

	for i := 0; i < 3; i++ {
		_, err := cart.AddToCart(userID, uuid.New(), "Compost Mix", 450.0, "bag", 1)
		require.NoError(t, err)
	}
	_, err := cart.AddToCart(otherUser, uuid.New(), "Compost Mix", 450.0, "bag", 1)
	require.NoError(t, err)

	require.NoError(t, cart.ClearCart(userID))

	items, err := cart.GetUserCartItems(userID)
	require.NoError(t, err)
	assert.Empty(t, items)

	// Other carts are untouched
	others, err := cart.GetUserCartItems(otherUser)
	require.NoError(t, err)
	assert.Len(t, others, 1)
}

func TestCartOrderedNewestFirst(t *testing.T) {
	db := newTestDB(t)
	cart := NewCartService(db)
	userID := uuid.New()

	names := []string{"first", "second", "third"}
	for _, name := range names {
		_, err := cart.AddToCart(userID, uuid.New(), name, 100, "kg", 1)
		require.NoError(t, err)
		time.Sleep(2 * time.Millisecond)
	}

	items, err := cart.GetUserCartItems(userID)
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, "third", items[0].FertilizerName)
	assert.Equal(t, "first", items[2].FertilizerName)
}
