package impl

import (
	"testing"

	"sokoni/internal/domain/entity"
	"sokoni/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCartFixture() (usecase.CartStore, *memorySnapshotStore) {
	snapshots := newMemorySnapshotStore()
	store := NewCartStore(CartStoreParams{Snapshots: snapshots, Logger: testLogger()})

	return store, snapshots
}

func TestCartStore_AddAndTotals(t *testing.T) {
	store, _ := newCartFixture()
	productID := uuid.New()

	store.AddToCart(entity.CartItem{
		ProductID: productID,
		Title:     "Kiondo basket",
		UnitPrice: 2_500,
		Quantity:  2,
	})

	require.Len(t, store.Items(), 1)
	assert.Equal(t, int64(5_000), store.TotalPrice())
	assert.Equal(t, 2, store.TotalItems())
}

func TestCartStore_MergeByProductAndCustomizations(t *testing.T) {
	store, _ := newCartFixture()
	productID := uuid.New()

	plain := entity.CartItem{ProductID: productID, UnitPrice: 1_000, Quantity: 1}
	engravedRed := entity.CartItem{
		ProductID:      productID,
		UnitPrice:      1_000,
		Quantity:       1,
		Customizations: map[string]string{"engraving": "A", "color": "red"},
		Surcharge:      200,
	}
	// Same choices in a different declaration order must merge.
	engravedRedAgain := entity.CartItem{
		ProductID:      productID,
		UnitPrice:      1_000,
		Quantity:       2,
		Customizations: map[string]string{"color": "red", "engraving": "A"},
		Surcharge:      200,
	}

	store.AddToCart(plain)
	store.AddToCart(engravedRed)
	store.AddToCart(engravedRedAgain)

	items := store.Items()
	require.Len(t, items, 2)

	var merged entity.CartItem
	for _, item := range items {
		if len(item.Customizations) > 0 {
			merged = item
		}
	}
	assert.Equal(t, 3, merged.Quantity)
	assert.Equal(t, int64(3*1_000+200), merged.TotalPrice)
}

func TestCartStore_UpdateQuantityRecomputesTotal(t *testing.T) {
	store, _ := newCartFixture()
	productID := uuid.New()

	store.AddToCart(entity.CartItem{
		ProductID: productID,
		UnitPrice: 1_500,
		Quantity:  1,
		Surcharge: 300,
	})

	store.UpdateQuantity(productID, 4)

	items := store.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 4, items[0].Quantity)
	assert.Equal(t, int64(4*1_500+300), items[0].TotalPrice)
}

func TestCartStore_UpdateQuantityClampsToOne(t *testing.T) {
	store, _ := newCartFixture()
	productID := uuid.New()

	store.AddToCart(entity.CartItem{ProductID: productID, UnitPrice: 1_000, Quantity: 3})

	store.UpdateQuantity(productID, 0)

	items := store.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 1, items[0].Quantity)

	store.UpdateQuantity(productID, -5)
	assert.Equal(t, 1, store.Items()[0].Quantity)
}

func TestCartStore_RemoveAndClear(t *testing.T) {
	store, _ := newCartFixture()
	first := uuid.New()
	second := uuid.New()

	store.AddToCart(entity.CartItem{ProductID: first, UnitPrice: 1_000, Quantity: 1})
	store.AddToCart(entity.CartItem{ProductID: second, UnitPrice: 2_000, Quantity: 1})

	store.RemoveFromCart(first)
	require.Len(t, store.Items(), 1)
	assert.Equal(t, second, store.Items()[0].ProductID)

	// Removing an absent product is a no-op.
	store.RemoveFromCart(first)
	require.Len(t, store.Items(), 1)

	store.Clear()
	assert.Empty(t, store.Items())
	assert.Equal(t, int64(0), store.TotalPrice())
}

func TestCartStore_SnapshotRoundTrip(t *testing.T) {
	store, snapshots := newCartFixture()
	productID := uuid.New()

	store.AddToCart(entity.CartItem{
		ProductID:      productID,
		Title:          "Maasai shuka",
		UnitPrice:      3_000,
		Quantity:       2,
		Customizations: map[string]string{"color": "red"},
	})

	// A fresh store over the same snapshots picks the cart back up.
	revived := NewCartStore(CartStoreParams{Snapshots: snapshots, Logger: testLogger()})

	items := revived.Items()
	require.Len(t, items, 1)
	assert.Equal(t, productID, items[0].ProductID)
	assert.Equal(t, 2, items[0].Quantity)
	assert.Equal(t, int64(6_000), revived.TotalPrice())
}
