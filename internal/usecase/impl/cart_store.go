// Package impl contains the implementation of the application's business logic.
package impl

import (
	"log/slog"
	"sync"
	"time"

	"sokoni/internal/domain/entity"
	"sokoni/internal/errors"
	"sokoni/internal/infra/localstore"
	"sokoni/internal/usecase"

	"github.com/google/uuid"
	"go.uber.org/fx"
)

const (
	cartSnapshotNamespace = "cart"
	cartSnapshotKey       = "current"
)

// cartStore implements the CartStore interface.
type cartStore struct {
	mu    sync.RWMutex
	items []entity.CartItem

	snapshots localstore.SnapshotStore
	logger    *slog.Logger
}

// CartStoreParams holds dependencies for the cart store, injected by Fx.
type CartStoreParams struct {
	fx.In

	Snapshots localstore.SnapshotStore
	Logger    *slog.Logger
}

// NewCartStore is the constructor for cartStore. The cart left by a previous
// run is rehydrated from the snapshot store.
func NewCartStore(params CartStoreParams) usecase.CartStore {
	store := &cartStore{
		snapshots: params.Snapshots,
		logger:    params.Logger,
	}
	store.rehydrate()

	return store
}

// AddToCart inserts the item or merges it into the line with the same product
// id and customization signature.
func (store *cartStore) AddToCart(item entity.CartItem) {
	store.mu.Lock()
	defer store.mu.Unlock()

	if item.Quantity < 1 {
		item.Quantity = 1
	}

	signature := entity.CustomizationSignature(item.Customizations)
	for i := range store.items {
		line := &store.items[i]
		if line.ProductID == item.ProductID && entity.CustomizationSignature(line.Customizations) == signature {
			line.Quantity += item.Quantity
			line.Recalculate()
			store.persistLocked()

			return
		}
	}

	item.AddedAt = time.Now()
	item.Recalculate()
	store.items = append(store.items, item)
	store.persistLocked()
}

// UpdateQuantity sets the quantity of every line of the product, clamping to
// a minimum of 1. Removal is only ever explicit via RemoveFromCart.
func (store *cartStore) UpdateQuantity(productID uuid.UUID, quantity int) {
	store.mu.Lock()
	defer store.mu.Unlock()

	if quantity < 1 {
		quantity = 1
	}

	changed := false
	for i := range store.items {
		line := &store.items[i]
		if line.ProductID == productID {
			line.Quantity = quantity
			line.Recalculate()
			changed = true
		}
	}

	if changed {
		store.persistLocked()
	}
}

// RemoveFromCart deletes every line of the product.
func (store *cartStore) RemoveFromCart(productID uuid.UUID) {
	store.mu.Lock()
	defer store.mu.Unlock()

	kept := store.items[:0]
	for _, line := range store.items {
		if line.ProductID != productID {
			kept = append(kept, line)
		}
	}

	if len(kept) != len(store.items) {
		store.items = kept
		store.persistLocked()
	}
}

// Clear empties the cart.
func (store *cartStore) Clear() {
	store.mu.Lock()
	defer store.mu.Unlock()

	store.items = nil
	store.persistLocked()
}

// Items returns a snapshot of the cart lines.
func (store *cartStore) Items() []entity.CartItem {
	store.mu.RLock()
	defer store.mu.RUnlock()

	items := make([]entity.CartItem, len(store.items))
	copy(items, store.items)

	return items
}

// TotalPrice sums the line totals, in minor currency units.
func (store *cartStore) TotalPrice() int64 {
	store.mu.RLock()
	defer store.mu.RUnlock()

	var total int64
	for _, line := range store.items {
		total += line.TotalPrice
	}

	return total
}

// TotalItems sums the line quantities.
func (store *cartStore) TotalItems() int {
	store.mu.RLock()
	defer store.mu.RUnlock()

	var total int
	for _, line := range store.items {
		total += line.Quantity
	}

	return total
}

// persistLocked writes the cart snapshot. Callers hold the mutex.
func (store *cartStore) persistLocked() {
	if err := store.snapshots.Save(cartSnapshotNamespace, cartSnapshotKey, store.items); err != nil {
		store.logger.Warn("cart snapshot save failed", slog.String("error", err.Error()))
	}
}

func (store *cartStore) rehydrate() {
	var items []entity.CartItem
	err := store.snapshots.Load(cartSnapshotNamespace, cartSnapshotKey, &items)
	if err != nil {
		if !errors.Is(err, localstore.ErrSnapshotNotFound) {
			store.logger.Warn("cart snapshot load failed", slog.String("error", err.Error()))
		}

		return
	}

	store.items = items
}
