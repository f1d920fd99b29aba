// Package usecase contains the application-specific business rules.
package usecase

import (
	"sokoni/internal/domain/entity"

	"github.com/google/uuid"
)

// CartStore holds the shopping cart. Lines are keyed by product id plus the
// customization signature, so the same product with different customizations
// occupies separate lines.
type CartStore interface {
	// AddToCart inserts the item or, when a line with the same product id and
	// customization signature exists, merges the quantities into that line.
	// The line total is recomputed either way.
	AddToCart(item entity.CartItem)

	// UpdateQuantity sets the quantity of every line of the product. Values
	// below 1 clamp to 1; removal is only ever explicit.
	UpdateQuantity(productID uuid.UUID, quantity int)

	// RemoveFromCart deletes every line of the product.
	RemoveFromCart(productID uuid.UUID)

	// Clear empties the cart.
	Clear()

	// Items returns a snapshot of the cart lines.
	Items() []entity.CartItem

	// TotalPrice sums the line totals, in minor currency units.
	TotalPrice() int64

	// TotalItems sums the line quantities.
	TotalItems() int
}
