// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"
	"errors"

	"sokoni/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrProductNotFound is returned when a product is not found.
var ErrProductNotFound = errors.New("product not found")

// ProductRepository defines read access to the product catalog. The catalog
// store itself never talks to this interface; callers load products through it
// and hand the result to the store.
type ProductRepository interface {
	// FindAll retrieves every non-draft product, newest first.
	FindAll(ctx context.Context) ([]*entity.Product, error)

	// FindByID retrieves a single product by its unique id.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Product, error)

	// FindFeatured retrieves up to limit active products ordered by rating.
	FindFeatured(ctx context.Context, limit int) ([]*entity.Product, error)

	// FindCategories retrieves the category tree.
	FindCategories(ctx context.Context) ([]*entity.Category, error)
}
