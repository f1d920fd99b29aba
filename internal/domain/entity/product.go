// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"

	"sokoni/internal/errors"
)

// MaxProductImages caps the ordered image sequence of a product.
const MaxProductImages = 8

// ProductStatus represents the lifecycle state of a catalog entry.
type ProductStatus string

const (
	// ProductStatusDraft indicates the listing has not been published yet.
	ProductStatusDraft ProductStatus = "draft"
	// ProductStatusActive indicates the listing is live and purchasable.
	ProductStatusActive ProductStatus = "active"
	// ProductStatusSold indicates a one-off piece that has been sold out.
	ProductStatusSold ProductStatus = "sold"
	// ProductStatusPendingApproval indicates the listing awaits moderation.
	ProductStatusPendingApproval ProductStatus = "pending_approval"
)

// IsValid checks if the ProductStatus is a valid value.
func (s ProductStatus) IsValid() bool {
	switch s {
	case ProductStatusDraft, ProductStatusActive, ProductStatusSold, ProductStatusPendingApproval:
		return true
	default:
		return false
	}
}

// Product is a catalog entry. From the client slice's perspective it is
// immutable; engagement counters are mirrored optimistically in the social
// store and never written back.
type Product struct {
	ID          uuid.UUID
	Title       string
	Description string
	Price       int64  // minor currency units
	SalePrice   *int64 // if set, must be strictly less than Price
	Images      []string
	Category    string
	Subcategory string
	SellerID    uuid.UUID
	SellerName  string
	Status      ProductStatus
	Stock       int // non-negative
	Customizable bool
	Views       int
	Likes       int
	Shares      int
	Rating      float64
	ReviewCount int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// UnitPrice returns the effective price of one unit, preferring the sale
// price when present.
func (p *Product) UnitPrice() int64 {
	if p.SalePrice != nil {
		return *p.SalePrice
	}

	return p.Price
}

// InStock reports whether the product can currently be added to a cart.
func (p *Product) InStock() bool {
	return p.Status == ProductStatusActive && p.Stock > 0
}

// Validate enforces the structural invariants of a catalog entry.
func (p *Product) Validate() error {
	if !p.Status.IsValid() {
		return errors.Errorf("invalid product status: %q", p.Status)
	}
	if p.Stock < 0 {
		return errors.New("stock count must be non-negative")
	}
	if len(p.Images) > MaxProductImages {
		return errors.Errorf("product carries %d images, max is %d", len(p.Images), MaxProductImages)
	}
	if p.SalePrice != nil && *p.SalePrice >= p.Price {
		return errors.New("sale price must be strictly less than price")
	}

	return nil
}

// Category is a top-level catalog grouping with its subcategories.
type Category struct {
	ID            string
	Name          string
	Subcategories []string
}
