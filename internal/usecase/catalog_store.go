// Package usecase contains the application-specific business rules.
package usecase

import (
	"sokoni/internal/domain/entity"
)

// SortKey orders catalog listings.
type SortKey string

const (
	// SortNewest orders by creation time, newest first. The default.
	SortNewest SortKey = "newest"
	// SortPriceAsc orders by effective unit price, cheapest first.
	SortPriceAsc SortKey = "price_asc"
	// SortPriceDesc orders by effective unit price, most expensive first.
	SortPriceDesc SortKey = "price_desc"
	// SortPopular orders by view count.
	SortPopular SortKey = "popular"
	// SortRating orders by average rating.
	SortRating SortKey = "rating"
)

// IsValid checks if the SortKey is a recognized value.
func (k SortKey) IsValid() bool {
	switch k {
	case SortNewest, SortPriceAsc, SortPriceDesc, SortPopular, SortRating:
		return true
	default:
		return false
	}
}

// PriceRange bounds the effective unit price, in minor currency units.
type PriceRange struct {
	Min int64
	Max int64
}

// Criteria is the full set of filter/sort/pagination settings. The store
// holds criteria only; it never computes the filtered result.
type Criteria struct {
	SearchQuery         string
	SelectedCategory    string
	SelectedSubcategory string
	PriceRange          PriceRange
	SortBy              SortKey
	CustomizableOnly    bool
	InStockOnly         bool
	CurrentPage         int
	TotalPages          int
}

// DefaultCriteria returns the criteria ClearFilters resets to.
func DefaultCriteria() Criteria {
	return Criteria{
		PriceRange:  PriceRange{Min: 0, Max: 1_000_000},
		SortBy:      SortNewest,
		CurrentPage: 1,
	}
}

// CatalogStore caches product/category data and the browsing criteria.
// Filtering and sorting happen in the caller; the store is pure state.
type CatalogStore interface {
	// --- data cache ---

	SetProducts(products []*entity.Product)
	SetCategories(categories []*entity.Category)
	SetFeaturedProducts(products []*entity.Product)
	SetCurrentProduct(product *entity.Product)
	SetLoading(loading bool)
	SetError(message string)

	Products() []*entity.Product
	Categories() []*entity.Category
	FeaturedProducts() []*entity.Product
	CurrentProduct() (*entity.Product, bool)
	Loading() bool
	Error() string

	// --- criteria ---

	SetSearchQuery(query string)
	// SetSelectedCategory also resets the subcategory in the same update.
	SetSelectedCategory(category string)
	SetSelectedSubcategory(subcategory string)
	SetPriceRange(priceRange PriceRange)
	SetSortBy(key SortKey)
	SetCustomizableOnly(on bool)
	SetInStockOnly(on bool)
	SetCurrentPage(page int)
	SetTotalPages(pages int)

	// ClearFilters atomically resets every criterion to its default.
	ClearFilters()

	// Criteria returns a snapshot of the current criteria.
	Criteria() Criteria
}
