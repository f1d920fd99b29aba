// Package impl contains the implementation of the application's business logic.
package impl

import (
	"sync"

	"sokoni/internal/domain/entity"
	"sokoni/internal/usecase"
)

// catalogStore implements the CatalogStore interface. Pure in-memory state:
// no network, no persistence.
type catalogStore struct {
	mu sync.RWMutex

	products         []*entity.Product
	categories       []*entity.Category
	featuredProducts []*entity.Product
	currentProduct   *entity.Product
	loading          bool
	errMessage       string

	criteria usecase.Criteria
}

// NewCatalogStore is the constructor for catalogStore.
func NewCatalogStore() usecase.CatalogStore {
	return &catalogStore{
		criteria: usecase.DefaultCriteria(),
	}
}

func (store *catalogStore) SetProducts(products []*entity.Product) {
	store.mu.Lock()
	defer store.mu.Unlock()
	store.products = products
}

func (store *catalogStore) SetCategories(categories []*entity.Category) {
	store.mu.Lock()
	defer store.mu.Unlock()
	store.categories = categories
}

func (store *catalogStore) SetFeaturedProducts(products []*entity.Product) {
	store.mu.Lock()
	defer store.mu.Unlock()
	store.featuredProducts = products
}

func (store *catalogStore) SetCurrentProduct(product *entity.Product) {
	store.mu.Lock()
	defer store.mu.Unlock()
	store.currentProduct = product
}

func (store *catalogStore) SetLoading(loading bool) {
	store.mu.Lock()
	defer store.mu.Unlock()
	store.loading = loading
}

func (store *catalogStore) SetError(message string) {
	store.mu.Lock()
	defer store.mu.Unlock()
	store.errMessage = message
}

func (store *catalogStore) Products() []*entity.Product {
	store.mu.RLock()
	defer store.mu.RUnlock()

	return store.products
}

func (store *catalogStore) Categories() []*entity.Category {
	store.mu.RLock()
	defer store.mu.RUnlock()

	return store.categories
}

func (store *catalogStore) FeaturedProducts() []*entity.Product {
	store.mu.RLock()
	defer store.mu.RUnlock()

	return store.featuredProducts
}

func (store *catalogStore) CurrentProduct() (*entity.Product, bool) {
	store.mu.RLock()
	defer store.mu.RUnlock()

	return store.currentProduct, store.currentProduct != nil
}

func (store *catalogStore) Loading() bool {
	store.mu.RLock()
	defer store.mu.RUnlock()

	return store.loading
}

func (store *catalogStore) Error() string {
	store.mu.RLock()
	defer store.mu.RUnlock()

	return store.errMessage
}

func (store *catalogStore) SetSearchQuery(query string) {
	store.mu.Lock()
	defer store.mu.Unlock()
	store.criteria.SearchQuery = query
}

// SetSelectedCategory also resets the subcategory, in the same update, so a
// reader never observes the old subcategory against the new category.
func (store *catalogStore) SetSelectedCategory(category string) {
	store.mu.Lock()
	defer store.mu.Unlock()
	store.criteria.SelectedCategory = category
	store.criteria.SelectedSubcategory = ""
}

func (store *catalogStore) SetSelectedSubcategory(subcategory string) {
	store.mu.Lock()
	defer store.mu.Unlock()
	store.criteria.SelectedSubcategory = subcategory
}

func (store *catalogStore) SetPriceRange(priceRange usecase.PriceRange) {
	store.mu.Lock()
	defer store.mu.Unlock()
	store.criteria.PriceRange = priceRange
}

func (store *catalogStore) SetSortBy(key usecase.SortKey) {
	store.mu.Lock()
	defer store.mu.Unlock()

	if !key.IsValid() {
		key = usecase.SortNewest
	}
	store.criteria.SortBy = key
}

func (store *catalogStore) SetCustomizableOnly(on bool) {
	store.mu.Lock()
	defer store.mu.Unlock()
	store.criteria.CustomizableOnly = on
}

func (store *catalogStore) SetInStockOnly(on bool) {
	store.mu.Lock()
	defer store.mu.Unlock()
	store.criteria.InStockOnly = on
}

func (store *catalogStore) SetCurrentPage(page int) {
	store.mu.Lock()
	defer store.mu.Unlock()

	if page < 1 {
		page = 1
	}
	store.criteria.CurrentPage = page
}

func (store *catalogStore) SetTotalPages(pages int) {
	store.mu.Lock()
	defer store.mu.Unlock()
	store.criteria.TotalPages = pages
}

// ClearFilters atomically resets every criterion to its default; the data
// cache is untouched.
func (store *catalogStore) ClearFilters() {
	store.mu.Lock()
	defer store.mu.Unlock()

	totalPages := store.criteria.TotalPages
	store.criteria = usecase.DefaultCriteria()
	store.criteria.TotalPages = totalPages
}

func (store *catalogStore) Criteria() usecase.Criteria {
	store.mu.RLock()
	defer store.mu.RUnlock()

	return store.criteria
}
