package handler

import (
	"log/slog"
	"net/http"
	"sort"
	"strings"

	"sokoni/internal/delivery/http/response"
	"sokoni/internal/domain/entity"
	"sokoni/internal/domain/repository"
	"sokoni/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/spf13/cast"
	"go.uber.org/fx"
)

// defaultPageSize is the number of products per listing page.
const defaultPageSize = 12

// defaultFeaturedLimit caps the featured shelf.
const defaultFeaturedLimit = 8

// CatalogHandlerParams holds dependencies for CatalogHandler, injected by Fx.
type CatalogHandlerParams struct {
	fx.In

	CatalogStore usecase.CatalogStore
	ProductRepo  repository.ProductRepository
	Logger       *slog.Logger
}

// CatalogHandler serves product listings. The store caches data and criteria;
// filtering, sorting and pagination happen here on each request.
type CatalogHandler struct {
	catalog  usecase.CatalogStore
	products repository.ProductRepository
	logger   *slog.Logger
}

// NewCatalogHandler is the constructor for CatalogHandler.
func NewCatalogHandler(params CatalogHandlerParams) *CatalogHandler {
	return &CatalogHandler{
		catalog:  params.CatalogStore,
		products: params.ProductRepo,
		logger:   params.Logger,
	}
}

// listingPayload is the paginated listing envelope.
type listingPayload struct {
	Products    []*entity.Product `json:"products"`
	Criteria    usecase.Criteria  `json:"criteria"`
	TotalCount  int               `json:"total_count"`
	CurrentPage int               `json:"current_page"`
	TotalPages  int               `json:"total_pages"`
}

// ListProducts applies any criteria carried in the query string, refreshes the
// product cache when needed and returns the filtered, sorted page.
func (h *CatalogHandler) ListProducts(c echo.Context) error {
	h.applyCriteria(c)

	if err := h.ensureProducts(c); err != nil {
		return response.HandleAppError(c, err)
	}

	criteria := h.catalog.Criteria()
	filtered := filterProducts(h.catalog.Products(), criteria)
	sortProducts(filtered, criteria.SortBy)

	totalPages := (len(filtered) + defaultPageSize - 1) / defaultPageSize
	if totalPages < 1 {
		totalPages = 1
	}
	h.catalog.SetTotalPages(totalPages)

	page := criteria.CurrentPage
	if page > totalPages {
		page = totalPages
	}
	start := (page - 1) * defaultPageSize
	end := start + defaultPageSize
	if end > len(filtered) {
		end = len(filtered)
	}

	criteria = h.catalog.Criteria()

	return response.Success(c, http.StatusOK, listingPayload{
		Products:    filtered[start:end],
		Criteria:    criteria,
		TotalCount:  len(filtered),
		CurrentPage: page,
		TotalPages:  totalPages,
	}, "")
}

// GetProduct returns a single product and records it as the current one.
func (h *CatalogHandler) GetProduct(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid product id")
	}

	product, err := h.products.FindByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return response.NotFound(c, "PRODUCT_NOT_FOUND", "Product not found")
		}

		return response.HandleAppError(c, err)
	}

	h.catalog.SetCurrentProduct(product)

	return response.Success(c, http.StatusOK, product, "")
}

// ListFeatured returns the highest-rated active products.
func (h *CatalogHandler) ListFeatured(c echo.Context) error {
	limit := cast.ToInt(c.QueryParam("limit"))
	if limit <= 0 {
		limit = defaultFeaturedLimit
	}

	featured, err := h.products.FindFeatured(c.Request().Context(), limit)
	if err != nil {
		return response.HandleAppError(c, err)
	}
	h.catalog.SetFeaturedProducts(featured)

	return response.Success(c, http.StatusOK, featured, "")
}

// ListCategories returns the category tree.
func (h *CatalogHandler) ListCategories(c echo.Context) error {
	categories, err := h.products.FindCategories(c.Request().Context())
	if err != nil {
		return response.HandleAppError(c, err)
	}
	h.catalog.SetCategories(categories)

	return response.Success(c, http.StatusOK, categories, "")
}

// ClearFilters resets every criterion to its default.
func (h *CatalogHandler) ClearFilters(c echo.Context) error {
	h.catalog.ClearFilters()

	return response.Success(c, http.StatusOK, h.catalog.Criteria(), "Filters cleared")
}

// applyCriteria folds present query parameters into the criteria store.
// Absent parameters leave the stored criteria untouched.
func (h *CatalogHandler) applyCriteria(c echo.Context) {
	params := c.QueryParams()

	if params.Has("search") {
		h.catalog.SetSearchQuery(params.Get("search"))
	}
	if params.Has("category") {
		h.catalog.SetSelectedCategory(params.Get("category"))
	}
	if params.Has("subcategory") {
		h.catalog.SetSelectedSubcategory(params.Get("subcategory"))
	}
	if params.Has("min_price") || params.Has("max_price") {
		priceRange := h.catalog.Criteria().PriceRange
		if params.Has("min_price") {
			priceRange.Min = cast.ToInt64(params.Get("min_price"))
		}
		if params.Has("max_price") {
			priceRange.Max = cast.ToInt64(params.Get("max_price"))
		}
		h.catalog.SetPriceRange(priceRange)
	}
	if params.Has("sort") {
		h.catalog.SetSortBy(usecase.SortKey(params.Get("sort")))
	}
	if params.Has("customizable_only") {
		h.catalog.SetCustomizableOnly(cast.ToBool(params.Get("customizable_only")))
	}
	if params.Has("in_stock_only") {
		h.catalog.SetInStockOnly(cast.ToBool(params.Get("in_stock_only")))
	}
	if params.Has("page") {
		h.catalog.SetCurrentPage(cast.ToInt(params.Get("page")))
	}
}

// ensureProducts refreshes the cached product list when it is empty or the
// caller asks for a refresh.
func (h *CatalogHandler) ensureProducts(c echo.Context) error {
	if len(h.catalog.Products()) > 0 && !cast.ToBool(c.QueryParam("refresh")) {
		return nil
	}

	h.catalog.SetLoading(true)
	defer h.catalog.SetLoading(false)

	products, err := h.products.FindAll(c.Request().Context())
	if err != nil {
		h.catalog.SetError(err.Error())

		return err
	}

	h.catalog.SetProducts(products)
	h.catalog.SetError("")

	return nil
}

func filterProducts(products []*entity.Product, criteria usecase.Criteria) []*entity.Product {
	query := strings.ToLower(strings.TrimSpace(criteria.SearchQuery))

	filtered := make([]*entity.Product, 0, len(products))
	for _, p := range products {
		if query != "" &&
			!strings.Contains(strings.ToLower(p.Title), query) &&
			!strings.Contains(strings.ToLower(p.Description), query) {
			continue
		}
		if criteria.SelectedCategory != "" && p.Category != criteria.SelectedCategory {
			continue
		}
		if criteria.SelectedSubcategory != "" && p.Subcategory != criteria.SelectedSubcategory {
			continue
		}
		price := p.UnitPrice()
		if price < criteria.PriceRange.Min || price > criteria.PriceRange.Max {
			continue
		}
		if criteria.CustomizableOnly && !p.Customizable {
			continue
		}
		if criteria.InStockOnly && p.Stock <= 0 {
			continue
		}
		filtered = append(filtered, p)
	}

	return filtered
}

func sortProducts(products []*entity.Product, key usecase.SortKey) {
	switch key {
	case usecase.SortPriceAsc:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].UnitPrice() < products[j].UnitPrice()
		})
	case usecase.SortPriceDesc:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].UnitPrice() > products[j].UnitPrice()
		})
	case usecase.SortPopular:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Views > products[j].Views
		})
	case usecase.SortRating:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Rating > products[j].Rating
		})
	default: // SortNewest
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].CreatedAt.After(products[j].CreatedAt)
		})
	}
}
