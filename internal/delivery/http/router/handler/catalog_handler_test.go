package handler

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"sokoni/internal/domain/entity"
	"sokoni/internal/domain/repository"
	"sokoni/internal/usecase"
	"sokoni/internal/usecase/impl"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProductRepo struct {
	products   []*entity.Product
	categories []*entity.Category
}

func (r *fakeProductRepo) FindAll(context.Context) ([]*entity.Product, error) {
	return r.products, nil
}

func (r *fakeProductRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Product, error) {
	for _, p := range r.products {
		if p.ID == id {
			return p, nil
		}
	}

	return nil, repository.ErrProductNotFound
}

func (r *fakeProductRepo) FindFeatured(_ context.Context, limit int) ([]*entity.Product, error) {
	if limit > len(r.products) {
		limit = len(r.products)
	}

	return r.products[:limit], nil
}

func (r *fakeProductRepo) FindCategories(context.Context) ([]*entity.Category, error) {
	return r.categories, nil
}

func testProduct(title, category string, price int64, createdAt time.Time) *entity.Product {
	return &entity.Product{
		ID:        uuid.New(),
		Title:     title,
		Price:     price,
		Category:  category,
		Status:    entity.ProductStatusActive,
		Stock:     3,
		CreatedAt: createdAt,
	}
}

func newCatalogHandlerFixture(products ...*entity.Product) (*CatalogHandler, usecase.CatalogStore) {
	store := impl.NewCatalogStore()

	return &CatalogHandler{
		catalog:  store,
		products: &fakeProductRepo{products: products},
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}, store
}

func listProducts(t *testing.T, h *CatalogHandler, query url.Values) listingPayload {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/catalog/products?"+query.Encode(), nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, h.ListProducts(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var envelope struct {
		Data listingPayload `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))

	return envelope.Data
}

func TestCatalogHandler_ListProductsFiltersByCategoryAndPrice(t *testing.T) {
	now := time.Now()
	h, _ := newCatalogHandlerFixture(
		testProduct("Carved bowl", "woodwork", 15_000, now),
		testProduct("Beaded necklace", "jewelry", 4_500, now),
		testProduct("Walnut table", "woodwork", 250_000, now),
	)

	query := url.Values{}
	query.Set("category", "woodwork")
	query.Set("max_price", "100000")
	data := listProducts(t, h, query)

	require.Len(t, data.Products, 1)
	assert.Equal(t, "Carved bowl", data.Products[0].Title)
	assert.Equal(t, 1, data.TotalCount)
}

func TestCatalogHandler_ListProductsSortsByPrice(t *testing.T) {
	now := time.Now()
	h, _ := newCatalogHandlerFixture(
		testProduct("Mid", "woodwork", 20_000, now),
		testProduct("Cheap", "woodwork", 5_000, now),
		testProduct("Dear", "woodwork", 90_000, now),
	)

	query := url.Values{}
	query.Set("sort", "price_asc")
	data := listProducts(t, h, query)

	require.Len(t, data.Products, 3)
	assert.Equal(t, "Cheap", data.Products[0].Title)
	assert.Equal(t, "Dear", data.Products[2].Title)
}

func TestCatalogHandler_ListProductsPaginates(t *testing.T) {
	now := time.Now()
	var products []*entity.Product
	for i := 0; i < defaultPageSize+3; i++ {
		products = append(products, testProduct("p", "woodwork", 1_000, now.Add(-time.Duration(i)*time.Minute)))
	}
	h, store := newCatalogHandlerFixture(products...)

	query := url.Values{}
	query.Set("page", "2")
	data := listProducts(t, h, query)

	assert.Len(t, data.Products, 3)
	assert.Equal(t, 2, data.CurrentPage)
	assert.Equal(t, 2, data.TotalPages)
	assert.Equal(t, 2, store.Criteria().TotalPages)
}

func TestCatalogHandler_ListProductsDefaultSortNewestFirst(t *testing.T) {
	now := time.Now()
	h, _ := newCatalogHandlerFixture(
		testProduct("Old", "woodwork", 1_000, now.Add(-time.Hour)),
		testProduct("New", "woodwork", 1_000, now),
	)

	data := listProducts(t, h, url.Values{})

	require.Len(t, data.Products, 2)
	assert.Equal(t, "New", data.Products[0].Title)
}

func TestCatalogHandler_GetProductNotFound(t *testing.T) {
	h, _ := newCatalogHandlerFixture()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(uuid.NewString())

	require.NoError(t, h.GetProduct(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCatalogHandler_GetProductRecordsCurrent(t *testing.T) {
	product := testProduct("Carved bowl", "woodwork", 15_000, time.Now())
	h, store := newCatalogHandlerFixture(product)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(product.ID.String())

	require.NoError(t, h.GetProduct(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	current, ok := store.CurrentProduct()
	require.True(t, ok)
	assert.Equal(t, product.ID, current.ID)
}
