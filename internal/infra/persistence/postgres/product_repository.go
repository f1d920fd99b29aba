// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
package postgres

import (
	"context"

	"sokoni/internal/domain/entity"
	"sokoni/internal/domain/repository"
	"sokoni/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// productRepository implements the repository.ProductRepository interface using GORM.
type productRepository struct {
	db *gorm.DB
}

// NewProductRepository is the constructor for productRepository.
func NewProductRepository(db *gorm.DB) repository.ProductRepository {
	return &productRepository{db: db}
}

// FindAll retrieves every non-draft product, newest first.
func (repo *productRepository) FindAll(ctx context.Context) ([]*entity.Product, error) {
	var productsM []*model.ProductModel
	err := repo.db.WithContext(ctx).
		Where("status <> ?", string(entity.ProductStatusDraft)).
		Order("created_at DESC").
		Find(&productsM).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list products")
	}

	products := make([]*entity.Product, 0, len(productsM))
	for _, productM := range productsM {
		products = append(products, toProductDomain(productM))
	}

	return products, nil
}

// FindByID retrieves a single product by its unique id.
func (repo *productRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	var productM model.ProductModel
	err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&productM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrProductNotFound
		}

		return nil, errors.Wrap(err, "failed to find product by id")
	}

	return toProductDomain(&productM), nil
}

// FindFeatured retrieves up to limit active products ordered by rating.
func (repo *productRepository) FindFeatured(ctx context.Context, limit int) ([]*entity.Product, error) {
	var productsM []*model.ProductModel
	err := repo.db.WithContext(ctx).
		Where("status = ?", string(entity.ProductStatusActive)).
		Order("rating DESC, review_count DESC").
		Limit(limit).
		Find(&productsM).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list featured products")
	}

	products := make([]*entity.Product, 0, len(productsM))
	for _, productM := range productsM {
		products = append(products, toProductDomain(productM))
	}

	return products, nil
}

// FindCategories retrieves the category tree.
func (repo *productRepository) FindCategories(ctx context.Context) ([]*entity.Category, error) {
	var categoriesM []*model.CategoryModel
	err := repo.db.WithContext(ctx).
		Order("sort_order ASC").
		Find(&categoriesM).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list categories")
	}

	categories := make([]*entity.Category, 0, len(categoriesM))
	for _, categoryM := range categoriesM {
		categories = append(categories, &entity.Category{
			ID:            categoryM.ID,
			Name:          categoryM.Name,
			Subcategories: categoryM.Subcategories,
		})
	}

	return categories, nil
}

// toProductDomain converts a GORM ProductModel to a domain Product entity.
func toProductDomain(data *model.ProductModel) *entity.Product {
	if data == nil {
		return nil
	}

	return &entity.Product{
		ID:           data.ID,
		Title:        data.Title,
		Description:  data.Description,
		Price:        data.Price,
		SalePrice:    data.SalePrice,
		Images:       data.Images,
		Category:     data.Category,
		Subcategory:  data.Subcategory,
		SellerID:     data.SellerID,
		SellerName:   data.SellerName,
		Status:       entity.ProductStatus(data.Status),
		Stock:        data.Stock,
		Customizable: data.Customizable,
		Views:        data.Views,
		Likes:        data.Likes,
		Shares:       data.Shares,
		Rating:       data.Rating,
		ReviewCount:  data.ReviewCount,
		CreatedAt:    data.CreatedAt,
		UpdatedAt:    data.UpdatedAt,
	}
}
