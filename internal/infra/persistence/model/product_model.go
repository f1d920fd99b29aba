package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProductModel mirrors the 'products' table.
type ProductModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	Title       string    `gorm:"type:varchar(255);not null"`
	Description string    `gorm:"type:text"`
	Price       int64     `gorm:"not null"`
	SalePrice   *int64    `gorm:""`
	Images      []string  `gorm:"type:jsonb;serializer:json"`
	Category    string    `gorm:"type:varchar(100);index"`
	Subcategory string    `gorm:"type:varchar(100)"`
	SellerID    uuid.UUID `gorm:"type:uuid;not null;index"`
	SellerName  string    `gorm:"type:varchar(100)"`
	Status      string    `gorm:"type:varchar(32);not null;index"`
	Stock       int       `gorm:"not null;default:0"`
	Customizable bool     `gorm:"not null;default:false"`
	Views       int       `gorm:"not null;default:0"`
	Likes       int       `gorm:"not null;default:0"`
	Shares      int       `gorm:"not null;default:0"`
	Rating      float64   `gorm:"not null;default:0"`
	ReviewCount int       `gorm:"not null;default:0"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}

// TableName explicitly sets the table name for GORM.
func (ProductModel) TableName() string {
	return "products"
}

// CategoryModel mirrors the 'categories' table.
type CategoryModel struct {
	ID            string   `gorm:"type:varchar(64);primaryKey"`
	Name          string   `gorm:"type:varchar(100);not null"`
	Subcategories []string `gorm:"type:jsonb;serializer:json"`
	SortOrder     int      `gorm:"not null;default:0"`
}

// TableName explicitly sets the table name for GORM.
func (CategoryModel) TableName() string {
	return "categories"
}
