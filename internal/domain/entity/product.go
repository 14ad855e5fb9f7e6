package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Product is a sellable catalog item. CurrentStock never drops below zero;
// the check constraint backs up the conditional decrement used by sales.
type Product struct {
	ID                   uuid.UUID           `gorm:"type:uuid;primary_key" json:"id"`
	Barcode              string              `gorm:"size:100;uniqueIndex;not null" json:"barcode"`
	SKU                  string              `gorm:"column:sku;size:50;uniqueIndex;not null" json:"sku"`
	Name                 string              `gorm:"size:255;not null;index" json:"name"`
	Description          *string             `gorm:"type:text" json:"description,omitempty"`
	CategoryID           *uuid.UUID          `gorm:"type:uuid;index" json:"category_id,omitempty"`
	BrandID              *uuid.UUID          `gorm:"type:uuid;index" json:"brand_id,omitempty"`
	VolumeML             *int                `gorm:"column:volume_ml" json:"volume_ml,omitempty"`
	AlcoholPercentage    decimal.NullDecimal `gorm:"type:decimal(5,2)" json:"alcohol_percentage"`
	PurchasePrice        decimal.Decimal     `gorm:"type:decimal(12,2);not null" json:"purchase_price"`
	RetailPrice          decimal.Decimal     `gorm:"type:decimal(12,2);not null" json:"retail_price"`
	WholesalePrice       decimal.NullDecimal `gorm:"type:decimal(12,2)" json:"wholesale_price"`
	WholesaleMinQuantity int                 `gorm:"not null" json:"wholesale_min_quantity"`
	CurrentStock         int                 `gorm:"not null;check:current_stock >= 0" json:"current_stock"`
	MinStock             int                 `gorm:"not null" json:"min_stock"`
	MaxStock             int                 `gorm:"not null" json:"max_stock"`
	ReorderPoint         int                 `gorm:"not null" json:"reorder_point"`
	IsActive             bool                `gorm:"not null;index" json:"is_active"`
	CreatedAt            time.Time           `json:"created_at"`
	UpdatedAt            time.Time           `json:"updated_at"`

	// Relationships
	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Brand    *Brand    `gorm:"foreignKey:BrandID" json:"brand,omitempty"`
}

// BeforeCreate generates a UUID before creating a new product
func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Product model
func (Product) TableName() string {
	return "products"
}

// PriceFor resolves the unit price for a sale: the wholesale price when the
// sale is wholesale and a positive one is configured, the retail price otherwise.
func (p *Product) PriceFor(wholesale bool) decimal.Decimal {
	if wholesale && p.WholesalePrice.Valid && p.WholesalePrice.Decimal.IsPositive() {
		return p.WholesalePrice.Decimal
	}
	return p.RetailPrice
}

// IsLowStock reports whether stock is at or below the configured minimum.
func (p *Product) IsLowStock() bool {
	return p.CurrentStock <= p.MinStock
}

// Category groups products (spirits, beer, wine...).
type Category struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name        string    `gorm:"size:100;uniqueIndex;not null" json:"name"`
	Description *string   `gorm:"type:text" json:"description,omitempty"`
	IsActive    bool      `gorm:"not null" json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// BeforeCreate generates a UUID before creating a new category
func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Category model
func (Category) TableName() string {
	return "categories"
}

// Brand is the producer label of a product.
type Brand struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name      string    `gorm:"size:100;uniqueIndex;not null" json:"name"`
	Country   *string   `gorm:"size:100" json:"country,omitempty"`
	IsActive  bool      `gorm:"not null" json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate generates a UUID before creating a new brand
func (b *Brand) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Brand model
func (Brand) TableName() string {
	return "brands"
}
