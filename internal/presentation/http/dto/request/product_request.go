package request

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateProductRequest represents a product creation request
type CreateProductRequest struct {
	Barcode              string           `json:"barcode" binding:"required,max=100"`
	SKU                  string           `json:"sku" binding:"omitempty,max=50"`
	Name                 string           `json:"name" binding:"required,min=2,max=255"`
	Description          *string          `json:"description"`
	CategoryID           *uuid.UUID       `json:"category_id"`
	BrandID              *uuid.UUID       `json:"brand_id"`
	VolumeML             *int             `json:"volume_ml" binding:"omitempty,min=1"`
	AlcoholPercentage    *decimal.Decimal `json:"alcohol_percentage"`
	PurchasePrice        decimal.Decimal  `json:"purchase_price"`
	RetailPrice          decimal.Decimal  `json:"retail_price"`
	WholesalePrice       *decimal.Decimal `json:"wholesale_price"`
	WholesaleMinQuantity *int             `json:"wholesale_min_quantity" binding:"omitempty,min=1"`
	CurrentStock         int              `json:"current_stock" binding:"min=0"`
	MinStock             *int             `json:"min_stock" binding:"omitempty,min=0"`
	MaxStock             *int             `json:"max_stock" binding:"omitempty,min=0"`
	ReorderPoint         *int             `json:"reorder_point" binding:"omitempty,min=0"`
	IsActive             *bool            `json:"is_active"`
}

// UpdateProductRequest represents a product update request. Stock is not
// accepted here; use the adjust-stock endpoint.
type UpdateProductRequest struct {
	Barcode              *string          `json:"barcode" binding:"omitempty,min=1,max=100"`
	SKU                  *string          `json:"sku" binding:"omitempty,max=50"`
	Name                 *string          `json:"name" binding:"omitempty,min=2,max=255"`
	Description          *string          `json:"description"`
	CategoryID           *uuid.UUID       `json:"category_id"`
	BrandID              *uuid.UUID       `json:"brand_id"`
	VolumeML             *int             `json:"volume_ml" binding:"omitempty,min=1"`
	AlcoholPercentage    *decimal.Decimal `json:"alcohol_percentage"`
	PurchasePrice        *decimal.Decimal `json:"purchase_price"`
	RetailPrice          *decimal.Decimal `json:"retail_price"`
	WholesalePrice       *decimal.Decimal `json:"wholesale_price"`
	WholesaleMinQuantity *int             `json:"wholesale_min_quantity" binding:"omitempty,min=1"`
	MinStock             *int             `json:"min_stock" binding:"omitempty,min=0"`
	MaxStock             *int             `json:"max_stock" binding:"omitempty,min=0"`
	ReorderPoint         *int             `json:"reorder_point" binding:"omitempty,min=0"`
	IsActive             *bool            `json:"is_active"`
}

// AdjustStockRequest represents a manual stock correction
type AdjustStockRequest struct {
	Quantity int    `json:"quantity" binding:"required"`
	Reason   string `json:"reason" binding:"max=500"`
}

// ProductFilterRequest represents product filter parameters
type ProductFilterRequest struct {
	Search     string `form:"search"`
	CategoryID string `form:"category_id"`
	BrandID    string `form:"brand_id"`
	IsActive   string `form:"is_active"`
	LowStock   bool   `form:"low_stock"`
	Page       int    `form:"page"`
	PerPage    int    `form:"per_page"`
}

// PriceListRequest represents price list query parameters
type PriceListRequest struct {
	GroupBy      string `form:"group_by"`
	SortBy       string `form:"sort_by"`
	SortOrder    string `form:"sort_order"`
	CategoryID   string `form:"category_id"`
	BrandID      string `form:"brand_id"`
	IncludeStock bool   `form:"include_stock"`
}
