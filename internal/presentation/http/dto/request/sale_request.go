package request

import (
	"github.com/google/uuid"
	"github.com/sangkips/liquorpos-api/internal/domain/enum"
	"github.com/shopspring/decimal"
)

// SaleItemRequest is one line of a sale request
type SaleItemRequest struct {
	ProductID          uuid.UUID       `json:"product_id" binding:"required"`
	Quantity           int             `json:"quantity" binding:"required,min=1"`
	DiscountPercentage decimal.Decimal `json:"discount_percentage"`
	DiscountAmount     decimal.Decimal `json:"discount_amount"`
}

// CreateSaleRequest represents a sale creation request
type CreateSaleRequest struct {
	CustomerID    *uuid.UUID         `json:"customer_id"`
	SaleType      enum.SaleType      `json:"sale_type"`
	Items         []SaleItemRequest  `json:"items" binding:"required,min=1,dive"`
	PaymentMethod enum.PaymentMethod `json:"payment_method"`
	PaymentStatus enum.PaymentStatus `json:"payment_status"`
	PaidAmount    *decimal.Decimal   `json:"paid_amount"`
	Notes         *string            `json:"notes" binding:"omitempty,max=2000"`
}

// CancelSaleRequest represents a sale cancellation request
type CancelSaleRequest struct {
	Reason string `json:"reason" binding:"max=500"`
}

// SaleFilterRequest represents sale list query parameters. Dates are
// YYYY-MM-DD calendar days, both inclusive.
type SaleFilterRequest struct {
	Search        string `form:"search"`
	StartDate     string `form:"start_date"`
	EndDate       string `form:"end_date"`
	PaymentMethod string `form:"payment_method"`
	PaymentStatus string `form:"payment_status"`
	SaleType      string `form:"sale_type"`
	CustomerID    string `form:"customer_id"`
	UserID        string `form:"user_id"`
	Page          int    `form:"page"`
	PerPage       int    `form:"per_page"`
}
