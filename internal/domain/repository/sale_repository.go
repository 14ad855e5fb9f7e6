package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/liquorpos-api/internal/domain/entity"
	"github.com/sangkips/liquorpos-api/internal/domain/enum"
	"github.com/sangkips/liquorpos-api/pkg/pagination"
	"github.com/shopspring/decimal"
)

// SaleRepository defines the interface for sale data operations
type SaleRepository interface {
	// Create inserts the sale header only; items go through CreateItems.
	Create(ctx context.Context, sale *entity.Sale) error
	CreateItems(ctx context.Context, items []entity.SaleItem) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Sale, error)
	// GetWithDetails loads items (with products), customer and user.
	GetWithDetails(ctx context.Context, id uuid.UUID) (*entity.Sale, error)
	List(ctx context.Context, params *SaleFilterParams) ([]entity.Sale, int64, error)
	// UpdatePaymentStatus returns gorm.ErrRecordNotFound when the sale is
	// missing or already cancelled.
	UpdatePaymentStatus(ctx context.Context, id uuid.UUID, status enum.PaymentStatus, notes *string) error
}

// SaleFilterParams contains filtering parameters for sale queries.
// EndDate is exclusive.
type SaleFilterParams struct {
	Pagination    *pagination.PaginationParams
	Search        string
	StartDate     *time.Time
	EndDate       *time.Time
	PaymentMethod *enum.PaymentMethod
	PaymentStatus *enum.PaymentStatus
	SaleType      *enum.SaleType
	CustomerID    *uuid.UUID
	UserID        *uuid.UUID
}

// SaleSequenceRepository allocates per-day sale sequence values
type SaleSequenceRepository interface {
	// Next atomically increments and returns the counter for day (YYYYMMDD).
	// A missing counter is seeded from the highest existing sale number
	// carrying prefix, so numbering continues over pre-existing sales.
	Next(ctx context.Context, day, prefix string) (int, error)
}

// SalesTotals is a count and amount over a period
type SalesTotals struct {
	Count int64           `json:"count"`
	Total decimal.Decimal `json:"total"`
}

// PaymentMethodTotal aggregates sales per payment method
type PaymentMethodTotal struct {
	PaymentMethod enum.PaymentMethod `json:"payment_method"`
	Count         int64              `json:"count"`
	Total         decimal.Decimal    `json:"total"`
}

// TopProductResult represents a product's sales performance
type TopProductResult struct {
	ProductID    uuid.UUID       `json:"product_id"`
	ProductName  string          `json:"product_name"`
	QuantitySold int64           `json:"quantity_sold"`
	Revenue      decimal.Decimal `json:"revenue"`
}

// SalesAnalyticsRepository aggregates non-cancelled sales over [from, to)
type SalesAnalyticsRepository interface {
	GetTotals(ctx context.Context, from, to time.Time) (*SalesTotals, error)
	GetTotalsByPaymentMethod(ctx context.Context, from, to time.Time) ([]PaymentMethodTotal, error)
	GetTopProducts(ctx context.Context, from, to time.Time, limit int) ([]TopProductResult, error)
}
