package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/liquorpos-api/internal/domain/entity"
	"github.com/sangkips/liquorpos-api/pkg/pagination"
)

// ProductRepository defines the interface for product data operations
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Product, error)
	GetByBarcode(ctx context.Context, barcode string) (*entity.Product, error)
	// Update saves descriptive and pricing fields. Stock is never written here.
	Update(ctx context.Context, product *entity.Product) error
	List(ctx context.Context, params *ProductFilterParams) ([]entity.Product, int64, error)
	// ListActive returns every active product matching the filter, with
	// category and brand loaded, ordered by SortBy.
	ListActive(ctx context.Context, params *PriceListParams) ([]entity.Product, error)
	// GetLowStock returns active products at or below their minimum stock, lowest first.
	GetLowStock(ctx context.Context) ([]entity.Product, error)
	// DecrementStock subtracts quantity only if enough stock remains.
	// Returns (true, nil) on success, (false, nil) when stock is insufficient.
	DecrementStock(ctx context.Context, id uuid.UUID, quantity int) (bool, error)
	// IncrementStock adds quantity with no upper bound check.
	IncrementStock(ctx context.Context, id uuid.UUID, quantity int) error
}

// ProductFilterParams contains filtering parameters for product queries
type ProductFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	CategoryID *uuid.UUID
	BrandID    *uuid.UUID
	IsActive   *bool
	LowStock   bool
}

// PriceListParams filters and orders the active catalog. SortBy is one of
// name, retail_price or current_stock; anything else sorts by name.
type PriceListParams struct {
	CategoryID *uuid.UUID
	BrandID    *uuid.UUID
	SortBy     string
	Descending bool
}

// CategoryRepository defines the interface for category lookups
type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Category, error)
	GetByName(ctx context.Context, name string) (*entity.Category, error)
}

// BrandRepository defines the interface for brand lookups
type BrandRepository interface {
	Create(ctx context.Context, brand *entity.Brand) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Brand, error)
	GetByName(ctx context.Context, name string) (*entity.Brand, error)
}
