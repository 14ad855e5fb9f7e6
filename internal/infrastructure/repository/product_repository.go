package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sangkips/liquorpos-api/internal/domain/entity"
	domainRepo "github.com/sangkips/liquorpos-api/internal/domain/repository"
	"gorm.io/gorm"
)

// productUpdatableColumns are written by Update. Stock columns are excluded;
// they only move through DecrementStock and IncrementStock.
var productUpdatableColumns = []string{
	"barcode", "sku", "name", "description", "category_id", "brand_id", "volume_ml",
	"alcohol_percentage", "purchase_price", "retail_price", "wholesale_price",
	"wholesale_min_quantity", "min_stock", "max_stock", "reorder_point", "is_active", "updated_at",
}

type productRepository struct {
	db *gorm.DB
}

// NewProductRepository creates a new product repository
func NewProductRepository(db *gorm.DB) domainRepo.ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) Create(ctx context.Context, product *entity.Product) error {
	return r.db.WithContext(ctx).Omit("Category", "Brand").Create(product).Error
}

func (r *productRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	var product entity.Product
	err := r.db.WithContext(ctx).
		Preload("Category").Preload("Brand").
		First(&product, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) GetByBarcode(ctx context.Context, barcode string) (*entity.Product, error) {
	var product entity.Product
	err := r.db.WithContext(ctx).
		Preload("Category").Preload("Brand").
		First(&product, "barcode = ?", barcode).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) Update(ctx context.Context, product *entity.Product) error {
	return r.db.WithContext(ctx).Model(product).
		Select(productUpdatableColumns).
		Updates(product).Error
}

func (r *productRepository) List(ctx context.Context, params *domainRepo.ProductFilterParams) ([]entity.Product, int64, error) {
	var products []entity.Product
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Product{}).
		Scopes(Search(params.Search, "name", "barcode", "sku"))

	if params.CategoryID != nil {
		query = query.Where("category_id = ?", *params.CategoryID)
	}
	if params.BrandID != nil {
		query = query.Where("brand_id = ?", *params.BrandID)
	}
	if params.IsActive != nil {
		query = query.Where("is_active = ?", *params.IsActive)
	}
	if params.LowStock {
		query = query.Where("current_stock <= min_stock")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Scopes(Paginate(params.Pagination)).
		Preload("Category").Preload("Brand").
		Order("name ASC").
		Find(&products).Error

	return products, total, err
}

var priceListColumns = map[string]string{
	"name":          "name",
	"retail_price":  "retail_price",
	"current_stock": "current_stock",
}

func (r *productRepository) ListActive(ctx context.Context, params *domainRepo.PriceListParams) ([]entity.Product, error) {
	var products []entity.Product

	query := r.db.WithContext(ctx).Where("is_active = ?", true)
	if params.CategoryID != nil {
		query = query.Where("category_id = ?", *params.CategoryID)
	}
	if params.BrandID != nil {
		query = query.Where("brand_id = ?", *params.BrandID)
	}

	column, ok := priceListColumns[params.SortBy]
	if !ok {
		column = "name"
	}
	direction := "ASC"
	if params.Descending {
		direction = "DESC"
	}

	err := query.Preload("Category").Preload("Brand").
		Order(column + " " + direction).
		Order("name ASC").
		Find(&products).Error
	return products, err
}

func (r *productRepository) GetLowStock(ctx context.Context) ([]entity.Product, error) {
	var products []entity.Product
	err := r.db.WithContext(ctx).
		Where("is_active = ? AND current_stock <= min_stock", true).
		Preload("Category").Preload("Brand").
		Order("current_stock ASC, name ASC").
		Find(&products).Error
	return products, err
}

// DecrementStock runs UPDATE products SET current_stock = current_stock - q
// WHERE id = ? AND current_stock >= q. Concurrent decrements serialize on the
// row lock; the loser re-evaluates the predicate and affects no row.
func (r *productRepository) DecrementStock(ctx context.Context, id uuid.UUID, quantity int) (bool, error) {
	result := r.db.WithContext(ctx).Model(&entity.Product{}).
		Where("id = ? AND current_stock >= ?", id, quantity).
		Update("current_stock", gorm.Expr("current_stock - ?", quantity))
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *productRepository) IncrementStock(ctx context.Context, id uuid.UUID, quantity int) error {
	result := r.db.WithContext(ctx).Model(&entity.Product{}).
		Where("id = ?", id).
		Update("current_stock", gorm.Expr("current_stock + ?", quantity))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
