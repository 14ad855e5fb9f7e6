package service

import (
	"context"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/sangkips/liquorpos-api/internal/domain/entity"
	"github.com/sangkips/liquorpos-api/internal/domain/enum"
	"github.com/sangkips/liquorpos-api/internal/domain/repository"
	"github.com/sangkips/liquorpos-api/internal/infrastructure/database"
	"github.com/sangkips/liquorpos-api/pkg/apperror"
	"github.com/sangkips/liquorpos-api/pkg/pagination"
	"github.com/sangkips/liquorpos-api/pkg/utils"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	defaultWholesaleMinQuantity = 12
	defaultMinStock             = 5
	defaultMaxStock             = 100
	defaultMovementsLimit       = 50
)

// ProductService handles product-related operations
type ProductService struct {
	txScope      repository.TransactionScope
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	brandRepo    repository.BrandRepository
	movementRepo repository.InventoryMovementRepository
	audit        AuditRecorder
	logger       *zap.Logger
}

// NewProductService creates a new product service
func NewProductService(
	txScope repository.TransactionScope,
	productRepo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	brandRepo repository.BrandRepository,
	movementRepo repository.InventoryMovementRepository,
	audit AuditRecorder,
	logger *zap.Logger,
) *ProductService {
	return &ProductService{
		txScope:      txScope,
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		brandRepo:    brandRepo,
		movementRepo: movementRepo,
		audit:        audit,
		logger:       logger.Named("products"),
	}
}

// CreateProductInput represents the create product input
type CreateProductInput struct {
	Barcode              string
	SKU                  string
	Name                 string
	Description          *string
	CategoryID           *uuid.UUID
	BrandID              *uuid.UUID
	VolumeML             *int
	AlcoholPercentage    *decimal.Decimal
	PurchasePrice        decimal.Decimal
	RetailPrice          decimal.Decimal
	WholesalePrice       *decimal.Decimal
	WholesaleMinQuantity *int
	CurrentStock         int
	MinStock             *int
	MaxStock             *int
	ReorderPoint         *int
	IsActive             *bool
}

// CreateProduct creates a new product
func (s *ProductService) CreateProduct(ctx context.Context, actor Actor, input *CreateProductInput) (*entity.Product, error) {
	input.Barcode = strings.TrimSpace(input.Barcode)
	input.Name = strings.TrimSpace(input.Name)

	var fieldErrors []apperror.FieldError
	if input.Barcode == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "barcode", Message: "is required"})
	}
	if input.Name == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "name", Message: "is required"})
	}
	if input.CurrentStock < 0 {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "current_stock", Message: "must not be negative"})
	}
	fieldErrors = append(fieldErrors, validatePrices(input.PurchasePrice, input.RetailPrice, input.WholesalePrice)...)
	if len(fieldErrors) > 0 {
		return nil, apperror.NewValidationError("Invalid product", fieldErrors...)
	}

	sku := strings.TrimSpace(input.SKU)
	if sku == "" {
		sku = utils.GenerateSKU()
	}

	existing, err := s.productRepo.GetByBarcode(ctx, input.Barcode)
	if err != nil {
		return nil, apperror.NewPersistenceError("Failed to check barcode", err)
	}
	if existing != nil {
		return nil, apperror.NewDuplicateError("Barcode already exists").WithDetail("product_id", existing.ID.String())
	}

	if err := s.checkCatalogRefs(ctx, input.CategoryID, input.BrandID); err != nil {
		return nil, err
	}

	product := &entity.Product{
		Barcode:              input.Barcode,
		SKU:                  sku,
		Name:                 input.Name,
		Description:          input.Description,
		CategoryID:           input.CategoryID,
		BrandID:              input.BrandID,
		VolumeML:             input.VolumeML,
		PurchasePrice:        input.PurchasePrice,
		RetailPrice:          input.RetailPrice,
		WholesaleMinQuantity: intOr(input.WholesaleMinQuantity, defaultWholesaleMinQuantity),
		CurrentStock:         input.CurrentStock,
		MinStock:             intOr(input.MinStock, defaultMinStock),
		MaxStock:             intOr(input.MaxStock, defaultMaxStock),
		ReorderPoint:         intOr(input.ReorderPoint, 0),
		IsActive:             input.IsActive == nil || *input.IsActive,
	}
	if input.AlcoholPercentage != nil {
		product.AlcoholPercentage = decimal.NewNullDecimal(*input.AlcoholPercentage)
	}
	if input.WholesalePrice != nil {
		product.WholesalePrice = decimal.NewNullDecimal(*input.WholesalePrice)
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		if database.IsUniqueViolation(err) {
			return nil, apperror.NewDuplicateError("Barcode or SKU already exists")
		}
		return nil, apperror.NewPersistenceError("Failed to create product", err)
	}

	s.audit.Record(ctx, actor, AuditEntry{
		Action:      enum.AuditActionCreate,
		Module:      enum.AuditModuleProducts,
		EntityID:    product.ID.String(),
		EntityName:  product.Name,
		Description: "Product created",
		NewValues:   productSnapshot(product),
	})

	return s.GetProduct(ctx, product.ID)
}

// GetProduct retrieves a product by ID
func (s *ProductService) GetProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.NewPersistenceError("Failed to load product", err)
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product").WithDetail("product_id", id.String())
	}
	return product, nil
}

// GetProductByBarcode retrieves a product by its scanned barcode
func (s *ProductService) GetProductByBarcode(ctx context.Context, barcode string) (*entity.Product, error) {
	product, err := s.productRepo.GetByBarcode(ctx, strings.TrimSpace(barcode))
	if err != nil {
		return nil, apperror.NewPersistenceError("Failed to load product", err)
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product").WithDetail("barcode", barcode)
	}
	return product, nil
}

// ListProducts lists products with filtering
func (s *ProductService) ListProducts(ctx context.Context, params *repository.ProductFilterParams) (*pagination.PaginatedResult[entity.Product], error) {
	if params.Pagination == nil {
		params.Pagination = &pagination.PaginationParams{}
	}
	params.Pagination.Validate()

	products, total, err := s.productRepo.List(ctx, params)
	if err != nil {
		return nil, apperror.NewPersistenceError("Failed to list products", err)
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(products, pag), nil
}

// LowStock lists active products at or below their minimum stock
func (s *ProductService) LowStock(ctx context.Context) ([]entity.Product, error) {
	products, err := s.productRepo.GetLowStock(ctx)
	if err != nil {
		return nil, apperror.NewPersistenceError("Failed to list low stock products", err)
	}
	if products == nil {
		products = []entity.Product{}
	}
	return products, nil
}

// Price list grouping modes
const (
	PriceListByCategory = "category"
	PriceListByBrand    = "brand"
	PriceListUngrouped  = "none"
)

// PriceListInput selects and orders the products of a price list
type PriceListInput struct {
	GroupBy      string
	SortBy       string
	SortOrder    string
	CategoryID   *uuid.UUID
	BrandID      *uuid.UUID
	IncludeStock bool
}

// PriceListItem is a product as shown on a printed price list. Stock
// fields are present only when requested.
type PriceListItem struct {
	ID                   uuid.UUID           `json:"id"`
	Barcode              string              `json:"barcode"`
	Name                 string              `json:"name"`
	Description          *string             `json:"description,omitempty"`
	VolumeML             *int                `json:"volume_ml,omitempty"`
	AlcoholPercentage    decimal.NullDecimal `json:"alcohol_percentage"`
	RetailPrice          decimal.Decimal     `json:"retail_price"`
	WholesalePrice       decimal.NullDecimal `json:"wholesale_price"`
	WholesaleMinQuantity int                 `json:"wholesale_min_quantity"`
	CurrentStock         *int                `json:"current_stock,omitempty"`
	IsLowStock           *bool               `json:"is_low_stock,omitempty"`
}

// PriceListGroup holds the products sharing a category or brand
type PriceListGroup struct {
	ID       *uuid.UUID      `json:"id"`
	Name     string          `json:"name"`
	Products []PriceListItem `json:"products"`
}

// PriceList is the price list response. Groups is set when grouped,
// Products otherwise.
type PriceList struct {
	GroupBy   string           `json:"group_by"`
	SortBy    string           `json:"sort_by"`
	SortOrder string           `json:"sort_order"`
	Grouped   bool             `json:"grouped"`
	Groups    []PriceListGroup `json:"groups,omitempty"`
	Products  []PriceListItem  `json:"products,omitempty"`
}

// PriceList lists active products for printing, optionally grouped by
// category or brand. Groups are ordered by name with the ungrouped bucket last.
func (s *ProductService) PriceList(ctx context.Context, input PriceListInput) (*PriceList, error) {
	if input.GroupBy == "" {
		input.GroupBy = PriceListByCategory
	}
	if input.SortBy == "" {
		input.SortBy = "name"
	}
	input.SortOrder = strings.ToLower(input.SortOrder)
	if input.SortOrder == "" {
		input.SortOrder = "asc"
	}
	switch input.GroupBy {
	case PriceListByCategory, PriceListByBrand, PriceListUngrouped:
	default:
		return nil, apperror.NewValidationError("Invalid query parameters",
			apperror.FieldError{Field: "group_by", Message: "must be one of category, brand, none"})
	}
	switch input.SortBy {
	case "name", "retail_price", "current_stock":
	default:
		return nil, apperror.NewValidationError("Invalid query parameters",
			apperror.FieldError{Field: "sort_by", Message: "must be one of name, retail_price, current_stock"})
	}
	if input.SortOrder != "asc" && input.SortOrder != "desc" {
		return nil, apperror.NewValidationError("Invalid query parameters",
			apperror.FieldError{Field: "sort_order", Message: "must be asc or desc"})
	}

	products, err := s.productRepo.ListActive(ctx, &repository.PriceListParams{
		CategoryID: input.CategoryID,
		BrandID:    input.BrandID,
		SortBy:     input.SortBy,
		Descending: input.SortOrder == "desc",
	})
	if err != nil {
		return nil, apperror.NewPersistenceError("Failed to build price list", err)
	}

	list := &PriceList{
		GroupBy:   input.GroupBy,
		SortBy:    input.SortBy,
		SortOrder: input.SortOrder,
		Grouped:   input.GroupBy != PriceListUngrouped,
	}

	if !list.Grouped {
		list.Products = make([]PriceListItem, 0, len(products))
		for i := range products {
			list.Products = append(list.Products, priceListItem(&products[i], input.IncludeStock))
		}
		return list, nil
	}

	index := make(map[string]int)
	for i := range products {
		p := &products[i]
		id, name := groupOf(p, input.GroupBy)
		key := ""
		if id != nil {
			key = id.String()
		}
		pos, ok := index[key]
		if !ok {
			pos = len(list.Groups)
			index[key] = pos
			list.Groups = append(list.Groups, PriceListGroup{ID: id, Name: name})
		}
		list.Groups[pos].Products = append(list.Groups[pos].Products, priceListItem(p, input.IncludeStock))
	}
	sort.SliceStable(list.Groups, func(i, j int) bool {
		a, b := list.Groups[i], list.Groups[j]
		if (a.ID == nil) != (b.ID == nil) {
			return b.ID == nil
		}
		return a.Name < b.Name
	})

	return list, nil
}

func groupOf(p *entity.Product, groupBy string) (*uuid.UUID, string) {
	if groupBy == PriceListByBrand {
		if p.Brand != nil {
			return &p.Brand.ID, p.Brand.Name
		}
		return nil, "No brand"
	}
	if p.Category != nil {
		return &p.Category.ID, p.Category.Name
	}
	return nil, "Uncategorized"
}

func priceListItem(p *entity.Product, includeStock bool) PriceListItem {
	item := PriceListItem{
		ID:                   p.ID,
		Barcode:              p.Barcode,
		Name:                 p.Name,
		Description:          p.Description,
		VolumeML:             p.VolumeML,
		AlcoholPercentage:    p.AlcoholPercentage,
		RetailPrice:          p.RetailPrice,
		WholesalePrice:       p.WholesalePrice,
		WholesaleMinQuantity: p.WholesaleMinQuantity,
	}
	if includeStock {
		stock, low := p.CurrentStock, p.IsLowStock()
		item.CurrentStock = &stock
		item.IsLowStock = &low
	}
	return item
}

// UpdateProductInput represents the update product input. Nil fields are
// left unchanged. Stock is adjusted through AdjustStock only.
type UpdateProductInput struct {
	Barcode              *string
	SKU                  *string
	Name                 *string
	Description          *string
	CategoryID           *uuid.UUID
	BrandID              *uuid.UUID
	VolumeML             *int
	AlcoholPercentage    *decimal.Decimal
	PurchasePrice        *decimal.Decimal
	RetailPrice          *decimal.Decimal
	WholesalePrice       *decimal.Decimal
	WholesaleMinQuantity *int
	MinStock             *int
	MaxStock             *int
	ReorderPoint         *int
	IsActive             *bool
}

// UpdateProduct updates a product
func (s *ProductService) UpdateProduct(ctx context.Context, actor Actor, id uuid.UUID, input *UpdateProductInput) (*entity.Product, error) {
	product, err := s.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	before := productSnapshot(product)

	if input.Barcode != nil && *input.Barcode != product.Barcode {
		barcode := strings.TrimSpace(*input.Barcode)
		if barcode == "" {
			return nil, apperror.NewValidationError("Invalid product", apperror.FieldError{Field: "barcode", Message: "must not be empty"})
		}
		existing, err := s.productRepo.GetByBarcode(ctx, barcode)
		if err != nil {
			return nil, apperror.NewPersistenceError("Failed to check barcode", err)
		}
		if existing != nil && existing.ID != product.ID {
			return nil, apperror.NewDuplicateError("Barcode already exists")
		}
		product.Barcode = barcode
	}
	if input.SKU != nil && strings.TrimSpace(*input.SKU) != "" {
		product.SKU = strings.TrimSpace(*input.SKU)
	}
	if input.Name != nil {
		if strings.TrimSpace(*input.Name) == "" {
			return nil, apperror.NewValidationError("Invalid product", apperror.FieldError{Field: "name", Message: "must not be empty"})
		}
		product.Name = strings.TrimSpace(*input.Name)
	}
	if input.Description != nil {
		product.Description = input.Description
	}
	if input.CategoryID != nil || input.BrandID != nil {
		if err := s.checkCatalogRefs(ctx, input.CategoryID, input.BrandID); err != nil {
			return nil, err
		}
		if input.CategoryID != nil {
			product.CategoryID = input.CategoryID
			product.Category = nil
		}
		if input.BrandID != nil {
			product.BrandID = input.BrandID
			product.Brand = nil
		}
	}
	if input.VolumeML != nil {
		product.VolumeML = input.VolumeML
	}
	if input.AlcoholPercentage != nil {
		product.AlcoholPercentage = decimal.NewNullDecimal(*input.AlcoholPercentage)
	}
	if input.PurchasePrice != nil {
		product.PurchasePrice = *input.PurchasePrice
	}
	if input.RetailPrice != nil {
		product.RetailPrice = *input.RetailPrice
	}
	if input.WholesalePrice != nil {
		product.WholesalePrice = decimal.NewNullDecimal(*input.WholesalePrice)
	}
	if input.WholesaleMinQuantity != nil {
		product.WholesaleMinQuantity = *input.WholesaleMinQuantity
	}
	if input.MinStock != nil {
		product.MinStock = *input.MinStock
	}
	if input.MaxStock != nil {
		product.MaxStock = *input.MaxStock
	}
	if input.ReorderPoint != nil {
		product.ReorderPoint = *input.ReorderPoint
	}
	if input.IsActive != nil {
		product.IsActive = *input.IsActive
	}

	var wholesale *decimal.Decimal
	if product.WholesalePrice.Valid {
		wholesale = &product.WholesalePrice.Decimal
	}
	if fieldErrors := validatePrices(product.PurchasePrice, product.RetailPrice, wholesale); len(fieldErrors) > 0 {
		return nil, apperror.NewValidationError("Invalid product", fieldErrors...)
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		if database.IsUniqueViolation(err) {
			return nil, apperror.NewDuplicateError("Barcode or SKU already exists")
		}
		return nil, apperror.NewPersistenceError("Failed to update product", err)
	}

	s.audit.Record(ctx, actor, AuditEntry{
		Action:      enum.AuditActionUpdate,
		Module:      enum.AuditModuleProducts,
		EntityID:    product.ID.String(),
		EntityName:  product.Name,
		Description: "Product updated",
		OldValues:   before,
		NewValues:   productSnapshot(product),
	})

	return s.GetProduct(ctx, product.ID)
}

// DeactivateProduct hides a product from sale. Rows are never deleted since
// sale items keep referencing them.
func (s *ProductService) DeactivateProduct(ctx context.Context, actor Actor, id uuid.UUID) error {
	product, err := s.GetProduct(ctx, id)
	if err != nil {
		return err
	}
	if !product.IsActive {
		return nil
	}

	product.IsActive = false
	if err := s.productRepo.Update(ctx, product); err != nil {
		return apperror.NewPersistenceError("Failed to deactivate product", err)
	}

	s.audit.Record(ctx, actor, AuditEntry{
		Action:      enum.AuditActionDelete,
		Module:      enum.AuditModuleProducts,
		EntityID:    product.ID.String(),
		EntityName:  product.Name,
		Description: "Product deactivated",
		OldValues:   entity.AuditValues{"is_active": true},
		NewValues:   entity.AuditValues{"is_active": false},
	})
	return nil
}

// AdjustStockInput represents a manual stock correction. Quantity is signed.
type AdjustStockInput struct {
	Quantity int
	Reason   string
}

// AdjustStock applies a manual correction and records it as an adjustment
// movement. The stock can never go below zero.
func (s *ProductService) AdjustStock(ctx context.Context, actor Actor, id uuid.UUID, input *AdjustStockInput) (*entity.Product, error) {
	if input.Quantity == 0 {
		return nil, apperror.NewValidationError("Invalid stock adjustment",
			apperror.FieldError{Field: "quantity", Message: "must not be zero"})
	}

	var previous int
	var name string
	err := s.txScope.Execute(ctx, func(repos repository.TransactionalRepositories) error {
		product, err := repos.Products().GetByID(ctx, id)
		if err != nil {
			return err
		}
		if product == nil {
			return apperror.NewNotFoundError("Product").WithDetail("product_id", id.String())
		}
		previous, name = product.CurrentStock, product.Name

		if input.Quantity < 0 {
			ok, err := repos.Products().DecrementStock(ctx, id, -input.Quantity)
			if err != nil {
				return err
			}
			if !ok {
				return apperror.NewInsufficientStockError(product.Name, product.CurrentStock, -input.Quantity).
					WithDetail("product_id", id.String())
			}
		} else if err := repos.Products().IncrementStock(ctx, id, input.Quantity); err != nil {
			return err
		}

		m := entity.NewInventoryMovement(product, enum.MovementTypeAdjustment, input.Quantity, previous, actor.UserID)
		refType := entity.ReferenceTypeAdjustment
		m.ReferenceType = &refType
		if input.Reason != "" {
			m.Notes = &input.Reason
		}
		return repos.Movements().Create(ctx, m)
	})
	if err != nil {
		if apperror.IsAppError(err) {
			return nil, err
		}
		s.logger.Error("Failed to adjust stock", zap.String("product_id", id.String()), zap.Error(err))
		return nil, apperror.NewPersistenceError("Failed to adjust stock", err)
	}

	description := "Stock adjusted"
	if input.Reason != "" {
		description += ": " + input.Reason
	}
	s.audit.Record(ctx, actor, AuditEntry{
		Action:      enum.AuditActionUpdate,
		Module:      enum.AuditModuleInventory,
		EntityID:    id.String(),
		EntityName:  name,
		Description: description,
		OldValues:   entity.AuditValues{"current_stock": previous},
		NewValues:   entity.AuditValues{"current_stock": previous + input.Quantity},
	})

	return s.GetProduct(ctx, id)
}

// Movements returns the latest stock movements of a product
func (s *ProductService) Movements(ctx context.Context, id uuid.UUID, limit int) ([]entity.InventoryMovement, error) {
	if _, err := s.GetProduct(ctx, id); err != nil {
		return nil, err
	}
	if limit < 1 || limit > pagination.MaxPerPage {
		limit = defaultMovementsLimit
	}
	movements, err := s.movementRepo.ListByProduct(ctx, id, limit)
	if err != nil {
		return nil, apperror.NewPersistenceError("Failed to list movements", err)
	}
	if movements == nil {
		movements = []entity.InventoryMovement{}
	}
	return movements, nil
}

func (s *ProductService) checkCatalogRefs(ctx context.Context, categoryID, brandID *uuid.UUID) error {
	if categoryID != nil {
		category, err := s.categoryRepo.GetByID(ctx, *categoryID)
		if err != nil {
			return apperror.NewPersistenceError("Failed to load category", err)
		}
		if category == nil {
			return apperror.NewNotFoundError("Category").WithDetail("category_id", categoryID.String())
		}
	}
	if brandID != nil {
		brand, err := s.brandRepo.GetByID(ctx, *brandID)
		if err != nil {
			return apperror.NewPersistenceError("Failed to load brand", err)
		}
		if brand == nil {
			return apperror.NewNotFoundError("Brand").WithDetail("brand_id", brandID.String())
		}
	}
	return nil
}

func validatePrices(purchase, retail decimal.Decimal, wholesale *decimal.Decimal) []apperror.FieldError {
	var errs []apperror.FieldError
	if purchase.IsNegative() {
		errs = append(errs, apperror.FieldError{Field: "purchase_price", Message: "must not be negative"})
	}
	if !retail.IsPositive() {
		errs = append(errs, apperror.FieldError{Field: "retail_price", Message: "must be greater than zero"})
	}
	if wholesale != nil && wholesale.IsNegative() {
		errs = append(errs, apperror.FieldError{Field: "wholesale_price", Message: "must not be negative"})
	}
	return errs
}

func productSnapshot(p *entity.Product) entity.AuditValues {
	v := entity.AuditValues{
		"barcode":        p.Barcode,
		"sku":            p.SKU,
		"name":           p.Name,
		"purchase_price": p.PurchasePrice.StringFixed(2),
		"retail_price":   p.RetailPrice.StringFixed(2),
		"current_stock":  p.CurrentStock,
		"min_stock":      p.MinStock,
		"max_stock":      p.MaxStock,
		"is_active":      p.IsActive,
	}
	if p.WholesalePrice.Valid {
		v["wholesale_price"] = p.WholesalePrice.Decimal.StringFixed(2)
	}
	return v
}

func intOr(v *int, fallback int) int {
	if v == nil {
		return fallback
	}
	return *v
}
