package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/liquorpos-api/internal/application/service"
	"github.com/sangkips/liquorpos-api/internal/domain/repository"
	"github.com/sangkips/liquorpos-api/internal/presentation/http/dto/request"
	"github.com/sangkips/liquorpos-api/internal/presentation/http/dto/response"
	"github.com/sangkips/liquorpos-api/pkg/pagination"
)

// ProductHandler handles product-related HTTP requests
type ProductHandler struct {
	productService *service.ProductService
}

// NewProductHandler creates a new product handler
func NewProductHandler(productService *service.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// List handles listing products
func (h *ProductHandler) List(c *gin.Context) {
	var filter request.ProductFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	params := &repository.ProductFilterParams{
		Pagination: &pagination.PaginationParams{
			Page:    filter.Page,
			PerPage: filter.PerPage,
		},
		Search:   filter.Search,
		LowStock: filter.LowStock,
	}

	var err error
	if params.CategoryID, err = optionalUUID("category_id", filter.CategoryID); err != nil {
		response.Error(c, err)
		return
	}
	if params.BrandID, err = optionalUUID("brand_id", filter.BrandID); err != nil {
		response.Error(c, err)
		return
	}
	if params.IsActive, err = optionalBool("is_active", filter.IsActive); err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.productService.ListProducts(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Products retrieved successfully", result)
}

// Create handles product creation
func (h *ProductHandler) Create(c *gin.Context) {
	var req request.CreateProductRequest
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}

	product, err := h.productService.CreateProduct(c.Request.Context(), GetActor(c), &service.CreateProductInput{
		Barcode:              req.Barcode,
		SKU:                  req.SKU,
		Name:                 req.Name,
		Description:          req.Description,
		CategoryID:           req.CategoryID,
		BrandID:              req.BrandID,
		VolumeML:             req.VolumeML,
		AlcoholPercentage:    req.AlcoholPercentage,
		PurchasePrice:        req.PurchasePrice,
		RetailPrice:          req.RetailPrice,
		WholesalePrice:       req.WholesalePrice,
		WholesaleMinQuantity: req.WholesaleMinQuantity,
		CurrentStock:         req.CurrentStock,
		MinStock:             req.MinStock,
		MaxStock:             req.MaxStock,
		ReorderPoint:         req.ReorderPoint,
		IsActive:             req.IsActive,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Product created successfully", product)
}

// Get handles retrieving a single product
func (h *ProductHandler) Get(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	product, err := h.productService.GetProduct(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Product retrieved successfully", product)
}

// GetByBarcode handles scanner lookups
func (h *ProductHandler) GetByBarcode(c *gin.Context) {
	product, err := h.productService.GetProductByBarcode(c.Request.Context(), c.Param("barcode"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Product retrieved successfully", product)
}

// LowStock handles listing products at or below their minimum stock
func (h *ProductHandler) LowStock(c *gin.Context) {
	products, err := h.productService.LowStock(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Low stock products retrieved successfully", products)
}

// PriceList handles the printable price list
func (h *ProductHandler) PriceList(c *gin.Context) {
	var req request.PriceListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	input := service.PriceListInput{
		GroupBy:      req.GroupBy,
		SortBy:       req.SortBy,
		SortOrder:    req.SortOrder,
		IncludeStock: req.IncludeStock,
	}
	var err error
	if input.CategoryID, err = optionalUUID("category_id", req.CategoryID); err != nil {
		response.Error(c, err)
		return
	}
	if input.BrandID, err = optionalUUID("brand_id", req.BrandID); err != nil {
		response.Error(c, err)
		return
	}

	list, err := h.productService.PriceList(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Price list retrieved successfully", list)
}

// Update handles product updates
func (h *ProductHandler) Update(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	var req request.UpdateProductRequest
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}

	product, err := h.productService.UpdateProduct(c.Request.Context(), GetActor(c), id, &service.UpdateProductInput{
		Barcode:              req.Barcode,
		SKU:                  req.SKU,
		Name:                 req.Name,
		Description:          req.Description,
		CategoryID:           req.CategoryID,
		BrandID:              req.BrandID,
		VolumeML:             req.VolumeML,
		AlcoholPercentage:    req.AlcoholPercentage,
		PurchasePrice:        req.PurchasePrice,
		RetailPrice:          req.RetailPrice,
		WholesalePrice:       req.WholesalePrice,
		WholesaleMinQuantity: req.WholesaleMinQuantity,
		MinStock:             req.MinStock,
		MaxStock:             req.MaxStock,
		ReorderPoint:         req.ReorderPoint,
		IsActive:             req.IsActive,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Product updated successfully", product)
}

// Delete handles product deactivation. Products referenced by sales are
// never removed.
func (h *ProductHandler) Delete(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.productService.DeactivateProduct(c.Request.Context(), GetActor(c), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Product deactivated successfully", nil)
}

// AdjustStock handles manual stock corrections
func (h *ProductHandler) AdjustStock(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	var req request.AdjustStockRequest
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}

	product, err := h.productService.AdjustStock(c.Request.Context(), GetActor(c), id, &service.AdjustStockInput{
		Quantity: req.Quantity,
		Reason:   req.Reason,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Stock adjusted successfully", product)
}

// Movements handles listing the inventory movements of a product
func (h *ProductHandler) Movements(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	limit, _ := strconv.Atoi(c.Query("limit"))

	movements, err := h.productService.Movements(c.Request.Context(), id, limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Inventory movements retrieved successfully", movements)
}
