package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/liquorpos-api/internal/application/service"
	"github.com/sangkips/liquorpos-api/internal/domain/enum"
	"github.com/sangkips/liquorpos-api/internal/presentation/http/dto/request"
	"github.com/sangkips/liquorpos-api/internal/presentation/http/dto/response"
	"github.com/sangkips/liquorpos-api/pkg/apperror"
	"github.com/sangkips/liquorpos-api/pkg/pagination"
)

// SaleHandler handles sale-related HTTP requests
type SaleHandler struct {
	saleService    *service.SaleService
	printerService *service.PrinterService
}

// NewSaleHandler creates a new sale handler
func NewSaleHandler(saleService *service.SaleService, printerService *service.PrinterService) *SaleHandler {
	return &SaleHandler{saleService: saleService, printerService: printerService}
}

// Create handles sale creation
func (h *SaleHandler) Create(c *gin.Context) {
	var req request.CreateSaleRequest
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}

	input := &service.CreateSaleInput{
		CustomerID:    req.CustomerID,
		SaleType:      req.SaleType,
		PaymentMethod: req.PaymentMethod,
		PaymentStatus: req.PaymentStatus,
		PaidAmount:    req.PaidAmount,
		Notes:         req.Notes,
		Items:         make([]service.SaleItemInput, 0, len(req.Items)),
	}
	for _, it := range req.Items {
		input.Items = append(input.Items, service.SaleItemInput{
			ProductID:          it.ProductID,
			Quantity:           it.Quantity,
			DiscountPercentage: it.DiscountPercentage,
			DiscountAmount:     it.DiscountAmount,
		})
	}

	sale, err := h.saleService.CreateSale(c.Request.Context(), GetActor(c), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Sale created successfully", sale)
}

// List handles listing sales
func (h *SaleHandler) List(c *gin.Context) {
	var filter request.SaleFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	input, err := saleListInput(&filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.saleService.ListSales(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Sales retrieved successfully", result)
}

func saleListInput(filter *request.SaleFilterRequest) (*service.ListSalesInput, error) {
	input := &service.ListSalesInput{
		Pagination: &pagination.PaginationParams{Page: filter.Page, PerPage: filter.PerPage},
		Search:     filter.Search,
	}

	var err error
	if input.StartDate, err = optionalDate("start_date", filter.StartDate); err != nil {
		return nil, err
	}
	if input.EndDate, err = optionalDate("end_date", filter.EndDate); err != nil {
		return nil, err
	}
	if input.StartDate != nil && input.EndDate != nil && input.EndDate.Before(*input.StartDate) {
		return nil, apperror.NewValidationError("Invalid query parameters",
			apperror.FieldError{Field: "end_date", Message: "must not be before start_date"})
	}
	if input.CustomerID, err = optionalUUID("customer_id", filter.CustomerID); err != nil {
		return nil, err
	}
	if input.UserID, err = optionalUUID("user_id", filter.UserID); err != nil {
		return nil, err
	}

	if filter.PaymentMethod != "" {
		m := enum.PaymentMethod(filter.PaymentMethod)
		if !m.IsValid() {
			return nil, apperror.NewValidationError("Invalid query parameters",
				apperror.FieldError{Field: "payment_method", Message: "is not a supported payment method"})
		}
		input.PaymentMethod = &m
	}
	if filter.PaymentStatus != "" {
		s := enum.PaymentStatus(filter.PaymentStatus)
		if !s.IsValid() {
			return nil, apperror.NewValidationError("Invalid query parameters",
				apperror.FieldError{Field: "payment_status", Message: "is not a known payment status"})
		}
		input.PaymentStatus = &s
	}
	if filter.SaleType != "" {
		t := enum.SaleType(filter.SaleType)
		if !t.IsValid() {
			return nil, apperror.NewValidationError("Invalid query parameters",
				apperror.FieldError{Field: "sale_type", Message: "must be retail or wholesale"})
		}
		input.SaleType = &t
	}
	return input, nil
}

// Get handles retrieving a sale with its items, customer and cashier
func (h *SaleHandler) Get(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	sale, err := h.saleService.GetSale(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Sale retrieved successfully", sale)
}

// Summary handles the sales dashboard summary
func (h *SaleHandler) Summary(c *gin.Context) {
	summary, err := h.saleService.GetSummary(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Sales summary retrieved successfully", summary)
}

// Cancel handles sale cancellation
func (h *SaleHandler) Cancel(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	var req request.CancelSaleRequest
	if c.Request.ContentLength != 0 {
		if err := bindJSON(c, &req); err != nil {
			response.Error(c, err)
			return
		}
	}

	sale, err := h.saleService.CancelSale(c.Request.Context(), GetActor(c), id, req.Reason)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Sale cancelled successfully", sale)
}

// Receipt prints the receipt of a sale. When the printer fails the receipt
// is still returned with a warning so the front-end can render it.
func (h *SaleHandler) Receipt(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	receipt, err := h.printerService.PrintSaleReceipt(c.Request.Context(), id)
	if err != nil {
		if receipt != nil {
			response.SuccessWithWarning(c, 200, "Receipt generated but printing failed", err.Error(), gin.H{"receipt": receipt})
			return
		}
		response.Error(c, err)
		return
	}

	response.OK(c, "Receipt printed successfully", gin.H{"receipt": receipt})
}
