package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/liquorpos-api/internal/application/service"
	"github.com/sangkips/liquorpos-api/internal/domain/enum"
	"github.com/sangkips/liquorpos-api/internal/domain/repository"
	"github.com/sangkips/liquorpos-api/internal/presentation/http/dto/request"
	"github.com/sangkips/liquorpos-api/internal/presentation/http/dto/response"
	"github.com/sangkips/liquorpos-api/pkg/apperror"
	"github.com/sangkips/liquorpos-api/pkg/pagination"
)

// CustomerHandler handles customer-related HTTP requests
type CustomerHandler struct {
	customerService *service.CustomerService
}

// NewCustomerHandler creates a new customer handler
func NewCustomerHandler(customerService *service.CustomerService) *CustomerHandler {
	return &CustomerHandler{customerService: customerService}
}

// List handles listing customers
func (h *CustomerHandler) List(c *gin.Context) {
	var filter request.CustomerFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	params := &repository.CustomerFilterParams{
		Pagination: &pagination.PaginationParams{Page: filter.Page, PerPage: filter.PerPage},
		Search:     filter.Search,
	}
	if filter.CustomerType != "" {
		t := enum.CustomerType(filter.CustomerType)
		if !t.IsValid() {
			response.Error(c, apperror.NewValidationError("Invalid query parameters",
				apperror.FieldError{Field: "customer_type", Message: "must be individual or business"}))
			return
		}
		params.CustomerType = &t
	}

	var err error
	if params.IsWholesale, err = optionalBool("is_wholesale", filter.IsWholesale); err != nil {
		response.Error(c, err)
		return
	}
	if params.IsActive, err = optionalBool("is_active", filter.IsActive); err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.customerService.ListCustomers(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Customers retrieved successfully", result)
}

// Create handles customer creation
func (h *CustomerHandler) Create(c *gin.Context) {
	var req request.CustomerRequest
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}

	customer, err := h.customerService.CreateCustomer(c.Request.Context(), GetActor(c), customerInput(&req))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Customer created successfully", customer)
}

// Get handles retrieving a single customer
func (h *CustomerHandler) Get(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	customer, err := h.customerService.GetCustomer(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Customer retrieved successfully", customer)
}

// Update handles customer updates
func (h *CustomerHandler) Update(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	var req request.CustomerRequest
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}

	customer, err := h.customerService.UpdateCustomer(c.Request.Context(), GetActor(c), id, customerInput(&req))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Customer updated successfully", customer)
}

// Delete handles customer deactivation
func (h *CustomerHandler) Delete(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.customerService.DeactivateCustomer(c.Request.Context(), GetActor(c), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Customer deactivated successfully", nil)
}

func customerInput(req *request.CustomerRequest) *service.CustomerInput {
	return &service.CustomerInput{
		CustomerType:  req.CustomerType,
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		CompanyName:   req.CompanyName,
		TaxID:         req.TaxID,
		Email:         req.Email,
		Phone:         req.Phone,
		Address:       req.Address,
		CreditLimit:   req.CreditLimit,
		LoyaltyPoints: req.LoyaltyPoints,
		IsWholesale:   req.IsWholesale,
		IsActive:      req.IsActive,
	}
}
