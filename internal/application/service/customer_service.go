package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/sangkips/liquorpos-api/internal/domain/entity"
	"github.com/sangkips/liquorpos-api/internal/domain/enum"
	"github.com/sangkips/liquorpos-api/internal/domain/repository"
	"github.com/sangkips/liquorpos-api/internal/infrastructure/database"
	"github.com/sangkips/liquorpos-api/pkg/apperror"
	"github.com/sangkips/liquorpos-api/pkg/pagination"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// CustomerService handles customer-related operations
type CustomerService struct {
	customerRepo repository.CustomerRepository
	audit        AuditRecorder
	logger       *zap.Logger
}

// NewCustomerService creates a new customer service
func NewCustomerService(customerRepo repository.CustomerRepository, audit AuditRecorder, logger *zap.Logger) *CustomerService {
	return &CustomerService{
		customerRepo: customerRepo,
		audit:        audit,
		logger:       logger.Named("customers"),
	}
}

// CustomerInput carries customer fields. On update nil fields are left
// unchanged.
type CustomerInput struct {
	CustomerType  *enum.CustomerType
	FirstName     *string
	LastName      *string
	CompanyName   *string
	TaxID         *string
	Email         *string
	Phone         *string
	Address       *string
	CreditLimit   *decimal.Decimal
	LoyaltyPoints *int
	IsWholesale   *bool
	IsActive      *bool
}

// CreateCustomer creates a new customer
func (s *CustomerService) CreateCustomer(ctx context.Context, actor Actor, input *CustomerInput) (*entity.Customer, error) {
	customer := &entity.Customer{
		CustomerType:   enum.CustomerTypeIndividual,
		CreditLimit:    decimal.Zero,
		CurrentBalance: decimal.Zero,
		IsActive:       true,
	}
	if err := s.apply(ctx, customer, input); err != nil {
		return nil, err
	}

	if err := s.customerRepo.Create(ctx, customer); err != nil {
		if database.IsUniqueViolation(err) {
			return nil, apperror.NewDuplicateError("Email already exists")
		}
		return nil, apperror.NewPersistenceError("Failed to create customer", err)
	}

	s.audit.Record(ctx, actor, AuditEntry{
		Action:      enum.AuditActionCreate,
		Module:      enum.AuditModuleCustomers,
		EntityID:    customer.ID.String(),
		EntityName:  customer.DisplayName(),
		Description: "Customer created",
		NewValues:   customerSnapshot(customer),
	})
	return customer, nil
}

// GetCustomer retrieves a customer by ID
func (s *CustomerService) GetCustomer(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.NewPersistenceError("Failed to load customer", err)
	}
	if customer == nil {
		return nil, apperror.NewNotFoundError("Customer").WithDetail("customer_id", id.String())
	}
	return customer, nil
}

// ListCustomers lists customers with filtering
func (s *CustomerService) ListCustomers(ctx context.Context, params *repository.CustomerFilterParams) (*pagination.PaginatedResult[entity.Customer], error) {
	if params.Pagination == nil {
		params.Pagination = &pagination.PaginationParams{}
	}
	params.Pagination.Validate()

	customers, total, err := s.customerRepo.List(ctx, params)
	if err != nil {
		return nil, apperror.NewPersistenceError("Failed to list customers", err)
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(customers, pag), nil
}

// UpdateCustomer updates a customer
func (s *CustomerService) UpdateCustomer(ctx context.Context, actor Actor, id uuid.UUID, input *CustomerInput) (*entity.Customer, error) {
	customer, err := s.GetCustomer(ctx, id)
	if err != nil {
		return nil, err
	}
	before := customerSnapshot(customer)

	if err := s.apply(ctx, customer, input); err != nil {
		return nil, err
	}

	if err := s.customerRepo.Update(ctx, customer); err != nil {
		if database.IsUniqueViolation(err) {
			return nil, apperror.NewDuplicateError("Email already exists")
		}
		return nil, apperror.NewPersistenceError("Failed to update customer", err)
	}

	s.audit.Record(ctx, actor, AuditEntry{
		Action:      enum.AuditActionUpdate,
		Module:      enum.AuditModuleCustomers,
		EntityID:    customer.ID.String(),
		EntityName:  customer.DisplayName(),
		Description: "Customer updated",
		OldValues:   before,
		NewValues:   customerSnapshot(customer),
	})
	return customer, nil
}

// DeactivateCustomer disables a customer for future sales
func (s *CustomerService) DeactivateCustomer(ctx context.Context, actor Actor, id uuid.UUID) error {
	customer, err := s.GetCustomer(ctx, id)
	if err != nil {
		return err
	}
	if !customer.IsActive {
		return nil
	}
	customer.IsActive = false

	if err := s.customerRepo.Update(ctx, customer); err != nil {
		return apperror.NewPersistenceError("Failed to deactivate customer", err)
	}

	s.audit.Record(ctx, actor, AuditEntry{
		Action:      enum.AuditActionDelete,
		Module:      enum.AuditModuleCustomers,
		EntityID:    customer.ID.String(),
		EntityName:  customer.DisplayName(),
		Description: "Customer deactivated",
		OldValues:   entity.AuditValues{"is_active": true},
		NewValues:   entity.AuditValues{"is_active": false},
	})
	return nil
}

func (s *CustomerService) apply(ctx context.Context, c *entity.Customer, in *CustomerInput) error {
	var fieldErrors []apperror.FieldError

	if in.CustomerType != nil {
		if !in.CustomerType.IsValid() {
			fieldErrors = append(fieldErrors, apperror.FieldError{Field: "customer_type", Message: "must be individual or business"})
		} else {
			c.CustomerType = *in.CustomerType
		}
	}
	setTrimmed(&c.FirstName, in.FirstName)
	setTrimmed(&c.LastName, in.LastName)
	setTrimmed(&c.CompanyName, in.CompanyName)
	setTrimmed(&c.TaxID, in.TaxID)
	setTrimmed(&c.Phone, in.Phone)
	setTrimmed(&c.Address, in.Address)

	if in.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*in.Email))
		switch {
		case email == "":
			c.Email = nil
		case !strings.Contains(email, "@"):
			fieldErrors = append(fieldErrors, apperror.FieldError{Field: "email", Message: "is not a valid email address"})
		default:
			existing, err := s.customerRepo.GetByEmail(ctx, email)
			if err != nil {
				return apperror.NewPersistenceError("Failed to check email", err)
			}
			if existing != nil && existing.ID != c.ID {
				return apperror.NewDuplicateError("Email already exists")
			}
			c.Email = &email
		}
	}
	if in.CreditLimit != nil {
		if in.CreditLimit.IsNegative() {
			fieldErrors = append(fieldErrors, apperror.FieldError{Field: "credit_limit", Message: "must not be negative"})
		} else {
			c.CreditLimit = *in.CreditLimit
		}
	}
	if in.LoyaltyPoints != nil {
		c.LoyaltyPoints = *in.LoyaltyPoints
	}
	if in.IsWholesale != nil {
		c.IsWholesale = *in.IsWholesale
	}
	if in.IsActive != nil {
		c.IsActive = *in.IsActive
	}

	if c.DisplayName() == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "first_name", Message: "a name or company name is required"})
	}
	if c.CustomerType == enum.CustomerTypeBusiness && (c.CompanyName == nil || *c.CompanyName == "") {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "company_name", Message: "is required for business customers"})
	}

	if len(fieldErrors) > 0 {
		return apperror.NewValidationError("Invalid customer", fieldErrors...)
	}
	return nil
}

// setTrimmed assigns a trimmed copy of v; an empty value clears the field
func setTrimmed(dst **string, v *string) {
	if v == nil {
		return
	}
	trimmed := strings.TrimSpace(*v)
	if trimmed == "" {
		*dst = nil
		return
	}
	*dst = &trimmed
}

func customerSnapshot(c *entity.Customer) entity.AuditValues {
	v := entity.AuditValues{
		"customer_type": string(c.CustomerType),
		"name":          c.DisplayName(),
		"credit_limit":  c.CreditLimit.StringFixed(2),
		"is_wholesale":  c.IsWholesale,
		"is_active":     c.IsActive,
	}
	if c.Email != nil {
		v["email"] = *c.Email
	}
	return v
}
