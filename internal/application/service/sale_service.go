package service

import (
	"context"
	"errors"
	"fmt"
	"time"

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

const (
	saleNumberPrefix     = "V"
	defaultCancelReason  = "No reason given"
	summaryTopProducts   = 10
	maxDiscountPercent   = 100
	saleNumberDateLayout = "20060102"
)

// SaleService creates, cancels and reports on sales
type SaleService struct {
	txScope   repository.TransactionScope
	saleRepo  repository.SaleRepository
	analytics repository.SalesAnalyticsRepository
	audit     AuditRecorder
	logger    *zap.Logger
	clock     func() time.Time
	location  *time.Location
}

// NewSaleService creates a new sale service. loc selects the calendar day
// used for sale numbers and summaries.
func NewSaleService(
	txScope repository.TransactionScope,
	saleRepo repository.SaleRepository,
	analytics repository.SalesAnalyticsRepository,
	audit AuditRecorder,
	logger *zap.Logger,
	loc *time.Location,
) *SaleService {
	if loc == nil {
		loc = time.UTC
	}
	return &SaleService{
		txScope:   txScope,
		saleRepo:  saleRepo,
		analytics: analytics,
		audit:     audit,
		logger:    logger.Named("sales"),
		clock:     time.Now,
		location:  loc,
	}
}

// WithClock replaces the time source
func (s *SaleService) WithClock(clock func() time.Time) *SaleService {
	s.clock = clock
	return s
}

// SaleItemInput represents one requested line of a sale
type SaleItemInput struct {
	ProductID          uuid.UUID
	Quantity           int
	DiscountPercentage decimal.Decimal
	DiscountAmount     decimal.Decimal
}

// CreateSaleInput represents the create sale input
type CreateSaleInput struct {
	CustomerID    *uuid.UUID
	SaleType      enum.SaleType
	PaymentMethod enum.PaymentMethod
	PaymentStatus enum.PaymentStatus
	PaidAmount    *decimal.Decimal
	Notes         *string
	Items         []SaleItemInput
}

// CreateSale validates the request, then in one transaction checks every
// product, decrements stock, allocates the sale number and stores the sale
// with its items. Nothing is persisted unless every step succeeds.
func (s *SaleService) CreateSale(ctx context.Context, actor Actor, input *CreateSaleInput) (*entity.Sale, error) {
	if err := s.normalizeCreateInput(actor, input); err != nil {
		return nil, err
	}

	now := s.clock()
	sale := &entity.Sale{
		ID:            uuid.New(),
		CustomerID:    input.CustomerID,
		UserID:        actor.UserID,
		SaleType:      input.SaleType,
		PaymentMethod: input.PaymentMethod,
		PaymentStatus: input.PaymentStatus,
		Notes:         input.Notes,
		TaxAmount:     decimal.Zero,
		CreatedAt:     now.UTC(),
	}

	err := s.txScope.Execute(ctx, func(repos repository.TransactionalRepositories) error {
		if input.CustomerID != nil {
			if err := s.checkCustomer(ctx, repos.Customers(), *input.CustomerID); err != nil {
				return err
			}
		}

		items := make([]entity.SaleItem, 0, len(input.Items))
		movements := make([]*entity.InventoryMovement, 0, len(input.Items))
		subtotal, discountTotal := decimal.Zero, decimal.Zero

		for _, line := range input.Items {
			product, err := s.reserveStock(ctx, repos.Products(), line)
			if err != nil {
				return err
			}

			unitPrice := product.PriceFor(sale.SaleType == enum.SaleTypeWholesale)
			discount, err := lineDiscount(unitPrice, line)
			if err != nil {
				return err
			}
			lineSubtotal := unitPrice.Mul(decimal.NewFromInt(int64(line.Quantity))).Sub(discount)

			items = append(items, entity.SaleItem{
				SaleID:             sale.ID,
				ProductID:          product.ID,
				Quantity:           line.Quantity,
				UnitPrice:          unitPrice,
				DiscountPercentage: line.DiscountPercentage,
				DiscountAmount:     discount,
				Subtotal:           lineSubtotal,
				CreatedAt:          sale.CreatedAt,
			})
			movements = append(movements, s.saleMovement(product, enum.MovementTypeSale, -line.Quantity, product.CurrentStock, sale, actor))

			subtotal = subtotal.Add(lineSubtotal)
			discountTotal = discountTotal.Add(discount)
		}

		sale.Subtotal = subtotal
		sale.DiscountAmount = discountTotal
		sale.TotalAmount = subtotal.Add(sale.TaxAmount)
		sale.PaidAmount = sale.TotalAmount
		if input.PaidAmount != nil {
			sale.PaidAmount = *input.PaidAmount
		}
		sale.ChangeAmount = decimal.Max(decimal.Zero, sale.PaidAmount.Sub(sale.TotalAmount))

		number, err := s.nextSaleNumber(ctx, repos.SaleSequences(), now)
		if err != nil {
			return err
		}
		sale.SaleNumber = number

		if err := repos.Sales().Create(ctx, sale); err != nil {
			return err
		}
		if err := repos.Sales().CreateItems(ctx, items); err != nil {
			return err
		}
		for _, m := range movements {
			if err := repos.Movements().Create(ctx, m); err != nil {
				return err
			}
		}
		sale.Items = items
		return nil
	})
	if err != nil {
		if database.IsUniqueViolation(err) {
			s.logger.Warn("Sale number collision", zap.Error(err))
			return nil, apperror.NewPersistenceError("Sale number already in use, please retry", err)
		}
		return nil, s.persistenceError("Failed to create sale", err)
	}

	s.logger.Info("Sale created",
		zap.String("sale_id", sale.ID.String()),
		zap.String("sale_number", sale.SaleNumber),
		zap.String("total_amount", sale.TotalAmount.StringFixed(2)),
		zap.Int("items", len(sale.Items)),
	)

	s.audit.Record(ctx, actor, AuditEntry{
		Action:      enum.AuditActionCreate,
		Module:      enum.AuditModuleSales,
		EntityID:    sale.ID.String(),
		EntityName:  "Sale " + sale.SaleNumber,
		Description: "Sale created",
		NewValues: entity.AuditValues{
			"sale_number":  sale.SaleNumber,
			"total_amount": sale.TotalAmount.StringFixed(2),
			"items":        len(sale.Items),
		},
	})

	return s.composed(ctx, sale), nil
}

func (s *SaleService) normalizeCreateInput(actor Actor, input *CreateSaleInput) error {
	if actor.UserID == uuid.Nil {
		return apperror.ErrUnauthorized
	}
	if len(input.Items) == 0 {
		return apperror.NewValidationError("Sale must contain at least one item",
			apperror.FieldError{Field: "items", Message: "must not be empty"})
	}

	if input.SaleType == "" {
		input.SaleType = enum.SaleTypeRetail
	}
	if input.PaymentMethod == "" {
		input.PaymentMethod = enum.PaymentMethodCash
	}
	if input.PaymentStatus == "" {
		input.PaymentStatus = enum.PaymentStatusPaid
	}

	var fieldErrors []apperror.FieldError
	if !input.SaleType.IsValid() {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "sale_type", Message: "must be retail or wholesale"})
	}
	if !input.PaymentMethod.IsValid() {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "payment_method", Message: "is not a supported payment method"})
	}
	if !input.PaymentStatus.CanCancel() {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "payment_status", Message: "must be paid, pending or partial"})
	}
	if input.PaidAmount != nil && input.PaidAmount.IsNegative() {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "paid_amount", Message: "must not be negative"})
	}

	for i, item := range input.Items {
		field := fmt.Sprintf("items[%d]", i)
		if item.ProductID == uuid.Nil {
			fieldErrors = append(fieldErrors, apperror.FieldError{Field: field + ".product_id", Message: "is required"})
		}
		if item.Quantity < 1 {
			fieldErrors = append(fieldErrors, apperror.FieldError{Field: field + ".quantity", Message: "must be at least 1"})
		}
		if item.DiscountAmount.IsNegative() {
			fieldErrors = append(fieldErrors, apperror.FieldError{Field: field + ".discount_amount", Message: "must not be negative"})
		}
		if item.DiscountPercentage.IsNegative() || item.DiscountPercentage.GreaterThan(decimal.NewFromInt(maxDiscountPercent)) {
			fieldErrors = append(fieldErrors, apperror.FieldError{Field: field + ".discount_percentage", Message: "must be between 0 and 100"})
		}
	}

	if len(fieldErrors) > 0 {
		return apperror.NewValidationError("Invalid sale request", fieldErrors...)
	}
	return nil
}

func (s *SaleService) checkCustomer(ctx context.Context, customers repository.CustomerRepository, id uuid.UUID) error {
	customer, err := customers.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if customer == nil {
		return apperror.NewNotFoundError("Customer").WithDetail("customer_id", id.String())
	}
	if !customer.IsActive {
		return apperror.NewInactiveResourceError("Customer", customer.DisplayName()).
			WithDetail("customer_id", id.String())
	}
	return nil
}

// reserveStock validates one line against its product and takes the stock.
// The returned product carries the stock level seen before the decrement.
func (s *SaleService) reserveStock(ctx context.Context, products repository.ProductRepository, line SaleItemInput) (*entity.Product, error) {
	product, err := products.GetByID(ctx, line.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product").WithDetail("product_id", line.ProductID.String())
	}
	if !product.IsActive {
		return nil, apperror.NewInactiveResourceError("Product", product.Name).
			WithDetail("product_id", product.ID.String())
	}
	if product.CurrentStock < line.Quantity {
		return nil, apperror.NewInsufficientStockError(product.Name, product.CurrentStock, line.Quantity).
			WithDetail("product_id", product.ID.String())
	}

	ok, err := products.DecrementStock(ctx, product.ID, line.Quantity)
	if err != nil {
		return nil, err
	}
	if !ok {
		// Another transaction took the stock between the read and the update.
		current, err := products.GetByID(ctx, product.ID)
		if err != nil {
			return nil, err
		}
		available := 0
		if current != nil {
			available = current.CurrentStock
		}
		return nil, apperror.NewInsufficientStockError(product.Name, available, line.Quantity).
			WithDetail("product_id", product.ID.String())
	}
	return product, nil
}

// lineDiscount returns the discount amount of a line, zero when absent.
// The percentage is informational and stored as sent.
func lineDiscount(unitPrice decimal.Decimal, line SaleItemInput) (decimal.Decimal, error) {
	gross := unitPrice.Mul(decimal.NewFromInt(int64(line.Quantity)))
	discount := line.DiscountAmount
	if discount.GreaterThan(gross) {
		return decimal.Zero, apperror.NewValidationError("Discount exceeds line amount",
			apperror.FieldError{Field: "discount_amount", Message: "must not exceed " + gross.StringFixed(2)}).
			WithDetail("product_id", line.ProductID.String())
	}
	return discount, nil
}

// nextSaleNumber allocates V-YYYYMMDD-NNNN for the business day of now
func (s *SaleService) nextSaleNumber(ctx context.Context, sequences repository.SaleSequenceRepository, now time.Time) (string, error) {
	day := now.In(s.location).Format(saleNumberDateLayout)
	prefix := fmt.Sprintf("%s-%s-", saleNumberPrefix, day)

	seq, err := sequences.Next(ctx, day, prefix)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s%04d", prefix, seq), nil
}

func (s *SaleService) saleMovement(product *entity.Product, movementType enum.MovementType, delta, previous int, sale *entity.Sale, actor Actor) *entity.InventoryMovement {
	m := entity.NewInventoryMovement(product, movementType, delta, previous, actor.UserID)
	refType := entity.ReferenceTypeSale
	refID := sale.ID
	m.ReferenceType = &refType
	m.ReferenceID = &refID
	return m
}

// CancelSale moves a sale to cancelled and puts every line's quantity back
// into stock, atomically.
func (s *SaleService) CancelSale(ctx context.Context, actor Actor, id uuid.UUID, reason string) (*entity.Sale, error) {
	if reason == "" {
		reason = defaultCancelReason
	}

	var sale *entity.Sale
	var previousStatus enum.PaymentStatus

	err := s.txScope.Execute(ctx, func(repos repository.TransactionalRepositories) error {
		var err error
		sale, err = repos.Sales().GetByID(ctx, id)
		if err != nil {
			return err
		}
		if sale == nil {
			return apperror.NewNotFoundError("Sale").WithDetail("sale_id", id.String())
		}
		if !sale.PaymentStatus.CanCancel() {
			return alreadyCancelled(sale)
		}
		previousStatus = sale.PaymentStatus

		notes := cancellationNotes(sale.Notes, reason)
		if err := repos.Sales().UpdatePaymentStatus(ctx, sale.ID, enum.PaymentStatusCancelled, &notes); err != nil {
			if database.IsNotFound(err) {
				return alreadyCancelled(sale)
			}
			return err
		}
		sale.PaymentStatus = enum.PaymentStatusCancelled
		sale.Notes = &notes

		for _, item := range sale.Items {
			product, err := repos.Products().GetByID(ctx, item.ProductID)
			if err != nil {
				return err
			}
			if product == nil {
				s.logger.Warn("Product missing on cancellation, stock not restored",
					zap.String("product_id", item.ProductID.String()),
					zap.String("sale_number", sale.SaleNumber),
				)
				continue
			}
			if err := repos.Products().IncrementStock(ctx, product.ID, item.Quantity); err != nil {
				return err
			}

			restored := product.CurrentStock + item.Quantity
			if product.MaxStock > 0 && restored > product.MaxStock {
				s.logger.Warn("Restored stock exceeds maximum",
					zap.String("product_id", product.ID.String()),
					zap.String("sale_number", sale.SaleNumber),
					zap.Int("stock", restored),
					zap.Int("max_stock", product.MaxStock),
				)
			}

			m := s.saleMovement(product, enum.MovementTypeReturn, item.Quantity, product.CurrentStock, sale, actor)
			note := "Sale " + sale.SaleNumber + " cancelled"
			m.Notes = &note
			if err := repos.Movements().Create(ctx, m); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, s.persistenceError("Failed to cancel sale", err)
	}

	s.logger.Info("Sale cancelled",
		zap.String("sale_id", sale.ID.String()),
		zap.String("sale_number", sale.SaleNumber),
		zap.String("reason", reason),
	)

	s.audit.Record(ctx, actor, AuditEntry{
		Action:      enum.AuditActionUpdate,
		Module:      enum.AuditModuleSales,
		EntityID:    sale.ID.String(),
		EntityName:  "Sale " + sale.SaleNumber,
		Description: "Sale cancelled: " + reason,
		OldValues:   entity.AuditValues{"payment_status": string(previousStatus)},
		NewValues:   entity.AuditValues{"payment_status": string(enum.PaymentStatusCancelled)},
	})

	return s.composed(ctx, sale), nil
}

func alreadyCancelled(sale *entity.Sale) error {
	return apperror.NewConflictError("Sale is already cancelled").WithDetail("sale_id", sale.ID.String())
}

func cancellationNotes(existing *string, reason string) string {
	entry := "[CANCELLED] " + reason
	if existing == nil || *existing == "" {
		return entry
	}
	return *existing + "\n\n" + entry
}

// composed reloads the sale with its relations. The committed sale is
// returned as-is if the reload fails.
func (s *SaleService) composed(ctx context.Context, sale *entity.Sale) *entity.Sale {
	full, err := s.saleRepo.GetWithDetails(ctx, sale.ID)
	if err != nil || full == nil {
		s.logger.Warn("Failed to reload sale", zap.String("sale_id", sale.ID.String()), zap.Error(err))
		return sale
	}
	return full
}

// persistenceError passes application errors through and hides storage
// errors behind a persistence error.
func (s *SaleService) persistenceError(message string, err error) error {
	if apperror.IsAppError(err) {
		return err
	}
	if errors.Is(err, context.Canceled) {
		return apperror.NewPersistenceError(message, err)
	}
	s.logger.Error(message, zap.Error(err))
	return apperror.NewPersistenceError(message, err)
}

// GetSale returns a sale with items, customer and user
func (s *SaleService) GetSale(ctx context.Context, id uuid.UUID) (*entity.Sale, error) {
	sale, err := s.saleRepo.GetWithDetails(ctx, id)
	if err != nil {
		return nil, apperror.NewPersistenceError("Failed to load sale", err)
	}
	if sale == nil {
		return nil, apperror.NewNotFoundError("Sale").WithDetail("sale_id", id.String())
	}
	return sale, nil
}

// ListSalesInput holds sale query filters. Dates are calendar days in the
// business timezone, both inclusive.
type ListSalesInput struct {
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

// ListSales returns a page of sales, newest first
func (s *SaleService) ListSales(ctx context.Context, input *ListSalesInput) (*pagination.PaginatedResult[entity.Sale], error) {
	if input.Pagination == nil {
		input.Pagination = &pagination.PaginationParams{}
	}
	input.Pagination.Validate()

	params := &repository.SaleFilterParams{
		Pagination:    input.Pagination,
		Search:        input.Search,
		PaymentMethod: input.PaymentMethod,
		PaymentStatus: input.PaymentStatus,
		SaleType:      input.SaleType,
		CustomerID:    input.CustomerID,
		UserID:        input.UserID,
	}
	if input.StartDate != nil {
		start := s.startOfDay(*input.StartDate)
		params.StartDate = &start
	}
	if input.EndDate != nil {
		end := s.startOfDay(*input.EndDate).AddDate(0, 0, 1)
		params.EndDate = &end
	}

	sales, total, err := s.saleRepo.List(ctx, params)
	if err != nil {
		return nil, apperror.NewPersistenceError("Failed to list sales", err)
	}

	return pagination.NewPaginatedResult(sales,
		pagination.NewPagination(input.Pagination.Page, input.Pagination.PerPage, total)), nil
}

// SalesSummary aggregates non-cancelled sales
type SalesSummary struct {
	Today           repository.SalesTotals          `json:"today"`
	Week            repository.SalesTotals          `json:"week"`
	Month           repository.SalesTotals          `json:"month"`
	ByPaymentMethod []repository.PaymentMethodTotal `json:"by_payment_method"`
	TopProducts     []repository.TopProductResult   `json:"top_products"`
	GeneratedAt     time.Time                       `json:"generated_at"`
}

// GetSummary reports today, the last seven days including today, and the
// current month, all in the business timezone.
func (s *SaleService) GetSummary(ctx context.Context) (*SalesSummary, error) {
	now := s.clock().In(s.location)
	todayStart := s.startOfDay(now)
	tomorrow := todayStart.AddDate(0, 0, 1)
	weekStart := todayStart.AddDate(0, 0, -6)
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, s.location)

	summary := &SalesSummary{GeneratedAt: now}

	periods := []struct {
		from time.Time
		dest *repository.SalesTotals
	}{
		{todayStart, &summary.Today},
		{weekStart, &summary.Week},
		{monthStart, &summary.Month},
	}
	for _, p := range periods {
		totals, err := s.analytics.GetTotals(ctx, p.from, tomorrow)
		if err != nil {
			return nil, apperror.NewPersistenceError("Failed to compute sales summary", err)
		}
		*p.dest = *totals
	}

	byMethod, err := s.analytics.GetTotalsByPaymentMethod(ctx, monthStart, tomorrow)
	if err != nil {
		return nil, apperror.NewPersistenceError("Failed to compute sales summary", err)
	}
	top, err := s.analytics.GetTopProducts(ctx, monthStart, tomorrow, summaryTopProducts)
	if err != nil {
		return nil, apperror.NewPersistenceError("Failed to compute sales summary", err)
	}

	summary.ByPaymentMethod = byMethod
	summary.TopProducts = top
	if summary.ByPaymentMethod == nil {
		summary.ByPaymentMethod = []repository.PaymentMethodTotal{}
	}
	if summary.TopProducts == nil {
		summary.TopProducts = []repository.TopProductResult{}
	}
	return summary, nil
}

// startOfDay is midnight of t's calendar date in the business timezone
func (s *SaleService) startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, s.location)
}
