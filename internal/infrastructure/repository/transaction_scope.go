package repository

import (
	"context"

	domainRepo "github.com/sangkips/liquorpos-api/internal/domain/repository"
	"gorm.io/gorm"
)

// GormTransactionScope runs units of work inside a gorm transaction
type GormTransactionScope struct {
	db *gorm.DB
}

// NewGormTransactionScope creates a new GormTransactionScope
func NewGormTransactionScope(db *gorm.DB) *GormTransactionScope {
	return &GormTransactionScope{db: db}
}

// Execute commits when fn returns nil and rolls back otherwise
func (s *GormTransactionScope) Execute(ctx context.Context, fn func(repos domainRepo.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormTransactionalRepositories{tx: tx})
	})
}

type gormTransactionalRepositories struct {
	tx *gorm.DB
}

func (r *gormTransactionalRepositories) Products() domainRepo.ProductRepository {
	return NewProductRepository(r.tx)
}

func (r *gormTransactionalRepositories) Customers() domainRepo.CustomerRepository {
	return NewCustomerRepository(r.tx)
}

func (r *gormTransactionalRepositories) Sales() domainRepo.SaleRepository {
	return NewSaleRepository(r.tx)
}

func (r *gormTransactionalRepositories) SaleSequences() domainRepo.SaleSequenceRepository {
	return NewSaleSequenceRepository(r.tx)
}

func (r *gormTransactionalRepositories) Movements() domainRepo.InventoryMovementRepository {
	return NewInventoryMovementRepository(r.tx)
}

var _ domainRepo.TransactionScope = (*GormTransactionScope)(nil)
var _ domainRepo.TransactionalRepositories = (*gormTransactionalRepositories)(nil)
