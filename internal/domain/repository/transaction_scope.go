package repository

import "context"

// TransactionScope runs a unit of work in one database transaction.
// If fn returns an error every write made through repos is rolled back.
type TransactionScope interface {
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories hands out repositories bound to the current
// transaction. Repositories obtained elsewhere do not take part in it.
type TransactionalRepositories interface {
	Products() ProductRepository
	Customers() CustomerRepository
	Sales() SaleRepository
	SaleSequences() SaleSequenceRepository
	Movements() InventoryMovementRepository
}
