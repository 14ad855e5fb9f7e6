package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/liquorpos-api/internal/domain/entity"
)

// InventoryMovementRepository defines the interface for the stock movement ledger
type InventoryMovementRepository interface {
	Create(ctx context.Context, movement *entity.InventoryMovement) error
	// ListByProduct returns the latest movements of a product, newest first.
	ListByProduct(ctx context.Context, productID uuid.UUID, limit int) ([]entity.InventoryMovement, error)
	ListByReference(ctx context.Context, referenceType string, referenceID uuid.UUID) ([]entity.InventoryMovement, error)
}
