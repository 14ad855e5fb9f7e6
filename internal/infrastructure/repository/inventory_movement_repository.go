package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/liquorpos-api/internal/domain/entity"
	domainRepo "github.com/sangkips/liquorpos-api/internal/domain/repository"
	"github.com/sangkips/liquorpos-api/pkg/pagination"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type inventoryMovementRepository struct {
	db *gorm.DB
}

// NewInventoryMovementRepository creates a new inventory movement repository
func NewInventoryMovementRepository(db *gorm.DB) domainRepo.InventoryMovementRepository {
	return &inventoryMovementRepository{db: db}
}

func (r *inventoryMovementRepository) Create(ctx context.Context, movement *entity.InventoryMovement) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(movement).Error
}

func (r *inventoryMovementRepository) ListByProduct(ctx context.Context, productID uuid.UUID, limit int) ([]entity.InventoryMovement, error) {
	if limit < 1 || limit > pagination.MaxPerPage {
		limit = pagination.DefaultPerPage
	}
	var movements []entity.InventoryMovement
	err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&movements).Error
	return movements, err
}

func (r *inventoryMovementRepository) ListByReference(ctx context.Context, referenceType string, referenceID uuid.UUID) ([]entity.InventoryMovement, error) {
	var movements []entity.InventoryMovement
	err := r.db.WithContext(ctx).
		Where("reference_type = ? AND reference_id = ?", referenceType, referenceID).
		Order("created_at ASC").
		Find(&movements).Error
	return movements, err
}
