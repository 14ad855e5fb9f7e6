package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/liquorpos-api/internal/domain/enum"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Movement reference types
const (
	ReferenceTypeSale       = "sale"
	ReferenceTypeAdjustment = "adjustment"
)

// InventoryMovement records a single stock change with the level before and
// after it. Quantity is signed: negative for outgoing stock.
type InventoryMovement struct {
	ID            uuid.UUID         `gorm:"type:uuid;primary_key" json:"id"`
	ProductID     uuid.UUID         `gorm:"type:uuid;not null;index" json:"product_id"`
	MovementType  enum.MovementType `gorm:"size:20;not null;index" json:"movement_type"`
	Quantity      int               `gorm:"not null" json:"quantity"`
	PreviousStock int               `gorm:"not null" json:"previous_stock"`
	NewStock      int               `gorm:"not null" json:"new_stock"`
	UnitCost      decimal.Decimal   `gorm:"type:decimal(12,2);not null" json:"unit_cost"`
	TotalCost     decimal.Decimal   `gorm:"type:decimal(12,2);not null" json:"total_cost"`
	ReferenceType *string           `gorm:"size:50" json:"reference_type,omitempty"`
	ReferenceID   *uuid.UUID        `gorm:"type:uuid;index" json:"reference_id,omitempty"`
	Notes         *string           `gorm:"type:text" json:"notes,omitempty"`
	UserID        uuid.UUID         `gorm:"type:uuid;not null" json:"user_id"`
	CreatedAt     time.Time         `gorm:"index" json:"created_at"`

	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

// BeforeCreate generates a UUID before creating a new movement
func (m *InventoryMovement) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the InventoryMovement model
func (InventoryMovement) TableName() string {
	return "inventory_movements"
}

// NewInventoryMovement builds a movement for a product whose stock went from
// previous to previous+delta, costed at the product's purchase price.
func NewInventoryMovement(product *Product, movementType enum.MovementType, delta, previous int, userID uuid.UUID) *InventoryMovement {
	cost := product.PurchasePrice
	abs := delta
	if abs < 0 {
		abs = -abs
	}
	return &InventoryMovement{
		ProductID:     product.ID,
		MovementType:  movementType,
		Quantity:      delta,
		PreviousStock: previous,
		NewStock:      previous + delta,
		UnitCost:      cost,
		TotalCost:     cost.Mul(decimal.NewFromInt(int64(abs))),
		UserID:        userID,
	}
}
