package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/liquorpos-api/internal/domain/enum"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Sale is the header of a point-of-sale transaction. After creation only the
// payment status (and the notes, on cancellation) ever change.
type Sale struct {
	ID             uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	SaleNumber     string             `gorm:"size:20;uniqueIndex;not null" json:"sale_number"`
	CustomerID     *uuid.UUID         `gorm:"type:uuid;index" json:"customer_id,omitempty"`
	UserID         uuid.UUID          `gorm:"type:uuid;not null;index" json:"user_id"`
	SaleType       enum.SaleType      `gorm:"size:20;not null" json:"sale_type"`
	Subtotal       decimal.Decimal    `gorm:"type:decimal(12,2);not null" json:"subtotal"`
	DiscountAmount decimal.Decimal    `gorm:"type:decimal(12,2);not null" json:"discount_amount"`
	TaxAmount      decimal.Decimal    `gorm:"type:decimal(12,2);not null" json:"tax_amount"`
	TotalAmount    decimal.Decimal    `gorm:"type:decimal(12,2);not null" json:"total_amount"`
	PaymentMethod  enum.PaymentMethod `gorm:"size:20;not null" json:"payment_method"`
	PaymentStatus  enum.PaymentStatus `gorm:"size:20;not null;index" json:"payment_status"`
	PaidAmount     decimal.Decimal    `gorm:"type:decimal(12,2);not null" json:"paid_amount"`
	ChangeAmount   decimal.Decimal    `gorm:"type:decimal(12,2);not null" json:"change_amount"`
	Notes          *string            `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt      time.Time          `gorm:"index" json:"created_at"`
	UpdatedAt      time.Time          `json:"updated_at"`

	// Relationships
	Customer *Customer  `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	User     *User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Items    []SaleItem `gorm:"foreignKey:SaleID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
}

// BeforeCreate generates a UUID before creating a new sale
func (s *Sale) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Sale model
func (Sale) TableName() string {
	return "sales"
}

// IsCancelled reports whether the sale has been cancelled
func (s *Sale) IsCancelled() bool {
	return s.PaymentStatus == enum.PaymentStatusCancelled
}

// SaleItem is one product line of a sale, priced at the moment of sale.
// Subtotal == UnitPrice * Quantity - DiscountAmount.
type SaleItem struct {
	ID                 uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	SaleID             uuid.UUID       `gorm:"type:uuid;not null;index" json:"sale_id"`
	ProductID          uuid.UUID       `gorm:"type:uuid;not null;index" json:"product_id"`
	Quantity           int             `gorm:"not null;check:quantity >= 1" json:"quantity"`
	UnitPrice          decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"unit_price"`
	DiscountPercentage decimal.Decimal `gorm:"type:decimal(5,2);not null" json:"discount_percentage"`
	DiscountAmount     decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"discount_amount"`
	Subtotal           decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"subtotal"`
	CreatedAt          time.Time       `json:"created_at"`

	// Relationships
	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

// BeforeCreate generates a UUID before creating a new sale item
func (i *SaleItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the SaleItem model
func (SaleItem) TableName() string {
	return "sale_items"
}

// SaleSequence is the per-day counter behind V-YYYYMMDD-NNNN sale numbers.
type SaleSequence struct {
	Day       string `gorm:"primaryKey;size:8"`
	LastValue int    `gorm:"not null"`
	UpdatedAt time.Time
}

// TableName returns the table name for the SaleSequence model
func (SaleSequence) TableName() string {
	return "sale_sequences"
}
