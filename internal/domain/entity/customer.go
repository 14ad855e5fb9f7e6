package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/liquorpos-api/internal/domain/enum"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Customer is an optional party attached to a sale.
type Customer struct {
	ID             uuid.UUID         `gorm:"type:uuid;primary_key" json:"id"`
	CustomerType   enum.CustomerType `gorm:"size:20;not null" json:"customer_type"`
	FirstName      *string           `gorm:"size:100" json:"first_name,omitempty"`
	LastName       *string           `gorm:"size:100" json:"last_name,omitempty"`
	CompanyName    *string           `gorm:"size:255" json:"company_name,omitempty"`
	TaxID          *string           `gorm:"size:50" json:"tax_id,omitempty"`
	Email          *string           `gorm:"size:255;uniqueIndex" json:"email,omitempty"`
	Phone          *string           `gorm:"size:50" json:"phone,omitempty"`
	Address        *string           `gorm:"type:text" json:"address,omitempty"`
	CreditLimit    decimal.Decimal   `gorm:"type:decimal(12,2);not null" json:"credit_limit"`
	CurrentBalance decimal.Decimal   `gorm:"type:decimal(12,2);not null" json:"current_balance"`
	LoyaltyPoints  int               `gorm:"not null" json:"loyalty_points"`
	IsWholesale    bool              `gorm:"not null" json:"is_wholesale"`
	IsActive       bool              `gorm:"not null;index" json:"is_active"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
}

// BeforeCreate generates a UUID before creating a new customer
func (c *Customer) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Customer model
func (Customer) TableName() string {
	return "customers"
}

// DisplayName is the company name for businesses, the person's name otherwise.
func (c *Customer) DisplayName() string {
	if c.CompanyName != nil && *c.CompanyName != "" {
		return *c.CompanyName
	}
	var parts []string
	if c.FirstName != nil && *c.FirstName != "" {
		parts = append(parts, *c.FirstName)
	}
	if c.LastName != nil && *c.LastName != "" {
		parts = append(parts, *c.LastName)
	}
	return strings.Join(parts, " ")
}
