package request

import (
	"github.com/sangkips/liquorpos-api/internal/domain/enum"
	"github.com/shopspring/decimal"
)

// CustomerRequest is the body of customer create and update requests.
// Omitted fields are left unchanged on update.
type CustomerRequest struct {
	CustomerType  *enum.CustomerType `json:"customer_type"`
	FirstName     *string            `json:"first_name" binding:"omitempty,max=100"`
	LastName      *string            `json:"last_name" binding:"omitempty,max=100"`
	CompanyName   *string            `json:"company_name" binding:"omitempty,max=255"`
	TaxID         *string            `json:"tax_id" binding:"omitempty,max=50"`
	Email         *string            `json:"email" binding:"omitempty,max=255"`
	Phone         *string            `json:"phone" binding:"omitempty,max=50"`
	Address       *string            `json:"address"`
	CreditLimit   *decimal.Decimal   `json:"credit_limit"`
	LoyaltyPoints *int               `json:"loyalty_points" binding:"omitempty,min=0"`
	IsWholesale   *bool              `json:"is_wholesale"`
	IsActive      *bool              `json:"is_active"`
}

// CustomerFilterRequest represents customer list query parameters
type CustomerFilterRequest struct {
	Search       string `form:"search"`
	CustomerType string `form:"customer_type"`
	IsWholesale  string `form:"is_wholesale"`
	IsActive     string `form:"is_active"`
	Page         int    `form:"page"`
	PerPage      int    `form:"per_page"`
}

// AuditLogFilterRequest represents audit log query parameters
type AuditLogFilterRequest struct {
	Cursor    string `form:"cursor"`
	Limit     int    `form:"limit"`
	Module    string `form:"module"`
	Action    string `form:"action"`
	UserID    string `form:"user_id"`
	EntityID  string `form:"entity_id"`
	StartDate string `form:"start_date"`
	EndDate   string `form:"end_date"`
}
