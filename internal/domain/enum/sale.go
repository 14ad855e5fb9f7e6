package enum

import (
	"encoding/json"
	"fmt"
)

// SaleType selects which configured unit price applies to every line of a sale.
type SaleType string

const (
	SaleTypeRetail    SaleType = "retail"
	SaleTypeWholesale SaleType = "wholesale"
)

func (t SaleType) String() string {
	return string(t)
}

func (t SaleType) IsValid() bool {
	switch t {
	case SaleTypeRetail, SaleTypeWholesale:
		return true
	}
	return false
}

func (t *SaleType) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	v := SaleType(s)
	if s != "" && !v.IsValid() {
		return fmt.Errorf("invalid sale type %q", s)
	}
	*t = v
	return nil
}

// PaymentMethod is how a sale was paid.
type PaymentMethod string

const (
	PaymentMethodCash     PaymentMethod = "cash"
	PaymentMethodCard     PaymentMethod = "card"
	PaymentMethodTransfer PaymentMethod = "transfer"
	PaymentMethodCredit   PaymentMethod = "credit"
)

func (m PaymentMethod) String() string {
	return string(m)
}

func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodCash, PaymentMethodCard, PaymentMethodTransfer, PaymentMethodCredit:
		return true
	}
	return false
}

func (m *PaymentMethod) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	v := PaymentMethod(s)
	if s != "" && !v.IsValid() {
		return fmt.Errorf("invalid payment method %q", s)
	}
	*m = v
	return nil
}

// PaymentStatus is the payment state of a sale. Cancelled is terminal.
type PaymentStatus string

const (
	PaymentStatusPaid      PaymentStatus = "paid"
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusPartial   PaymentStatus = "partial"
	PaymentStatusCancelled PaymentStatus = "cancelled"
)

func (s PaymentStatus) String() string {
	return string(s)
}

func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentStatusPaid, PaymentStatusPending, PaymentStatusPartial, PaymentStatusCancelled:
		return true
	}
	return false
}

// CanCancel reports whether a sale in this status may transition to cancelled.
func (s PaymentStatus) CanCancel() bool {
	return s == PaymentStatusPaid || s == PaymentStatusPending || s == PaymentStatusPartial
}

func (s *PaymentStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	v := PaymentStatus(str)
	if str != "" && !v.IsValid() {
		return fmt.Errorf("invalid payment status %q", str)
	}
	*s = v
	return nil
}
