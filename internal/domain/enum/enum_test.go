package enum

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaleType_UnmarshalJSON(t *testing.T) {
	var v struct {
		Type SaleType `json:"sale_type"`
	}

	require.NoError(t, json.Unmarshal([]byte(`{"sale_type":"wholesale"}`), &v))
	assert.Equal(t, SaleTypeWholesale, v.Type)

	require.NoError(t, json.Unmarshal([]byte(`{"sale_type":""}`), &v))
	assert.Equal(t, SaleType(""), v.Type)

	assert.Error(t, json.Unmarshal([]byte(`{"sale_type":"bulk"}`), &v))
}

func TestPaymentMethod_UnmarshalJSON(t *testing.T) {
	var m PaymentMethod
	require.NoError(t, json.Unmarshal([]byte(`"card"`), &m))
	assert.Equal(t, PaymentMethodCard, m)
	assert.Error(t, json.Unmarshal([]byte(`"bitcoin"`), &m))
}

func TestPaymentStatus_CanCancel(t *testing.T) {
	assert.True(t, PaymentStatusPaid.CanCancel())
	assert.True(t, PaymentStatusPending.CanCancel())
	assert.True(t, PaymentStatusPartial.CanCancel())
	assert.False(t, PaymentStatusCancelled.CanCancel())
}

func TestUserRole_IsValid(t *testing.T) {
	assert.True(t, UserRoleCashier.IsValid())
	assert.False(t, UserRole("super-admin").IsValid())
}

func TestCustomerType_UnmarshalJSON(t *testing.T) {
	var c CustomerType
	require.NoError(t, json.Unmarshal([]byte(`"business"`), &c))
	assert.Equal(t, CustomerTypeBusiness, c)
	assert.Error(t, json.Unmarshal([]byte(`"government"`), &c))
}
