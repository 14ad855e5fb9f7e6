package service

import (
	"context"
	"testing"

	"github.com/sangkips/liquorpos-api/internal/domain/enum"
	domainRepo "github.com/sangkips/liquorpos-api/internal/domain/repository"
	infraRepo "github.com/sangkips/liquorpos-api/internal/infrastructure/repository"
	"github.com/sangkips/liquorpos-api/internal/testutil"
	"github.com/sangkips/liquorpos-api/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func strPtr(s string) *string { return &s }

func newCustomerService(t *testing.T) (*CustomerService, Actor) {
	t.Helper()
	db := testutil.NewTestDB(t)
	user := testutil.CreateUser(t, db, "manager1", enum.UserRoleManager)
	log := zap.NewNop()
	svc := NewCustomerService(
		infraRepo.NewCustomerRepository(db),
		NewAuditService(infraRepo.NewAuditLogRepository(db), log),
		log,
	)
	return svc, Actor{UserID: user.ID, Username: user.Username}
}

func TestCustomerService_CreateAndUpdate(t *testing.T) {
	svc, actor := newCustomerService(t)
	ctx := context.Background()

	business := enum.CustomerTypeBusiness
	wholesale := true
	c, err := svc.CreateCustomer(ctx, actor, &CustomerInput{
		CustomerType: &business,
		CompanyName:  strPtr("  Bar La Cantina "),
		Email:        strPtr("Compras@LaCantina.mx"),
		IsWholesale:  &wholesale,
	})
	require.NoError(t, err)
	assert.Equal(t, "Bar La Cantina", c.DisplayName())
	assert.Equal(t, "compras@lacantina.mx", *c.Email)
	assert.True(t, c.IsActive)

	_, err = svc.CreateCustomer(ctx, actor, &CustomerInput{FirstName: strPtr("Otro"), Email: strPtr("compras@lacantina.mx")})
	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 409, appErr.Code)

	updated, err := svc.UpdateCustomer(ctx, actor, c.ID, &CustomerInput{Phone: strPtr("555-0101"), Email: strPtr("compras@lacantina.mx")})
	require.NoError(t, err)
	assert.Equal(t, "555-0101", *updated.Phone)

	require.NoError(t, svc.DeactivateCustomer(ctx, actor, c.ID))
	got, err := svc.GetCustomer(ctx, c.ID)
	require.NoError(t, err)
	assert.False(t, got.IsActive)
}

func TestCustomerService_Validation(t *testing.T) {
	svc, actor := newCustomerService(t)

	business := enum.CustomerTypeBusiness
	_, err := svc.CreateCustomer(context.Background(), actor, &CustomerInput{
		CustomerType: &business,
		FirstName:    strPtr("Juan"),
		Email:        strPtr("not-an-email"),
	})

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperror.KindValidation, appErr.Kind)
	assert.Len(t, appErr.Errors, 2)

	_, err = svc.CreateCustomer(context.Background(), actor, &CustomerInput{})
	assert.True(t, apperror.IsKind(err, apperror.KindValidation), "a name is required")
}

func TestCustomerService_List(t *testing.T) {
	svc, actor := newCustomerService(t)
	ctx := context.Background()

	for _, name := range []string{"Ana", "Luis", "Sofia"} {
		_, err := svc.CreateCustomer(ctx, actor, &CustomerInput{FirstName: strPtr(name)})
		require.NoError(t, err)
	}

	page, err := svc.ListCustomers(ctx, &domainRepo.CustomerFilterParams{Search: "lui"})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Luis", *page.Items[0].FirstName)
}
