package service

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/sangkips/liquorpos-api/internal/domain/entity"
	"github.com/sangkips/liquorpos-api/internal/domain/enum"
	domainRepo "github.com/sangkips/liquorpos-api/internal/domain/repository"
	infraRepo "github.com/sangkips/liquorpos-api/internal/infrastructure/repository"
	"github.com/sangkips/liquorpos-api/internal/testutil"
	"github.com/sangkips/liquorpos-api/pkg/apperror"
	"github.com/sangkips/liquorpos-api/pkg/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func newUserService(t *testing.T) (*UserService, *gorm.DB, Actor) {
	t.Helper()
	db := testutil.NewTestDB(t)
	admin := testutil.CreateUser(t, db, "admin1", enum.UserRoleAdmin)
	log := zap.NewNop()

	svc := NewUserService(infraRepo.NewUserRepository(db), NewAuditService(infraRepo.NewAuditLogRepository(db), log), log)
	svc.bcryptCost = bcrypt.MinCost
	return svc, db, Actor{UserID: admin.ID, Username: admin.Username}
}

func userAudits(t *testing.T, db *gorm.DB, action enum.AuditAction) []entity.AuditLog {
	t.Helper()
	var logs []entity.AuditLog
	require.NoError(t, db.Where("module = ? AND action = ?", enum.AuditModuleUsers, action).
		Order("created_at ASC").Find(&logs).Error)
	return logs
}

func TestUserService_Create(t *testing.T) {
	svc, db, actor := newUserService(t)
	ctx := context.Background()

	user, err := svc.CreateUser(ctx, actor, &CreateUserInput{
		Username:  " maria ",
		Email:     "Maria@LiquorPOS.test",
		Password:  "s3cret!",
		FirstName: "Maria",
		LastName:  "Lopez",
	})
	require.NoError(t, err)

	assert.Equal(t, "maria", user.Username)
	assert.Equal(t, "maria@liquorpos.test", user.Email)
	assert.Equal(t, enum.UserRoleCashier, user.Role, "new accounts default to cashier")
	assert.True(t, user.IsActive)
	assert.NotEqual(t, "s3cret!", user.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("s3cret!")))

	audits := userAudits(t, db, enum.AuditActionCreate)
	require.Len(t, audits, 1)
	assert.Equal(t, user.ID.String(), *audits[0].EntityID)
	assert.Equal(t, "User created: maria (maria@liquorpos.test) - role: cashier", *audits[0].Description)
	assert.NotContains(t, audits[0].NewValues, "password_hash")
}

func TestUserService_CreateRejectsDuplicates(t *testing.T) {
	svc, _, actor := newUserService(t)
	ctx := context.Background()

	_, err := svc.CreateUser(ctx, actor, &CreateUserInput{Username: "pedro", Email: "pedro@liquorpos.test", Password: "123456"})
	require.NoError(t, err)

	tests := []struct {
		name   string
		input  CreateUserInput
		detail string
	}{
		{"username differs only in case", CreateUserInput{Username: "PEDRO", Email: "other@liquorpos.test", Password: "123456"}, "username"},
		{"email", CreateUserInput{Username: "pedro2", Email: "PEDRO@liquorpos.test", Password: "123456"}, "email"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateUser(ctx, actor, &tt.input)

			var appErr *apperror.AppError
			require.True(t, errors.As(err, &appErr))
			assert.Equal(t, apperror.KindConflict, appErr.Kind)
			assert.Equal(t, http.StatusConflict, appErr.Code)
			assert.Contains(t, appErr.Details, tt.detail)
		})
	}
}

func TestUserService_CreateValidation(t *testing.T) {
	svc, db, actor := newUserService(t)
	bogus := enum.UserRole("bartender")

	_, err := svc.CreateUser(context.Background(), actor, &CreateUserInput{
		Username: "",
		Email:    "not-an-email",
		Password: "123",
		Role:     &bogus,
	})

	var appErr *apperror.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperror.KindValidation, appErr.Kind)
	fields := make([]string, 0, len(appErr.Errors))
	for _, fe := range appErr.Errors {
		fields = append(fields, fe.Field)
	}
	assert.ElementsMatch(t, []string{"username", "email", "password", "role"}, fields)

	var count int64
	require.NoError(t, db.Model(&entity.User{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestUserService_UpdatePasswordAndRole(t *testing.T) {
	svc, db, actor := newUserService(t)
	ctx := context.Background()
	target := testutil.CreateUser(t, db, "cashier1", enum.UserRoleCashier)

	newPassword := "n3w-password"
	manager := enum.UserRoleManager
	updated, err := svc.UpdateUser(ctx, actor, target.ID, &UpdateUserInput{
		Password: &newPassword,
		Role:     &manager,
	})
	require.NoError(t, err)
	assert.Equal(t, enum.UserRoleManager, updated.Role)

	var stored entity.User
	require.NoError(t, db.First(&stored, "id = ?", target.ID).Error)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte(newPassword)))
	assert.Equal(t, enum.UserRoleManager, stored.Role)

	audits := userAudits(t, db, enum.AuditActionUpdate)
	require.Len(t, audits, 1)
	assert.Equal(t, "cashier", audits[0].OldValues["role"])
	assert.Equal(t, "manager", audits[0].NewValues["role"])
	assert.Equal(t, false, audits[0].OldValues["password_changed"])
	assert.Equal(t, true, audits[0].NewValues["password_changed"])
	assert.Contains(t, *audits[0].Description, "password changed")
}

func TestUserService_UpdateRejectsTakenEmail(t *testing.T) {
	svc, db, actor := newUserService(t)
	target := testutil.CreateUser(t, db, "cashier1", enum.UserRoleCashier)
	email := "admin1@liquorpos.test"

	_, err := svc.UpdateUser(context.Background(), actor, target.ID, &UpdateUserInput{Email: &email})

	assert.True(t, apperror.IsKind(err, apperror.KindConflict))
}

func TestUserService_CannotDeactivateSelf(t *testing.T) {
	svc, _, actor := newUserService(t)
	ctx := context.Background()
	inactive := false

	_, err := svc.UpdateUser(ctx, actor, actor.UserID, &UpdateUserInput{IsActive: &inactive})
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))

	err = svc.DeactivateUser(ctx, actor, actor.UserID)
	assert.True(t, apperror.IsKind(err, apperror.KindBadRequest))
}

func TestUserService_Deactivate(t *testing.T) {
	svc, db, actor := newUserService(t)
	ctx := context.Background()
	cashier := testutil.CreateUser(t, db, "cashier1", enum.UserRoleCashier)
	otherAdmin := testutil.CreateUser(t, db, "admin2", enum.UserRoleAdmin)

	err := svc.DeactivateUser(ctx, actor, otherAdmin.ID)
	assert.True(t, apperror.IsKind(err, apperror.KindBadRequest))

	require.NoError(t, svc.DeactivateUser(ctx, actor, cashier.ID))
	require.NoError(t, svc.DeactivateUser(ctx, actor, cashier.ID), "deactivating twice is a no-op")

	var stored entity.User
	require.NoError(t, db.First(&stored, "id = ?", cashier.ID).Error)
	assert.False(t, stored.IsActive)
	assert.Len(t, userAudits(t, db, enum.AuditActionDelete), 1)
}

func TestUserService_List(t *testing.T) {
	svc, db, _ := newUserService(t)
	testutil.CreateUser(t, db, "cashier1", enum.UserRoleCashier)
	testutil.CreateUser(t, db, "cashier2", enum.UserRoleCashier)
	retired := testutil.CreateUser(t, db, "cashier3", enum.UserRoleCashier)
	require.NoError(t, db.Model(retired).Update("is_active", false).Error)

	cashier := enum.UserRoleCashier
	active := true
	page, err := svc.ListUsers(context.Background(), &domainRepo.UserFilterParams{
		Pagination: &pagination.PaginationParams{Page: 1, PerPage: 1},
		Role:       &cashier,
		IsActive:   &active,
	})
	require.NoError(t, err)
	assert.Len(t, page.Items, 1)
	assert.Equal(t, int64(2), page.Pagination.Total)

	found, err := svc.ListUsers(context.Background(), &domainRepo.UserFilterParams{Search: "CASHIER3"})
	require.NoError(t, err)
	require.Len(t, found.Items, 1)
	assert.Equal(t, "cashier3", found.Items[0].Username)
}
