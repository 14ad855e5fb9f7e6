package database_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sangkips/liquorpos-api/internal/config"
	"github.com/sangkips/liquorpos-api/internal/domain/entity"
	"github.com/sangkips/liquorpos-api/internal/domain/enum"
	"github.com/sangkips/liquorpos-api/internal/infrastructure/database"
	"github.com/sangkips/liquorpos-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func TestIsUniqueViolation(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"gorm translated", gorm.ErrDuplicatedKey, true},
		{"wrapped gorm", fmt.Errorf("create sale: %w", gorm.ErrDuplicatedKey), true},
		{"postgres unique", &pgconn.PgError{Code: "23505"}, true},
		{"postgres fk", &pgconn.PgError{Code: "23503"}, false},
		{"other", errors.New("boom"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, database.IsUniqueViolation(tt.err))
		})
	}
}

func TestIsNotFound(t *testing.T) {
	assert.True(t, database.IsNotFound(fmt.Errorf("load: %w", gorm.ErrRecordNotFound)))
	assert.False(t, database.IsNotFound(gorm.ErrDuplicatedKey))
}

func TestSeedDefaultData_Idempotent(t *testing.T) {
	db := testutil.NewTestDB(t)
	cfg := config.SeedConfig{AdminUsername: "admin", AdminEmail: "admin@example.com", AdminPassword: "s3cret-pass"}
	ctx := context.Background()

	admin, err := database.SeedDefaultData(ctx, db, cfg, zap.NewNop())
	require.NoError(t, err)
	require.NotNil(t, admin)
	assert.Equal(t, enum.UserRoleAdmin, admin.Role)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte("s3cret-pass")))

	again, err := database.SeedDefaultData(ctx, db, cfg, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, admin.ID, again.ID)

	var users, categories int64
	require.NoError(t, db.Model(&entity.User{}).Count(&users).Error)
	require.NoError(t, db.Model(&entity.Category{}).Count(&categories).Error)
	assert.Equal(t, int64(1), users)
	assert.Equal(t, int64(8), categories)
}

func TestSeedDefaultData_SkipsAdminWithoutCredentials(t *testing.T) {
	db := testutil.NewTestDB(t)

	admin, err := database.SeedDefaultData(context.Background(), db, config.SeedConfig{AdminUsername: "admin"}, zap.NewNop())
	require.NoError(t, err)
	assert.Nil(t, admin)

	var users int64
	require.NoError(t, db.Model(&entity.User{}).Count(&users).Error)
	assert.Zero(t, users)
}

func TestSeedDemoCatalog(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()

	require.NoError(t, database.SeedDemoCatalog(ctx, db, zap.NewNop()))
	require.NoError(t, database.SeedDemoCatalog(ctx, db, zap.NewNop()))

	var products []entity.Product
	require.NoError(t, db.Find(&products).Error)
	assert.Len(t, products, 5)

	var whisky entity.Product
	require.NoError(t, db.Where("barcode = ?", "5000267014005").First(&whisky).Error)
	assert.False(t, whisky.WholesalePrice.Valid)
	assert.NotNil(t, whisky.CategoryID)
	assert.NotNil(t, whisky.BrandID)
}
