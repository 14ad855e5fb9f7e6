// Package testutil provides shared fixtures for package tests.
package testutil

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/liquorpos-api/internal/domain/entity"
	"github.com/sangkips/liquorpos-api/internal/domain/enum"
	"github.com/sangkips/liquorpos-api/internal/infrastructure/database"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewTestDB opens a private in-memory SQLite database with every table
// migrated. A single connection serializes concurrent transactions.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_busy_timeout=5000", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
		NowFunc:        func() time.Time { return time.Now().UTC() },
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, database.AutoMigrate(db))
	return db
}

// CreateUser inserts an active user with the given role
func CreateUser(t *testing.T, db *gorm.DB, username string, role enum.UserRole) *entity.User {
	t.Helper()
	u := &entity.User{
		Username:     username,
		Email:        username + "@liquorpos.test",
		PasswordHash: "x",
		FirstName:    "Test",
		LastName:     username,
		Role:         role,
		IsActive:     true,
	}
	require.NoError(t, db.Create(u).Error)
	return u
}

// ProductOption customizes a product fixture
type ProductOption func(*entity.Product)

// WithStock sets current stock
func WithStock(n int) ProductOption {
	return func(p *entity.Product) { p.CurrentStock = n }
}

// WithPrices sets retail and wholesale prices; an empty wholesale leaves it unset
func WithPrices(retail, wholesale string) ProductOption {
	return func(p *entity.Product) {
		p.RetailPrice = decimal.RequireFromString(retail)
		p.WholesalePrice = decimal.NullDecimal{}
		if wholesale != "" {
			p.WholesalePrice = decimal.NewNullDecimal(decimal.RequireFromString(wholesale))
		}
	}
}

// InCategory assigns the product to a category
func InCategory(c *entity.Category) ProductOption {
	return func(p *entity.Product) { p.CategoryID = &c.ID }
}

// OfBrand assigns the product to a brand
func OfBrand(b *entity.Brand) ProductOption {
	return func(p *entity.Product) { p.BrandID = &b.ID }
}

// Inactive marks the product inactive
func Inactive() ProductOption {
	return func(p *entity.Product) { p.IsActive = false }
}

// CreateProduct inserts an active product priced 100.00 retail / 80.00
// wholesale with 10 units in stock unless options say otherwise.
func CreateProduct(t *testing.T, db *gorm.DB, name string, opts ...ProductOption) *entity.Product {
	t.Helper()
	p := &entity.Product{
		Barcode:              "BC-" + uuid.NewString()[:12],
		SKU:                  "PRD-" + uuid.NewString()[:8],
		Name:                 name,
		PurchasePrice:        decimal.NewFromInt(50),
		RetailPrice:          decimal.NewFromInt(100),
		WholesalePrice:       decimal.NewNullDecimal(decimal.NewFromInt(80)),
		WholesaleMinQuantity: 12,
		CurrentStock:         10,
		MinStock:             5,
		MaxStock:             100,
		ReorderPoint:         10,
		IsActive:             true,
	}
	for _, opt := range opts {
		opt(p)
	}
	require.NoError(t, db.Create(p).Error)
	return p
}

// CreateCustomer inserts an active individual customer
func CreateCustomer(t *testing.T, db *gorm.DB, first, last string) *entity.Customer {
	t.Helper()
	c := &entity.Customer{
		CustomerType: enum.CustomerTypeIndividual,
		FirstName:    &first,
		LastName:     &last,
		IsActive:     true,
	}
	require.NoError(t, db.Create(c).Error)
	return c
}

// Stock re-reads a product's current stock
func Stock(t *testing.T, db *gorm.DB, productID uuid.UUID) int {
	t.Helper()
	var p entity.Product
	require.NoError(t, db.First(&p, "id = ?", productID).Error)
	return p.CurrentStock
}
