package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/sangkips/liquorpos-api/internal/config"
	"github.com/sangkips/liquorpos-api/internal/domain/entity"
	"github.com/sangkips/liquorpos-api/internal/domain/enum"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var defaultCategories = []string{"Tequila", "Mezcal", "Whisky", "Rum", "Vodka", "Wine", "Beer", "Mixers"}

// SeedDefaultData creates the default categories and, when credentials are
// configured, the admin user. It is safe to run repeatedly.
func SeedDefaultData(ctx context.Context, db *gorm.DB, cfg config.SeedConfig, log *zap.Logger) (*entity.User, error) {
	db = db.WithContext(ctx)

	for _, name := range defaultCategories {
		category := entity.Category{Name: name, IsActive: true}
		if err := db.Where(entity.Category{Name: name}).FirstOrCreate(&category).Error; err != nil {
			return nil, fmt.Errorf("seed category %s: %w", name, err)
		}
	}

	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		log.Warn("ADMIN_EMAIL or ADMIN_PASSWORD not set, skipping admin user")
		return nil, nil
	}

	var admin entity.User
	err := db.Where("username = ?", cfg.AdminUsername).First(&admin).Error
	if err == nil {
		log.Info("Admin user already exists", zap.String("username", admin.Username))
		return &admin, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash admin password: %w", err)
	}

	admin = entity.User{
		Username:     cfg.AdminUsername,
		Email:        cfg.AdminEmail,
		PasswordHash: string(hash),
		FirstName:    "Store",
		LastName:     "Admin",
		Role:         enum.UserRoleAdmin,
		IsActive:     true,
	}
	if err := db.Create(&admin).Error; err != nil {
		return nil, fmt.Errorf("create admin user: %w", err)
	}

	log.Info("Admin user created", zap.String("username", admin.Username))
	return &admin, nil
}

type demoProduct struct {
	barcode, sku, name, category, brand string
	volume                              int
	retail, wholesale, cost             string
	stock                               int
}

var demoCatalog = []demoProduct{
	{"7501035010109", "PRD-TEQ00001", "Tequila Blanco 750ml", "Tequila", "Casa Azul", 750, "289.00", "245.00", "180.00", 48},
	{"7501035010208", "PRD-MEZ00001", "Mezcal Espadin 700ml", "Mezcal", "Oaxaca Real", 700, "459.00", "399.00", "300.00", 24},
	{"5000267014005", "PRD-WHI00001", "Scotch Whisky 12 Years 750ml", "Whisky", "Highland Cask", 750, "799.00", "", "560.00", 12},
	{"7501064191015", "PRD-BEE00001", "Lager Beer 355ml", "Beer", "Cerveceria Norte", 355, "22.00", "18.50", "12.00", 240},
	{"7501055300075", "PRD-MIX00001", "Mineral Water 600ml", "Mixers", "Manantial", 600, "15.00", "12.00", "7.50", 120},
}

// SeedDemoCatalog adds brands and products for local development. Existing
// barcodes are left untouched.
func SeedDemoCatalog(ctx context.Context, db *gorm.DB, log *zap.Logger) error {
	db = db.WithContext(ctx)

	for _, d := range demoCatalog {
		var category entity.Category
		if err := db.Where(entity.Category{Name: d.category}).Attrs(entity.Category{IsActive: true}).FirstOrCreate(&category).Error; err != nil {
			return fmt.Errorf("seed category %s: %w", d.category, err)
		}
		var brand entity.Brand
		if err := db.Where(entity.Brand{Name: d.brand}).Attrs(entity.Brand{IsActive: true}).FirstOrCreate(&brand).Error; err != nil {
			return fmt.Errorf("seed brand %s: %w", d.brand, err)
		}

		volume := d.volume
		product := entity.Product{
			Barcode:              d.barcode,
			SKU:                  d.sku,
			Name:                 d.name,
			CategoryID:           &category.ID,
			BrandID:              &brand.ID,
			VolumeML:             &volume,
			PurchasePrice:        decimal.RequireFromString(d.cost),
			RetailPrice:          decimal.RequireFromString(d.retail),
			WholesaleMinQuantity: 12,
			CurrentStock:         d.stock,
			MinStock:             5,
			MaxStock:             d.stock * 2,
			ReorderPoint:         10,
			IsActive:             true,
		}
		if d.wholesale != "" {
			product.WholesalePrice = decimal.NewNullDecimal(decimal.RequireFromString(d.wholesale))
		}

		res := db.Where(entity.Product{Barcode: d.barcode}).FirstOrCreate(&product)
		if res.Error != nil {
			return fmt.Errorf("seed product %s: %w", d.barcode, res.Error)
		}
		if res.RowsAffected > 0 {
			log.Info("Demo product created", zap.String("name", d.name), zap.Int("stock", d.stock))
		}
	}
	return nil
}
