package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sangkips/liquorpos-api/internal/domain/entity"
	domainRepo "github.com/sangkips/liquorpos-api/internal/domain/repository"
	"gorm.io/gorm"
)

type categoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository creates a new category repository
func NewCategoryRepository(db *gorm.DB) domainRepo.CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) Create(ctx context.Context, category *entity.Category) error {
	return r.db.WithContext(ctx).Create(category).Error
}

func (r *categoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Category, error) {
	return firstOrNil[entity.Category](r.db.WithContext(ctx), "id = ?", id)
}

func (r *categoryRepository) GetByName(ctx context.Context, name string) (*entity.Category, error) {
	return firstOrNil[entity.Category](r.db.WithContext(ctx), "name = ?", name)
}

type brandRepository struct {
	db *gorm.DB
}

// NewBrandRepository creates a new brand repository
func NewBrandRepository(db *gorm.DB) domainRepo.BrandRepository {
	return &brandRepository{db: db}
}

func (r *brandRepository) Create(ctx context.Context, brand *entity.Brand) error {
	return r.db.WithContext(ctx).Create(brand).Error
}

func (r *brandRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Brand, error) {
	return firstOrNil[entity.Brand](r.db.WithContext(ctx), "id = ?", id)
}

func (r *brandRepository) GetByName(ctx context.Context, name string) (*entity.Brand, error) {
	return firstOrNil[entity.Brand](r.db.WithContext(ctx), "name = ?", name)
}

// firstOrNil returns the first match, or nil when no row matches
func firstOrNil[T any](db *gorm.DB, query string, args ...interface{}) (*T, error) {
	var out T
	err := db.Where(query, args...).First(&out).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}
