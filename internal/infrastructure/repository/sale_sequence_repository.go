package repository

import (
	"context"
	"strconv"
	"strings"

	"github.com/sangkips/liquorpos-api/internal/domain/entity"
	domainRepo "github.com/sangkips/liquorpos-api/internal/domain/repository"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type saleSequenceRepository struct {
	db *gorm.DB
}

// NewSaleSequenceRepository creates a sequence allocator. It must be bound to
// the transaction that inserts the sale so the counter row stays locked until
// the sale number is committed.
func NewSaleSequenceRepository(db *gorm.DB) domainRepo.SaleSequenceRepository {
	return &saleSequenceRepository{db: db}
}

func (r *saleSequenceRepository) Next(ctx context.Context, day, prefix string) (int, error) {
	db := r.db.WithContext(ctx)

	bumped, err := r.increment(db, day)
	if err != nil {
		return 0, err
	}

	if !bumped {
		highest, err := r.highestExisting(db, prefix)
		if err != nil {
			return 0, err
		}

		res := db.Clauses(clause.OnConflict{DoNothing: true}).
			Create(&entity.SaleSequence{Day: day, LastValue: highest + 1})
		if res.Error != nil {
			return 0, res.Error
		}
		if res.RowsAffected == 1 {
			return highest + 1, nil
		}

		// another transaction created the row first
		if _, err := r.increment(db, day); err != nil {
			return 0, err
		}
	}

	var seq entity.SaleSequence
	if err := db.First(&seq, "day = ?", day).Error; err != nil {
		return 0, err
	}
	return seq.LastValue, nil
}

func (r *saleSequenceRepository) increment(db *gorm.DB, day string) (bool, error) {
	res := db.Model(&entity.SaleSequence{}).
		Where("day = ?", day).
		UpdateColumn("last_value", gorm.Expr("last_value + 1"))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// highestExisting parses the sequence of the greatest sale number with
// prefix. Fixed-width zero padding keeps string order equal to numeric order.
func (r *saleSequenceRepository) highestExisting(db *gorm.DB, prefix string) (int, error) {
	var numbers []string
	err := db.Model(&entity.Sale{}).
		Where("sale_number LIKE ?", prefix+"%").
		Order("sale_number DESC").
		Limit(1).
		Pluck("sale_number", &numbers).Error
	if err != nil || len(numbers) == 0 {
		return 0, err
	}

	n, err := strconv.Atoi(strings.TrimPrefix(numbers[0], prefix))
	if err != nil {
		return 0, nil
	}
	return n, nil
}
