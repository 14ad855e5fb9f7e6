package repository

import (
	"context"
	"time"

	"github.com/sangkips/liquorpos-api/internal/domain/enum"
	domainRepo "github.com/sangkips/liquorpos-api/internal/domain/repository"
	"gorm.io/gorm"
)

type salesAnalyticsRepository struct {
	db *gorm.DB
}

// NewSalesAnalyticsRepository creates a new sales analytics repository
func NewSalesAnalyticsRepository(db *gorm.DB) domainRepo.SalesAnalyticsRepository {
	return &salesAnalyticsRepository{db: db}
}

func (r *salesAnalyticsRepository) GetTotals(ctx context.Context, from, to time.Time) (*domainRepo.SalesTotals, error) {
	var result domainRepo.SalesTotals
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			COUNT(*) AS count,
			COALESCE(SUM(total_amount), 0) AS total
		FROM sales
		WHERE payment_status <> ?
		AND created_at >= ? AND created_at < ?
	`, enum.PaymentStatusCancelled, from.UTC(), to.UTC()).Scan(&result).Error
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *salesAnalyticsRepository) GetTotalsByPaymentMethod(ctx context.Context, from, to time.Time) ([]domainRepo.PaymentMethodTotal, error) {
	var results []domainRepo.PaymentMethodTotal
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			payment_method,
			COUNT(*) AS count,
			COALESCE(SUM(total_amount), 0) AS total
		FROM sales
		WHERE payment_status <> ?
		AND created_at >= ? AND created_at < ?
		GROUP BY payment_method
		ORDER BY total DESC
	`, enum.PaymentStatusCancelled, from.UTC(), to.UTC()).Scan(&results).Error
	return results, err
}

func (r *salesAnalyticsRepository) GetTopProducts(ctx context.Context, from, to time.Time, limit int) ([]domainRepo.TopProductResult, error) {
	var results []domainRepo.TopProductResult
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			p.id AS product_id,
			p.name AS product_name,
			SUM(si.quantity) AS quantity_sold,
			COALESCE(SUM(si.subtotal), 0) AS revenue
		FROM sale_items si
		JOIN sales s ON s.id = si.sale_id
		JOIN products p ON p.id = si.product_id
		WHERE s.payment_status <> ?
		AND s.created_at >= ? AND s.created_at < ?
		GROUP BY p.id, p.name
		ORDER BY quantity_sold DESC, revenue DESC
		LIMIT ?
	`, enum.PaymentStatusCancelled, from.UTC(), to.UTC(), limit).Scan(&results).Error
	return results, err
}
