package repository

import (
	"context"
	"time"

	"github.com/sangkips/liquorpos-api/internal/domain/entity"
	domainRepo "github.com/sangkips/liquorpos-api/internal/domain/repository"
	"github.com/sangkips/liquorpos-api/pkg/pagination"
	"gorm.io/gorm"
)

type auditLogRepository struct {
	db *gorm.DB
}

// NewAuditLogRepository creates a new audit log repository
func NewAuditLogRepository(db *gorm.DB) domainRepo.AuditLogRepository {
	return &auditLogRepository{db: db}
}

func (r *auditLogRepository) Create(ctx context.Context, log *entity.AuditLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}

// ListWithCursor fetches limit+1 rows so the caller can detect a next page
func (r *auditLogRepository) ListWithCursor(ctx context.Context, params *domainRepo.AuditLogFilterParams) ([]entity.AuditLog, error) {
	var logs []entity.AuditLog

	if params.Cursor == nil {
		params.Cursor = &pagination.CursorParams{}
	}
	params.Cursor.Validate()
	cursor, err := params.Cursor.DecodeCursor()
	if err != nil {
		return nil, err
	}

	query := r.db.WithContext(ctx).Model(&entity.AuditLog{}).
		Scopes(
			CreatedBetween("created_at", params.StartDate, params.EndDate),
			OlderThan(cursor),
		)

	if params.Module != "" {
		query = query.Where("module = ?", params.Module)
	}
	if params.Action != nil {
		query = query.Where("action = ?", *params.Action)
	}
	if params.UserID != nil {
		query = query.Where("user_id = ?", *params.UserID)
	}
	if params.EntityID != "" {
		query = query.Where("entity_id = ?", params.EntityID)
	}

	err = query.Order("created_at DESC, id DESC").
		Limit(params.Cursor.Limit + 1).
		Find(&logs).Error

	return logs, err
}

func (r *auditLogRepository) Stats(ctx context.Context, start, end *time.Time, topUsers int) (*domainRepo.AuditStats, error) {
	period := func() *gorm.DB {
		return r.db.WithContext(ctx).Model(&entity.AuditLog{}).
			Scopes(CreatedBetween("created_at", start, end))
	}

	stats := &domainRepo.AuditStats{}
	if err := period().Count(&stats.Total).Error; err != nil {
		return nil, err
	}

	if err := period().
		Select("module AS name, COUNT(*) AS count").
		Group("module").
		Order("count DESC, name ASC").
		Scan(&stats.ByModule).Error; err != nil {
		return nil, err
	}

	if err := period().
		Select("action AS name, COUNT(*) AS count").
		Group("action").
		Order("count DESC, name ASC").
		Scan(&stats.ByAction).Error; err != nil {
		return nil, err
	}

	if err := period().
		Select("user_id, username, COUNT(*) AS count").
		Where("user_id IS NOT NULL").
		Group("user_id, username").
		Order("count DESC, username ASC").
		Limit(topUsers).
		Scan(&stats.TopUsers).Error; err != nil {
		return nil, err
	}

	return stats, nil
}
