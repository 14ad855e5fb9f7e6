package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/liquorpos-api/internal/domain/entity"
	"github.com/sangkips/liquorpos-api/internal/domain/enum"
	"github.com/sangkips/liquorpos-api/pkg/pagination"
)

// AuditLogRepository defines the interface for the append-only audit trail
type AuditLogRepository interface {
	Create(ctx context.Context, log *entity.AuditLog) error
	// ListWithCursor walks newest first and returns up to Limit+1 rows.
	ListWithCursor(ctx context.Context, params *AuditLogFilterParams) ([]entity.AuditLog, error)
	// Stats aggregates entries created in [start, end). Nil bounds are open.
	Stats(ctx context.Context, start, end *time.Time, topUsers int) (*AuditStats, error)
}

// AuditStats summarizes the audit trail over a period
type AuditStats struct {
	Total    int64            `json:"total"`
	ByModule []AuditCount     `json:"by_module"`
	ByAction []AuditCount     `json:"by_action"`
	TopUsers []AuditUserCount `json:"top_users"`
}

// AuditCount is the number of entries sharing a module or action
type AuditCount struct {
	Name  string `json:"name"`
	Count int64  `json:"count"`
}

// AuditUserCount is the number of entries written by one user
type AuditUserCount struct {
	UserID   uuid.UUID `json:"user_id"`
	Username string    `json:"username"`
	Count    int64     `json:"count"`
}

// AuditLogFilterParams contains cursor-based filtering for audit log queries
type AuditLogFilterParams struct {
	Cursor    *pagination.CursorParams
	Module    string
	Action    *enum.AuditAction
	UserID    *uuid.UUID
	EntityID  string
	StartDate *time.Time
	EndDate   *time.Time
}
