package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/liquorpos-api/internal/domain/entity"
	"github.com/sangkips/liquorpos-api/internal/domain/enum"
	"github.com/sangkips/liquorpos-api/internal/domain/repository"
	"github.com/sangkips/liquorpos-api/pkg/apperror"
	"github.com/sangkips/liquorpos-api/pkg/pagination"
	"go.uber.org/zap"
)

const (
	defaultAuditTimeout = 5 * time.Second
	auditTopUsers       = 10
)

// AuditEntry describes one audited action
type AuditEntry struct {
	Action      enum.AuditAction
	Module      string
	EntityID    string
	EntityName  string
	Description string
	OldValues   entity.AuditValues
	NewValues   entity.AuditValues
}

// AuditRecorder appends audit entries. Record never fails the caller.
type AuditRecorder interface {
	Record(ctx context.Context, actor Actor, entry AuditEntry)
}

// AuditService writes and reads the audit trail
type AuditService struct {
	repo    repository.AuditLogRepository
	logger  *zap.Logger
	timeout time.Duration
}

// NewAuditService creates a new audit service
func NewAuditService(repo repository.AuditLogRepository, logger *zap.Logger) *AuditService {
	return &AuditService{
		repo:    repo,
		logger:  logger.Named("audit"),
		timeout: defaultAuditTimeout,
	}
}

// Record appends an entry once the audited operation has committed. The
// write is detached from ctx cancellation and bounded by its own timeout;
// failures are logged and swallowed.
func (s *AuditService) Record(ctx context.Context, actor Actor, entry AuditEntry) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.timeout)
	defer cancel()

	log := &entity.AuditLog{
		Username:    actor.Username,
		Action:      entry.Action,
		Module:      entry.Module,
		EntityID:    optional(entry.EntityID),
		EntityName:  optional(entry.EntityName),
		Description: optional(entry.Description),
		OldValues:   entry.OldValues,
		NewValues:   entry.NewValues,
		IPAddress:   optional(actor.IPAddress),
		UserAgent:   optional(actor.UserAgent),
	}
	if actor.UserID != uuid.Nil {
		id := actor.UserID
		log.UserID = &id
	}

	if err := s.repo.Create(ctx, log); err != nil {
		s.logger.Error("Failed to write audit log",
			zap.Error(err),
			zap.String("action", string(entry.Action)),
			zap.String("module", entry.Module),
			zap.String("entity_id", entry.EntityID),
			zap.String("username", actor.Username),
		)
	}
}

// ListAuditLogsInput holds audit log query filters
type ListAuditLogsInput struct {
	Cursor    pagination.CursorParams
	Module    string
	Action    string
	UserID    *uuid.UUID
	EntityID  string
	StartDate *time.Time
	EndDate   *time.Time
}

// List returns audit logs newest first with cursor pagination
func (s *AuditService) List(ctx context.Context, input *ListAuditLogsInput) (*pagination.CursorPaginatedResult[entity.AuditLog], error) {
	params := &repository.AuditLogFilterParams{
		Cursor:    &input.Cursor,
		Module:    input.Module,
		UserID:    input.UserID,
		EntityID:  input.EntityID,
		StartDate: input.StartDate,
		EndDate:   input.EndDate,
	}
	if input.Action != "" {
		action := enum.AuditAction(input.Action)
		if !action.IsValid() {
			return nil, apperror.NewValidationError("Invalid audit action",
				apperror.FieldError{Field: "action", Message: "unknown action " + input.Action})
		}
		params.Action = &action
	}

	if _, err := input.Cursor.DecodeCursor(); err != nil {
		return nil, apperror.NewBadRequestError("Invalid cursor")
	}

	logs, err := s.repo.ListWithCursor(ctx, params)
	if err != nil {
		return nil, apperror.NewPersistenceError("Failed to list audit logs", err)
	}

	meta, items := pagination.NewCursorPagination(logs, params.Cursor.Limit,
		func(l entity.AuditLog) string { return l.ID.String() },
		func(l entity.AuditLog) time.Time { return l.CreatedAt },
	)
	return pagination.NewCursorPaginatedResult(items, meta), nil
}

// Stats summarizes audit activity between start (inclusive) and end (exclusive)
func (s *AuditService) Stats(ctx context.Context, start, end *time.Time) (*repository.AuditStats, error) {
	if start != nil && end != nil && !end.After(*start) {
		return nil, apperror.NewValidationError("Invalid date range",
			apperror.FieldError{Field: "end_date", Message: "must not be before start_date"})
	}

	stats, err := s.repo.Stats(ctx, start, end, auditTopUsers)
	if err != nil {
		return nil, apperror.NewPersistenceError("Failed to compute audit statistics", err)
	}
	if stats.ByModule == nil {
		stats.ByModule = []repository.AuditCount{}
	}
	if stats.ByAction == nil {
		stats.ByAction = []repository.AuditCount{}
	}
	if stats.TopUsers == nil {
		stats.TopUsers = []repository.AuditUserCount{}
	}
	return stats, nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
