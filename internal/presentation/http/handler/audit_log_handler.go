package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/liquorpos-api/internal/application/service"
	"github.com/sangkips/liquorpos-api/internal/presentation/http/dto/request"
	"github.com/sangkips/liquorpos-api/internal/presentation/http/dto/response"
	"github.com/sangkips/liquorpos-api/pkg/pagination"
)

// AuditLogHandler exposes the audit trail
type AuditLogHandler struct {
	auditService *service.AuditService
}

// NewAuditLogHandler creates a new audit log handler
func NewAuditLogHandler(auditService *service.AuditService) *AuditLogHandler {
	return &AuditLogHandler{auditService: auditService}
}

// List handles listing audit logs, newest first, with cursor pagination
func (h *AuditLogHandler) List(c *gin.Context) {
	var filter request.AuditLogFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	input := &service.ListAuditLogsInput{
		Cursor:   pagination.CursorParams{Cursor: filter.Cursor, Limit: filter.Limit},
		Module:   filter.Module,
		Action:   filter.Action,
		EntityID: filter.EntityID,
	}

	var err error
	if input.UserID, err = optionalUUID("user_id", filter.UserID); err != nil {
		response.Error(c, err)
		return
	}
	if input.StartDate, err = optionalDate("start_date", filter.StartDate); err != nil {
		response.Error(c, err)
		return
	}
	if input.EndDate, err = optionalDate("end_date", filter.EndDate); err != nil {
		response.Error(c, err)
		return
	}
	input.EndDate = endOfDay(input.EndDate)

	result, err := h.auditService.List(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Audit logs retrieved successfully", result)
}

// Stats handles audit activity totals per module, action and user
func (h *AuditLogHandler) Stats(c *gin.Context) {
	start, err := optionalDate("start_date", c.Query("start_date"))
	if err != nil {
		response.Error(c, err)
		return
	}
	end, err := optionalDate("end_date", c.Query("end_date"))
	if err != nil {
		response.Error(c, err)
		return
	}

	stats, err := h.auditService.Stats(c.Request.Context(), start, endOfDay(end))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Audit statistics retrieved successfully", stats)
}

// endOfDay makes an inclusive end date exclusive by moving it to the next midnight
func endOfDay(date *time.Time) *time.Time {
	if date == nil {
		return nil
	}
	next := date.AddDate(0, 0, 1)
	return &next
}
