package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/liquorpos-api/internal/infrastructure/logger"
	"github.com/sangkips/liquorpos-api/internal/presentation/http/dto/response"
	"github.com/sangkips/liquorpos-api/pkg/apperror"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const healthPingTimeout = 2 * time.Second

// HealthHandler reports process and database liveness
type HealthHandler struct {
	db      *gorm.DB
	appName string
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(db *gorm.DB, appName string) *HealthHandler {
	return &HealthHandler{db: db, appName: appName}
}

// Check pings the database
func (h *HealthHandler) Check(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthPingTimeout)
	defer cancel()

	sqlDB, err := h.db.DB()
	if err == nil {
		err = sqlDB.PingContext(ctx)
	}
	if err != nil {
		logger.GetGinLogger(c).Warn("Health check failed", zap.Error(err))
		response.ErrorWithCode(c, http.StatusServiceUnavailable, apperror.KindPersistence, "Database unavailable")
		return
	}

	response.OK(c, "OK", gin.H{
		"status":   "ok",
		"service":  h.appName,
		"database": "up",
	})
}
