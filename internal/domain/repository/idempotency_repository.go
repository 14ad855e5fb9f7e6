package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/liquorpos-api/internal/domain/entity"
)

// IdempotencyRepository defines the interface for idempotency key operations
type IdempotencyRepository interface {
	// GetByKey retrieves an unexpired key for the user, or nil when none exists
	GetByKey(ctx context.Context, key string, userID uuid.UUID, now time.Time) (*entity.IdempotencyKey, error)
	Create(ctx context.Context, ikey *entity.IdempotencyKey) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
