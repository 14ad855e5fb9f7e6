package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/liquorpos-api/internal/domain/entity"
	"github.com/sangkips/liquorpos-api/internal/domain/enum"
	"github.com/sangkips/liquorpos-api/pkg/pagination"
)

// UserReader resolves staff accounts behind authenticated requests
type UserReader interface {
	GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
}

// UserRepository defines the interface for staff account management
type UserRepository interface {
	UserReader
	Create(ctx context.Context, user *entity.User) error
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
	List(ctx context.Context, params *UserFilterParams) ([]entity.User, int64, error)
}

// UserFilterParams contains filtering parameters for user queries
type UserFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	Role       *enum.UserRole
	IsActive   *bool
}
