package request

import "github.com/sangkips/liquorpos-api/internal/domain/enum"

// CreateUserRequest is the body of a staff account creation
type CreateUserRequest struct {
	Username  string         `json:"username" binding:"required,max=50"`
	Email     string         `json:"email" binding:"required,email,max=255"`
	Password  string         `json:"password" binding:"required"`
	FirstName string         `json:"first_name" binding:"max=100"`
	LastName  string         `json:"last_name" binding:"max=100"`
	Role      *enum.UserRole `json:"role"`
	IsActive  *bool          `json:"is_active"`
}

// UpdateUserRequest is the body of a staff account update.
// Omitted fields are left unchanged.
type UpdateUserRequest struct {
	Username  *string        `json:"username" binding:"omitempty,max=50"`
	Email     *string        `json:"email" binding:"omitempty,email,max=255"`
	Password  *string        `json:"password"`
	FirstName *string        `json:"first_name" binding:"omitempty,max=100"`
	LastName  *string        `json:"last_name" binding:"omitempty,max=100"`
	Role      *enum.UserRole `json:"role"`
	IsActive  *bool          `json:"is_active"`
}
