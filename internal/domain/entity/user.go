package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/liquorpos-api/internal/domain/enum"
	"gorm.io/gorm"
)

// User is a staff member acting on the point of sale
type User struct {
	ID           uuid.UUID     `gorm:"type:uuid;primary_key" json:"id"`
	Username     string        `gorm:"size:50;uniqueIndex;not null" json:"username"`
	Email        string        `gorm:"size:255;uniqueIndex;not null" json:"email"`
	PasswordHash string        `gorm:"size:255;not null" json:"-"`
	FirstName    string        `gorm:"size:100;not null" json:"first_name"`
	LastName     string        `gorm:"size:100;not null" json:"last_name"`
	Role         enum.UserRole `gorm:"size:20;not null" json:"role"`
	IsActive     bool          `gorm:"not null" json:"is_active"`
	LastLogin    *time.Time    `json:"last_login,omitempty"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}

// BeforeCreate generates a UUID before creating a new user
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the User model
func (User) TableName() string {
	return "users"
}

// FullName joins first and last name, falling back to the username.
func (u *User) FullName() string {
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name == "" {
		return u.Username
	}
	return name
}

// HasRole checks if the user has any of the given roles
func (u *User) HasRole(roles ...enum.UserRole) bool {
	for _, r := range roles {
		if u.Role == r {
			return true
		}
	}
	return false
}
