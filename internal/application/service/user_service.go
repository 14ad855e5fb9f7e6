package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/sangkips/liquorpos-api/internal/domain/entity"
	"github.com/sangkips/liquorpos-api/internal/domain/enum"
	"github.com/sangkips/liquorpos-api/internal/domain/repository"
	"github.com/sangkips/liquorpos-api/internal/infrastructure/database"
	"github.com/sangkips/liquorpos-api/pkg/apperror"
	"github.com/sangkips/liquorpos-api/pkg/pagination"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const (
	minPasswordLength = 6
	// bcrypt ignores input past 72 bytes
	maxPasswordLength = 72
)

// UserService handles staff account management
type UserService struct {
	userRepo   repository.UserRepository
	audit      AuditRecorder
	logger     *zap.Logger
	bcryptCost int
}

// NewUserService creates a new user service
func NewUserService(userRepo repository.UserRepository, audit AuditRecorder, logger *zap.Logger) *UserService {
	return &UserService{
		userRepo:   userRepo,
		audit:      audit,
		logger:     logger.Named("users"),
		bcryptCost: bcrypt.DefaultCost,
	}
}

// CreateUserInput represents a new staff account
type CreateUserInput struct {
	Username  string
	Email     string
	Password  string
	FirstName string
	LastName  string
	Role      *enum.UserRole
	IsActive  *bool
}

// UpdateUserInput carries the fields to change. Nil fields are left unchanged.
type UpdateUserInput struct {
	Username  *string
	Email     *string
	Password  *string
	FirstName *string
	LastName  *string
	Role      *enum.UserRole
	IsActive  *bool
}

// ListUsers returns a page of staff accounts
func (s *UserService) ListUsers(ctx context.Context, params *repository.UserFilterParams) (*pagination.PaginatedResult[entity.User], error) {
	if params.Pagination == nil {
		params.Pagination = &pagination.PaginationParams{}
	}
	params.Pagination.Validate()

	users, total, err := s.userRepo.List(ctx, params)
	if err != nil {
		return nil, apperror.NewPersistenceError("Failed to list users", err)
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(users, pag), nil
}

// GetUser returns a user by ID
func (s *UserService) GetUser(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.NewPersistenceError("Failed to load user", err)
	}
	if user == nil {
		return nil, apperror.NewNotFoundError("User").WithDetail("user_id", id.String())
	}
	return user, nil
}

// CreateUser registers a staff account. New accounts default to cashier.
func (s *UserService) CreateUser(ctx context.Context, actor Actor, input *CreateUserInput) (*entity.User, error) {
	user := &entity.User{
		Username:  strings.TrimSpace(input.Username),
		Email:     strings.ToLower(strings.TrimSpace(input.Email)),
		FirstName: strings.TrimSpace(input.FirstName),
		LastName:  strings.TrimSpace(input.LastName),
		Role:      enum.UserRoleCashier,
		IsActive:  true,
	}
	if input.Role != nil {
		user.Role = *input.Role
	}
	if input.IsActive != nil {
		user.IsActive = *input.IsActive
	}

	var fieldErrors []apperror.FieldError
	if user.Username == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "username", Message: "is required"})
	}
	if !strings.Contains(user.Email, "@") {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "email", Message: "is not a valid email address"})
	}
	if fe := passwordError(input.Password); fe != nil {
		fieldErrors = append(fieldErrors, *fe)
	}
	if !user.Role.IsValid() {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "role", Message: "is not a known role"})
	}
	if len(fieldErrors) > 0 {
		return nil, apperror.NewValidationError("Invalid user", fieldErrors...)
	}

	if err := s.checkUnique(ctx, user); err != nil {
		return nil, err
	}
	if err := s.setPassword(user, input.Password); err != nil {
		return nil, err
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if database.IsUniqueViolation(err) {
			return nil, apperror.NewDuplicateError("Username or email already registered")
		}
		return nil, apperror.NewPersistenceError("Failed to create user", err)
	}

	s.logger.Info("User created",
		zap.String("user_id", user.ID.String()),
		zap.String("username", user.Username),
		zap.String("role", user.Role.String()),
	)
	s.audit.Record(ctx, actor, AuditEntry{
		Action:      enum.AuditActionCreate,
		Module:      enum.AuditModuleUsers,
		EntityID:    user.ID.String(),
		EntityName:  user.Username,
		Description: "User created: " + user.Username + " (" + user.Email + ") - role: " + user.Role.String(),
		NewValues:   userSnapshot(user),
	})
	return user, nil
}

// UpdateUser changes account fields, including the password when given
func (s *UserService) UpdateUser(ctx context.Context, actor Actor, id uuid.UUID, input *UpdateUserInput) (*entity.User, error) {
	user, err := s.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}
	before := userSnapshot(user)

	var fieldErrors []apperror.FieldError
	if input.Username != nil {
		if name := strings.TrimSpace(*input.Username); name == "" {
			fieldErrors = append(fieldErrors, apperror.FieldError{Field: "username", Message: "must not be empty"})
		} else {
			user.Username = name
		}
	}
	if input.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*input.Email))
		if !strings.Contains(email, "@") {
			fieldErrors = append(fieldErrors, apperror.FieldError{Field: "email", Message: "is not a valid email address"})
		} else {
			user.Email = email
		}
	}
	if input.FirstName != nil {
		user.FirstName = strings.TrimSpace(*input.FirstName)
	}
	if input.LastName != nil {
		user.LastName = strings.TrimSpace(*input.LastName)
	}
	if input.Role != nil {
		if !input.Role.IsValid() {
			fieldErrors = append(fieldErrors, apperror.FieldError{Field: "role", Message: "is not a known role"})
		} else {
			user.Role = *input.Role
		}
	}
	if input.Password != nil {
		if fe := passwordError(*input.Password); fe != nil {
			fieldErrors = append(fieldErrors, *fe)
		}
	}
	if input.IsActive != nil {
		if !*input.IsActive && user.ID == actor.UserID {
			fieldErrors = append(fieldErrors, apperror.FieldError{Field: "is_active", Message: "you cannot deactivate your own account"})
		} else {
			user.IsActive = *input.IsActive
		}
	}
	if len(fieldErrors) > 0 {
		return nil, apperror.NewValidationError("Invalid user", fieldErrors...)
	}

	if err := s.checkUnique(ctx, user); err != nil {
		return nil, err
	}

	passwordChanged := input.Password != nil
	if passwordChanged {
		if err := s.setPassword(user, *input.Password); err != nil {
			return nil, err
		}
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		if database.IsUniqueViolation(err) {
			return nil, apperror.NewDuplicateError("Username or email already registered")
		}
		return nil, apperror.NewPersistenceError("Failed to update user", err)
	}

	after := userSnapshot(user)
	description := "User updated: " + user.Username
	if passwordChanged {
		before["password_changed"] = false
		after["password_changed"] = true
		description += " (password changed)"
	}
	s.audit.Record(ctx, actor, AuditEntry{
		Action:      enum.AuditActionUpdate,
		Module:      enum.AuditModuleUsers,
		EntityID:    user.ID.String(),
		EntityName:  user.Username,
		Description: description,
		OldValues:   before,
		NewValues:   after,
	})
	return user, nil
}

// DeactivateUser disables an account. Admins and the caller's own account
// cannot be deactivated here.
func (s *UserService) DeactivateUser(ctx context.Context, actor Actor, id uuid.UUID) error {
	user, err := s.GetUser(ctx, id)
	if err != nil {
		return err
	}
	if user.ID == actor.UserID {
		return apperror.NewBadRequestError("You cannot deactivate your own account")
	}
	if user.Role == enum.UserRoleAdmin {
		return apperror.NewBadRequestError("Administrator accounts cannot be deactivated")
	}
	if !user.IsActive {
		return nil
	}

	user.IsActive = false
	if err := s.userRepo.Update(ctx, user); err != nil {
		return apperror.NewPersistenceError("Failed to deactivate user", err)
	}

	s.audit.Record(ctx, actor, AuditEntry{
		Action:      enum.AuditActionDelete,
		Module:      enum.AuditModuleUsers,
		EntityID:    user.ID.String(),
		EntityName:  user.Username,
		Description: "User deactivated: " + user.Username + " (" + user.Email + ")",
		OldValues:   entity.AuditValues{"is_active": true},
		NewValues:   entity.AuditValues{"is_active": false},
	})
	return nil
}

func (s *UserService) checkUnique(ctx context.Context, user *entity.User) error {
	existing, err := s.userRepo.GetByUsername(ctx, user.Username)
	if err != nil {
		return apperror.NewPersistenceError("Failed to check username", err)
	}
	if existing != nil && existing.ID != user.ID {
		return apperror.NewDuplicateError("Username already registered").WithDetail("username", user.Username)
	}

	existing, err = s.userRepo.GetByEmail(ctx, user.Email)
	if err != nil {
		return apperror.NewPersistenceError("Failed to check email", err)
	}
	if existing != nil && existing.ID != user.ID {
		return apperror.NewDuplicateError("Email already registered").WithDetail("email", user.Email)
	}
	return nil
}

func (s *UserService) setPassword(user *entity.User, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		s.logger.Error("Failed to hash password", zap.Error(err))
		return apperror.ErrInternalServer
	}
	user.PasswordHash = string(hash)
	return nil
}

func passwordError(password string) *apperror.FieldError {
	switch {
	case len(password) < minPasswordLength:
		return &apperror.FieldError{Field: "password", Message: "must be at least 6 characters"}
	case len(password) > maxPasswordLength:
		return &apperror.FieldError{Field: "password", Message: "must be at most 72 bytes"}
	}
	return nil
}

func userSnapshot(u *entity.User) entity.AuditValues {
	return entity.AuditValues{
		"username":  u.Username,
		"email":     u.Email,
		"role":      u.Role.String(),
		"is_active": u.IsActive,
	}
}
