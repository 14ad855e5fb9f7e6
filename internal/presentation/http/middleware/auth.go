package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/liquorpos-api/internal/domain/enum"
	"github.com/sangkips/liquorpos-api/internal/domain/repository"
	"github.com/sangkips/liquorpos-api/internal/infrastructure/logger"
	"github.com/sangkips/liquorpos-api/internal/presentation/http/dto/response"
	"github.com/sangkips/liquorpos-api/pkg/apperror"
	"github.com/sangkips/liquorpos-api/pkg/utils"
	"go.uber.org/zap"
)

// Context keys set by AuthMiddleware
const (
	UserIDKey    = "user_id"
	UsernameKey  = "username"
	UserEmailKey = "user_email"
	UserRoleKey  = "user_role"
)

// AuthMiddleware creates a JWT authentication middleware
func AuthMiddleware(jwtManager *utils.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, "Authorization header is required")
			c.Abort()
			return
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			response.Unauthorized(c, "Invalid authorization header format")
			c.Abort()
			return
		}

		claims, err := jwtManager.ValidateAccessToken(parts[1])
		if err != nil {
			response.Unauthorized(c, "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set(UserIDKey, claims.UserID)
		c.Set(UsernameKey, claims.Username)
		c.Set(UserEmailKey, claims.Email)
		c.Set(UserRoleKey, enum.UserRole(claims.Role))

		// Enrich the request logger with the caller
		reqLogger := logger.GetGinLogger(c).With(
			zap.String("user_id", claims.UserID.String()),
			zap.String("username", claims.Username),
		)
		c.Set("logger", reqLogger)
		c.Request = c.Request.WithContext(logger.WithContext(c.Request.Context(), reqLogger))

		c.Next()
	}
}

// ActiveUser reloads the authenticated account so deactivated staff lose
// access before their token expires. The stored role replaces the one in
// the token.
func ActiveUser(users repository.UserReader) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _ := c.Get(UserIDKey)
		id, ok := userID.(uuid.UUID)
		if !ok {
			response.Unauthorized(c, "User not authenticated")
			c.Abort()
			return
		}

		user, err := users.GetByID(c.Request.Context(), id)
		if err != nil {
			response.Error(c, apperror.NewPersistenceError("Failed to load user", err))
			c.Abort()
			return
		}
		if user == nil || !user.IsActive {
			response.Unauthorized(c, "User account is disabled")
			c.Abort()
			return
		}

		c.Set(UsernameKey, user.Username)
		c.Set(UserRoleKey, user.Role)
		c.Next()
	}
}

// RequireRole creates a middleware that admits only the given roles
func RequireRole(roles ...enum.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		value, exists := c.Get(UserRoleKey)
		if !exists {
			response.Forbidden(c, "Access denied")
			c.Abort()
			return
		}

		userRole, ok := value.(enum.UserRole)
		if !ok {
			response.Forbidden(c, "Access denied")
			c.Abort()
			return
		}

		for _, required := range roles {
			if userRole == required {
				c.Next()
				return
			}
		}

		response.Forbidden(c, "Insufficient role privileges")
		c.Abort()
	}
}
