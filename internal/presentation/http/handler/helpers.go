package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/sangkips/liquorpos-api/internal/application/service"
	"github.com/sangkips/liquorpos-api/internal/presentation/http/middleware"
	"github.com/sangkips/liquorpos-api/pkg/apperror"
)

const dateLayout = "2006-01-02"

// GetUserID extracts the user ID from the Gin context
func GetUserID(c *gin.Context) *uuid.UUID {
	userIDVal, exists := c.Get(middleware.UserIDKey)
	if !exists {
		return nil
	}
	userID, ok := userIDVal.(uuid.UUID)
	if !ok {
		return nil
	}
	return &userID
}

// GetActor describes the authenticated caller for services and auditing
func GetActor(c *gin.Context) service.Actor {
	actor := service.Actor{
		Username:  c.GetString(middleware.UsernameKey),
		IPAddress: c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	}
	if id := GetUserID(c); id != nil {
		actor.UserID = *id
	}
	return actor
}

// parseIDParam parses a uuid path parameter
func parseIDParam(c *gin.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, apperror.NewValidationError("Invalid ID format",
			apperror.FieldError{Field: name, Message: "must be a UUID"})
	}
	return id, nil
}

// bindJSON decodes the request body and converts binding failures into a
// validation error listing the offending fields.
func bindJSON(c *gin.Context, dst interface{}) error {
	err := c.ShouldBindJSON(dst)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	var typeErr *json.UnmarshalTypeError
	var syntaxErr *json.SyntaxError
	switch {
	case errors.As(err, &validationErrs):
		fields := make([]apperror.FieldError, 0, len(validationErrs))
		for _, fe := range validationErrs {
			fields = append(fields, apperror.FieldError{
				Field:   fieldPath(fe.Namespace()),
				Message: validationMessage(fe),
			})
		}
		return apperror.NewValidationError("Invalid request", fields...)
	case errors.As(err, &typeErr):
		return apperror.NewValidationError("Invalid request",
			apperror.FieldError{Field: typeErr.Field, Message: "must be of type " + typeErr.Type.String()})
	case errors.As(err, &syntaxErr), errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		return apperror.NewValidationError("Malformed JSON body")
	default:
		return apperror.NewValidationError("Invalid request", apperror.FieldError{Field: "body", Message: err.Error()})
	}
}

// fieldPath turns "CreateSaleRequest.Items[0].Quantity" into "items[0].quantity"
func fieldPath(namespace string) string {
	parts := strings.Split(namespace, ".")
	if len(parts) > 1 {
		parts = parts[1:]
	}
	for i, p := range parts {
		parts[i] = toSnake(p)
	}
	return strings.Join(parts, ".")
}

func toSnake(s string) string {
	var b strings.Builder
	for i, r := range s {
		if r >= 'A' && r <= 'Z' {
			if i > 0 && s[i-1] != '[' && !(s[i-1] >= 'A' && s[i-1] <= 'Z') {
				b.WriteByte('_')
			}
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("must contain at least %s item(s)", fe.Param())
		}
		return "must be at least " + fe.Param()
	case "max":
		return "must be at most " + fe.Param()
	default:
		return "failed " + fe.Tag() + " validation"
	}
}

// optionalUUID parses an optional uuid query value
func optionalUUID(field, value string) (*uuid.UUID, error) {
	if value == "" {
		return nil, nil
	}
	id, err := uuid.Parse(value)
	if err != nil {
		return nil, apperror.NewValidationError("Invalid query parameters",
			apperror.FieldError{Field: field, Message: "must be a UUID"})
	}
	return &id, nil
}

// optionalDate parses an optional YYYY-MM-DD query value
func optionalDate(field, value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return nil, apperror.NewValidationError("Invalid query parameters",
			apperror.FieldError{Field: field, Message: "must be a date in YYYY-MM-DD format"})
	}
	return &t, nil
}

// optionalBool parses an optional boolean query value
func optionalBool(field, value string) (*bool, error) {
	if value == "" {
		return nil, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return nil, apperror.NewValidationError("Invalid query parameters",
			apperror.FieldError{Field: field, Message: "must be true or false"})
	}
	return &b, nil
}
