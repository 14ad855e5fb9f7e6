package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewInsufficientStockError(t *testing.T) {
	err := NewInsufficientStockError("Tequila Blanco 750ml", 10, 11)

	assert.Equal(t, http.StatusBadRequest, err.Code)
	assert.Equal(t, KindInsufficientStock, err.Kind)
	assert.Equal(t, 10, err.Details["available"])
	assert.Equal(t, 11, err.Details["requested"])
	assert.Contains(t, err.Error(), "Available: 10")
}

func TestWithDetail(t *testing.T) {
	err := NewNotFoundError("Product").WithDetail("product_id", "abc")

	assert.Equal(t, "Product not found", err.Message)
	assert.Equal(t, "abc", err.Details["product_id"])
}

func TestIsKind_ThroughWrapping(t *testing.T) {
	wrapped := fmt.Errorf("create sale: %w", NewConflictError("Sale is already cancelled"))

	assert.True(t, IsKind(wrapped, KindConflict))
	assert.False(t, IsKind(wrapped, KindNotFound))
	assert.False(t, IsKind(errors.New("plain"), KindConflict))
}

func TestPersistenceError_UnwrapsCause(t *testing.T) {
	cause := errors.New("connection reset")
	err := NewPersistenceError("Failed to create sale", cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, http.StatusInternalServerError, err.Code)
}

func TestGetAppError(t *testing.T) {
	t.Run("passes app errors through", func(t *testing.T) {
		src := NewValidationError("Sale must contain at least one item")
		got := GetAppError(fmt.Errorf("wrap: %w", src))
		require.Same(t, src, got)
	})

	t.Run("hides unknown error messages", func(t *testing.T) {
		got := GetAppError(errors.New("pq: relation \"sales\" does not exist"))
		assert.Equal(t, http.StatusInternalServerError, got.Code)
		assert.Equal(t, KindInternal, got.Kind)
		assert.Equal(t, "Internal server error", got.Message)
	})
}

func TestAppError_IsSentinel(t *testing.T) {
	err := fmt.Errorf("lookup: %w", &AppError{Code: http.StatusNotFound, Kind: KindNotFound, Message: "Sale not found"})
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NotErrorIs(t, err, ErrForbidden)
}
