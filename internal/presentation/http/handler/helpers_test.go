package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/liquorpos-api/internal/presentation/http/dto/request"
	"github.com/sangkips/liquorpos-api/internal/presentation/http/middleware"
	"github.com/sangkips/liquorpos-api/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFieldPath(t *testing.T) {
	assert.Equal(t, "items[0].product_id", fieldPath("CreateSaleRequest.Items[0].ProductID"))
	assert.Equal(t, "items[2].discount_percentage", fieldPath("CreateSaleRequest.Items[2].DiscountPercentage"))
	assert.Equal(t, "reason", fieldPath("CancelSaleRequest.Reason"))
}

func bindContext(body string) *gin.Context {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	return c
}

func TestBindJSON(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		fields []string
	}{
		{"empty items", `{"items":[]}`, []string{"items"}},
		{"bad line", `{"items":[{"quantity":0}]}`, []string{"items[0].product_id", "items[0].quantity"}},
		{"malformed", `{"items":`, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req request.CreateSaleRequest
			err := bindJSON(bindContext(tt.body), &req)

			require.Error(t, err)
			appErr := apperror.GetAppError(err)
			assert.Equal(t, apperror.KindValidation, appErr.Kind)
			fields := make([]string, 0, len(appErr.Errors))
			for _, fe := range appErr.Errors {
				fields = append(fields, fe.Field)
			}
			if tt.fields == nil {
				assert.Empty(t, fields)
			} else {
				assert.Equal(t, tt.fields, fields)
			}
		})
	}

	var typed request.CreateSaleRequest
	err := bindJSON(bindContext(`{"items":[{"product_id":"`+uuid.NewString()+`","quantity":"two"}]}`), &typed)
	appErr := apperror.GetAppError(err)
	require.Len(t, appErr.Errors, 1)
	assert.True(t, strings.HasSuffix(appErr.Errors[0].Field, "quantity"))
	assert.Equal(t, "must be of type int", appErr.Errors[0].Message)

	var ok request.CreateSaleRequest
	require.NoError(t, bindJSON(bindContext(`{"items":[{"product_id":"`+uuid.NewString()+`","quantity":2}]}`), &ok))
	assert.Equal(t, 2, ok.Items[0].Quantity)
}

func TestGetActor(t *testing.T) {
	id := uuid.New()
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Request.Header.Set("User-Agent", "pos-terminal/2")
	c.Request.RemoteAddr = "10.1.2.3:5555"
	c.Set(middleware.UserIDKey, id)
	c.Set(middleware.UsernameKey, "maria")

	actor := GetActor(c)

	assert.Equal(t, id, actor.UserID)
	assert.Equal(t, "maria", actor.Username)
	assert.Equal(t, "10.1.2.3", actor.IPAddress)
	assert.Equal(t, "pos-terminal/2", actor.UserAgent)
}

func TestOptionalParsers(t *testing.T) {
	d, err := optionalDate("start_date", "2026-10-17")
	require.NoError(t, err)
	assert.Equal(t, 17, d.Day())

	_, err = optionalDate("start_date", "yesterday")
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))

	b, err := optionalBool("is_active", "")
	assert.NoError(t, err)
	assert.Nil(t, b)

	_, err = optionalUUID("customer_id", "42")
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))
}
