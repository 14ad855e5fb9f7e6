package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/liquorpos-api/internal/infrastructure/repository"
	"github.com/sangkips/liquorpos-api/internal/testutil"
	"github.com/stretchr/testify/assert"
)

func TestIdempotencyRequired(t *testing.T) {
	db := testutil.NewTestDB(t)
	now := time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)
	userID := uuid.New()
	calls := 0

	r := gin.New()
	r.POST("/sales",
		func(c *gin.Context) { c.Set(UserIDKey, userID) },
		IdempotencyRequired(IdempotencyConfig{
			Repo:  repository.NewIdempotencyRepository(db),
			Clock: func() time.Time { return now },
		}),
		func(c *gin.Context) {
			calls++
			if c.Query("fail") != "" {
				c.JSON(http.StatusBadRequest, gin.H{"call": calls})
				return
			}
			c.JSON(http.StatusCreated, gin.H{"call": calls})
		},
	)

	post := func(key, path, body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
		if key != "" {
			req.Header.Set(IdempotencyKeyHeader, key)
		}
		return serve(r, req)
	}

	rec := post("", "/sales", `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, 0, calls)

	rec = post("k1", "/sales", `{"a":1}`)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"call":1}`, rec.Body.String())

	rec = post("k1", "/sales", `{"a":1}`)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "true", rec.Header().Get("X-Idempotency-Replayed"))
	assert.JSONEq(t, `{"call":1}`, rec.Body.String())
	assert.Equal(t, 1, calls)

	rec = post("k1", "/sales", `{"a":2}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, 1, calls)

	// failures are not stored
	rec = post("k2", "/sales?fail=1", `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	rec = post("k2", "/sales?fail=1", `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, 3, calls)

	now = now.Add(IdempotencyKeyTTL + time.Minute)
	rec = post("k1", "/sales", `{"a":1}`)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Empty(t, rec.Header().Get("X-Idempotency-Replayed"))
	assert.Equal(t, 4, calls)
}
