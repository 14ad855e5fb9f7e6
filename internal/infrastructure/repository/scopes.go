package repository

import (
	"strings"
	"time"

	"github.com/sangkips/liquorpos-api/pkg/pagination"
	"gorm.io/gorm"
)

// Paginate applies offset pagination after clamping the params
func Paginate(params *pagination.PaginationParams) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if params == nil {
			params = &pagination.PaginationParams{}
		}
		params.Validate()
		return db.Offset(params.Offset()).Limit(params.PerPage)
	}
}

// Search matches term case-insensitively against any of columns
func Search(term string, columns ...string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		term = strings.TrimSpace(term)
		if term == "" || len(columns) == 0 {
			return db
		}
		like := "%" + strings.ToLower(term) + "%"
		conds := make([]string, len(columns))
		args := make([]interface{}, len(columns))
		for i, col := range columns {
			conds[i] = "LOWER(" + col + ") LIKE ?"
			args[i] = like
		}
		return db.Where(strings.Join(conds, " OR "), args...)
	}
}

// CreatedBetween restricts column to [start, end). Either bound may be nil.
func CreatedBetween(column string, start, end *time.Time) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if start != nil {
			db = db.Where(column+" >= ?", start.UTC())
		}
		if end != nil {
			db = db.Where(column+" < ?", end.UTC())
		}
		return db
	}
}

// OlderThan continues a newest-first keyset walk past cursor
func OlderThan(cursor *pagination.Cursor) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if cursor == nil {
			return db
		}
		at := cursor.CreatedAt.UTC()
		return db.Where("created_at < ? OR (created_at = ? AND id < ?)", at, at, cursor.ID)
	}
}
