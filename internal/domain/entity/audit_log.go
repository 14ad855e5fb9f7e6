package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/liquorpos-api/internal/domain/enum"
	"gorm.io/gorm"
)

// AuditValues is a snapshot of field values stored as JSON text
type AuditValues map[string]interface{}

// Scan implements the sql.Scanner interface for AuditValues
func (v *AuditValues) Scan(value interface{}) error {
	if value == nil {
		*v = nil
		return nil
	}

	var bytes []byte
	switch val := value.(type) {
	case []byte:
		bytes = val
	case string:
		bytes = []byte(val)
	default:
		return errors.New("failed to scan AuditValues: unsupported type")
	}

	return json.Unmarshal(bytes, v)
}

// Value implements the driver.Valuer interface for AuditValues
func (v AuditValues) Value() (driver.Value, error) {
	if v == nil {
		return nil, nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// AuditLog is an append-only record of who did what.
type AuditLog struct {
	ID          uuid.UUID        `gorm:"type:uuid;primary_key" json:"id"`
	UserID      *uuid.UUID       `gorm:"type:uuid;index" json:"user_id,omitempty"`
	Username    string           `gorm:"size:50" json:"username"`
	Action      enum.AuditAction `gorm:"size:20;not null;index" json:"action"`
	Module      string           `gorm:"size:50;not null;index" json:"module"`
	EntityID    *string          `gorm:"size:64;index" json:"entity_id,omitempty"`
	EntityName  *string          `gorm:"size:255" json:"entity_name,omitempty"`
	Description *string          `gorm:"type:text" json:"description,omitempty"`
	OldValues   AuditValues      `gorm:"type:text" json:"old_values,omitempty"`
	NewValues   AuditValues      `gorm:"type:text" json:"new_values,omitempty"`
	IPAddress   *string          `gorm:"size:45" json:"ip_address,omitempty"`
	UserAgent   *string          `gorm:"type:text" json:"user_agent,omitempty"`
	CreatedAt   time.Time        `gorm:"index" json:"created_at"`
}

// BeforeCreate generates a UUID before creating a new audit log
func (a *AuditLog) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the AuditLog model
func (AuditLog) TableName() string {
	return "audit_logs"
}
