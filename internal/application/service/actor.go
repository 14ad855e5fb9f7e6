package service

import "github.com/google/uuid"

// Actor identifies who performs an operation and from where. It is filled
// from the authenticated request and carried into audit records.
type Actor struct {
	UserID    uuid.UUID
	Username  string
	IPAddress string
	UserAgent string
}
