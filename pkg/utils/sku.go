package utils

import (
	"strings"

	"github.com/google/uuid"
)

// GenerateSKU generates a product SKU used when none is supplied.
func GenerateSKU() string {
	return "PRD-" + strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:8])
}
