package validation

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mlefevre/savings-tracker-backend/internal/apperrors"
)

const dateFormat = "2006-01-02"

// ValidateUUID checks if a string is a valid UUID
func ValidateUUID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%w: %s", apperrors.ErrInvalidUUID, id)
	}
	return nil
}

// validateDate parses a YYYY-MM-DD date string and records a field error on
// failure.
func validateDate(errors map[string]string, field, value string) (time.Time, bool) {
	if value == "" {
		errors[field] = field + " is required"
		return time.Time{}, false
	}
	date, err := time.Parse(dateFormat, value)
	if err != nil {
		errors[field] = err.Error()
		return time.Time{}, false
	}
	return date, true
}
