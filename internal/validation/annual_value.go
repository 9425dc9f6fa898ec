package validation

import (
	"fmt"
	"time"

	"github.com/mlefevre/savings-tracker-backend/internal/api/request"
)

// ValidateUpsertAnnualValue validates a year-end value upsert. The year must
// be a plausible calendar year and the value non-negative (a savings account
// cannot be worth less than nothing).
func ValidateUpsertAnnualValue(req request.UpsertAnnualValueRequest) error {
	errors := make(map[string]string)

	currentYear := time.Now().Year()
	if req.Year < 1900 || req.Year > currentYear {
		errors["year"] = fmt.Sprintf("year must be between 1900 and %d", currentYear)
	}

	if req.EndValue < 0.0 {
		errors["endValue"] = "endValue cannot be negative"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}
