package validation

import (
	"github.com/mlefevre/savings-tracker-backend/internal/api/request"
)

// ValidateUpsertBalance validates a balance snapshot upsert.
func ValidateUpsertBalance(req request.UpsertBalanceRequest) error {
	errors := make(map[string]string)

	validateDate(errors, "date", req.Date)

	if req.Balance < 0.0 {
		errors["balance"] = "balance cannot be negative"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}
