package validation

import (
	"github.com/mlefevre/savings-tracker-backend/internal/api/request"
)

// ValidateCreateDeposit validates a profit-sharing deposit creation request.
func ValidateCreateDeposit(req request.CreateDepositRequest) error {
	errors := make(map[string]string)

	validateDate(errors, "depositDate", req.DepositDate)

	if req.DepositAmount <= 0.0 {
		errors["depositAmount"] = "depositAmount must be positive"
	}

	if req.CurrentValue < 0.0 {
		errors["currentValue"] = "currentValue cannot be negative"
	}
	if req.ValueDate != "" {
		validateDate(errors, "valueDate", req.ValueDate)
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}

// ValidateUpdateDeposit validates a deposit update request. All fields are
// optional but must meet the create constraints when provided.
func ValidateUpdateDeposit(req request.UpdateDepositRequest) error {
	errors := make(map[string]string)

	if req.DepositDate != nil {
		validateDate(errors, "depositDate", *req.DepositDate)
	}
	if req.DepositAmount != nil && *req.DepositAmount <= 0.0 {
		errors["depositAmount"] = "depositAmount must be positive"
	}
	if req.CurrentValue != nil && *req.CurrentValue < 0.0 {
		errors["currentValue"] = "currentValue cannot be negative"
	}
	if req.ValueDate != nil {
		validateDate(errors, "valueDate", *req.ValueDate)
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}
