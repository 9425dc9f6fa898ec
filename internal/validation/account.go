package validation

import (
	"fmt"
	"strings"
	"time"

	"github.com/mlefevre/savings-tracker-backend/internal/api/request"
	"github.com/mlefevre/savings-tracker-backend/internal/model"
)

// ValidateCreateAccount validates an account creation request.
//
// Required fields:
//   - name: non-empty
//   - type: one of the supported account types
//
// Type-specific config constraints are checked when a config is provided:
// opening dates must be YYYY-MM-DD, rates and contributions non-negative.
func ValidateCreateAccount(req request.CreateAccountRequest) error {
	errors := make(map[string]string)

	if strings.TrimSpace(req.Name) == "" {
		errors["name"] = "name is required"
	}

	if strings.TrimSpace(req.Type) == "" {
		errors["type"] = "type is required"
	} else if !model.ValidAccountType[req.Type] {
		errors["type"] = fmt.Sprintf("invalid type: %s", req.Type)
	}

	if req.Config != nil {
		validateAccountConfig(errors, req.Config)
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}

// ValidateUpdateAccount validates an account update request. All fields are
// optional; the account type itself is immutable after creation.
func ValidateUpdateAccount(req request.UpdateAccountRequest) error {
	errors := make(map[string]string)

	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		errors["name"] = "name cannot be empty"
	}

	if req.Config != nil {
		validateAccountConfig(errors, req.Config)
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}

func validateAccountConfig(errors map[string]string, config *request.AccountConfig) {
	if config.OpeningDate != "" {
		if _, err := time.Parse(dateFormat, config.OpeningDate); err != nil {
			errors["config.openingDate"] = err.Error()
		}
	}
	if config.GrossRate < 0 {
		errors["config.grossRate"] = "grossRate cannot be negative"
	}
	if config.CurrentRate < 0 {
		errors["config.currentRate"] = "currentRate cannot be negative"
	}
	if config.MonthlyContribution < 0 {
		errors["config.monthlyContribution"] = "monthlyContribution cannot be negative"
	}
	if config.LockYears < 0 {
		errors["config.lockYears"] = "lockYears cannot be negative"
	}
}
