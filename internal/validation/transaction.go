package validation

import (
	"fmt"
	"strings"

	"github.com/mlefevre/savings-tracker-backend/internal/api/request"
	"github.com/mlefevre/savings-tracker-backend/internal/model"
)

// ValidateCreateTransaction validates a transaction creation request.
// Checks all required fields and validates their formats and constraints.
//
// Required fields:
//   - accountId: Must be a valid UUID
//   - date: Must be in YYYY-MM-DD format
//   - type: Must be one of: buy, sell, dividend, fee
//   - quantity: Must be positive for buy and sell
//   - unitPrice: Must be positive for buy and sell
//
// Dividend and fee transactions carry their amount in unitPrice and may have
// zero quantity. Fees must never be negative.
//
// Returns a validation Error with field-specific error messages if validation fails.
func ValidateCreateTransaction(req request.CreateTransactionRequest) error {
	errors := make(map[string]string)

	if err := ValidateUUID(req.AccountID); err != nil {
		return err
	}

	validateDate(errors, "date", req.Date)

	if strings.TrimSpace(req.Type) == "" {
		errors["type"] = "type is required"
	} else if !model.ValidTransactionType[req.Type] {
		errors["type"] = fmt.Sprintf("invalid type: %s", req.Type)
	}

	tradesAsset := req.Type == model.TransactionBuy || req.Type == model.TransactionSell
	if tradesAsset {
		if req.Quantity <= 0.0 {
			errors["quantity"] = "quantity must be positive"
		}
		if req.UnitPrice <= 0.0 {
			errors["unitPrice"] = "unitPrice must be positive"
		}
		if strings.TrimSpace(req.Ticker) == "" {
			errors["ticker"] = "ticker is required for buy and sell"
		}
	} else if req.UnitPrice <= 0.0 {
		errors["unitPrice"] = "unitPrice must be positive"
	}

	if req.Fees < 0.0 {
		errors["fees"] = "fees cannot be negative"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}

// ValidateUpdateTransaction validates a transaction update request.
// All fields are optional, but if provided, they must meet the same constraints as create.
func ValidateUpdateTransaction(req request.UpdateTransactionRequest) error {
	errors := make(map[string]string)

	if req.Date != nil {
		validateDate(errors, "date", *req.Date)
	}
	if req.Type != nil {
		if strings.TrimSpace(*req.Type) == "" {
			errors["type"] = "type is required"
		} else if !model.ValidTransactionType[*req.Type] {
			errors["type"] = fmt.Sprintf("invalid type: %s", *req.Type)
		}
	}
	if req.Quantity != nil && *req.Quantity <= 0.0 {
		errors["quantity"] = "quantity must be positive"
	}
	if req.UnitPrice != nil && *req.UnitPrice <= 0.0 {
		errors["unitPrice"] = "unitPrice must be positive"
	}
	if req.Fees != nil && *req.Fees < 0.0 {
		errors["fees"] = "fees cannot be negative"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}
