package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mlefevre/savings-tracker-backend/internal/api/request"
	"github.com/mlefevre/savings-tracker-backend/internal/api/response"
	"github.com/mlefevre/savings-tracker-backend/internal/apperrors"
	"github.com/mlefevre/savings-tracker-backend/internal/service"
	"github.com/mlefevre/savings-tracker-backend/internal/validation"
)

// DepositHandler handles HTTP requests for profit-sharing deposit endpoints.
type DepositHandler struct {
	depositService *service.DepositService
}

// NewDepositHandler creates a new DepositHandler with the provided service dependency.
func NewDepositHandler(depositService *service.DepositService) *DepositHandler {
	return &DepositHandler{
		depositService: depositService,
	}
}

// Deposits handles GET requests to retrieve all deposits for an account.
//
// Endpoint: GET /api/account/{uuid}/deposits
// Response: 200 OK with array of DepositRecord, oldest first
// Error: 400 Bad Request if account ID is invalid (validated by middleware)
// Error: 404 Not Found if account not found
// Error: 500 Internal Server Error if retrieval fails
func (h *DepositHandler) Deposits(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "uuid")

	deposits, err := h.depositService.GetDeposits(accountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrAccountNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrAccountNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveDeposits.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, deposits)
}

// CreateDeposit handles POST requests to record a new deposit.
//
// Endpoint: POST /api/account/{uuid}/deposits
// Request Body: CreateDepositRequest (depositDate, depositAmount, strategy, currentValue, valueDate)
// Response: 201 Created with DepositRecord
// Error: 400 Bad Request if validation fails or request body is invalid
// Error: 404 Not Found if account not found
// Error: 500 Internal Server Error if creation fails
func (h *DepositHandler) CreateDeposit(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "uuid")

	req, err := parseJSON[request.CreateDepositRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateCreateDeposit(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	deposit, err := h.depositService.CreateDeposit(r.Context(), accountID, req)
	if err != nil {
		if errors.Is(err, apperrors.ErrAccountNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrAccountNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to create deposit", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusCreated, deposit)
}

// UpdateDeposit handles PUT requests to update an existing deposit.
//
// Endpoint: PUT /api/deposit/{uuid}
// Request Body: UpdateDepositRequest (all fields optional)
// Response: 200 OK with updated DepositRecord
// Error: 400 Bad Request if deposit ID is invalid (validated by middleware) or validation fails
// Error: 404 Not Found if deposit not found
// Error: 500 Internal Server Error if update fails
func (h *DepositHandler) UpdateDeposit(w http.ResponseWriter, r *http.Request) {
	depositID := chi.URLParam(r, "uuid")

	req, err := parseJSON[request.UpdateDepositRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateUpdateDeposit(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	deposit, err := h.depositService.UpdateDeposit(r.Context(), depositID, req)
	if err != nil {
		if errors.Is(err, apperrors.ErrDepositNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrDepositNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to update deposit", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, deposit)
}

// DeleteDeposit handles DELETE requests to remove a deposit.
//
// Endpoint: DELETE /api/deposit/{uuid}
// Response: 204 No Content
// Error: 400 Bad Request if deposit ID is invalid (validated by middleware)
// Error: 404 Not Found if deposit not found
// Error: 500 Internal Server Error if deletion fails
func (h *DepositHandler) DeleteDeposit(w http.ResponseWriter, r *http.Request) {
	depositID := chi.URLParam(r, "uuid")

	if err := h.depositService.DeleteDeposit(r.Context(), depositID); err != nil {
		if errors.Is(err, apperrors.ErrDepositNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrDepositNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to delete deposit", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}
