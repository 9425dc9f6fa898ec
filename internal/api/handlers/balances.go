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

// BalanceHandler handles HTTP requests for balance snapshot endpoints.
type BalanceHandler struct {
	balanceService *service.BalanceService
}

// NewBalanceHandler creates a new BalanceHandler with the provided service dependency.
func NewBalanceHandler(balanceService *service.BalanceService) *BalanceHandler {
	return &BalanceHandler{
		balanceService: balanceService,
	}
}

// Balances handles GET requests to retrieve all balance snapshots for an account.
//
// Endpoint: GET /api/account/{uuid}/balances
// Response: 200 OK with array of BalanceRecord, newest first
// Error: 400 Bad Request if account ID is invalid (validated by middleware)
// Error: 404 Not Found if account not found
// Error: 500 Internal Server Error if retrieval fails
func (h *BalanceHandler) Balances(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "uuid")

	balances, err := h.balanceService.GetBalances(accountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrAccountNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrAccountNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveBalances.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, balances)
}

// UpsertBalance handles PUT requests to record or replace the balance for a date.
//
// Endpoint: PUT /api/account/{uuid}/balances
// Request Body: UpsertBalanceRequest (date, balance)
// Response: 200 OK with BalanceRecord
// Error: 400 Bad Request if validation fails or request body is invalid
// Error: 404 Not Found if account not found
// Error: 500 Internal Server Error if the upsert fails
func (h *BalanceHandler) UpsertBalance(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "uuid")

	req, err := parseJSON[request.UpsertBalanceRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateUpsertBalance(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	balance, err := h.balanceService.UpsertBalance(r.Context(), accountID, req)
	if err != nil {
		if errors.Is(err, apperrors.ErrAccountNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrAccountNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to record balance", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, balance)
}
