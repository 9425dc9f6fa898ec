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

// AccountHandler handles HTTP requests for savings account endpoints.
// It serves as the HTTP layer adapter, parsing requests and delegating
// business logic to the accountService.
type AccountHandler struct {
	accountService *service.AccountService
}

// NewAccountHandler creates a new AccountHandler with the provided service dependency.
func NewAccountHandler(accountService *service.AccountService) *AccountHandler {
	return &AccountHandler{
		accountService: accountService,
	}
}

// Accounts handles GET requests to retrieve all savings accounts.
//
// Endpoint: GET /api/account
// Response: 200 OK with array of SavingsAccount
// Error: 500 Internal Server Error if retrieval fails
func (h *AccountHandler) Accounts(w http.ResponseWriter, _ *http.Request) {
	accounts, err := h.accountService.GetAccounts()
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveAccounts.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, accounts)
}

// GetAccount handles GET requests to retrieve a single savings account by ID.
//
// Endpoint: GET /api/account/{uuid}
// Response: 200 OK with SavingsAccount
// Error: 400 Bad Request if account ID is invalid (validated by middleware)
// Error: 404 Not Found if account not found
// Error: 500 Internal Server Error if retrieval fails
func (h *AccountHandler) GetAccount(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "uuid")

	account, err := h.accountService.GetAccount(accountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrAccountNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrAccountNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveAccount.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, account)
}

// CreateAccount handles POST requests to create a new savings account.
//
// Endpoint: POST /api/account
// Request Body: CreateAccountRequest (name, type, description, currency, isDefault, config)
// Response: 201 Created with SavingsAccount
// Error: 400 Bad Request if validation fails or request body is invalid
// Error: 500 Internal Server Error if creation fails
func (h *AccountHandler) CreateAccount(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.CreateAccountRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateCreateAccount(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	account, err := h.accountService.CreateAccount(r.Context(), req)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to create account", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusCreated, account)
}

// UpdateAccount handles PUT requests to update an existing savings account.
//
// Endpoint: PUT /api/account/{uuid}
// Request Body: UpdateAccountRequest (all fields optional; type is immutable)
// Response: 200 OK with updated SavingsAccount
// Error: 400 Bad Request if account ID is invalid (validated by middleware) or validation fails
// Error: 404 Not Found if account not found
// Error: 500 Internal Server Error if update fails
func (h *AccountHandler) UpdateAccount(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "uuid")

	req, err := parseJSON[request.UpdateAccountRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateUpdateAccount(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	account, err := h.accountService.UpdateAccount(r.Context(), accountID, req)
	if err != nil {
		if errors.Is(err, apperrors.ErrAccountNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrAccountNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to update account", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, account)
}

// DeleteAccount handles DELETE requests to remove a savings account and all
// its dependent records.
//
// Endpoint: DELETE /api/account/{uuid}
// Response: 204 No Content
// Error: 400 Bad Request if account ID is invalid (validated by middleware)
// Error: 404 Not Found if account not found
// Error: 500 Internal Server Error if deletion fails
func (h *AccountHandler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "uuid")

	if err := h.accountService.DeleteAccount(r.Context(), accountID); err != nil {
		if errors.Is(err, apperrors.ErrAccountNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrAccountNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to delete account", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}

// SetDefaultAccount handles PUT requests to mark an account as the default.
//
// Endpoint: PUT /api/account/{uuid}/default
// Response: 204 No Content
// Error: 400 Bad Request if account ID is invalid (validated by middleware)
// Error: 404 Not Found if account not found
// Error: 500 Internal Server Error if the update fails
func (h *AccountHandler) SetDefaultAccount(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "uuid")

	if err := h.accountService.SetDefaultAccount(r.Context(), accountID); err != nil {
		if errors.Is(err, apperrors.ErrAccountNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrAccountNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to set default account", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}
