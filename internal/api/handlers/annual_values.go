package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/mlefevre/savings-tracker-backend/internal/api/request"
	"github.com/mlefevre/savings-tracker-backend/internal/api/response"
	"github.com/mlefevre/savings-tracker-backend/internal/apperrors"
	"github.com/mlefevre/savings-tracker-backend/internal/service"
	"github.com/mlefevre/savings-tracker-backend/internal/validation"
)

// AnnualValueHandler handles HTTP requests for year-end value endpoints.
type AnnualValueHandler struct {
	annualValueService *service.AnnualValueService
}

// NewAnnualValueHandler creates a new AnnualValueHandler with the provided service dependency.
func NewAnnualValueHandler(annualValueService *service.AnnualValueService) *AnnualValueHandler {
	return &AnnualValueHandler{
		annualValueService: annualValueService,
	}
}

// AnnualValues handles GET requests to retrieve all year-end values for an account.
//
// Endpoint: GET /api/account/{uuid}/annual-values
// Response: 200 OK with array of AnnualValue, ascending by year
// Error: 400 Bad Request if account ID is invalid (validated by middleware)
// Error: 404 Not Found if account not found
// Error: 500 Internal Server Error if retrieval fails
func (h *AnnualValueHandler) AnnualValues(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "uuid")

	values, err := h.annualValueService.GetAnnualValues(accountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrAccountNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrAccountNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveAnnualValues.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, values)
}

// UpsertAnnualValue handles PUT requests to record or replace a year-end value.
//
// Endpoint: PUT /api/account/{uuid}/annual-values
// Request Body: UpsertAnnualValueRequest (year, endValue)
// Response: 200 OK with AnnualValue
// Error: 400 Bad Request if validation fails or request body is invalid
// Error: 404 Not Found if account not found
// Error: 500 Internal Server Error if the upsert fails
func (h *AnnualValueHandler) UpsertAnnualValue(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "uuid")

	req, err := parseJSON[request.UpsertAnnualValueRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateUpsertAnnualValue(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	value, err := h.annualValueService.UpsertAnnualValue(r.Context(), accountID, req)
	if err != nil {
		if errors.Is(err, apperrors.ErrAccountNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrAccountNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to record annual value", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, value)
}

// DeleteAnnualValue handles DELETE requests to remove a year-end value.
//
// Endpoint: DELETE /api/account/{uuid}/annual-values/{year}
// Response: 204 No Content
// Error: 400 Bad Request if the year is not a number
// Error: 404 Not Found if no value exists for that year
// Error: 500 Internal Server Error if deletion fails
func (h *AnnualValueHandler) DeleteAnnualValue(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "uuid")

	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid year", err.Error())
		return
	}

	if err := h.annualValueService.DeleteAnnualValue(r.Context(), accountID, year); err != nil {
		if errors.Is(err, apperrors.ErrAnnualValueNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrAnnualValueNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to delete annual value", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}
