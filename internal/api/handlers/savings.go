package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mlefevre/savings-tracker-backend/internal/api/response"
	"github.com/mlefevre/savings-tracker-backend/internal/apperrors"
	"github.com/mlefevre/savings-tracker-backend/internal/service"
)

// SavingsHandler handles HTTP requests for the derived calculation endpoints:
// positions, account summaries, annual return series, valuations, and net worth.
type SavingsHandler struct {
	summaryService   *service.SummaryService
	valuationService *service.ValuationService
}

// NewSavingsHandler creates a new SavingsHandler with the provided service dependencies.
func NewSavingsHandler(
	summaryService *service.SummaryService,
	valuationService *service.ValuationService,
) *SavingsHandler {
	return &SavingsHandler{
		summaryService:   summaryService,
		valuationService: valuationService,
	}
}

// Positions handles GET requests to retrieve an account's current holdings.
// The position fold rejects corrupt ledgers instead of guessing.
//
// Endpoint: GET /api/account/{uuid}/positions
// Response: 200 OK with array of Position, sorted by ticker
// Error: 400 Bad Request if account ID is invalid (validated by middleware)
// Error: 404 Not Found if account not found
// Error: 422 Unprocessable Entity if the ledger fails integrity checks
// Error: 500 Internal Server Error if the aggregation fails
func (h *SavingsHandler) Positions(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "uuid")

	positions, err := h.summaryService.Positions(r.Context(), accountID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrAccountNotFound):
			response.RespondError(w, http.StatusNotFound, apperrors.ErrAccountNotFound.Error(), err.Error())
		case errors.Is(err, apperrors.ErrDataIntegrity):
			response.RespondError(w, http.StatusUnprocessableEntity, apperrors.ErrDataIntegrity.Error(), err.Error())
		default:
			response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToGetPositions.Error(), err.Error())
		}
		return
	}

	response.RespondJSON(w, http.StatusOK, positions)
}

// Summary handles GET requests to retrieve an account's headline summary.
// The annualizedReturn field is null when the rate cannot be computed; the
// rest of the summary is still served.
//
// Endpoint: GET /api/account/{uuid}/summary
// Response: 200 OK with AccountSummary
// Error: 400 Bad Request if account ID is invalid (validated by middleware)
// Error: 404 Not Found if account not found
// Error: 422 Unprocessable Entity if the ledger fails integrity checks
// Error: 500 Internal Server Error if the calculation fails
func (h *SavingsHandler) Summary(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "uuid")

	summary, err := h.summaryService.Summary(r.Context(), accountID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrAccountNotFound):
			response.RespondError(w, http.StatusNotFound, apperrors.ErrAccountNotFound.Error(), err.Error())
		case errors.Is(err, apperrors.ErrDataIntegrity):
			response.RespondError(w, http.StatusUnprocessableEntity, apperrors.ErrDataIntegrity.Error(), err.Error())
		default:
			response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToGetSummary.Error(), err.Error())
		}
		return
	}

	response.RespondJSON(w, http.StatusOK, summary)
}

// AnnualReturns handles GET requests to retrieve the per-calendar-year return
// series for an account. Years without a resolvable rate carry a null rate;
// one bad year never removes the others from the series.
//
// Endpoint: GET /api/account/{uuid}/annual-returns
// Response: 200 OK with array of AnnualReturn, ascending by year
// Error: 400 Bad Request if account ID is invalid (validated by middleware)
// Error: 404 Not Found if account not found
// Error: 422 Unprocessable Entity if the ledger fails integrity checks
// Error: 500 Internal Server Error if the calculation fails
func (h *SavingsHandler) AnnualReturns(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "uuid")

	series, err := h.summaryService.AnnualReturnSeries(r.Context(), accountID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrAccountNotFound):
			response.RespondError(w, http.StatusNotFound, apperrors.ErrAccountNotFound.Error(), err.Error())
		case errors.Is(err, apperrors.ErrDataIntegrity):
			response.RespondError(w, http.StatusUnprocessableEntity, apperrors.ErrDataIntegrity.Error(), err.Error())
		default:
			response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToGetAnnualReturns.Error(), err.Error())
		}
		return
	}

	response.RespondJSON(w, http.StatusOK, series)
}

// Valuation handles GET requests to retrieve the current valuation of a
// single account using its type-specific strategy.
//
// Endpoint: GET /api/account/{uuid}/valuation
// Response: 200 OK with AccountValuation
// Error: 400 Bad Request if account ID is invalid (validated by middleware)
// Error: 404 Not Found if account not found
// Error: 500 Internal Server Error if the valuation fails
func (h *SavingsHandler) Valuation(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "uuid")

	valuation, err := h.valuationService.ValuateAccount(r.Context(), accountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrAccountNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrAccountNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to valuate account", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, valuation)
}

// NetWorth handles GET requests to retrieve the aggregate view across all
// accounts.
//
// Endpoint: GET /api/networth
// Response: 200 OK with NetWorthSummary
// Error: 500 Internal Server Error if any account valuation fails
func (h *SavingsHandler) NetWorth(w http.ResponseWriter, r *http.Request) {
	summary, err := h.valuationService.NetWorth(r.Context())
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToGetNetWorth.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, summary)
}
