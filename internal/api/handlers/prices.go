package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/mlefevre/savings-tracker-backend/internal/api/response"
	"github.com/mlefevre/savings-tracker-backend/internal/apperrors"
	"github.com/mlefevre/savings-tracker-backend/internal/pricing"
)

// PriceHandler handles HTTP requests for market price endpoints.
type PriceHandler struct {
	priceService *pricing.Service
}

// NewPriceHandler creates a new PriceHandler with the provided service dependency.
func NewPriceHandler(priceService *pricing.Service) *PriceHandler {
	return &PriceHandler{
		priceService: priceService,
	}
}

// CurrentPrice handles GET requests to resolve the current price for a ticker.
//
// Endpoint: GET /api/price/{ticker}
// Response: 200 OK with {"ticker": ..., "price": ...}
// Error: 404 Not Found if the ticker cannot be resolved
func (h *PriceHandler) CurrentPrice(w http.ResponseWriter, r *http.Request) {
	ticker := chi.URLParam(r, "ticker")
	if ticker == "" {
		response.RespondError(w, http.StatusBadRequest, "ticker is required", "")
		return
	}

	price, err := h.priceService.CurrentPrice(r.Context(), ticker)
	if err != nil {
		response.RespondError(w, http.StatusNotFound, apperrors.ErrPriceNotFound.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"ticker": ticker,
		"price":  price,
	})
}

// PriceHistory handles GET requests to retrieve a daily price series for a
// ticker. The range is controlled with start and end query parameters
// (YYYY-MM-DD); it defaults to the past year.
//
// Endpoint: GET /api/price/{ticker}/history?start=...&end=...
// Response: 200 OK with array of PricePoint
// Error: 400 Bad Request if a date parameter is malformed or the range is inverted
// Error: 404 Not Found if the ticker cannot be resolved
func (h *PriceHandler) PriceHistory(w http.ResponseWriter, r *http.Request) {
	ticker := chi.URLParam(r, "ticker")
	if ticker == "" {
		response.RespondError(w, http.StatusBadRequest, "ticker is required", "")
		return
	}

	end := time.Now().UTC()
	start := end.AddDate(-1, 0, 0)

	if v := r.URL.Query().Get("start"); v != "" {
		parsed, err := time.Parse("2006-01-02", v)
		if err != nil {
			response.RespondError(w, http.StatusBadRequest, "invalid start date", err.Error())
			return
		}
		start = parsed
	}
	if v := r.URL.Query().Get("end"); v != "" {
		parsed, err := time.Parse("2006-01-02", v)
		if err != nil {
			response.RespondError(w, http.StatusBadRequest, "invalid end date", err.Error())
			return
		}
		end = parsed
	}

	if start.After(end) {
		response.RespondError(w, http.StatusBadRequest, apperrors.ErrInvalidDateRange.Error(), "start is after end")
		return
	}

	points, err := h.priceService.History(r.Context(), ticker, start, end)
	if err != nil {
		response.RespondError(w, http.StatusNotFound, apperrors.ErrPriceNotFound.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, points)
}
