package service

import (
	"fmt"
	"log"
	"sort"

	"github.com/mlefevre/savings-tracker-backend/internal/apperrors"
	"github.com/mlefevre/savings-tracker-backend/internal/model"
)

// quantityEpsilon absorbs float64 noise when comparing a sell quantity
// against the running held quantity.
const quantityEpsilon = 1e-9

// runningPosition carries the fold state for one instrument.
type runningPosition struct {
	ticker        string
	isin          string
	name          string
	quantity      float64
	totalInvested float64
}

// AggregatePositions folds a transaction ledger into per-instrument positions.
//
// The fold is a single left-to-right pass and is order-dependent: the caller
// must supply transactions in non-decreasing date order (repositories return
// them that way). Out-of-order input is rejected rather than silently folded
// wrong.
//
// Transaction processing:
//   - buy: quantity and totalInvested grow by the transaction's quantity and
//     authoritative totalAmount; averageCost = totalInvested / quantity.
//   - sell: totalInvested shrinks proportionally to the fraction of the
//     holding sold (totalInvested * soldQty/heldQty). This is a deliberate
//     simplification of realized-cost accounting, not lot accounting, and is
//     part of the displayed financial semantics.
//   - dividend, fee: no effect on quantity or totalInvested; their cash-flow
//     effect is handled by the return engine's flow builder.
//
// A sell against a zero holding or exceeding the held quantity means the
// ledger is corrupt and fails with apperrors.ErrDataIntegrity.
//
// A missing price for an instrument values it at 0 with a logged warning;
// aggregation continues for the other instruments.
//
// Pure function of its inputs: no caching, no hidden state. Each call is a
// fresh fold over the full ledger, which is fine at personal-finance scale.
func AggregatePositions(transactions []model.Transaction, prices map[string]float64) ([]model.Position, error) {
	running := make(map[string]*runningPosition)

	for i, t := range transactions {
		if i > 0 && t.Date.Before(transactions[i-1].Date) {
			return nil, fmt.Errorf("%w: transaction %s dated %s arrives after %s",
				apperrors.ErrDataIntegrity, t.ID,
				t.Date.Format("2006-01-02"), transactions[i-1].Date.Format("2006-01-02"))
		}

		// Dividends and fees are cash-flow only; they never open a position.
		if t.Type == model.TransactionDividend || t.Type == model.TransactionFee {
			continue
		}

		pos, ok := running[t.Ticker]
		if !ok {
			pos = &runningPosition{ticker: t.Ticker, isin: t.Isin, name: t.AssetName}
			running[t.Ticker] = pos
		}

		switch t.Type {
		case model.TransactionBuy:
			pos.quantity += t.Quantity
			pos.totalInvested += t.TotalAmount
		case model.TransactionSell:
			if pos.quantity <= 0 {
				return nil, fmt.Errorf("%w: sell of %s with no held quantity (transaction %s)",
					apperrors.ErrDataIntegrity, t.Ticker, t.ID)
			}
			if t.Quantity > pos.quantity+quantityEpsilon {
				return nil, fmt.Errorf("%w: sell of %g %s exceeds held quantity %g (transaction %s)",
					apperrors.ErrDataIntegrity, t.Quantity, t.Ticker, pos.quantity, t.ID)
			}
			saleRatio := t.Quantity / pos.quantity
			pos.totalInvested -= pos.totalInvested * saleRatio
			pos.quantity -= t.Quantity
		default:
			return nil, fmt.Errorf("%w: unknown transaction type %q (transaction %s)",
				apperrors.ErrDataIntegrity, t.Type, t.ID)
		}
	}

	tickers := make([]string, 0, len(running))
	for ticker := range running {
		tickers = append(tickers, ticker)
	}
	sort.Strings(tickers)

	positions := make([]model.Position, 0, len(tickers))
	for _, ticker := range tickers {
		pos := running[ticker]

		price, ok := prices[ticker]
		if !ok {
			log.Printf("no current price for %s, valuing position at 0", ticker)
		}

		currentValue := pos.quantity * price
		unrealized := currentValue - pos.totalInvested

		var averageCost, unrealizedPct float64
		if pos.quantity > 0 {
			averageCost = pos.totalInvested / pos.quantity
		}
		if pos.totalInvested > 0 {
			unrealizedPct = unrealized / pos.totalInvested * 100
		}

		positions = append(positions, model.Position{
			Ticker:                pos.ticker,
			Isin:                  pos.isin,
			Name:                  pos.name,
			Quantity:              pos.quantity,
			AverageCost:           averageCost,
			TotalInvested:         pos.totalInvested,
			CurrentPrice:          price,
			CurrentValue:          currentValue,
			UnrealizedGainLoss:    unrealized,
			UnrealizedGainLossPct: unrealizedPct,
		})
	}

	return positions, nil
}
