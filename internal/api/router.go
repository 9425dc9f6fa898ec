package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/mlefevre/savings-tracker-backend/internal/api/handlers"
	custommiddleware "github.com/mlefevre/savings-tracker-backend/internal/api/middleware"
	"github.com/mlefevre/savings-tracker-backend/internal/config"
	"github.com/mlefevre/savings-tracker-backend/internal/pricing"
	"github.com/mlefevre/savings-tracker-backend/internal/service"
)

// Services bundles the service dependencies the router wires into handlers.
type Services struct {
	System      *service.SystemService
	Account     *service.AccountService
	Transaction *service.TransactionService
	AnnualValue *service.AnnualValueService
	Balance     *service.BalanceService
	Deposit     *service.DepositService
	Summary     *service.SummaryService
	Valuation   *service.ValuationService
	Price       *pricing.Service
}

// NewRouter creates and configures the HTTP router
func NewRouter(services Services, cfg *config.Config) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS middleware
	corsMiddleware := custommiddleware.NewCORS(cfg.CORS.AllowedOrigins)
	r.Use(corsMiddleware.Handler)

	// API routes
	r.Route("/api", func(r chi.Router) {
		// System namespace
		r.Route("/system", func(r chi.Router) {
			systemHandler := handlers.NewSystemHandler(services.System)
			r.Get("/health", systemHandler.Health)
		})

		accountHandler := handlers.NewAccountHandler(services.Account)
		transactionHandler := handlers.NewTransactionHandler(services.Transaction)
		annualValueHandler := handlers.NewAnnualValueHandler(services.AnnualValue)
		balanceHandler := handlers.NewBalanceHandler(services.Balance)
		depositHandler := handlers.NewDepositHandler(services.Deposit)
		savingsHandler := handlers.NewSavingsHandler(services.Summary, services.Valuation)
		priceHandler := handlers.NewPriceHandler(services.Price)

		r.Route("/account", func(r chi.Router) {
			r.Get("/", accountHandler.Accounts)
			r.Post("/", accountHandler.CreateAccount)

			r.Route("/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Get("/", accountHandler.GetAccount)
				r.Put("/", accountHandler.UpdateAccount)
				r.Delete("/", accountHandler.DeleteAccount)
				r.Put("/default", accountHandler.SetDefaultAccount)

				r.Get("/transactions", transactionHandler.TransactionsPerAccount)

				r.Get("/annual-values", annualValueHandler.AnnualValues)
				r.Put("/annual-values", annualValueHandler.UpsertAnnualValue)
				r.Delete("/annual-values/{year}", annualValueHandler.DeleteAnnualValue)

				r.Get("/balances", balanceHandler.Balances)
				r.Put("/balances", balanceHandler.UpsertBalance)

				r.Get("/deposits", depositHandler.Deposits)
				r.Post("/deposits", depositHandler.CreateDeposit)

				r.Get("/positions", savingsHandler.Positions)
				r.Get("/summary", savingsHandler.Summary)
				r.Get("/annual-returns", savingsHandler.AnnualReturns)
				r.Get("/valuation", savingsHandler.Valuation)
			})
		})

		r.Route("/transaction", func(r chi.Router) {
			r.Post("/", transactionHandler.CreateTransaction)

			r.Route("/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Get("/", transactionHandler.GetTransaction)
				r.Put("/", transactionHandler.UpdateTransaction)
				r.Delete("/", transactionHandler.DeleteTransaction)
			})
		})

		r.Route("/deposit/{uuid}", func(r chi.Router) {
			r.Use(custommiddleware.ValidateUUIDMiddleware)
			r.Put("/", depositHandler.UpdateDeposit)
			r.Delete("/", depositHandler.DeleteDeposit)
		})

		r.Route("/price/{ticker}", func(r chi.Router) {
			r.Get("/", priceHandler.CurrentPrice)
			r.Get("/history", priceHandler.PriceHistory)
		})

		r.Get("/networth", savingsHandler.NetWorth)
	})

	return r
}
