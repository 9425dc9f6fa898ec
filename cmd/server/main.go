package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mlefevre/savings-tracker-backend/internal/api"
	"github.com/mlefevre/savings-tracker-backend/internal/config"
	"github.com/mlefevre/savings-tracker-backend/internal/database"
	"github.com/mlefevre/savings-tracker-backend/internal/pricing"
	"github.com/mlefevre/savings-tracker-backend/internal/repository"
	"github.com/mlefevre/savings-tracker-backend/internal/scheduler"
	"github.com/mlefevre/savings-tracker-backend/internal/service"
	"github.com/mlefevre/savings-tracker-backend/internal/yahoo"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Open database connection
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	log.Printf("Connected to database: %s", cfg.Database.Path)

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to apply migrations: %v", err)
	}

	// Create repositories
	accountRepo := repository.NewAccountRepository(db)
	transactionRepo := repository.NewTransactionRepository(db)
	annualValueRepo := repository.NewAnnualValueRepository(db)
	balanceRepo := repository.NewBalanceRepository(db)
	depositRepo := repository.NewDepositRepository(db)
	priceRepo := repository.NewPriceRepository(db)

	// Create the price lookup chain: Yahoo client, TTL cache, stored fallback
	yahooClient := yahoo.NewFinanceClient()
	priceProvider := pricing.NewCache(pricing.NewYahooProvider(yahooClient), cfg.Pricing.CacheTTL)
	priceService := pricing.NewService(priceProvider, priceRepo)

	// Create services
	systemService := service.NewSystemService(db)
	accountService := service.NewAccountService(accountRepo)
	transactionService := service.NewTransactionService(transactionRepo, accountRepo)
	annualValueService := service.NewAnnualValueService(annualValueRepo, accountRepo)
	balanceService := service.NewBalanceService(balanceRepo, accountRepo)
	depositService := service.NewDepositService(depositRepo, accountRepo)
	summaryService := service.NewSummaryService(transactionRepo, annualValueRepo, accountRepo, priceService)
	valuationService := service.NewValuationService(accountRepo, balanceRepo, depositRepo, summaryService)

	// Start the background price refresh
	if cfg.Scheduler.Enabled {
		priceScheduler, err := scheduler.New(cfg.Scheduler.CronSpec, transactionRepo, priceService)
		if err != nil {
			log.Fatalf("Failed to create scheduler: %v", err)
		}
		priceScheduler.Start()
		defer priceScheduler.Stop()
	}

	// Create router
	router := api.NewRouter(api.Services{
		System:      systemService,
		Account:     accountService,
		Transaction: transactionService,
		AnnualValue: annualValueService,
		Balance:     balanceService,
		Deposit:     depositService,
		Summary:     summaryService,
		Valuation:   valuationService,
		Price:       priceService,
	}, cfg)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Starting server on %s", cfg.Server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}
