package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "github.com/billscout/backend/docs"
	"github.com/billscout/backend/internal/config"
	"github.com/billscout/backend/internal/detect"
	"github.com/billscout/backend/internal/handler"
	"github.com/billscout/backend/internal/repository"
	"github.com/billscout/backend/internal/scheduler"
	"github.com/billscout/backend/internal/service"
)

// @title BillScout API
// @version 1.0
// @description Recurring expense detection and upcoming bill aggregation API.
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.email support@billscout.io

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api

// @securityDefinitions.apikey UserID
// @in header
// @name X-User-ID
// @description User identity forwarded by the gateway.

func main() {
	// Load configuration
	cfg := config.Load()

	// Setup structured logger
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	db, err := sqlx.Connect("postgres", cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer func() { _ = db.Close() }()

	// Initialize repositories
	transactionRepo := repository.NewTransactionRepository(db)
	ruleRepo := repository.NewRuleRepository(db)
	suggestionRepo := repository.NewSuggestionRepository(db)
	budgetRepo := repository.NewBudgetRepository(db)
	cardRepo := repository.NewCreditCardRepository(db)

	// Bill cache is optional; without Redis every read hits Postgres.
	var billCache repository.BillCache
	if cfg.RedisAddr != "" {
		billCache = repository.NewRedisBillCache(cfg.RedisAddr, cfg.BillCacheTTL)
		logger.Info("Bill cache enabled", slog.String("addr", cfg.RedisAddr))
	}

	// Initialize services
	detector := detect.NewDetector(transactionRepo, ruleRepo, suggestionRepo)
	suggestionService := service.NewSuggestionService(suggestionRepo, ruleRepo, detector, billCache)
	transactionService := service.NewTransactionService(transactionRepo, suggestionService)
	ruleService := service.NewRuleService(ruleRepo, billCache)
	cardService := service.NewCreditCardService(cardRepo, billCache)
	billService := service.NewBillService(ruleRepo, cardRepo, suggestionRepo, transactionRepo, billCache, cfg.BillCacheTTL)
	budgetService := service.NewBudgetService(budgetRepo, transactionRepo)

	// Initialize handlers
	transactionHandler := handler.NewTransactionHandler(transactionService)
	ruleHandler := handler.NewRuleHandler(ruleService)
	suggestionHandler := handler.NewSuggestionHandler(suggestionService)
	billHandler := handler.NewBillHandler(billService)
	budgetHandler := handler.NewBudgetHandler(budgetService)
	cardHandler := handler.NewCreditCardHandler(cardService)

	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-User-ID"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Swagger documentation
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	// Health check
	r.Get("/api/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	// Identified routes
	r.Group(func(r chi.Router) {
		r.Use(handler.UserIdentity)

		// Transactions
		r.Get("/api/transactions", transactionHandler.List)
		r.Post("/api/transactions", transactionHandler.Ingest)
		r.Get("/api/transactions/{id}", transactionHandler.Get)

		// Recurring rules
		r.Get("/api/rules", ruleHandler.List)
		r.Post("/api/rules", ruleHandler.Create)
		r.Get("/api/rules/{id}", ruleHandler.Get)
		r.Put("/api/rules/{id}", ruleHandler.Update)
		r.Delete("/api/rules/{id}", ruleHandler.Delete)
		r.Post("/api/rules/{id}/occurrence", ruleHandler.RecordOccurrence)

		// Pattern suggestions
		r.Get("/api/suggestions", suggestionHandler.List)
		r.Post("/api/suggestions/detect", suggestionHandler.Detect)
		r.Post("/api/suggestions/{id}/confirm", suggestionHandler.Confirm)
		r.Post("/api/suggestions/{id}/dismiss", suggestionHandler.Dismiss)

		// Upcoming bills
		r.Get("/api/bills", billHandler.List)
		r.Get("/api/bills/summary", billHandler.Summary)
		r.Get("/api/bills/groups", billHandler.Groups)
		r.Get("/api/bills/calendar", billHandler.Calendar)
		r.Post("/api/bills/{id}/pay", billHandler.Pay)

		// Budgets
		r.Get("/api/budgets", budgetHandler.List)
		r.Post("/api/budgets", budgetHandler.Create)
		r.Get("/api/budgets/status", budgetHandler.Status)
		r.Put("/api/budgets/{id}", budgetHandler.Update)
		r.Delete("/api/budgets/{id}", budgetHandler.Delete)

		// Credit cards
		r.Get("/api/credit-cards", cardHandler.List)
		r.Post("/api/credit-cards", cardHandler.Create)
		r.Get("/api/credit-cards/{id}", cardHandler.Get)
		r.Put("/api/credit-cards/{id}", cardHandler.Update)
		r.Delete("/api/credit-cards/{id}", cardHandler.Delete)
	})

	// Initialize and start the detection scheduler
	var detectionScheduler *scheduler.Scheduler
	if cfg.DetectionEnabled {
		schedCfg := scheduler.Config{
			Schedule:  cfg.DetectionSchedule,
			Timeout:   cfg.DetectionTimeout,
			Lookback:  cfg.DetectionLookback,
			Retention: cfg.SuggestionRetention,
			Enabled:   cfg.DetectionEnabled,
		}
		detectionScheduler = scheduler.New(schedCfg, transactionRepo, suggestionService, logger)
		if err := detectionScheduler.Start(); err != nil {
			logger.Error("Failed to start detection scheduler", slog.String("error", err.Error()))
		} else {
			logger.Info("Detection scheduler started",
				slog.String("schedule", cfg.DetectionSchedule),
				slog.Duration("timeout", cfg.DetectionTimeout),
			)
		}
	}

	port := cfg.Port
	if port == "" {
		port = "8080"
	}

	// Create server
	server := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}

	// Handle graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		logger.Info("Shutting down server...")

		// Stop scheduler first
		if detectionScheduler != nil {
			ctx := detectionScheduler.Stop()
			<-ctx.Done()
			logger.Info("Scheduler stopped")
		}

		// Shutdown HTTP server
		if err := server.Shutdown(context.Background()); err != nil {
			logger.Error("Server shutdown error", slog.String("error", err.Error()))
		}
	}()

	log.Printf("Server starting on port %s", port)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Printf("Server failed: %v", err)
	}
}
