package main

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/akshat-jain/splitr/internal/config"
	"github.com/akshat-jain/splitr/internal/database"
	"github.com/akshat-jain/splitr/internal/expense"
	expensesplit "github.com/akshat-jain/splitr/internal/expense/split"
	"github.com/akshat-jain/splitr/internal/group"
	"github.com/akshat-jain/splitr/internal/settlement"
	"github.com/akshat-jain/splitr/internal/user"
	"github.com/akshat-jain/splitr/pkg/logging"
	mw "github.com/akshat-jain/splitr/pkg/middleware"
)

// @title           Splitr API
// @version         1.0
// @description     Shared expense tracking with balance calculation and debt settlement minimization.
// @BasePath        /api/v1
func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file found, using environment variables")
	}

	cfg := config.Load()
	logging.Setup(cfg.LogLevel)
	logger := slog.Default()

	db, err := database.NewPostgresConnection(cfg.DatabaseURL)
	if err != nil {
		logger.Error("failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		logger.Error("failed to run migrations", slog.Any("error", err))
		os.Exit(1)
	}

	logger.Info("connected to database")

	// Split Strategy Factory (Factory Pattern)
	splitFactory := expensesplit.NewFactory()

	// User and group features. The user service needs the settlement
	// service to resolve per-group balances, so wire settlement first.
	settlementRepo := settlement.NewRepository(db)
	settlementService := settlement.NewService(settlementRepo, logger)
	settlementHandler := settlement.NewHandler(settlementService)

	userRepo := user.NewRepository(db)
	userService := user.NewService(userRepo, settlementService)
	userHandler := user.NewHandler(userService)

	groupRepo := group.NewRepository(db)
	groupService := group.NewService(groupRepo, logger)
	groupHandler := group.NewHandler(groupService)

	// Expense feature (with split factory injected)
	expenseRepo := expense.NewRepository(db)
	expenseService := expense.NewService(expenseRepo, splitFactory, logger)
	expenseHandler := expense.NewHandler(expenseService)

	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(mw.RequestUser)
	r.Use(mw.Metrics)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Handle("/metrics", promhttp.Handler())
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Mount("/users", userHandler.Routes())
		r.Mount("/groups", groupHandler.Routes())
		r.Mount("/expenses", expenseHandler.Routes())
		r.Mount("/settlements", settlementHandler.Routes())
	})

	port := cfg.Port
	if port == "" {
		port = "8080"
	}

	logger.Info("server starting", slog.String("port", port))
	if err := http.ListenAndServe(":"+port, r); err != nil {
		logger.Error("server failed", slog.Any("error", err))
		os.Exit(1)
	}
}
