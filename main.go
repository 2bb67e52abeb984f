package main

//go:generate swag init

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/fintrack-app/fintrack/config"
	"github.com/fintrack-app/fintrack/db"
	"github.com/fintrack-app/fintrack/derived"
	_ "github.com/fintrack-app/fintrack/docs"
	"github.com/fintrack-app/fintrack/handlers"
	"github.com/fintrack-app/fintrack/jobs"
)

// @title           FinTrack API
// @version         1.0.0
// @description     API for tracking credit cards, loans, incomes, expenses, assets, budgets, and investments.
// @host            localhost:8080
// @BasePath        /api/v1
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization

func main() {
	// .env is optional; real deployments set the environment directly
	godotenv.Load()

	cfg := config.NewConfig()

	// Configure structured logging
	level := slog.LevelInfo
	if cfg.LogLevel == "debug" {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})))

	// Open database
	database, err := db.Open(cfg.DBPath)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer database.Close()

	// Run migrations
	if err := db.Migrate(database); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Shared handler state: DB, change bus, and the dashboard cache that
	// the bus invalidates on every mutation
	handlers.DB = database
	handlers.Events = derived.NewBus()
	handlers.Dashboards = derived.NewCache(handlers.Events)

	// Background sweeps: payment reminders and budget alerts
	scheduler := jobs.NewScheduler(database, cfg)
	if err := scheduler.Start(); err != nil {
		slog.Error("failed to start job scheduler", "error", err)
		os.Exit(1)
	}
	defer scheduler.Stop()

	// Router setup
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// API routes with bearer auth
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(handlers.Auth(cfg.JWTSecret))

		// Credit cards
		r.Get("/credit-cards", handlers.ListCreditCards)
		r.Post("/credit-cards", handlers.CreateCreditCard)
		r.Get("/credit-cards/{id}", handlers.GetCreditCard)
		r.Put("/credit-cards/{id}", handlers.UpdateCreditCard)
		r.Delete("/credit-cards/{id}", handlers.DeleteCreditCard)
		r.Get("/credit-cards/{id}/payoff", handlers.GetCreditCardPayoff)

		// Loans
		r.Get("/loans", handlers.ListLoans)
		r.Post("/loans", handlers.CreateLoan)
		r.Get("/loans/{id}", handlers.GetLoan)
		r.Put("/loans/{id}", handlers.UpdateLoan)
		r.Delete("/loans/{id}", handlers.DeleteLoan)
		r.Get("/loans/{id}/payoff", handlers.GetLoanPayoff)

		// Incomes
		r.Get("/incomes", handlers.ListIncomes)
		r.Post("/incomes", handlers.CreateIncome)
		r.Get("/incomes/{id}", handlers.GetIncome)
		r.Put("/incomes/{id}", handlers.UpdateIncome)
		r.Delete("/incomes/{id}", handlers.DeleteIncome)

		// Expenses
		r.Get("/expenses", handlers.ListExpenses)
		r.Post("/expenses", handlers.CreateExpense)
		r.Get("/expenses/{id}", handlers.GetExpense)
		r.Put("/expenses/{id}", handlers.UpdateExpense)
		r.Delete("/expenses/{id}", handlers.DeleteExpense)

		// Assets
		r.Get("/assets", handlers.ListAssets)
		r.Post("/assets", handlers.CreateAsset)
		r.Get("/assets/{id}", handlers.GetAsset)
		r.Put("/assets/{id}", handlers.UpdateAsset)
		r.Delete("/assets/{id}", handlers.DeleteAsset)

		// Liabilities
		r.Get("/liabilities", handlers.ListLiabilities)
		r.Post("/liabilities", handlers.CreateLiability)
		r.Get("/liabilities/{id}", handlers.GetLiability)
		r.Put("/liabilities/{id}", handlers.UpdateLiability)
		r.Delete("/liabilities/{id}", handlers.DeleteLiability)

		// Budgets
		r.Get("/budgets", handlers.ListBudgets)
		r.Post("/budgets", handlers.CreateBudget)
		r.Get("/budgets/{id}", handlers.GetBudget)
		r.Put("/budgets/{id}", handlers.UpdateBudget)
		r.Delete("/budgets/{id}", handlers.DeleteBudget)
		r.Get("/budgets/{id}/progress", handlers.GetBudgetProgress)

		// Savings goals
		r.Get("/savings-goals", handlers.ListSavingsGoals)
		r.Post("/savings-goals", handlers.CreateSavingsGoal)
		r.Get("/savings-goals/{id}", handlers.GetSavingsGoal)
		r.Put("/savings-goals/{id}", handlers.UpdateSavingsGoal)
		r.Delete("/savings-goals/{id}", handlers.DeleteSavingsGoal)

		// Investments
		r.Get("/investments", handlers.ListInvestments)
		r.Post("/investments", handlers.CreateInvestment)
		r.Get("/investments/{id}", handlers.GetInvestment)
		r.Put("/investments/{id}", handlers.UpdateInvestment)
		r.Delete("/investments/{id}", handlers.DeleteInvestment)

		// Vendors
		r.Get("/vendors", handlers.ListVendors)
		r.Post("/vendors", handlers.CreateVendor)
		r.Get("/vendors/{id}", handlers.GetVendor)
		r.Put("/vendors/{id}", handlers.UpdateVendor)
		r.Delete("/vendors/{id}", handlers.DeleteVendor)

		// Purchase orders
		r.Get("/purchase-orders", handlers.ListPurchaseOrders)
		r.Post("/purchase-orders", handlers.CreatePurchaseOrder)
		r.Get("/purchase-orders/{id}", handlers.GetPurchaseOrder)
		r.Put("/purchase-orders/{id}", handlers.UpdatePurchaseOrder)
		r.Delete("/purchase-orders/{id}", handlers.DeletePurchaseOrder)

		// Dashboard
		r.Get("/dashboard", handlers.GetDashboard)
	})

	// Swagger UI
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Port)
	slog.Info("server starting", "address", addr)
	if err := http.ListenAndServe(addr, r); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
