package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/lfonseca/moneta/internal/account"
	accountStore "github.com/lfonseca/moneta/internal/account/store"
	"github.com/lfonseca/moneta/internal/categorizer"
	categorizerStore "github.com/lfonseca/moneta/internal/categorizer/store"
	"github.com/lfonseca/moneta/internal/category"
	categoryStore "github.com/lfonseca/moneta/internal/category/store"
	"github.com/lfonseca/moneta/internal/config"
	"github.com/lfonseca/moneta/internal/database"
	"github.com/lfonseca/moneta/internal/debt"
	debtStore "github.com/lfonseca/moneta/internal/debt/store"
	"github.com/lfonseca/moneta/internal/export"
	monetaHttp "github.com/lfonseca/moneta/internal/http"
	accountHandler "github.com/lfonseca/moneta/internal/http/account"
	categoryHandler "github.com/lfonseca/moneta/internal/http/category"
	debtHandler "github.com/lfonseca/moneta/internal/http/debt"
	expenseHandler "github.com/lfonseca/moneta/internal/http/expense"
	exportHandler "github.com/lfonseca/moneta/internal/http/export"
	importHandler "github.com/lfonseca/moneta/internal/http/importcsv"
	incomeHandler "github.com/lfonseca/moneta/internal/http/income"
	subscriptionHandler "github.com/lfonseca/moneta/internal/http/subscription"
	taxHandler "github.com/lfonseca/moneta/internal/http/tax"
	"github.com/lfonseca/moneta/internal/importer"
	"github.com/lfonseca/moneta/internal/ledger"
	ledgerStore "github.com/lfonseca/moneta/internal/ledger/store"
	"github.com/lfonseca/moneta/internal/subscription"
	subscriptionStore "github.com/lfonseca/moneta/internal/subscription/store"
	"github.com/lfonseca/moneta/internal/tax"
)

func main() {
	// A missing .env is fine; the environment may carry everything.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString(), database.Pool{
		MaxOpenConns:    cfg.DB.MaxOpenConns,
		MaxIdleConns:    cfg.DB.MaxIdleConns,
		ConnMaxLifetime: cfg.DB.ConnMaxLifetime,
	})
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	var (
		accountService      = account.NewService(accountStore.New(db))
		ledgerService       = ledger.NewService(ledgerStore.New(db))
		taxService          = tax.NewService()
		debtService         = debt.NewService(debtStore.New(db))
		subscriptionService = subscription.NewService(subscriptionStore.New(db))
		categoryService     = category.NewService(categoryStore.New(db))
		categorizerService  = categorizer.NewService(categorizerStore.New(db))
		importService       = importer.NewService()
		exportService       = export.NewService(ledgerService)
	)

	handlers := monetaHttp.Handlers{
		Accounts:      accountHandler.NewHandler(accountService),
		Expenses:      expenseHandler.NewHandler(ledgerService),
		Incomes:       incomeHandler.NewHandler(ledgerService),
		Tax:           taxHandler.NewHandler(taxService),
		Debts:         debtHandler.NewHandler(debtService),
		Subscriptions: subscriptionHandler.NewHandler(subscriptionService),
		Categories:    categoryHandler.NewHandler(categoryService, categorizerService),
		Import:        importHandler.NewHandler(importService, ledgerService, categorizerService),
		Export:        exportHandler.NewHandler(exportService),
	}

	router := monetaHttp.New(handlers, monetaHttp.Options{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		JWTSecret:      cfg.Auth.JWTSecret,
	})

	addr := fmt.Sprintf(":%d", cfg.App.Port)

	server := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: cfg.Server.Timeout,
	}

	slog.Info("starting server", "app", cfg.App.Name, "addr", addr)

	if err := server.ListenAndServe(); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
