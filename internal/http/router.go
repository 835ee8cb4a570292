package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/lfonseca/moneta/internal/http/account"
	"github.com/lfonseca/moneta/internal/http/authmw"
	"github.com/lfonseca/moneta/internal/http/category"
	"github.com/lfonseca/moneta/internal/http/debt"
	"github.com/lfonseca/moneta/internal/http/expense"
	"github.com/lfonseca/moneta/internal/http/export"
	"github.com/lfonseca/moneta/internal/http/importcsv"
	"github.com/lfonseca/moneta/internal/http/income"
	"github.com/lfonseca/moneta/internal/http/subscription"
	"github.com/lfonseca/moneta/internal/http/tax"
)

// Handlers bundles the versioned API handlers wired by main.
type Handlers struct {
	Accounts      *account.Handler
	Expenses      *expense.Handler
	Incomes       *income.Handler
	Tax           *tax.Handler
	Debts         *debt.Handler
	Subscriptions *subscription.Handler
	Categories    *category.Handler
	Import        *importcsv.Handler
	Export        *export.Handler
}

// Options carries the cross-cutting router settings. An empty JWTSecret
// leaves the API open, for local development.
type Options struct {
	AllowedOrigins []string
	JWTSecret      string
}

func New(h Handlers, opts Options) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	router.Route("/api/v1", func(r chi.Router) {
		if opts.JWTSecret != "" {
			r.Use(authmw.Verify(opts.JWTSecret))
		}

		r.Route("/accounts", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			h.Accounts.Routes(r)
		})

		r.Route("/expenses", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			h.Expenses.Routes(r)
		})

		r.Route("/incomes", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			h.Incomes.Routes(r)
		})

		r.Route("/tax", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			h.Tax.Routes(r)
		})

		r.Route("/debts", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			h.Debts.Routes(r)
		})

		r.Route("/subscriptions", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			h.Subscriptions.Routes(r)
		})

		r.Route("/categories", func(r chi.Router) {
			h.Categories.Routes(r)
		})

		// Multipart upload, so no content type restriction here.
		r.Route("/import", h.Import.Routes)

		r.Route("/export", func(r chi.Router) {
			h.Export.Routes(r)
		})
	})

	return router
}
