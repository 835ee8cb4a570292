package export

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/lfonseca/moneta/internal/export"
	"github.com/lfonseca/moneta/internal/http/respond"
	"github.com/lfonseca/moneta/internal/ledger"
)

type Handler struct {
	svc *export.Service
}

func NewHandler(svc *export.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/expenses", h.expensesCSV)
	r.Get("/incomes", h.incomesCSV)
	r.Get("/summary", h.summary)
}

func filterFromQuery(r *http.Request) ledger.ListFilter {
	filter := ledger.ListFilter{}

	if s := r.URL.Query().Get("category"); s != "" {
		filter.Category = &s
	}

	if s := r.URL.Query().Get("source"); s != "" {
		filter.Source = &s
	}

	if s := r.URL.Query().Get("start_date"); s != "" {
		if t, err := time.Parse(time.DateOnly, s); err == nil {
			filter.StartDate = &t
		}
	}

	if s := r.URL.Query().Get("end_date"); s != "" {
		if t, err := time.Parse(time.DateOnly, s); err == nil {
			filter.EndDate = &t
		}
	}

	return filter
}

func (h *Handler) expensesCSV(w http.ResponseWriter, r *http.Request) {
	h.writeCSV(w, r, export.KindExpenses, "expenses.csv")
}

func (h *Handler) incomesCSV(w http.ResponseWriter, r *http.Request) {
	h.writeCSV(w, r, export.KindIncomes, "incomes.csv")
}

func (h *Handler) writeCSV(w http.ResponseWriter, r *http.Request, kind export.Kind, filename string) {
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)

	if err := h.svc.WriteCSV(r.Context(), w, kind, filterFromQuery(r)); err != nil {
		// The header may already be out; log instead of rewriting the status.
		slog.Error("failed to write csv export", "kind", kind, "error", err)
	}
}

type summaryResponse struct {
	ExpenseCount  int             `json:"expense_count"`
	IncomeCount   int             `json:"income_count"`
	TotalExpenses decimal.Decimal `json:"total_expenses"`
	TotalIncome   decimal.Decimal `json:"total_income"`
	Net           decimal.Decimal `json:"net"`
	Text          string          `json:"text"`
}

func (h *Handler) summary(w http.ResponseWriter, r *http.Request) {
	sum, err := h.svc.Summarize(r.Context(), filterFromQuery(r))
	if err != nil {
		slog.Error("failed to summarize ledger", "error", err)
		respond.Error(w, http.StatusInternalServerError, "internal error")

		return
	}

	respond.JSON(w, http.StatusOK, summaryResponse{
		ExpenseCount:  sum.ExpenseCount,
		IncomeCount:   sum.IncomeCount,
		TotalExpenses: sum.TotalExpenses,
		TotalIncome:   sum.TotalIncome,
		Net:           sum.Net,
		Text:          sum.Text(),
	})
}
