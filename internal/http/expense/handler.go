package expense

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/lfonseca/moneta/internal/http/respond"
	"github.com/lfonseca/moneta/internal/ledger"
)

type Handler struct {
	svc *ledger.Service
}

func NewHandler(svc *ledger.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Put("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

type expenseRequest struct {
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
	Date        string          `json:"date"`
	Description string          `json:"description"`
	AccountID   *uuid.UUID      `json:"account_id,omitempty"`
}

func (req *expenseRequest) toParams() (ledger.ExpenseParams, error) {
	date, err := time.Parse(time.DateOnly, req.Date)
	if err != nil {
		return ledger.ExpenseParams{}, errors.New("date must be in YYYY-MM-DD format")
	}

	return ledger.ExpenseParams{
		Amount:      req.Amount,
		Category:    req.Category,
		Date:        date,
		Description: req.Description,
		AccountID:   req.AccountID,
	}, nil
}

// writeLedgerError translates ledger errors into HTTP statuses shared by the
// create, update and delete paths.
func writeLedgerError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ledger.ErrNotFound):
		respond.Error(w, http.StatusNotFound, "expense not found")
	case errors.Is(err, ledger.ErrAccountNotFound):
		respond.Error(w, http.StatusNotFound, "account not found")
	case errors.Is(err, ledger.ErrInsufficientFunds):
		respond.Error(w, http.StatusBadRequest, "insufficient funds in account")
	case errors.Is(err, ledger.ErrInvalidAmount):
		respond.Error(w, http.StatusBadRequest, "amount must be positive")
	default:
		slog.Error("expense operation failed", "error", err)
		respond.Error(w, http.StatusInternalServerError, "internal error")
	}
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req expenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	params, err := req.toParams()
	if err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	e, err := h.svc.CreateExpense(r.Context(), params)
	if err != nil {
		writeLedgerError(w, err)
		return
	}

	respond.JSON(w, http.StatusCreated, toResponse(e))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	filter := ledger.ListFilter{}

	if s := r.URL.Query().Get("category"); s != "" {
		filter.Category = &s
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

	expenses, err := h.svc.ListExpenses(r.Context(), filter)
	if err != nil {
		slog.Error("failed to list expenses", "error", err)
		respond.Error(w, http.StatusInternalServerError, "internal error")

		return
	}

	respond.JSON(w, http.StatusOK, toResponseList(expenses))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid id")
		return
	}

	e, err := h.svc.GetExpense(r.Context(), id)
	if err != nil {
		writeLedgerError(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(e))
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid id")
		return
	}

	var req expenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	params, err := req.toParams()
	if err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	e, err := h.svc.UpdateExpense(r.Context(), id, params)
	if err != nil {
		writeLedgerError(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(e))
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid id")
		return
	}

	if err := h.svc.DeleteExpense(r.Context(), id); err != nil {
		writeLedgerError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
