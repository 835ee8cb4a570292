package income

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

type incomeRequest struct {
	Amount       decimal.Decimal `json:"amount"`
	Source       string          `json:"source"`
	Date         string          `json:"date"`
	Description  string          `json:"description"`
	Notes        string          `json:"notes"`
	State        string          `json:"state"`
	FilingStatus string          `json:"filing_status"`
	AccountID    *uuid.UUID      `json:"account_id,omitempty"`
}

func (req *incomeRequest) toParams() (ledger.IncomeParams, error) {
	date, err := time.Parse(time.DateOnly, req.Date)
	if err != nil {
		return ledger.IncomeParams{}, errors.New("date must be in YYYY-MM-DD format")
	}

	return ledger.IncomeParams{
		Amount:       req.Amount,
		Source:       req.Source,
		Date:         date,
		Description:  req.Description,
		Notes:        req.Notes,
		State:        req.State,
		FilingStatus: req.FilingStatus,
		AccountID:    req.AccountID,
	}, nil
}

func writeLedgerError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ledger.ErrNotFound):
		respond.Error(w, http.StatusNotFound, "income not found")
	case errors.Is(err, ledger.ErrAccountNotFound):
		respond.Error(w, http.StatusNotFound, "account not found")
	case errors.Is(err, ledger.ErrInvalidAmount):
		respond.Error(w, http.StatusBadRequest, "amount must be positive")
	default:
		slog.Error("income operation failed", "error", err)
		respond.Error(w, http.StatusInternalServerError, "internal error")
	}
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req incomeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	params, err := req.toParams()
	if err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	in, err := h.svc.CreateIncome(r.Context(), params)
	if err != nil {
		writeLedgerError(w, err)
		return
	}

	respond.JSON(w, http.StatusCreated, toResponse(in))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	filter := ledger.ListFilter{}

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

	incomes, err := h.svc.ListIncomes(r.Context(), filter)
	if err != nil {
		slog.Error("failed to list incomes", "error", err)
		respond.Error(w, http.StatusInternalServerError, "internal error")

		return
	}

	respond.JSON(w, http.StatusOK, toResponseList(incomes))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid id")
		return
	}

	in, err := h.svc.GetIncome(r.Context(), id)
	if err != nil {
		writeLedgerError(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(in))
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid id")
		return
	}

	var req incomeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	params, err := req.toParams()
	if err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	in, err := h.svc.UpdateIncome(r.Context(), id, params)
	if err != nil {
		writeLedgerError(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(in))
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid id")
		return
	}

	if err := h.svc.DeleteIncome(r.Context(), id); err != nil {
		writeLedgerError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
