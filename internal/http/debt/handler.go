package debt

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/lfonseca/moneta/internal/debt"
	"github.com/lfonseca/moneta/internal/http/respond"
)

type Handler struct {
	svc *debt.Service
}

func NewHandler(svc *debt.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Put("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

type debtRequest struct {
	Type           string           `json:"type"`
	Lender         string           `json:"lender"`
	AccountNumber  string           `json:"account_number"`
	TotalAmount    decimal.Decimal  `json:"total_amount"`
	CurrentBalance decimal.Decimal  `json:"current_balance"`
	InterestRate   *decimal.Decimal `json:"interest_rate,omitempty"`
	MinimumPayment *decimal.Decimal `json:"minimum_payment,omitempty"`
	DueDate        string           `json:"due_date"`
	Description    string           `json:"description"`
	Active         bool             `json:"is_active"`
}

func (req *debtRequest) toParams() debt.Params {
	return debt.Params{
		Type:           req.Type,
		Lender:         req.Lender,
		AccountNumber:  req.AccountNumber,
		TotalAmount:    req.TotalAmount,
		CurrentBalance: req.CurrentBalance,
		InterestRate:   req.InterestRate,
		MinimumPayment: req.MinimumPayment,
		DueDate:        req.DueDate,
		Description:    req.Description,
		Active:         req.Active,
	}
}

func writeDebtError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, debt.ErrNotFound):
		respond.Error(w, http.StatusNotFound, "debt not found")
	case errors.Is(err, debt.ErrInvalidAmount):
		respond.Error(w, http.StatusBadRequest, err.Error())
	default:
		slog.Error("debt operation failed", "error", err)
		respond.Error(w, http.StatusInternalServerError, "internal error")
	}
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req debtRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	if req.Type == "" || req.Lender == "" {
		respond.Error(w, http.StatusBadRequest, "type and lender are required")
		return
	}

	d, err := h.svc.Create(r.Context(), req.toParams())
	if err != nil {
		writeDebtError(w, err)
		return
	}

	respond.JSON(w, http.StatusCreated, toResponse(d))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	activeOnly := r.URL.Query().Get("active") == "true"

	debts, err := h.svc.List(r.Context(), activeOnly)
	if err != nil {
		slog.Error("failed to list debts", "error", err)
		respond.Error(w, http.StatusInternalServerError, "internal error")

		return
	}

	respond.JSON(w, http.StatusOK, toResponseList(debts))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid id")
		return
	}

	d, err := h.svc.Get(r.Context(), id)
	if err != nil {
		writeDebtError(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(d))
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid id")
		return
	}

	var req debtRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	d, err := h.svc.Update(r.Context(), id, req.toParams())
	if err != nil {
		writeDebtError(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(d))
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid id")
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		writeDebtError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
