package account

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/lfonseca/moneta/internal/account"
	"github.com/lfonseca/moneta/internal/http/respond"
)

type Handler struct {
	svc *account.Service
}

func NewHandler(svc *account.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Put("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

type accountRequest struct {
	Name        string           `json:"name"`
	Type        account.Type     `json:"type"`
	Balance     decimal.Decimal  `json:"balance"`
	CreditLimit *decimal.Decimal `json:"credit_limit,omitempty"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req accountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	if req.Name == "" {
		respond.Error(w, http.StatusBadRequest, "name is required")
		return
	}

	acc, err := h.svc.Create(r.Context(), account.CreateParams{
		Name:        req.Name,
		Type:        req.Type,
		Balance:     req.Balance,
		CreditLimit: req.CreditLimit,
	})
	if err != nil {
		if errors.Is(err, account.ErrInvalidType) {
			respond.Error(w, http.StatusBadRequest, err.Error())
			return
		}

		slog.Error("failed to create account", "error", err)
		respond.Error(w, http.StatusInternalServerError, "internal error")

		return
	}

	respond.JSON(w, http.StatusCreated, toResponse(acc))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	accs, err := h.svc.List(r.Context())
	if err != nil {
		slog.Error("failed to list accounts", "error", err)
		respond.Error(w, http.StatusInternalServerError, "internal error")

		return
	}

	respond.JSON(w, http.StatusOK, toResponseList(accs))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid id")
		return
	}

	acc, err := h.svc.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, account.ErrNotFound) {
			respond.Error(w, http.StatusNotFound, "account not found")
			return
		}

		respond.Error(w, http.StatusInternalServerError, "internal error")

		return
	}

	respond.JSON(w, http.StatusOK, toResponse(acc))
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid id")
		return
	}

	var req accountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	if req.Name == "" {
		respond.Error(w, http.StatusBadRequest, "name is required")
		return
	}

	acc, err := h.svc.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, account.ErrNotFound) {
			respond.Error(w, http.StatusNotFound, "account not found")
			return
		}

		respond.Error(w, http.StatusInternalServerError, "internal error")

		return
	}

	acc.Name = req.Name
	acc.Type = req.Type
	acc.Balance = req.Balance
	acc.CreditLimit = req.CreditLimit

	if err := h.svc.Update(r.Context(), acc); err != nil {
		switch {
		case errors.Is(err, account.ErrInvalidType):
			respond.Error(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, account.ErrNotFound):
			respond.Error(w, http.StatusNotFound, "account not found")
		default:
			respond.Error(w, http.StatusInternalServerError, "internal error")
		}

		return
	}

	respond.JSON(w, http.StatusOK, toResponse(acc))
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid id")
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		if errors.Is(err, account.ErrNotFound) {
			respond.Error(w, http.StatusNotFound, "account not found")
			return
		}

		slog.Error("failed to delete account", "error", err)
		respond.Error(w, http.StatusInternalServerError, "internal error")

		return
	}

	w.WriteHeader(http.StatusNoContent)
}
