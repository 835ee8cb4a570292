package subscription

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/lfonseca/moneta/internal/http/respond"
	"github.com/lfonseca/moneta/internal/subscription"
)

type Handler struct {
	svc *subscription.Service
}

func NewHandler(svc *subscription.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Put("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

type subscriptionRequest struct {
	Name            string                    `json:"name"`
	Provider        string                    `json:"provider"`
	PriceCents      int64                     `json:"price_cents"`
	Currency        string                    `json:"currency"`
	BillingCycle    subscription.BillingCycle `json:"billing_cycle"`
	NextPaymentDate *string                   `json:"next_payment_date,omitempty"`
	WebsiteURL      string                    `json:"website_url"`
	Notes           string                    `json:"notes"`
}

func (req *subscriptionRequest) toParams() (subscription.Params, error) {
	params := subscription.Params{
		Name:         req.Name,
		Provider:     req.Provider,
		PriceCents:   req.PriceCents,
		Currency:     req.Currency,
		BillingCycle: req.BillingCycle,
		WebsiteURL:   req.WebsiteURL,
		Notes:        req.Notes,
	}

	if req.NextPaymentDate != nil && *req.NextPaymentDate != "" {
		t, err := time.Parse(time.DateOnly, *req.NextPaymentDate)
		if err != nil {
			return subscription.Params{}, errors.New("next_payment_date must be in YYYY-MM-DD format")
		}

		params.NextPaymentDate = &t
	}

	return params, nil
}

func writeSubscriptionError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, subscription.ErrNotFound):
		respond.Error(w, http.StatusNotFound, "subscription not found")
	case errors.Is(err, subscription.ErrInvalidBillingCycle):
		respond.Error(w, http.StatusBadRequest, err.Error())
	default:
		slog.Error("subscription operation failed", "error", err)
		respond.Error(w, http.StatusInternalServerError, "internal error")
	}
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req subscriptionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	if req.Name == "" {
		respond.Error(w, http.StatusBadRequest, "name is required")
		return
	}

	params, err := req.toParams()
	if err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	sub, err := h.svc.Create(r.Context(), params)
	if err != nil {
		writeSubscriptionError(w, err)
		return
	}

	respond.JSON(w, http.StatusCreated, toResponse(sub))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	subs, err := h.svc.List(r.Context())
	if err != nil {
		slog.Error("failed to list subscriptions", "error", err)
		respond.Error(w, http.StatusInternalServerError, "internal error")

		return
	}

	monthlyTotal, err := h.svc.MonthlyTotalCents(r.Context())
	if err != nil {
		slog.Error("failed to total subscriptions", "error", err)
		respond.Error(w, http.StatusInternalServerError, "internal error")

		return
	}

	respond.JSON(w, http.StatusOK, listResponse{
		Subscriptions:     toResponseList(subs),
		MonthlyTotalCents: monthlyTotal,
	})
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid id")
		return
	}

	sub, err := h.svc.Get(r.Context(), id)
	if err != nil {
		writeSubscriptionError(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(sub))
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid id")
		return
	}

	var req subscriptionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	params, err := req.toParams()
	if err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	sub, err := h.svc.Update(r.Context(), id, params)
	if err != nil {
		writeSubscriptionError(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(sub))
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid id")
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		writeSubscriptionError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
