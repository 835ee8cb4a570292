package category

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/lfonseca/moneta/internal/categorizer"
	"github.com/lfonseca/moneta/internal/category"
	"github.com/lfonseca/moneta/internal/http/respond"
)

type Handler struct {
	svc        *category.Service
	suggestSvc *categorizer.Service
}

func NewHandler(svc *category.Service, suggestSvc *categorizer.Service) *Handler {
	return &Handler{svc: svc, suggestSvc: suggestSvc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Delete("/{id}", h.delete)
	r.Get("/suggest", h.suggest)
	r.Post("/rules", h.learn)
}

type categoryResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

func toResponse(c *category.Category) categoryResponse {
	return categoryResponse{ID: c.ID, Name: c.Name, CreatedAt: c.CreatedAt}
}

type createCategoryRequest struct {
	Name string `json:"name"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	c, err := h.svc.Create(r.Context(), req.Name)
	if err != nil {
		switch {
		case errors.Is(err, category.ErrEmptyName):
			respond.Error(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, category.ErrDuplicate):
			respond.Error(w, http.StatusConflict, err.Error())
		default:
			slog.Error("failed to create category", "error", err)
			respond.Error(w, http.StatusInternalServerError, "internal error")
		}

		return
	}

	respond.JSON(w, http.StatusCreated, toResponse(c))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	cats, err := h.svc.List(r.Context())
	if err != nil {
		slog.Error("failed to list categories", "error", err)
		respond.Error(w, http.StatusInternalServerError, "internal error")

		return
	}

	resp := make([]categoryResponse, len(cats))
	for i, c := range cats {
		resp[i] = toResponse(c)
	}

	respond.JSON(w, http.StatusOK, resp)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid id")
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		if errors.Is(err, category.ErrNotFound) {
			respond.Error(w, http.StatusNotFound, "category not found")
			return
		}

		slog.Error("failed to delete category", "error", err)
		respond.Error(w, http.StatusInternalServerError, "internal error")

		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type suggestResponse struct {
	Description string `json:"description"`
	Category    string `json:"category"`
}

func (h *Handler) suggest(w http.ResponseWriter, r *http.Request) {
	description := r.URL.Query().Get("description")
	if description == "" {
		respond.Error(w, http.StatusBadRequest, "description query parameter is required")
		return
	}

	cat, err := h.suggestSvc.Suggest(r.Context(), description)
	if err != nil {
		slog.Error("failed to suggest category", "error", err)
		respond.Error(w, http.StatusInternalServerError, "internal error")

		return
	}

	respond.JSON(w, http.StatusOK, suggestResponse{
		Description: description,
		Category:    cat,
	})
}

type learnRequest struct {
	RawPattern string `json:"raw_pattern"`
	Category   string `json:"category"`
}

func (h *Handler) learn(w http.ResponseWriter, r *http.Request) {
	var req learnRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	if req.RawPattern == "" || req.Category == "" {
		respond.Error(w, http.StatusBadRequest, "raw_pattern and category are required")
		return
	}

	if err := h.suggestSvc.Learn(r.Context(), req.RawPattern, req.Category); err != nil {
		slog.Error("failed to save category rule", "error", err)
		respond.Error(w, http.StatusInternalServerError, "internal error")

		return
	}

	w.WriteHeader(http.StatusCreated)
}
