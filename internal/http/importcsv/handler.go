package importcsv

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/lfonseca/moneta/internal/categorizer"
	"github.com/lfonseca/moneta/internal/http/respond"
	"github.com/lfonseca/moneta/internal/importer"
	"github.com/lfonseca/moneta/internal/importer/csvstmt"
	"github.com/lfonseca/moneta/internal/ledger"
)

const maxUploadBytes = 10 << 20

type Handler struct {
	importSvc *importer.Service
	ledgerSvc *ledger.Service
	categSvc  *categorizer.Service
}

func NewHandler(importSvc *importer.Service, ledgerSvc *ledger.Service, categSvc *categorizer.Service) *Handler {
	return &Handler{
		importSvc: importSvc,
		ledgerSvc: ledgerSvc,
		categSvc:  categSvc,
	}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.importStatement)
}

type entryResponse struct {
	ID          uuid.UUID       `json:"id"`
	Amount      decimal.Decimal `json:"amount"`
	Date        string          `json:"date"`
	Description string          `json:"description"`
	Category    string          `json:"category,omitempty"`
	Source      string          `json:"source,omitempty"`
}

type importResponse struct {
	ImportedExpenses int             `json:"imported_expenses"`
	ImportedIncomes  int             `json:"imported_incomes"`
	Expenses         []entryResponse `json:"expenses"`
	Incomes          []entryResponse `json:"incomes"`
}

func (h *Handler) importStatement(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		respond.Error(w, http.StatusBadRequest, "failed to parse form: "+err.Error())
		return
	}

	format := importer.Format(r.FormValue("format"))
	if format == "" {
		format = importer.FormatCSV
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "file field is required")
		return
	}
	defer file.Close()

	batch, err := h.importSvc.Parse(format, file)
	if err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	// An optional account link applies to every imported entry.
	if s := r.FormValue("account_id"); s != "" {
		accountID, err := uuid.Parse(s)
		if err != nil {
			respond.Error(w, http.StatusBadRequest, "invalid account_id")
			return
		}

		for i := range batch.Expenses {
			batch.Expenses[i].AccountID = &accountID
		}

		for i := range batch.Incomes {
			batch.Incomes[i].AccountID = &accountID
		}
	}

	// Rules only override rows the statement left uncategorized.
	for i, p := range batch.Expenses {
		if p.Category != csvstmt.DefaultCategory {
			continue
		}

		suggested, err := h.categSvc.Suggest(r.Context(), p.Description)
		if err != nil || suggested == "" {
			continue
		}

		batch.Expenses[i].Category = suggested
	}

	result, err := h.ledgerSvc.ImportBatch(r.Context(), batch)
	if err != nil {
		switch {
		case errors.Is(err, ledger.ErrAccountNotFound):
			respond.Error(w, http.StatusNotFound, "account not found")
		case errors.Is(err, ledger.ErrInsufficientFunds):
			respond.Error(w, http.StatusBadRequest, "insufficient funds in account")
		case errors.Is(err, ledger.ErrInvalidAmount):
			respond.Error(w, http.StatusBadRequest, "amount must be positive")
		default:
			slog.Error("failed to import statement", "error", err)
			respond.Error(w, http.StatusInternalServerError, "internal error")
		}

		return
	}

	respond.JSON(w, http.StatusCreated, toImportResponse(result))
}

func toImportResponse(result *ledger.BatchResult) importResponse {
	resp := importResponse{
		ImportedExpenses: len(result.Expenses),
		ImportedIncomes:  len(result.Incomes),
		Expenses:         make([]entryResponse, 0, len(result.Expenses)),
		Incomes:          make([]entryResponse, 0, len(result.Incomes)),
	}

	for _, e := range result.Expenses {
		resp.Expenses = append(resp.Expenses, entryResponse{
			ID:          e.ID,
			Amount:      e.Amount,
			Date:        e.Date.Format(time.DateOnly),
			Description: e.Description,
			Category:    e.Category,
		})
	}

	for _, in := range result.Incomes {
		resp.Incomes = append(resp.Incomes, entryResponse{
			ID:          in.ID,
			Amount:      in.Amount,
			Date:        in.Date.Format(time.DateOnly),
			Description: in.Description,
			Source:      in.Source,
		})
	}

	return resp
}
