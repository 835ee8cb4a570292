package tax

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/lfonseca/moneta/internal/http/respond"
	"github.com/lfonseca/moneta/internal/tax"
)

type Handler struct {
	svc *tax.Service
}

func NewHandler(svc *tax.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/calculate", h.calculate)
}

type calculateRequest struct {
	Income       float64 `json:"income"`
	State        string  `json:"state"`
	FilingStatus string  `json:"filing_status"`
}

type bracketResponse struct {
	Rate          float64 `json:"rate"`
	TaxableAmount float64 `json:"taxable_amount"`
	Tax           float64 `json:"tax"`
}

type calculateResponse struct {
	FederalTax    float64           `json:"federal_tax"`
	StateTax      float64           `json:"state_tax"`
	TotalTax      float64           `json:"total_tax"`
	EffectiveRate float64           `json:"effective_rate"`
	TakeHome      float64           `json:"take_home"`
	Breakdown     breakdownResponse `json:"breakdown"`
}

type breakdownResponse struct {
	Federal federalBreakdown `json:"federal"`
	State   stateBreakdown   `json:"state"`
}

type federalBreakdown struct {
	Brackets []bracketResponse `json:"brackets"`
}

type stateBreakdown struct {
	Rate float64 `json:"rate"`
	Tax  float64 `json:"tax"`
}

func (h *Handler) calculate(w http.ResponseWriter, r *http.Request) {
	var req calculateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	status, err := tax.ParseFilingStatus(req.FilingStatus)
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid filing status: must be one of single, married_filing_jointly, married_filing_separately, head_of_household")
		return
	}

	result, err := h.svc.Calculate(req.Income, req.State, status)
	if err != nil {
		switch {
		case errors.Is(err, tax.ErrUnsupportedState):
			respond.Error(w, http.StatusBadRequest, "unsupported state: "+req.State)
		case errors.Is(err, tax.ErrNegativeIncome):
			respond.Error(w, http.StatusBadRequest, err.Error())
		default:
			respond.Error(w, http.StatusInternalServerError, "internal error")
		}

		return
	}

	brackets := make([]bracketResponse, len(result.FederalBrackets))
	for i, b := range result.FederalBrackets {
		brackets[i] = bracketResponse{
			Rate:          b.Rate,
			TaxableAmount: b.TaxableAmount,
			Tax:           b.Tax,
		}
	}

	respond.JSON(w, http.StatusOK, calculateResponse{
		FederalTax:    result.FederalTax,
		StateTax:      result.StateTax,
		TotalTax:      result.TotalTax,
		EffectiveRate: result.EffectiveRate,
		TakeHome:      result.TakeHome,
		Breakdown: breakdownResponse{
			Federal: federalBreakdown{Brackets: brackets},
			State:   stateBreakdown{Rate: result.StateRate, Tax: result.StateTax},
		},
	})
}
