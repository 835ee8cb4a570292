package income

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/lfonseca/moneta/internal/ledger"
)

type incomeResponse struct {
	ID           uuid.UUID       `json:"id"`
	Amount       decimal.Decimal `json:"amount"`
	Source       string          `json:"source"`
	Date         string          `json:"date"`
	Description  string          `json:"description"`
	Notes        string          `json:"notes,omitempty"`
	State        string          `json:"state,omitempty"`
	FilingStatus string          `json:"filing_status,omitempty"`
	AccountID    *uuid.UUID      `json:"account_id,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    *time.Time      `json:"updated_at,omitempty"`
}

func toResponse(in *ledger.Income) incomeResponse {
	return incomeResponse{
		ID:           in.ID,
		Amount:       in.Amount,
		Source:       in.Source,
		Date:         in.Date.Format(time.DateOnly),
		Description:  in.Description,
		Notes:        in.Notes,
		State:        in.State,
		FilingStatus: in.FilingStatus,
		AccountID:    in.AccountID,
		CreatedAt:    in.CreatedAt,
		UpdatedAt:    in.UpdatedAt,
	}
}

func toResponseList(incomes []*ledger.Income) []incomeResponse {
	resp := make([]incomeResponse, len(incomes))
	for i, in := range incomes {
		resp[i] = toResponse(in)
	}

	return resp
}
