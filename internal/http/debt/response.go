package debt

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/lfonseca/moneta/internal/debt"
)

type debtResponse struct {
	ID             uuid.UUID        `json:"id"`
	Type           string           `json:"type"`
	Lender         string           `json:"lender"`
	AccountNumber  string           `json:"account_number,omitempty"`
	TotalAmount    decimal.Decimal  `json:"total_amount"`
	CurrentBalance decimal.Decimal  `json:"current_balance"`
	InterestRate   *decimal.Decimal `json:"interest_rate,omitempty"`
	MinimumPayment *decimal.Decimal `json:"minimum_payment,omitempty"`
	DueDate        string           `json:"due_date,omitempty"`
	Description    string           `json:"description,omitempty"`
	Active         bool             `json:"is_active"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      *time.Time       `json:"updated_at,omitempty"`
}

func toResponse(d *debt.Debt) debtResponse {
	return debtResponse{
		ID:             d.ID,
		Type:           d.Type,
		Lender:         d.Lender,
		AccountNumber:  d.AccountNumber,
		TotalAmount:    d.TotalAmount,
		CurrentBalance: d.CurrentBalance,
		InterestRate:   d.InterestRate,
		MinimumPayment: d.MinimumPayment,
		DueDate:        d.DueDate,
		Description:    d.Description,
		Active:         d.Active,
		CreatedAt:      d.CreatedAt,
		UpdatedAt:      d.UpdatedAt,
	}
}

func toResponseList(debts []*debt.Debt) []debtResponse {
	resp := make([]debtResponse, len(debts))
	for i, d := range debts {
		resp[i] = toResponse(d)
	}

	return resp
}
