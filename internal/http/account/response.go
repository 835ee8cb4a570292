package account

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/lfonseca/moneta/internal/account"
)

type accountResponse struct {
	ID          uuid.UUID        `json:"id"`
	Name        string           `json:"name"`
	Type        account.Type     `json:"type"`
	Balance     decimal.Decimal  `json:"balance"`
	CreditLimit *decimal.Decimal `json:"credit_limit,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   *time.Time       `json:"updated_at,omitempty"`
}

func toResponse(acc *account.Account) accountResponse {
	return accountResponse{
		ID:          acc.ID,
		Name:        acc.Name,
		Type:        acc.Type,
		Balance:     acc.Balance,
		CreditLimit: acc.CreditLimit,
		CreatedAt:   acc.CreatedAt,
		UpdatedAt:   acc.UpdatedAt,
	}
}

func toResponseList(accs []*account.Account) []accountResponse {
	resp := make([]accountResponse, len(accs))
	for i, acc := range accs {
		resp[i] = toResponse(acc)
	}

	return resp
}
