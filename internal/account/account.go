package account

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Type classifies an account.
type Type string

const (
	TypeCash       Type = "cash"
	TypeBank       Type = "bank_account"
	TypeCreditCard Type = "credit_card"
	TypeInvestment Type = "investment"
	TypeSavings    Type = "savings"
	TypeOther      Type = "other"
)

// Valid reports whether t is one of the known account types.
func (t Type) Valid() bool {
	switch t {
	case TypeCash, TypeBank, TypeCreditCard, TypeInvestment, TypeSavings, TypeOther:
		return true
	}

	return false
}

// Account is a named store of money with a running balance. The balance is a
// cached quantity maintained by the ledger package; it reflects the net effect
// of all linked income and expense entries as of the last mutation.
type Account struct {
	ID          uuid.UUID
	Name        string
	Type        Type
	Balance     decimal.Decimal
	CreditLimit *decimal.Decimal // only meaningful for credit card accounts
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}

var (
	ErrNotFound    = errors.New("account not found")
	ErrInvalidType = errors.New("invalid account type")
)
