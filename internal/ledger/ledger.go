package ledger

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Expense is money leaving the ledger. When linked to an account, the
// account's balance has already been decremented by Amount.
type Expense struct {
	ID          uuid.UUID
	Amount      decimal.Decimal
	Category    string
	Date        time.Time // calendar day, no time component
	Description string
	AccountID   *uuid.UUID
	CreatedAt   time.Time
	UpdatedAt   *time.Time
	DeletedAt   *time.Time
}

// Income is money entering the ledger. When linked to an account, the
// account's balance has already been incremented by Amount.
type Income struct {
	ID          uuid.UUID
	Amount      decimal.Decimal
	Source      string
	Date        time.Time
	Description string
	Notes       string
	// State and FilingStatus are carried for the tax calculator UI only;
	// they play no part in balance bookkeeping.
	State        string
	FilingStatus string
	AccountID    *uuid.UUID
	CreatedAt    time.Time
	UpdatedAt    *time.Time
	DeletedAt    *time.Time
}

var (
	ErrNotFound          = errors.New("ledger entry not found")
	ErrAccountNotFound   = errors.New("account not found")
	ErrInsufficientFunds = errors.New("insufficient account balance")
	ErrInvalidAmount     = errors.New("amount must be positive")
)
