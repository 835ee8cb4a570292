package subscription

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound            = errors.New("subscription not found")
	ErrInvalidBillingCycle = errors.New("invalid billing cycle")
)

type BillingCycle string

const (
	CycleWeekly    BillingCycle = "weekly"
	CycleMonthly   BillingCycle = "monthly"
	CycleQuarterly BillingCycle = "quarterly"
	CycleYearly    BillingCycle = "yearly"
)

func (c BillingCycle) Valid() bool {
	switch c {
	case CycleWeekly, CycleMonthly, CycleQuarterly, CycleYearly:
		return true
	default:
		return false
	}
}

// Subscription is a recurring charge. Prices are stored in cents to keep
// recurring arithmetic exact.
type Subscription struct {
	ID              uuid.UUID
	Name            string
	Provider        string
	PriceCents      int64
	Currency        string
	BillingCycle    BillingCycle
	NextPaymentDate *time.Time
	WebsiteURL      string
	Notes           string
	CreatedAt       time.Time
	UpdatedAt       *time.Time
}

// MonthlyCents normalizes the price to a per-month figure for totals.
func (s *Subscription) MonthlyCents() int64 {
	switch s.BillingCycle {
	case CycleWeekly:
		return s.PriceCents * 52 / 12
	case CycleMonthly:
		return s.PriceCents
	case CycleQuarterly:
		return s.PriceCents / 3
	case CycleYearly:
		return s.PriceCents / 12
	default:
		return s.PriceCents
	}
}
