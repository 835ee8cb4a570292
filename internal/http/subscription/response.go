package subscription

import (
	"time"

	"github.com/google/uuid"

	"github.com/lfonseca/moneta/internal/subscription"
)

type subscriptionResponse struct {
	ID              uuid.UUID                 `json:"id"`
	Name            string                    `json:"name"`
	Provider        string                    `json:"provider,omitempty"`
	PriceCents      int64                     `json:"price_cents"`
	Currency        string                    `json:"currency"`
	BillingCycle    subscription.BillingCycle `json:"billing_cycle"`
	NextPaymentDate *string                   `json:"next_payment_date,omitempty"`
	WebsiteURL      string                    `json:"website_url,omitempty"`
	Notes           string                    `json:"notes,omitempty"`
	MonthlyCents    int64                     `json:"monthly_cents"`
	CreatedAt       time.Time                 `json:"created_at"`
	UpdatedAt       *time.Time                `json:"updated_at,omitempty"`
}

type listResponse struct {
	Subscriptions     []subscriptionResponse `json:"subscriptions"`
	MonthlyTotalCents int64                  `json:"monthly_total_cents"`
}

func toResponse(sub *subscription.Subscription) subscriptionResponse {
	resp := subscriptionResponse{
		ID:           sub.ID,
		Name:         sub.Name,
		Provider:     sub.Provider,
		PriceCents:   sub.PriceCents,
		Currency:     sub.Currency,
		BillingCycle: sub.BillingCycle,
		WebsiteURL:   sub.WebsiteURL,
		Notes:        sub.Notes,
		MonthlyCents: sub.MonthlyCents(),
		CreatedAt:    sub.CreatedAt,
		UpdatedAt:    sub.UpdatedAt,
	}

	if sub.NextPaymentDate != nil {
		d := sub.NextPaymentDate.Format(time.DateOnly)
		resp.NextPaymentDate = &d
	}

	return resp
}

func toResponseList(subs []*subscription.Subscription) []subscriptionResponse {
	resp := make([]subscriptionResponse, len(subs))
	for i, sub := range subs {
		resp[i] = toResponse(sub)
	}

	return resp
}
