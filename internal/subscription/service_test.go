package subscription_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/lfonseca/moneta/internal/subscription"
)

func TestService_Create_DefaultsCurrency(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := subscription.NewMockRepository(ctrl)
	svc := subscription.NewService(repo)

	repo.EXPECT().
		CreateSubscription(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, sub *subscription.Subscription) error {
			sub.ID = uuid.New()
			return nil
		})

	sub, err := svc.Create(context.Background(), subscription.Params{
		Name:         "Netflix",
		PriceCents:   1599,
		BillingCycle: subscription.CycleMonthly,
	})
	require.NoError(t, err)
	assert.Equal(t, "USD", sub.Currency)
}

func TestService_Create_InvalidCycle(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := subscription.NewMockRepository(ctrl)
	svc := subscription.NewService(repo)

	_, err := svc.Create(context.Background(), subscription.Params{
		Name:         "Netflix",
		PriceCents:   1599,
		BillingCycle: "biweekly",
	})
	assert.ErrorIs(t, err, subscription.ErrInvalidBillingCycle)
}

func TestMonthlyCents(t *testing.T) {
	tests := []struct {
		name  string
		cycle subscription.BillingCycle
		price int64
		want  int64
	}{
		{name: "monthly", cycle: subscription.CycleMonthly, price: 1599, want: 1599},
		{name: "yearly", cycle: subscription.CycleYearly, price: 12000, want: 1000},
		{name: "quarterly", cycle: subscription.CycleQuarterly, price: 3000, want: 1000},
		{name: "weekly", cycle: subscription.CycleWeekly, price: 1200, want: 5200},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sub := &subscription.Subscription{PriceCents: tt.price, BillingCycle: tt.cycle}
			assert.Equal(t, tt.want, sub.MonthlyCents())
		})
	}
}

func TestService_MonthlyTotalCents(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := subscription.NewMockRepository(ctrl)
	svc := subscription.NewService(repo)

	repo.EXPECT().ListSubscriptions(gomock.Any()).Return([]*subscription.Subscription{
		{PriceCents: 1599, BillingCycle: subscription.CycleMonthly},
		{PriceCents: 12000, BillingCycle: subscription.CycleYearly},
	}, nil)

	total, err := svc.MonthlyTotalCents(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2599), total)
}
