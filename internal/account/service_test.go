package account_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/lfonseca/moneta/internal/account"
)

func TestService_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := account.NewMockRepository(ctrl)
	svc := account.NewService(repo)

	repo.EXPECT().
		CreateAccount(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, acc *account.Account) error {
			acc.ID = uuid.New()
			return nil
		})

	acc, err := svc.Create(context.Background(), account.CreateParams{
		Name:    "Checking",
		Type:    account.TypeBank,
		Balance: decimal.NewFromInt(1000),
	})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, acc.ID)
	assert.Equal(t, account.TypeBank, acc.Type)
}

func TestService_Create_InvalidType(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := account.NewMockRepository(ctrl)
	svc := account.NewService(repo)

	_, err := svc.Create(context.Background(), account.CreateParams{
		Name: "Checking",
		Type: account.Type("checking"),
	})
	assert.ErrorIs(t, err, account.ErrInvalidType)
}

func TestService_Update_InvalidType(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := account.NewMockRepository(ctrl)
	svc := account.NewService(repo)

	err := svc.Update(context.Background(), &account.Account{
		ID:   uuid.New(),
		Name: "Checking",
		Type: account.Type("bogus"),
	})
	assert.ErrorIs(t, err, account.ErrInvalidType)
}

func TestService_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := account.NewMockRepository(ctrl)
	svc := account.NewService(repo)

	id := uuid.New()
	repo.EXPECT().DeleteAccount(gomock.Any(), id).Return(nil)

	require.NoError(t, svc.Delete(context.Background(), id))
}
