package ledger_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/lfonseca/moneta/internal/account"
	"github.com/lfonseca/moneta/internal/ledger"
)

type decimalMatcher struct {
	want decimal.Decimal
}

func (m decimalMatcher) Matches(x any) bool {
	d, ok := x.(decimal.Decimal)
	return ok && d.Equal(m.want)
}

func (m decimalMatcher) String() string {
	return "decimal " + m.want.String()
}

func decEq(s string) gomock.Matcher {
	return decimalMatcher{want: decimal.RequireFromString(s)}
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestService_CreateExpense(t *testing.T) {
	accID := uuid.New()
	date := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	type testCase struct {
		name      string
		params    ledger.ExpenseParams
		setupMock func(repo *ledger.MockRepository, tx *ledger.MockTx)
		wantErr   error
	}

	tests := []testCase{
		{
			name: "LinkedAccountDeductsBalance",
			params: ledger.ExpenseParams{
				Amount:      dec("200"),
				Category:    "Groceries",
				Date:        date,
				Description: "Weekly shop",
				AccountID:   &accID,
			},
			setupMock: func(repo *ledger.MockRepository, tx *ledger.MockTx) {
				repo.EXPECT().Begin(gomock.Any()).Return(tx, nil)
				tx.EXPECT().LockAccount(gomock.Any(), accID).
					Return(&account.Account{ID: accID, Balance: dec("1000")}, nil)
				tx.EXPECT().AdjustBalance(gomock.Any(), accID, decEq("-200")).Return(nil)
				tx.EXPECT().CreateExpense(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, e *ledger.Expense) error {
						e.ID = uuid.New()
						e.CreatedAt = time.Now()
						return nil
					})
				tx.EXPECT().Commit().Return(nil)
				tx.EXPECT().Rollback().Return(nil)
			},
		},
		{
			name: "InsufficientFundsLeavesAccountUntouched",
			params: ledger.ExpenseParams{
				Amount:      dec("1500"),
				Category:    "Rent",
				Date:        date,
				Description: "Rent",
				AccountID:   &accID,
			},
			setupMock: func(repo *ledger.MockRepository, tx *ledger.MockTx) {
				repo.EXPECT().Begin(gomock.Any()).Return(tx, nil)
				tx.EXPECT().LockAccount(gomock.Any(), accID).
					Return(&account.Account{ID: accID, Balance: dec("1000")}, nil)
				// No AdjustBalance, no CreateExpense, no Commit.
				tx.EXPECT().Rollback().Return(nil)
			},
			wantErr: ledger.ErrInsufficientFunds,
		},
		{
			name: "AccountMissing",
			params: ledger.ExpenseParams{
				Amount:      dec("10"),
				Category:    "Misc",
				Date:        date,
				Description: "x",
				AccountID:   &accID,
			},
			setupMock: func(repo *ledger.MockRepository, tx *ledger.MockTx) {
				repo.EXPECT().Begin(gomock.Any()).Return(tx, nil)
				tx.EXPECT().LockAccount(gomock.Any(), accID).Return(nil, ledger.ErrAccountNotFound)
				tx.EXPECT().Rollback().Return(nil)
			},
			wantErr: ledger.ErrAccountNotFound,
		},
		{
			name: "UnlinkedSkipsBalanceMutation",
			params: ledger.ExpenseParams{
				Amount:      dec("42.50"),
				Category:    "Coffee",
				Date:        date,
				Description: "Espresso",
			},
			setupMock: func(repo *ledger.MockRepository, tx *ledger.MockTx) {
				repo.EXPECT().Begin(gomock.Any()).Return(tx, nil)
				tx.EXPECT().CreateExpense(gomock.Any(), gomock.Any()).Return(nil)
				tx.EXPECT().Commit().Return(nil)
				tx.EXPECT().Rollback().Return(nil)
			},
		},
		{
			name: "NonPositiveAmount",
			params: ledger.ExpenseParams{
				Amount:      dec("0"),
				Category:    "Misc",
				Date:        date,
				Description: "x",
			},
			wantErr: ledger.ErrInvalidAmount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := ledger.NewMockRepository(ctrl)
			tx := ledger.NewMockTx(ctrl)

			if tt.setupMock != nil {
				tt.setupMock(repo, tx)
			}

			svc := ledger.NewService(repo)
			got, err := svc.CreateExpense(context.Background(), tt.params)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)
			assert.NotEmpty(t, got)
		})
	}
}

func TestService_CreateIncome_CreditsAccount(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	accID := uuid.New()
	repo := ledger.NewMockRepository(ctrl)
	tx := ledger.NewMockTx(ctrl)

	repo.EXPECT().Begin(gomock.Any()).Return(tx, nil)
	tx.EXPECT().LockAccount(gomock.Any(), accID).
		Return(&account.Account{ID: accID, Balance: dec("-50")}, nil)
	tx.EXPECT().AdjustBalance(gomock.Any(), accID, decEq("3000")).Return(nil)
	tx.EXPECT().CreateIncome(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, in *ledger.Income) error {
			in.ID = uuid.New()
			return nil
		})
	tx.EXPECT().Commit().Return(nil)
	tx.EXPECT().Rollback().Return(nil)

	svc := ledger.NewService(repo)

	got, err := svc.CreateIncome(context.Background(), ledger.IncomeParams{
		Amount:      dec("3000"),
		Source:      "Salary",
		Date:        time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC),
		Description: "March salary",
		AccountID:   &accID,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, got.ID)
}

func TestService_UpdateIncome_SameAccountAppliesDelta(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	accID := uuid.New()
	incomeID := uuid.New()
	repo := ledger.NewMockRepository(ctrl)
	tx := ledger.NewMockTx(ctrl)

	repo.EXPECT().Begin(gomock.Any()).Return(tx, nil)
	tx.EXPECT().GetIncome(gomock.Any(), incomeID).Return(&ledger.Income{
		ID:        incomeID,
		Amount:    dec("1000"),
		Source:    "Freelance",
		AccountID: &accID,
	}, nil)
	tx.EXPECT().LockAccount(gomock.Any(), accID).
		Return(&account.Account{ID: accID, Balance: dec("1000")}, nil)
	tx.EXPECT().AdjustBalance(gomock.Any(), accID, decEq("250")).Return(nil)
	tx.EXPECT().UpdateIncome(gomock.Any(), gomock.Any()).Return(nil)
	tx.EXPECT().Commit().Return(nil)
	tx.EXPECT().Rollback().Return(nil)

	svc := ledger.NewService(repo)

	got, err := svc.UpdateIncome(context.Background(), incomeID, ledger.IncomeParams{
		Amount:      dec("1250"),
		Source:      "Freelance",
		Date:        time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC),
		Description: "Invoice 17",
		AccountID:   &accID,
	})
	require.NoError(t, err)
	assert.True(t, got.Amount.Equal(dec("1250")))
}

func TestService_UpdateExpense_MoveBetweenAccounts(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	oldAcc := uuid.New()
	newAcc := uuid.New()
	expenseID := uuid.New()
	repo := ledger.NewMockRepository(ctrl)
	tx := ledger.NewMockTx(ctrl)

	repo.EXPECT().Begin(gomock.Any()).Return(tx, nil)
	tx.EXPECT().GetExpense(gomock.Any(), expenseID).Return(&ledger.Expense{
		ID:        expenseID,
		Amount:    dec("100"),
		Category:  "Transport",
		AccountID: &oldAcc,
	}, nil)

	// Refund the old account, then deduct from the new one.
	tx.EXPECT().LockAccount(gomock.Any(), oldAcc).
		Return(&account.Account{ID: oldAcc, Balance: dec("400")}, nil)
	tx.EXPECT().AdjustBalance(gomock.Any(), oldAcc, decEq("100")).Return(nil)
	tx.EXPECT().LockAccount(gomock.Any(), newAcc).
		Return(&account.Account{ID: newAcc, Balance: dec("150")}, nil)
	tx.EXPECT().AdjustBalance(gomock.Any(), newAcc, decEq("-120")).Return(nil)
	tx.EXPECT().UpdateExpense(gomock.Any(), gomock.Any()).Return(nil)
	tx.EXPECT().Commit().Return(nil)
	tx.EXPECT().Rollback().Return(nil)

	svc := ledger.NewService(repo)

	got, err := svc.UpdateExpense(context.Background(), expenseID, ledger.ExpenseParams{
		Amount:      dec("120"),
		Category:    "Transport",
		Date:        time.Date(2024, 4, 2, 0, 0, 0, 0, time.UTC),
		Description: "Monthly pass",
		AccountID:   &newAcc,
	})
	require.NoError(t, err)
	assert.Equal(t, &newAcc, got.AccountID)
}

func TestService_UpdateExpense_InsufficientOnNewAccount(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	oldAcc := uuid.New()
	newAcc := uuid.New()
	expenseID := uuid.New()
	repo := ledger.NewMockRepository(ctrl)
	tx := ledger.NewMockTx(ctrl)

	repo.EXPECT().Begin(gomock.Any()).Return(tx, nil)
	tx.EXPECT().GetExpense(gomock.Any(), expenseID).Return(&ledger.Expense{
		ID:        expenseID,
		Amount:    dec("100"),
		AccountID: &oldAcc,
	}, nil)
	tx.EXPECT().LockAccount(gomock.Any(), oldAcc).
		Return(&account.Account{ID: oldAcc, Balance: dec("400")}, nil)
	tx.EXPECT().AdjustBalance(gomock.Any(), oldAcc, decEq("100")).Return(nil)
	tx.EXPECT().LockAccount(gomock.Any(), newAcc).
		Return(&account.Account{ID: newAcc, Balance: dec("50")}, nil)
	// Rollback undoes the refund along with everything else.
	tx.EXPECT().Rollback().Return(nil)

	svc := ledger.NewService(repo)

	_, err := svc.UpdateExpense(context.Background(), expenseID, ledger.ExpenseParams{
		Amount:      dec("120"),
		Category:    "Transport",
		Date:        time.Date(2024, 4, 2, 0, 0, 0, 0, time.UTC),
		Description: "Monthly pass",
		AccountID:   &newAcc,
	})
	require.ErrorIs(t, err, ledger.ErrInsufficientFunds)
}

func TestService_DeleteExpense_RefundsAccount(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	accID := uuid.New()
	expenseID := uuid.New()
	repo := ledger.NewMockRepository(ctrl)
	tx := ledger.NewMockTx(ctrl)

	repo.EXPECT().Begin(gomock.Any()).Return(tx, nil)
	tx.EXPECT().GetExpense(gomock.Any(), expenseID).Return(&ledger.Expense{
		ID:        expenseID,
		Amount:    dec("75.25"),
		AccountID: &accID,
	}, nil)
	tx.EXPECT().LockAccount(gomock.Any(), accID).
		Return(&account.Account{ID: accID, Balance: dec("0")}, nil)
	tx.EXPECT().AdjustBalance(gomock.Any(), accID, decEq("75.25")).Return(nil)
	tx.EXPECT().DeleteExpense(gomock.Any(), expenseID).Return(nil)
	tx.EXPECT().Commit().Return(nil)
	tx.EXPECT().Rollback().Return(nil)

	svc := ledger.NewService(repo)
	require.NoError(t, svc.DeleteExpense(context.Background(), expenseID))
}

func TestService_DeleteIncome_DebitsAccount(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	accID := uuid.New()
	incomeID := uuid.New()
	repo := ledger.NewMockRepository(ctrl)
	tx := ledger.NewMockTx(ctrl)

	repo.EXPECT().Begin(gomock.Any()).Return(tx, nil)
	tx.EXPECT().GetIncome(gomock.Any(), incomeID).Return(&ledger.Income{
		ID:        incomeID,
		Amount:    dec("500"),
		AccountID: &accID,
	}, nil)
	tx.EXPECT().LockAccount(gomock.Any(), accID).
		Return(&account.Account{ID: accID, Balance: dec("100")}, nil)
	// No sufficiency check: the balance is allowed to go negative here.
	tx.EXPECT().AdjustBalance(gomock.Any(), accID, decEq("-500")).Return(nil)
	tx.EXPECT().DeleteIncome(gomock.Any(), incomeID).Return(nil)
	tx.EXPECT().Commit().Return(nil)
	tx.EXPECT().Rollback().Return(nil)

	svc := ledger.NewService(repo)
	require.NoError(t, svc.DeleteIncome(context.Background(), incomeID))
}
