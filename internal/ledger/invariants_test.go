package ledger_test

import (
	"context"
	"maps"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lfonseca/moneta/internal/account"
	"github.com/lfonseca/moneta/internal/ledger"
)

// fakeStore is an in-memory Repository with real transaction semantics: a Tx
// stages copies of the maps and publishes them on Commit, so reads inside a
// transaction observe its own writes and Rollback discards everything.
type fakeStore struct {
	accounts map[uuid.UUID]account.Account
	expenses map[uuid.UUID]ledger.Expense
	incomes  map[uuid.UUID]ledger.Income
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		accounts: make(map[uuid.UUID]account.Account),
		expenses: make(map[uuid.UUID]ledger.Expense),
		incomes:  make(map[uuid.UUID]ledger.Income),
	}
}

func (f *fakeStore) addAccount(balance decimal.Decimal) uuid.UUID {
	id := uuid.New()
	f.accounts[id] = account.Account{ID: id, Name: "Checking", Type: account.TypeBank, Balance: balance}

	return id
}

func (f *fakeStore) GetExpense(_ context.Context, id uuid.UUID) (*ledger.Expense, error) {
	e, ok := f.expenses[id]
	if !ok {
		return nil, ledger.ErrNotFound
	}

	return &e, nil
}

func (f *fakeStore) ListExpenses(_ context.Context, _ ledger.ListFilter) ([]*ledger.Expense, error) {
	var out []*ledger.Expense
	for id := range f.expenses {
		e := f.expenses[id]
		out = append(out, &e)
	}

	return out, nil
}

func (f *fakeStore) GetIncome(_ context.Context, id uuid.UUID) (*ledger.Income, error) {
	in, ok := f.incomes[id]
	if !ok {
		return nil, ledger.ErrNotFound
	}

	return &in, nil
}

func (f *fakeStore) ListIncomes(_ context.Context, _ ledger.ListFilter) ([]*ledger.Income, error) {
	var out []*ledger.Income
	for id := range f.incomes {
		in := f.incomes[id]
		out = append(out, &in)
	}

	return out, nil
}

func (f *fakeStore) Begin(_ context.Context) (ledger.Tx, error) {
	return &fakeTx{
		store:    f,
		accounts: maps.Clone(f.accounts),
		expenses: maps.Clone(f.expenses),
		incomes:  maps.Clone(f.incomes),
	}, nil
}

type fakeTx struct {
	store     *fakeStore
	accounts  map[uuid.UUID]account.Account
	expenses  map[uuid.UUID]ledger.Expense
	incomes   map[uuid.UUID]ledger.Income
	committed bool
}

func (t *fakeTx) Commit() error {
	t.store.accounts = t.accounts
	t.store.expenses = t.expenses
	t.store.incomes = t.incomes
	t.committed = true

	return nil
}

func (t *fakeTx) Rollback() error { return nil }

func (t *fakeTx) LockAccount(_ context.Context, id uuid.UUID) (*account.Account, error) {
	acc, ok := t.accounts[id]
	if !ok {
		return nil, ledger.ErrAccountNotFound
	}

	return &acc, nil
}

func (t *fakeTx) AdjustBalance(_ context.Context, accountID uuid.UUID, delta decimal.Decimal) error {
	acc, ok := t.accounts[accountID]
	if !ok {
		return ledger.ErrAccountNotFound
	}

	acc.Balance = acc.Balance.Add(delta)
	t.accounts[accountID] = acc

	return nil
}

func (t *fakeTx) GetExpense(_ context.Context, id uuid.UUID) (*ledger.Expense, error) {
	e, ok := t.expenses[id]
	if !ok {
		return nil, ledger.ErrNotFound
	}

	return &e, nil
}

func (t *fakeTx) CreateExpense(_ context.Context, e *ledger.Expense) error {
	e.ID = uuid.New()
	e.CreatedAt = time.Now()
	t.expenses[e.ID] = *e

	return nil
}

func (t *fakeTx) UpdateExpense(_ context.Context, e *ledger.Expense) error {
	t.expenses[e.ID] = *e
	return nil
}

func (t *fakeTx) DeleteExpense(_ context.Context, id uuid.UUID) error {
	delete(t.expenses, id)
	return nil
}

func (t *fakeTx) GetIncome(_ context.Context, id uuid.UUID) (*ledger.Income, error) {
	in, ok := t.incomes[id]
	if !ok {
		return nil, ledger.ErrNotFound
	}

	return &in, nil
}

func (t *fakeTx) CreateIncome(_ context.Context, in *ledger.Income) error {
	in.ID = uuid.New()
	in.CreatedAt = time.Now()
	t.incomes[in.ID] = *in

	return nil
}

func (t *fakeTx) UpdateIncome(_ context.Context, in *ledger.Income) error {
	t.incomes[in.ID] = *in
	return nil
}

func (t *fakeTx) DeleteIncome(_ context.Context, id uuid.UUID) error {
	delete(t.incomes, id)
	return nil
}

func (f *fakeStore) balance(t *testing.T, id uuid.UUID) decimal.Decimal {
	t.Helper()

	acc, ok := f.accounts[id]
	require.True(t, ok, "account %s missing", id)

	return acc.Balance
}

// The cached balance must always equal the initial balance minus the sum of
// currently linked expense amounts, whatever sequence of mutations ran.
func TestBalanceConservation_Expenses(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	accID := store.addAccount(dec("5000"))
	svc := ledger.NewService(store)

	date := time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)

	e1, err := svc.CreateExpense(ctx, ledger.ExpenseParams{
		Amount: dec("300"), Category: "Rent", Date: date, Description: "Rent", AccountID: &accID,
	})
	require.NoError(t, err)

	e2, err := svc.CreateExpense(ctx, ledger.ExpenseParams{
		Amount: dec("120.55"), Category: "Utilities", Date: date, Description: "Power", AccountID: &accID,
	})
	require.NoError(t, err)

	// Unlinked expense, must not touch the account.
	_, err = svc.CreateExpense(ctx, ledger.ExpenseParams{
		Amount: dec("999"), Category: "Cash", Date: date, Description: "Cash spend",
	})
	require.NoError(t, err)

	_, err = svc.UpdateExpense(ctx, e1.ID, ledger.ExpenseParams{
		Amount: dec("450"), Category: "Rent", Date: date, Description: "Rent corrected", AccountID: &accID,
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteExpense(ctx, e2.ID))

	// Linked set is now {e1: 450}.
	assert.True(t, store.balance(t, accID).Equal(dec("4550")),
		"got balance %s", store.balance(t, accID))
}

func TestBalanceConservation_Incomes(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	accID := store.addAccount(dec("100"))
	svc := ledger.NewService(store)

	date := time.Date(2024, 5, 31, 0, 0, 0, 0, time.UTC)

	in, err := svc.CreateIncome(ctx, ledger.IncomeParams{
		Amount: dec("1000"), Source: "Salary", Date: date, Description: "May", AccountID: &accID,
	})
	require.NoError(t, err)
	assert.True(t, store.balance(t, accID).Equal(dec("1100")))

	_, err = svc.UpdateIncome(ctx, in.ID, ledger.IncomeParams{
		Amount: dec("750"), Source: "Salary", Date: date, Description: "May adjusted", AccountID: &accID,
	})
	require.NoError(t, err)
	assert.True(t, store.balance(t, accID).Equal(dec("850")))

	require.NoError(t, svc.DeleteIncome(ctx, in.ID))
	assert.True(t, store.balance(t, accID).Equal(dec("100")))
}

func TestExpenseLifecycle_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	accID := store.addAccount(dec("1000.00"))
	svc := ledger.NewService(store)

	e, err := svc.CreateExpense(ctx, ledger.ExpenseParams{
		Amount:      dec("200"),
		Category:    "Groceries",
		Date:        time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		Description: "Groceries",
		AccountID:   &accID,
	})
	require.NoError(t, err)
	require.Equal(t, &accID, e.AccountID)
	assert.True(t, store.balance(t, accID).Equal(dec("800")))

	require.NoError(t, svc.DeleteExpense(ctx, e.ID))
	assert.True(t, store.balance(t, accID).Equal(dec("1000")))
}

func TestUpdateExpense_MoveRefundsOldAndDeductsNew(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	srcID := store.addAccount(dec("500"))
	dstID := store.addAccount(dec("300"))
	svc := ledger.NewService(store)

	date := time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC)

	e, err := svc.CreateExpense(ctx, ledger.ExpenseParams{
		Amount: dec("200"), Category: "Travel", Date: date, Description: "Train", AccountID: &srcID,
	})
	require.NoError(t, err)

	_, err = svc.UpdateExpense(ctx, e.ID, ledger.ExpenseParams{
		Amount: dec("250"), Category: "Travel", Date: date, Description: "Train + seat", AccountID: &dstID,
	})
	require.NoError(t, err)

	assert.True(t, store.balance(t, srcID).Equal(dec("500")))
	assert.True(t, store.balance(t, dstID).Equal(dec("50")))
}

func TestImportBatch_SingleTransaction(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	svc := ledger.NewService(store)

	date := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)

	res, err := svc.ImportBatch(ctx, ledger.BatchParams{
		Expenses: []ledger.ExpenseParams{
			{Amount: dec("12.30"), Category: "Uncategorized", Date: date, Description: "CAFE"},
			{Amount: dec("89.99"), Category: "Uncategorized", Date: date, Description: "SHOES"},
		},
		Incomes: []ledger.IncomeParams{
			{Amount: dec("150"), Source: "REFUND", Date: date, Description: "REFUND"},
		},
	})
	require.NoError(t, err)
	assert.Len(t, res.Expenses, 2)
	assert.Len(t, res.Incomes, 1)
	assert.Len(t, store.expenses, 2)
	assert.Len(t, store.incomes, 1)
}
