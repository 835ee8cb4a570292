package csvstmt_test

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lfonseca/moneta/internal/importer/csvstmt"
)

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func TestParser_SplitsExpensesAndIncomes(t *testing.T) {
	csv := `Date,Description,Amount
2024-05-01,GROCERY MART,-54.20
2024-05-03,ACME PAYROLL,"2,400.00"
2024-05-04,COFFEE SHOP,-4.50
`

	p := csvstmt.NewParser()
	batch, err := p.Parse(strings.NewReader(csv))
	require.NoError(t, err)

	require.Len(t, batch.Expenses, 2)
	require.Len(t, batch.Incomes, 1)

	assert.Equal(t, date(2024, 5, 1), batch.Expenses[0].Date)
	assert.Equal(t, "GROCERY MART", batch.Expenses[0].Description)
	assert.True(t, batch.Expenses[0].Amount.Equal(decimal.RequireFromString("54.20")))
	assert.Equal(t, csvstmt.DefaultCategory, batch.Expenses[0].Category)

	assert.Equal(t, "ACME PAYROLL", batch.Incomes[0].Source)
	assert.True(t, batch.Incomes[0].Amount.Equal(decimal.RequireFromString("2400.00")))
}

func TestParser_SkipsPreambleAndFooter(t *testing.T) {
	csv := `Statement export - May 2024
Account,0000123

Date,Description,Amount
2024-05-01,GROCERY MART,-54.20

Total,,-54.20
`

	p := csvstmt.NewParser()
	batch, err := p.Parse(strings.NewReader(csv))
	require.NoError(t, err)

	require.Len(t, batch.Expenses, 1)
	assert.Empty(t, batch.Incomes)
}

func TestParser_CategoryColumn(t *testing.T) {
	csv := `Date,Description,Category,Amount
2024-05-01,GROCERY MART,Groceries,-54.20
2024-05-02,UNKNOWN VENDOR,,-10.00
`

	p := csvstmt.NewParser()
	batch, err := p.Parse(strings.NewReader(csv))
	require.NoError(t, err)

	require.Len(t, batch.Expenses, 2)
	assert.Equal(t, "Groceries", batch.Expenses[0].Category)
	assert.Equal(t, csvstmt.DefaultCategory, batch.Expenses[1].Category)
}

func TestParser_AmountFormats(t *testing.T) {
	csv := `Date,Description,Amount
05/01/2024,DOLLAR SIGN,-$12.00
05/02/2024,PARENS,(30.00)
05/03/2024,ZERO,0.00
`

	p := csvstmt.NewParser()
	batch, err := p.Parse(strings.NewReader(csv))
	require.NoError(t, err)

	require.Len(t, batch.Expenses, 2)
	assert.True(t, batch.Expenses[0].Amount.Equal(decimal.RequireFromString("12")))
	assert.True(t, batch.Expenses[1].Amount.Equal(decimal.RequireFromString("30")))
	assert.Empty(t, batch.Incomes)
}

func TestParser_NoHeader(t *testing.T) {
	p := csvstmt.NewParser()

	_, err := p.Parse(strings.NewReader("just,some,cells\n1,2,3\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no header row")
}

func TestParser_BadAmount(t *testing.T) {
	csv := `Date,Description,Amount
2024-05-01,GROCERY MART,abc
`

	p := csvstmt.NewParser()

	_, err := p.Parse(strings.NewReader(csv))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row 2")
}
