package tax_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lfonseca/moneta/internal/tax"
)

func TestParseFilingStatus(t *testing.T) {
	for _, valid := range []string{
		"single", "married_filing_jointly", "married_filing_separately", "head_of_household",
	} {
		status, err := tax.ParseFilingStatus(valid)
		require.NoError(t, err)
		assert.Equal(t, valid, string(status))
	}

	_, err := tax.ParseFilingStatus("widowed")
	assert.ErrorIs(t, err, tax.ErrInvalidFilingStatus)

	_, err = tax.ParseFilingStatus("")
	assert.ErrorIs(t, err, tax.ErrInvalidFilingStatus)
}

func TestCalculate_FederalSingle(t *testing.T) {
	svc := tax.NewService()

	// 50000 gross less the 14600 standard deduction leaves 35400 taxable:
	// 11600 at 10% = 1160, then 23800 at 12% = 2856, total 4016.
	res, err := svc.Calculate(50000, "", tax.FilingSingle)
	require.NoError(t, err)

	assert.InDelta(t, 4016.00, res.FederalTax, 0.01)
	assert.InDelta(t, 0, res.StateTax, 0.01)
	assert.InDelta(t, 4016.00, res.TotalTax, 0.01)
	assert.InDelta(t, 45984.00, res.TakeHome, 0.01)
	assert.InDelta(t, 4016.0/50000.0, res.EffectiveRate, 0.0001)

	require.Len(t, res.FederalBrackets, 2)
	assert.InDelta(t, 0.10, res.FederalBrackets[0].Rate, 0.0001)
	assert.InDelta(t, 11600, res.FederalBrackets[0].TaxableAmount, 0.01)
	assert.InDelta(t, 1160, res.FederalBrackets[0].Tax, 0.01)
	assert.InDelta(t, 0.12, res.FederalBrackets[1].Rate, 0.0001)
	assert.InDelta(t, 23800, res.FederalBrackets[1].TaxableAmount, 0.01)
	assert.InDelta(t, 2856, res.FederalBrackets[1].Tax, 0.01)
}

func TestCalculate_FilingStatusesDiverge(t *testing.T) {
	svc := tax.NewService()

	tests := []struct {
		name    string
		status  tax.FilingStatus
		income  float64
		wantTax float64
	}{
		// 100000 less 29200 leaves 70800: 23200 at 10% + 47600 at 12%.
		{name: "married jointly", status: tax.FilingMarriedJointly, income: 100000, wantTax: 8032.00},
		// 100000 less 21900 leaves 78100: 16550 at 10% + 46550 at 12% + 15000 at 22%.
		{name: "head of household", status: tax.FilingHeadOfHousehold, income: 100000, wantTax: 10541.00},
		// Separate filers share the single brackets below the top ones.
		{name: "married separately", status: tax.FilingMarriedSeparately, income: 50000, wantTax: 4016.00},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := svc.Calculate(tt.income, "", tt.status)
			require.NoError(t, err)
			assert.InDelta(t, tt.wantTax, res.FederalTax, 0.01)
		})
	}
}

func TestCalculate_BracketBoundary(t *testing.T) {
	svc := tax.NewService()

	// Taxable income lands exactly on the top of the 10% bracket, so only
	// that bracket applies.
	res, err := svc.Calculate(14600+11600, "", tax.FilingSingle)
	require.NoError(t, err)

	assert.InDelta(t, 1160.00, res.FederalTax, 0.01)
	require.Len(t, res.FederalBrackets, 1)
}

func TestCalculate_ZeroIncome(t *testing.T) {
	svc := tax.NewService()

	res, err := svc.Calculate(0, "CA", tax.FilingSingle)
	require.NoError(t, err)

	assert.Zero(t, res.FederalTax)
	assert.Zero(t, res.StateTax)
	assert.Zero(t, res.TotalTax)
	assert.Zero(t, res.EffectiveRate)
	assert.Zero(t, res.TakeHome)
}

func TestCalculate_IncomeBelowDeduction(t *testing.T) {
	svc := tax.NewService()

	res, err := svc.Calculate(10000, "", tax.FilingSingle)
	require.NoError(t, err)

	assert.Zero(t, res.FederalTax)
	assert.InDelta(t, 10000, res.TakeHome, 0.01)
}

func TestCalculate_StateTax(t *testing.T) {
	svc := tax.NewService()

	// CA state tax on 50000 gross, no deduction:
	// 10099*0.01 + 13843*0.02 + 13846*0.04 + 12212*0.06 = 1664.41.
	res, err := svc.Calculate(50000, "CA", tax.FilingSingle)
	require.NoError(t, err)

	assert.InDelta(t, 1664.41, res.StateTax, 0.01)
	assert.InDelta(t, 4016.00+1664.41, res.TotalTax, 0.01)
	assert.InDelta(t, 0.11, res.StateRate, 0.0001)
}

func TestCalculate_FlatStateBrackets(t *testing.T) {
	svc := tax.NewService()

	// MA taxes the first million at a flat 5%.
	res, err := svc.Calculate(80000, "MA", tax.FilingSingle)
	require.NoError(t, err)

	assert.InDelta(t, 4000.00, res.StateTax, 0.01)
}

func TestCalculate_NoIncomeTaxStates(t *testing.T) {
	svc := tax.NewService()

	for _, state := range []string{"TX", "FL", "NV", "WA", "WY", "SD", "AK"} {
		res, err := svc.Calculate(120000, state, tax.FilingSingle)
		require.NoError(t, err, "state %s", state)
		assert.Zero(t, res.StateTax, "state %s", state)
		assert.Zero(t, res.StateRate, "state %s", state)
	}
}

func TestCalculate_UnsupportedState(t *testing.T) {
	svc := tax.NewService()

	_, err := svc.Calculate(50000, "GA", tax.FilingSingle)
	assert.ErrorIs(t, err, tax.ErrUnsupportedState)
}

func TestCalculate_NegativeIncome(t *testing.T) {
	svc := tax.NewService()

	_, err := svc.Calculate(-1, "", tax.FilingSingle)
	assert.ErrorIs(t, err, tax.ErrNegativeIncome)
}

func TestCalculate_Monotonic(t *testing.T) {
	svc := tax.NewService()

	var prev float64

	for income := 0.0; income <= 800000; income += 25000 {
		res, err := svc.Calculate(income, "NY", tax.FilingSingle)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, res.TotalTax, prev, "income %.0f", income)
		assert.LessOrEqual(t, res.TotalTax, income, "income %.0f", income)

		prev = res.TotalTax
	}
}
