package tax

import "errors"

var (
	ErrInvalidFilingStatus = errors.New("invalid filing status")
	ErrUnsupportedState    = errors.New("unsupported state")
	ErrNegativeIncome      = errors.New("income must not be negative")
)

// FilingStatus is a federal filing status for the 2024 tax year.
type FilingStatus string

const (
	FilingSingle            FilingStatus = "single"
	FilingMarriedJointly    FilingStatus = "married_filing_jointly"
	FilingMarriedSeparately FilingStatus = "married_filing_separately"
	FilingHeadOfHousehold   FilingStatus = "head_of_household"
)

func ParseFilingStatus(s string) (FilingStatus, error) {
	switch FilingStatus(s) {
	case FilingSingle, FilingMarriedJointly, FilingMarriedSeparately, FilingHeadOfHousehold:
		return FilingStatus(s), nil
	default:
		return "", ErrInvalidFilingStatus
	}
}

// Bracket is one progressive tax bracket. Max of 0 means the bracket has no
// upper bound.
type Bracket struct {
	Min  float64
	Max  float64
	Rate float64
}

// federalBrackets returns the 2024 federal brackets for a filing status. The
// switch is exhaustive over FilingStatus; an unknown value is a caller bug
// caught by ParseFilingStatus.
func federalBrackets(status FilingStatus) ([]Bracket, error) {
	switch status {
	case FilingSingle:
		return []Bracket{
			{Min: 0, Max: 11600, Rate: 0.10},
			{Min: 11600, Max: 47150, Rate: 0.12},
			{Min: 47150, Max: 100525, Rate: 0.22},
			{Min: 100525, Max: 191950, Rate: 0.24},
			{Min: 191950, Max: 243725, Rate: 0.32},
			{Min: 243725, Max: 609350, Rate: 0.35},
			{Min: 609350, Max: 0, Rate: 0.37},
		}, nil
	case FilingMarriedJointly:
		return []Bracket{
			{Min: 0, Max: 23200, Rate: 0.10},
			{Min: 23200, Max: 94300, Rate: 0.12},
			{Min: 94300, Max: 201050, Rate: 0.22},
			{Min: 201050, Max: 383900, Rate: 0.24},
			{Min: 383900, Max: 487450, Rate: 0.32},
			{Min: 487450, Max: 731200, Rate: 0.35},
			{Min: 731200, Max: 0, Rate: 0.37},
		}, nil
	case FilingMarriedSeparately:
		return []Bracket{
			{Min: 0, Max: 11600, Rate: 0.10},
			{Min: 11600, Max: 47150, Rate: 0.12},
			{Min: 47150, Max: 100525, Rate: 0.22},
			{Min: 100525, Max: 191950, Rate: 0.24},
			{Min: 191950, Max: 243725, Rate: 0.32},
			{Min: 243725, Max: 365600, Rate: 0.35},
			{Min: 365600, Max: 0, Rate: 0.37},
		}, nil
	case FilingHeadOfHousehold:
		return []Bracket{
			{Min: 0, Max: 16550, Rate: 0.10},
			{Min: 16550, Max: 63100, Rate: 0.12},
			{Min: 63100, Max: 100500, Rate: 0.22},
			{Min: 100500, Max: 191950, Rate: 0.24},
			{Min: 191950, Max: 243700, Rate: 0.32},
			{Min: 243700, Max: 609350, Rate: 0.35},
			{Min: 609350, Max: 0, Rate: 0.37},
		}, nil
	default:
		return nil, ErrInvalidFilingStatus
	}
}

// standardDeduction returns the 2024 federal standard deduction.
func standardDeduction(status FilingStatus) (float64, error) {
	switch status {
	case FilingSingle:
		return 14600, nil
	case FilingMarriedJointly:
		return 29200, nil
	case FilingMarriedSeparately:
		return 14600, nil
	case FilingHeadOfHousehold:
		return 21900, nil
	default:
		return 0, ErrInvalidFilingStatus
	}
}

// stateBrackets returns the 2024 brackets for a state income tax. States with
// no income tax return an empty set. An empty state code means federal only.
// Any other state is not in the tables and yields ErrUnsupportedState.
func stateBrackets(state string) ([]Bracket, error) {
	switch state {
	case "CA":
		return []Bracket{
			{Min: 0, Max: 10099, Rate: 0.01},
			{Min: 10099, Max: 23942, Rate: 0.02},
			{Min: 23942, Max: 37788, Rate: 0.04},
			{Min: 37788, Max: 52455, Rate: 0.06},
			{Min: 52455, Max: 66295, Rate: 0.08},
			{Min: 66295, Max: 349137, Rate: 0.09},
			{Min: 349137, Max: 698274, Rate: 0.10},
			{Min: 698274, Max: 0, Rate: 0.11},
		}, nil
	case "NY":
		return []Bracket{
			{Min: 0, Max: 8500, Rate: 0.04},
			{Min: 8500, Max: 11700, Rate: 0.045},
			{Min: 11700, Max: 13900, Rate: 0.0525},
			{Min: 13900, Max: 21400, Rate: 0.059},
			{Min: 21400, Max: 80650, Rate: 0.0597},
			{Min: 80650, Max: 215400, Rate: 0.0633},
			{Min: 215400, Max: 1077550, Rate: 0.0657},
			{Min: 1077550, Max: 0, Rate: 0.0685},
		}, nil
	case "IL":
		return []Bracket{
			{Min: 0, Max: 10000, Rate: 0.045},
			{Min: 10000, Max: 20000, Rate: 0.048},
			{Min: 20000, Max: 100000, Rate: 0.053},
			{Min: 100000, Max: 250000, Rate: 0.062},
			{Min: 250000, Max: 0, Rate: 0.0695},
		}, nil
	case "MA":
		return []Bracket{
			{Min: 0, Max: 1000000, Rate: 0.05},
			{Min: 1000000, Max: 0, Rate: 0.053},
		}, nil
	case "TX", "FL", "NV", "WA", "WY", "SD", "AK":
		// No state income tax.
		return nil, nil
	case "":
		return nil, nil
	default:
		return nil, ErrUnsupportedState
	}
}
