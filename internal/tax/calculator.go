package tax

import "math"

// BracketTax is the portion of tax owed within a single bracket.
type BracketTax struct {
	Rate          float64
	TaxableAmount float64
	Tax           float64
}

type Result struct {
	FederalTax      float64
	StateTax        float64
	TotalTax        float64
	EffectiveRate   float64
	TakeHome        float64
	FederalBrackets []BracketTax
	StateRate       float64
}

type Service struct{}

func NewService() *Service {
	return &Service{}
}

// Calculate computes 2024 federal and state income tax for a gross annual
// income. The federal standard deduction is applied before the federal
// brackets; state tax is computed on gross income.
func (s *Service) Calculate(income float64, state string, status FilingStatus) (*Result, error) {
	if income < 0 {
		return nil, ErrNegativeIncome
	}

	federal, err := federalBrackets(status)
	if err != nil {
		return nil, err
	}

	deduction, err := standardDeduction(status)
	if err != nil {
		return nil, err
	}

	stBrackets, err := stateBrackets(state)
	if err != nil {
		return nil, err
	}

	federalTax, federalDetail := applyBrackets(income, federal, deduction)
	stateTax, _ := applyBrackets(income, stBrackets, 0)

	totalTax := federalTax + stateTax

	var effectiveRate float64
	if income > 0 {
		effectiveRate = totalTax / income
	}

	var stateRate float64
	if len(stBrackets) > 0 {
		stateRate = stBrackets[len(stBrackets)-1].Rate
	}

	return &Result{
		FederalTax:      federalTax,
		StateTax:        stateTax,
		TotalTax:        totalTax,
		EffectiveRate:   effectiveRate,
		TakeHome:        income - totalTax,
		FederalBrackets: federalDetail,
		StateRate:       stateRate,
	}, nil
}

// applyBrackets runs a progressive bracket scan over income less deduction.
// Each bracket taxes only the slice of taxable income that falls inside it.
func applyBrackets(income float64, brackets []Bracket, deduction float64) (float64, []BracketTax) {
	taxable := math.Max(0, income-deduction)

	var total float64

	var detail []BracketTax

	for _, b := range brackets {
		if taxable <= b.Min {
			continue
		}

		upper := taxable
		if b.Max > 0 && b.Max < taxable {
			upper = b.Max
		}

		amount := upper - b.Min
		tax := amount * b.Rate
		total += tax

		detail = append(detail, BracketTax{Rate: b.Rate, TaxableAmount: amount, Tax: tax})
	}

	return total, detail
}
