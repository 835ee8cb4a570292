package export

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/lfonseca/moneta/internal/ledger"
)

// Kind selects which side of the ledger an export covers.
type Kind string

const (
	KindExpenses Kind = "expenses"
	KindIncomes  Kind = "incomes"
)

// Service renders ledger entries as CSV downloads and plain-text summaries.
type Service struct {
	ledger *ledger.Service
}

func NewService(ledgerService *ledger.Service) *Service {
	return &Service{ledger: ledgerService}
}

// WriteCSV streams matching entries to w, newest first.
func (s *Service) WriteCSV(ctx context.Context, w io.Writer, kind Kind, filter ledger.ListFilter) error {
	cw := csv.NewWriter(w)

	switch kind {
	case KindExpenses:
		if err := s.writeExpenses(ctx, cw, filter); err != nil {
			return err
		}
	case KindIncomes:
		if err := s.writeIncomes(ctx, cw, filter); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown export kind: %s", kind)
	}

	cw.Flush()

	return cw.Error()
}

func (s *Service) writeExpenses(ctx context.Context, cw *csv.Writer, filter ledger.ListFilter) error {
	expenses, err := s.ledger.ListExpenses(ctx, filter)
	if err != nil {
		return fmt.Errorf("listing expenses: %w", err)
	}

	if err := cw.Write([]string{"Date", "Description", "Category", "Amount"}); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for _, e := range expenses {
		record := []string{
			e.Date.Format(time.DateOnly),
			e.Description,
			e.Category,
			e.Amount.StringFixed(2),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("writing expense %s: %w", e.ID, err)
		}
	}

	return nil
}

func (s *Service) writeIncomes(ctx context.Context, cw *csv.Writer, filter ledger.ListFilter) error {
	incomes, err := s.ledger.ListIncomes(ctx, filter)
	if err != nil {
		return fmt.Errorf("listing incomes: %w", err)
	}

	if err := cw.Write([]string{"Date", "Source", "Description", "Amount"}); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for _, in := range incomes {
		record := []string{
			in.Date.Format(time.DateOnly),
			in.Source,
			in.Description,
			in.Amount.StringFixed(2),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("writing income %s: %w", in.ID, err)
		}
	}

	return nil
}

// Summary aggregates both ledger sides over one filter window.
type Summary struct {
	ExpenseCount  int
	IncomeCount   int
	TotalExpenses decimal.Decimal
	TotalIncome   decimal.Decimal
	Net           decimal.Decimal
}

func (s *Service) Summarize(ctx context.Context, filter ledger.ListFilter) (*Summary, error) {
	expenses, err := s.ledger.ListExpenses(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("listing expenses: %w", err)
	}

	incomes, err := s.ledger.ListIncomes(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("listing incomes: %w", err)
	}

	sum := &Summary{
		ExpenseCount: len(expenses),
		IncomeCount:  len(incomes),
	}

	for _, e := range expenses {
		sum.TotalExpenses = sum.TotalExpenses.Add(e.Amount)
	}

	for _, in := range incomes {
		sum.TotalIncome = sum.TotalIncome.Add(in.Amount)
	}

	sum.Net = sum.TotalIncome.Sub(sum.TotalExpenses)

	return sum, nil
}

// Text renders the summary as plain lines for email bodies and CLI output.
func (s *Summary) Text() string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("* Incomes:  %d entries, total %s\n", s.IncomeCount, s.TotalIncome.StringFixed(2)))
	sb.WriteString(fmt.Sprintf("* Expenses: %d entries, total %s\n", s.ExpenseCount, s.TotalExpenses.StringFixed(2)))
	sb.WriteString(fmt.Sprintf("* Net:      %s\n", s.Net.StringFixed(2)))

	return sb.String()
}
