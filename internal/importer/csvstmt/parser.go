package csvstmt

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	enc "github.com/lfonseca/moneta/internal/encoding"
	"github.com/lfonseca/moneta/internal/ledger"
)

// DefaultCategory is assigned to expense rows whose statement carries no
// category column.
const DefaultCategory = "Uncategorized"

// Parser reads generic bank statement CSV exports. The header row is located
// by landmark columns (Date, Description, Amount) so leading preamble lines
// from the bank are skipped. Negative amounts become expenses, positive ones
// incomes.
type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

func (p *Parser) Parse(r io.Reader) (ledger.BatchParams, error) {
	utf8r, err := enc.NewUTF8Reader(r)
	if err != nil {
		return ledger.BatchParams{}, fmt.Errorf("detect encoding: %w", err)
	}

	reader := csv.NewReader(utf8r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return ledger.BatchParams{}, fmt.Errorf("read csv: %w", err)
	}

	cols, headerIdx, ok := findHeader(rows)
	if !ok {
		return ledger.BatchParams{}, fmt.Errorf("no header row found: expected Date, Description and Amount columns")
	}

	return parseRows(cols, rows[headerIdx+1:], headerIdx+1)
}

// colIndex maps lower-cased column names to their position in the row.
type colIndex map[string]int

func findHeader(rows [][]string) (colIndex, int, bool) {
	for rowIdx, row := range rows {
		cols := make(colIndex)

		for i, cell := range row {
			name := strings.ToLower(strings.TrimSpace(cell))
			if name != "" {
				cols[name] = i
			}
		}

		if hasAll(cols, "date", "description", "amount") {
			return cols, rowIdx, true
		}
	}

	return nil, 0, false
}

func hasAll(cols colIndex, names ...string) bool {
	for _, name := range names {
		if _, ok := cols[name]; !ok {
			return false
		}
	}

	return true
}

// parseRows turns data rows into batch params. headerRowNum is the 0-based
// index of the header in the original file, used for error positions.
func parseRows(cols colIndex, rows [][]string, headerRowNum int) (ledger.BatchParams, error) {
	dateIdx := cols["date"]
	descIdx := cols["description"]
	amountIdx := cols["amount"]

	categoryIdx, hasCategory := cols["category"]

	var batch ledger.BatchParams

	for i, row := range rows {
		rowNum := headerRowNum + i + 2 // 1-based, past the header

		date, ok := parseDate(cellValue(row, dateIdx))
		if !ok {
			// Footer and blank rows carry no date.
			continue
		}

		desc := cellValue(row, descIdx)
		if desc == "" {
			return ledger.BatchParams{}, fmt.Errorf("row %d: missing description", rowNum)
		}

		amount, err := parseAmount(cellValue(row, amountIdx))
		if err != nil {
			return ledger.BatchParams{}, fmt.Errorf("row %d: %w", rowNum, err)
		}

		if amount.IsZero() {
			continue
		}

		if amount.IsNegative() {
			cat := DefaultCategory
			if hasCategory {
				if c := cellValue(row, categoryIdx); c != "" {
					cat = c
				}
			}

			batch.Expenses = append(batch.Expenses, ledger.ExpenseParams{
				Amount:      amount.Neg(),
				Category:    cat,
				Date:        date,
				Description: desc,
			})

			continue
		}

		batch.Incomes = append(batch.Incomes, ledger.IncomeParams{
			Amount:      amount,
			Source:      desc,
			Date:        date,
			Description: desc,
		})
	}

	return batch, nil
}

var dateLayouts = []string{"2006-01-02", "01/02/2006", "2006/01/02"}

func parseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}

	return time.Time{}, false
}

// parseAmount accepts plain decimals plus the usual statement noise: leading
// currency symbols, thousands separators and parenthesized negatives.
func parseAmount(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, fmt.Errorf("missing amount")
	}

	negative := false

	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
		s = s[1 : len(s)-1]
	}

	s = strings.ReplaceAll(s, "$", "")
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSpace(s)

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q", s)
	}

	if negative {
		d = d.Neg()
	}

	return d, nil
}

func cellValue(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}
