package twr

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/etnz/twr/date"

	"github.com/shopspring/decimal"
)

// ImportTransactions reads a tab-separated brokerage export into a Ledger.
//
// The export carries one banner line, then a header row naming at least the
// columns date, security, action, quantity, currency and total, then one row
// per transaction. Dates are MM/DD/YYYY; amounts may carry currency symbols
// and thousands separators. Rows dated on a weekend are shifted to the next
// business day by the ledger.
func ImportTransactions(r io.Reader) (*Ledger, error) {
	cr := csv.NewReader(r)
	cr.Comma = '\t'
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading transaction export: %w", err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("transaction export has no header row")
	}

	// The first line is the export banner, the second the column names.
	col := make(map[string]int)
	for i, name := range records[1] {
		col[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, name := range []string{"date", "security", "action", "quantity", "currency", "total"} {
		if _, ok := col[name]; !ok {
			return nil, fmt.Errorf("transaction export is missing column %q", name)
		}
	}

	ledger := NewLedger()
	for line, rec := range records[2:] {
		if len(rec) == 0 || strings.TrimSpace(strings.Join(rec, "")) == "" {
			continue
		}
		field := func(name string) string {
			i := col[name]
			if i >= len(rec) {
				return ""
			}
			return strings.TrimSpace(rec[i])
		}

		on, err := date.ParseMDY(field("date"))
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line+3, err)
		}
		action, err := ParseAction(field("action"))
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line+3, err)
		}
		quantity, err := parseAmount(field("quantity"))
		if err != nil {
			return nil, fmt.Errorf("line %d: quantity: %w", line+3, err)
		}
		total, err := parseAmount(field("total"))
		if err != nil {
			return nil, fmt.Errorf("line %d: total: %w", line+3, err)
		}

		ledger.Append(NewTransaction(on, field("security"), action, Q(quantity), M(total, field("currency"))))
	}
	return ledger, nil
}

// parseAmount parses a decimal as exported by brokerages: optional currency
// symbol, comma thousands separators, empty meaning zero.
func parseAmount(s string) (decimal.Decimal, error) {
	s = strings.ReplaceAll(s, ",", "")
	s = strings.ReplaceAll(s, "$", "")
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Decimal{}, nil
	}
	return decimal.NewFromString(s)
}
