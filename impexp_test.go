package twr

import (
	"slices"
	"strings"
	"testing"
)

const sampleExport = "Account activity export\n" +
	"date\tsecurity\taction\tquantity\tcurrency\ttotal\n" +
	"01/06/2025\tCash\tDeposit\t0\tCAD\t10,000.00\n" +
	"01/06/2025\tTSE:XEQT\tBuy\t100\tCAD\t-3,250.00\n" +
	"01/08/2025\tSPY\tBuy\t5\tUSD\t-$2,000.00\n" +
	"01/11/2025\tCash\tFX Sell\t-1\tCAD\t135.00\n"

func TestImportTransactions(t *testing.T) {
	ledger, err := ImportTransactions(strings.NewReader(sampleExport))
	if err != nil {
		t.Fatalf("ImportTransactions() error = %v", err)
	}
	if ledger.Len() != 4 {
		t.Fatalf("Len() = %d, want 4", ledger.Len())
	}

	txs := slices.Collect(ledger.Transactions())

	if got := txs[0]; got.Action != Deposit || !got.Total.Equal(CAD(10000)) {
		t.Errorf("first = %s, want a 10000 CAD deposit", got)
	}
	if got := txs[1]; got.Security != "XEQT.TO" || !got.Quantity.Equal(Q(100)) || !got.Total.Equal(CAD(-3250)) {
		t.Errorf("second = %s, want buy 100 XEQT.TO for -3250 CAD", got)
	}
	if got := txs[2]; got.Currency != "USD" || !got.Total.Equal(USD(-2000)) {
		t.Errorf("third = %s, want -2000 USD", got)
	}
	// The Saturday FX leg lands on the following Monday.
	if got := txs[3]; got.Action != FXSell || got.Date != day("2025-01-13") {
		t.Errorf("fourth = %s, want an FX sell on 2025-01-13", got)
	}
}

func TestImportTransactions_Errors(t *testing.T) {
	testCases := []struct {
		name string
		in   string
	}{
		{"empty input", ""},
		{"missing column", "banner\ndate\tsecurity\n01/06/2025\tCash\n"},
		{"bad date", "banner\ndate\tsecurity\taction\tquantity\tcurrency\ttotal\n2025-01-06\tCash\tDeposit\t0\tCAD\t1\n"},
		{"bad action", "banner\ndate\tsecurity\taction\tquantity\tcurrency\ttotal\n01/06/2025\tCash\tTransfer\t0\tCAD\t1\n"},
		{"bad amount", "banner\ndate\tsecurity\taction\tquantity\tcurrency\ttotal\n01/06/2025\tCash\tDeposit\t0\tCAD\tx\n"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := ImportTransactions(strings.NewReader(tc.in)); err == nil {
				t.Error("ImportTransactions() accepted a malformed export")
			}
		})
	}
}

func TestParseAmount(t *testing.T) {
	testCases := []struct {
		in   string
		want float64
	}{
		{"1,234.56", 1234.56},
		{"-$2,000.00", -2000},
		{"$135", 135},
		{"", 0},
		{"0", 0},
	}
	for _, tc := range testCases {
		got, err := parseAmount(tc.in)
		if err != nil {
			t.Errorf("parseAmount(%q) error = %v", tc.in, err)
			continue
		}
		if got.InexactFloat64() != tc.want {
			t.Errorf("parseAmount(%q) = %s, want %v", tc.in, got, tc.want)
		}
	}
}
