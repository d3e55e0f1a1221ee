package twr

import (
	"errors"
	"math"
	"testing"
)

// replayWeek is a helper running a replay over the test week and failing the
// test on error.
func replayWeek(t *testing.T, ledger *Ledger, market *Market) []Snapshot {
	t.Helper()
	snapshots, err := Replay(ledger, market, week)
	if err != nil {
		t.Fatalf("Replay() error = %v", err)
	}
	return snapshots
}

func TestCompoundingReturns_FirstDayIsZero(t *testing.T) {
	ledger := NewLedger(
		NewTransaction(day("2025-01-06"), CashTicker, Deposit, Q(0), CAD(1000)),
	)
	returns := CompoundingReturns(replayWeek(t, ledger, cadMarket(1.35, nil, nil)))
	if returns[0] != 0 {
		t.Errorf("first day return = %s, want 0", returns[0])
	}
}

func TestCompoundingReturns_DepositIsNotAGain(t *testing.T) {
	// A second deposit mid-week changes the value but not the return.
	ledger := NewLedger(
		NewTransaction(day("2025-01-06"), CashTicker, Deposit, Q(0), CAD(1000)),
		NewTransaction(day("2025-01-08"), CashTicker, Deposit, Q(0), CAD(500)),
	)
	returns := CompoundingReturns(replayWeek(t, ledger, cadMarket(1.35, nil, nil)))
	for i, r := range returns {
		if r != 0 {
			t.Errorf("day %d: return = %s, want 0", i, r)
		}
	}
}

func TestCompoundingReturns_ChainsDailyGains(t *testing.T) {
	ledger := NewLedger(
		NewTransaction(day("2025-01-06"), CashTicker, Deposit, Q(0), CAD(1000)),
		NewTransaction(day("2025-01-06"), "XEQT.TO", Buy, Q(10), CAD(-1000)),
	)
	market := cadMarket(1.35, nil, map[string]*Series{
		"XEQT.TO": series("2025-01-06", 100.0, "2025-01-07", 110.0, "2025-01-08", 99.0),
	})
	returns := CompoundingReturns(replayWeek(t, ledger, market))

	// +10% then -10%: compounded to -1%.
	if got, want := float64(returns[1]), 10.0; math.Abs(got-want) > 1e-9 {
		t.Errorf("day 2 return = %v, want %v", got, want)
	}
	if got, want := float64(returns[2]), -1.0; math.Abs(got-want) > 1e-9 {
		t.Errorf("day 3 return = %v, want %v", got, want)
	}
}

func TestTimeWeightedReturns_SingleDayIsZero(t *testing.T) {
	ledger := NewLedger(
		NewTransaction(day("2025-01-06"), CashTicker, Deposit, Q(0), CAD(1000)),
	)
	snapshots := replayWeek(t, ledger, cadMarket(1.35, nil, nil))

	value, err := TimeWeightedReturn(snapshots, day("2025-01-08"), day("2025-01-08"))
	if err != nil {
		t.Fatalf("TimeWeightedReturn() error = %v", err)
	}
	if value != 0 {
		t.Errorf("single day return = %s, want 0", value)
	}
}

func TestTimeWeightedReturns_AdjustsForDeposits(t *testing.T) {
	// A large deposit mid-period grows the denominator, not the gain: the
	// 100 gained on the initial position is measured against everything
	// deposited over the period.
	ledger := NewLedger(
		NewTransaction(day("2025-01-06"), CashTicker, Deposit, Q(0), CAD(1000)),
		NewTransaction(day("2025-01-06"), "XEQT.TO", Buy, Q(10), CAD(-1000)),
		NewTransaction(day("2025-01-08"), CashTicker, Deposit, Q(0), CAD(10000)),
	)
	market := cadMarket(1.35, nil, map[string]*Series{
		"XEQT.TO": series("2025-01-06", 100.0, "2025-01-07", 110.0),
	})
	snapshots := replayWeek(t, ledger, market)

	value, err := TimeWeightedReturn(snapshots, day("2025-01-06"), day("2025-01-10"))
	if err != nil {
		t.Fatalf("TimeWeightedReturn() error = %v", err)
	}
	// 11100 of value against 11000 deposited.
	if got, want := float64(value), 100*(11100.0/11000.0-1); math.Abs(got-want) > 1e-9 {
		t.Errorf("period return = %v, want %v", got, want)
	}
}

func TestTimeWeightedReturns_Errors(t *testing.T) {
	ledger := NewLedger(
		NewTransaction(day("2025-01-06"), CashTicker, Deposit, Q(0), CAD(1000)),
	)
	snapshots := replayWeek(t, ledger, cadMarket(1.35, nil, nil))

	testCases := []struct {
		name     string
		from, to string
		want     error
	}{
		{name: "start before the series", from: "2025-01-01", to: "2025-01-08", want: ErrOutOfRange},
		{name: "end after the series", from: "2025-01-06", to: "2025-02-01", want: ErrOutOfRange},
		{name: "start on a weekend", from: "2025-01-04", to: "2025-01-08", want: ErrOutOfRange},
		{name: "inverted period", from: "2025-01-09", to: "2025-01-07", want: ErrOutOfRange},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := TimeWeightedReturns(snapshots, day(tc.from), day(tc.to))
			if !errors.Is(err, tc.want) {
				t.Errorf("TimeWeightedReturns(%s, %s) error = %v, want %v", tc.from, tc.to, err, tc.want)
			}
		})
	}
}

func TestTimeWeightedReturns_MisalignedDate(t *testing.T) {
	// A two week replay skips the weekend; a Saturday inside the span is
	// misaligned, not out of range, and must not snap to the Friday.
	ledger := NewLedger(
		NewTransaction(day("2025-01-06"), CashTicker, Deposit, Q(0), CAD(1000)),
		NewTransaction(day("2025-01-14"), CashTicker, Deposit, Q(0), CAD(100)),
	)
	snapshots, err := ReplayAll(ledger, cadMarket(1.35, nil, nil))
	if err != nil {
		t.Fatalf("ReplayAll() error = %v", err)
	}

	_, err = TimeWeightedReturns(snapshots, day("2025-01-11"), day("2025-01-14"))
	if !errors.Is(err, ErrMisalignedDate) {
		t.Errorf("TimeWeightedReturns() error = %v, want ErrMisalignedDate", err)
	}
}
