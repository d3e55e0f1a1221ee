package twr

import (
	"fmt"
	"maps"
	"slices"

	"github.com/etnz/twr/date"

	"github.com/shopspring/decimal"
)

// Snapshot is the state of the portfolio at the close of one business day.
// All amounts are in the market's reporting currency.
type Snapshot struct {
	Date              date.Date
	Cash              Money // cash across all currencies, converted
	Positions         Money // market value of all held securities
	Value             Money // Cash + Positions
	NetDeposit        Money // external flow of that single day
	CumulativeDeposit Money // external flow since the start of the replay
}

// state is the running portfolio state of a replay: cash balances per
// currency and share counts per security, both as exact decimals.
type state struct {
	cash   map[string]decimal.Decimal
	shares map[string]Quantity
}

func newState() *state {
	return &state{
		cash:   make(map[string]decimal.Decimal),
		shares: make(map[string]Quantity),
	}
}

// apply mutates the state with one transaction and returns the external
// cash flow it contributes, in the transaction's currency.
func (s *state) apply(tx Transaction, market *Market) (flow Money, err error) {
	switch tx.Action {
	case Deposit, Withdraw:
		// A withdrawal is a deposit with a negative total.
		s.cash[tx.Currency] = s.cash[tx.Currency].Add(tx.Total.value)
		return tx.Total, nil

	case Buy, Sell:
		// The sign of the quantity is authoritative: the cash leg always
		// moves opposite to the share leg, whatever sign the export gave
		// the total.
		factor, err := market.SplitFactor(tx.Security, tx.Date)
		if err != nil {
			return Money{}, err
		}
		spent := tx.Total.value.Abs().Mul(decimal.NewFromInt(int64(tx.Quantity.Sign())))
		s.cash[tx.Currency] = s.cash[tx.Currency].Sub(spent)
		s.shares[tx.Security] = s.shares[tx.Security].Add(tx.Quantity.Mul(factor))
		return Money{}, nil

	case FXBuy, FXSell:
		// A currency exchange leg: the quantity sign tells whether this
		// currency's balance grows or shrinks. The paired leg in the other
		// currency is a separate transaction.
		signed := tx.Total.value.Mul(decimal.NewFromInt(int64(tx.Quantity.Sign())))
		s.cash[tx.Currency] = s.cash[tx.Currency].Add(signed)
		return Money{}, nil

	case Dividend:
		s.cash[tx.Currency] = s.cash[tx.Currency].Add(tx.Total.value)
		return Money{}, nil

	case Rebate:
		signed := tx.Total.value.Mul(decimal.NewFromInt(int64(tx.Quantity.Sign())))
		s.cash[tx.Currency] = s.cash[tx.Currency].Add(signed)
		return Money{}, nil

	default:
		return Money{}, fmt.Errorf("transaction %s: unhandled action %s", tx, tx.Action)
	}
}

// value prices the state at the close of a day, returning the cash and
// position components in the reporting currency.
func (s *state) value(on date.Date, market *Market) (cash, positions Money, err error) {
	cash = M(0, market.ReportingCurrency())
	for _, currency := range slices.Sorted(maps.Keys(s.cash)) {
		converted, err := market.Convert(M(s.cash[currency], currency), on)
		if err != nil {
			return Money{}, Money{}, err
		}
		cash = cash.Add(converted)
	}

	positions = M(0, market.ReportingCurrency())
	for _, security := range slices.Sorted(maps.Keys(s.shares)) {
		count := s.shares[security]
		if count.IsZero() {
			continue
		}
		price, err := market.PriceAt(security, on)
		if err != nil {
			return Money{}, Money{}, err
		}
		converted, err := market.Convert(price.Mul(count), on)
		if err != nil {
			return Money{}, Money{}, err
		}
		positions = positions.Add(converted)
	}
	return cash, positions, nil
}

// Replay runs the ledger through the market over a range of business days
// and returns one snapshot per day, oldest first.
//
// Transactions dated before the range fold into the opening state of the
// first day; transactions after the range are ignored. Any valuation or
// dispatch failure aborts the whole replay: a partial series would silently
// corrupt every return computed from it.
//
// Replay is deterministic: same ledger, same market, same range, same
// snapshots.
func Replay(ledger *Ledger, market *Market, r date.Range) ([]Snapshot, error) {
	for _, security := range ledger.Securities() {
		if !market.Has(security) {
			return nil, fmt.Errorf("%s: %w", security, ErrUnknownSecurity)
		}
	}

	txs := slices.Collect(ledger.Transactions())
	reporting := market.ReportingCurrency()

	s := newState()
	next := 0
	cumulative := M(0, reporting)
	var snapshots []Snapshot

	for day := range date.Business(r) {
		net := M(0, reporting)
		for next < len(txs) && !txs[next].Date.After(day) {
			flow, err := s.apply(txs[next], market)
			if err != nil {
				return nil, fmt.Errorf("on %s: %w", day, err)
			}
			if !flow.IsZero() {
				converted, err := market.Convert(flow, day)
				if err != nil {
					return nil, fmt.Errorf("on %s: %w", day, err)
				}
				net = net.Add(converted)
			}
			next++
		}

		cash, positions, err := s.value(day, market)
		if err != nil {
			return nil, fmt.Errorf("on %s: %w", day, err)
		}
		cumulative = cumulative.Add(net)
		snapshots = append(snapshots, Snapshot{
			Date:              day,
			Cash:              cash,
			Positions:         positions,
			Value:             cash.Add(positions),
			NetDeposit:        net,
			CumulativeDeposit: cumulative,
		})
	}
	return snapshots, nil
}

// ReplayAll replays the full span of the ledger, from its oldest transaction
// to its newest.
func ReplayAll(ledger *Ledger, market *Market) ([]Snapshot, error) {
	if ledger.Len() == 0 {
		return nil, nil
	}
	r, err := date.NewRange(ledger.OldestTransactionDate(), ledger.NewestTransactionDate())
	if err != nil {
		return nil, err
	}
	return Replay(ledger, market, r)
}
