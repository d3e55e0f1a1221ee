package twr

import (
	"iter"
	"maps"
	"slices"
	"sort"

	"github.com/etnz/twr/date"
	"github.com/rs/zerolog/log"
)

// Ledger is an ordered, immutable collection of transactions.
//
// Transactions are kept in chronological order; transactions sharing a date
// keep their original append order, which is also their processing order
// during a replay.
type Ledger struct {
	transactions []Transaction
}

// NewLedger creates an empty ledger.
func NewLedger(txs ...Transaction) *Ledger {
	l := &Ledger{}
	l.Append(txs...)
	return l
}

// Append adds transactions and restores the chronological order. The sort is
// stable so same-day transactions keep their relative order.
func (l *Ledger) Append(txs ...Transaction) {
	for _, tx := range txs {
		if shifted := tx.Date.NextBusinessDay(); shifted != tx.Date {
			log.Warn().
				Stringer("from", tx.Date).
				Stringer("to", shifted).
				Msg("transaction date falls on a weekend, shifted to next business day")
			tx.Date = shifted
		}
		l.transactions = append(l.transactions, tx)
	}
	sort.SliceStable(l.transactions, func(i, j int) bool {
		return l.transactions[i].Date.Before(l.transactions[j].Date)
	})
}

// Len returns the number of transactions in the ledger.
func (l *Ledger) Len() int { return len(l.transactions) }

// Transactions returns an iterator over all transactions in chronological
// order.
func (l *Ledger) Transactions() iter.Seq[Transaction] {
	return func(yield func(Transaction) bool) {
		for _, tx := range l.transactions {
			if !yield(tx) {
				return
			}
		}
	}
}

// On returns an iterator over the transactions effective on the given day,
// in original ledger order.
func (l *Ledger) On(day date.Date) iter.Seq[Transaction] {
	return func(yield func(Transaction) bool) {
		for _, tx := range l.transactions {
			if tx.Date.After(day) {
				// The ledger is sorted by date, so it's safe to stop.
				return
			}
			if tx.Date == day && !yield(tx) {
				return
			}
		}
	}
}

// Securities returns the sorted set of security tickers referenced by the
// ledger, excluding the cash sentinel.
func (l *Ledger) Securities() []string {
	set := make(map[string]struct{})
	for _, tx := range l.transactions {
		if tx.Security != CashTicker && tx.Security != "" {
			set[tx.Security] = struct{}{}
		}
	}
	return slices.Sorted(maps.Keys(set))
}

// OldestTransactionDate returns the date of the earliest transaction, or the
// zero date for an empty ledger.
func (l *Ledger) OldestTransactionDate() date.Date {
	if len(l.transactions) == 0 {
		return date.Date{}
	}
	return l.transactions[0].Date
}

// NewestTransactionDate returns the date of the latest transaction, or the
// zero date for an empty ledger.
func (l *Ledger) NewestTransactionDate() date.Date {
	if len(l.transactions) == 0 {
		return date.Date{}
	}
	return l.transactions[len(l.transactions)-1].Date
}
