package twr

import (
	"fmt"
	"strings"

	"github.com/etnz/twr/date"
)

// CashTicker is the sentinel security identifier used by cash-only rows
// (deposits, withdrawals, currency exchanges, rebates).
const CashTicker = "Cash"

// Action identifies what a transaction does to the portfolio. The set is
// closed: dispatching on it is exhaustive, so a new action cannot silently
// no-op its way through a replay.
type Action int

const (
	Deposit Action = iota
	Withdraw
	Buy
	Sell
	FXBuy
	FXSell
	Dividend
	Rebate
)

func (a Action) String() string {
	switch a {
	case Deposit:
		return "deposit"
	case Withdraw:
		return "withdraw"
	case Buy:
		return "buy"
	case Sell:
		return "sell"
	case FXBuy:
		return "fxbuy"
	case FXSell:
		return "fxsell"
	case Dividend:
		return "dividend"
	case Rebate:
		return "rebate"
	default:
		return fmt.Sprintf("action(%d)", int(a))
	}
}

// ParseAction parses an action name. It is case-insensitive and ignores
// spaces, so "FX Buy" and "fxbuy" are the same action.
func ParseAction(s string) (Action, error) {
	switch strings.ToLower(strings.ReplaceAll(s, " ", "")) {
	case "deposit":
		return Deposit, nil
	case "withdraw":
		return Withdraw, nil
	case "buy":
		return Buy, nil
	case "sell":
		return Sell, nil
	case "fxbuy":
		return FXBuy, nil
	case "fxsell":
		return FXSell, nil
	case "dividend":
		return Dividend, nil
	case "rebate":
		return Rebate, nil
	default:
		return 0, fmt.Errorf("unknown action %q", s)
	}
}

// IsCashOnly reports whether the action never references a security position.
func (a Action) IsCashOnly() bool {
	switch a {
	case Buy, Sell:
		return false
	default:
		return true
	}
}

// Transaction is a single immutable ledger record.
//
// Quantity is the authoritative signed share delta for Buy and Sell: its
// sign encodes the direction, independently of the sign of Total. Total is
// the signed cash amount in Currency, negative when cash leaves the
// portfolio. Cash-only actions carry a zero Quantity.
type Transaction struct {
	Date     date.Date // effective date, always a business day
	Security string    // ticker, or CashTicker for cash-only rows
	Action   Action
	Quantity Quantity
	Currency string // currency of Total
	Total    Money  // signed cash amount
}

// NewTransaction builds a transaction, shifting a non-business date forward
// to the next business day.
func NewTransaction(on date.Date, security string, action Action, quantity Quantity, total Money) Transaction {
	return Transaction{
		Date:     on.NextBusinessDay(),
		Security: NormalizeTicker(security),
		Action:   action,
		Quantity: quantity,
		Currency: total.Currency(),
		Total:    total,
	}
}

// NormalizeTicker maps exchange-prefixed Canadian tickers ("TSE:XXX") to the
// suffixed form ("XXX.TO") used by the price provider. Other tickers pass
// through unchanged.
func NormalizeTicker(ticker string) string {
	if rest, ok := strings.CutPrefix(ticker, "TSE:"); ok {
		return rest + ".TO"
	}
	return ticker
}

func (t Transaction) String() string {
	if t.Action.IsCashOnly() {
		return fmt.Sprintf("%s %s %s", t.Date, t.Action, t.Total)
	}
	return fmt.Sprintf("%s %s %s %s for %s", t.Date, t.Action, t.Quantity, t.Security, t.Total)
}
