package twr

import (
	"fmt"
	"maps"
	"slices"

	"github.com/etnz/twr/date"
)

// Security holds the market data of a single listed security: its trading
// currency, daily close prices, and corporate split history. It is immutable
// once added to a Market.
type Security struct {
	ticker   string
	currency string
	prices   *Series
	splits   SplitHistory
}

// NewSecurity creates a security from its loaded market data.
func NewSecurity(ticker, currency string, prices *Series, splits SplitHistory) *Security {
	return &Security{ticker: ticker, currency: currency, prices: prices, splits: splits}
}

func (s *Security) Ticker() string   { return s.ticker }
func (s *Security) Currency() string { return s.currency }

// Market is the read-only price series store used by a replay: per-security
// daily close series plus one foreign-exchange series converting the foreign
// currency into the reporting currency.
//
// A Market is fully resolved before a replay begins, so no lookup inside the
// replay loop ever blocks on I/O. It is safe for concurrent replays to share
// one Market.
type Market struct {
	reporting  string // currency every value is reported in
	foreign    string // the single foreign trading currency
	securities map[string]*Security
	fx         *Series // value of 1 unit of foreign currency in reporting currency
}

// NewMarket creates an empty market store for a reporting/foreign currency
// pair, e.g. ("CAD", "USD").
func NewMarket(reporting, foreign string) *Market {
	return &Market{
		reporting:  reporting,
		foreign:    foreign,
		securities: make(map[string]*Security),
		fx:         &Series{},
	}
}

// ReportingCurrency returns the currency every value is expressed in.
func (m *Market) ReportingCurrency() string { return m.reporting }

// ForeignCurrency returns the single supported foreign currency.
func (m *Market) ForeignCurrency() string { return m.foreign }

// Add registers a security. It fails with ErrDataUnavailable when the
// security carries no price at all, because a replay holding it could never
// be valued.
func (m *Market) Add(sec *Security) error {
	if sec.prices == nil || sec.prices.Len() == 0 {
		return fmt.Errorf("security %s: %w", sec.ticker, ErrDataUnavailable)
	}
	switch sec.currency {
	case m.reporting, m.foreign:
	default:
		return fmt.Errorf("security %s trades in unsupported currency %q", sec.ticker, sec.currency)
	}
	m.securities[sec.ticker] = sec
	return nil
}

// SetFxRate records the value of 1 unit of the foreign currency in the
// reporting currency on the given day.
func (m *Market) SetFxRate(on date.Date, rate Quantity) {
	m.fx.Append(on, rate.value)
}

// Has reports whether the ticker was loaded.
func (m *Market) Has(ticker string) bool {
	_, ok := m.securities[ticker]
	return ok
}

// Tickers returns the sorted list of loaded tickers.
func (m *Market) Tickers() []string {
	return slices.Sorted(maps.Keys(m.securities))
}

// Currency returns the trading currency of a loaded security.
func (m *Market) Currency(ticker string) (string, error) {
	sec, ok := m.securities[ticker]
	if !ok {
		return "", fmt.Errorf("%s: %w", ticker, ErrUnknownSecurity)
	}
	return sec.currency, nil
}

// PriceAt returns the close price of a security on a day, in the security's
// trading currency. A day with no direct quote (holiday, gap) forward-fills
// from the most recent prior close; a day before the first known quote fails
// with ErrNoPriorPrice.
func (m *Market) PriceAt(ticker string, on date.Date) (Money, error) {
	sec, ok := m.securities[ticker]
	if !ok {
		return Money{}, fmt.Errorf("%s: %w", ticker, ErrUnknownSecurity)
	}
	v, ok := sec.prices.ValueAsOf(on)
	if !ok {
		return Money{}, fmt.Errorf("%s on %s: %w", ticker, on, ErrNoPriorPrice)
	}
	return M(v, sec.currency), nil
}

// FxRateAt returns the rate converting 1 unit of the foreign currency into
// the reporting currency on a day, with the same forward-fill contract as
// PriceAt.
func (m *Market) FxRateAt(on date.Date) (Quantity, error) {
	v, ok := m.fx.ValueAsOf(on)
	if !ok {
		return Quantity{}, fmt.Errorf("%s%s on %s: %w", m.foreign, m.reporting, on, ErrNoPriorPrice)
	}
	return Q(v), nil
}

// SplitFactor returns the backward split-adjustment factor of a security as
// of a day (see SplitHistory.Factor).
func (m *Market) SplitFactor(ticker string, on date.Date) (Quantity, error) {
	sec, ok := m.securities[ticker]
	if !ok {
		return Quantity{}, fmt.Errorf("%s: %w", ticker, ErrUnknownSecurity)
	}
	return sec.splits.Factor(on), nil
}

// Convert expresses an amount in the reporting currency, applying the FX
// rate of the day when the amount is in the foreign currency.
func (m *Market) Convert(amount Money, on date.Date) (Money, error) {
	switch amount.Currency() {
	case m.reporting, "":
		return M(amount.value, m.reporting), nil
	case m.foreign:
		rate, err := m.FxRateAt(on)
		if err != nil {
			return Money{}, err
		}
		return M(amount.value.Mul(rate.value), m.reporting), nil
	default:
		return Money{}, fmt.Errorf("cannot convert %s to %s", amount.Currency(), m.reporting)
	}
}
