package twr

import (
	"context"
	"fmt"

	"github.com/etnz/twr/date"

	"github.com/rs/zerolog/log"
)

// Provider supplies market data for securities: daily close prices, foreign
// exchange rates, split events and trading currencies. Implementations are
// the only network-facing code; the valuation engine itself never performs
// I/O.
type Provider interface {
	// FetchCloseSeries returns the daily close series of each ticker over
	// the range, in the ticker's trading currency.
	FetchCloseSeries(ctx context.Context, tickers []string, r date.Range) (map[string]*Series, error)
	// FetchFxSeries returns the daily series of the value of 1 unit of the
	// base currency in the quote currency over the range.
	FetchFxSeries(ctx context.Context, base, quote string, r date.Range) (*Series, error)
	// FetchSplits returns all known split events of a ticker.
	FetchSplits(ctx context.Context, ticker string) (SplitHistory, error)
	// FetchCurrency returns the trading currency of a ticker.
	FetchCurrency(ctx context.Context, ticker string) (string, error)
}

// LoadMarket resolves every piece of market data a replay of the ledger
// will need: one close series and split history per security referenced by
// the ledger, and the FX series for the full range. It fails rather than
// return a partially loaded market, so a replay never discovers missing
// data halfway through.
func LoadMarket(ctx context.Context, p Provider, ledger *Ledger, r date.Range, reporting, foreign string) (*Market, error) {
	market := NewMarket(reporting, foreign)

	tickers := ledger.Securities()
	log.Debug().Strs("tickers", tickers).Stringer("range", r).Msg("loading market data")

	closes, err := p.FetchCloseSeries(ctx, tickers, r)
	if err != nil {
		return nil, fmt.Errorf("fetching close series: %w", err)
	}
	for _, ticker := range tickers {
		currency, err := p.FetchCurrency(ctx, ticker)
		if err != nil {
			return nil, fmt.Errorf("fetching currency of %s: %w", ticker, err)
		}
		splits, err := p.FetchSplits(ctx, ticker)
		if err != nil {
			return nil, fmt.Errorf("fetching splits of %s: %w", ticker, err)
		}
		if err := market.Add(NewSecurity(ticker, currency, closes[ticker], splits)); err != nil {
			return nil, err
		}
	}

	fx, err := p.FetchFxSeries(ctx, foreign, reporting, r)
	if err != nil {
		return nil, fmt.Errorf("fetching %s%s series: %w", foreign, reporting, err)
	}
	for day, rate := range fx.Values() {
		market.SetFxRate(day, Q(rate))
	}
	return market, nil
}
