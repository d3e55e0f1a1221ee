package store

import (
	"context"

	"github.com/etnz/twr"
	"github.com/etnz/twr/date"

	"github.com/rs/zerolog/log"
)

// Cached is a provider that answers from the store when it can and falls
// back to a remote provider, archiving whatever it fetched. Data already on
// disk is trusted as-is; use Refresh to force a new fetch.
type Cached struct {
	remote twr.Provider
	store  *Store
}

var _ twr.Provider = (*Cached)(nil)

// NewCached wraps a remote provider with the store.
func NewCached(remote twr.Provider, store *Store) *Cached {
	return &Cached{remote: remote, store: store}
}

// FetchCloseSeries implements twr.Provider. Tickers with no stored price in
// the range are fetched remotely and archived.
func (c *Cached) FetchCloseSeries(ctx context.Context, tickers []string, r date.Range) (map[string]*twr.Series, error) {
	all := make(map[string]*twr.Series, len(tickers))
	var missing []string
	for _, ticker := range tickers {
		series, err := c.store.LoadPrices(ctx, ticker, r)
		if err != nil {
			return nil, err
		}
		if series.Len() == 0 {
			missing = append(missing, ticker)
			continue
		}
		all[ticker] = series
	}
	if len(missing) == 0 {
		return all, nil
	}

	log.Debug().Strs("tickers", missing).Msg("prices not archived, fetching")
	fetched, err := c.remote.FetchCloseSeries(ctx, missing, r)
	if err != nil {
		return nil, err
	}
	for ticker, series := range fetched {
		if err := c.store.SavePrices(ctx, ticker, series); err != nil {
			return nil, err
		}
		all[ticker] = series
	}
	return all, nil
}

// FetchFxSeries implements twr.Provider.
func (c *Cached) FetchFxSeries(ctx context.Context, base, quote string, r date.Range) (*twr.Series, error) {
	pair := base + quote
	series, err := c.store.LoadFxRates(ctx, pair, r)
	if err != nil {
		return nil, err
	}
	if series.Len() > 0 {
		return series, nil
	}
	series, err = c.remote.FetchFxSeries(ctx, base, quote, r)
	if err != nil {
		return nil, err
	}
	return series, c.store.SaveFxRates(ctx, pair, series)
}

// FetchSplits implements twr.Provider. An empty stored history is
// indistinguishable from a never-archived one, so it falls through to the
// remote provider.
func (c *Cached) FetchSplits(ctx context.Context, ticker string) (twr.SplitHistory, error) {
	history, err := c.store.LoadSplits(ctx, ticker)
	if err != nil {
		return nil, err
	}
	if len(history) > 0 {
		return history, nil
	}
	history, err = c.remote.FetchSplits(ctx, ticker)
	if err != nil {
		return nil, err
	}
	return history, c.store.SaveSplits(ctx, ticker, history)
}

// FetchCurrency implements twr.Provider.
func (c *Cached) FetchCurrency(ctx context.Context, ticker string) (string, error) {
	currency, err := c.store.LoadCurrency(ctx, ticker)
	if err != nil || currency != "" {
		return currency, err
	}
	currency, err = c.remote.FetchCurrency(ctx, ticker)
	if err != nil {
		return "", err
	}
	return currency, c.store.SaveCurrency(ctx, ticker, currency)
}

// Refresh fetches the full market data of the tickers from the remote
// provider, overwriting the archive.
func (c *Cached) Refresh(ctx context.Context, tickers []string, base, quote string, r date.Range) error {
	fetched, err := c.remote.FetchCloseSeries(ctx, tickers, r)
	if err != nil {
		return err
	}
	for ticker, series := range fetched {
		if err := c.store.SavePrices(ctx, ticker, series); err != nil {
			return err
		}
	}
	for _, ticker := range tickers {
		currency, err := c.remote.FetchCurrency(ctx, ticker)
		if err != nil {
			return err
		}
		if err := c.store.SaveCurrency(ctx, ticker, currency); err != nil {
			return err
		}
		history, err := c.remote.FetchSplits(ctx, ticker)
		if err != nil {
			return err
		}
		if err := c.store.SaveSplits(ctx, ticker, history); err != nil {
			return err
		}
	}
	fx, err := c.remote.FetchFxSeries(ctx, base, quote, r)
	if err != nil {
		return err
	}
	return c.store.SaveFxRates(ctx, base+quote, fx)
}
