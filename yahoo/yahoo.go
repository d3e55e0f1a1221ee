// Package yahoo implements the market data provider on top of the Yahoo
// Finance chart API. Responses are cached on disk until the end of the day,
// and per-security metadata (currency, splits) is memoized in process.
package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/etnz/twr"
	"github.com/etnz/twr/date"

	"github.com/PaesslerAG/jsonpath"
	"github.com/patrickmn/go-cache"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// DefaultURL is the production chart API endpoint.
const DefaultURL = "https://query1.finance.yahoo.com"

// Client fetches close prices, FX rates, currencies and split events from
// the Yahoo Finance chart API. It implements twr.Provider.
type Client struct {
	base string
	http *http.Client
	memo *cache.Cache
}

var _ twr.Provider = (*Client)(nil)

// NewClient returns a client against the production endpoint.
func NewClient() *Client { return NewClientAt(DefaultURL) }

// NewClientAt returns a client against a custom endpoint, for tests.
func NewClientAt(base string) *Client {
	return &Client{
		base: base,
		http: daily(),
		memo: cache.New(15*time.Minute, 30*time.Minute),
	}
}

// chartResp is the subset of the chart API response the provider reads.
// Splits and currency are extracted by jsonpath from the raw decode instead,
// because their shape varies across symbols.
type chartResp struct {
	Chart struct {
		Result []struct {
			Meta struct {
				Currency string `json:"currency"`
			} `json:"meta"`
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Close []float64 `json:"close"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error any `json:"error"`
	} `json:"chart"`
}

func (c *Client) chartURL(symbol string, r date.Range) string {
	// period2 is exclusive, extend by a day to include the range end.
	return fmt.Sprintf("%s/v8/finance/chart/%s?period1=%d&period2=%d&interval=1d&events=splits",
		c.base, url.PathEscape(symbol), r.From.Unix(), r.To.Add(1).Unix())
}

// fetchChart downloads and decodes the daily chart of a symbol.
func (c *Client) fetchChart(ctx context.Context, symbol string, r date.Range) (*chartResp, []byte, error) {
	addr := c.chartURL(symbol, r)
	body, err := wget(ctx, c.http, addr)
	if err != nil {
		return nil, nil, fmt.Errorf("fetching chart of %q: %w", symbol, err)
	}
	var resp chartResp
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, nil, fmt.Errorf("decoding chart of %q: %w", symbol, err)
	}
	if len(resp.Chart.Result) == 0 {
		return nil, nil, fmt.Errorf("chart of %q: %w", symbol, twr.ErrDataUnavailable)
	}
	return &resp, body, nil
}

// series converts the chart bars into a daily close series, dropping the
// null bars Yahoo emits for halted days.
func (c *Client) series(resp *chartResp) *twr.Series {
	s := &twr.Series{}
	result := resp.Chart.Result[0]
	closes := []float64{}
	if len(result.Indicators.Quote) > 0 {
		closes = result.Indicators.Quote[0].Close
	}
	for i, ts := range result.Timestamp {
		if i >= len(closes) || closes[i] == 0 {
			continue
		}
		s.Append(date.FromTime(time.Unix(ts, 0)), decimal.NewFromFloat(closes[i]))
	}
	return s
}

// FetchCloseSeries implements twr.Provider.
func (c *Client) FetchCloseSeries(ctx context.Context, tickers []string, r date.Range) (map[string]*twr.Series, error) {
	all := make(map[string]*twr.Series, len(tickers))
	for _, ticker := range tickers {
		resp, _, err := c.fetchChart(ctx, ticker, r)
		if err != nil {
			return nil, err
		}
		s := c.series(resp)
		log.Debug().Str("ticker", ticker).Int("days", s.Len()).Msg("close series loaded")
		all[ticker] = s
	}
	return all, nil
}

// FetchFxSeries implements twr.Provider. The pair is quoted as the value of
// 1 unit of base in quote, using Yahoo's "BASEQUOTE=X" symbols.
func (c *Client) FetchFxSeries(ctx context.Context, base, quote string, r date.Range) (*twr.Series, error) {
	resp, _, err := c.fetchChart(ctx, base+quote+"=X", r)
	if err != nil {
		return nil, err
	}
	return c.series(resp), nil
}

// FetchCurrency implements twr.Provider.
func (c *Client) FetchCurrency(ctx context.Context, ticker string) (string, error) {
	key := "currency:" + ticker
	if v, ok := c.memo.Get(key); ok {
		return v.(string), nil
	}
	// A five day window is enough to get the metadata.
	r, _ := date.NewRange(date.Today().Add(-5), date.Today())
	_, body, err := c.fetchChart(ctx, ticker, r)
	if err != nil {
		return "", err
	}
	var jobj any
	if err := json.Unmarshal(body, &jobj); err != nil {
		return "", err
	}
	jval, err := jsonpath.Get("$.chart.result[0].meta.currency", jobj)
	if err != nil {
		return "", fmt.Errorf("reading currency of %q: %w", ticker, err)
	}
	if jlist, ok := jval.([]any); ok && len(jlist) > 0 {
		jval = jlist[0]
	}
	currency, ok := jval.(string)
	if !ok {
		return "", fmt.Errorf("reading currency of %q: not a string: %v", ticker, jval)
	}
	c.memo.Set(key, currency, cache.DefaultExpiration)
	return currency, nil
}

// FetchSplits implements twr.Provider. It queries the full listed history of
// the ticker, since a split long before the requested range still adjusts
// today's share counts.
func (c *Client) FetchSplits(ctx context.Context, ticker string) (twr.SplitHistory, error) {
	key := "splits:" + ticker
	if v, ok := c.memo.Get(key); ok {
		return v.(twr.SplitHistory), nil
	}
	r, _ := date.NewRange(date.New(1970, time.January, 1), date.Today())
	_, body, err := c.fetchChart(ctx, ticker, r)
	if err != nil {
		return nil, err
	}
	var jobj any
	if err := json.Unmarshal(body, &jobj); err != nil {
		return nil, err
	}
	// events.splits is a map keyed by the event timestamp.
	jval, err := jsonpath.Get("$.chart.result[0].events.splits", jobj)
	if err != nil {
		// No events block means the security never split.
		c.memo.Set(key, twr.SplitHistory(nil), cache.DefaultExpiration)
		return nil, nil
	}
	events, ok := jval.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("reading splits of %q: unexpected shape %T", ticker, jval)
	}

	var splits []twr.Split
	for _, jevent := range events {
		event, ok := jevent.(map[string]any)
		if !ok {
			continue
		}
		ts, ok := event["date"].(float64)
		if !ok {
			continue
		}
		numerator, _ := event["numerator"].(float64)
		denominator, _ := event["denominator"].(float64)
		if numerator == 0 || denominator == 0 {
			continue
		}
		splits = append(splits, twr.Split{
			Date:  date.FromTime(time.Unix(int64(ts), 0)),
			Ratio: decimal.NewFromFloat(numerator).Div(decimal.NewFromFloat(denominator)),
		})
	}
	history := twr.NewSplitHistory(splits...)
	log.Debug().Str("ticker", ticker).Int("splits", len(history)).Msg("split history loaded")
	c.memo.Set(key, history, cache.DefaultExpiration)
	return history, nil
}
