package twr

import (
	"github.com/etnz/twr/date"

	"github.com/shopspring/decimal"
)

// CAD is a helper for tests to create reporting-currency money from const
func CAD(v float64) Money { return M(v, "CAD") }

// USD is a helper for tests to create foreign-currency money from const
func USD(v float64) Money { return M(v, "USD") }

// day is a helper for tests to parse a date from const
func day(s string) date.Date { return date.MustParse(s) }

// series builds a price series from alternating date strings and values.
func series(points ...any) *Series {
	s := &Series{}
	for i := 0; i < len(points); i += 2 {
		s.Append(day(points[i].(string)), decimal.NewFromFloat(points[i+1].(float64)))
	}
	return s
}

// cadMarket builds a CAD/USD market from per-ticker price series, with a
// constant FX rate over the span of the series.
func cadMarket(fx float64, fxDays []string, prices map[string]*Series) *Market {
	m := NewMarket("CAD", "USD")
	for ticker, s := range prices {
		currency := "CAD"
		if ticker == "SPY" {
			currency = "USD"
		}
		if err := m.Add(NewSecurity(ticker, currency, s, nil)); err != nil {
			panic(err)
		}
	}
	for _, d := range fxDays {
		m.SetFxRate(day(d), Q(fx))
	}
	return m
}
