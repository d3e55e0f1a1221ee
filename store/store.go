// Package store persists fetched market data in a local SQLite database, so
// a portfolio can be revalued offline and provider calls are only made for
// data not already on disk.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/etnz/twr"
	"github.com/etnz/twr/date"

	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite" // pure Go SQLite driver
)

// schema holds every table of the store. Decimals are stored as text to keep
// them exact; days are stored as "YYYY-MM-DD" so lexical order is date order.
const schema = `
CREATE TABLE IF NOT EXISTS securities (
	ticker   TEXT PRIMARY KEY,
	currency TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS prices (
	ticker TEXT NOT NULL,
	day    TEXT NOT NULL,
	close  TEXT NOT NULL,
	PRIMARY KEY (ticker, day)
);
CREATE TABLE IF NOT EXISTS fx_rates (
	pair TEXT NOT NULL,
	day  TEXT NOT NULL,
	rate TEXT NOT NULL,
	PRIMARY KEY (pair, day)
);
CREATE TABLE IF NOT EXISTS splits (
	ticker TEXT NOT NULL,
	day    TEXT NOT NULL,
	ratio  TEXT NOT NULL,
	PRIMARY KEY (ticker, day)
);
`

// Store is a SQLite-backed archive of market data.
type Store struct {
	db *sql.DB
}

// Open opens or creates the store at path. "file:" URIs pass through
// untouched so tests can use in-memory databases.
func Open(path string) (*Store, error) {
	if !strings.HasPrefix(path, "file:") {
		abs, err := filepath.Abs(path)
		if err != nil {
			return nil, fmt.Errorf("resolving store path: %w", err)
		}
		if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
			return nil, fmt.Errorf("creating store directory: %w", err)
		}
		path = abs
	}

	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	connStr := path + sep + "_pragma=journal_mode(WAL)" +
		"&_pragma=synchronous(NORMAL)" +
		"&_pragma=busy_timeout(5000)" +
		"&_pragma=foreign_keys(1)"

	db, err := sql.Open("sqlite", connStr)
	if err != nil {
		return nil, fmt.Errorf("opening store: %w", err)
	}
	// The driver serializes writes itself, a single connection avoids
	// SQLITE_BUSY between concurrent statements.
	db.SetMaxOpenConns(1)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging store: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating store schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the database.
func (s *Store) Close() error { return s.db.Close() }

// SavePrices upserts the close series of a ticker.
func (s *Store) SavePrices(ctx context.Context, ticker string, series *twr.Series) error {
	return s.saveSeries(ctx, "INSERT INTO prices (ticker, day, close) VALUES (?, ?, ?) ON CONFLICT (ticker, day) DO UPDATE SET close = excluded.close", ticker, series)
}

// LoadPrices returns the stored close series of a ticker over a range. The
// series may be empty.
func (s *Store) LoadPrices(ctx context.Context, ticker string, r date.Range) (*twr.Series, error) {
	return s.loadSeries(ctx, "SELECT day, close FROM prices WHERE ticker = ? AND day BETWEEN ? AND ? ORDER BY day", ticker, r)
}

// SaveFxRates upserts the rate series of a currency pair such as "USDCAD".
func (s *Store) SaveFxRates(ctx context.Context, pair string, series *twr.Series) error {
	return s.saveSeries(ctx, "INSERT INTO fx_rates (pair, day, rate) VALUES (?, ?, ?) ON CONFLICT (pair, day) DO UPDATE SET rate = excluded.rate", pair, series)
}

// LoadFxRates returns the stored rate series of a currency pair over a range.
func (s *Store) LoadFxRates(ctx context.Context, pair string, r date.Range) (*twr.Series, error) {
	return s.loadSeries(ctx, "SELECT day, rate FROM fx_rates WHERE pair = ? AND day BETWEEN ? AND ? ORDER BY day", pair, r)
}

func (s *Store) saveSeries(ctx context.Context, query, key string, series *twr.Series) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()
	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return err
	}
	defer stmt.Close()
	for day, value := range series.Values() {
		if _, err := stmt.ExecContext(ctx, key, day.String(), value.String()); err != nil {
			return fmt.Errorf("saving %s on %s: %w", key, day, err)
		}
	}
	return tx.Commit()
}

func (s *Store) loadSeries(ctx context.Context, query, key string, r date.Range) (*twr.Series, error) {
	rows, err := s.db.QueryContext(ctx, query, key, r.From.String(), r.To.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	series := &twr.Series{}
	for rows.Next() {
		var day, value string
		if err := rows.Scan(&day, &value); err != nil {
			return nil, err
		}
		on, err := date.Parse(day)
		if err != nil {
			return nil, fmt.Errorf("corrupt day %q for %s: %w", day, key, err)
		}
		dec, err := decimal.NewFromString(value)
		if err != nil {
			return nil, fmt.Errorf("corrupt value %q for %s on %s: %w", value, key, on, err)
		}
		series.Append(on, dec)
	}
	return series, rows.Err()
}

// SaveSplits replaces the stored split history of a ticker.
func (s *Store) SaveSplits(ctx context.Context, ticker string, history twr.SplitHistory) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()
	if _, err := tx.ExecContext(ctx, "DELETE FROM splits WHERE ticker = ?", ticker); err != nil {
		return err
	}
	for _, split := range history {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO splits (ticker, day, ratio) VALUES (?, ?, ?)",
			ticker, split.Date.String(), split.Ratio.String()); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// LoadSplits returns the stored split history of a ticker, which may be
// empty.
func (s *Store) LoadSplits(ctx context.Context, ticker string) (twr.SplitHistory, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT day, ratio FROM splits WHERE ticker = ? ORDER BY day", ticker)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var splits []twr.Split
	for rows.Next() {
		var day, ratio string
		if err := rows.Scan(&day, &ratio); err != nil {
			return nil, err
		}
		on, err := date.Parse(day)
		if err != nil {
			return nil, fmt.Errorf("corrupt split day %q for %s: %w", day, ticker, err)
		}
		dec, err := decimal.NewFromString(ratio)
		if err != nil {
			return nil, fmt.Errorf("corrupt split ratio %q for %s: %w", ratio, ticker, err)
		}
		splits = append(splits, twr.Split{Date: on, Ratio: dec})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return twr.NewSplitHistory(splits...), nil
}

// SaveCurrency upserts the trading currency of a ticker.
func (s *Store) SaveCurrency(ctx context.Context, ticker, currency string) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO securities (ticker, currency) VALUES (?, ?) ON CONFLICT (ticker) DO UPDATE SET currency = excluded.currency",
		ticker, currency)
	return err
}

// LoadCurrency returns the stored trading currency of a ticker, or "" when
// unknown.
func (s *Store) LoadCurrency(ctx context.Context, ticker string) (string, error) {
	var currency string
	err := s.db.QueryRowContext(ctx, "SELECT currency FROM securities WHERE ticker = ?", ticker).Scan(&currency)
	if err == sql.ErrNoRows {
		return "", nil
	}
	return currency, err
}
