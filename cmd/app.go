// Package cmd implements the CLI application to value a portfolio and
// report its returns.
package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/twr"
	"github.com/etnz/twr/date"
	"github.com/etnz/twr/store"
	"github.com/etnz/twr/yahoo"

	"github.com/google/subcommands"
)

// Commands lists every subcommand of the application. A main package
// registers them on its commander.
var Commands = []subcommands.Command{
	&fetchCmd{},
	&valueCmd{},
	&returnsCmd{},
	&twrCmd{},
	&chartCmd{},
}

// As a CLI application with a short lived lifecycle, global flags are fine.

var (
	ledgerFile = flag.String("ledger-file", "transactions.tsv", "Path to the transaction export (tab separated)")
	storeFile  = flag.String("store-file", "market.db", "Path to the local market data archive")
	reporting  = flag.String("reporting-currency", "CAD", "Currency values are reported in")
	foreign    = flag.String("foreign-currency", "USD", "The foreign trading currency")
)

// DecodeLedger reads the transaction export named by -ledger-file.
func DecodeLedger() (*twr.Ledger, error) {
	f, err := os.Open(*ledgerFile)
	if err != nil {
		return nil, fmt.Errorf("opening ledger: %w", err)
	}
	defer f.Close()
	return twr.ImportTransactions(f)
}

// OpenProvider opens the local archive and wraps the Yahoo client with it.
// The caller closes the returned store.
func OpenProvider() (*store.Cached, *store.Store, error) {
	archive, err := store.Open(*storeFile)
	if err != nil {
		return nil, nil, err
	}
	return store.NewCached(yahoo.NewClient(), archive), archive, nil
}

// LoadSnapshots replays the full ledger and returns its daily snapshots.
func LoadSnapshots(ctx context.Context) ([]twr.Snapshot, error) {
	ledger, err := DecodeLedger()
	if err != nil {
		return nil, err
	}
	if ledger.Len() == 0 {
		return nil, fmt.Errorf("ledger %q has no transaction", *ledgerFile)
	}
	provider, archive, err := OpenProvider()
	if err != nil {
		return nil, err
	}
	defer archive.Close()

	r, err := date.NewRange(ledger.OldestTransactionDate(), date.Today())
	if err != nil {
		return nil, err
	}
	market, err := twr.LoadMarket(ctx, provider, ledger, r, *reporting, *foreign)
	if err != nil {
		return nil, err
	}
	return twr.Replay(ledger, market, r)
}
