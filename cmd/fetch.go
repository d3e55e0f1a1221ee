package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/twr/date"

	"github.com/google/subcommands"
)

type fetchCmd struct{}

func (*fetchCmd) Name() string     { return "fetch" }
func (*fetchCmd) Synopsis() string { return "download market data for every security in the ledger" }
func (*fetchCmd) Usage() string {
	return `twr fetch

  Downloads close prices, currencies, split histories and FX rates for every
  security referenced by the ledger, from its first transaction to today, and
  archives them in the local store. Later commands run from the archive.
`
}

func (c *fetchCmd) SetFlags(f *flag.FlagSet) {}

func (c *fetchCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ledger, err := DecodeLedger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if ledger.Len() == 0 {
		fmt.Fprintf(os.Stderr, "Error: ledger %q has no transaction\n", *ledgerFile)
		return subcommands.ExitFailure
	}
	provider, archive, err := OpenProvider()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer archive.Close()

	r, err := date.NewRange(ledger.OldestTransactionDate(), date.Today())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := provider.Refresh(ctx, ledger.Securities(), *foreign, *reporting, r); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Archived market data for %d securities over %s in %s\n",
		len(ledger.Securities()), r, *storeFile)
	return subcommands.ExitSuccess
}
