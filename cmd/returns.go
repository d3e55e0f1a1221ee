package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/twr"
	"github.com/etnz/twr/render"

	"github.com/google/subcommands"
)

type returnsCmd struct {
	last int
}

func (*returnsCmd) Name() string     { return "returns" }
func (*returnsCmd) Synopsis() string { return "display the cumulative compounding returns" }
func (*returnsCmd) Usage() string {
	return `twr returns [-last n]

  Displays the cumulative compounded return of each day since the first
  transaction, with external deposits backed out of each daily return.
`
}

func (c *returnsCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.last, "last", 0, "only display the last n days")
}

func (c *returnsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	snapshots, err := LoadSnapshots(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	returns := twr.CompoundingReturns(snapshots)
	if c.last > 0 && c.last < len(snapshots) {
		snapshots = snapshots[len(snapshots)-c.last:]
		returns = returns[len(returns)-c.last:]
	}
	printMarkdown(render.ReturnsMarkdown(snapshots, returns))
	return subcommands.ExitSuccess
}
