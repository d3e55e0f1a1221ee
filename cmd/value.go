package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/twr/render"

	"github.com/google/subcommands"
)

type valueCmd struct {
	last int
}

func (*valueCmd) Name() string     { return "value" }
func (*valueCmd) Synopsis() string { return "display the daily portfolio value" }
func (*valueCmd) Usage() string {
	return `twr value [-last n]

  Replays the ledger against the archived market data and displays the daily
  portfolio value, cash and position breakdown, and deposits.
`
}

func (c *valueCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.last, "last", 0, "only display the last n days")
}

func (c *valueCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	snapshots, err := LoadSnapshots(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if c.last > 0 && c.last < len(snapshots) {
		snapshots = snapshots[len(snapshots)-c.last:]
	}
	printMarkdown(render.SnapshotsMarkdown(snapshots))
	return subcommands.ExitSuccess
}
