package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/twr"
	"github.com/etnz/twr/date"
	"github.com/etnz/twr/render"

	"github.com/google/subcommands"
)

type twrCmd struct {
	from string
	to   string
}

func (*twrCmd) Name() string     { return "twr" }
func (*twrCmd) Synopsis() string { return "compute the time-weighted return over a period" }
func (*twrCmd) Usage() string {
	return `twr twr [-from <date>] [-to <date>]

  Computes the time-weighted return between two tracked days. Both dates
  must fall on days the portfolio was valued; they default to the first and
  last tracked day.
`
}

func (c *twrCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.from, "from", "", "Period start (YYYY-MM-DD, defaults to the first tracked day)")
	f.StringVar(&c.to, "to", "", "Period end (YYYY-MM-DD, defaults to the last tracked day)")
}

func (c *twrCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	snapshots, err := LoadSnapshots(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if len(snapshots) == 0 {
		fmt.Fprintln(os.Stderr, "Error: nothing to report on")
		return subcommands.ExitFailure
	}

	from := snapshots[0].Date
	if c.from != "" {
		if from, err = date.Parse(c.from); err != nil {
			fmt.Fprintf(os.Stderr, "Error: invalid -from: %v\n", err)
			return subcommands.ExitUsageError
		}
	}
	to := snapshots[len(snapshots)-1].Date
	if c.to != "" {
		if to, err = date.Parse(c.to); err != nil {
			fmt.Fprintf(os.Stderr, "Error: invalid -to: %v\n", err)
			return subcommands.ExitUsageError
		}
	}

	value, err := twr.TimeWeightedReturn(snapshots, from, to)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(render.TwrMarkdown(from, to, value))
	return subcommands.ExitSuccess
}
