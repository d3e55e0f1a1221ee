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

type chartCmd struct {
	output string
	kind   string
}

func (*chartCmd) Name() string     { return "chart" }
func (*chartCmd) Synopsis() string { return "render the portfolio value or returns as a PNG chart" }
func (*chartCmd) Usage() string {
	return `twr chart [-kind value|returns] [-o <file>]

  Renders the daily portfolio value (with cumulative deposits) or the
  cumulative compounding returns as a PNG line chart.
`
}

func (c *chartCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.output, "o", "portfolio.png", "Output PNG file")
	f.StringVar(&c.kind, "kind", "value", "Chart to render: value or returns")
}

func (c *chartCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	snapshots, err := LoadSnapshots(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	var png []byte
	switch c.kind {
	case "value":
		png, err = render.ValueChart(snapshots)
	case "returns":
		png, err = render.ReturnsChart(snapshots, twr.CompoundingReturns(snapshots), "Compounding Returns")
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown chart kind %q\n", c.kind)
		return subcommands.ExitUsageError
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	if err := os.WriteFile(c.output, png, 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Wrote %s\n", c.output)
	return subcommands.ExitSuccess
}
