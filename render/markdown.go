// Package render formats valuation results as markdown documents and PNG
// charts for the command line tool.
package render

import (
	"bytes"
	"fmt"

	"github.com/etnz/twr"

	md "github.com/nao1215/markdown"
)

// SnapshotsMarkdown renders the daily snapshot series as a markdown table.
func SnapshotsMarkdown(snapshots []twr.Snapshot) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Portfolio Value")
	if len(snapshots) > 0 {
		doc.PlainTextf("From %s to %s.", snapshots[0].Date, snapshots[len(snapshots)-1].Date)
	}

	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
		},
		Header: []string{"Date", "Cash", "Positions", "Total", "Net Deposit", "Cum. Deposit"},
		Rows:   [][]string{},
	}
	for _, s := range snapshots {
		table.Rows = append(table.Rows, []string{
			s.Date.String(),
			s.Cash.String(),
			s.Positions.String(),
			s.Value.String(),
			s.NetDeposit.SignedString(),
			s.CumulativeDeposit.String(),
		})
	}
	doc.Table(table)

	return doc.String()
}

// ReturnsMarkdown renders the cumulative compounding return of each day as a
// markdown table.
func ReturnsMarkdown(snapshots []twr.Snapshot, returns []twr.Percent) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Compounding Returns")

	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignRight,
			md.AlignRight,
		},
		Header: []string{"Date", "Value", "Return"},
		Rows:   [][]string{},
	}
	for i, s := range snapshots {
		if i >= len(returns) {
			break
		}
		table.Rows = append(table.Rows, []string{
			s.Date.String(),
			s.Value.String(),
			returns[i].SignedString(),
		})
	}
	doc.Table(table)

	return doc.String()
}

// TwrMarkdown renders a time-weighted return figure over a period.
func TwrMarkdown(from, to fmt.Stringer, value twr.Percent) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Time-Weighted Return")
	doc.Table(md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
		Header:    []string{"Period", "Return"},
		Rows: [][]string{
			{fmt.Sprintf("%s to %s", from, to), value.SignedString()},
		},
	})

	return doc.String()
}
