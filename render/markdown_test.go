package render

import (
	"strings"
	"testing"

	"github.com/etnz/twr"
	"github.com/etnz/twr/date"
)

func sampleSnapshots() []twr.Snapshot {
	cad := func(v float64) twr.Money { return twr.M(v, "CAD") }
	return []twr.Snapshot{
		{
			Date:              date.MustParse("2025-01-06"),
			Cash:              cad(500),
			Positions:         cad(500),
			Value:             cad(1000),
			NetDeposit:        cad(1000),
			CumulativeDeposit: cad(1000),
		},
		{
			Date:              date.MustParse("2025-01-07"),
			Cash:              cad(500),
			Positions:         cad(550),
			Value:             cad(1050),
			NetDeposit:        cad(0),
			CumulativeDeposit: cad(1000),
		},
	}
}

func TestSnapshotsMarkdown(t *testing.T) {
	doc := SnapshotsMarkdown(sampleSnapshots())

	for _, want := range []string{"Portfolio Value", "2025-01-06", "2025-01-07", "$1,050.00"} {
		if !strings.Contains(doc, want) {
			t.Errorf("SnapshotsMarkdown() misses %q:\n%s", want, doc)
		}
	}
}

func TestReturnsMarkdown(t *testing.T) {
	snapshots := sampleSnapshots()
	returns := twr.CompoundingReturns(snapshots)

	doc := ReturnsMarkdown(snapshots, returns)
	if !strings.Contains(doc, "+5.00%") {
		t.Errorf("ReturnsMarkdown() misses the +5.00%% gain:\n%s", doc)
	}
}

func TestValueChart(t *testing.T) {
	png, err := ValueChart(sampleSnapshots())
	if err != nil {
		t.Fatalf("ValueChart() error = %v", err)
	}
	// PNG magic header.
	if len(png) < 8 || string(png[1:4]) != "PNG" {
		t.Error("ValueChart() did not produce a PNG")
	}
}
