package twr

import (
	"fmt"
	"slices"

	"github.com/etnz/twr/date"
)

// DailyReturns computes the one-day return of each snapshot, as a fraction.
// The first day has no predecessor and is 0 by convention. External flows
// are removed from the numerator so a deposit does not read as a gain.
func DailyReturns(snapshots []Snapshot) []float64 {
	returns := make([]float64, len(snapshots))
	for i := 1; i < len(snapshots); i++ {
		previous := snapshots[i-1].Value.AsFloat()
		if previous == 0 {
			continue
		}
		gain := snapshots[i].Value.AsFloat() - previous - snapshots[i].NetDeposit.AsFloat()
		returns[i] = gain / previous
	}
	return returns
}

// CompoundingReturns computes the cumulative compounded return of each
// snapshot since the start of the series, chaining the daily returns.
func CompoundingReturns(snapshots []Snapshot) []Percent {
	daily := DailyReturns(snapshots)
	cumulative := make([]Percent, len(daily))
	product := 1.0
	for i, r := range daily {
		product *= 1 + r
		cumulative[i] = Percent(100 * (product - 1))
	}
	return cumulative
}

// snapshotIndex locates a period boundary in the series. A date outside the
// tracked span fails with ErrOutOfRange; a date inside the span that does
// not land on a tracked day fails with ErrMisalignedDate, never snapping to
// a neighbour.
func snapshotIndex(snapshots []Snapshot, day date.Date) (int, error) {
	if len(snapshots) == 0 {
		return 0, fmt.Errorf("%s: empty series: %w", day, ErrOutOfRange)
	}
	if day.Before(snapshots[0].Date) || day.After(snapshots[len(snapshots)-1].Date) {
		return 0, fmt.Errorf("%s not in [%s, %s]: %w",
			day, snapshots[0].Date, snapshots[len(snapshots)-1].Date, ErrOutOfRange)
	}
	i, found := slices.BinarySearchFunc(snapshots, day, func(s Snapshot, d date.Date) int {
		return s.Date.Compare(d)
	})
	if !found {
		return 0, fmt.Errorf("%s: %w", day, ErrMisalignedDate)
	}
	return i, nil
}

// TimeWeightedReturns computes, for each day of the period, the
// time-weighted return since the period start: the growth of the portfolio
// with every external flow backed out of the denominator, so deposits and
// withdrawals neither inflate nor deflate it.
//
// Both bounds must land exactly on tracked days. The result holds one
// Percent per day of [from, to]; the first entry is always 0.
func TimeWeightedReturns(snapshots []Snapshot, from, to date.Date) ([]Percent, error) {
	start, err := snapshotIndex(snapshots, from)
	if err != nil {
		return nil, err
	}
	end, err := snapshotIndex(snapshots, to)
	if err != nil {
		return nil, err
	}
	if end < start {
		return nil, fmt.Errorf("%s after %s: %w", from, to, ErrOutOfRange)
	}

	base := snapshots[start].Value.AsFloat() - snapshots[start].CumulativeDeposit.AsFloat()
	returns := make([]Percent, 0, end-start+1)
	for i := start; i <= end; i++ {
		invested := base + snapshots[i].CumulativeDeposit.AsFloat()
		if invested == 0 {
			returns = append(returns, 0)
			continue
		}
		returns = append(returns, Percent(100*(snapshots[i].Value.AsFloat()/invested-1)))
	}
	return returns, nil
}

// TimeWeightedReturn computes the time-weighted return of the whole period
// [from, to] as a single figure.
func TimeWeightedReturn(snapshots []Snapshot, from, to date.Date) (Percent, error) {
	series, err := TimeWeightedReturns(snapshots, from, to)
	if err != nil {
		return 0, err
	}
	return series[len(series)-1], nil
}
