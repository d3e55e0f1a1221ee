package render

import (
	"errors"

	"github.com/etnz/twr"

	"github.com/vicanso/go-charts/v2"
)

// ValueChart renders the daily portfolio value and its cumulative deposits
// as a PNG line chart.
func ValueChart(snapshots []twr.Snapshot) ([]byte, error) {
	if len(snapshots) == 0 {
		return nil, errors.New("no snapshot to chart")
	}

	days := make([]string, 0, len(snapshots))
	values := make([]float64, 0, len(snapshots))
	deposits := make([]float64, 0, len(snapshots))
	for _, s := range snapshots {
		days = append(days, s.Date.String())
		values = append(values, s.Value.AsFloat())
		deposits = append(deposits, s.CumulativeDeposit.AsFloat())
	}

	painter, err := charts.LineRender([][]float64{values, deposits},
		charts.TitleTextOptionFunc("Portfolio Value"),
		charts.XAxisDataOptionFunc(days),
		charts.LegendLabelsOptionFunc([]string{"Value", "Deposits"}),
		charts.ThemeOptionFunc(charts.ThemeLight),
	)
	if err != nil {
		return nil, err
	}
	return painter.Bytes()
}

// ReturnsChart renders a percent return series as a PNG line chart.
func ReturnsChart(snapshots []twr.Snapshot, returns []twr.Percent, title string) ([]byte, error) {
	if len(snapshots) == 0 || len(returns) == 0 {
		return nil, errors.New("no return to chart")
	}

	days := make([]string, 0, len(returns))
	values := make([]float64, 0, len(returns))
	for i, r := range returns {
		if i >= len(snapshots) {
			break
		}
		days = append(days, snapshots[i].Date.String())
		values = append(values, float64(r))
	}

	painter, err := charts.LineRender([][]float64{values},
		charts.TitleTextOptionFunc(title),
		charts.XAxisDataOptionFunc(days),
		charts.ThemeOptionFunc(charts.ThemeLight),
	)
	if err != nil {
		return nil, err
	}
	return painter.Bytes()
}
