package twr

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestSplitHistory_Factor(t *testing.T) {
	history := NewSplitHistory(
		Split{Date: day("2024-06-10"), Ratio: decimal.NewFromInt(2)},
		Split{Date: day("2025-01-08"), Ratio: decimal.NewFromInt(3)},
	)

	testCases := []struct {
		name string
		on   string
		want int64
	}{
		{"before both splits", "2024-01-02", 6},
		{"between the splits", "2024-12-01", 3},
		{"on the second split day", "2025-01-08", 1},
		{"after the last split", "2025-03-01", 1},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := history.Factor(day(tc.on)); !got.Equal(Q(tc.want)) {
				t.Errorf("Factor(%s) = %s, want %d", tc.on, got, tc.want)
			}
		})
	}
}

func TestSplitHistory_Empty(t *testing.T) {
	var history SplitHistory
	if got := history.Factor(day("2025-01-06")); !got.Equal(Q(1)) {
		t.Errorf("Factor() = %s, want 1", got)
	}
}
