package twr

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestSeries_ValueAsOf(t *testing.T) {
	s := series("2025-01-06", 50.0, "2025-01-08", 55.0)

	testCases := []struct {
		name string
		day  string
		want float64
		ok   bool
	}{
		{"before first point", "2025-01-03", 0, false},
		{"on a point", "2025-01-06", 50, true},
		{"gap forward-fills", "2025-01-07", 50, true},
		{"on the later point", "2025-01-08", 55, true},
		{"after last point", "2025-02-01", 55, true},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := s.ValueAsOf(day(tc.day))
			if ok != tc.ok {
				t.Fatalf("ValueAsOf(%s) ok = %v, want %v", tc.day, ok, tc.ok)
			}
			if ok && !got.Equal(decimal.NewFromFloat(tc.want)) {
				t.Errorf("ValueAsOf(%s) = %s, want %v", tc.day, got, tc.want)
			}
		})
	}
}

func TestSeries_AppendKeepsOrder(t *testing.T) {
	s := series("2025-01-08", 55.0, "2025-01-06", 50.0)

	first, _ := s.First()
	last, _ := s.Last()
	if first != day("2025-01-06") || last != day("2025-01-08") {
		t.Errorf("series spans [%s, %s], want [2025-01-06, 2025-01-08]", first, last)
	}
}

func TestSeries_AppendOverwritesSameDay(t *testing.T) {
	s := series("2025-01-06", 50.0, "2025-01-06", 51.0)

	if s.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", s.Len())
	}
	got, _ := s.Get(day("2025-01-06"))
	if !got.Equal(decimal.NewFromFloat(51)) {
		t.Errorf("Get() = %s, want 51", got)
	}
}
