package date

import (
	"testing"
	"time"
)

func TestParse(t *testing.T) {
	testCases := []struct {
		in   string
		want Date
	}{
		{"2025-01-06", New(2025, time.January, 6)},
		{"2025-1-6", New(2025, time.January, 6)},
		{"2024-12-31", New(2024, time.December, 31)},
	}
	for _, tc := range testCases {
		got, err := Parse(tc.in)
		if err != nil {
			t.Errorf("Parse(%q) error = %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("Parse(%q) = %s, want %s", tc.in, got, tc.want)
		}
	}
	if _, err := Parse("06/01/2025"); err == nil {
		t.Error("Parse accepted a non ISO date")
	}
}

func TestParseMDY(t *testing.T) {
	got, err := ParseMDY("1/6/2025")
	if err != nil {
		t.Fatalf("ParseMDY() error = %v", err)
	}
	if want := New(2025, time.January, 6); got != want {
		t.Errorf("ParseMDY() = %s, want %s", got, want)
	}
	if _, err := ParseMDY("2025-01-06"); err == nil {
		t.Error("ParseMDY accepted an ISO date")
	}
}

func TestDate_Add(t *testing.T) {
	d := New(2025, time.January, 31)
	if got, want := d.Add(1), New(2025, time.February, 1); got != want {
		t.Errorf("Add(1) = %s, want %s", got, want)
	}
	if got, want := d.Add(-31), New(2024, time.December, 31); got != want {
		t.Errorf("Add(-31) = %s, want %s", got, want)
	}
}

func TestDate_Compare(t *testing.T) {
	a := New(2025, time.January, 6)
	b := New(2025, time.January, 7)
	if a.Compare(b) >= 0 || b.Compare(a) <= 0 || a.Compare(a) != 0 {
		t.Errorf("Compare is inconsistent: %d %d %d", a.Compare(b), b.Compare(a), a.Compare(a))
	}
}

func TestFromTime(t *testing.T) {
	// A close published at 21:00 UTC belongs to that same UTC day.
	instant := time.Date(2025, time.January, 6, 21, 0, 0, 0, time.UTC)
	if got, want := FromTime(instant), New(2025, time.January, 6); got != want {
		t.Errorf("FromTime() = %s, want %s", got, want)
	}
}
