package date

import (
	"testing"
	"time"
)

func TestNextBusinessDay(t *testing.T) {
	testCases := []struct {
		name string
		in   Date
		want Date
	}{
		{"monday stays", New(2025, time.January, 6), New(2025, time.January, 6)},
		{"friday stays", New(2025, time.January, 10), New(2025, time.January, 10)},
		{"saturday to monday", New(2025, time.January, 4), New(2025, time.January, 6)},
		{"sunday to monday", New(2025, time.January, 5), New(2025, time.January, 6)},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.in.NextBusinessDay(); got != tc.want {
				t.Errorf("NextBusinessDay(%s) = %s, want %s", tc.in, got, tc.want)
			}
		})
	}
}

func TestBusiness(t *testing.T) {
	r := Range{From: New(2025, time.January, 3), To: New(2025, time.January, 7)}

	var got []Date
	for d := range Business(r) {
		got = append(got, d)
	}
	// Friday the 3rd, skip the weekend, Monday the 6th, Tuesday the 7th.
	want := []Date{
		New(2025, time.January, 3),
		New(2025, time.January, 6),
		New(2025, time.January, 7),
	}
	if len(got) != len(want) {
		t.Fatalf("Business(%s) yielded %d days, want %d", r, len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("day %d = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestBusiness_StartsOnWeekend(t *testing.T) {
	r := Range{From: New(2025, time.January, 4), To: New(2025, time.January, 6)}
	for d := range Business(r) {
		if got, want := d, New(2025, time.January, 6); got != want {
			t.Fatalf("first day = %s, want %s", got, want)
		}
		break
	}
}

func TestBusiness_Restartable(t *testing.T) {
	r := Range{From: New(2025, time.January, 6), To: New(2025, time.January, 8)}
	seq := Business(r)

	count := func() (n int) {
		for range seq {
			n++
		}
		return n
	}
	if first, second := count(), count(); first != second || first != 3 {
		t.Errorf("two iterations yielded %d then %d days, want 3 and 3", first, second)
	}
}
