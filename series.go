package twr

import (
	"iter"
	"slices"
	"sort"

	"github.com/etnz/twr/date"
	"github.com/shopspring/decimal"
)

// Series stores a chronological series of decimal values, each associated
// with a specific date. Dates are unique and the series is always sorted, so
// lookups are binary searches rather than day-by-day backward scans.
type Series struct {
	days   []date.Date
	values []decimal.Decimal
}

// Len returns the number of points in the series.
func (s *Series) Len() int { return len(s.days) }

// First returns the earliest date and value in the series.
// If the series is empty, it returns zero values.
func (s *Series) First() (date.Date, decimal.Decimal) {
	if len(s.days) == 0 {
		return date.Date{}, decimal.Decimal{}
	}
	return s.days[0], s.values[0]
}

// Last returns the latest date and value in the series.
// If the series is empty, it returns zero values.
func (s *Series) Last() (date.Date, decimal.Decimal) {
	last := len(s.days) - 1
	if last < 0 {
		return date.Date{}, decimal.Decimal{}
	}
	return s.days[last], s.values[last]
}

// chronological is a private implementation to make this series chronologically sorted.
type chronological struct{ *Series }

func (s chronological) Len() int           { return len(s.days) }
func (s chronological) Less(i, j int) bool { return s.days[i].Before(s.days[j]) }
func (s chronological) Swap(i, j int) {
	s.days[i], s.days[j] = s.days[j], s.days[i]
	s.values[i], s.values[j] = s.values[j], s.values[i]
}

// Append adds a point to the series. An existing value at that date is
// overwritten: the last data wins.
func (s *Series) Append(on date.Date, v decimal.Decimal) *Series {
	if i := slices.Index(s.days, on); i >= 0 {
		s.values[i] = v
		return s
	}
	s.days, s.values = append(s.days, on), append(s.values, v)
	sort.Sort(chronological{s})
	return s
}

// Values returns an iterator over all date/value pairs in chronological order.
func (s *Series) Values() iter.Seq2[date.Date, decimal.Decimal] {
	return func(yield func(date.Date, decimal.Decimal) bool) {
		for i, on := range s.days {
			if !yield(on, s.values[i]) {
				return
			}
		}
	}
}

// Get returns the value exactly at 'day', if any.
func (s *Series) Get(day date.Date) (decimal.Decimal, bool) {
	if i := slices.Index(s.days, day); i >= 0 {
		return s.values[i], true
	}
	return decimal.Decimal{}, false
}

// ValueAsOf returns the value on a given day, or the most recent value
// before it (forward-fill). The second result is false when no value exists
// on or before the day: such a lookup has no anchor and is undefined.
func (s *Series) ValueAsOf(day date.Date) (decimal.Decimal, bool) {
	// The days slice is sorted, so we can use binary search.
	i, found := slices.BinarySearchFunc(s.days, day, date.Date.Compare)
	if found {
		return s.values[i], true
	}
	// Not found. `i` is the index where `day` would be inserted, so the
	// most recent prior value is at `i-1`.
	if i == 0 {
		return decimal.Decimal{}, false
	}
	return s.values[i-1], true
}
