package date

import (
	"fmt"
	"time"
)

// Range represents an inclusive range of dates.
type Range struct{ From, To Date }

// NewRange returns a validated Range.
func NewRange(from, to Date) (Range, error) {
	if to.Before(from) {
		return Range{}, fmt.Errorf("invalid range: %s is after %s", from, to)
	}
	return Range{From: from, To: to}, nil
}

// Contains reports whether date is included in the range (boundaries included).
func (r Range) Contains(date Date) bool { return !date.Before(r.From) && !date.After(r.To) }

// Days returns the number of calendar days in the range, boundaries included.
func (r Range) Days() int {
	return int(r.To.time().Sub(r.From.time())/(24*time.Hour)) + 1
}

func (r Range) String() string { return fmt.Sprintf("[%s, %s]", r.From, r.To) }

// Today returns the current date. The valuation engine never calls this:
// "as of" days are always passed explicitly, so that a replay is
// reproducible. It exists for interactive callers that want a default.
func Today() Date { return New(time.Now().Date()) }
