package date

import (
	"iter"
	"time"

	"github.com/rs/zerolog/log"
)

// IsBusinessDay reports whether d falls Monday through Friday.
//
// Market holidays are not modeled here: a holiday simply has no quote, and
// price lookups forward-fill over it.
func (d Date) IsBusinessDay() bool {
	wd := d.Weekday()
	return wd != time.Saturday && wd != time.Sunday
}

// NextBusinessDay returns d if it is a business day, otherwise the next
// Monday.
func (d Date) NextBusinessDay() Date {
	for !d.IsBusinessDay() {
		d = d.Add(1)
	}
	return d
}

// Business returns a lazy, restartable sequence of the business days in r,
// both endpoints included. If r.From is not a business day the sequence
// starts on the next business day.
//
// The sequence is finite and strictly increasing; iterating it twice yields
// the same days.
func Business(r Range) iter.Seq[Date] {
	if shifted := r.From.NextBusinessDay(); shifted != r.From {
		log.Warn().
			Stringer("from", r.From).
			Stringer("to", shifted).
			Msg("range starts on a non-business day, starting later")
	}
	return func(yield func(Date) bool) {
		for d := r.From.NextBusinessDay(); !d.After(r.To); d = d.Add(1).NextBusinessDay() {
			if !yield(d) {
				return
			}
		}
	}
}
