package twr

import (
	"slices"
	"sort"

	"github.com/etnz/twr/date"
	"github.com/shopspring/decimal"
)

// Split is a single corporate split event: on Date every share became Ratio
// shares (2 for a 2-for-1 split).
type Split struct {
	Date  date.Date
	Ratio decimal.Decimal
}

// SplitHistory is the chronological split history of one security.
type SplitHistory []Split

// NewSplitHistory returns the events sorted by date.
func NewSplitHistory(events ...Split) SplitHistory {
	h := SplitHistory(slices.Clone(events))
	sort.Slice(h, func(i, j int) bool { return h[i].Date.Before(h[j].Date) })
	return h
}

// Factor returns the backward split-adjustment factor as of 'on': the
// product of the ratios of every split occurring strictly after that day.
//
// Multiplying a share count recorded on 'on' by this factor expresses it in
// present-day units, so quantities from before a split stay comparable with
// split-adjusted prices. The factor is 1 on or after the last split, and
// grows (never shrinks) as 'on' moves further into the past.
func (h SplitHistory) Factor(on date.Date) Quantity {
	factor := decimal.NewFromInt(1)
	// Walk backward so the reverse-cumulative product stops at the first
	// split not after 'on'.
	for i := len(h) - 1; i >= 0; i-- {
		if !h[i].Date.After(on) {
			break
		}
		factor = factor.Mul(h[i].Ratio)
	}
	return Q(factor)
}
