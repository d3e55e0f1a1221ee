package twr

import "errors"

// Error kinds surfaced by the valuation engine. Callers test for them with
// errors.Is; the engine wraps each with the security, date or range that
// triggered it.
var (
	// ErrDataUnavailable reports a security with no price data at all in the
	// requested range. It aborts the market load.
	ErrDataUnavailable = errors.New("no price data available")

	// ErrNoPriorPrice reports a forward-fill lookup with no anchor: the
	// requested date precedes the first known quote. It aborts the replay.
	ErrNoPriorPrice = errors.New("no price on or before date")

	// ErrUnknownSecurity reports a transaction referencing a security the
	// market store never loaded. It aborts the replay.
	ErrUnknownSecurity = errors.New("unknown security")

	// ErrOutOfRange reports a return query with bounds outside the tracked
	// date range. It is returned to the caller; the snapshot series is intact.
	ErrOutOfRange = errors.New("date out of tracked range")

	// ErrMisalignedDate reports a return query bound that does not land on a
	// tracked day. Period boundaries must be unambiguous, so the query fails
	// closed instead of snapping to a neighbour.
	ErrMisalignedDate = errors.New("date does not land on a tracked day")
)
