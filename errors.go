package capeval

import "errors"

// Every failure in this package is fatal to the run it belongs to: there is no
// per-period recovery, and a run that fails resolves no partial result. The
// only retry anywhere is the oracle's bounded backward walk.
var (
	// ErrInvalidConfiguration reports buy and sell threshold lists of
	// different lengths, detected before any simulation starts.
	ErrInvalidConfiguration = errors.New("buy and sell thresholds must be of equal length")

	// ErrInvalidFormat reports a month label that is not "MM/YYYY".
	ErrInvalidFormat = errors.New("invalid month label")

	// ErrMalformedRecord reports a ratio-file line with the wrong field count
	// or a non-numeric ratio. Loading aborts on the first such line.
	ErrMalformedRecord = errors.New("malformed ratio record")

	// ErrPriceUnavailable reports that the oracle exhausted its retry budget
	// for a date without resolving a close price.
	ErrPriceUnavailable = errors.New("price unavailable")

	// ErrInvalidPrice reports a non-positive price reaching a buy. Well-formed
	// provider data never produces one, so this is an invariant violation.
	ErrInvalidPrice = errors.New("invalid price")

	// ErrNoData is returned by a Quoter when the market has no close for the
	// requested day (holiday, weekend, or an empty provider response).
	ErrNoData = errors.New("no close price for that day")
)
