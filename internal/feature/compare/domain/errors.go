// Package domain defines domain-level errors for the compare feature.
package domain

import "errors"

// Domain errors for comparison operations. Analytic failures are
// deterministic and are never retried; upper layers map them to
// user-visible messages with errors.Is.
var (
	// ErrNoDataReturned indicates that the market data provider returned
	// nothing for a ticker (unknown symbol, empty date range, outage).
	ErrNoDataReturned = errors.New("no data returned for ticker")

	// ErrInvalidInput indicates a malformed or degenerate series was
	// passed to an analytic function (empty, non-positive base price,
	// non-increasing dates).
	ErrInvalidInput = errors.New("invalid price series input")

	// ErrInsufficientData indicates a series that exists but is too
	// short (or spans too little time) to compute a meaningful metric.
	ErrInsufficientData = errors.New("insufficient data for metric")

	// ErrMisalignedSeries indicates two series intended for pairwise
	// combination do not share the same date index.
	ErrMisalignedSeries = errors.New("series date indices are misaligned")
)
