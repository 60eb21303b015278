// Package entity defines the domain models for the compare feature.
package entity

import (
	"math"
	"time"

	"stock_compare/internal/feature/compare/domain"
)

// PricePoint is a single observation in a price series: the closing
// price of a symbol at the start of a monthly period.
type PricePoint struct {
	Time  time.Time // Timestamp for the start of this sampling period
	Price float64   // Closing price (adjusted close when available)
}

// PriceSeries is an ordered sequence of price points for one ticker
// symbol. Dates are strictly increasing and prices are finite and
// non-negative; use NewPriceSeries to get those invariants checked.
// A PriceSeries is never mutated after construction.
type PriceSeries struct {
	Symbol string       // Ticker symbol (e.g., "INFY.NS")
	Points []PricePoint // At least one point, ascending by Time
}

// NewPriceSeries validates raw fetched points and returns an immutable
// series. It fails with domain.ErrInvalidInput when the input is empty,
// contains a non-finite or negative price, or the dates are not
// strictly increasing.
func NewPriceSeries(symbol string, points []PricePoint) (PriceSeries, error) {
	if len(points) == 0 {
		return PriceSeries{}, domain.ErrInvalidInput
	}
	for i, p := range points {
		if math.IsNaN(p.Price) || math.IsInf(p.Price, 0) || p.Price < 0 {
			return PriceSeries{}, domain.ErrInvalidInput
		}
		if i > 0 && !points[i-1].Time.Before(p.Time) {
			return PriceSeries{}, domain.ErrInvalidInput
		}
	}
	return PriceSeries{Symbol: symbol, Points: points}, nil
}

// First returns the first observation of the series.
func (s PriceSeries) First() PricePoint { return s.Points[0] }

// Last returns the last observation of the series.
func (s PriceSeries) Last() PricePoint { return s.Points[len(s.Points)-1] }

// Len returns the number of observations.
func (s PriceSeries) Len() int { return len(s.Points) }

// NormalizedSeries is a PriceSeries rescaled so that its first value
// equals exactly 100. It shares the date index of its source.
type NormalizedSeries struct {
	Symbol string
	Points []PricePoint
}

// Len returns the number of observations.
func (s NormalizedSeries) Len() int { return len(s.Points) }

// DifferencePoint is the signed gap between two normalized series at
// one date. Positive values mean the first series outperformed.
type DifferencePoint struct {
	Time  time.Time
	Value float64
}

// DifferenceSeries is the pointwise difference of two normalized
// series over their shared date index (the outperformance chart).
type DifferenceSeries struct {
	Symbol1 string // series the difference is computed from
	Symbol2 string // series being subtracted
	Points  []DifferencePoint
}

// Metrics holds the summary statistics for one ticker. Both values are
// dimensionless ratios (0.12 = 12%); formatting is left to callers.
type Metrics struct {
	CAGR        float64 // compound annual growth rate
	MaxDrawdown float64 // worst peak-to-trough decline, <= 0
}

// Comparison is the full result of one comparison request. It is
// assembled once per request and discarded afterwards.
type Comparison struct {
	Ticker1     string
	Ticker2     string
	Normalized1 NormalizedSeries
	Normalized2 NormalizedSeries
	Difference  DifferenceSeries
	Metrics1    Metrics
	Metrics2    Metrics
}
