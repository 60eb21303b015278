// Package analytics implements the pure time-series transforms behind
// the comparison dashboard: normalization to a common base, compound
// annual growth rate, maximum drawdown, and the pairwise difference of
// two normalized series. Every function is a stateless single-pass
// transform over an already-materialized series; failures are named
// domain errors and no function returns NaN or Inf as a disguised
// success value.
package analytics

import (
	"math"
	"time"

	"stock_compare/internal/feature/compare/domain"
	"stock_compare/internal/feature/compare/domain/entity"
)

const (
	// BaseIndex is the common base value every series is normalized to.
	BaseIndex = 100.0

	// daysPerYear is the calendar-day approximation used by CAGR.
	daysPerYear = 365.0

	// minElapsed guards CAGR against same-day data, where the elapsed
	// years would collapse to zero.
	minElapsed = 24 * time.Hour
)

// Normalize rescales a series so its first observation equals exactly
// BaseIndex: out[i] = s[i] / s[0] * 100, same date index. It fails with
// domain.ErrInvalidInput when the series is empty or its first value is
// not positive.
func Normalize(s entity.PriceSeries) (entity.NormalizedSeries, error) {
	if s.Len() == 0 {
		return entity.NormalizedSeries{}, domain.ErrInvalidInput
	}
	first := s.First().Price
	if first <= 0 {
		return entity.NormalizedSeries{}, domain.ErrInvalidInput
	}

	out := make([]entity.PricePoint, s.Len())
	for i, p := range s.Points {
		out[i] = entity.PricePoint{Time: p.Time, Price: p.Price / first * BaseIndex}
	}
	return entity.NormalizedSeries{Symbol: s.Symbol, Points: out}, nil
}

// CAGR returns the compound annual growth rate of a series:
// (last/first)^(1/years) - 1, with years measured in calendar days
// over 365. It fails with domain.ErrInsufficientData when the series
// has fewer than 2 points or spans less than one day, and with
// domain.ErrInvalidInput when the first price is not positive. The
// result is an unrounded ratio (0.12 = 12%).
func CAGR(s entity.PriceSeries) (float64, error) {
	if s.Len() < 2 {
		return 0, domain.ErrInsufficientData
	}
	first := s.First()
	last := s.Last()
	if first.Price <= 0 {
		return 0, domain.ErrInvalidInput
	}

	elapsed := last.Time.Sub(first.Time)
	if elapsed < minElapsed {
		return 0, domain.ErrInsufficientData
	}
	years := elapsed.Hours() / 24 / daysPerYear

	return math.Pow(last.Price/first.Price, 1/years) - 1, nil
}

// MaxDrawdown returns the worst peak-to-trough decline of a series as
// a non-positive fraction (0 = no decline, -0.35 = a 35% drop from a
// prior peak). The running peak at index i includes price[i] itself,
// so a new all-time high has zero drawdown. Fails with
// domain.ErrInsufficientData when the series has fewer than 2 points.
func MaxDrawdown(s entity.PriceSeries) (float64, error) {
	if s.Len() < 2 {
		return 0, domain.ErrInsufficientData
	}

	worst := 0.0
	peak := s.First().Price
	for _, p := range s.Points {
		if p.Price > peak {
			peak = p.Price
		}
		if peak > 0 {
			if dd := (p.Price - peak) / peak; dd < worst {
				worst = dd
			}
		}
	}
	return worst, nil
}

// Difference subtracts b from a pointwise over their shared date
// index. The inputs must already be aligned: any length or date
// mismatch fails with domain.ErrMisalignedSeries rather than silently
// truncating.
func Difference(a, b entity.NormalizedSeries) (entity.DifferenceSeries, error) {
	if a.Len() != b.Len() {
		return entity.DifferenceSeries{}, domain.ErrMisalignedSeries
	}

	out := make([]entity.DifferencePoint, a.Len())
	for i, p := range a.Points {
		q := b.Points[i]
		if !p.Time.Equal(q.Time) {
			return entity.DifferenceSeries{}, domain.ErrMisalignedSeries
		}
		out[i] = entity.DifferencePoint{Time: p.Time, Value: p.Price - q.Price}
	}
	return entity.DifferenceSeries{Symbol1: a.Symbol, Symbol2: b.Symbol, Points: out}, nil
}

// AlignIntersect restricts two series to the dates present in both,
// preserving order. Tickers with different listing histories end up
// compared over the window both actually traded. It fails with
// domain.ErrInsufficientData when fewer than 2 dates are shared.
func AlignIntersect(a, b entity.PriceSeries) (entity.PriceSeries, entity.PriceSeries, error) {
	var (
		outA = make([]entity.PricePoint, 0, a.Len())
		outB = make([]entity.PricePoint, 0, b.Len())
		i, j int
	)
	for i < a.Len() && j < b.Len() {
		pa, pb := a.Points[i], b.Points[j]
		switch {
		case pa.Time.Equal(pb.Time):
			outA = append(outA, pa)
			outB = append(outB, pb)
			i++
			j++
		case pa.Time.Before(pb.Time):
			i++
		default:
			j++
		}
	}
	if len(outA) < 2 {
		return entity.PriceSeries{}, entity.PriceSeries{}, domain.ErrInsufficientData
	}
	return entity.PriceSeries{Symbol: a.Symbol, Points: outA},
		entity.PriceSeries{Symbol: b.Symbol, Points: outB}, nil
}
