// Package export serializes comparison results for download.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"stock_compare/internal/feature/compare/domain"
	"stock_compare/internal/feature/compare/domain/entity"
)

// dateLayout is the date format used in CSV rows.
const dateLayout = "2006-01-02"

// WriteCSV writes the aligned normalized pair of a comparison as CSV:
// a header row "Date,<ticker1>,<ticker2>" followed by one row per
// shared date. Values keep full float precision so a parse of the
// output reproduces the original numbers exactly.
func WriteCSV(w io.Writer, c entity.Comparison) error {
	n1, n2 := c.Normalized1, c.Normalized2
	if n1.Len() != n2.Len() {
		return domain.ErrMisalignedSeries
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Date", c.Ticker1, c.Ticker2}); err != nil {
		return err
	}
	for i, p := range n1.Points {
		q := n2.Points[i]
		if !p.Time.Equal(q.Time) {
			return domain.ErrMisalignedSeries
		}
		row := []string{
			p.Time.Format(dateLayout),
			strconv.FormatFloat(p.Price, 'g', -1, 64),
			strconv.FormatFloat(q.Price, 'g', -1, 64),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ParseCSV reads a CSV produced by WriteCSV back into the two
// normalized series. Symbols are taken from the header row.
func ParseCSV(r io.Reader) (entity.NormalizedSeries, entity.NormalizedSeries, error) {
	var n1, n2 entity.NormalizedSeries

	cr := csv.NewReader(r)
	records, err := cr.ReadAll()
	if err != nil {
		return n1, n2, err
	}
	if len(records) == 0 || len(records[0]) != 3 {
		return n1, n2, fmt.Errorf("csv: malformed header: %w", domain.ErrInvalidInput)
	}

	n1.Symbol = records[0][1]
	n2.Symbol = records[0][2]
	for _, rec := range records[1:] {
		ts, err := time.Parse(dateLayout, rec[0])
		if err != nil {
			return n1, n2, fmt.Errorf("csv: parse date %q: %w", rec[0], err)
		}
		v1, err := strconv.ParseFloat(rec[1], 64)
		if err != nil {
			return n1, n2, fmt.Errorf("csv: parse value %q: %w", rec[1], err)
		}
		v2, err := strconv.ParseFloat(rec[2], 64)
		if err != nil {
			return n1, n2, fmt.Errorf("csv: parse value %q: %w", rec[2], err)
		}
		n1.Points = append(n1.Points, entity.PricePoint{Time: ts, Price: v1})
		n2.Points = append(n2.Points, entity.PricePoint{Time: ts, Price: v2})
	}
	return n1, n2, nil
}
