// Package report summarises the columns of a dataset and exports the
// summary as CSV or as an Excel workbook.
package report

import (
	"math"
	"time"

	"airbnb-eda/pkg/data"
	"airbnb-eda/pkg/dataprep"
	"airbnb-eda/pkg/stats"
)

// ColumnProfile describes one column.
type ColumnProfile struct {
	Name        string
	Kind        data.Kind
	Rows        int
	Nulls       int
	Cardinality int

	// Numeric columns only; NaN otherwise.
	Min, Mean, Max float64

	// Date columns only; zero otherwise.
	Earliest, Latest time.Time

	// WouldDrop reports whether DropCols removes the column with the
	// bounds the profile was built with.
	WouldDrop bool
}

// NullRatio is the fraction of rows that are null.
func (p ColumnProfile) NullRatio() float64 {
	if p.Rows == 0 {
		return 0
	}
	return float64(p.Nulls) / float64(p.Rows)
}

// Profile summarises every column of ds in column order.
func Profile(ds *data.Dataset, maxUnique, minUnique int) []ColumnProfile {
	profiles := make([]ColumnProfile, 0, ds.NumCols())
	for _, col := range ds.Columns() {
		profiles = append(profiles, profileColumn(col, maxUnique, minUnique))
	}
	return profiles
}

func profileColumn(col *data.Column, maxUnique, minUnique int) ColumnProfile {
	p := ColumnProfile{
		Name:        col.Name(),
		Kind:        col.Kind(),
		Rows:        col.Len(),
		Nulls:       col.NullCount(),
		Cardinality: col.Cardinality(),
		Min:         math.NaN(),
		Mean:        math.NaN(),
		Max:         math.NaN(),
		WouldDrop:   dataprep.ShouldDrop(col, maxUnique, minUnique),
	}

	switch col.Kind() {
	case data.Numeric:
		values := col.Floats()
		p.Min, p.Max = stats.MinMax(values)
		p.Mean = stats.Mean(values)
	case data.Date:
		seen := false
		for i, t := range col.Times() {
			if col.IsNull(i) {
				continue
			}
			if !seen || t.Before(p.Earliest) {
				p.Earliest = t
			}
			if !seen || t.After(p.Latest) {
				p.Latest = t
			}
			seen = true
		}
	}
	return p
}
