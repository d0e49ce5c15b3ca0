package dataprep

import (
	"log/slog"

	"airbnb-eda/pkg/data"
	"airbnb-eda/pkg/edaerr"
)

// Default cardinality bounds for DropCols.
const (
	DefaultMaxUnique = 50
	DefaultMinUnique = 2
)

// ColumnFilter drops text columns whose cardinality falls outside
// [MinUnique, MaxUnique]. Numeric and date columns are always kept.
type ColumnFilter struct {
	MaxUnique int
	MinUnique int
	Logger    *slog.Logger
}

// NewColumnFilter returns a filter with the default bounds.
func NewColumnFilter(logger *slog.Logger) *ColumnFilter {
	if logger == nil {
		logger = slog.Default()
	}
	return &ColumnFilter{
		MaxUnique: DefaultMaxUnique,
		MinUnique: DefaultMinUnique,
		Logger:    logger,
	}
}

// Validate checks the bounds.
func (f *ColumnFilter) Validate() error {
	if f.MaxUnique < f.MinUnique {
		return edaerr.InvalidArgument("DropCols",
			"maxUnique %d is less than minUnique %d", f.MaxUnique, f.MinUnique)
	}
	return nil
}

// ShouldDrop reports whether col falls outside the bounds.
func (f *ColumnFilter) ShouldDrop(col *data.Column) bool {
	return ShouldDrop(col, f.MaxUnique, f.MinUnique)
}

// Apply returns a new dataset without the low-information text columns.
// The input dataset is not modified.
func (f *ColumnFilter) Apply(ds *data.Dataset) (*data.Dataset, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}

	logger := f.Logger
	if logger == nil {
		logger = slog.Default()
	}

	dropped := 0
	out := ds.Select(func(c *data.Column) bool {
		if !f.ShouldDrop(c) {
			return true
		}
		dropped++
		logger.Debug("Dropping column",
			slog.String("column", c.Name()),
			slog.Int("cardinality", c.Cardinality()),
			slog.Int("max_unique", f.MaxUnique),
			slog.Int("min_unique", f.MinUnique))
		return false
	})

	logger.Info("Filtered low-information columns",
		slog.String("source", ds.Source()),
		slog.Int("columns_in", ds.NumCols()),
		slog.Int("columns_dropped", dropped))
	return out, nil
}

// ShouldDrop reports whether a text column's cardinality is above maxUnique
// or below minUnique. Non-text columns are never dropped.
func ShouldDrop(col *data.Column, maxUnique, minUnique int) bool {
	if col.Kind() != data.Text {
		return false
	}
	n := col.Cardinality()
	return n > maxUnique || n < minUnique
}

// DropCols drops every text column with more than maxUnique or fewer than
// minUnique distinct non-null values, preserving the order of the rest.
// Pass DefaultMaxUnique and DefaultMinUnique for the usual 50/2 bounds.
func DropCols(ds *data.Dataset, maxUnique, minUnique int) (*data.Dataset, error) {
	f := &ColumnFilter{MaxUnique: maxUnique, MinUnique: minUnique}
	return f.Apply(ds)
}

// DropMissing drops every column whose share of null rows exceeds
// maxNullRatio, which must lie in [0, 1].
func DropMissing(ds *data.Dataset, maxNullRatio float64, logger *slog.Logger) (*data.Dataset, error) {
	if maxNullRatio < 0 || maxNullRatio > 1 {
		return nil, edaerr.InvalidArgument("DropMissing", "maxNullRatio %v outside [0, 1]", maxNullRatio)
	}
	if logger == nil {
		logger = slog.Default()
	}
	if ds.NumRows() == 0 {
		return ds.Select(func(*data.Column) bool { return true }), nil
	}

	return ds.Select(func(c *data.Column) bool {
		ratio := float64(c.NullCount()) / float64(ds.NumRows())
		if ratio <= maxNullRatio {
			return true
		}
		logger.Debug("Dropping sparse column",
			slog.String("column", c.Name()),
			slog.Float64("missing_ratio", ratio))
		return false
	}), nil
}
