package dataprep

import (
	"math"
	"strings"

	"airbnb-eda/pkg/data"
	"airbnb-eda/pkg/edaerr"
	"airbnb-eda/pkg/stats"
)

// Strategy picks the value that replaces nulls in a numeric column.
type Strategy string

const (
	ImputeMean     Strategy = "mean"
	ImputeMedian   Strategy = "median"
	ImputeConstant Strategy = "constant"
)

// ParseStrategy converts "mean", "median" or "constant" to a Strategy.
func ParseStrategy(s string) (Strategy, error) {
	switch st := Strategy(strings.ToLower(strings.TrimSpace(s))); st {
	case ImputeMean, ImputeMedian, ImputeConstant:
		return st, nil
	default:
		return "", edaerr.InvalidArgument("ParseStrategy", "unknown imputation strategy %q", s)
	}
}

// Impute returns a copy of a numeric column with every null replaced. The
// constant is used only by ImputeConstant. A column with no value at all is
// returned unchanged by the mean and median strategies.
func Impute(col *data.Column, strategy Strategy, constant float64) (*data.Column, error) {
	if col.Kind() != data.Numeric {
		return nil, edaerr.InvalidArgument("Impute", "column %q is %s, not numeric", col.Name(), col.Kind())
	}

	values := col.Floats()
	var fill float64
	switch strategy {
	case ImputeMean:
		fill = stats.Mean(values)
	case ImputeMedian:
		fill = stats.Median(values)
	case ImputeConstant:
		fill = constant
	default:
		return nil, edaerr.InvalidArgument("Impute", "unknown imputation strategy %q", string(strategy))
	}

	for i, v := range values {
		if math.IsNaN(v) {
			values[i] = fill
		}
	}
	return data.NewNumeric(col.Name(), values), nil
}

// ClipOutliers returns a copy of a numeric column with values outside the
// lower and upper percentiles pinned to those percentiles.
func ClipOutliers(col *data.Column, lower, upper float64) (*data.Column, error) {
	if col.Kind() != data.Numeric {
		return nil, edaerr.InvalidArgument("ClipOutliers", "column %q is %s, not numeric", col.Name(), col.Kind())
	}
	if lower < 0 || upper > 100 || lower > upper {
		return nil, edaerr.InvalidArgument("ClipOutliers",
			"percentiles must satisfy 0 <= lower <= upper <= 100, got %v and %v", lower, upper)
	}
	clipped, _, _ := stats.ClipOutliers(col.Floats(), lower, upper)
	return data.NewNumeric(col.Name(), clipped), nil
}
