package model

import (
	"math"
	"time"

	"gonum.org/v1/gonum/stat"

	"airbnb-eda/pkg/edaerr"
)

const day = 24 * time.Hour

// LinearTrend is a least-squares line through a dated series,
// value = Intercept + Slope * days since Origin.
type LinearTrend struct {
	Origin    time.Time
	Intercept float64
	Slope     float64 // per day
	R2        float64
}

// FitTrend fits a straight line to values over dates. Pairs with a zero
// date or a NaN value are ignored; at least two distinct dates must remain.
func FitTrend(dates []time.Time, values []float64) (*LinearTrend, error) {
	if len(dates) != len(values) {
		return nil, edaerr.InvalidArgument("FitTrend", "got %d dates and %d values", len(dates), len(values))
	}

	var origin time.Time
	for i, d := range dates {
		if d.IsZero() || math.IsNaN(values[i]) {
			continue
		}
		if origin.IsZero() || d.Before(origin) {
			origin = d
		}
	}

	var xs, ys []float64
	distinct := make(map[float64]struct{})
	for i, d := range dates {
		if d.IsZero() || math.IsNaN(values[i]) {
			continue
		}
		x := float64(d.Sub(origin)) / float64(day)
		xs = append(xs, x)
		ys = append(ys, values[i])
		distinct[x] = struct{}{}
	}
	if len(distinct) < 2 {
		return nil, edaerr.InvalidArgument("FitTrend", "need at least two distinct dates, got %d", len(distinct))
	}

	alpha, beta := stat.LinearRegression(xs, ys, nil, false)
	return &LinearTrend{
		Origin:    origin,
		Intercept: alpha,
		Slope:     beta,
		R2:        stat.RSquared(xs, ys, nil, alpha, beta),
	}, nil
}

// Predict returns the trend value at t.
func (m *LinearTrend) Predict(t time.Time) float64 {
	return m.Intercept + m.Slope*float64(t.Sub(m.Origin))/float64(day)
}
