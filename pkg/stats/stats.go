package stats

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Finite returns the values of x that are neither NaN nor infinite.
func Finite(x []float64) []float64 {
	out := make([]float64, 0, len(x))
	for _, v := range x {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			out = append(out, v)
		}
	}
	return out
}

// Mean computes the average of the finite values in x. It returns NaN when
// there are none.
func Mean(x []float64) float64 {
	vals := Finite(x)
	if len(vals) == 0 {
		return math.NaN()
	}
	return stat.Mean(vals, nil)
}

// MinMax returns the minimum and maximum finite values in x. Both are NaN
// when x holds no finite value.
func MinMax(x []float64) (float64, float64) {
	vals := Finite(x)
	if len(vals) == 0 {
		return math.NaN(), math.NaN()
	}
	lo, hi := vals[0], vals[0]
	for _, v := range vals[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi
}

// Percentile returns the p-th percentile (0 <= p <= 100) of the finite values
// in x, interpolating linearly between the closest ranks. NaN when x holds no
// finite value.
func Percentile(x []float64, p float64) float64 {
	vals := Finite(x)
	n := len(vals)
	if n == 0 {
		return math.NaN()
	}
	sort.Float64s(vals)
	if p <= 0 {
		return vals[0]
	}
	if p >= 100 {
		return vals[n-1]
	}
	rank := p / 100 * float64(n-1)
	lower := int(rank)
	upper := lower + 1
	weight := rank - float64(lower)
	if upper >= n {
		return vals[lower]
	}
	return vals[lower]*(1-weight) + vals[upper]*weight
}

// Median returns the 50th percentile of the finite values in x.
func Median(x []float64) float64 { return Percentile(x, 50) }
