package stats

import "math"

// ClipOutliers clips x to its lower and upper percentiles and returns the
// clipped copy along with the bounds used. NaN values stay NaN.
func ClipOutliers(x []float64, lower, upper float64) (out []float64, lo, hi float64) {
	lo = Percentile(x, lower)
	hi = Percentile(x, upper)
	out = make([]float64, len(x))
	for i, v := range x {
		switch {
		case math.IsNaN(v):
			out[i] = v
		case v < lo:
			out[i] = lo
		case v > hi:
			out[i] = hi
		default:
			out[i] = v
		}
	}
	return out, lo, hi
}
