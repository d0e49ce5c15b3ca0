package stats

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"airbnb-eda/pkg/edaerr"
)

func TestPercentileLinearInterpolation(t *testing.T) {
	x := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}

	tests := []struct {
		p    float64
		want float64
	}{
		{0, 1},
		{50, 5.5},
		{94, 9.46},
		{100, 10},
		{-5, 1},
		{150, 10},
	}

	for _, tt := range tests {
		assert.InDelta(t, tt.want, Percentile(x, tt.p), 1e-9, "p=%v", tt.p)
	}
}

func TestPercentileIgnoresNaNAndDoesNotSortInput(t *testing.T) {
	x := []float64{3, math.NaN(), 1, 2}

	assert.Equal(t, 2.0, Percentile(x, 50))
	assert.Equal(t, 3.0, x[0])
	assert.True(t, math.IsNaN(Percentile(nil, 50)))
	assert.True(t, math.IsNaN(Percentile([]float64{math.NaN()}, 50)))
}

func TestMeanMinMax(t *testing.T) {
	x := []float64{4, math.NaN(), -2, 10, math.Inf(1)}

	assert.InDelta(t, 4.0, Mean(x), 1e-12)
	lo, hi := MinMax(x)
	assert.Equal(t, -2.0, lo)
	assert.Equal(t, 10.0, hi)
	assert.Equal(t, 4.0, Median(x))

	assert.True(t, math.IsNaN(Mean(nil)))
	lo, hi = MinMax(nil)
	assert.True(t, math.IsNaN(lo))
	assert.True(t, math.IsNaN(hi))
}

func TestAverageByDay(t *testing.T) {
	jan4 := time.Date(2016, 1, 4, 0, 0, 0, 0, time.UTC)
	jan5 := time.Date(2016, 1, 5, 0, 0, 0, 0, time.UTC)

	dates := []time.Time{jan5, jan4, jan4.Add(13 * time.Hour), jan5, jan4, {}}
	values := []float64{100, 80, 120, math.NaN(), 100, 999}

	got, err := AverageByDay(dates, values)
	require.NoError(t, err)

	assert.Equal(t, []DailyMean{
		{Day: jan4, Mean: 100, Count: 3},
		{Day: jan5, Mean: 100, Count: 1},
	}, got)

	days, means := Split(got)
	assert.Equal(t, []time.Time{jan4, jan5}, days)
	assert.Equal(t, []float64{100, 100}, means)
}

func TestAverageByDayLengthMismatch(t *testing.T) {
	_, err := AverageByDay([]time.Time{time.Now()}, nil)
	assert.True(t, errors.Is(err, edaerr.ErrInvalidArgument))
}

func TestClipOutliers(t *testing.T) {
	x := []float64{5, 1, math.NaN(), 3, 100}

	out, lo, hi := ClipOutliers(x, 25, 75)

	assert.InDelta(t, 2.5, lo, 1e-12)
	assert.InDelta(t, 28.75, hi, 1e-12)
	assert.InDeltaSlice(t, []float64{5, 2.5, 3, 28.75}, []float64{out[0], out[1], out[3], out[4]}, 1e-12)
	assert.True(t, math.IsNaN(out[2]))
	assert.Equal(t, 100.0, x[4])
}
