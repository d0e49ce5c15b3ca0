package model

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"airbnb-eda/pkg/edaerr"
)

func TestFitTrendExactLine(t *testing.T) {
	start := time.Date(2016, 1, 4, 0, 0, 0, 0, time.UTC)
	var dates []time.Time
	var values []float64
	for i := 0; i < 30; i++ {
		dates = append(dates, start.AddDate(0, 0, i))
		values = append(values, 100+0.5*float64(i))
	}
	// noise the fit must skip
	dates = append(dates, time.Time{}, start)
	values = append(values, 1e6, math.NaN())

	trend, err := FitTrend(dates, values)
	require.NoError(t, err)

	assert.Equal(t, start, trend.Origin)
	assert.InDelta(t, 100, trend.Intercept, 1e-9)
	assert.InDelta(t, 0.5, trend.Slope, 1e-9)
	assert.InDelta(t, 1, trend.R2, 1e-9)
	assert.InDelta(t, 110, trend.Predict(start.AddDate(0, 0, 20)), 1e-9)
}

func TestFitTrendNeedsTwoDates(t *testing.T) {
	d := time.Date(2016, 1, 4, 0, 0, 0, 0, time.UTC)

	_, err := FitTrend([]time.Time{d, d}, []float64{1, 2})
	assert.True(t, errors.Is(err, edaerr.ErrInvalidArgument))

	_, err = FitTrend([]time.Time{d}, []float64{1, 2})
	assert.True(t, errors.Is(err, edaerr.ErrInvalidArgument))
}
