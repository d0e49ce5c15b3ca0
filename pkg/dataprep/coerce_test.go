package dataprep

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"airbnb-eda/pkg/data"
	"airbnb-eda/pkg/edaerr"
)

func TestParseCurrencyNumeric(t *testing.T) {
	col := data.NewText("price", []string{"$1,200.50", "$3%"}, nil)

	got, err := ParseCurrencyNumeric(col)
	require.NoError(t, err)

	assert.Equal(t, data.Numeric, got.Kind())
	assert.Equal(t, "price", got.Name())
	assert.Equal(t, []float64{1200.50, 3.0}, got.Floats())
	assert.Equal(t, data.Text, col.Kind(), "input column must be left alone")
}

func TestParseCurrencyNumericCharacterClass(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"$85.00", 85},
		{"1,000,000", 1e6},
		{"%$,12", 12},
		{" $42 ", 42},
		{"-$5", -5},
		{"96%", 96},
		{"+.5", 0.5},
		{"1.5e3", 1500},
		{"$7.", 7},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseCurrencyNumeric(data.NewText("v", []string{tt.in}, nil))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Float(0))
		})
	}
}

func TestParseCurrencyNumericRejectsResidualText(t *testing.T) {
	col := data.NewText("price", []string{"$12.5", "abc"}, nil)

	_, err := ParseCurrencyNumeric(col)
	require.Error(t, err)
	assert.True(t, errors.Is(err, edaerr.ErrParse))

	var e *edaerr.Error
	require.True(t, errors.As(err, &e))
	assert.Equal(t, 1, e.Row)
	assert.Equal(t, "abc", e.Value)
	assert.Equal(t, "price", e.Column)

	_, err = ParseCurrencyNumeric(data.NewText("price", []string{"$"}, nil))
	assert.True(t, errors.Is(err, edaerr.ErrParse))

	for _, raw := range []string{"0x1p4", "$0X10", "1_000", "1e", "12 34"} {
		_, err = ParseCurrencyNumeric(data.NewText("price", []string{raw}, nil))
		assert.True(t, errors.Is(err, edaerr.ErrParse), "%q should not parse", raw)
	}
}

func TestParseCurrencyNumericNullsAndKinds(t *testing.T) {
	col := data.NewText("price", []string{"$10", ""}, []bool{false, true})
	got, err := ParseCurrencyNumeric(col)
	require.NoError(t, err)
	assert.Equal(t, 10.0, got.Float(0))
	assert.True(t, math.IsNaN(got.Float(1)))
	assert.True(t, got.IsNull(1))

	num := data.NewNumeric("price", []float64{1, 2})
	same, err := ParseCurrencyNumeric(num)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2}, same.Floats())

	_, err = ParseCurrencyNumeric(data.NewDate("d", []time.Time{time.Now()}, nil))
	assert.True(t, errors.Is(err, edaerr.ErrInvalidArgument))
}

func TestParseCurrencyNumericPercentScale(t *testing.T) {
	col := data.NewText("host_response_rate", []string{"95%", "$3", "100%"}, nil)

	got, err := ParseCurrencyNumeric(col, WithPercentScale())
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{0.95, 3, 1}, got.Floats(), 1e-12)

	plain, err := ParseCurrencyNumeric(col)
	require.NoError(t, err)
	assert.Equal(t, []float64{95, 3, 100}, plain.Floats())
}

func TestParseDate(t *testing.T) {
	col := data.NewText("date", []string{"2016-01-04", "2016-01-05"}, nil)

	got, err := ParseDate(col)
	require.NoError(t, err)

	assert.Equal(t, data.Date, got.Kind())
	assert.Equal(t, []time.Time{
		time.Date(2016, 1, 4, 0, 0, 0, 0, time.UTC),
		time.Date(2016, 1, 5, 0, 0, 0, 0, time.UTC),
	}, got.Times())
}

func TestParseDateLayouts(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
	}{
		{"2016-01-04 13:45:00", time.Date(2016, 1, 4, 13, 45, 0, 0, time.UTC)},
		{"01/04/2016", time.Date(2016, 1, 4, 0, 0, 0, 0, time.UTC)},
		{"2016-01-04T13:45:00Z", time.Date(2016, 1, 4, 13, 45, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDate(data.NewText("d", []string{tt.in}, nil))
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got.Time(0)), "got %v", got.Time(0))
		})
	}
}

func TestParseDateErrors(t *testing.T) {
	_, err := ParseDate(data.NewText("date", []string{"not-a-date"}, nil))
	require.Error(t, err)
	assert.True(t, errors.Is(err, edaerr.ErrParse))

	_, err = ParseDate(data.NewNumeric("date", []float64{1}))
	assert.True(t, errors.Is(err, edaerr.ErrInvalidArgument))
}

func TestParseDateLenient(t *testing.T) {
	col := data.NewText("date", []string{"2016-01-04", "not-a-date", ""}, []bool{false, false, true})

	got, err := ParseDate(col, WithLenient())
	require.NoError(t, err)

	assert.False(t, got.IsNull(0))
	assert.True(t, got.IsNull(1))
	assert.True(t, got.IsNull(2))
	assert.Equal(t, 2, got.NullCount())
}

func TestParseDateKeepsZeroTime(t *testing.T) {
	col := data.NewText("date", []string{"0001-01-01", ""}, []bool{false, true})

	got, err := ParseDate(col)
	require.NoError(t, err)
	assert.False(t, got.IsNull(0))
	assert.True(t, got.Time(0).IsZero())
	assert.Equal(t, "0001-01-01", got.Format(0))
	assert.True(t, got.IsNull(1))

	again, err := ParseDate(got)
	require.NoError(t, err)
	assert.Equal(t, []bool{false, true}, again.Nulls())
}

func TestParseDateLocation(t *testing.T) {
	loc := time.FixedZone("PST", -8*3600)

	got, err := ParseDate(data.NewText("date", []string{"2016-01-04"}, nil), WithLocation(loc))
	require.NoError(t, err)
	assert.True(t, time.Date(2016, 1, 4, 0, 0, 0, 0, loc).Equal(got.Time(0)))
}
