package data

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"airbnb-eda/pkg/edaerr"
)

func TestColumnCardinality(t *testing.T) {
	d1 := time.Date(2016, 1, 4, 0, 0, 0, 0, time.UTC)
	d2 := time.Date(2016, 1, 5, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		col  *Column
		want int
	}{
		{"text ignores nulls", NewText("room", []string{"a", "b", "a", ""}, []bool{false, false, false, true}), 2},
		{"text empty string is a value", NewText("room", []string{"", "x"}, nil), 2},
		{"all null text", NewText("room", []string{"", ""}, []bool{true, true}), 0},
		{"numeric ignores NaN", NewNumeric("price", []float64{1, 1, 2, math.NaN()}), 2},
		{"dates", NewDate("date", []time.Time{d1, d2, d2, {}}, []bool{false, false, false, true}), 2},
		{"empty", NewText("room", nil, nil), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.col.Cardinality())
		})
	}
}

func TestColumnFormat(t *testing.T) {
	num := NewNumeric("price", []float64{1200.5, 85, math.NaN()})
	assert.Equal(t, []string{"1200.5", "85", ""}, num.Strings())
	assert.Equal(t, 1, num.NullCount())

	day := time.Date(2016, 1, 4, 0, 0, 0, 0, time.UTC)
	stamp := time.Date(2016, 1, 4, 13, 30, 0, 0, time.UTC)
	dates := NewDate("date", []time.Time{day, stamp, {}}, []bool{false, false, true})
	assert.Equal(t, "2016-01-04", dates.Format(0))
	assert.Equal(t, "2016-01-04T13:30:00Z", dates.Format(1))
	assert.Equal(t, "", dates.Format(2))
}

func TestColumnConstructorsCopyInput(t *testing.T) {
	values := []string{"a", "b"}
	c := NewText("x", values, nil)
	values[0] = "changed"

	assert.Equal(t, "a", c.Text(0))
}

func TestNewRejectsMismatchedColumns(t *testing.T) {
	_, err := New("", NewText("a", []string{"x"}, nil), NewNumeric("b", []float64{1, 2}))
	assert.True(t, errors.Is(err, edaerr.ErrInvalidArgument))

	_, err = New("", NewText("a", []string{"x"}, nil), NewText("a", []string{"y"}, nil))
	assert.True(t, errors.Is(err, edaerr.ErrInvalidArgument))
}

func TestDatasetReplaceReturnsCopy(t *testing.T) {
	ds, err := New("listings.csv",
		NewText("name", []string{"a", "b"}, nil),
		NewText("price", []string{"$1", "$2"}, nil),
	)
	require.NoError(t, err)

	replaced, err := ds.Replace(NewNumeric("price", []float64{1, 2}))
	require.NoError(t, err)

	orig, _ := ds.Column("price")
	assert.Equal(t, Text, orig.Kind())
	got, _ := replaced.Column("price")
	assert.Equal(t, Numeric, got.Kind())
	assert.Equal(t, []string{"name", "price"}, replaced.Names())

	_, err = ds.Replace(NewNumeric("missing", []float64{1, 2}))
	assert.True(t, errors.Is(err, edaerr.ErrInvalidArgument))

	_, err = ds.Replace(NewNumeric("price", []float64{1}))
	assert.True(t, errors.Is(err, edaerr.ErrInvalidArgument))
}

func TestDatasetSelectAndRecords(t *testing.T) {
	ds, err := New("",
		NewNumeric("id", []float64{1, 2}),
		NewText("name", []string{"a", ""}, []bool{false, true}),
		NewText("city", []string{"seattle", "seattle"}, nil),
	)
	require.NoError(t, err)

	sel := ds.Select(func(c *Column) bool { return c.Name() != "name" })
	assert.Equal(t, []string{"id", "city"}, sel.Names())
	assert.Equal(t, 2, sel.NumRows())
	_, ok := sel.Column("name")
	assert.False(t, ok)
	assert.Equal(t, 3, ds.NumCols())

	assert.Equal(t, [][]string{
		{"id", "name", "city"},
		{"1", "a", "seattle"},
		{"2", "", "seattle"},
	}, ds.Records())
}
