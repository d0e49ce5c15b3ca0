package report

import (
	"bytes"
	"encoding/csv"
	"math"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"airbnb-eda/pkg/data"
)

func sampleDataset(t *testing.T) *data.Dataset {
	t.Helper()
	ds, err := data.New("listings.csv",
		data.NewText("city", []string{"seattle", "seattle", "seattle"}, nil),
		data.NewText("room_type", []string{"home", "room", ""}, []bool{false, false, true}),
		data.NewNumeric("price", []float64{100, math.NaN(), 50}),
		data.NewDate("last_review", []time.Time{
			time.Date(2016, 1, 4, 0, 0, 0, 0, time.UTC),
			{},
			time.Date(2015, 6, 1, 0, 0, 0, 0, time.UTC),
		}, []bool{false, true, false}),
	)
	require.NoError(t, err)
	return ds
}

func TestProfile(t *testing.T) {
	profiles := Profile(sampleDataset(t), 50, 2)
	require.Len(t, profiles, 4)

	city := profiles[0]
	assert.Equal(t, "city", city.Name)
	assert.Equal(t, data.Text, city.Kind)
	assert.Equal(t, 1, city.Cardinality)
	assert.True(t, city.WouldDrop)
	assert.True(t, math.IsNaN(city.Mean))

	room := profiles[1]
	assert.Equal(t, 1, room.Nulls)
	assert.Equal(t, 2, room.Cardinality)
	assert.False(t, room.WouldDrop)
	assert.InDelta(t, 1.0/3, room.NullRatio(), 1e-12)

	price := profiles[2]
	assert.Equal(t, data.Numeric, price.Kind)
	assert.Equal(t, 50.0, price.Min)
	assert.Equal(t, 75.0, price.Mean)
	assert.Equal(t, 100.0, price.Max)
	assert.False(t, price.WouldDrop)

	review := profiles[3]
	assert.Equal(t, time.Date(2015, 6, 1, 0, 0, 0, 0, time.UTC), review.Earliest)
	assert.Equal(t, time.Date(2016, 1, 4, 0, 0, 0, 0, time.UTC), review.Latest)
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, Profile(sampleDataset(t), 50, 2)))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 5)

	assert.Equal(t, Header, records[0])
	assert.Equal(t, []string{"price", "numeric", "3", "1", "0.3333", "2", "50", "75", "100", "", "", "false"}, records[3])
	assert.Equal(t, "2015-06-01", records[4][9])
	assert.Equal(t, "true", records[1][11])
}

func TestWriteXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.xlsx")
	require.NoError(t, WriteXLSX(path, Profile(sampleDataset(t), 50, 2)))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 5)
	assert.Equal(t, Header, rows[0])
	assert.Equal(t, "price", rows[3][0])
	assert.Equal(t, "75", rows[3][7])
}
