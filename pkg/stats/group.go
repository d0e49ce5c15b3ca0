package stats

import (
	"math"
	"sort"
	"time"

	"airbnb-eda/pkg/edaerr"
)

// DailyMean is the mean of the values observed on one calendar day.
type DailyMean struct {
	Day   time.Time
	Mean  float64
	Count int
}

// AverageByDay groups values by the calendar day of the matching date and
// returns one mean per day in ascending order. Zero dates and NaN values are
// skipped; days left with no value are omitted.
func AverageByDay(dates []time.Time, values []float64) ([]DailyMean, error) {
	if len(dates) != len(values) {
		return nil, edaerr.InvalidArgument("AverageByDay",
			"got %d dates and %d values", len(dates), len(values))
	}

	type acc struct {
		sum   float64
		count int
	}
	byDay := make(map[time.Time]*acc)
	for i, d := range dates {
		v := values[i]
		if d.IsZero() || math.IsNaN(v) {
			continue
		}
		day := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
		a, ok := byDay[day]
		if !ok {
			a = &acc{}
			byDay[day] = a
		}
		a.sum += v
		a.count++
	}

	out := make([]DailyMean, 0, len(byDay))
	for day, a := range byDay {
		out = append(out, DailyMean{Day: day, Mean: a.sum / float64(a.count), Count: a.count})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Day.Before(out[j].Day) })
	return out, nil
}

// Split returns the days and means of a series as parallel slices.
func Split(series []DailyMean) ([]time.Time, []float64) {
	days := make([]time.Time, len(series))
	means := make([]float64, len(series))
	for i, s := range series {
		days[i] = s.Day
		means[i] = s.Mean
	}
	return days, means
}
