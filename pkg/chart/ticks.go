package chart

import (
	"math"
	"time"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg/draw"
)

// MajorTickFormat labels the yearly ticks of the time axis.
const MajorTickFormat = "2006:01"

// CalendarTicks marks a time axis measured in Unix seconds. Every January
// 1st gets a labelled major tick and the first day of every MinorMonths-th
// month (counting from January) an unlabelled minor tick. When no January
// falls inside the range the minor ticks are labelled instead, and a range
// holding no tick at all gets labelled ticks at both ends.
type CalendarTicks struct {
	MinorMonths int
	Format      string
	Location    *time.Location
}

// Ticks implements plot.Ticker.
func (t CalendarTicks) Ticks(min, max float64) []plot.Tick {
	loc := t.Location
	if loc == nil {
		loc = time.UTC
	}
	format := t.Format
	if format == "" {
		format = MajorTickFormat
	}
	every := t.MinorMonths
	if every <= 0 {
		every = 2
	}
	if math.IsNaN(min) || math.IsNaN(max) || max < min {
		return nil
	}

	start := time.Unix(int64(math.Floor(min)), 0).In(loc)
	end := time.Unix(int64(math.Ceil(max)), 0).In(loc)

	var ticks []plot.Tick
	hasMajor := false
	for m := time.Date(start.Year(), start.Month(), 1, 0, 0, 0, 0, loc); !m.After(end); m = m.AddDate(0, 1, 0) {
		v := float64(m.Unix())
		if v < min {
			continue
		}
		switch {
		case m.Month() == time.January:
			ticks = append(ticks, plot.Tick{Value: v, Label: m.Format(format)})
			hasMajor = true
		case (int(m.Month())-1)%every == 0:
			ticks = append(ticks, plot.Tick{Value: v})
		}
	}

	label := func(v float64) string { return time.Unix(int64(v), 0).In(loc).Format(format) }
	switch {
	case len(ticks) == 0:
		// Shorter than a tick interval: mark both ends.
		ticks = []plot.Tick{{Value: min, Label: label(min)}}
		if max > min {
			ticks = append(ticks, plot.Tick{Value: max, Label: label(max)})
		}
	case !hasMajor:
		for i := range ticks {
			ticks[i].Label = label(ticks[i].Value)
		}
	}
	return ticks
}

// tickGrid draws vertical grid lines at every X tick, minor ones included,
// and horizontal lines at the major Y ticks.
type tickGrid struct {
	Major draw.LineStyle
	Minor draw.LineStyle
}

// Plot implements plot.Plotter.
func (g tickGrid) Plot(c draw.Canvas, p *plot.Plot) {
	trX, trY := p.Transforms(&c)

	for _, tk := range p.X.Tick.Marker.Ticks(p.X.Min, p.X.Max) {
		if tk.Value < p.X.Min || tk.Value > p.X.Max {
			continue
		}
		style := g.Major
		if tk.IsMinor() {
			style = g.Minor
		}
		x := trX(tk.Value)
		c.StrokeLine2(style, x, c.Min.Y, x, c.Max.Y)
	}

	for _, tk := range p.Y.Tick.Marker.Ticks(p.Y.Min, p.Y.Max) {
		if tk.IsMinor() || tk.Value < p.Y.Min || tk.Value > p.Y.Max {
			continue
		}
		y := trY(tk.Value)
		c.StrokeLine2(g.Major, c.Min.X, y, c.Max.X, y)
	}
}
