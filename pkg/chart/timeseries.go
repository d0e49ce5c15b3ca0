package chart

import (
	"image/color"
	"io"
	"math"
	"sort"
	"time"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"airbnb-eda/pkg/edaerr"
	"airbnb-eda/pkg/model"
)

// Axis labels of the price chart.
const (
	TimeLabel  = "time"
	PriceLabel = "average listing price"
)

type timeSeriesOptions struct {
	width, height vg.Length
	title         string
	trend         bool
	fit           *model.LinearTrend
	location      *time.Location
}

// TimeSeriesOption tunes the price chart.
type TimeSeriesOption func(*timeSeriesOptions)

// WithSize sets the figure size. Defaults to 12x8 inches.
func WithSize(width, height vg.Length) TimeSeriesOption {
	return func(o *timeSeriesOptions) { o.width, o.height = width, height }
}

// WithTitle sets a chart title.
func WithTitle(title string) TimeSeriesOption {
	return func(o *timeSeriesOptions) { o.title = title }
}

// WithTrend overlays a least-squares trend line.
func WithTrend() TimeSeriesOption {
	return func(o *timeSeriesOptions) { o.trend = true }
}

// WithTrendLine overlays a trend the caller has already fitted.
func WithTrendLine(fit *model.LinearTrend) TimeSeriesOption {
	return func(o *timeSeriesOptions) { o.trend, o.fit = fit != nil, fit }
}

// WithTickLocation sets the zone used to place calendar ticks. Defaults to UTC.
func WithTickLocation(loc *time.Location) TimeSeriesOption {
	return func(o *timeSeriesOptions) { o.location = loc }
}

func newTimeSeriesOptions(opts []TimeSeriesOption) timeSeriesOptions {
	o := timeSeriesOptions{width: 12 * vg.Inch, height: 8 * vg.Inch, location: time.UTC}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// NewTimeSeries builds a line chart of prices over dates. Pairs with a zero
// date or a NaN price are skipped and the rest are drawn in date order.
func NewTimeSeries(dates []time.Time, prices []float64, opts ...TimeSeriesOption) (*plot.Plot, error) {
	o := newTimeSeriesOptions(opts)

	if len(dates) != len(prices) {
		return nil, edaerr.InvalidArgument("PlotTimeSeries",
			"got %d dates and %d prices", len(dates), len(prices))
	}

	type point struct {
		t time.Time
		v float64
	}
	pts := make([]point, 0, len(dates))
	for i, d := range dates {
		if d.IsZero() || math.IsNaN(prices[i]) || math.IsInf(prices[i], 0) {
			continue
		}
		pts = append(pts, point{d, prices[i]})
	}
	if len(pts) == 0 {
		return nil, edaerr.InvalidArgument("PlotTimeSeries", "no dated prices to plot")
	}
	sort.SliceStable(pts, func(i, j int) bool { return pts[i].t.Before(pts[j].t) })

	xys := make(plotter.XYs, len(pts))
	for i, pt := range pts {
		xys[i].X = float64(pt.t.Unix())
		xys[i].Y = pt.v
	}

	p := plot.New()
	p.Title.Text = o.title
	p.X.Label.Text = TimeLabel
	p.Y.Label.Text = PriceLabel
	p.X.Tick.Marker = CalendarTicks{MinorMonths: 2, Format: MajorTickFormat, Location: o.location}

	p.Add(tickGrid{
		Major: draw.LineStyle{Color: color.Gray{Y: 176}, Width: vg.Points(0.5)},
		Minor: draw.LineStyle{Color: color.Gray{Y: 208}, Width: vg.Points(0.5)},
	})

	line, err := plotter.NewLine(xys)
	if err != nil {
		return nil, edaerr.InvalidArgument("PlotTimeSeries", "bad series: %v", err)
	}
	line.Color = color.RGBA{B: 255, A: 255}
	line.Width = vg.Points(1.5)
	p.Add(line)

	if o.trend && len(pts) > 1 {
		trend := o.fit
		if trend == nil {
			ts := make([]time.Time, len(pts))
			vs := make([]float64, len(pts))
			for i, pt := range pts {
				ts[i], vs[i] = pt.t, pt.v
			}
			trend, _ = model.FitTrend(ts, vs)
		}
		if trend != nil {
			first, last := pts[0].t, pts[len(pts)-1].t
			tl, err := plotter.NewLine(plotter.XYs{
				{X: float64(first.Unix()), Y: trend.Predict(first)},
				{X: float64(last.Unix()), Y: trend.Predict(last)},
			})
			if err == nil {
				tl.Color = color.RGBA{R: 255, A: 255}
				tl.Width = vg.Points(1)
				tl.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}
				p.Add(tl)
				p.Legend.Add("trend", tl)
				p.Legend.Top = true
			}
		}
	}

	return p, nil
}

// PlotTimeSeries writes the price chart to w in the given format.
func PlotTimeSeries(w io.Writer, format string, dates []time.Time, prices []float64, opts ...TimeSeriesOption) error {
	o := newTimeSeriesOptions(opts)
	p, err := NewTimeSeries(dates, prices, opts...)
	if err != nil {
		return err
	}
	return render(w, format, o.width, o.height, func(dc draw.Canvas) { p.Draw(dc) })
}

// SaveTimeSeries writes the price chart to path.
func SaveTimeSeries(path string, dates []time.Time, prices []float64, opts ...TimeSeriesOption) error {
	return saveFile(path, func(w io.Writer, format string) error {
		return PlotTimeSeries(w, format, dates, prices, opts...)
	})
}
