package chart

import (
	"fmt"
	"image/color"
	"io"
	"log/slog"
	"math"
	"sync"

	"github.com/paulmach/orb"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"airbnb-eda/pkg/edaerr"
	"airbnb-eda/pkg/stats"
)

// Defaults for GeoScatterPlotter.
const (
	DefaultMargin        = 0.05
	DefaultColorQuantile = 94.0
	DefaultSizeScale     = 15.0
	DefaultPointAlpha    = 0.2
	ColorBarLabel        = "price ($)"
)

// LegendValues are the marker sizes shown in the map legend.
var LegendValues = []int{1, 3, 5}

// GeoScatterPlotter draws listings over a bounded equirectangular map.
// Points are coloured by a primary value (price) and sized by a secondary
// one (reviews per month).
//
// Boundary layers are read on the first call to Plot and reused by later
// calls on the same plotter.
type GeoScatterPlotter struct {
	Layers        []Layer
	Margin        float64   // degrees added around the points' bounding box
	ColorQuantile float64   // percentile of the primary values where colours saturate
	SizeScale     float64   // marker area in points² per unit of the secondary value
	Width, Height vg.Length // figure size
	Logger        *slog.Logger

	once       sync.Once
	boundaries []*boundaries
	loadErr    error
}

// NewGeoScatterPlotter returns a plotter with the default styling.
func NewGeoScatterPlotter(layers []Layer, logger *slog.Logger) *GeoScatterPlotter {
	return &GeoScatterPlotter{
		Layers:        layers,
		Margin:        DefaultMargin,
		ColorQuantile: DefaultColorQuantile,
		SizeScale:     DefaultSizeScale,
		Width:         10 * vg.Inch,
		Height:        10 * vg.Inch,
		Logger:        logger,
	}
}

func (g *GeoScatterPlotter) logger() *slog.Logger {
	if g.Logger == nil {
		return slog.Default()
	}
	return g.Logger
}

func (g *GeoScatterPlotter) loadBoundaries() ([]*boundaries, error) {
	g.once.Do(func() {
		g.boundaries, g.loadErr = loadLayers(g.Layers, g.logger())
	})
	return g.boundaries, g.loadErr
}

// Extent returns the bounding box of the finite coordinates grown by margin
// degrees on every side.
func Extent(lat, lon []float64, margin float64) (orb.Bound, error) {
	latMin, latMax := stats.MinMax(lat)
	lonMin, lonMax := stats.MinMax(lon)
	if math.IsNaN(latMin) || math.IsNaN(lonMin) {
		return orb.Bound{}, edaerr.InvalidArgument("Extent", "no finite coordinates")
	}
	return orb.Bound{
		Min: orb.Point{lonMin - margin, latMin - margin},
		Max: orb.Point{lonMax + margin, latMax + margin},
	}, nil
}

// geoPoint is one drawable listing.
type geoPoint struct {
	lon, lat float64
	value    float64
	size     float64
}

// GeoMap holds the two plots making up the listings figure.
type GeoMap struct {
	Map      *plot.Plot
	ColorBar *plot.Plot
	Bound    orb.Bound
	ColorMax float64
	Points   int
}

// Build lays out the map and colour bar for the given listings. lat, lon,
// primary and secondary must have the same non-zero length. Listings with a
// non-finite coordinate or primary value are skipped; a NaN secondary value
// draws no marker.
func (g *GeoScatterPlotter) Build(lat, lon, primary, secondary []float64) (*GeoMap, error) {
	n := len(lat)
	if n == 0 || len(lon) != n || len(primary) != n || len(secondary) != n {
		return nil, edaerr.InvalidArgument("PlotGeoScatter",
			"need equal non-empty inputs, got lat=%d lon=%d primary=%d secondary=%d",
			len(lat), len(lon), len(primary), len(secondary))
	}

	margin := g.Margin
	if margin < 0 {
		return nil, edaerr.InvalidArgument("PlotGeoScatter", "negative margin %v", margin)
	}
	bound, err := Extent(lat, lon, margin)
	if err != nil {
		return nil, err
	}

	points := make([]geoPoint, 0, n)
	for i := 0; i < n; i++ {
		if !finite(lat[i]) || !finite(lon[i]) || !finite(primary[i]) {
			continue
		}
		points = append(points, geoPoint{lon: lon[i], lat: lat[i], value: primary[i], size: secondary[i]})
	}
	if len(points) == 0 {
		return nil, edaerr.InvalidArgument("PlotGeoScatter", "no listing has finite coordinates and value")
	}

	quantile := g.ColorQuantile
	if quantile <= 0 {
		quantile = DefaultColorQuantile
	}
	colorMax := stats.Percentile(primary, quantile)
	if !(colorMax > 0) {
		colorMax = 1
	}

	pointMap, err := Cividis(0, colorMax, DefaultPointAlpha)
	if err != nil {
		return nil, fmt.Errorf("failed to build colour map: %w", err)
	}
	barMap, err := Cividis(0, colorMax, 1)
	if err != nil {
		return nil, fmt.Errorf("failed to build colour map: %w", err)
	}

	layers, err := g.loadBoundaries()
	if err != nil {
		return nil, err
	}

	p := plot.New()
	p.X.Label.Text = "longitude"
	p.Y.Label.Text = "latitude"
	for _, b := range layers {
		p.Add(b.clipped(bound))
	}

	xys := make(plotter.XYs, len(points))
	for i, pt := range points {
		xys[i] = plotter.XY{X: pt.lon, Y: pt.lat}
	}
	scatter, err := plotter.NewScatter(xys)
	if err != nil {
		return nil, edaerr.InvalidArgument("PlotGeoScatter", "bad coordinates: %v", err)
	}
	scale := g.sizeScale()
	scatter.GlyphStyleFunc = func(i int) draw.GlyphStyle {
		return draw.GlyphStyle{
			Color:  clampedColor(pointMap, points[i].value),
			Radius: markerRadius(points[i].size, scale),
			Shape:  draw.CircleGlyph{},
		}
	}
	p.Add(scatter)

	for _, v := range LegendValues {
		p.Legend.Add(fmt.Sprintf("%d review(s) / month", v), &plotter.Scatter{
			GlyphStyle: draw.GlyphStyle{
				Color:  color.NRGBA{A: 128},
				Radius: markerRadius(float64(v), scale),
				Shape:  draw.CircleGlyph{},
			},
		})
	}
	p.Legend.Top = false
	p.Legend.Left = true

	p.X.Min, p.X.Max = bound.Min.Lon(), bound.Max.Lon()
	p.Y.Min, p.Y.Max = bound.Min.Lat(), bound.Max.Lat()

	bar := plot.New()
	bar.HideX()
	bar.Y.Label.Text = ColorBarLabel
	bar.Add(&plotter.ColorBar{ColorMap: barMap, Vertical: true})

	g.logger().Debug("Built listings map",
		slog.Int("points", len(points)),
		slog.Int("skipped", n-len(points)),
		slog.Int("boundary_layers", len(layers)),
		slog.Float64("color_max", colorMax))

	return &GeoMap{Map: p, ColorBar: bar, Bound: bound, ColorMax: colorMax, Points: len(points)}, nil
}

func (g *GeoScatterPlotter) sizeScale() float64 {
	if g.SizeScale <= 0 {
		return DefaultSizeScale
	}
	return g.SizeScale
}

// Plot writes the listings map to w in the given format.
func (g *GeoScatterPlotter) Plot(w io.Writer, format string, lat, lon, primary, secondary []float64) error {
	m, err := g.Build(lat, lon, primary, secondary)
	if err != nil {
		return err
	}

	width, height := g.Width, g.Height
	if width <= 0 || height <= 0 {
		width, height = 10*vg.Inch, 10*vg.Inch
	}
	barWidth := width / 8

	return render(w, format, width, height, func(dc draw.Canvas) {
		full := dc.Max.X - dc.Min.X
		m.Map.Draw(draw.Crop(dc, 0, -barWidth, 0, 0))
		m.ColorBar.Draw(draw.Crop(dc, full-barWidth, 0, 0, 0))
	})
}

// Save writes the listings map to path.
func (g *GeoScatterPlotter) Save(path string, lat, lon, primary, secondary []float64) error {
	return saveFile(path, func(w io.Writer, format string) error {
		return g.Plot(w, format, lat, lon, primary, secondary)
	})
}

// PlotGeoScatter writes a listings map over the built-in coastline and
// country overlays.
func PlotGeoScatter(w io.Writer, format string, lat, lon, primary, secondary []float64) error {
	return NewGeoScatterPlotter(DefaultLayers("", "", ""), nil).Plot(w, format, lat, lon, primary, secondary)
}

// markerRadius converts a value to a circle radius whose area in points²
// is value*scale.
func markerRadius(value, scale float64) vg.Length {
	if !finite(value) || value <= 0 {
		return 0
	}
	return vg.Points(math.Sqrt(value*scale) / 2)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
