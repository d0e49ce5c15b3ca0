package chart

import (
	"embed"
	"errors"
	"fmt"
	"image/color"
	"io/fs"
	"log/slog"
	"os"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/clip"
	"github.com/paulmach/orb/geojson"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"airbnb-eda/pkg/edaerr"
)

// Built-in low resolution overlays from Natural Earth 1:110m admin-0
// countries (public domain). The coastline keeps the country ring edges that
// no two countries share.
//
//go:embed basemaps/*.geojson
var basemaps embed.FS

const (
	BuiltinCoastlines = "basemaps/ne_110m_coastline.geojson"
	BuiltinCountries  = "basemaps/ne_110m_countries.geojson"
)

// Layer is a boundary overlay read from a GeoJSON file. Path is looked up in
// FS when it is set and on disk otherwise.
type Layer struct {
	Name  string
	Path  string
	FS    fs.FS
	Color color.Color
	Width vg.Length
}

// DefaultLayers returns the coastline, country and county overlays in
// drawing order. Empty coastline and country paths fall back to the built-in
// overlays. Counties have no built-in data; an empty path is reported and
// skipped when the layers are loaded.
func DefaultLayers(coastlines, countries, counties string) []Layer {
	black := color.Black
	red := color.RGBA{R: 255, A: 255}

	coast := Layer{Name: "coastlines", Path: coastlines, Color: black, Width: vg.Points(1)}
	if coastlines == "" {
		coast.Path, coast.FS = BuiltinCoastlines, basemaps
	}
	country := Layer{Name: "countries", Path: countries, Color: black, Width: vg.Points(1)}
	if countries == "" {
		country.Path, country.FS = BuiltinCountries, basemaps
	}
	return []Layer{
		coast,
		country,
		{Name: "counties", Path: counties, Color: red, Width: vg.Points(1)},
	}
}

func (l Layer) read() ([]byte, error) {
	if l.FS != nil {
		return fs.ReadFile(l.FS, l.Path)
	}
	return os.ReadFile(l.Path)
}

// boundaries is a loaded layer: its style and every outline as a line string.
type boundaries struct {
	name  string
	style draw.LineStyle
	lines orb.MultiLineString
}

// loadLayers reads every layer. Unset and missing files are skipped with a
// warning; unreadable GeoJSON is an error.
func loadLayers(layers []Layer, logger *slog.Logger) ([]*boundaries, error) {
	var out []*boundaries
	for _, l := range layers {
		if l.Path == "" {
			logger.Warn("Boundary layer not configured, skipping", slog.String("layer", l.Name))
			continue
		}
		raw, err := l.read()
		if errors.Is(err, fs.ErrNotExist) {
			logger.Warn("Boundary layer not found, skipping",
				slog.String("layer", l.Name),
				slog.String("path", l.Path))
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read boundary layer %s: %w", l.Path, err)
		}

		fc, err := geojson.UnmarshalFeatureCollection(raw)
		if err != nil {
			return nil, edaerr.ParseFile("loadLayers", l.Path, err)
		}

		b := &boundaries{
			name:  l.Name,
			style: draw.LineStyle{Color: l.Color, Width: l.Width},
		}
		for _, f := range fc.Features {
			b.lines = append(b.lines, outlines(f.Geometry)...)
		}
		logger.Debug("Loaded boundary layer",
			slog.String("layer", l.Name),
			slog.Int("features", len(fc.Features)),
			slog.Int("lines", len(b.lines)))
		out = append(out, b)
	}
	return out, nil
}

// outlines flattens a geometry to the line strings that trace it.
func outlines(g orb.Geometry) orb.MultiLineString {
	switch g := g.(type) {
	case orb.LineString:
		return orb.MultiLineString{g}
	case orb.MultiLineString:
		return g
	case orb.Ring:
		return orb.MultiLineString{orb.LineString(g)}
	case orb.Polygon:
		var out orb.MultiLineString
		for _, r := range g {
			out = append(out, orb.LineString(r))
		}
		return out
	case orb.MultiPolygon:
		var out orb.MultiLineString
		for _, p := range g {
			out = append(out, outlines(p)...)
		}
		return out
	case orb.Collection:
		var out orb.MultiLineString
		for _, sub := range g {
			out = append(out, outlines(sub)...)
		}
		return out
	default:
		return nil
	}
}

// clipped returns the part of b inside bound, ready to draw.
func (b *boundaries) clipped(bound orb.Bound) *boundaryPlotter {
	var lines orb.MultiLineString
	for _, ls := range b.lines {
		if !ls.Bound().Intersects(bound) {
			continue
		}
		lines = append(lines, clip.LineString(bound, ls)...)
	}
	return &boundaryPlotter{style: b.style, lines: lines}
}

// boundaryPlotter draws line strings in equirectangular coordinates,
// x = longitude and y = latitude.
type boundaryPlotter struct {
	style draw.LineStyle
	lines orb.MultiLineString
}

// Plot implements plot.Plotter.
func (b *boundaryPlotter) Plot(c draw.Canvas, p *plot.Plot) {
	trX, trY := p.Transforms(&c)
	for _, ls := range b.lines {
		if len(ls) < 2 {
			continue
		}
		pts := make([]vg.Point, len(ls))
		for i, pt := range ls {
			pts[i] = vg.Point{X: trX(pt.Lon()), Y: trY(pt.Lat())}
		}
		c.StrokeLines(b.style, c.ClipLinesXY(pts)...)
	}
}
