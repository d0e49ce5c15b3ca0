// Package chart renders the price time series and the listings map with
// gonum/plot. Charts are written to an io.Writer or a file; the output
// format follows the file extension (png, svg, pdf, jpg, eps, tif).
package chart

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"airbnb-eda/pkg/edaerr"
)

// FormatOf returns the output format implied by path's extension, or png.
func FormatOf(path string) string {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	if ext == "" {
		return "png"
	}
	return ext
}

// render paints onto a canvas of the given size and writes it to w.
func render(w io.Writer, format string, width, height vg.Length, paint func(dc draw.Canvas)) error {
	c, err := draw.NewFormattedCanvas(width, height, format)
	if err != nil {
		return edaerr.InvalidArgument("render", "unsupported image format %q", format)
	}
	paint(draw.New(c))
	if _, err := c.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write %s image: %w", format, err)
	}
	return nil
}

// saveFile renders into the file at path.
func saveFile(path string, write func(w io.Writer, format string) error) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := write(f, FormatOf(path)); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	return f.Close()
}
