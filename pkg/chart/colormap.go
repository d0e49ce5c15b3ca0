package chart

import (
	"image/color"

	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/palette/moreland"
)

// cividisControls samples the cividis map at ten evenly spaced points.
var cividisControls = []color.Color{
	color.NRGBA{R: 0x00, G: 0x20, B: 0x4d, A: 0xff},
	color.NRGBA{R: 0x00, G: 0x33, B: 0x6f, A: 0xff},
	color.NRGBA{R: 0x39, G: 0x48, B: 0x6b, A: 0xff},
	color.NRGBA{R: 0x57, G: 0x5c, B: 0x6d, A: 0xff},
	color.NRGBA{R: 0x70, G: 0x71, B: 0x73, A: 0xff},
	color.NRGBA{R: 0x8a, G: 0x87, B: 0x79, A: 0xff},
	color.NRGBA{R: 0xa6, G: 0x9d, B: 0x75, A: 0xff},
	color.NRGBA{R: 0xc4, G: 0xb5, B: 0x6c, A: 0xff},
	color.NRGBA{R: 0xe4, G: 0xcf, B: 0x5b, A: 0xff},
	color.NRGBA{R: 0xff, G: 0xea, B: 0x46, A: 0xff},
}

// Cividis returns a fresh cividis colour map spanning [min, max]. A new map
// is built on every call because colour maps carry mutable bounds.
func Cividis(min, max, alpha float64) (palette.ColorMap, error) {
	cm, err := moreland.NewLuminance(cividisControls)
	if err != nil {
		return nil, err
	}
	cm.SetMin(min)
	cm.SetMax(max)
	cm.SetAlpha(alpha)
	return cm, nil
}

// clampedColor returns the colour for v, pinning values outside the map's
// range to its end colours.
func clampedColor(cm palette.ColorMap, v float64) color.Color {
	if v < cm.Min() {
		v = cm.Min()
	}
	if v > cm.Max() {
		v = cm.Max()
	}
	c, err := cm.At(v)
	if err != nil {
		return color.Transparent
	}
	return c
}
